package services

import (
	"context"
	"time"

	"nidhi/internal/models"
	"nidhi/internal/pagination"
	"nidhi/internal/pricing"
	"nidhi/internal/valuation"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, displayName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	RecordLogin(userID string) error
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// AssetInput carries the user-editable fields of an asset.
type AssetInput struct {
	Name         string
	Category     models.AssetCategory
	Currency     string
	PurchaseDate *time.Time
	Quantity     float64
	Unit         string
	TotalCost    float64
	CurrentValue *float64
	ManualValue  bool

	Principal      *float64
	InterestRate   *float64
	MaturityDate   *time.Time
	MaturityAmount *float64

	Location     string
	AreaSqft     *float64
	RentalIncome *float64

	SchemeCode string
	FolioNo    string
	Notes      string
}

// AssetFilter holds optional filters for listing assets.
type AssetFilter struct {
	Category *models.AssetCategory
	Currency *string
}

// AssetValuation is an asset's resolved current value plus the label
// explaining how it was computed, and for fixed deposits the maturity state.
type AssetValuation struct {
	AssetID  string                    `json:"asset_id"`
	Value    float64                   `json:"value"`
	Method   valuation.ValueMethod     `json:"method"`
	Maturity *valuation.MaturityStatus `json:"maturity,omitempty"`
}

// AssetServicer defines the contract for asset-related business logic.
type AssetServicer interface {
	CreateAsset(userID string, input AssetInput) (*models.Asset, error)
	GetUserAssets(userID string, page pagination.PageRequest, filter AssetFilter) (*pagination.PageResponse[models.Asset], error)
	GetAssetByID(userID, assetID string) (*models.Asset, error)
	UpdateAsset(userID, assetID string, input AssetInput) (*models.Asset, error)
	DeleteAsset(userID, assetID string) error
	ValueAsset(userID, assetID string, asOf time.Time) (*AssetValuation, error)
}

// TransactionServicer defines the contract for the per-asset ledger.
// Rows are immutable once posted; deletion replays the ledger so the running
// totals of every later row stay consistent.
type TransactionServicer interface {
	RecordTransaction(userID, assetID string, txType models.AssetTransactionType, date time.Time, quantity, pricePerUnit, fees, amount float64, notes string) (*models.AssetTransaction, error)
	GetAssetTransactions(userID, assetID string, page pagination.PageRequest) (*pagination.PageResponse[models.AssetTransaction], error)
	DeleteTransaction(userID, transactionID string) error
}

// ReturnsResult is an XIRR/CAGR outcome: the rate when available, otherwise
// a reason ("insufficient_data" or "no_convergence").
type ReturnsResult struct {
	Rate        *float64 `json:"rate,omitempty"`
	Unavailable string   `json:"unavailable,omitempty"`
}

// PortfolioServicer defines the contract for portfolio analytics.
type PortfolioServicer interface {
	GetOverview(ctx context.Context, userID string, asOf time.Time) (*valuation.Overview, error)
	ValueAssets(ctx context.Context, userID string, asOf time.Time) ([]valuation.ValuedAsset, error)
	GetAssetReturns(userID, assetID string, asOf time.Time) (*ReturnsResult, error)
	GetPortfolioReturns(ctx context.Context, userID string, asOf time.Time) (*ReturnsResult, error)
}

// QuoteSet bundles the reference quotes the dashboard renders.
type QuoteSet struct {
	Metals    []pricing.MetalQuote `json:"metals"`
	Forex     []pricing.ForexQuote `json:"forex"`
	FetchedAt time.Time            `json:"fetched_at"`
}

// PriceServicer defines the contract for external reference prices and the
// conversion context derived from them.
type PriceServicer interface {
	GetQuotes(ctx context.Context, userID string) (*QuoteSet, error)
	ConversionContextFor(ctx context.Context, userID string) valuation.ConversionContext
	RefreshNAVs(ctx context.Context, userID string) (int, error)
	GetFXSettings(userID string) (*models.FXSetting, error)
	UpdateFXSettings(userID string, usdToAED, inrToAED float64, displayCurrency string) (*models.FXSetting, error)
}

// SnapshotServicer defines the contract for daily portfolio snapshots.
type SnapshotServicer interface {
	ComputeAndRecordSnapshots(ctx context.Context, date time.Time) (int, error)
	GetSnapshots(userID string, from, to time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.PortfolioSnapshot], error)
}

// GoalServicer defines the contract for goals and projections.
type GoalServicer interface {
	CreateGoal(userID, name string, targetAmount float64, horizonYears int, expectedRate, startingCorpus float64) (*models.Goal, error)
	GetUserGoals(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Goal], error)
	GetGoalByID(userID, goalID string) (*models.Goal, error)
	UpdateGoal(userID, goalID, name string, targetAmount *float64, horizonYears *int, expectedRate, startingCorpus *float64) (*models.Goal, error)
	DeleteGoal(userID, goalID string) error
	GetGoalProgress(userID, goalID string) (*valuation.GoalProgress, error)
	GetProjectionTable(corpus float64) []valuation.ProjectionCell
}

// ExportServicer defines the contract for CSV exports.
type ExportServicer interface {
	ExportAssets(ctx context.Context, userID string, asOf time.Time) ([]byte, error)
	ExportTransactions(userID string) ([]byte, error)
	ExportOverview(ctx context.Context, userID string, asOf time.Time) ([]byte, error)
}
