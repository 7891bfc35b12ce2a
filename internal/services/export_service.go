package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "nidhi/internal/errors"
	"nidhi/internal/models"
	"nidhi/internal/timeutil"
)

// exportService renders portfolio data as CSV for download.
type exportService struct {
	db               *gorm.DB
	portfolioService PortfolioServicer
}

// NewExportService creates a new ExportServicer.
func NewExportService(db *gorm.DB, portfolioService PortfolioServicer) ExportServicer {
	return &exportService{
		db:               db,
		portfolioService: portfolioService,
	}
}

// money formats a float for CSV with fixed two decimal places.
func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// ExportAssets renders every asset with its resolved current value, one row
// per asset.
func (s *exportService) ExportAssets(ctx context.Context, userID string, asOf time.Time) ([]byte, error) {
	valued, err := s.portfolioService.ValueAssets(ctx, userID, asOf)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"name", "category", "currency", "purchase_date", "quantity", "unit", "total_cost", "current_value", "value_method", "current_value_aed"}
	if err := w.Write(header); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, v := range valued {
		a := v.Asset
		purchase := ""
		if a.PurchaseDate != nil {
			purchase = timeutil.FormatDate(*a.PurchaseDate)
		}
		row := []string{
			a.Name,
			string(a.Category),
			a.Currency,
			purchase,
			strconv.FormatFloat(a.Quantity, 'f', -1, 64),
			a.Unit,
			money(a.TotalCost),
			money(v.RawValue),
			string(v.Method),
			money(v.Value),
		}
		if err := w.Write(row); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return buf.Bytes(), nil
}

// ExportTransactions renders the user's full ledger across assets, oldest
// first.
func (s *exportService) ExportTransactions(userID string) ([]byte, error) {
	var rows []models.AssetTransaction
	err := s.db.
		Joins("JOIN assets ON assets.id = asset_transactions.asset_id").
		Where("assets.user_id = ? AND assets.deleted_at IS NULL", userID).
		Preload("Asset").
		Order("asset_transactions.date ASC, asset_transactions.created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"date", "asset", "type", "quantity", "price_per_unit", "fees", "amount", "holdings_after", "avg_cost_after", "realized_pl_after", "notes"}
	if err := w.Write(header); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, row := range rows {
		record := []string{
			timeutil.FormatDate(row.Date),
			row.Asset.Name,
			string(row.Type),
			strconv.FormatFloat(row.Quantity, 'f', -1, 64),
			money(row.PricePerUnit),
			money(row.Fees),
			money(row.Amount),
			strconv.FormatFloat(row.HoldingsAfter, 'f', -1, 64),
			money(row.AvgCostAfter),
			money(row.RealizedPLAfter),
			row.Notes,
		}
		if err := w.Write(record); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return buf.Bytes(), nil
}

// ExportOverview renders the per-category summary plus a totals row.
func (s *exportService) ExportOverview(ctx context.Context, userID string, asOf time.Time) ([]byte, error) {
	overview, err := s.portfolioService.GetOverview(ctx, userID, asOf)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"category", "risk_bucket", "invested_aed", "current_value_aed", "profit_loss_aed", "allocation_pct"}
	if err := w.Write(header); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, cat := range overview.ByCategory {
		row := []string{
			string(cat.Category),
			string(cat.RiskBucket),
			money(cat.Invested),
			money(cat.CurrentValue),
			money(cat.ProfitLoss),
			decimal.NewFromFloat(cat.AllocationPct).StringFixed(1),
		}
		if err := w.Write(row); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	total := []string{
		"total",
		"",
		money(overview.TotalInvested),
		money(overview.TotalCurrentValue),
		money(overview.ProfitLoss),
		"100.0",
	}
	if err := w.Write(total); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return buf.Bytes(), nil
}
