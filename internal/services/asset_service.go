package services

import (
	"errors"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm"

	apperrors "nidhi/internal/errors"
	"nidhi/internal/models"
	"nidhi/internal/pagination"
	"nidhi/internal/valuation"
)

// assetService handles asset-related business logic.
type assetService struct {
	db *gorm.DB
}

// NewAssetService creates a new AssetServicer.
func NewAssetService(db *gorm.DB) AssetServicer {
	return &assetService{db: db}
}

// CreateAsset creates a new asset for the user.
func (s *assetService) CreateAsset(userID string, input AssetInput) (*models.Asset, error) {
	if err := validateAssetInput(input); err != nil {
		return nil, err
	}

	asset := assetFromInput(userID, input)

	// Fixed deposits with a known term get their maturity amount projected
	// up front so it never has to be recomputed on reads.
	if asset.Category == models.AssetCategoryFixedDeposit && asset.MaturityAmount == nil &&
		asset.Principal != nil && asset.InterestRate != nil {
		asset.MaturityAmount = valuation.MaturityAmount(*asset.Principal, *asset.InterestRate, asset.PurchaseDate, asset.MaturityDate)
	}

	if err := s.db.Create(asset).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return asset, nil
}

// GetUserAssets retrieves a paginated, filtered list of the user's assets.
func (s *assetService) GetUserAssets(userID string, page pagination.PageRequest, filter AssetFilter) (*pagination.PageResponse[models.Asset], error) {
	page.Defaults()

	base := s.db.Model(&models.Asset{}).Where("user_id = ?", userID)
	if filter.Category != nil {
		base = base.Where("category = ?", *filter.Category)
	}
	if filter.Currency != nil {
		base = base.Where("currency = ?", *filter.Currency)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var assets []models.Asset
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(assets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetAssetByID retrieves an asset by ID for a specific user.
func (s *assetService) GetAssetByID(userID, assetID string) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.Where("id = ? AND user_id = ?", assetID, userID).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &asset, nil
}

// UpdateAsset replaces the user-editable fields of an asset.
func (s *assetService) UpdateAsset(userID, assetID string, input AssetInput) (*models.Asset, error) {
	if err := validateAssetInput(input); err != nil {
		return nil, err
	}

	asset, err := s.GetAssetByID(userID, assetID)
	if err != nil {
		return nil, err
	}

	updated := assetFromInput(userID, input)
	updated.Base = asset.Base

	if updated.Category == models.AssetCategoryFixedDeposit && updated.MaturityAmount == nil &&
		updated.Principal != nil && updated.InterestRate != nil {
		updated.MaturityAmount = valuation.MaturityAmount(*updated.Principal, *updated.InterestRate, updated.PurchaseDate, updated.MaturityDate)
	}

	// Save rather than Updates so cleared pointer fields are written back as NULL.
	if err := s.db.Save(updated).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return updated, nil
}

// DeleteAsset soft-deletes an asset and hard-deletes its ledger.
func (s *assetService) DeleteAsset(userID, assetID string) error {
	asset, err := s.GetAssetByID(userID, assetID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("asset_id = ?", asset.ID).Delete(&models.AssetTransaction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(asset).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// ValueAsset resolves the asset's current value as of the given time,
// reporting which method produced it. Fixed deposits also carry a maturity
// classification.
func (s *assetService) ValueAsset(userID, assetID string, asOf time.Time) (*AssetValuation, error) {
	asset, err := s.GetAssetByID(userID, assetID)
	if err != nil {
		return nil, err
	}

	value, method := valuation.EffectiveCurrentValue(asset, asOf)
	result := &AssetValuation{
		AssetID: asset.ID,
		Value:   value,
		Method:  method,
	}

	if asset.Category == models.AssetCategoryFixedDeposit {
		status := valuation.ClassifyMaturity(asset.MaturityDate, asOf)
		result.Maturity = &status
	}

	return result, nil
}

func validateAssetInput(input AssetInput) error {
	if input.Name == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if !lo.Contains(models.AssetCategories, input.Category) {
		return apperrors.ErrInvalidCategory
	}
	if input.Currency != "AED" && input.Currency != "INR" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "currency must be AED or INR")
	}
	if input.TotalCost < 0 {
		return apperrors.ErrNegativeCost
	}
	if input.Quantity < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity must not be negative")
	}
	if input.Category == models.AssetCategoryFixedDeposit {
		if input.Principal != nil && *input.Principal < 0 {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "principal must not be negative")
		}
		if input.InterestRate != nil && *input.InterestRate < 0 {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "interest rate must not be negative")
		}
	}
	return nil
}

func assetFromInput(userID string, input AssetInput) *models.Asset {
	costPerUnit := 0.0
	if input.Quantity > 0 {
		costPerUnit = input.TotalCost / input.Quantity
	}

	return &models.Asset{
		UserID:         userID,
		Name:           input.Name,
		Category:       input.Category,
		Currency:       input.Currency,
		PurchaseDate:   input.PurchaseDate,
		Quantity:       input.Quantity,
		Unit:           input.Unit,
		TotalCost:      input.TotalCost,
		CostPerUnit:    costPerUnit,
		CurrentValue:   input.CurrentValue,
		ManualValue:    input.ManualValue,
		Principal:      input.Principal,
		InterestRate:   input.InterestRate,
		MaturityDate:   input.MaturityDate,
		MaturityAmount: input.MaturityAmount,
		Location:       input.Location,
		AreaSqft:       input.AreaSqft,
		RentalIncome:   input.RentalIncome,
		SchemeCode:     input.SchemeCode,
		FolioNo:        input.FolioNo,
		Notes:          input.Notes,
	}
}
