package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "nidhi/internal/errors"
	"nidhi/internal/models"
	"nidhi/internal/valuation"
)

// portfolioService aggregates a user's holdings into portfolio analytics.
type portfolioService struct {
	db           *gorm.DB
	priceService PriceServicer
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB, priceService PriceServicer) PortfolioServicer {
	return &portfolioService{
		db:           db,
		priceService: priceService,
	}
}

// GetOverview values every asset as of the given time, converts to AED and
// aggregates into totals, per-category and per-currency summaries.
func (s *portfolioService) GetOverview(ctx context.Context, userID string, asOf time.Time) (*valuation.Overview, error) {
	valued, err := s.ValueAssets(ctx, userID, asOf)
	if err != nil {
		return nil, err
	}

	overview := valuation.Aggregate(valued)
	return &overview, nil
}

// GetAssetReturns computes the money-weighted annualized return (XIRR) of a
// single asset from its ledger plus its current value as a terminal inflow.
func (s *portfolioService) GetAssetReturns(userID, assetID string, asOf time.Time) (*ReturnsResult, error) {
	var asset models.Asset
	if err := s.db.Where("id = ? AND user_id = ?", assetID, userID).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	flows, err := s.assetCashflows(&asset)
	if err != nil {
		return nil, err
	}

	value, _ := valuation.EffectiveCurrentValue(&asset, asOf)
	if value > 0 {
		flows = append(flows, valuation.Cashflow{Date: asOf, Amount: value})
	}

	return solveReturns(flows), nil
}

// GetPortfolioReturns computes the XIRR of the whole portfolio: every
// ledger event across assets, converted to AED, plus the portfolio's current
// value as a terminal inflow.
func (s *portfolioService) GetPortfolioReturns(ctx context.Context, userID string, asOf time.Time) (*ReturnsResult, error) {
	var assets []models.Asset
	if err := s.db.Where("user_id = ?", userID).Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	cc := s.priceService.ConversionContextFor(ctx, userID)

	var flows []valuation.Cashflow
	var totalValue float64
	for i := range assets {
		asset := &assets[i]

		assetFlows, err := s.assetCashflows(asset)
		if err != nil {
			return nil, err
		}
		for _, f := range assetFlows {
			f.Amount = cc.ToAED(f.Amount, asset.Currency)
			flows = append(flows, f)
		}

		value, _ := valuation.EffectiveCurrentValue(asset, asOf)
		totalValue += cc.ToAED(value, asset.Currency)
	}

	if totalValue > 0 {
		flows = append(flows, valuation.Cashflow{Date: asOf, Amount: totalValue})
	}

	return solveReturns(flows), nil
}

// ValueAssets loads the user's assets and values each one in AED.
func (s *portfolioService) ValueAssets(ctx context.Context, userID string, asOf time.Time) ([]valuation.ValuedAsset, error) {
	var assets []models.Asset
	if err := s.db.Where("user_id = ?", userID).Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	cc := s.priceService.ConversionContextFor(ctx, userID)

	valued := make([]valuation.ValuedAsset, 0, len(assets))
	for i := range assets {
		asset := &assets[i]
		raw, method := valuation.EffectiveCurrentValue(asset, asOf)
		valued = append(valued, valuation.ValuedAsset{
			Asset:    asset,
			Method:   method,
			RawValue: raw,
			Value:    cc.ToAED(raw, asset.Currency),
			Invested: cc.ToAED(asset.TotalCost, asset.Currency),
		})
	}
	return valued, nil
}

// assetCashflows turns an asset's ledger into XIRR cashflows. Assets without
// a ledger fall back to a single outflow at the purchase date.
func (s *portfolioService) assetCashflows(asset *models.Asset) ([]valuation.Cashflow, error) {
	var rows []models.AssetTransaction
	if err := s.db.Where("asset_id = ?", asset.ID).
		Order("date ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if len(rows) == 0 {
		if asset.PurchaseDate == nil || asset.TotalCost <= 0 {
			return nil, nil
		}
		return []valuation.Cashflow{{Date: *asset.PurchaseDate, Amount: -asset.TotalCost}}, nil
	}

	flows := make([]valuation.Cashflow, 0, len(rows))
	for _, row := range rows {
		flows = append(flows, valuation.Cashflow{Date: row.Date, Amount: row.Amount})
	}
	return flows, nil
}

// solveReturns runs XIRR and maps its failure modes onto a ReturnsResult.
func solveReturns(flows []valuation.Cashflow) *ReturnsResult {
	rate, err := valuation.XIRR(flows)
	switch {
	case err == nil:
		return &ReturnsResult{Rate: &rate}
	case errors.Is(err, valuation.ErrInsufficientCashflows):
		return &ReturnsResult{Unavailable: "insufficient_data"}
	default:
		return &ReturnsResult{Unavailable: "no_convergence"}
	}
}
