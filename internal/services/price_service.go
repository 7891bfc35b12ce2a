package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"nidhi/internal/config"
	apperrors "nidhi/internal/errors"
	"nidhi/internal/logger"
	"nidhi/internal/models"
	"nidhi/internal/pricing"
	"nidhi/internal/valuation"
)

// priceService fetches external reference prices and resolves the effective
// conversion rates for a user, honoring their FX overrides.
type priceService struct {
	db     *gorm.DB
	cfg    *config.Config
	metals *pricing.MetalProvider
	forex  *pricing.ForexProvider
	navs   *pricing.NAVProvider
}

// NewPriceService creates a new PriceServicer.
func NewPriceService(db *gorm.DB, cfg *config.Config, metals *pricing.MetalProvider, forex *pricing.ForexProvider, navs *pricing.NAVProvider) PriceServicer {
	return &priceService{
		db:     db,
		cfg:    cfg,
		metals: metals,
		forex:  forex,
		navs:   navs,
	}
}

// GetQuotes fetches metal spot prices and forex rates concurrently. Each feed
// fails independently: a dead feed yields "failed" quotes while the others
// still return live data. User FX overrides replace the corresponding live
// quotes.
func (s *priceService) GetQuotes(ctx context.Context, userID string) (*QuoteSet, error) {
	log := logger.Get()
	now := time.Now()

	var (
		wg        sync.WaitGroup
		spot      map[string]float64
		spotErr   error
		usdAED    float64
		usdAEDErr error
		inrAED    float64
		inrAEDErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		spot, spotErr = s.metals.FetchSpot(ctx)
	}()
	go func() {
		defer wg.Done()
		usdAED, usdAEDErr = s.forex.FetchRate(ctx, "USDAED")
	}()
	go func() {
		defer wg.Done()
		inrAED, inrAEDErr = s.forex.FetchRate(ctx, "INRAED")
	}()
	wg.Wait()

	settings := s.fxSettingsOrDefaults(userID)

	usdQuote := pricing.FailedForexQuote("USD_AED", now)
	switch {
	case settings.USDToAED > 0:
		usdQuote = pricing.OverrideForexQuote("USD_AED", settings.USDToAED, now)
	case usdAEDErr == nil:
		usdQuote = pricing.NormalizeForex("USD_AED", usdAED, now)
	default:
		log.Warnw("forex fetch failed", "pair", "USD_AED", "error", usdAEDErr)
	}

	inrQuote := pricing.FailedForexQuote("INR_AED", now)
	switch {
	case settings.INRToAED > 0:
		inrQuote = pricing.OverrideForexQuote("INR_AED", settings.INRToAED, now)
	case inrAEDErr == nil:
		inrQuote = pricing.NormalizeForex("INR_AED", inrAED, now)
	default:
		log.Warnw("forex fetch failed", "pair", "INR_AED", "error", inrAEDErr)
	}

	// Metal quotes need a USD→AED rate; fall back to the configured default
	// when neither an override nor a live rate is available.
	usdToAED := s.cfg.DefaultUSDToAED
	if settings.USDToAED > 0 {
		usdToAED = settings.USDToAED
	} else if usdAEDErr == nil && usdAED > 0 {
		usdToAED = usdAED
	}

	metals := make([]pricing.MetalQuote, 0, 2)
	if spotErr != nil {
		log.Warnw("metal spot fetch failed", "error", spotErr)
		metals = append(metals, pricing.FailedMetalQuote("XAU", now), pricing.FailedMetalQuote("XAG", now))
	} else {
		metals = append(metals,
			pricing.NormalizeMetal("XAU", spot["XAU"], usdToAED, now),
			pricing.NormalizeMetal("XAG", spot["XAG"], usdToAED, now),
		)
	}

	return &QuoteSet{
		Metals:    metals,
		Forex:     []pricing.ForexQuote{usdQuote, inrQuote},
		FetchedAt: now,
	}, nil
}

// ConversionContextFor resolves the rates used to convert between holding
// currencies for the user: overrides first, then live rates, then the
// configured defaults. Never fails; a dead feed degrades to defaults.
// Pairs without an override are fetched concurrently, so the call costs one
// feed round-trip at most.
func (s *priceService) ConversionContextFor(ctx context.Context, userID string) valuation.ConversionContext {
	settings := s.fxSettingsOrDefaults(userID)

	cc := valuation.ConversionContext{
		DisplayCurrency: settings.DisplayCurrency,
		USDToAED:        s.cfg.DefaultUSDToAED,
		INRToAED:        s.cfg.DefaultINRToAED,
	}

	var (
		wg     sync.WaitGroup
		usdAED float64
		usdErr error
		inrAED float64
		inrErr error
	)

	if settings.USDToAED <= 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			usdAED, usdErr = s.forex.FetchRate(ctx, "USDAED")
		}()
	}
	if settings.INRToAED <= 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inrAED, inrErr = s.forex.FetchRate(ctx, "INRAED")
		}()
	}
	wg.Wait()

	if settings.USDToAED > 0 {
		cc.USDToAED = settings.USDToAED
	} else if usdErr == nil && usdAED > 0 {
		cc.USDToAED = usdAED
	}

	if settings.INRToAED > 0 {
		cc.INRToAED = settings.INRToAED
	} else if inrErr == nil && inrAED > 0 {
		cc.INRToAED = inrAED
	}

	return cc
}

// RefreshNAVs fetches the latest NAV for each of the user's mutual fund and
// SIP assets that carry a scheme code, and updates their current value to
// NAV times units held. Manually valued assets are skipped. Returns the
// number of assets updated; individual scheme failures are logged and
// skipped rather than aborting the sweep.
func (s *priceService) RefreshNAVs(ctx context.Context, userID string) (int, error) {
	log := logger.Get()

	var assets []models.Asset
	err := s.db.Where("user_id = ? AND category IN ? AND scheme_code != '' AND manual_value = ?",
		userID,
		[]models.AssetCategory{models.AssetCategoryMutualFund, models.AssetCategorySIP},
		false,
	).Find(&assets).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updated := 0
	for i := range assets {
		asset := &assets[i]

		quote, err := s.navs.FetchLatest(ctx, asset.SchemeCode)
		if err != nil {
			log.Warnw("nav fetch failed", "scheme_code", asset.SchemeCode, "asset_id", asset.ID, "error", err)
			continue
		}
		if !quote.NAV.Valid {
			continue
		}

		nav, _ := quote.NAV.Decimal.Float64()
		value := nav * asset.Quantity
		if err := s.db.Model(asset).Update("current_value", value).Error; err != nil {
			return updated, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		updated++
	}

	return updated, nil
}

// GetFXSettings returns the user's FX settings, creating the default row on
// first access.
func (s *priceService) GetFXSettings(userID string) (*models.FXSetting, error) {
	var settings models.FXSetting
	err := s.db.Where("user_id = ?", userID).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	settings = models.FXSetting{UserID: userID, DisplayCurrency: "AED"}
	if err := s.db.Create(&settings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &settings, nil
}

// UpdateFXSettings stores the user's conversion overrides. A zero rate means
// "use the live rate".
func (s *priceService) UpdateFXSettings(userID string, usdToAED, inrToAED float64, displayCurrency string) (*models.FXSetting, error) {
	if usdToAED < 0 || inrToAED < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "override rates must not be negative")
	}
	switch displayCurrency {
	case "AED", "INR", "USD":
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "display currency must be AED, INR or USD")
	}

	settings, err := s.GetFXSettings(userID)
	if err != nil {
		return nil, err
	}

	settings.USDToAED = usdToAED
	settings.INRToAED = inrToAED
	settings.DisplayCurrency = displayCurrency
	if err := s.db.Save(settings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return settings, nil
}

// fxSettingsOrDefaults loads the user's FX settings without creating a row,
// returning zero-valued settings when absent.
func (s *priceService) fxSettingsOrDefaults(userID string) models.FXSetting {
	var settings models.FXSetting
	if err := s.db.Where("user_id = ?", userID).First(&settings).Error; err != nil {
		return models.FXSetting{UserID: userID, DisplayCurrency: "AED"}
	}
	return settings
}
