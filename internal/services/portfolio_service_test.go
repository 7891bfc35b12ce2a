package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"gorm.io/gorm"

	"nidhi/internal/config"
	"nidhi/internal/models"
	"nidhi/internal/pricing"
	"nidhi/internal/testutil"
)

// newOfflinePriceService builds a price service whose feeds are unreachable,
// so conversion falls back to FX overrides or configured defaults.
func newOfflinePriceService(db *gorm.DB) PriceServicer {
	cfg := &config.Config{
		DefaultUSDToAED: 3.6725,
		DefaultINRToAED: 0.044,
	}
	client := &http.Client{Timeout: 50 * time.Millisecond}
	dead := "http://127.0.0.1:1"
	return NewPriceService(db,
		cfg,
		pricing.NewMetalProvider(client, dead),
		pricing.NewForexProvider(client, dead),
		pricing.NewNAVProvider(client, dead),
	)
}

// setFXOverrides pins the user's conversion rates so tests never depend on
// live or default rates.
func setFXOverrides(t *testing.T, db *gorm.DB, userID string, usdToAED, inrToAED float64) {
	t.Helper()
	settings := &models.FXSetting{UserID: userID, USDToAED: usdToAED, INRToAED: inrToAED, DisplayCurrency: "AED"}
	if err := db.Create(settings).Error; err != nil {
		t.Fatalf("failed to create fx settings: %v", err)
	}
}

func TestGetOverview(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	priceSvc := newOfflinePriceService(db)
	svc := NewPortfolioService(db, priceSvc)
	user := testutil.CreateTestUser(t, db)
	setFXOverrides(t, db, user.ID, 3.6725, 0.05)

	// AED asset worth its cost, INR asset converted at the override rate.
	testutil.CreateTestAsset(t, db, user.ID, models.AssetCategoryShares, 1000)
	inr := testutil.CreateTestAsset(t, db, user.ID, models.AssetCategoryMutualFund, 100000)
	inr.Currency = "INR"
	testutil.AssertNoError(t, db.Save(inr).Error)

	overview, err := svc.GetOverview(context.Background(), user.ID, time.Now())
	testutil.AssertNoError(t, err)

	// 1000 AED + 100000 INR * 0.05 = 6000 AED.
	if overview.TotalInvested != 6000 {
		t.Errorf("expected total invested 6000, got %v", overview.TotalInvested)
	}
	if overview.AssetCount != 2 {
		t.Errorf("expected 2 assets, got %d", overview.AssetCount)
	}
	if len(overview.ByCategory) != 2 {
		t.Errorf("expected 2 category summaries, got %d", len(overview.ByCategory))
	}
	if len(overview.ByCurrency) != 2 {
		t.Errorf("expected 2 currency summaries, got %d", len(overview.ByCurrency))
	}
}

func TestGetOverviewUsesRefreshedValues(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	priceSvc := newOfflinePriceService(db)
	svc := NewPortfolioService(db, priceSvc)
	user := testutil.CreateTestUser(t, db)
	setFXOverrides(t, db, user.ID, 3.6725, 0.05)

	// current_value written by a NAV sweep, manual_value left false.
	fund := testutil.CreateTestAsset(t, db, user.ID, models.AssetCategoryMutualFund, 10000)
	testutil.AssertNoError(t, db.Model(fund).Update("current_value", 12000.0).Error)

	overview, err := svc.GetOverview(context.Background(), user.ID, time.Now())
	testutil.AssertNoError(t, err)

	if overview.TotalCurrentValue != 12000 {
		t.Errorf("expected current value 12000, got %v", overview.TotalCurrentValue)
	}
	if overview.ProfitLoss != 2000 {
		t.Errorf("expected profit 2000, got %v", overview.ProfitLoss)
	}
}

func TestGetAssetReturns(t *testing.T) {
	t.Run("ledger_based_xirr", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		priceSvc := newOfflinePriceService(db)
		svc := NewPortfolioService(db, priceSvc)
		assetSvc := NewAssetService(db)
		txSvc := NewTransactionService(db, assetSvc)
		user := testutil.CreateTestUser(t, db)
		asset := testutil.CreateTestAsset(t, db, user.ID, models.AssetCategoryShares, 0)

		start := time.Now().AddDate(-1, 0, 0)
		_, err := txSvc.RecordTransaction(user.ID, asset.ID, models.AssetTransactionBuy, start, 10, 100, 0, 0, "")
		testutil.AssertNoError(t, err)

		// Mark the position worth 1100 today: 10% over one year.
		manual := 1100.0
		testutil.AssertNoError(t, db.Model(&models.Asset{}).Where("id = ?", asset.ID).
			Updates(map[string]interface{}{"current_value": manual, "manual_value": true}).Error)

		result, err := svc.GetAssetReturns(user.ID, asset.ID, time.Now())
		testutil.AssertNoError(t, err)
		if result.Rate == nil {
			t.Fatalf("expected a rate, got unavailable=%q", result.Unavailable)
		}
		if *result.Rate < 0.08 || *result.Rate > 0.12 {
			t.Errorf("expected rate near 0.10, got %v", *result.Rate)
		}
	})

	t.Run("purchase_date_fallback", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		priceSvc := newOfflinePriceService(db)
		svc := NewPortfolioService(db, priceSvc)
		user := testutil.CreateTestUser(t, db)

		asset := testutil.CreateTestAsset(t, db, user.ID, models.AssetCategoryRealEstate, 500000)
		purchase := time.Now().AddDate(-2, 0, 0)
		manual := 600000.0
		testutil.AssertNoError(t, db.Model(&models.Asset{}).Where("id = ?", asset.ID).
			Updates(map[string]interface{}{"purchase_date": purchase, "current_value": manual, "manual_value": true}).Error)

		result, err := svc.GetAssetReturns(user.ID, asset.ID, time.Now())
		testutil.AssertNoError(t, err)
		if result.Rate == nil {
			t.Fatalf("expected a rate, got unavailable=%q", result.Unavailable)
		}
		if *result.Rate <= 0 {
			t.Errorf("expected positive rate, got %v", *result.Rate)
		}
	})

	t.Run("insufficient_data", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		priceSvc := newOfflinePriceService(db)
		svc := NewPortfolioService(db, priceSvc)
		user := testutil.CreateTestUser(t, db)

		// No ledger and no purchase date: nothing to solve against.
		asset := testutil.CreateTestAsset(t, db, user.ID, models.AssetCategoryShares, 1000)

		result, err := svc.GetAssetReturns(user.ID, asset.ID, time.Now())
		testutil.AssertNoError(t, err)
		if result.Rate != nil {
			t.Errorf("expected no rate, got %v", *result.Rate)
		}
		if result.Unavailable != "insufficient_data" {
			t.Errorf("expected insufficient_data, got %q", result.Unavailable)
		}
	})

	t.Run("asset_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		priceSvc := newOfflinePriceService(db)
		svc := NewPortfolioService(db, priceSvc)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetAssetReturns(user.ID, "00000000-0000-0000-0000-000000000000", time.Now())
		testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
	})
}

func TestGetPortfolioReturns(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	priceSvc := newOfflinePriceService(db)
	svc := NewPortfolioService(db, priceSvc)
	assetSvc := NewAssetService(db)
	txSvc := NewTransactionService(db, assetSvc)
	user := testutil.CreateTestUser(t, db)
	setFXOverrides(t, db, user.ID, 3.6725, 0.044)

	asset := testutil.CreateTestAsset(t, db, user.ID, models.AssetCategoryShares, 0)
	start := time.Now().AddDate(-1, 0, 0)
	_, err := txSvc.RecordTransaction(user.ID, asset.ID, models.AssetTransactionBuy, start, 10, 100, 0, 0, "")
	testutil.AssertNoError(t, err)

	manual := 1200.0
	testutil.AssertNoError(t, db.Model(&models.Asset{}).Where("id = ?", asset.ID).
		Updates(map[string]interface{}{"current_value": manual, "manual_value": true}).Error)

	result, err := svc.GetPortfolioReturns(context.Background(), user.ID, time.Now())
	testutil.AssertNoError(t, err)
	if result.Rate == nil {
		t.Fatalf("expected a rate, got unavailable=%q", result.Unavailable)
	}
	if *result.Rate < 0.15 || *result.Rate > 0.25 {
		t.Errorf("expected rate near 0.20, got %v", *result.Rate)
	}
}
