package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"nidhi/internal/models"
	"nidhi/internal/testutil"
)

func parseCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse csv: %v", err)
	}
	return records
}

func TestExportAssets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	priceSvc := newOfflinePriceService(db)
	portfolioSvc := NewPortfolioService(db, priceSvc)
	svc := NewExportService(db, portfolioSvc)
	user := testutil.CreateTestUser(t, db)

	testutil.CreateTestAsset(t, db, user.ID, models.AssetCategoryShares, 1000)
	testutil.CreateTestAsset(t, db, user.ID, models.AssetCategoryPreciousMetals, 2500)

	data, err := svc.ExportAssets(context.Background(), user.ID, time.Now())
	testutil.AssertNoError(t, err)

	records := parseCSV(t, data)
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d records", len(records))
	}
	if records[0][0] != "name" {
		t.Errorf("expected name header, got %q", records[0][0])
	}
	// Fallback valuation exports cost as value with two decimals.
	if records[1][6] != "1000.00" && records[2][6] != "1000.00" {
		t.Errorf("expected a 1000.00 total_cost cell, got %v / %v", records[1][6], records[2][6])
	}
}

func TestExportTransactions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	priceSvc := newOfflinePriceService(db)
	portfolioSvc := NewPortfolioService(db, priceSvc)
	svc := NewExportService(db, portfolioSvc)
	assetSvc := NewAssetService(db)
	txSvc := NewTransactionService(db, assetSvc)
	user := testutil.CreateTestUser(t, db)
	asset := testutil.CreateTestAsset(t, db, user.ID, models.AssetCategoryShares, 0)

	_, err := txSvc.RecordTransaction(user.ID, asset.ID, models.AssetTransactionBuy, day(0), 10, 100, 0, 0, "first lot")
	testutil.AssertNoError(t, err)
	_, err = txSvc.RecordTransaction(user.ID, asset.ID, models.AssetTransactionSell, day(5), 5, 120, 0, 0, "")
	testutil.AssertNoError(t, err)

	data, err := svc.ExportTransactions(user.ID)
	testutil.AssertNoError(t, err)

	records := parseCSV(t, data)
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d records", len(records))
	}
	// Oldest first: buy before sell.
	if records[1][2] != "buy" || records[2][2] != "sell" {
		t.Errorf("expected buy then sell, got %q then %q", records[1][2], records[2][2])
	}
	if records[1][10] != "first lot" {
		t.Errorf("expected notes preserved, got %q", records[1][10])
	}
}

func TestExportOverview(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	priceSvc := newOfflinePriceService(db)
	portfolioSvc := NewPortfolioService(db, priceSvc)
	svc := NewExportService(db, portfolioSvc)
	user := testutil.CreateTestUser(t, db)

	testutil.CreateTestAsset(t, db, user.ID, models.AssetCategoryShares, 1000)
	testutil.CreateTestAsset(t, db, user.ID, models.AssetCategoryFixedDeposit, 3000)

	data, err := svc.ExportOverview(context.Background(), user.ID, time.Now())
	testutil.AssertNoError(t, err)

	records := parseCSV(t, data)
	// Header, two categories, totals row.
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	last := records[len(records)-1]
	if last[0] != "total" {
		t.Errorf("expected totals row, got %q", last[0])
	}
	if last[2] != "4000.00" {
		t.Errorf("expected total invested 4000.00, got %q", last[2])
	}
}
