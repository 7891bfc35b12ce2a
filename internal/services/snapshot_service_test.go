package services

import (
	"context"
	"testing"
	"time"

	"nidhi/internal/models"
	"nidhi/internal/pagination"
	"nidhi/internal/testutil"
)

func TestComputeAndRecordSnapshots(t *testing.T) {
	t.Run("one_row_per_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		priceSvc := newOfflinePriceService(db)
		portfolioSvc := NewPortfolioService(db, priceSvc)
		svc := NewSnapshotService(db, portfolioSvc)

		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		testutil.CreateTestAsset(t, db, alice.ID, models.AssetCategoryShares, 1000)
		testutil.CreateTestAsset(t, db, bob.ID, models.AssetCategoryRealEstate, 500000)

		count, err := svc.ComputeAndRecordSnapshots(context.Background(), time.Now())
		testutil.AssertNoError(t, err)
		if count != 2 {
			t.Errorf("expected 2 snapshots, got %d", count)
		}

		var snapshot models.PortfolioSnapshot
		testutil.AssertNoError(t, db.Where("user_id = ?", alice.ID).First(&snapshot).Error)
		if snapshot.TotalValue != 1000 {
			t.Errorf("expected total value 1000, got %v", snapshot.TotalValue)
		}
		if snapshot.NetWorth != snapshot.TotalValue-snapshot.TotalLiabilities {
			t.Errorf("net worth %v inconsistent with value %v and liabilities %v",
				snapshot.NetWorth, snapshot.TotalValue, snapshot.TotalLiabilities)
		}
	})

	t.Run("same_day_rerun_overwrites", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		priceSvc := newOfflinePriceService(db)
		portfolioSvc := NewPortfolioService(db, priceSvc)
		svc := NewSnapshotService(db, portfolioSvc)

		user := testutil.CreateTestUser(t, db)
		asset := testutil.CreateTestAsset(t, db, user.ID, models.AssetCategoryShares, 1000)

		now := time.Now()
		_, err := svc.ComputeAndRecordSnapshots(context.Background(), now)
		testutil.AssertNoError(t, err)

		// Portfolio changed during the day; the rerun must overwrite.
		manual := 1500.0
		testutil.AssertNoError(t, db.Model(asset).Updates(map[string]interface{}{
			"current_value": manual, "manual_value": true,
		}).Error)

		_, err = svc.ComputeAndRecordSnapshots(context.Background(), now.Add(2*time.Hour))
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.PortfolioSnapshot{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 1 {
			t.Fatalf("expected 1 snapshot row, got %d", count)
		}

		var snapshot models.PortfolioSnapshot
		testutil.AssertNoError(t, db.Where("user_id = ?", user.ID).First(&snapshot).Error)
		if snapshot.TotalValue != 1500 {
			t.Errorf("expected overwritten value 1500, got %v", snapshot.TotalValue)
		}
	})
}

func TestGetSnapshots(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	priceSvc := newOfflinePriceService(db)
	portfolioSvc := NewPortfolioService(db, priceSvc)
	svc := NewSnapshotService(db, portfolioSvc)

	user := testutil.CreateTestUser(t, db)
	for i := 0; i < 5; i++ {
		snapshot := &models.PortfolioSnapshot{
			UserID:     user.ID,
			Date:       time.Date(2026, 8, 1+i, 0, 0, 0, 0, time.UTC),
			TotalValue: float64(1000 + i),
			NetWorth:   float64(1000 + i),
		}
		testutil.AssertNoError(t, db.Create(snapshot).Error)
	}

	from := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 4, 0, 0, 0, 0, time.UTC)
	result, err := svc.GetSnapshots(user.ID, from, to, pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if result.TotalItems != 3 {
		t.Errorf("expected 3 snapshots in range, got %d", result.TotalItems)
	}
	// Oldest first.
	if len(result.Data) == 3 && !result.Data[0].Date.Before(result.Data[2].Date) {
		t.Error("expected oldest-first ordering")
	}
}
