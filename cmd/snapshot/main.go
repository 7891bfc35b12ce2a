package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"nidhi/internal/config"
	"nidhi/internal/database"
	"nidhi/internal/logger"
	"nidhi/internal/pricing"
	"nidhi/internal/services"
	"nidhi/internal/timeutil"
)

// Records a portfolio snapshot for every active user. Meant to run once a
// day from cron; safe to re-run, the same day's snapshot is overwritten.
func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Snapshot error: %v", err)
	}
}

func run() error {
	dateFlag := flag.String("date", "", "snapshot date in YYYY-MM-DD format (default: today)")
	flag.Parse()

	date := time.Now().UTC()
	if *dateFlag != "" {
		parsed, err := timeutil.ParseDate(*dateFlag)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", *dateFlag, err)
		}
		date = parsed
	}

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	feedClient := &http.Client{Timeout: 10 * time.Second}
	metalProvider := pricing.NewMetalProvider(feedClient, appConfig.MetalFeedURL)
	forexProvider := pricing.NewForexProvider(feedClient, appConfig.ForexFeedURL)
	navProvider := pricing.NewNAVProvider(feedClient, appConfig.NAVFeedURL)

	db := dbManager.DB()
	priceService := services.NewPriceService(db, appConfig, metalProvider, forexProvider, navProvider)
	portfolioService := services.NewPortfolioService(db, priceService)
	snapshotService := services.NewSnapshotService(db, portfolioService)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	count, err := snapshotService.ComputeAndRecordSnapshots(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to record snapshots: %w", err)
	}

	logger.Get().Infof("Recorded %d portfolio snapshot(s) for %s", count, timeutil.FormatDate(date))
	return nil
}
