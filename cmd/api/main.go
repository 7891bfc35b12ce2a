package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"nidhi/internal/config"
	"nidhi/internal/database"
	"nidhi/internal/handlers"
	"nidhi/internal/logger"
	"nidhi/internal/middleware"
	"nidhi/internal/pricing"
	"nidhi/internal/services"
	"nidhi/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "nidhi/internal/docs" // Import swagger docs
)

// @title           Nidhi API
// @version         1.0
// @description     Nidhi is a personal multi-asset investment tracker covering precious metals, real estate, fixed deposits, SIPs, mutual funds, and shares held in AED and INR.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom validators
	validator.Register()

	// External price feeds
	feedClient := &http.Client{Timeout: 10 * time.Second}
	metalProvider := pricing.NewMetalProvider(feedClient, appConfig.MetalFeedURL)
	forexProvider := pricing.NewForexProvider(feedClient, appConfig.ForexFeedURL)
	navProvider := pricing.NewNAVProvider(feedClient, appConfig.NAVFeedURL)

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	assetService := services.NewAssetService(db)
	transactionService := services.NewTransactionService(db, assetService)
	priceService := services.NewPriceService(db, appConfig, metalProvider, forexProvider, navProvider)
	portfolioService := services.NewPortfolioService(db, priceService)
	snapshotService := services.NewSnapshotService(db, portfolioService)
	goalService := services.NewGoalService(db)
	exportService := services.NewExportService(db, portfolioService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	assetHandler := handlers.NewAssetHandler(assetService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	priceHandler := handlers.NewPriceHandler(priceService)
	snapshotHandler := handlers.NewSnapshotHandler(snapshotService)
	goalHandler := handlers.NewGoalHandler(goalService)
	exportHandler := handlers.NewExportHandler(exportService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Asset routes
	assets := protected.Group("/assets")
	assets.POST("", assetHandler.CreateAsset)
	assets.GET("", assetHandler.GetAssets)
	assets.GET("/:id", assetHandler.GetAsset)
	assets.PUT("/:id", assetHandler.UpdateAsset)
	assets.DELETE("/:id", assetHandler.DeleteAsset)
	assets.GET("/:id/value", assetHandler.GetAssetValue)
	assets.GET("/:id/returns", portfolioHandler.GetAssetReturns)
	assets.POST("/:id/transactions", transactionHandler.RecordTransaction)
	assets.GET("/:id/transactions", transactionHandler.GetTransactions)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Portfolio routes
	portfolio := protected.Group("/portfolio")
	portfolio.GET("/overview", portfolioHandler.GetOverview)
	portfolio.GET("/returns", portfolioHandler.GetPortfolioReturns)
	portfolio.GET("/snapshots", snapshotHandler.GetSnapshots)

	// Price routes
	prices := protected.Group("/prices")
	prices.GET("/quotes", priceHandler.GetQuotes)
	prices.POST("/navs/refresh", priceHandler.RefreshNAVs)

	// FX settings routes
	settings := protected.Group("/settings")
	settings.GET("/fx", priceHandler.GetFXSettings)
	settings.PUT("/fx", priceHandler.UpdateFXSettings)

	// Goal routes
	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.PATCH("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)
	goals.GET("/:id/progress", goalHandler.GetGoalProgress)

	protected.GET("/projections", goalHandler.GetProjections)

	// Export routes
	export := protected.Group("/export")
	export.GET("/assets", exportHandler.ExportAssets)
	export.GET("/transactions", exportHandler.ExportTransactions)
	export.GET("/overview", exportHandler.ExportOverview)

	// Job routes, guarded by the job token instead of a user session
	jobs := v1.Group("/jobs")
	jobs.Use(middleware.JobAuthMiddleware(appConfig.JobToken))
	jobs.POST("/snapshots", snapshotHandler.ComputeSnapshots)

	log.Infof("Starting Nidhi backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
