package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Shared secret for job endpoints (price refresh, snapshot compute)
	JobToken string

	// External price feed base URLs, overridable for tests and self-hosting
	MetalFeedURL string
	ForexFeedURL string
	NAVFeedURL   string

	// Fallback conversion rates used when the live forex fetch fails
	DefaultUSDToAED float64
	DefaultINRToAED float64
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "nidhi"),
		DBPassword: getEnv("DB_PASSWORD", "nidhi"),
		DBName:     getEnv("DB_NAME", "nidhi"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		JobToken:  getEnv("JOB_TOKEN", ""),

		MetalFeedURL: getEnv("METAL_FEED_URL", "https://data-asg.goldprice.org/dbXRates/USD"),
		ForexFeedURL: getEnv("FOREX_FEED_URL", "https://query1.finance.yahoo.com/v8/finance/chart"),
		NAVFeedURL:   getEnv("NAV_FEED_URL", "https://api.mfapi.in/mf"),

		DefaultUSDToAED: 3.6725,
		DefaultINRToAED: 0.044,
	}

	// Parse JWT expiration duration
	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
