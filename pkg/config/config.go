package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopsight-hq/shopsight/pkg/logger"
)

// Config holds the configuration for the insights service
type Config struct {
	APIEndpoint      string
	APIKey           string
	Model            string
	RefreshInterval  time.Duration
	FeaturedProducts int
	ServerPort       string
	Queue            QueueConfig
	CacheTTL         time.Duration
	CircuitBreaker   CircuitBreakerConfig
	Dataset          DatasetConfig
	LoggerConfig     LoggerConfig
}

// QueueConfig holds the AI request queue configuration
type QueueConfig struct {
	MaxRetries   int
	InitialDelay time.Duration
	Cooldown     time.Duration
}

// CircuitBreakerConfig holds circuit breaker configuration
type CircuitBreakerConfig struct {
	Enabled        bool
	Threshold      int
	WindowDuration time.Duration
	ResetTimeout   time.Duration
}

// DatasetConfig holds the simulated store dataset configuration
type DatasetConfig struct {
	Seed         int64
	ProductCount int
	SalesDays    int
}

// LoggerConfig holds the configuration for logging
type LoggerConfig struct {
	Level    logger.Level
	Coloring bool
}

// LoadConfig loads the configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	apiEndpoint, err := GetEnvAPIEndpoint()
	if err != nil {
		return nil, err
	}

	refreshInterval, err := GetEnvRefreshInterval()
	if err != nil {
		return nil, err
	}

	featuredProducts, err := GetEnvFeaturedProducts()
	if err != nil {
		return nil, err
	}

	serverPort, err := GetEnvServerPort()
	if err != nil {
		return nil, err
	}

	maxRetries, err := GetEnvMaxRetries()
	if err != nil {
		return nil, err
	}

	initialDelay, err := GetEnvInitialDelay()
	if err != nil {
		return nil, err
	}

	cooldown, err := GetEnvCooldown()
	if err != nil {
		return nil, err
	}

	cacheTTL, err := GetEnvCacheTTL()
	if err != nil {
		return nil, err
	}

	cbEnabled, err := GetEnvCircuitBreakerEnabled()
	if err != nil {
		return nil, err
	}

	cbThreshold, err := GetEnvCircuitBreakerThreshold()
	if err != nil {
		return nil, err
	}

	cbWindow, err := GetEnvCircuitBreakerWindow()
	if err != nil {
		return nil, err
	}

	cbReset, err := GetEnvCircuitBreakerReset()
	if err != nil {
		return nil, err
	}

	datasetSeed, err := GetEnvDatasetSeed()
	if err != nil {
		return nil, err
	}

	productCount, err := GetEnvProductCount()
	if err != nil {
		return nil, err
	}

	salesDays, err := GetEnvSalesDays()
	if err != nil {
		return nil, err
	}

	logLevel, err := GetEnvLogLevel()
	if err != nil {
		return nil, err
	}

	logColoring, err := GetEnvLogColoring()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		APIEndpoint:      apiEndpoint,
		APIKey:           os.Getenv("GEMINI_API_KEY"),
		Model:            GetEnvModel(),
		RefreshInterval:  refreshInterval,
		FeaturedProducts: featuredProducts,
		ServerPort:       serverPort,
		Queue: QueueConfig{
			MaxRetries:   maxRetries,
			InitialDelay: initialDelay,
			Cooldown:     cooldown,
		},
		CacheTTL: cacheTTL,
		CircuitBreaker: CircuitBreakerConfig{
			Enabled:        cbEnabled,
			Threshold:      cbThreshold,
			WindowDuration: cbWindow,
			ResetTimeout:   cbReset,
		},
		Dataset: DatasetConfig{
			Seed:         datasetSeed,
			ProductCount: productCount,
			SalesDays:    salesDays,
		},
		LoggerConfig: LoggerConfig{
			Level:    logLevel,
			Coloring: logColoring,
		},
	}

	// Validate required environment variables
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	if cfg.Model == "" {
		return fmt.Errorf("AI_MODEL must not be empty")
	}
	return nil
}
