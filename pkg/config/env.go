package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/shopsight-hq/shopsight/pkg/logger"
)

const (
	// DefaultAPIEndpoint defines the default endpoint for the generative AI service
	DefaultAPIEndpoint = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultModel defines the default generative model to query
	DefaultModel = "gemini-2.0-flash"

	// DefaultRefreshInterval defines the default insight refresh interval in seconds
	DefaultRefreshInterval = 300

	// DefaultFeaturedProducts defines how many products get insights refreshed in the background
	DefaultFeaturedProducts = 4

	// DefaultServerPort defines the default port for the dashboard and metrics server
	DefaultServerPort = "8080"

	// DefaultMaxRetries defines the default retry budget per queued AI request
	DefaultMaxRetries = 5

	// DefaultInitialDelayMs defines the base backoff delay in milliseconds before the first retry
	DefaultInitialDelayMs = 5000

	// DefaultCooldownMs defines the fixed spacing in milliseconds between two queued AI requests
	DefaultCooldownMs = 1500

	// DefaultCacheTTL defines the default insight cache TTL in seconds
	DefaultCacheTTL = 600

	// DefaultCircuitBreakerEnabled defines whether the circuit breaker is enabled
	DefaultCircuitBreakerEnabled = true

	// DefaultCircuitBreakerThreshold defines the number of failures before the circuit breaker trips
	DefaultCircuitBreakerThreshold = 5

	// DefaultCircuitBreakerWindow defines the time window for the circuit breaker in seconds
	DefaultCircuitBreakerWindow = 60

	// DefaultCircuitBreakerReset defines the reset timeout for the circuit breaker in seconds
	DefaultCircuitBreakerReset = 120

	// DefaultDatasetSeed defines the default seed for the simulated store dataset
	DefaultDatasetSeed = 42

	// DefaultProductCount defines the default number of generated products
	DefaultProductCount = 24

	// DefaultSalesDays defines how many days of sales history are generated per product
	DefaultSalesDays = 90
)

// GetEnvAPIEndpoint returns the AI API endpoint from environment variables
func GetEnvAPIEndpoint() (string, error) {
	apiEndpoint := os.Getenv("AI_API_ENDPOINT")
	if apiEndpoint == "" {
		return DefaultAPIEndpoint, nil
	}

	// Validate URL format
	if _, err := url.ParseRequestURI(apiEndpoint); err != nil {
		return "", fmt.Errorf("invalid AI_API_ENDPOINT value: %s, must be a valid URL", apiEndpoint)
	}
	return apiEndpoint, nil
}

// GetEnvModel returns the generative model name from environment variables
func GetEnvModel() string {
	model := os.Getenv("AI_MODEL")
	if model == "" {
		return DefaultModel
	}
	return model
}

// GetEnvRefreshInterval returns the insight refresh interval from environment variables
func GetEnvRefreshInterval() (time.Duration, error) {
	refreshInterval := os.Getenv("REFRESH_INTERVAL")
	if refreshInterval == "" {
		return time.Duration(DefaultRefreshInterval) * time.Second, nil
	}

	interval, err := strconv.Atoi(refreshInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid REFRESH_INTERVAL value: %s, must be an integer", refreshInterval)
	}
	if interval <= 0 {
		return 0, fmt.Errorf("REFRESH_INTERVAL must be greater than 0")
	}
	return time.Duration(interval) * time.Second, nil
}

// GetEnvFeaturedProducts returns the number of products refreshed in the background
func GetEnvFeaturedProducts() (int, error) {
	featured := os.Getenv("FEATURED_PRODUCTS")
	if featured == "" {
		return DefaultFeaturedProducts, nil
	}

	count, err := strconv.Atoi(featured)
	if err != nil {
		return 0, fmt.Errorf("invalid FEATURED_PRODUCTS value: %s, must be an integer", featured)
	}
	if count <= 0 {
		return 0, fmt.Errorf("FEATURED_PRODUCTS must be greater than 0")
	}
	return count, nil
}

// GetEnvServerPort returns the dashboard server port from environment variables
func GetEnvServerPort() (string, error) {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		return DefaultServerPort, nil
	}

	// Validate port format
	if _, err := strconv.Atoi(serverPort); err != nil {
		return "", fmt.Errorf("invalid SERVER_PORT value: %s, must be a valid integer", serverPort)
	}
	return serverPort, nil
}

// GetEnvMaxRetries returns the per-request retry budget from environment variables
func GetEnvMaxRetries() (int, error) {
	maxRetries := os.Getenv("MAX_RETRIES")
	if maxRetries == "" {
		return DefaultMaxRetries, nil
	}

	maxRetriesInt, err := strconv.Atoi(maxRetries)
	if err != nil {
		return 0, fmt.Errorf("invalid MAX_RETRIES value: %s, must be an integer", maxRetries)
	}
	if maxRetriesInt <= 0 {
		return 0, fmt.Errorf("MAX_RETRIES must be greater than 0")
	}
	return maxRetriesInt, nil
}

// GetEnvInitialDelay returns the base backoff delay from environment variables
func GetEnvInitialDelay() (time.Duration, error) {
	initialDelay := os.Getenv("INITIAL_DELAY_MS")
	if initialDelay == "" {
		return DefaultInitialDelayMs * time.Millisecond, nil
	}

	ms, err := strconv.Atoi(initialDelay)
	if err != nil {
		return 0, fmt.Errorf("invalid INITIAL_DELAY_MS value: %s, must be an integer", initialDelay)
	}
	if ms <= 0 {
		return 0, fmt.Errorf("INITIAL_DELAY_MS must be greater than 0")
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// GetEnvCooldown returns the inter-request cooldown from environment variables
func GetEnvCooldown() (time.Duration, error) {
	cooldown := os.Getenv("COOLDOWN_MS")
	if cooldown == "" {
		return DefaultCooldownMs * time.Millisecond, nil
	}

	ms, err := strconv.Atoi(cooldown)
	if err != nil {
		return 0, fmt.Errorf("invalid COOLDOWN_MS value: %s, must be an integer", cooldown)
	}
	if ms < 0 {
		return 0, fmt.Errorf("COOLDOWN_MS must be greater than or equal to 0")
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// GetEnvCacheTTL returns the insight cache TTL from environment variables
func GetEnvCacheTTL() (time.Duration, error) {
	cacheTTL := os.Getenv("CACHE_TTL")
	if cacheTTL == "" {
		return DefaultCacheTTL * time.Second, nil
	}

	seconds, err := strconv.Atoi(cacheTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid CACHE_TTL value: %s, must be an integer", cacheTTL)
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("CACHE_TTL must be greater than 0")
	}
	return time.Duration(seconds) * time.Second, nil
}

// GetEnvCircuitBreakerEnabled returns whether the circuit breaker is enabled from environment variables
func GetEnvCircuitBreakerEnabled() (bool, error) {
	enabled := os.Getenv("CIRCUIT_BREAKER_ENABLED")
	if enabled == "" {
		return DefaultCircuitBreakerEnabled, nil
	}

	if enabled == "true" {
		return true, nil
	} else if enabled == "false" {
		return false, nil
	}

	return false, fmt.Errorf("invalid CIRCUIT_BREAKER_ENABLED value: %s, must be 'true' or 'false'", enabled)
}

// GetEnvCircuitBreakerThreshold returns the circuit breaker threshold from environment variables
func GetEnvCircuitBreakerThreshold() (int, error) {
	threshold := os.Getenv("CIRCUIT_BREAKER_THRESHOLD")
	if threshold == "" {
		return DefaultCircuitBreakerThreshold, nil
	}

	thresholdInt, err := strconv.Atoi(threshold)
	if err != nil {
		return 0, fmt.Errorf("invalid CIRCUIT_BREAKER_THRESHOLD value: %s, must be an integer", threshold)
	}
	if thresholdInt <= 0 {
		return 0, fmt.Errorf("CIRCUIT_BREAKER_THRESHOLD must be greater than 0")
	}
	return thresholdInt, nil
}

// GetEnvCircuitBreakerWindow returns the circuit breaker window duration from environment variables
func GetEnvCircuitBreakerWindow() (time.Duration, error) {
	window := os.Getenv("CIRCUIT_BREAKER_WINDOW")
	if window == "" {
		return DefaultCircuitBreakerWindow * time.Second, nil
	}

	parsed, err := time.ParseDuration(window)
	if err != nil {
		return 0, fmt.Errorf("invalid CIRCUIT_BREAKER_WINDOW value: %s, must be a valid duration string", window)
	}
	return parsed, nil
}

// GetEnvCircuitBreakerReset returns the circuit breaker reset timeout from environment variables
func GetEnvCircuitBreakerReset() (time.Duration, error) {
	reset := os.Getenv("CIRCUIT_BREAKER_RESET")
	if reset == "" {
		return DefaultCircuitBreakerReset * time.Second, nil
	}

	parsed, err := time.ParseDuration(reset)
	if err != nil {
		return 0, fmt.Errorf("invalid CIRCUIT_BREAKER_RESET value: %s, must be a valid duration string", reset)
	}
	return parsed, nil
}

// GetEnvDatasetSeed returns the dataset seed from environment variables
func GetEnvDatasetSeed() (int64, error) {
	seed := os.Getenv("DATASET_SEED")
	if seed == "" {
		return DefaultDatasetSeed, nil
	}

	seedInt, err := strconv.ParseInt(seed, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid DATASET_SEED value: %s, must be an integer", seed)
	}
	return seedInt, nil
}

// GetEnvProductCount returns the number of generated products from environment variables
func GetEnvProductCount() (int, error) {
	productCount := os.Getenv("PRODUCT_COUNT")
	if productCount == "" {
		return DefaultProductCount, nil
	}

	count, err := strconv.Atoi(productCount)
	if err != nil {
		return 0, fmt.Errorf("invalid PRODUCT_COUNT value: %s, must be an integer", productCount)
	}
	if count <= 0 {
		return 0, fmt.Errorf("PRODUCT_COUNT must be greater than 0")
	}
	return count, nil
}

// GetEnvSalesDays returns the length of the generated sales history from environment variables
func GetEnvSalesDays() (int, error) {
	salesDays := os.Getenv("SALES_DAYS")
	if salesDays == "" {
		return DefaultSalesDays, nil
	}

	days, err := strconv.Atoi(salesDays)
	if err != nil {
		return 0, fmt.Errorf("invalid SALES_DAYS value: %s, must be an integer", salesDays)
	}
	if days <= 0 {
		return 0, fmt.Errorf("SALES_DAYS must be greater than 0")
	}
	return days, nil
}

// GetEnvLogLevel returns the logging level from environment variables
func GetEnvLogLevel() (logger.Level, error) {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return logger.InfoLevel, nil
	}

	switch level {
	case "debug":
		return logger.DebugLevel, nil
	case "info":
		return logger.InfoLevel, nil
	case "notice":
		return logger.NoticeLevel, nil
	case "error":
		return logger.ErrorLevel, nil
	}
	return 0, fmt.Errorf("invalid LOG_LEVEL value: %s, must be 'debug', 'info', 'notice' or 'error'", level)
}

// GetEnvLogColoring returns whether log coloring is enabled from environment variables
func GetEnvLogColoring() (bool, error) {
	coloring := os.Getenv("LOG_COLORING")
	if coloring == "" {
		return true, nil
	}

	if coloring == "true" {
		return true, nil
	} else if coloring == "false" {
		return false, nil
	}

	return false, fmt.Errorf("invalid LOG_COLORING value: %s, must be 'true' or 'false'", coloring)
}
