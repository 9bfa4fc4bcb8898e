package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Valuation ValuationConfig
	Scheduler SchedulerConfig
	Secrets   SecretsConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// ValuationConfig holds the currency and market-data settings used by the
// valuation engine. LocalCurrency is the currency all net-worth figures are
// reported in. FxSymbol is the quote-currency/local-currency pair fetched
// from the market-data provider, and FallbackFxRate is the hardcoded last
// resort when neither the provider nor the persisted setting can supply one.
type ValuationConfig struct {
	LocalCurrency     string
	LocalMarketSuffix string // ticker suffix marking a local-exchange listing
	FxSymbol          string
	FallbackFxRate    float64
	FxCacheTTL        time.Duration
	FetchTimeout      time.Duration
	FetchConcurrency  int
	PriceBufferDays   int // days fetched before a requested range to seed gap filling
}

// SchedulerConfig holds the default refresh cadence. The live value is read
// from the price_update_interval_minutes setting; this is the fallback when
// the setting is absent or unparsable.
type SchedulerConfig struct {
	DefaultIntervalMinutes int
}

// SecretsConfig holds encryption material for integration credentials.
// FernetKey may be empty, in which case integrations cannot store credentials.
type SecretsConfig struct {
	FernetKey string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/networth.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Valuation: ValuationConfig{
			LocalCurrency:     getEnv("LOCAL_CURRENCY", "TWD"),
			LocalMarketSuffix: getEnv("LOCAL_MARKET_SUFFIX", ".TW"),
			FxSymbol:          getEnv("FX_SYMBOL", "USDTWD=X"),
			FallbackFxRate:    getEnvFloat("FALLBACK_FX_RATE", 32.0),
			FxCacheTTL:        getEnvDuration("FX_CACHE_TTL", 5*time.Minute),
			FetchTimeout:      getEnvDuration("PRICE_FETCH_TIMEOUT", 10*time.Second),
			FetchConcurrency:  getEnvInt("PRICE_FETCH_CONCURRENCY", 4),
			PriceBufferDays:   7,
		},
		Scheduler: SchedulerConfig{
			DefaultIntervalMinutes: getEnvInt("PRICE_UPDATE_INTERVAL_MINUTES", 60),
		},
		Secrets: SecretsConfig{
			FernetKey: getEnv("FERNET_KEY", ""),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvFloat gets a float environment variable or returns a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvDuration gets a duration environment variable or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
