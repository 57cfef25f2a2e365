package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	LogLevel    string
	LogFormat   string
	Environment string
	Version     string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// ProviderBaseURL is the root of the item-data API.
	ProviderBaseURL string
	// ProviderIconBaseURL is the root used to resolve icon asset paths.
	ProviderIconBaseURL string
	// ProviderTimeout bounds each outbound provider call.
	ProviderTimeout time.Duration

	// CacheTTL is how long non-blob cache records stay fresh.
	CacheTTL time.Duration
	// DedupCacheSize caps the in-process request memoization layer.
	DedupCacheSize int
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:            getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:           getEnv("LOG_FORMAT", DefaultLogFormat),
		Environment:         getEnv("ENVIRONMENT", DefaultEnvironment),
		Version:             getEnv("VERSION", DefaultVersion),
		DBUser:              getEnv("DB_USER", DefaultDBUser),
		DBPassword:          getEnv("DB_PASSWORD", DefaultDBPassword),
		DBHost:              getEnv("DB_HOST", DefaultDBHost),
		DBPort:              getEnv("DB_PORT", DefaultDBPort),
		DBName:              getEnv("DB_NAME", DefaultDBName),
		ProviderBaseURL:     getEnv("PROVIDER_BASE_URL", DefaultProviderBaseURL),
		ProviderIconBaseURL: getEnv("PROVIDER_ICON_BASE_URL", DefaultProviderIconBaseURL),
	}

	timeoutSec, err := getEnvInt("PROVIDER_TIMEOUT_SECONDS", DefaultProviderTimeoutSeconds)
	if err != nil {
		return nil, err
	}
	cfg.ProviderTimeout = time.Duration(timeoutSec) * time.Second

	ttlDays, err := getEnvInt("CACHE_TTL_DAYS", DefaultCacheTTLDays)
	if err != nil {
		return nil, err
	}
	cfg.CacheTTL = time.Duration(ttlDays) * 24 * time.Hour

	dedupSize, err := getEnvInt("DEDUP_CACHE_SIZE", DefaultDedupCacheSize)
	if err != nil {
		return nil, err
	}
	cfg.DedupCacheSize = dedupSize

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the loaded configuration is internally consistent.
func (c *Config) Validate() error {
	if c.ProviderBaseURL == "" {
		return fmt.Errorf("%s", ErrMsgProviderBaseURLEmpty)
	}
	if c.ProviderTimeout <= 0 {
		return fmt.Errorf(ErrMsgTimeoutNotPositiveFmt, c.ProviderTimeout)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf(ErrMsgTTLNotPositiveFmt, c.CacheTTL)
	}
	if c.DedupCacheSize <= 0 {
		return fmt.Errorf(ErrMsgDedupSizeNotPositiveFmt, c.DedupCacheSize)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
