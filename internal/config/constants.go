package config

// Default configuration values
const (
	DefaultLogLevel    = "INFO"
	DefaultLogFormat   = "text"
	DefaultEnvironment = "dev"
	DefaultVersion     = "dev"

	DefaultDBUser     = "postgres"
	DefaultDBPassword = "postgres"
	DefaultDBHost     = "localhost"
	DefaultDBPort     = "5432"
	DefaultDBName     = "craftvault"

	DefaultProviderBaseURL     = "https://v2.xivapi.com/api"
	DefaultProviderIconBaseURL = "https://xivapi.com"

	DefaultProviderTimeoutSeconds = 10
	DefaultCacheTTLDays           = 30
	DefaultDedupCacheSize         = 4096
)

// Validation error messages
const (
	ErrMsgProviderBaseURLEmpty    = "PROVIDER_BASE_URL must not be empty"
	ErrMsgTimeoutNotPositiveFmt   = "provider timeout must be positive, got %s"
	ErrMsgTTLNotPositiveFmt       = "cache TTL must be positive, got %s"
	ErrMsgDedupSizeNotPositiveFmt = "dedup cache size must be positive, got %d"
)
