package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
	StorageS3       = "s3"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Redis    RedisConfig
	S3       S3Config
	Logger   LoggerConfig
	Auth     AuthConfig
	Currency CurrencyConfig
	Checkout CheckoutConfig
	NATS     NATSConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// StorageConfig selects where the persisted documents live.
type StorageConfig struct {
	Backend string
	// Dir is the file backend directory, and the local fallback copy for
	// remote backends when Mirror is set.
	Dir    string
	Mirror bool
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// S3Config holds AWS S3 configuration for document storage.
type S3Config struct {
	Bucket string
	Region string
	Prefix string // Path prefix within bucket (e.g., "storefront/")
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	APIKey        string
	AdminPassword string
	BcryptCost    int
}

// CurrencyConfig holds display currency and live rate settings.
type CurrencyConfig struct {
	Base            string
	RatesURL        string
	RefreshTimeout  time.Duration
	RefreshInterval time.Duration // 0 refreshes once at startup
}

// CheckoutConfig holds checkout flow settings.
type CheckoutConfig struct {
	ProcessingDelay time.Duration
}

// NATSConfig holds order notification settings. An empty URL disables
// notifications.
type NATSConfig struct {
	URL     string
	Subject string
}

// Load loads configuration from environment variables. A .env file in the
// working directory is read first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Storage: StorageConfig{
			Backend: getEnv("STORAGE_BACKEND", StorageFile),
			Dir:     getEnv("STORAGE_DIR", "data/state"),
			Mirror:  getEnvAsBool("STORAGE_MIRROR", true),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "storefront"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 10),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 1),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Redis: RedisConfig{
			Addr:      getEnv("REDIS_ADDR", "localhost:6379"),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getEnvAsInt("REDIS_DB", 0),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "storefront:"),
		},
		S3: S3Config{
			Bucket: getEnv("S3_BUCKET", ""),
			Region: getEnv("S3_REGION", "us-east-1"),
			Prefix: getEnv("S3_PREFIX", "storefront/"),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			APIKey:        getEnv("API_KEY", ""),
			AdminPassword: getEnv("ADMIN_PASSWORD", "admin"),
			BcryptCost:    getEnvAsInt("BCRYPT_COST", 10),
		},
		Currency: CurrencyConfig{
			Base:            getEnv("CURRENCY_BASE", "INR"),
			RatesURL:        getEnv("CURRENCY_RATES_URL", "https://api.exchangerate.host/latest"),
			RefreshTimeout:  getEnvAsDuration("CURRENCY_REFRESH_TIMEOUT", 5*time.Second),
			RefreshInterval: getEnvAsDuration("CURRENCY_REFRESH_INTERVAL", 0),
		},
		Checkout: CheckoutConfig{
			ProcessingDelay: getEnvAsDuration("CHECKOUT_PROCESSING_DELAY", 2*time.Second),
		},
		NATS: NATSConfig{
			URL:     getEnv("NATS_URL", ""),
			Subject: getEnv("NATS_SUBJECT", "orders.placed"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Storage.Backend {
	case StorageMemory:
	case StorageFile:
		if c.Storage.Dir == "" {
			return fmt.Errorf("storage directory is required for the file backend")
		}
	case StoragePostgres:
		if err := c.Database.validate(); err != nil {
			return err
		}
	case StorageRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis address is required for the redis backend")
		}
	case StorageS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required for the s3 backend")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required for the s3 backend")
		}
	default:
		return fmt.Errorf("invalid storage backend: %s (must be memory, file, postgres, redis, or s3)", c.Storage.Backend)
	}

	if c.Auth.APIKey == "" {
		return fmt.Errorf("API key is required")
	}

	if c.Auth.AdminPassword == "" {
		return fmt.Errorf("admin password is required")
	}

	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("invalid bcrypt cost: %d (must be between 4 and 31)", c.Auth.BcryptCost)
	}

	if c.Currency.Base == "" {
		return fmt.Errorf("base currency is required")
	}

	if c.Currency.RefreshTimeout <= 0 {
		return fmt.Errorf("currency refresh timeout must be positive")
	}

	if c.Currency.RefreshInterval < 0 {
		return fmt.Errorf("currency refresh interval cannot be negative")
	}

	if c.Checkout.ProcessingDelay < 0 {
		return fmt.Errorf("checkout processing delay cannot be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

func (c *DatabaseConfig) validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a time.Duration
// ("1500ms", "2s") or returns a default value.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
