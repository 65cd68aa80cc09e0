package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/netip"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv                  string
	LogLevel                slog.Level
	ApiServicePort          string
	PostgreSQLHost          string
	PostgreSQLPort          int64
	PostgreSQLUser          string
	PostgreSQLPassword      string
	PostgreSQLDatabase      string
	PostgreSQLSSLMode       string
	DBConnectRetries        int64
	JWTSecret               string
	TokenExpiration         int64 // Session token lifetime in seconds
	ResetTokenExpiration    int64 // Password reset token lifetime in seconds
	BcryptCost              int64
	AllowedOrigins          []string
	TrustedProxies          []string // Peers whose X-Forwarded-For is honored
	RedisHost               string
	RedisPort               int64
	RedisPassword           string
	RedisDatabase           int64
	AnalyticsCacheTTL       int64 // Analytics cache TTL in seconds
	AuthRateLimit           int64
	AuthRateWindow          int64 // Seconds
	S3Bucket                string
	S3Region                string
	S3Endpoint              string
	S3AccessKey             string
	S3SecretKey             string
	S3PublicBaseURL         string
	ResetTokenSweepInterval int64 // Seconds
}

const defaultJWTSecret = "capstone_secret"

// LoadConfig reads the environment, after merging an optional .env file.
func LoadConfig() *Config {
	// Missing .env is the normal case in containers.
	_ = godotenv.Load()

	return &Config{
		AppEnv:                  getEnv("APP_ENV", "development"),                                            // Default development
		LogLevel:                getLogLevel(),                                                               // Default INFO
		ApiServicePort:          getEnv("PORT", "8080"),                                                      // Default 8080
		PostgreSQLHost:          getEnv("POSTGRESQL_HOST", "db"),                                             // Default db
		PostgreSQLPort:          getEnvAsInt64("POSTGRESQL_PORT", 5432),                                      // Default 5432
		PostgreSQLUser:          getEnv("POSTGRESQL_USER", "capstone_user"),                                  // Default user
		PostgreSQLPassword:      getEnv("POSTGRESQL_PASSWORD", "capstone_password"),                          // Default password
		PostgreSQLDatabase:      getEnv("POSTGRESQL_DATABASE", "capstone_db"),                                // Default database name
		PostgreSQLSSLMode:       getEnv("POSTGRESQL_SSLMODE", "disable"),                                     // Default disable
		DBConnectRetries:        getEnvAsInt64("DB_CONNECT_RETRIES", 30),                                     // Default 30 attempts
		JWTSecret:               getEnv("JWT_SECRET", defaultJWTSecret),                                      // Default secret key
		TokenExpiration:         getEnvAsInt64("TOKEN_EXPIRATION", 604800),                                   // Default 7 days
		ResetTokenExpiration:    getEnvAsInt64("RESET_TOKEN_EXPIRATION", 3600),                               // Default 1 hour
		BcryptCost:              getEnvAsInt64("BCRYPT_COST", 12),                                            // Default 12 rounds
		AllowedOrigins:          getEnvAsList("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000"), // Default Vite + CRA dev servers
		TrustedProxies:          getEnvAsList("TRUSTED_PROXIES", ""),                                          // Default none, ClientIP is the peer
		RedisHost:               getEnv("REDIS_HOST", "redis"),                                               // Default redis
		RedisPort:               getEnvAsInt64("REDIS_PORT", 6379),                                           // Default 6379
		RedisPassword:           getEnv("REDIS_PASSWORD", ""),                                                // Default empty
		RedisDatabase:           getEnvAsInt64("REDIS_DATABASE", 0),                                          // Default 0
		AnalyticsCacheTTL:       getEnvAsInt64("ANALYTICS_CACHE_TTL", 300),                                   // Default 5 minutes
		AuthRateLimit:           getEnvAsInt64("AUTH_RATE_LIMIT", 20),                                        // Default 20 attempts
		AuthRateWindow:          getEnvAsInt64("AUTH_RATE_WINDOW", 900),                                      // Default 15 minutes
		S3Bucket:                getEnv("S3_BUCKET", ""),                                                     // Uploads disabled when empty
		S3Region:                getEnv("S3_REGION", "us-east-1"),                                            // Default us-east-1
		S3Endpoint:              getEnv("S3_ENDPOINT", ""),                                                   // Empty means AWS
		S3AccessKey:             getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:             getEnv("S3_SECRET_KEY", ""),
		S3PublicBaseURL:         getEnv("S3_PUBLIC_BASE_URL", ""),
		ResetTokenSweepInterval: getEnvAsInt64("RESET_TOKEN_SWEEP_INTERVAL", 900), // Default 15 minutes
	}
}

// IsProduction reports whether the service runs with production semantics.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.AppEnv)
	return env == "production" || env == "prod"
}

// IsDevelopment reports whether internal error details may be exposed.
func (c *Config) IsDevelopment() bool {
	return strings.ToLower(c.AppEnv) == "development"
}

// StorageEnabled reports whether presigned uploads are configured.
func (c *Config) StorageEnabled() bool {
	return c.S3Bucket != ""
}

// Validate rejects configurations that are unsafe to run in production.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.TokenExpiration <= 0 {
		return errors.New("TOKEN_EXPIRATION must be positive")
	}
	if c.ResetTokenExpiration <= 0 {
		return errors.New("RESET_TOKEN_EXPIRATION must be positive")
	}
	for _, proxy := range c.TrustedProxies {
		if _, err := netip.ParsePrefix(proxy); err == nil {
			continue
		}
		if _, err := netip.ParseAddr(proxy); err != nil {
			return fmt.Errorf("TRUSTED_PROXIES entry %q is not an IP or CIDR", proxy)
		}
	}
	if c.IsProduction() {
		if slices.Contains(c.AllowedOrigins, "*") {
			return errors.New("ALLOWED_ORIGINS must list explicit origins in production")
		}
		if c.JWTSecret == defaultJWTSecret {
			return errors.New("JWT_SECRET must be changed from the default value in production")
		}
		if len(c.JWTSecret) < 32 {
			return errors.New("JWT_SECRET must be at least 32 characters in production")
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
			return value
		}
	}
	return fallback
}

func getEnvAsList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

func getLogLevel() slog.Level {
	levelStr := getEnv("LOG_LEVEL", "INFO")

	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
