package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Success(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_EXPIRATION", "120")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("ALLOWED_ORIGINS", " https://archive.example.edu , ,https://admin.example.edu")
	t.Setenv("S3_BUCKET", "capstone-files")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 172.16.0.0/12")

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.ApiServicePort)
	assert.Equal(t, int64(120), cfg.TokenExpiration)
	assert.Equal(t, int64(10), cfg.BcryptCost)
	assert.Equal(t, []string{"https://archive.example.edu", "https://admin.example.edu"}, cfg.AllowedOrigins)
	assert.Equal(t, []string{"10.0.0.1", "172.16.0.0/12"}, cfg.TrustedProxies)
	assert.True(t, cfg.StorageEnabled())
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.ApiServicePort)
	assert.Equal(t, int64(604800), cfg.TokenExpiration)
	assert.Equal(t, int64(3600), cfg.ResetTokenExpiration)
	assert.Equal(t, int64(12), cfg.BcryptCost)
	assert.Equal(t, "disable", cfg.PostgreSQLSSLMode)
	assert.Empty(t, cfg.TrustedProxies)
	assert.False(t, cfg.StorageEnabled())
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Setenv("REDIS_PORT", "not-a-port")

	cfg := LoadConfig()

	assert.Equal(t, int64(6379), cfg.RedisPort)
}

func TestLoadConfig_LogLevel(t *testing.T) {
	testCases := []struct {
		raw      string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tc.raw)
			assert.Equal(t, tc.expected, LoadConfig().LogLevel)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	strongSecret := "0123456789abcdef0123456789abcdef"

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "Development with default secret",
			cfg:  Config{AppEnv: "development", JWTSecret: defaultJWTSecret, TokenExpiration: 60, ResetTokenExpiration: 60},
		},
		{
			name:    "Production with default secret",
			cfg:     Config{AppEnv: "production", JWTSecret: defaultJWTSecret, TokenExpiration: 60, ResetTokenExpiration: 60},
			wantErr: true,
		},
		{
			name:    "Production with short secret",
			cfg:     Config{AppEnv: "prod", JWTSecret: "short", TokenExpiration: 60, ResetTokenExpiration: 60},
			wantErr: true,
		},
		{
			name: "Production with strong secret",
			cfg:  Config{AppEnv: "production", JWTSecret: strongSecret, TokenExpiration: 60, ResetTokenExpiration: 60},
		},
		{
			name:    "Empty secret",
			cfg:     Config{AppEnv: "development", TokenExpiration: 60, ResetTokenExpiration: 60},
			wantErr: true,
		},
		{
			name:    "Non-positive token lifetime",
			cfg:     Config{AppEnv: "development", JWTSecret: "x", TokenExpiration: 0, ResetTokenExpiration: 60},
			wantErr: true,
		},
		{
			name:    "Non-positive reset lifetime",
			cfg:     Config{AppEnv: "development", JWTSecret: "x", TokenExpiration: 60, ResetTokenExpiration: -1},
			wantErr: true,
		},
		{
			name: "Wildcard origin outside production",
			cfg:  Config{AppEnv: "development", JWTSecret: "x", TokenExpiration: 60, ResetTokenExpiration: 60, AllowedOrigins: []string{"*"}},
		},
		{
			name:    "Wildcard origin in production",
			cfg:     Config{AppEnv: "production", JWTSecret: strongSecret, TokenExpiration: 60, ResetTokenExpiration: 60, AllowedOrigins: []string{"https://archive.example.edu", "*"}},
			wantErr: true,
		},
		{
			name: "Trusted proxies as addresses and ranges",
			cfg:  Config{AppEnv: "development", JWTSecret: "x", TokenExpiration: 60, ResetTokenExpiration: 60, TrustedProxies: []string{"10.0.0.1", "fd00::/8"}},
		},
		{
			name:    "Malformed trusted proxy",
			cfg:     Config{AppEnv: "development", JWTSecret: "x", TokenExpiration: 60, ResetTokenExpiration: 60, TrustedProxies: []string{"proxy.internal"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Environment(t *testing.T) {
	assert.True(t, (&Config{AppEnv: "Production"}).IsProduction())
	assert.False(t, (&Config{AppEnv: "production"}).IsDevelopment())
	assert.True(t, (&Config{AppEnv: "development"}).IsDevelopment())
	assert.False(t, (&Config{AppEnv: "test"}).IsDevelopment())
}
