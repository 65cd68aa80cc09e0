// Package testutil holds mocks and fixtures shared by the package tests.
package testutil

import (
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/capstone-archive/backend-go/internal/config"
	"github.com/capstone-archive/backend-go/internal/database/models"
	"github.com/capstone-archive/backend-go/internal/database/service"
)

// TestPassword is the plain text password of users built by NewUser
const TestPassword = "password123"

var dbCounter atomic.Int64

// TestConfig returns a config suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		AppEnv:                  "test",
		LogLevel:                slog.LevelError,
		ApiServicePort:          "8080",
		JWTSecret:               "test-secret-key-for-testing-purposes",
		TokenExpiration:         3600,
		ResetTokenExpiration:    900,
		BcryptCost:              4,
		AllowedOrigins:          []string{"*"},
		AnalyticsCacheTTL:       60,
		AuthRateLimit:           5,
		AuthRateWindow:          60,
		S3Region:                "us-east-1",
		ResetTokenSweepInterval: 60,
	}
}

// TestLogger returns a silent logger for testing
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewTestDB opens a private in-memory SQLite database with the schema applied
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:capstone_test_%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.SavedProject{},
		&models.AboutContent{},
	))
	return db
}

// NewUser builds a user whose password is TestPassword
func NewUser(t *testing.T, id uint, email string, role models.Role) *models.User {
	t.Helper()
	hash, err := service.HashPassword(TestPassword, 4)
	require.NoError(t, err)
	return &models.User{
		ID:       id,
		FullName: "Test User",
		Email:    email,
		Password: hash,
		Role:     role,
	}
}

// NewProject builds an active project owned by uploaderID
func NewProject(id uint, title, author string, year int, field string, uploaderID uint) *models.Project {
	return &models.Project{
		ID:         id,
		Title:      title,
		Author:     author,
		Year:       year,
		Field:      field,
		FileURL:    "https://files.example.edu/" + title + ".pdf",
		UploadedBy: uploaderID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}
