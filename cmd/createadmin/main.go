package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/capstone-archive/backend-go/internal/cli"
	"github.com/capstone-archive/backend-go/internal/config"
	"github.com/capstone-archive/backend-go/internal/database"
	"github.com/capstone-archive/backend-go/internal/database/repository"
	"github.com/capstone-archive/backend-go/internal/database/service"
	"github.com/capstone-archive/backend-go/internal/logger"
)

func main() {
	cfg := config.LoadConfig()
	appLogger := logger.New(cfg)

	reader := bufio.NewReader(os.Stdin)
	input, err := promptAdmin(reader)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	db, err := database.ConnectDatabase(cfg, appLogger)
	if err != nil {
		appLogger.Error("❌ [CreateAdmin] Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := service.CreateAdmin(ctx, repository.NewUserRepository(db), cfg.BcryptCost, input)
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			fmt.Fprintf(os.Stderr, "error: %s %s\n", validationErr.Field, validationErr.Message)
		case errors.Is(err, service.ErrEmailAlreadyExists):
			fmt.Fprintln(os.Stderr, "error: an account with this email already exists")
		default:
			appLogger.Error("❌ [CreateAdmin] Failed to create admin", "error", err)
		}
		os.Exit(1)
	}

	appLogger.Info("✅ [CreateAdmin] Admin created", "id", admin.ID, "email", admin.Email)
}

func promptAdmin(reader *bufio.Reader) (service.AdminInput, error) {
	var input service.AdminInput
	var err error

	if input.FullName, err = cli.AskText(reader, os.Stdout, "Full name"); err != nil {
		return input, err
	}
	if input.Email, err = cli.AskText(reader, os.Stdout, "Email"); err != nil {
		return input, err
	}
	if input.ContactNumber, err = cli.AskText(reader, os.Stdout, "Contact number (optional)"); err != nil {
		return input, err
	}
	if input.Password, err = cli.AskPassword(os.Stdout); err != nil {
		return input, err
	}
	return input, nil
}
