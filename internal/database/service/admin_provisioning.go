package service

import (
	"context"
	"errors"
	"strings"

	"github.com/capstone-archive/backend-go/internal/database/models"
	"github.com/capstone-archive/backend-go/internal/database/repository"
)

// AdminInput carries the fields of an admin created outside the public API
type AdminInput struct {
	FullName      string
	ContactNumber string
	Email         string
	Password      string
}

// CreateAdmin provisions an admin account. It is used by the command line
// tools only; the HTTP API never creates admins.
func CreateAdmin(ctx context.Context, userRepo repository.UserRepository, bcryptCost int64, input AdminInput) (*models.User, error) {
	input.Email = strings.TrimSpace(input.Email)
	input.FullName = strings.TrimSpace(input.FullName)

	switch {
	case input.FullName == "":
		return nil, NewValidationError("fullName", "is required")
	case input.Email == "" || !strings.Contains(input.Email, "@"):
		return nil, NewValidationError("email", "must be a valid email address")
	case len(input.Password) < 8:
		return nil, NewValidationError("password", "must be at least 8 characters")
	}

	hashed, err := HashPassword(input.Password, bcryptCost)
	if err != nil {
		return nil, err
	}

	admin := &models.User{
		FullName:      input.FullName,
		ContactNumber: input.ContactNumber,
		Email:         input.Email,
		Password:      hashed,
		Role:          models.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrEmailAlreadyExists) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}
	return admin, nil
}
