package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/capstone-archive/backend-go/internal/database"
	"github.com/capstone-archive/backend-go/internal/database/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)

	// Password reset
	SetResetToken(ctx context.Context, id uint, token string, expiry time.Time) error
	ClearResetToken(ctx context.Context, id uint) error
	CompletePasswordReset(ctx context.Context, id uint, token, passwordHash string, now time.Time) error
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if database.IsUniqueViolation(err) {
		return ErrEmailAlreadyExists
	}
	return err
}

// FindByEmail matches the address exactly, case included
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ==================== Password Reset ====================

func (r *userRepository) SetResetToken(ctx context.Context, id uint, token string, expiry time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reset_token":        token,
			"reset_token_expiry": expiry,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) ClearResetToken(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reset_token":        nil,
			"reset_token_expiry": nil,
		}).Error
}

// CompletePasswordReset swaps the password and clears the reset token in one
// statement, only while the stored token still matches and has not expired.
// A concurrent second use of the same token therefore updates nothing.
func (r *userRepository) CompletePasswordReset(ctx context.Context, id uint, token, passwordHash string, now time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND reset_token = ? AND reset_token_expiry > ?", id, token, now).
		Updates(map[string]interface{}{
			"password":           passwordHash,
			"reset_token":        nil,
			"reset_token_expiry": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrResetTokenMismatch
	}
	return nil
}

func (r *userRepository) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("reset_token IS NOT NULL AND reset_token_expiry <= ?", now).
		Updates(map[string]interface{}{
			"reset_token":        nil,
			"reset_token_expiry": nil,
		})
	return result.RowsAffected, result.Error
}

// Repository errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrResetTokenMismatch = errors.New("reset token does not match")
)
