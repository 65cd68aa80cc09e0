package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/capstone-archive/backend-go/internal/config"
	"github.com/capstone-archive/backend-go/internal/database/models"
	"github.com/capstone-archive/backend-go/internal/database/repository"
)

const (
	tokenTypeAccess        = "access"
	tokenTypePasswordReset = "password_reset"
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string, portal models.Role) (*LoginResult, error)
	CurrentUser(ctx context.Context, tokenString string) (*models.User, error)
	ValidateAccessToken(tokenString string) (*TokenClaims, error)

	// Password reset
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, tokenString, newPassword string) error
	ClearExpiredResetTokens(ctx context.Context) (int64, error)
}

// RegisterInput carries the self-registration form
type RegisterInput struct {
	FullName      string
	ContactNumber string
	Email         string
	Password      string
	Role          string
}

// LoginResult is a freshly issued session
type LoginResult struct {
	Token     string
	ExpiresIn int64
	User      *models.User
}

// TokenClaims is what an access token proves about its bearer
type TokenClaims struct {
	UserID uint
	Role   models.Role
}

type authService struct {
	userRepo  repository.UserRepository
	jwtSecret string
	cfg       *config.Config
	logger    *slog.Logger
}

// NewAuthService creates a new authentication service instance
func NewAuthService(
	userRepo repository.UserRepository,
	cfg *config.Config,
	logger *slog.Logger,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: cfg.JWTSecret,
		cfg:       cfg,
		logger:    logger,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	s.logger.Info("📝 [AuthService] Registration attempt", "email", input.Email)

	if input.Role != "" && models.Role(input.Role) != models.RoleStudent {
		s.logger.Warn("⚠️ [AuthService] Registration with forbidden role", "email", input.Email, "role", input.Role)
		return nil, ErrRoleNotAllowed
	}

	hashedPassword, err := HashPassword(input.Password, s.cfg.BcryptCost)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to hash password", "error", err)
		return nil, err
	}

	user := &models.User{
		FullName:      input.FullName,
		ContactNumber: input.ContactNumber,
		Email:         input.Email,
		Password:      hashedPassword,
		Role:          models.RoleStudent,
	}

	// The unique index on email decides races between concurrent registrations.
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailAlreadyExists) {
			s.logger.Warn("⚠️ [AuthService] Email already registered", "email", input.Email)
			return nil, ErrEmailAlreadyExists
		}
		s.logger.Error("❌ [AuthService] Failed to create user", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [AuthService] User registered successfully", "user_id", user.ID)
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string, portal models.Role) (*LoginResult, error) {
	s.logger.Info("🔐 [AuthService] Login attempt", "email", email, "portal", portal)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warn("⚠️ [AuthService] User not found", "email", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return nil, err
	}

	if !CheckPassword(user.Password, password) {
		s.logger.Warn("⚠️ [AuthService] Invalid password", "email", email)
		return nil, ErrInvalidCredentials
	}

	if user.Role != portal {
		s.logger.Warn("⚠️ [AuthService] Login through the wrong portal",
			"user_id", user.ID,
			"role", user.Role,
			"portal", portal,
		)
		return nil, ErrWrongPortal
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to generate token", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [AuthService] User logged in successfully", "user_id", user.ID)
	return &LoginResult{
		Token:     token,
		ExpiresIn: s.cfg.TokenExpiration,
		User:      user,
	}, nil
}

// CurrentUser resolves the token to the stored user, so role or account
// changes apply without waiting for the token to expire.
func (s *authService) CurrentUser(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.ValidateAccessToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warn("⚠️ [AuthService] Token for missing user", "user_id", claims.UserID)
			return nil, ErrInvalidToken
		}
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return nil, err
	}

	return user, nil
}

func (s *authService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	claims, err := s.parseToken(tokenString, true)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if tokenType, _ := claims["type"].(string); tokenType != tokenTypeAccess {
		return nil, ErrInvalidToken
	}

	userID, ok := claimUserID(claims)
	if !ok {
		return nil, ErrInvalidToken
	}

	rawRole, _ := claims["role"].(string)
	role, err := models.ParseRole(rawRole)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &TokenClaims{UserID: userID, Role: role}, nil
}

// ==================== Password Reset ====================

// RequestPasswordReset issues a reset token for an existing student account.
// Unknown emails and admin accounts return an empty token and no error so
// that the caller cannot tell them apart.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	s.logger.Info("🔑 [AuthService] Password reset requested", "email", email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Info("ℹ️ [AuthService] Password reset for unknown email ignored")
			return "", nil
		}
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return "", err
	}

	if user.Role != models.RoleStudent {
		s.logger.Info("ℹ️ [AuthService] Password reset for non-student account ignored", "user_id", user.ID)
		return "", nil
	}

	expiry := time.Now().Add(time.Duration(s.cfg.ResetTokenExpiration) * time.Second)
	token, err := s.generateResetToken(user, expiry)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to generate reset token", "error", err)
		return "", err
	}

	// Issuing a new token overwrites the previous one, which stops working.
	if err := s.userRepo.SetResetToken(ctx, user.ID, token, expiry); err != nil {
		s.logger.Error("❌ [AuthService] Failed to store reset token", "error", err)
		return "", err
	}

	s.logger.Info("✅ [AuthService] Password reset token issued", "user_id", user.ID, "expires_at", expiry)
	return token, nil
}

func (s *authService) ResetPassword(ctx context.Context, tokenString, newPassword string) error {
	s.logger.Info("🔑 [AuthService] Password reset attempt")

	claims, err := s.parseToken(tokenString, false)
	if err != nil {
		s.logger.Warn("⚠️ [AuthService] Malformed reset token", "error", err)
		return ErrInvalidResetToken
	}
	if tokenType, _ := claims["type"].(string); tokenType != tokenTypePasswordReset {
		s.logger.Warn("⚠️ [AuthService] Wrong token type for password reset")
		return ErrInvalidResetToken
	}
	userID, ok := claimUserID(claims)
	if !ok {
		return ErrInvalidResetToken
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrInvalidResetToken
		}
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return err
	}

	if user.ResetToken == nil || *user.ResetToken != tokenString {
		s.logger.Warn("⚠️ [AuthService] Reset token does not match the stored token", "user_id", user.ID)
		return ErrInvalidResetToken
	}

	now := time.Now()
	if tokenExpired(claims, now) || !user.HasPendingReset(now) {
		s.logger.Warn("⚠️ [AuthService] Reset token expired", "user_id", user.ID)
		if err := s.userRepo.ClearResetToken(ctx, user.ID); err != nil {
			s.logger.Error("❌ [AuthService] Failed to clear expired reset token", "error", err)
		}
		return ErrInvalidResetToken
	}

	hashedPassword, err := HashPassword(newPassword, s.cfg.BcryptCost)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to hash password", "error", err)
		return err
	}

	if err := s.userRepo.CompletePasswordReset(ctx, user.ID, tokenString, hashedPassword, now); err != nil {
		if errors.Is(err, repository.ErrResetTokenMismatch) {
			s.logger.Warn("⚠️ [AuthService] Reset token consumed concurrently", "user_id", user.ID)
			return ErrInvalidResetToken
		}
		s.logger.Error("❌ [AuthService] Failed to update password", "error", err)
		return err
	}

	s.logger.Info("✅ [AuthService] Password reset completed", "user_id", user.ID)
	return nil
}

func (s *authService) ClearExpiredResetTokens(ctx context.Context) (int64, error) {
	cleared, err := s.userRepo.ClearExpiredResetTokens(ctx, time.Now())
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to clear expired reset tokens", "error", err)
		return 0, err
	}
	if cleared > 0 {
		s.logger.Info("🧹 [AuthService] Cleared expired reset tokens", "count", cleared)
	}
	return cleared, nil
}

// ==================== Tokens ====================

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"type":    tokenTypeAccess,
		"exp":     now.Add(time.Duration(s.cfg.TokenExpiration) * time.Second).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) generateResetToken(user *models.User, expiry time.Time) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"type":    tokenTypePasswordReset,
		"jti":     uuid.NewString(),
		"exp":     expiry.Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// parseToken verifies the signature. Registered claims such as exp are only
// checked when validateClaims is set.
func (s *authService) parseToken(tokenString string, validateClaims bool) (jwt.MapClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if !validateClaims {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func claimUserID(claims jwt.MapClaims) (uint, bool) {
	raw, ok := claims["user_id"].(float64)
	if !ok || raw <= 0 {
		return 0, false
	}
	return uint(raw), true
}

func tokenExpired(claims jwt.MapClaims, now time.Time) bool {
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return !now.Before(exp.Time)
}
