package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/capstone-archive/backend-go/internal/config"
	"github.com/capstone-archive/backend-go/internal/database/models"
	"github.com/capstone-archive/backend-go/internal/database/service"
	"github.com/capstone-archive/backend-go/internal/middleware"
	"github.com/capstone-archive/backend-go/internal/response"
)

const forgotPasswordMessage = "If an account with that email exists, a password reset link has been sent"

// AuthHandler handles HTTP requests for authentication
type AuthHandler struct {
	baseHandler
	service   service.AuthService
	echoReset bool
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(service service.AuthService, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: baseHandler{logger: logger, exposeErrors: cfg.IsDevelopment()},
		service:     service,
		echoReset:   !cfg.IsProduction(),
	}
}

// Request/Response DTOs
type RegisterRequest struct {
	FullName      string `json:"fullName" binding:"required,max=255"`
	ContactNumber string `json:"contactNumber" binding:"omitempty,max=32"`
	Email         string `json:"email" binding:"required,email,max=255"`
	Password      string `json:"password" binding:"required,min=8,max=72"`
	Role          string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"tokenType"`
	ExpiresIn int64        `json:"expiresIn"`
	User      *models.User `json:"user"`
}

// Register handles student self-registration
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.service.Register(c.Request.Context(), service.RegisterInput{
		FullName:      req.FullName,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		Password:      req.Password,
		Role:          req.Role,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusCreated, "Registration successful", gin.H{"user": user})
}

// Login handles the student portal login
func (h *AuthHandler) Login(c *gin.Context) {
	h.login(c, models.RoleStudent)
}

// AdminLogin handles the admin portal login
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	h.login(c, models.RoleAdmin)
}

func (h *AuthHandler) login(c *gin.Context, portal models.Role) {
	var req LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Email, req.Password, portal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, LoginResponse{
		Token:     result.Token,
		TokenType: "Bearer",
		ExpiresIn: result.ExpiresIn,
		User:      result.User,
	})
}

// Me returns the authenticated user
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication required")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// ForgotPassword issues a reset token. The response is the same whether or
// not the account exists.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}

	token, err := h.service.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if h.echoReset && token != "" {
		response.SuccessMessage(c, http.StatusOK, forgotPasswordMessage, gin.H{"resetToken": token})
		return
	}
	response.SuccessMessage(c, http.StatusOK, forgotPasswordMessage, nil)
}

// ResetPassword consumes a reset token
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusOK, "Password has been reset successfully", nil)
}
