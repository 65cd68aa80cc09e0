package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/capstone-archive/backend-go/internal/database/models"
	"github.com/capstone-archive/backend-go/internal/database/service"
	"github.com/capstone-archive/backend-go/internal/response"
)

// Context keys set by the auth middleware
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextUser     = "user"
)

// AuthMiddleware handles JWT validation
type AuthMiddleware struct {
	service service.AuthService
	logger  *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware instance
func NewAuthMiddleware(service service.AuthService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		service: service,
		logger:  logger,
	}
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header
func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.Fields(c.GetHeader("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// RequireAuth resolves the bearer token to a stored user and rejects the
// request with 401 otherwise
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			m.logger.Warn("⚠️ [Middleware] Missing Authorization header", "path", c.Request.URL.Path)
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authorization header required")
			return
		}

		tokenString, ok := bearerToken(c)
		if !ok {
			m.logger.Warn("⚠️ [Middleware] Invalid Authorization header format")
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid authorization header format")
			return
		}

		user, err := m.service.CurrentUser(c.Request.Context(), tokenString)
		if err != nil {
			m.logger.Warn("⚠️ [Middleware] Invalid token", "error", err)
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid or expired token")
			return
		}

		setUser(c, user)
		m.logger.Debug("✅ [Middleware] Token validated", "user_id", user.ID)

		c.Next()
	}
}

// OptionalAuth attaches the user when a valid bearer token is present and
// lets anonymous requests through unchanged
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		user, err := m.service.CurrentUser(c.Request.Context(), tokenString)
		if err != nil {
			m.logger.Debug("🔓 [Middleware] Ignoring invalid optional token", "error", err)
			c.Next()
			return
		}

		setUser(c, user)
		c.Next()
	}
}

// RequireRole rejects authenticated users whose role is not listed with 403.
// It must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication required")
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		userID, _ := GetUserID(c)
		m.logger.Warn("⚠️ [Middleware] Insufficient role",
			"user_id", userID,
			"role", role,
			"required", roles,
		)
		response.Abort(c, http.StatusForbidden, response.CodeForbidden, "You do not have permission to perform this action")
	}
}

func setUser(c *gin.Context, user *models.User) {
	c.Set(ContextUserID, user.ID)
	c.Set(ContextUserRole, user.Role)
	c.Set(ContextUser, user)
}

// GetUserID returns the authenticated user's id
func GetUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

// GetUserRole returns the authenticated user's role
func GetUserRole(c *gin.Context) (models.Role, bool) {
	value, exists := c.Get(ContextUserRole)
	if !exists {
		return "", false
	}
	role, ok := value.(models.Role)
	return role, ok
}

// GetUser returns the authenticated user record
func GetUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(ContextUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// IsAdmin reports whether the request carries an admin identity
func IsAdmin(c *gin.Context) bool {
	role, ok := GetUserRole(c)
	return ok && role == models.RoleAdmin
}
