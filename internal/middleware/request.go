package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/capstone-archive/backend-go/internal/response"
)

// ContextRequestID is the context key of the request id
const ContextRequestID = "requestID"

// RequestID echoes the caller's X-Request-ID or generates a new one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}
		c.Header("X-Request-ID", requestID)
		c.Set(ContextRequestID, requestID)
		c.Next()
	}
}

// SecurityHeaders adds security headers
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

// RequestLogger logs one line per request after it completes
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"request_id", c.GetString(ContextRequestID),
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("🌐 [HTTP] Request failed", attrs...)
		case status >= http.StatusBadRequest:
			logger.Warn("🌐 [HTTP] Request rejected", attrs...)
		default:
			logger.Debug("🌐 [HTTP] Request completed", attrs...)
		}
	}
}

// Recovery turns a panic into a 500 envelope
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("💥 [HTTP] Panic recovered",
			"path", c.Request.URL.Path,
			"request_id", c.GetString(ContextRequestID),
			"panic", recovered,
		)
		response.Abort(c, http.StatusInternalServerError, response.CodeInternal, "Internal server error")
	})
}
