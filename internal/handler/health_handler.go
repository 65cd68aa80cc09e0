package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/capstone-archive/backend-go/internal/response"
)

// Health handles GET /api/health
func Health(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"status": "ok"})
}

// NotFound is the fallback for unknown routes
func NotFound(c *gin.Context) {
	response.Error(c, http.StatusNotFound, response.CodeNotFound, "Route not found")
}

// MethodNotAllowed is the fallback for known paths with an unsupported method
func MethodNotAllowed(c *gin.Context) {
	response.Error(c, http.StatusMethodNotAllowed, response.CodeMethodNotAllowed, "Method not allowed")
}
