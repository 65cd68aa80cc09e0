package response

import (
	"github.com/gin-gonic/gin"
)

// Error codes shared by handlers and middleware
const (
	CodeValidation         = "validation_error"
	CodeConflict           = "conflict"
	CodeInvalidState       = "invalid_state"
	CodeInvalidToken       = "invalid_token"
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeMethodNotAllowed   = "method_not_allowed"
	CodeRateLimited        = "rate_limited"
	CodeStorageUnavailable = "storage_unavailable"
	CodeInternal           = "internal_error"
)

// FieldError names one rejected input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorBody is the error member of the envelope
type ErrorBody struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

// Envelope wraps every JSON response. Error is null on success and Status
// mirrors the HTTP status code.
type Envelope struct {
	Status  int        `json:"status"`
	Error   *ErrorBody `json:"error"`
	Message string     `json:"message,omitempty"`
	Data    any        `json:"data,omitempty"`
}

// Success writes a successful envelope
func Success(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Status: status, Data: data})
}

// SuccessMessage writes a successful envelope with a human readable message
func SuccessMessage(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Status: status, Message: message, Data: data})
}

// Error writes an error envelope
func Error(c *gin.Context, status int, code, message string, details ...FieldError) {
	c.JSON(status, errorEnvelope(status, code, message, details))
}

// Abort writes an error envelope and stops the handler chain
func Abort(c *gin.Context, status int, code, message string, details ...FieldError) {
	c.AbortWithStatusJSON(status, errorEnvelope(status, code, message, details))
}

func errorEnvelope(status int, code, message string, details []FieldError) Envelope {
	return Envelope{
		Status: status,
		Error: &ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}
