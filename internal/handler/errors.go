package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/capstone-archive/backend-go/internal/database/service"
	"github.com/capstone-archive/backend-go/internal/response"
	"github.com/capstone-archive/backend-go/internal/storage"
)

var registerValidatorOnce sync.Once

// RegisterValidator makes validation errors report JSON field names
func RegisterValidator() {
	registerValidatorOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(func(field reflect.StructField) string {
				name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name == "" {
					return field.Name
				}
				return name
			})
		}
	})
}

// baseHandler carries what every handler needs to report errors
type baseHandler struct {
	logger       *slog.Logger
	exposeErrors bool
}

// bindJSON decodes and validates the body, writing a 400 envelope on failure
func (h *baseHandler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Warn("⚠️ [Handler] Invalid request body", "path", c.Request.URL.Path, "error", err)
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body", bindingDetails(err)...)
		return false
	}
	return true
}

func bindingDetails(err error) []response.FieldError {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]response.FieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			details = append(details, response.FieldError{
				Field:   fe.Field(),
				Message: validationMessage(fe),
			})
		}
		return details
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []response.FieldError{{Field: typeErr.Field, Message: fmt.Sprintf("must be of type %s", typeErr.Type)}}
	}

	if errors.Is(err, io.EOF) {
		return []response.FieldError{{Field: "body", Message: "is required"}}
	}

	return []response.FieldError{{Field: "body", Message: "must be valid JSON"}}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url", "http_url":
		return "must be a valid URL"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// handleServiceError maps service errors to HTTP responses
func (h *baseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request",
			response.FieldError{Field: validationErr.Field, Message: validationErr.Message})
	case errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrProjectAlreadyExists),
		errors.Is(err, service.ErrAlreadySaved):
		response.Error(c, http.StatusBadRequest, response.CodeConflict, err.Error())
	case errors.Is(err, service.ErrInvalidState):
		response.Error(c, http.StatusBadRequest, response.CodeInvalidState, err.Error())
	case errors.Is(err, service.ErrInvalidResetToken):
		response.Error(c, http.StatusBadRequest, response.CodeInvalidToken, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrWrongPortal):
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, err.Error())
	case errors.Is(err, service.ErrInvalidToken):
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid or expired token")
	case errors.Is(err, service.ErrRoleNotAllowed):
		response.Error(c, http.StatusForbidden, response.CodeForbidden, err.Error())
	case errors.Is(err, service.ErrProjectNotFound),
		errors.Is(err, service.ErrSavedProjectNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
	case errors.Is(err, storage.ErrUnsupportedContentType):
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request",
			response.FieldError{Field: "contentType", Message: err.Error()})
	case errors.Is(err, storage.ErrStorageDisabled):
		response.Error(c, http.StatusServiceUnavailable, response.CodeStorageUnavailable, err.Error())
	default:
		h.logger.Error("❌ [Handler] Internal server error", "path", c.Request.URL.Path, "error", err)
		message := "Internal server error"
		if h.exposeErrors {
			message = err.Error()
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, message)
	}
}
