package service

import (
	"errors"
	"fmt"
)

// ValidationError describes one rejected input field
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a validation error for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets callers match any validation error with errors.Is(err, ErrValidation)
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Service errors
var (
	ErrValidation = errors.New("validation failed")

	// Auth
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongPortal        = errors.New("use the correct login portal for this account")
	ErrRoleNotAllowed     = errors.New("only student accounts can be registered")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")

	// Catalog
	ErrProjectNotFound      = errors.New("project not found")
	ErrProjectAlreadyExists = errors.New("a project with this title and author already exists")
	ErrInvalidState         = errors.New("project is not in a state that allows this operation")

	// Bookmarks
	ErrAlreadySaved         = errors.New("project already saved")
	ErrSavedProjectNotFound = errors.New("saved project not found")
)
