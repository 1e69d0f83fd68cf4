package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
	ErrLimitReached  = errors.New("limit reached")
	ErrDatabase      = errors.New("database error")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// LimitError reports that a capacity ceiling was hit.
// It is a Forbidden error that also matches ErrLimitReached, so callers can
// tell "delete something first" apart from a plain permission failure.
type LimitError struct {
	Resource string
	Limit    int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s limit reached (max %d)", e.Resource, e.Limit)
}

func (e *LimitError) Unwrap() error { return ErrForbidden }

func (e *LimitError) Is(target error) bool { return target == ErrLimitReached }

// IsClassified reports whether err already carries one of the domain
// sentinels. Anything else is an unclassified infrastructure failure.
func IsClassified(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrAlreadyExists, ErrValidation,
		ErrUnauthorized, ErrForbidden, ErrConflict, ErrDatabase,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
