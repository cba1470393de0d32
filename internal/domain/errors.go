package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrOrganizationInactive = errors.New("organization is inactive")
	ErrUserInactive         = errors.New("user is inactive")
	ErrDuplicateEmail       = errors.New("email already exists for this organization")
	ErrDuplicateGSTIN       = errors.New("organization GSTIN already registered")
	ErrValidation           = errors.New("validation failed")
	ErrNumberConflict       = errors.New("document number conflict could not be disambiguated")
	ErrExtractionFailed     = errors.New("document extraction failed")
	ErrRenderFailed         = errors.New("document rendering failed")
	ErrUnsupportedFileType  = errors.New("unsupported file type")
)

// ValidationError reports which field failed pre-write validation.
// It matches ErrValidation under errors.Is so handlers can map the
// whole class to a 400 without losing the field detail.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError builds a field-level validation error.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
