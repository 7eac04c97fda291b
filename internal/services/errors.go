package services

import (
	"errors"
	"fmt"

	"github.com/rohits-web03/safehands/internal/repositories"
)

var (
	// ErrPersistenceDisabled is returned when the server runs without a
	// database.
	ErrPersistenceDisabled = errors.New("persistence is not configured")
	ErrNoAssignments       = errors.New("assign a contact first")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailTaken          = errors.New("user already exists with this email")
	ErrStorageDisabled     = errors.New("file storage is not configured")
)

// ValidationError reports bad input before anything is written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func isNotFound(err error) bool {
	return errors.Is(err, repositories.ErrNotFound)
}
