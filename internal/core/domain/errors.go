package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotifier           = errors.New("notifier failed")
	ErrNotifierTimeout    = fmt.Errorf("%w: timed out", ErrNotifier)
)

// Entity-specific variants; all of them match ErrNotFound / ErrDuplicateKey with errors.Is.
var (
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrStackNotFound   = fmt.Errorf("stack %w", ErrNotFound)
	ErrWorkNotFound    = fmt.Errorf("work %w", ErrNotFound)
	ErrSessionNotFound = fmt.Errorf("session %w", ErrNotFound)
	ErrUserExists      = fmt.Errorf("username or email already exists: %w", ErrDuplicateKey)
)

// ValidationError reports a single rejected field. It unwraps to ErrValidation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid builds a ValidationError for field.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
