package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("user already exists with this email")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access denied")

	// ErrTokenExpired is an Unauthenticated sub-case so callers can
	// special-case expiry while errors.Is(err, ErrUnauthenticated) still holds.
	ErrTokenExpired = fmt.Errorf("%w: token expired", ErrUnauthenticated)

	// Booking errors
	ErrBookingNotFound    = errors.New("booking not found")
	ErrDuplicateReference = errors.New("booking reference already exists")
	ErrInvalidDateRange   = errors.New("invalid date range")

	// General errors
	ErrInvalidInput     = errors.New("invalid input")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// MissingFieldsError reports every required booking field absent from a
// request, in submission order.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

func (e *MissingFieldsError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ValidationError carries a human-readable message for a single rejected
// field value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
