package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services and repositories. Delivery maps
// them to HTTP status codes.
var (
	// ErrNotFound indicates the requested event does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized indicates the supplied admin key does not match.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidInput indicates a request failed validation.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError reports which submitted field was rejected and why.
// It matches ErrInvalidInput under errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
