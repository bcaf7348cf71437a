package domain

import (
	"errors"
	"fmt"
)

// --- Domain Specific Errors ---

var (
	// ErrListingNotFound indicates that a requested listing was not found.
	ErrListingNotFound = errors.New("listing not found")
	// ErrForbidden indicates that the user is not authorized to perform the action.
	ErrForbidden = errors.New("action forbidden")
	// ErrInvalidInput indicates that the provided input data is invalid.
	ErrInvalidInput = errors.New("invalid input data")
	// ErrPostingLimitExceeded indicates the seller hit the posting-rate policy:
	// at most 2 active listings created within any trailing 24-hour window.
	ErrPostingLimitExceeded = errors.New("posting limit exceeded: max 2 listings per 24 hours")
	// ErrRepository indicates a generic data persistence error.
	ErrRepository = errors.New("repository error")
)

// ValidationError is a local, pre-network failure. It names the first
// violated field and never reaches any external collaborator.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AuthError carries a failure reported by the external identity service.
// The service-provided message is passed through verbatim; a generic
// message is substituted when the service gives none.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "Authentication failed."
	}
	return e.Message
}

// NewAuthError wraps an identity-service failure message.
func NewAuthError(message string) *AuthError {
	return &AuthError{Message: message}
}

// DelegateError is a best-effort failure from an external delegate
// (share, clipboard). It is logged and reported as a toast where one is
// defined, and never blocks further interaction.
type DelegateError struct {
	Delegate string
	Err      error
}

func (e *DelegateError) Error() string {
	return fmt.Sprintf("delegate %s failed: %v", e.Delegate, e.Err)
}

func (e *DelegateError) Unwrap() error {
	return e.Err
}
