package domain

import "errors"

// Storage errors
var (
	ErrRecordNotFound = errors.New("record not found")
)

// Account errors
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
)

// Validation errors. User-facing and correctable; handlers map them to 400.
var (
	ErrValidation = errors.New("validation failed")
)

// ValidationError carries a user-facing message and matches ErrValidation
// under errors.Is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError wraps a user-facing validation message.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// OTP errors
var (
	ErrOTPNotFound = errors.New("otp not found")
)

// Rate-limit errors. Temporary; the wrapped message carries the wait time.
var (
	ErrRateLimited = errors.New("rate limited")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
)
