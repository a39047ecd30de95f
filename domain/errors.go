package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeUnavailable  ErrorCode = "UNAVAILABLE"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Unavailable classifies a storage or network failure as a connection error.
func Unavailable(op string, err error) *Error {
	return WrapError(ErrCodeUnavailable, op, err)
}

// Common domain errors.
var (
	ErrUserNotFound     = NewError(ErrCodeNotFound, "user not found")
	ErrProviderNotFound = NewError(ErrCodeNotFound, "identity provider not configured")
	ErrEmailTaken       = NewError(ErrCodeConflict, "user already exists")
	ErrInvalidPayload   = NewError(ErrCodeInvalid, "invalid payload")
	ErrOwnerRequired    = NewError(ErrCodeInvalid, "owner email is required")
	ErrForbidden        = NewError(ErrCodeForbidden, "forbidden")

	ErrUnauthorized        = NewError(ErrCodeUnauthorized, "unauthorized")
	ErrCredentialsRequired = NewError(ErrCodeUnauthorized, "email and password are required")
	ErrNoSuchAccount       = NewError(ErrCodeUnauthorized, "no user found with the provided email")
	ErrInvalidCredentials  = NewError(ErrCodeUnauthorized, "invalid credentials")
	ErrSessionInvalid      = NewError(ErrCodeUnauthorized, "session is invalid or expired")
	ErrSessionRevoked      = NewError(ErrCodeUnauthorized, "session has been revoked")
	ErrStateInvalid        = NewError(ErrCodeUnauthorized, "sign-in state is invalid or expired")
	ErrProviderRejected    = NewError(ErrCodeUnauthorized, "identity provider rejected the sign-in")
	ErrProviderNoEmail     = NewError(ErrCodeUnauthorized, "identity provider returned no email")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
