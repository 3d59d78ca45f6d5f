// Package errors defines the application error taxonomy shared by the data,
// service and HTTP layers.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes an AppError. The HTTP layer maps each code to a status.
type ErrorCode string

const (
	ErrCodeNotFound   ErrorCode = "not_found"
	ErrCodeConflict   ErrorCode = "conflict"
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeForeignKey marks a row that is still referenced, or a reference to a missing row.
	ErrCodeForeignKey ErrorCode = "foreign_key"
	ErrCodeInternal   ErrorCode = "internal"
	ErrCodeTimeout    ErrorCode = "timeout"
	ErrCodeCanceled   ErrorCode = "canceled"
	// ErrCodeUnauthenticated means the request carries no valid session.
	ErrCodeUnauthenticated ErrorCode = "unauthenticated"
	// ErrCodeForbidden means the caller's role may not perform the operation.
	ErrCodeForbidden ErrorCode = "forbidden"
	// ErrCodeInvalidCredentials marks a failed login. The cause is never exposed.
	ErrCodeInvalidCredentials ErrorCode = "invalid_credentials"
)

// AppError carries a code, a client-safe message and optionally the offending field.
// Cause is kept for logs and errors.Is/As; it is never rendered to clients.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Field   string
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New returns an AppError without a cause.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func NotFound(message string) *AppError   { return New(ErrCodeNotFound, message) }
func Conflict(message string) *AppError   { return New(ErrCodeConflict, message) }
func Validation(message string) *AppError { return New(ErrCodeValidation, message) }
func Forbidden(message string) *AppError  { return New(ErrCodeForbidden, message) }
func ForeignKey(message string) *AppError { return New(ErrCodeForeignKey, message) }

// ValidationField reports invalid input on a named field, e.g. "identifiant".
func ValidationField(field, message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
}

// Wrap attaches a code and client message to err. Wrap(nil, ...) returns nil.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

func as(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

// Is reports whether err wraps an AppError with the given code.
func Is(err error, code ErrorCode) bool {
	appErr, ok := as(err)
	return ok && appErr.Code == code
}

func IsNotFound(err error) bool   { return Is(err, ErrCodeNotFound) }
func IsConflict(err error) bool   { return Is(err, ErrCodeConflict) }
func IsValidation(err error) bool { return Is(err, ErrCodeValidation) }
func IsForeignKey(err error) bool { return Is(err, ErrCodeForeignKey) }
func IsForbidden(err error) bool  { return Is(err, ErrCodeForbidden) }
func IsInternal(err error) bool   { return Is(err, ErrCodeInternal) }
func IsTimeout(err error) bool    { return Is(err, ErrCodeTimeout) }
func IsCanceled(err error) bool   { return Is(err, ErrCodeCanceled) }

// GetCode returns the code of the outermost AppError in err's chain, or "".
func GetCode(err error) ErrorCode {
	if appErr, ok := as(err); ok {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field of the outermost AppError in err's chain, or "".
func GetField(err error) string {
	if appErr, ok := as(err); ok {
		return appErr.Field
	}
	return ""
}
