package errors

import (
	"errors"
	"fmt"
)

// ErrorCode classifies an application error
type ErrorCode int

const (
	ErrValidation ErrorCode = iota + 1000
	ErrConflict
	ErrNotFound
	ErrStorage
	ErrUnauthorized
	ErrInternal
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error constructors
func Validation(message string, err error) *AppError {
	return &AppError{Code: ErrValidation, Message: message, Err: err}
}

func Conflict(message string, err error) *AppError {
	return &AppError{Code: ErrConflict, Message: message, Err: err}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func Storage(message string, err error) *AppError {
	return &AppError{Code: ErrStorage, Message: message, Err: err}
}

func Unauthorized(message string, err error) *AppError {
	if message == "" {
		message = "unauthorized"
	}
	return &AppError{Code: ErrUnauthorized, Message: message, Err: err}
}

func Internal(err error) *AppError {
	return &AppError{Code: ErrInternal, Message: "internal error", Err: err}
}

func codeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return 0
}

// Predicates used by callers to branch on expected conditions.
func IsValidation(err error) bool   { return codeOf(err) == ErrValidation }
func IsConflict(err error) bool     { return codeOf(err) == ErrConflict }
func IsNotFound(err error) bool     { return codeOf(err) == ErrNotFound }
func IsStorage(err error) bool      { return codeOf(err) == ErrStorage }
func IsUnauthorized(err error) bool { return codeOf(err) == ErrUnauthorized }
