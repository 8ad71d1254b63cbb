package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches two *Error values by code, so wrapped errors compare against the
// sentinels below with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Core taxonomy. Repository and service failures are always one of these;
// callers decide user messaging.
var (
	ErrNotFound         = New(http.StatusNotFound, "Not found", nil)
	ErrConflict         = New(http.StatusConflict, "Already exists", nil)
	ErrValidation       = New(http.StatusBadRequest, "Validation error", nil)
	ErrStoreUnavailable = New(http.StatusServiceUnavailable, "Store unavailable", nil)
	ErrInternalServer   = New(http.StatusInternalServerError, "Internal server error", nil)
)

// NotFound wraps err as a not-found outcome with a specific message.
func NotFound(message string, err error) *Error {
	return New(http.StatusNotFound, message, err)
}

// Conflict wraps err as a uniqueness conflict with a specific message.
func Conflict(message string, err error) *Error {
	return New(http.StatusConflict, message, err)
}

// Validation wraps err as rejected input with a specific message.
func Validation(message string, err error) *Error {
	return New(http.StatusBadRequest, message, err)
}

// Unavailable wraps err as a store connectivity failure.
func Unavailable(message string, err error) *Error {
	return New(http.StatusServiceUnavailable, message, err)
}
