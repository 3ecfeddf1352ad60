package apperror

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound covers both missing resources and resources the caller
	// does not own: existence and permission are deliberately conflated so
	// a 404 never reveals which posts or comments exist.
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal server error")
)

// AppError wraps a sentinel with a human-readable message and optional
// field-level details for the "errors" payload.
type AppError struct {
	Kind    error
	Message string
	Details map[string]any
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Error()
}

func (e *AppError) Unwrap() error {
	return e.Kind
}

func New(kind error, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func WithDetails(kind error, message string, details map[string]any) *AppError {
	return &AppError{Kind: kind, Message: message, Details: details}
}

// MapErrorToStatus maps the error taxonomy to HTTP status codes.
func MapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConflict):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
