// Package apperr defines the error taxonomy shared by the dashboard services
// and mapped to HTTP status codes by the API layer.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUpstream     = errors.New("upstream error")
)

// Error carries a caller-facing message and the sentinel it classifies as.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

// Unwrap lets errors.Is match the sentinel kind.
func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns an ErrNotFound with a caller-facing message.
func NotFound(format string, args ...any) error {
	return newError(ErrNotFound, format, args...)
}

// Validation returns an ErrValidation with a caller-facing message.
func Validation(format string, args ...any) error {
	return newError(ErrValidation, format, args...)
}

// Forbidden returns an ErrForbidden with a caller-facing message.
func Forbidden(format string, args ...any) error {
	return newError(ErrForbidden, format, args...)
}

// Unauthorized returns an ErrUnauthorized with a caller-facing message.
func Unauthorized(format string, args ...any) error {
	return newError(ErrUnauthorized, format, args...)
}

// Upstream wraps cause as an ErrUpstream. The cause stays in the chain for
// logging; Message is what a client may see.
func Upstream(cause error, format string, args ...any) error {
	if cause == nil {
		return newError(ErrUpstream, format, args...)
	}
	return fmt.Errorf("%w: %w", newError(ErrUpstream, format, args...), cause)
}

// Message returns the caller-facing message of err, or fallback when err does
// not carry one.
func Message(err error, fallback string) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return fallback
}
