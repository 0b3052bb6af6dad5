// Package apperror defines the error taxonomy shared by every layer. Errors
// carry an explicit kind from the moment they are created; status codes and
// response shapes are derived from the kind in exactly one place (the
// normalizer middleware), never re-interpreted downstream.
package apperror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindUnauthenticated Kind = iota
	KindForbidden
	KindNotFound
	KindInvalidID
	KindValidation
	KindTimeout
	KindConflict
	KindRateLimited
	KindInternal
)

// FieldError describes one failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Value   any    `json:"value"`
	Message string `json:"msg"`
	// Location is where the offending value came from: body, query or param.
	Location string `json:"location"`
}

// Error is the single discriminated error type of the service.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status maps the kind to its external HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidID, KindValidation:
		return http.StatusBadRequest
	case KindTimeout:
		return http.StatusGatewayTimeout
	case KindConflict:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func Forbidden() *Error {
	return &Error{Kind: KindForbidden, Message: "Forbidden"}
}

func NotFound() *Error {
	return &Error{Kind: KindNotFound, Message: "Not found"}
}

func InvalidID() *Error {
	return &Error{Kind: KindInvalidID, Message: "Invalid id"}
}

func Validation(fields []FieldError) *Error {
	return &Error{Kind: KindValidation, Message: "Validation failed", Fields: fields}
}

func Timeout(message string) *Error {
	return &Error{Kind: KindTimeout, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func RateLimited() *Error {
	return &Error{Kind: KindRateLimited, Message: "Too many requests"}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal Server Error", Err: err}
}

// From extracts an *Error from err, wrapping anything unclassified as
// Internal so every error reaching the boundary has a kind.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
