// Package errors defines web typed application errors.
package errors

import (
	stderrors "errors"
	"net/http"
)

// Kind classifies application failures for consistent HTTP mapping.
type Kind string

const (
	KindUnknown      Kind = "unknown"
	KindInvalidInput Kind = "invalid_input"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindUnavailable  Kind = "unavailable"
	KindNotFound     Kind = "not_found"
	KindBadGateway   Kind = "bad_gateway"
)

// Error is a typed web application failure.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error renders the human-readable message.
func (e Error) Error() string {
	if e.Message == "" {
		if e.Err != nil {
			return e.Err.Error()
		}
		return string(e.Kind)
	}
	return e.Message
}

// Unwrap exposes the wrapped cause.
func (e Error) Unwrap() error { return e.Err }

// E builds a typed Error.
func E(kind Kind, message string) error {
	return Error{Kind: kind, Message: message}
}

// Wrap builds a typed Error around cause.
func Wrap(kind Kind, message string, cause error) error {
	return Error{Kind: kind, Message: message, Err: cause}
}

// StatusCoder is implemented by errors that already carry an HTTP status,
// such as failed upstream responses.
type StatusCoder interface {
	StatusCode() int
}

// KindOf returns the typed kind of err, or KindUnknown.
func KindOf(err error) Kind {
	var appErr Error
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// HTTPStatus maps an error to an HTTP status code.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var appErr Error
	if stderrors.As(err, &appErr) {
		switch appErr.Kind {
		case KindInvalidInput:
			return http.StatusBadRequest
		case KindUnauthorized:
			return http.StatusUnauthorized
		case KindForbidden:
			return http.StatusForbidden
		case KindUnavailable:
			return http.StatusServiceUnavailable
		case KindNotFound:
			return http.StatusNotFound
		case KindBadGateway:
			return http.StatusBadGateway
		}
	}
	var coder StatusCoder
	if stderrors.As(err, &coder) {
		if code := coder.StatusCode(); code >= 400 && code <= 599 {
			return code
		}
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the message safe to show a visitor for err.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return err.Error()
}
