// Package apperr defines the application error taxonomy and its HTTP mapping.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for transport mapping.
type Kind int

const (
	// KindInternal is the default for unclassified errors.
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindTooManyRequests
)

// String returns the kind's canonical name.
func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindTooManyRequests:
		return "too_many_requests"
	default:
		return "internal"
	}
}

// HTTPStatus returns the HTTP status code for the kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a kind alongside a message and an optional cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an existing error.
func Wrap(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// BadRequestf builds a KindBadRequest error.
func BadRequestf(format string, args ...any) *Error {
	return Newf(KindBadRequest, format, args...)
}

// NotFoundf builds a KindNotFound error.
func NotFoundf(format string, args ...any) *Error {
	return Newf(KindNotFound, format, args...)
}

// Internalf builds a KindInternal error.
func Internalf(format string, args ...any) *Error {
	return Newf(KindInternal, format, args...)
}

// Unauthorizedf builds a KindUnauthorized error.
func Unauthorizedf(format string, args ...any) *Error {
	return Newf(KindUnauthorized, format, args...)
}

// KindOf returns the kind of the first *Error in the chain.
// Errors without a kind are KindInternal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// HTTPStatus returns the HTTP status for an error's kind.
func HTTPStatus(err error) int {
	return KindOf(err).HTTPStatus()
}

// IsNotFound reports whether the error chain carries KindNotFound.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
