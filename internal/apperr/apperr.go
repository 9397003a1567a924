// Package apperr defines the application error taxonomy. Services and
// repositories return *Error values; the HTTP layer maps them to status codes
// exactly once, at the request boundary.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	Validation Kind = iota + 1 // malformed or missing input
	Duplicate                  // unique-constraint violation
	NotFound                   // missing entity
	InvalidCredentials
	Checkout // transaction failure, already rolled back
	Store    // unexpected persistence failure
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind carried by err, or Store for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Store
}

// Status maps an error to its HTTP status. NotFound maps to 404; login
// handlers downgrade it to 400 themselves to match the reference behavior.
func Status(err error) int {
	switch KindOf(err) {
	case Validation, Duplicate, InvalidCredentials, Checkout:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
