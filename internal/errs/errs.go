// Package errs defines the application error type shared by services and the
// HTTP error stage.
//
// Every failure that should reach a client with a specific status is an
// *Error carrying an explicit Kind discriminant, status code and message.
// Anything that is not an *Error (raw driver errors, context cancellation, …)
// is classified later by the sqlerr package or treated as internal.
package errs

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind discriminates the error families understood by the HTTP layer.
type Kind int

const (
	// KindInternal is an unexpected failure; clients only see a generic message.
	KindInternal Kind = iota
	// KindValidation is a client input error (400).
	KindValidation
	// KindNotFound is a missing resource (404).
	KindNotFound
)

// String returns the lower camel case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "notFound"
	default:
		return "internal"
	}
}

// Canonical client-facing messages.
const (
	MsgBadRequest     = "Bad Request"
	MsgNotNull        = "Not Null Violation"
	MsgNotFound       = "Not found"
	MsgOutOfRange     = "Out of range for type integer"
	MsgInternal       = "Internal Server Error"
	MsgRouteNotFound  = "Route not found"
	MsgIDOutOfRange   = "Out Of Range For Type Integer"
	MsgArticleMissing = "Article Not Found"
	MsgUserMissing    = "User Not Found"
)

// Error is a structured application error.
//
// Status and Message are what the client receives. Err optionally holds the
// underlying cause for logging; it is never serialized.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.Err }

// Validation returns a 400 error with msg.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: msg}
}

// NotFound returns a 404 error with msg.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: msg}
}

// NotFoundf returns a 404 error for the named resource, e.g. "article" ->
// "Article Not Found".
func NotFoundf(resource string) *Error {
	return NotFound(Humanize(resource + " not found"))
}

// Internal wraps err as a 500 with the generic message.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Message: MsgInternal, Err: err}
}

// Wrap attaches cause to e and returns e for chaining.
func (e *Error) Wrap(cause error) *Error {
	e.Err = cause
	return e
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Humanize converts snake_case or lower case text to Title Case.
//
//	"out_of_range for type integer" -> "Out Of Range For Type Integer"
func Humanize(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}
