package common

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

// Error is a failure that already knows the HTTP status it should produce.
// Handlers and services return the first violated precondition as an Error
// and stop; the responder turns the terminal value into the wire envelope.
type Error struct {
	StatusCode int
	Message    string
	Err        error
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

func NewError(statusCode int, message string) *Error {
	return &Error{StatusCode: statusCode, Message: message}
}

// WrapError attaches an underlying cause, kept for logs and diagnostics but
// never serialized into the client-facing message.
func WrapError(statusCode int, message string, err error) *Error {
	return &Error{StatusCode: statusCode, Message: message, Err: err}
}

func BadRequest(message string) *Error {
	return NewError(http.StatusBadRequest, message)
}

func Unauthorized(message string) *Error {
	return NewError(http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return NewError(http.StatusForbidden, message)
}

func NotFound(message string) *Error {
	return NewError(http.StatusNotFound, message)
}

func ServerError(message string) *Error {
	return NewError(http.StatusInternalServerError, message)
}

// StatusFromError classifies any error into an HTTP status code. Errors
// carrying their own status win; a unique-constraint violation surfacing
// from the database is a client input problem (duplicate value); everything
// else is a server error.
func StatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// HasStatus reports whether err classifies to the given HTTP status.
func HasStatus(err error, statusCode int) bool {
	return StatusFromError(err) == statusCode
}

var statusTitles = map[int]string{
	http.StatusBadRequest:          "Validation Error",
	http.StatusUnauthorized:        "Unauthorized",
	http.StatusForbidden:           "Forbidden",
	http.StatusNotFound:            "Not Found",
	http.StatusInternalServerError: "Server Error",
}

// TitleForStatus returns the envelope title for a status code. Codes outside
// the taxonomy get a generic title instead of failing the responder.
func TitleForStatus(statusCode int) string {
	if title, ok := statusTitles[statusCode]; ok {
		return title
	}
	return "Unknown Error"
}
