package domain

import (
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface keeps the handler's error mapping open to
// new error kinds without editing a switch.
type HTTPError interface {
	error
	StatusCode() int
}

// ValidationError indicates malformed or missing request data. It carries
// the exact message surfaced to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

// ConversionError indicates a failure while staging input or invoking a
// conversion backend. The wrapped error's message is surfaced to the
// client; full detail is logged at the handler boundary.
type ConversionError struct {
	Err error
}

func (e *ConversionError) Error() string { return e.Err.Error() }

func (e *ConversionError) Unwrap() error { return e.Err }

func (e *ConversionError) StatusCode() int { return http.StatusInternalServerError }
