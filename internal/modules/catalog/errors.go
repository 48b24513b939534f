package catalog

import (
	"errors"
	"fmt"
)

// ErrGenerationUnavailable is returned when the generate endpoint answers 503,
// meaning the server has no generation credential configured.
var ErrGenerationUnavailable = errors.New("generation backend unavailable")

// NetworkError is a transport failure: no HTTP response was received.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a non-2xx response from the remote API.
type HTTPError struct {
	Op     string
	Status int
	// Detail is the server supplied `detail` message, or a generic one.
	Detail string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: request failed with status %d: %s", e.Op, e.Status, e.Detail)
}

// HTTPStatusCode exposes the status for callers matching on a status interface.
func (e *HTTPError) HTTPStatusCode() int { return e.Status }

// ValidationError is a local precondition failure; no request was issued.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
