package search

import (
	"errors"
	"fmt"
)

// Search errors returned by providers.
// Client treats all of them the same way (fallback) but uses them to choose
// the message shown to the user.
var (
	// ErrMissingAPIKey is returned when the search API key is empty or still
	// the placeholder value from the example configuration.
	ErrMissingAPIKey = errors.New("search API key not configured")

	// ErrMissingEngineID is returned when the search engine identifier is
	// empty or still the placeholder value.
	ErrMissingEngineID = errors.New("search engine ID not configured")

	// ErrUnexpectedStatus is matched by *StatusError.
	ErrUnexpectedStatus = errors.New("unexpected search API status")

	// ErrNoResults is returned when the API response carries no items field.
	ErrNoResults = errors.New("no search results in API response")

	// ErrRequestFailed wraps transport-level failures.
	ErrRequestFailed = errors.New("search request failed")
)

// StatusError reports a non-success HTTP status from the search API.
type StatusError struct {
	// StatusCode is the HTTP status code returned by the API.
	StatusCode int
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("search API returned status %d", e.StatusCode)
}

// Is makes errors.Is(err, ErrUnexpectedStatus) true for any StatusError.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}
