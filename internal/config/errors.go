package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() so callers can use
// errors.Is() while still getting human-readable messages.
var (
	// ErrEmptyFragment is returned when the fragment is empty or only
	// whitespace. No pipeline stage runs in that case.
	ErrEmptyFragment = errors.New("please provide text to reconstruct")

	// ErrEmptyModel is returned when the model name is blank.
	ErrEmptyModel = errors.New("invalid model: must not be empty")

	// ErrInvalidSearchTimeout is returned when the search timeout is not positive.
	ErrInvalidSearchTimeout = errors.New("invalid search timeout: must be positive")

	// ErrInvalidResultsPerQuery is returned when results per query is not positive.
	ErrInvalidResultsPerQuery = errors.New("invalid results per query: must be positive")

	// ErrInvalidBucket is returned when a forced bucket name is unknown.
	ErrInvalidBucket = errors.New("invalid bucket: must be slang, historical or general")

	// ErrInvalidResultThreshold is returned when the result threshold is not positive.
	ErrInvalidResultThreshold = errors.New("invalid result threshold: must be positive")
)
