package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest         = errors.New("invalid request body")
	ErrUnknownProfile     = errors.New("unknown usage_profile")
	ErrEmptyConfiguration = errors.New("configuration has no parts")
	ErrMissingPartID      = errors.New("every part needs an id")
	ErrNoAnalysis         = errors.New("no analysis available yet")
)
