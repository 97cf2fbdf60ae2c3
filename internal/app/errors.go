package app

import "errors"

var (
	// ErrNilConfiguration is returned when a nil configuration is analyzed.
	ErrNilConfiguration = errors.New("nil configuration")
	// ErrNotStarted is returned when the service is used before Start.
	ErrNotStarted = errors.New("service not started")
)
