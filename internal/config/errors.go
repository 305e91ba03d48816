package config

import "errors"

// Validation errors returned by Config.Validate.
var (
	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidConcurrency is returned when concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidEndpoint is returned when the endpoint is not an http(s) URL.
	ErrInvalidEndpoint = errors.New("invalid endpoint: must be an http or https URL")

	// ErrInvalidMaterial is returned when a suggested material has no ID.
	ErrInvalidMaterial = errors.New("invalid materials entry: id is required")
)

// ErrConfigNotFound is returned when an explicitly named config file does
// not exist.
var ErrConfigNotFound = errors.New("configuration file not found")
