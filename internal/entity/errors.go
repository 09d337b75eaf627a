package entity

import "errors"

// Domain errors
var (
	// Completion errors
	ErrCompletionUnavailable = errors.New("completion service unavailable")
	ErrEmptyCompletion       = errors.New("completion returned no choices")

	// Credential errors
	ErrAuthKeyMissing = errors.New("authorization key is not configured")

	// File errors
	ErrFileNotFound    = errors.New("file not found")
	ErrInvalidFileName = errors.New("invalid file name")

	// Calculator errors
	ErrUnknownFlow   = errors.New("unknown calculator flow")
	ErrNoActiveFlow  = errors.New("no active calculator flow")
	ErrInvalidNumber = errors.New("invalid numeric input")
)
