// Package common defines shared sentinel errors used across the client
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Inbox access errors.
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors (empty required field).
	ErrValidation = errors.New("validation error")

	// Auth errors (non-2xx or empty body on authenticate).
	ErrAuth = errors.New("authentication failed")

	// Transport-level errors.
	ErrNetwork = errors.New("network error")

	// Settings-store read/write errors.
	ErrPersistence = errors.New("persistence error")
)
