package common

import "errors"

var (
	// ErrNotFound is returned by local lookups when a key or record is absent.
	ErrNotFound = errors.New("not found")

	// ErrNotConfigured is returned by optional collaborators (device commands,
	// media upload) when the configuration leaves them disabled.
	ErrNotConfigured = errors.New("not configured")
)
