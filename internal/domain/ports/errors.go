package ports

import "errors"

// Sentinel errors shared across the domain boundary. Adapters and
// usecases wrap these with fmt.Errorf("...: %w", ...) so callers can
// classify failures with errors.Is.
var (
	// ErrNotFound means the knowledge source does not exist. This is an
	// unrecoverable configuration error surfaced at startup.
	ErrNotFound = errors.New("knowledge source not found")

	// ErrNotInitialized means the index or model client was used before
	// setup completed.
	ErrNotInitialized = errors.New("pipeline not initialized")
)
