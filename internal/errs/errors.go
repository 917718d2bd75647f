package errs

import "errors"

// Common sentinel errors for cross-layer signaling.
var (
	ErrNotFound = errors.New("not_found")
	ErrConflict = errors.New("conflict")
	// ErrUnauthenticated indicates a gated operation ran without a resolved identity.
	ErrUnauthenticated = errors.New("user is not authenticated")
)
