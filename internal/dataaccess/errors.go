package dataaccess

import "errors"

// Error taxonomy surfaced by the query adapter. Repositories wrap these with
// context but never swallow or retry them; controllers translate them into
// HTTP responses.
var (
	// ErrNotFound marks an update whose target row does not exist. Reads
	// signal absence with a nil row instead, not with this error.
	ErrNotFound = errors.New("record not found")

	// ErrConstraintViolation marks a uniqueness or foreign-key violation.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrConnection marks a failure to reach the backend at all.
	ErrConnection = errors.New("backend connection failed")

	// ErrUnsupportedOperation marks an operation the active backend does not
	// support (raw SQL on the gorm backend, delete on referrals).
	ErrUnsupportedOperation = errors.New("operation not supported by active backend")

	// ErrMalformedQuery marks a table or column name outside the schema
	// registry. Identifiers are never interpolated before this check passes.
	ErrMalformedQuery = errors.New("malformed query")
)
