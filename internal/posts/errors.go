package posts

import "errors"

// Failures of a load run. All of them are terminal for the run; callers
// tell them apart with errors.Is.
var (
	// ErrMalformedInput means the source CSV could not be read or did not
	// match the column schema.
	ErrMalformedInput = errors.New("malformed input")

	// ErrConstraintViolation means a row broke a store constraint, in
	// practice a duplicate Post_id.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrStorage means the destination database could not be opened or
	// written.
	ErrStorage = errors.New("storage error")
)
