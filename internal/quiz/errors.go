package quiz

import "errors"

// Error kinds shared across the service. Callers wrap them with
// fmt.Errorf("...: %w", ErrX) and test with errors.Is.
var (
	// ErrNotFound means the session, quiz or report does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized means the caller does not own the session.
	ErrUnauthorized = errors.New("not authorized")

	// ErrValidation means the request is malformed.
	ErrValidation = errors.New("validation failed")

	// ErrGenerationUnavailable means no question set could be produced
	// after all attempts. It is retryable later.
	ErrGenerationUnavailable = errors.New("question generation unavailable")

	// ErrDataCorruption marks a stored record that could not be decoded.
	// Analytics recovers from it per record.
	ErrDataCorruption = errors.New("stored record is corrupt")
)
