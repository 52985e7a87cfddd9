package proposal

import "errors"

// Engine error categories. Handlers map each one to a distinct HTTP status so
// clients can tell permanent rejections from retryable failures.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrAlreadyDone       = errors.New("already done")
	ErrValidation        = errors.New("validation failed")
)
