package ollamakit

import (
	"errors"
	"fmt"

	"github.com/mwhitford/ollamakit/transport"
)

// Sentinel errors for client operations.
var (
	// ErrMissingBody indicates the server returned an empty response body
	// where a payload was required.
	ErrMissingBody = errors.New("missing response body")

	// ErrInvalidBaseURL indicates the configured base URL could not be
	// used to construct a transport.
	ErrInvalidBaseURL = errors.New("invalid base URL")
)

// Error wraps client errors with the failed operation.
type Error struct {
	Op        string // Operation that failed ("chat", "generate", "list models", ...)
	Err       error  // Underlying error
	Retryable bool   // Whether the error is likely transient
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsRetryable checks if an error is likely transient and worth retrying.
func IsRetryable(err error) bool {
	var clientErr *Error
	if errors.As(err, &clientErr) && clientErr.Retryable {
		return true
	}
	var statusErr *transport.StatusError
	return errors.As(err, &statusErr) && statusErr.Temporary()
}

func newError(op string, err error) *Error {
	retryable := false
	var statusErr *transport.StatusError
	if errors.As(err, &statusErr) {
		retryable = statusErr.Temporary()
	}
	return &Error{Op: op, Err: err, Retryable: retryable}
}
