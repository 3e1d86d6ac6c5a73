package tool

import "errors"

// Sentinel errors for registry and dispatch operations. Use errors.Is to
// check.
var (
	// ErrConflict indicates a registration under a name already in use.
	ErrConflict = errors.New("tool already registered")

	// ErrNotFound indicates the named tool is not registered.
	ErrNotFound = errors.New("tool not found")

	// ErrTimeout indicates a tool exceeded its execution deadline.
	ErrTimeout = errors.New("tool execution timeout")

	// ErrInvalidArgs indicates the model-supplied arguments failed schema
	// validation or did not parse.
	ErrInvalidArgs = errors.New("invalid tool arguments")
)
