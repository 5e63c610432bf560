package core

import "fmt"

// InitError reports a failed GPU or window resource creation or query.
// There is no degraded mode: callers propagate it to the top-level handler,
// which logs the diagnostic and exits. Tests can still assert on the typed
// error without terminating the test process.
type InitError struct {
	Op  string // the resource or query that failed, e.g. "request adapter"
	Err error  // underlying cause, may be nil
}

func (e *InitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("init: %s failed", e.Op)
	}
	return fmt.Sprintf("init: %s failed: %v", e.Op, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// NewInitError wraps err as an InitError for the given operation.
//
// Parameters:
//   - op: the resource or query that failed
//   - err: underlying cause (may be nil)
//
// Returns:
//   - *InitError: the typed error
func NewInitError(op string, err error) *InitError {
	return &InitError{Op: op, Err: err}
}

// AssertionError reports a violated internal invariant (wrong index width,
// zero-size mesh, resize while a frame target is bound, use of a closed
// mapped region). Unrecoverable at the point of detection.
type AssertionError struct {
	Msg string
}

func (e *AssertionError) Error() string {
	return "assertion failed: " + e.Msg
}

// NewAssertionError creates an AssertionError with a formatted message.
//
// Parameters:
//   - format: printf-style format string
//   - args: format arguments
//
// Returns:
//   - *AssertionError: the typed error
func NewAssertionError(format string, args ...interface{}) *AssertionError {
	return &AssertionError{Msg: fmt.Sprintf(format, args...)}
}
