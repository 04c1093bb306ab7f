package breaker

import (
	"errors"
	"fmt"
)

// Err is the base error for every failure raised by the circuit breaker.
// Callers can match it with errors.Is to catch the whole family.
var Err = errors.New("breaker")

// ErrOpen is returned when a call is rejected without execution because the
// circuit is open, or half-open with the probe already in flight.
var ErrOpen = fmt.Errorf("%w: circuit open", Err)

// ErrTimeout is returned when guarded work does not complete within the
// configured invocation timeout. The work itself is abandoned, not cancelled.
var ErrTimeout = fmt.Errorf("%w: call timed out", Err)

// IsOpen reports whether err is because the circuit is open.
func IsOpen(err error) bool {
	return errors.Is(err, ErrOpen)
}

// IsTimeout reports whether err is because guarded work missed its deadline.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// ExecutionError wraps an error raised by the guarded work itself. It matches
// both Err and the original cause under errors.Is/errors.As.
type ExecutionError struct {
	Cause error
}

func (e *ExecutionError) Error() string {
	return "breaker: execution failed: " + e.Cause.Error()
}

func (e *ExecutionError) Unwrap() []error {
	return []error{Err, e.Cause}
}

// PanicError is the cause recorded when guarded work panics. The panic is
// recovered so that abandoned work cannot crash the process.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Cause returns the original error raised by guarded work, or nil if err did
// not come from a failed execution.
func Cause(err error) error {
	var ee *ExecutionError
	if errors.As(err, &ee) {
		return ee.Cause
	}
	return nil
}

// execError wraps cause in an ExecutionError, collapsing nested execution
// errors (e.g. from a breaker guarding another breaker) to the innermost cause.
func execError(cause error) error {
	var ee *ExecutionError
	if errors.As(cause, &ee) {
		cause = ee.Cause
	}
	return &ExecutionError{Cause: cause}
}
