package breaker

import "time"

type config struct {
	failureThreshold  int
	openDuration      time.Duration
	invocationTimeout time.Duration
	condition         Condition
	executor          Executor

	onStateChange OnStateChangeFunc
	onCall        OnCallFunc
	onReject      OnRejectFunc
}

// Option configures a Circuit.
type Option func(*config)

// WithFailureThreshold sets consecutive failures before opening the circuit.
// Default is 5.
func WithFailureThreshold(n int) Option {
	return func(c *config) {
		c.failureThreshold = n
	}
}

// WithOpenDuration sets how long the circuit stays open before admitting
// a recovery probe. Default is 30 seconds.
func WithOpenDuration(d time.Duration) Option {
	return func(c *config) {
		c.openDuration = d
	}
}

// WithInvocationTimeout sets the per-call deadline. Work that outlives the
// deadline counts as a failure and its eventual result is discarded. Zero,
// the default, disables the deadline.
func WithInvocationTimeout(d time.Duration) Option {
	return func(c *config) {
		c.invocationTimeout = d
	}
}

// WithExecutor sets the execution context guarded work runs on. The default
// starts a goroutine per call.
func WithExecutor(e Executor) Option {
	return func(c *config) {
		c.executor = e
	}
}

// If sets the condition that determines whether an error counts as a failure.
// By default, any non-nil error is a failure.
func If(cond Condition) Option {
	return func(c *config) {
		c.condition = cond
	}
}

// IfNot sets a condition where matching errors are NOT counted as failures.
// This is equivalent to If(Not(cond)).
func IfNot(cond Condition) Option {
	return If(Not(cond))
}

// Not inverts a condition.
func Not(cond Condition) Condition {
	return func(err error) bool {
		return !cond(err)
	}
}

// OnStateChange sets a hook called when the circuit changes state.
func OnStateChange(fn OnStateChangeFunc) Option {
	return func(c *config) {
		c.onStateChange = fn
	}
}

// OnCall sets a hook called after each executed call attempt.
func OnCall(fn OnCallFunc) Option {
	return func(c *config) {
		c.onCall = fn
	}
}

// OnReject sets a hook called when a call is rejected due to open circuit.
func OnReject(fn OnRejectFunc) Option {
	return func(c *config) {
		c.onReject = fn
	}
}
