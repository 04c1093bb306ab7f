package breaker

import (
	"context"
	"sync"
	"time"
)

// State represents the circuit breaker state.
type State int

const (
	// Closed is the normal operating state. Requests flow through.
	Closed State = iota

	// Open is the tripped state. Requests are rejected immediately.
	Open

	// HalfOpen is the recovery testing state. A single probe is allowed.
	HalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Func is the function signature for protected operations without a result.
type Func func(ctx context.Context) error

// Condition determines whether an error should count as a failure.
type Condition func(error) bool

// OnStateChangeFunc is called when the circuit changes state.
type OnStateChangeFunc func(name string, from, to State)

// OnCallFunc is called after each executed call attempt.
type OnCallFunc func(name string, state State, err error)

// OnRejectFunc is called when a call is rejected due to an open circuit.
type OnRejectFunc func(name string)

// Default values.
const (
	DefaultFailureThreshold = 5
	DefaultOpenDuration     = 30 * time.Second
)

// Circuit is a circuit breaker guarding one operation. Safe for concurrent
// use; one mutex makes admission checks, outcome reports, and timer-driven
// transitions mutually exclusive so no caller observes a torn state.
type Circuit struct {
	name string
	cfg  config

	mu         sync.Mutex
	state      State
	failures   int
	probing    bool
	generation uint64
	reopen     reopener
}

// New creates a Circuit with the given options.
func New(name string, opts ...Option) *Circuit {
	cfg := config{
		failureThreshold: DefaultFailureThreshold,
		openDuration:     DefaultOpenDuration,
		condition:        defaultCondition,
		executor:         goExecutor{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Circuit{
		name:  name,
		cfg:   cfg,
		state: Closed,
	}
}

// Do executes fn with circuit breaker protection, blocking until fn completes
// or the invocation timeout elapses.
func (c *Circuit) Do(ctx context.Context, fn Func) error {
	_, err := invoke(ctx, c, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// DoAsync executes fn with circuit breaker protection without blocking the
// caller. The returned channel is buffered and delivers exactly one error
// (possibly nil) once the call resolves; it may be safely abandoned.
func (c *Circuit) DoAsync(ctx context.Context, fn Func) <-chan error {
	out := make(chan error, 1)
	go func() {
		out <- c.Do(ctx, fn)
	}()
	return out
}

// State returns the current state.
func (c *Circuit) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Failures returns the current consecutive failure count.
func (c *Circuit) Failures() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failures
}

// Reset manually resets the circuit to the closed state, cancelling any
// pending recovery timer.
func (c *Circuit) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setState(Closed)
}

// Name returns the circuit name.
func (c *Circuit) Name() string {
	return c.name
}

func defaultCondition(err error) bool {
	return err != nil
}
