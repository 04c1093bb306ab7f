// Package breaker implements the circuit breaker pattern with a timer-driven
// state machine and a deadline-enforcing invocation engine.
//
// breaker protects callers from repeatedly invoking an operation known to be
// failing:
//
//   - Tracking Failures: Consecutive errors trip the circuit open
//   - Fast Rejection: Open circuits reject calls immediately with ErrOpen
//   - Automatic Recovery: A timer admits a single probe after the open duration
//   - Deadline Enforcement: Work is raced against a per-call timeout
//   - Lifecycle Hooks: OnStateChange, OnCall, OnReject for observability
//
// # Quick Start
//
// Create a circuit and protect calls:
//
//	circuit := breaker.New("payment-service",
//	    breaker.WithInvocationTimeout(2*time.Second),
//	)
//
//	err := circuit.Do(ctx, func(ctx context.Context) error {
//	    return client.Charge(ctx, amount)
//	})
//	if breaker.IsOpen(err) {
//	    return handleFallback()
//	}
//
// For functions that return values, use the generic Run helper:
//
//	user, err := breaker.Run(ctx, circuit, func(ctx context.Context) (*User, error) {
//	    return client.GetUser(ctx, id)
//	})
//
// # Circuit States
//
// The circuit breaker has three states:
//
//	Closed (normal):
//	    - Requests flow through to the protected function
//	    - Consecutive failures are counted; a success resets the count
//	    - When failures reach the threshold, the circuit opens
//
//	Open (tripped):
//	    - Requests are rejected immediately with ErrOpen
//	    - A single-shot timer moves the circuit to half-open after the
//	      open duration; callers never drive this transition
//
//	HalfOpen (probing):
//	    - Exactly one probe call is admitted; concurrent callers are
//	      rejected with ErrOpen until the probe resolves
//	    - A successful probe closes the circuit; a failed probe reopens
//	      it and restarts the open-duration countdown
//
// # Error Taxonomy
//
// Every error the breaker raises matches the base sentinel Err, so callers
// can catch broadly or narrowly:
//
//   - ErrOpen: the call was rejected without execution
//   - ErrTimeout: the work missed the invocation timeout
//   - *ExecutionError: the work itself failed; Cause holds the original error
//
// The original error remains reachable through errors.Is and errors.As:
//
//	err := circuit.Do(ctx, work)
//	switch {
//	case breaker.IsOpen(err):
//	    // fail fast, try a fallback
//	case breaker.IsTimeout(err):
//	    // log and retry later
//	case errors.Is(err, sql.ErrNoRows):
//	    // the work's own error, unwrapped through ExecutionError
//	}
//
// # Timeouts and Abandoned Work
//
// WithInvocationTimeout bounds how long a caller waits, not how long the work
// runs. On timeout the work is abandoned: it keeps running on its executor
// and its eventual result is discarded. The breaker records exactly one
// failure for the attempt. Callers that need the work itself to stop must
// honor ctx inside the protected function:
//
//	circuit.Do(ctx, func(ctx context.Context) error {
//	    req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
//	    _, err := client.Do(req)
//	    return err
//	})
//
// # Asynchronous Calls
//
// DoAsync and RunAsync apply the same admission, timeout, and error semantics
// but deliver the outcome on a buffered channel instead of blocking:
//
//	res := <-breaker.RunAsync(ctx, circuit, func(ctx context.Context) (int, error) {
//	    return store.Count(ctx)
//	})
//	if res.Err != nil { ... }
//
// # Execution Context
//
// Guarded work runs on an Executor. The default starts a goroutine per call;
// inject a pool with WithExecutor when in-flight work must be bounded:
//
//	circuit := breaker.New("reports", breaker.WithExecutor(pool))
//
// # Failure Conditions
//
// By default, any non-nil error counts as a failure. Customize this with If:
//
//	circuit := breaker.New("api",
//	    breaker.IfNot(func(err error) bool {
//	        return errors.Is(err, ErrNotFound) // 404s don't trip the circuit
//	    }),
//	)
//
// # Lifecycle Hooks
//
// Hooks provide observability without coupling to a specific logger or
// metrics system:
//
//	circuit := breaker.New("service",
//	    breaker.OnStateChange(func(name string, from, to breaker.State) {
//	        logger.Info("circuit state change", "circuit", name, "from", from, "to", to)
//	    }),
//	    breaker.OnReject(func(name string) {
//	        metrics.Increment("circuit.rejected", "circuit:"+name)
//	    }),
//	)
//
// The breakerprom subpackage wires these hooks, plus a state collector, to
// Prometheus.
//
// # Manual Reset
//
// Reset the circuit to closed state programmatically:
//
//	circuit.Reset()
//
// Useful for admin endpoints or after deploying fixes. A pending recovery
// timer is cancelled; a stale timer that already fired is ignored.
package breaker
