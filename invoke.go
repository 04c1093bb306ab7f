package breaker

import (
	"context"
	"time"
)

// invoke is the single race primitive behind every call shape: admission
// check, submit to the executor, race against the invocation timeout, report
// the outcome, translate the error. Do, DoAsync, Run, and RunAsync all
// delegate here so timeout and error semantics never diverge.
func invoke[T any](ctx context.Context, c *Circuit, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	state, err := c.allow()
	if err != nil {
		if c.cfg.onReject != nil {
			c.cfg.onReject(c.name)
		}
		return zero, err
	}

	type outcome struct {
		value T
		err   error
	}

	// Buffered so abandoned work can still deliver (and be discarded)
	// without leaking its goroutine. The value travels through the channel
	// rather than a captured variable, so a late completion never races
	// with the caller.
	done := make(chan outcome, 1)
	c.cfg.executor.Go(func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: &PanicError{Value: r}}
			}
		}()
		v, err := fn(ctx)
		done <- outcome{value: v, err: err}
	})

	var deadline <-chan time.Time
	if c.cfg.invocationTimeout > 0 {
		t := time.NewTimer(c.cfg.invocationTimeout)
		defer t.Stop()
		deadline = t.C
	}

	select {
	case out := <-done:
		// The outcome is recorded before returning: a caller that sees
		// the result is guaranteed the circuit has already seen it too.
		if out.err != nil && c.cfg.condition(out.err) {
			c.recordFailure()
		} else {
			c.recordSuccess()
		}
		if c.cfg.onCall != nil {
			c.cfg.onCall(c.name, state, out.err)
		}
		if out.err != nil {
			return zero, execError(out.err)
		}
		return out.value, nil

	case <-deadline:
		// The work is abandoned, not cancelled; callers needing true
		// cancellation must honor ctx inside fn.
		c.recordFailure()
		if c.cfg.onCall != nil {
			c.cfg.onCall(c.name, state, ErrTimeout)
		}
		return zero, ErrTimeout
	}
}
