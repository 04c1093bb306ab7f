package breaker

import "context"

// Run executes fn and returns its result with circuit breaker protection.
// This is a convenience wrapper for functions that return a value.
func Run[T any](ctx context.Context, c *Circuit, fn func(context.Context) (T, error)) (T, error) {
	return invoke(ctx, c, fn)
}

// Result carries the outcome of an asynchronous invocation.
type Result[T any] struct {
	Value T
	Err   error
}

// RunAsync executes fn with circuit breaker protection without blocking the
// caller. The returned channel is buffered and delivers exactly one Result
// once the call resolves; it may be safely abandoned.
func RunAsync[T any](ctx context.Context, c *Circuit, fn func(context.Context) (T, error)) <-chan Result[T] {
	out := make(chan Result[T], 1)
	go func() {
		v, err := invoke(ctx, c, fn)
		out <- Result[T]{Value: v, Err: err}
	}()
	return out
}
