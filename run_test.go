package breaker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/softfuse/breaker"
)

type testResult struct {
	value string
}

func TestRun(t *testing.T) {
	t.Run("returns value on success", func(t *testing.T) {
		c := breaker.New("test")

		result, err := breaker.Run(ctx(), c, func(ctx context.Context) (*testResult, error) {
			return &testResult{value: "hello"}, nil
		})
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if result.value != "hello" {
			t.Fatalf("expected 'hello', got %q", result.value)
		}
	})

	t.Run("returns error on failure", func(t *testing.T) {
		c := breaker.New("test")

		result, err := breaker.Run(ctx(), c, func(ctx context.Context) (*testResult, error) {
			return nil, errTest
		})

		if !errors.Is(err, errTest) {
			t.Fatalf("expected errTest, got %v", err)
		}
		if result != nil {
			t.Fatalf("expected nil result, got %v", result)
		}
	})

	t.Run("returns ErrOpen when circuit open", func(t *testing.T) {
		c := breaker.New("test", breaker.WithFailureThreshold(1))

		_, _ = breaker.Run(ctx(), c, func(ctx context.Context) (*testResult, error) {
			return nil, errTest
		})

		result, err := breaker.Run(ctx(), c, func(ctx context.Context) (*testResult, error) {
			return &testResult{value: "should not reach"}, nil
		})

		if !breaker.IsOpen(err) {
			t.Fatalf("expected ErrOpen, got %v", err)
		}
		if result != nil {
			t.Fatalf("expected nil result, got %v", result)
		}
	})

	t.Run("works with value types", func(t *testing.T) {
		c := breaker.New("test")

		result, err := breaker.Run(ctx(), c, func(ctx context.Context) (int, error) {
			return 42, nil
		})
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if result != 42 {
			t.Fatalf("expected 42, got %d", result)
		}
	})

	t.Run("returns zero value on error", func(t *testing.T) {
		c := breaker.New("test")

		result, err := breaker.Run(ctx(), c, func(ctx context.Context) (int, error) {
			return 0, errTest
		})

		if !errors.Is(err, errTest) {
			t.Fatalf("expected errTest, got %v", err)
		}
		if result != 0 {
			t.Fatalf("expected 0, got %d", result)
		}
	})

	t.Run("works with slices", func(t *testing.T) {
		c := breaker.New("test")

		result, err := breaker.Run(ctx(), c, func(ctx context.Context) ([]string, error) {
			return []string{"a", "b", "c"}, nil
		})
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if len(result) != 3 {
			t.Fatalf("expected 3 items, got %d", len(result))
		}
	})

	t.Run("counts failures from Run", func(t *testing.T) {
		c := breaker.New("test", breaker.WithFailureThreshold(2))

		_, _ = breaker.Run(ctx(), c, func(ctx context.Context) (int, error) {
			return 0, errTest
		})
		_, _ = breaker.Run(ctx(), c, func(ctx context.Context) (int, error) {
			return 0, errTest
		})

		if c.State() != breaker.Open {
			t.Fatalf("expected Open after 2 failures, got %v", c.State())
		}
	})

	t.Run("returns zero value on timeout", func(t *testing.T) {
		c := breaker.New("test", breaker.WithInvocationTimeout(10*time.Millisecond))

		result, err := breaker.Run(ctx(), c, func(ctx context.Context) (string, error) {
			time.Sleep(50 * time.Millisecond)
			return "too late", nil
		})

		if !breaker.IsTimeout(err) {
			t.Fatalf("expected ErrTimeout, got %v", err)
		}
		if result != "" {
			t.Fatalf("expected zero value, got %q", result)
		}
	})
}

func TestRunAsync(t *testing.T) {
	t.Run("delivers value on success", func(t *testing.T) {
		c := breaker.New("test")

		res := <-breaker.RunAsync(ctx(), c, func(ctx context.Context) (int, error) {
			return 7, nil
		})

		if res.Err != nil {
			t.Fatalf("expected nil error, got %v", res.Err)
		}
		if res.Value != 7 {
			t.Fatalf("expected 7, got %d", res.Value)
		}
	})

	t.Run("delivers translated error on failure", func(t *testing.T) {
		c := breaker.New("test")

		res := <-breaker.RunAsync(ctx(), c, func(ctx context.Context) (int, error) {
			return 0, errTest
		})

		if !errors.Is(res.Err, errTest) {
			t.Fatalf("expected errTest, got %v", res.Err)
		}
		if !errors.Is(res.Err, breaker.Err) {
			t.Fatalf("expected breaker.Err, got %v", res.Err)
		}
	})

	t.Run("delivers ErrOpen when circuit open", func(t *testing.T) {
		c := breaker.New("test", breaker.WithFailureThreshold(1))

		<-breaker.RunAsync(ctx(), c, func(ctx context.Context) (int, error) {
			return 0, errTest
		})

		res := <-breaker.RunAsync(ctx(), c, func(ctx context.Context) (int, error) {
			return 1, nil
		})
		if !breaker.IsOpen(res.Err) {
			t.Fatalf("expected ErrOpen, got %v", res.Err)
		}
	})

	t.Run("applies the same timeout semantics as Run", func(t *testing.T) {
		c := breaker.New("test", breaker.WithInvocationTimeout(10*time.Millisecond))

		res := <-breaker.RunAsync(ctx(), c, func(ctx context.Context) (string, error) {
			time.Sleep(50 * time.Millisecond)
			return "too late", nil
		})

		if !breaker.IsTimeout(res.Err) {
			t.Fatalf("expected ErrTimeout, got %v", res.Err)
		}
		if res.Value != "" {
			t.Fatalf("expected zero value, got %q", res.Value)
		}
		if got := c.Failures(); got != 1 {
			t.Fatalf("expected 1 failure, got %d", got)
		}
	})

	t.Run("outcome is recorded before delivery", func(t *testing.T) {
		c := breaker.New("test", breaker.WithFailureThreshold(1))

		res := <-breaker.RunAsync(ctx(), c, func(ctx context.Context) (int, error) {
			return 0, errTest
		})
		if res.Err == nil {
			t.Fatal("expected an error")
		}
		if c.State() != breaker.Open {
			t.Fatalf("expected Open once the result is delivered, got %v", c.State())
		}
	})
}

func ctx() context.Context {
	return context.Background()
}
