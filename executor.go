package breaker

// Executor is the execution context guarded work runs on. Go must start fn
// without blocking the caller; the circuit imposes no limit on how many work
// items are in flight, so pooled implementations own their backpressure.
type Executor interface {
	Go(fn func())
}

// goExecutor runs each work item on a fresh goroutine. The default.
type goExecutor struct{}

func (goExecutor) Go(fn func()) {
	go fn()
}
