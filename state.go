package breaker

// The state machine. Three operations drive it: allow (admission check),
// recordSuccess, and recordFailure. All three, plus the recovery timer
// callback, run under c.mu so multi-field transitions are atomic as a unit.

// allow reports whether a call may proceed. While half-open it admits exactly
// one probe: the first caller through marks the probe outstanding and every
// concurrent caller is rejected until the probe's outcome is recorded.
func (c *Circuit) allow() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case Open:
		return Open, ErrOpen
	case HalfOpen:
		if c.probing {
			return HalfOpen, ErrOpen
		}
		c.probing = true
	}
	return c.state, nil
}

// recordSuccess reports a successful invocation. A success while closed heals
// prior failures; a successful probe closes the circuit. Reported while open
// it is a no-op (the result of work abandoned before the circuit tripped).
func (c *Circuit) recordSuccess() {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case Closed:
		c.failures = 0
	case HalfOpen:
		c.setState(Closed)
	}
}

// recordFailure reports a failed invocation. Reaching the failure threshold
// while closed trips the circuit; a failed probe reopens it immediately,
// restarting the open-duration countdown.
func (c *Circuit) recordFailure() {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case Closed:
		c.failures++
		if c.failures >= c.cfg.failureThreshold {
			c.setState(Open)
		}
	case HalfOpen:
		c.setState(Open)
	}
}

// tryProbe is the recovery timer callback: it moves the circuit from open to
// half-open exactly once per arm. gen is the generation captured when the
// timer was armed; if the circuit has since been reset or transitioned, the
// callback is stale and does nothing.
func (c *Circuit) tryProbe(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Open || c.generation != gen {
		return
	}
	c.setState(HalfOpen)
}

// setState transitions to a new state. Must be called with c.mu held.
// Every transition resets the counters, invalidates pending timer callbacks
// via the generation counter, and entering Open arms the recovery timer.
func (c *Circuit) setState(to State) {
	if c.state == to {
		return
	}
	from := c.state
	c.state = to

	c.failures = 0
	c.probing = false
	c.generation++

	if to == Open {
		gen := c.generation
		c.reopen.schedule(c.cfg.openDuration, func() {
			c.tryProbe(gen)
		})
	} else {
		c.reopen.stop()
	}

	if c.cfg.onStateChange != nil {
		c.cfg.onStateChange(c.name, from, to)
	}
}
