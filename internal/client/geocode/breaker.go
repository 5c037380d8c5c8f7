package geocode

import (
	"sync"
	"time"
)

type circuitState int

const (
	stateClosed circuitState = iota
	stateOpen
	stateHalfOpen
)

func (s circuitState) String() string {
	switch s {
	case stateOpen:
		return "open"
	case stateHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

// circuitBreaker stops calling a geocoder after consecutive failures. Once
// openFor has elapsed a single probe is let through; its outcome closes or
// reopens the circuit.
type circuitBreaker struct {
	mu          sync.Mutex
	threshold   int
	openFor     time.Duration
	now         func() time.Time
	failures    int
	lastFailure time.Time
	state       circuitState
	probing     bool
}

func newCircuitBreaker(threshold int, openFor time.Duration) *circuitBreaker {
	if threshold < 1 {
		threshold = 1
	}
	return &circuitBreaker{threshold: threshold, openFor: openFor, now: time.Now}
}

// allow reports whether a call may proceed.
func (cb *circuitBreaker) allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case stateOpen:
		if cb.now().Sub(cb.lastFailure) < cb.openFor {
			return false
		}
		cb.state = stateHalfOpen
		cb.probing = true
		return true
	case stateHalfOpen:
		if cb.probing {
			return false
		}
		cb.probing = true
		return true
	default:
		return true
	}
}

func (cb *circuitBreaker) success() (changed bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	changed = cb.state != stateClosed
	cb.failures = 0
	cb.state = stateClosed
	cb.probing = false
	return changed
}

func (cb *circuitBreaker) failure() (opened bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures++
	cb.lastFailure = cb.now()
	cb.probing = false

	if cb.state == stateHalfOpen || cb.failures >= cb.threshold {
		opened = cb.state != stateOpen
		cb.state = stateOpen
	}
	return opened
}

func (cb *circuitBreaker) current() circuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// abandon releases a half-open probe whose outcome is unknown, e.g. when the
// caller's context was cancelled.
func (cb *circuitBreaker) abandon() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.probing = false
}
