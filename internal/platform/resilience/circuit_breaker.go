package resilience

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned by Allow while the breaker refuses traffic.
var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// CircuitBreaker shields a remote dependency from repeated calls while it is
// failing. A streak of failures trips it open; after openTimeout it admits a
// bounded number of trial requests, and enough trial successes close it again.
type CircuitBreaker struct {
	mu sync.Mutex

	failureThreshold int
	openTimeout      time.Duration
	halfOpenMaxReq   int

	state           CircuitState
	failureStreak   int
	trippedAt       time.Time
	trialsInFlight  int
	trialsSucceeded int
	now             func() time.Time
}

func NewCircuitBreaker(failureThreshold int, openTimeout time.Duration, halfOpenMaxReq int) *CircuitBreaker {
	if failureThreshold < 1 {
		failureThreshold = 1
	}
	if openTimeout <= 0 {
		openTimeout = 15 * time.Second
	}
	if halfOpenMaxReq < 1 {
		halfOpenMaxReq = 1
	}

	return &CircuitBreaker{
		failureThreshold: failureThreshold,
		openTimeout:      openTimeout,
		halfOpenMaxReq:   halfOpenMaxReq,
		state:            CircuitStateClosed,
		now:              time.Now,
	}
}

// Allow reports whether a call may proceed. Callers that get nil must follow
// up with RecordSuccess or RecordFailure so half-open accounting stays even.
func (cb *CircuitBreaker) Allow() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == CircuitStateOpen {
		if cb.now().Sub(cb.trippedAt) < cb.openTimeout {
			return ErrCircuitOpen
		}
		cb.enterHalfOpen()
	}

	if cb.state == CircuitStateHalfOpen {
		if cb.trialsInFlight >= cb.halfOpenMaxReq {
			return ErrCircuitOpen
		}
		cb.trialsInFlight++
	}

	return nil
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitStateClosed:
		cb.failureStreak = 0
	case CircuitStateHalfOpen:
		if cb.trialsInFlight > 0 {
			cb.trialsInFlight--
		}
		cb.trialsSucceeded++
		if cb.trialsSucceeded >= cb.halfOpenMaxReq && cb.trialsInFlight == 0 {
			cb.enterClosed()
		}
	}
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitStateClosed:
		cb.failureStreak++
		if cb.failureStreak >= cb.failureThreshold {
			cb.enterOpen()
		}
	case CircuitStateHalfOpen:
		if cb.trialsInFlight > 0 {
			cb.trialsInFlight--
		}
		cb.enterOpen()
	case CircuitStateOpen:
		// A failure while already open restarts the cool-down window.
		cb.trippedAt = cb.now()
	}
}

// State returns the effective state, reporting half-open once an open
// breaker's cool-down has elapsed even before the next Allow call.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == CircuitStateOpen && cb.now().Sub(cb.trippedAt) >= cb.openTimeout {
		return CircuitStateHalfOpen
	}

	return cb.state
}

func (cb *CircuitBreaker) enterClosed() {
	cb.state = CircuitStateClosed
	cb.failureStreak = 0
	cb.trialsInFlight = 0
	cb.trialsSucceeded = 0
	cb.trippedAt = time.Time{}
}

func (cb *CircuitBreaker) enterOpen() {
	cb.state = CircuitStateOpen
	cb.trippedAt = cb.now()
	cb.trialsInFlight = 0
	cb.trialsSucceeded = 0
}

func (cb *CircuitBreaker) enterHalfOpen() {
	cb.state = CircuitStateHalfOpen
	cb.trialsInFlight = 0
	cb.trialsSucceeded = 0
}
