package clients

import (
	"sync"
	"time"
)

// State is the position of the breaker guarding TMDB.
type State int

const (
	// StateClosed lets every call through.
	StateClosed State = iota

	// StateOpen rejects calls locally until the cooldown passes.
	StateOpen

	// StateHalfOpen lets a bounded number of probe calls through.
	StateHalfOpen
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// outcome is how a finished call affects the breaker.
type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeFailure
	outcomeNeutral
)

// CircuitBreakerConfig configures the circuit breaker behavior.
type CircuitBreakerConfig struct {
	// MaxFailures is the run of consecutive outages that opens the circuit.
	MaxFailures int

	// Timeout is the cooldown spent open before probing.
	Timeout time.Duration

	// HalfOpenLimit caps concurrent probes and is also the run of probe
	// successes that closes the circuit.
	HalfOpenLimit int
}

// CircuitBreaker stops calling TMDB while it is down.
//
// Only outages are failures: transport errors, timeouts and 5xx answers.
// Any 4xx, including 429, shows TMDB is reachable and counts as a success.
// A call abandoned by its caller is neutral.
//
//	closed    --MaxFailures outages-->   open
//	open      --Timeout elapsed-->       half-open
//	half-open --HalfOpenLimit successes-> closed
//	half-open --any outage-->            open
type CircuitBreaker struct {
	cfg CircuitBreakerConfig

	mu       sync.Mutex
	state    State
	streak   int       // consecutive outages while closed, successes while half-open
	probes   int       // probe calls in flight while half-open
	openedAt time.Time // start of the current cooldown

	onStateChange func(from, to State)

	// now is replaced in tests.
	now func() time.Time
}

// NewCircuitBreaker creates a closed circuit breaker.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{cfg: cfg, now: time.Now}
}

// OnStateChange registers fn to run, on its own goroutine, after each transition.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.onStateChange = fn
}

// Allow reports whether a call may go out now. An open breaker whose cooldown
// has elapsed moves to half-open and admits the caller as its first probe.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen {
		if cb.now().Sub(cb.openedAt) < cb.cfg.Timeout {
			return false
		}

		cb.setState(StateHalfOpen)
	}

	if cb.state == StateHalfOpen {
		if cb.probes >= cb.cfg.HalfOpenLimit {
			return false
		}

		cb.probes++
	}

	return true
}

// RetryIn returns how long an open breaker keeps rejecting calls.
// It is zero unless the breaker is open.
func (cb *CircuitBreaker) RetryIn() time.Duration {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state != StateOpen {
		return 0
	}

	return max(cb.cfg.Timeout-cb.now().Sub(cb.openedAt), 0)
}

// RecordSuccess records a call that reached TMDB and got a non-5xx answer.
func (cb *CircuitBreaker) RecordSuccess() { cb.record(outcomeSuccess) }

// RecordFailure records an outage.
func (cb *CircuitBreaker) RecordFailure() { cb.record(outcomeFailure) }

// RecordNeutral records a call that ended before TMDB answered because the
// caller gave up. It only returns the probe slot.
func (cb *CircuitBreaker) RecordNeutral() { cb.record(outcomeNeutral) }

func (cb *CircuitBreaker) record(o outcome) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		switch o {
		case outcomeSuccess:
			cb.streak = 0
		case outcomeFailure:
			cb.streak++
			if cb.streak >= cb.cfg.MaxFailures {
				cb.trip()
			}
		case outcomeNeutral:
		}

	case StateHalfOpen:
		if cb.probes > 0 {
			cb.probes--
		}

		switch o {
		case outcomeSuccess:
			cb.streak++
			if cb.streak >= cb.cfg.HalfOpenLimit {
				cb.setState(StateClosed)
			}
		case outcomeFailure:
			cb.trip()
		case outcomeNeutral:
		}

	case StateOpen:
		// A straggler from before the trip extends the cooldown.
		if o == outcomeFailure {
			cb.openedAt = cb.now()
		}
	}
}

// State returns the current state of the circuit breaker.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.state
}

// trip opens the breaker and starts the cooldown. Caller holds mu.
func (cb *CircuitBreaker) trip() {
	cb.openedAt = cb.now()
	cb.setState(StateOpen)
}

// setState moves to next and clears the counters. Caller holds mu.
func (cb *CircuitBreaker) setState(next State) {
	prev := cb.state
	if prev == next {
		return
	}

	cb.state = next
	cb.streak = 0
	cb.probes = 0

	if fn := cb.onStateChange; fn != nil {
		go fn(prev, next)
	}
}
