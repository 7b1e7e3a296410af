// Package clients provides HTTP client adapters for downstream services.
package clients

import (
	"errors"
	"fmt"
	"time"
)

// Client errors represent failures in the HTTP client layer.
// These are distinct from domain errors - they represent infrastructure failures
// that should be translated to domain errors by the calling code.
var (
	// ErrCircuitOpen is returned when the circuit breaker is open.
	// This indicates the downstream service is unhealthy and requests are being blocked.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrRequestFailed is returned when the request never produced a response:
	// connection failures, timeouts and cancellation. The cause is wrapped.
	ErrRequestFailed = errors.New("request failed")

	// ErrThrottled is matched by ThrottledError.
	ErrThrottled = errors.New("outbound rate limit exceeded")
)

// ThrottledError is returned when local pacing would delay a request longer
// than the configured maximum wait. The request was not sent.
type ThrottledError struct {
	// Delay is how long the caller would have had to wait.
	Delay time.Duration
}

// Error implements the error interface.
func (e *ThrottledError) Error() string {
	return fmt.Sprintf("%s: next slot in %s", ErrThrottled, e.Delay)
}

// Unwrap returns ErrThrottled for errors.Is support.
func (e *ThrottledError) Unwrap() error {
	return ErrThrottled
}

// RetryAfterSeconds rounds the delay up to whole seconds, minimum one.
func (e *ThrottledError) RetryAfterSeconds() int {
	secs := int((e.Delay + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}

	return secs
}
