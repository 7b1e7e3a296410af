// Package domain contains business logic types and errors.
// Domain errors represent business-level failures. UpstreamError carries the
// HTTP status to surface because the public contract is status-based; adapters
// still own the wire format.
package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// DefaultRetryAfterSeconds is the retry hint used when the upstream rate-limits
// without saying how long to wait.
const DefaultRetryAfterSeconds = 60

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates request input was rejected before any upstream call.
	ErrValidation = errors.New("validation failed")

	// ErrUpstream indicates the upstream provider returned a failure that is
	// neither rate limiting nor an outage.
	ErrUpstream = errors.New("upstream error")

	// ErrRateLimited indicates the upstream provider is throttling requests.
	ErrRateLimited = errors.New("rate limited")

	// ErrUnavailable indicates the upstream provider is unreachable or failing.
	ErrUnavailable = errors.New("unavailable")
)

// Stable machine-readable codes surfaced to callers.
const (
	CodeInvalidPage     = "INVALID_PAGE"
	CodeInvalidGenre    = "INVALID_GENRE"
	CodeInvalidQuery    = "INVALID_QUERY"
	CodeInvalidMovieID  = "INVALID_MOVIE_ID"
	CodeMissingMovieID  = "MISSING_MOVIE_ID"
	CodeMovieNotFound   = "MOVIE_NOT_FOUND"
	CodeRateLimited     = "RATE_LIMIT_EXCEEDED"
	CodeExternalAPIDown = "EXTERNAL_API_DOWN"
	CodeUpstreamError   = "TMDB_ERROR"
	CodeInternalError   = "INTERNAL_ERROR"
)

// ErrorKind classifies an upstream failure. It is assigned once, where the
// upstream response is first inspected, and never re-derived downstream.
type ErrorKind int

const (
	// KindGeneric covers every upstream failure that is not throttling or an outage,
	// including not-found and undecodable payloads.
	KindGeneric ErrorKind = iota

	// KindRateLimited means the upstream answered 429 or local pacing refused the call.
	KindRateLimited

	// KindServiceUnavailable means the upstream was unreachable, timed out or answered 5xx.
	KindServiceUnavailable
)

// String returns a human-readable name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindGeneric:
		return "generic"
	case KindRateLimited:
		return "rate_limited"
	case KindServiceUnavailable:
		return "service_unavailable"
	default:
		return "unknown"
	}
}

// UpstreamError is a classified upstream failure.
type UpstreamError struct {
	Kind ErrorKind

	// Status is the HTTP status to surface to the caller.
	Status int

	// Message is safe to show to callers.
	Message string

	// RetryAfterSeconds is only meaningful for KindRateLimited.
	RetryAfterSeconds int

	// Cause is the underlying transport or decoding error, if any. Never surfaced.
	Cause error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("upstream %s (status %d): %s: %v", e.Kind, e.Status, e.Message, e.Cause)
	}

	return fmt.Sprintf("upstream %s (status %d): %s", e.Kind, e.Status, e.Message)
}

// Unwrap returns the sentinel for the kind so errors.Is() works.
func (e *UpstreamError) Unwrap() []error {
	errs := []error{e.sentinel()}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}

	return errs
}

func (e *UpstreamError) sentinel() error {
	switch e.Kind {
	case KindRateLimited:
		return ErrRateLimited
	case KindServiceUnavailable:
		return ErrUnavailable
	default:
		return ErrUpstream
	}
}

// Code returns the stable machine code for the kind.
func (e *UpstreamError) Code() string {
	switch e.Kind {
	case KindRateLimited:
		return CodeRateLimited
	case KindServiceUnavailable:
		return CodeExternalAPIDown
	default:
		return CodeUpstreamError
	}
}

// NewRateLimitedError creates a rate-limit error. Non-positive hints fall back
// to DefaultRetryAfterSeconds.
func NewRateLimitedError(retryAfterSeconds int) error {
	if retryAfterSeconds <= 0 {
		retryAfterSeconds = DefaultRetryAfterSeconds
	}

	return &UpstreamError{
		Kind:              KindRateLimited,
		Status:            http.StatusTooManyRequests,
		Message:           "Too many requests to the movie database. Please try again later.",
		RetryAfterSeconds: retryAfterSeconds,
	}
}

// NewUnavailableError creates an outage error.
func NewUnavailableError(reason string, cause error) error {
	if reason == "" {
		reason = "The movie database is temporarily unavailable."
	}

	return &UpstreamError{
		Kind:    KindServiceUnavailable,
		Status:  http.StatusServiceUnavailable,
		Message: reason,
		Cause:   cause,
	}
}

// NewUpstreamError creates a generic upstream error carrying the upstream status.
// A zero status is treated as 500.
func NewUpstreamError(status int, message string, cause error) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}

	return &UpstreamError{
		Kind:    KindGeneric,
		Status:  status,
		Message: message,
		Cause:   cause,
	}
}

// AsUpstreamError extracts an UpstreamError from the chain.
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr, true
	}

	return nil, false
}

// NotFoundError provides context for not found errors.
type NotFoundError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
	}

	return e.Entity + " not found"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError is a local rejection of request input.
type ValidationError struct {
	Code    string
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with a stable code.
func NewValidationError(code, field, message string) error {
	return &ValidationError{Code: code, Field: field, Message: message}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsRateLimited checks if an error is a rate-limit error.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
