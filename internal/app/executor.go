package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/movie-gateway/internal/platform/logging"
)

// Request lifecycle: Validating → Fetching → Shaping → Responding
//
// Every public read runs through the same four stages:
//   1. VALIDATING  - Coerce raw input into bounded, typed values. Never calls upstream.
//   2. FETCHING    - Perform exactly one upstream call. No retries.
//   3. SHAPING     - Map domain values to the public schema.
//   4. RESPONDING  - Hand the shaped value to the transport.
//
// A request leaves the machine exactly once: completed, rejected during
// validation, or failed while fetching.

// Stage is a state in the request lifecycle.
type Stage string

const (
	StageValidating Stage = "validating"
	StageFetching   Stage = "fetching"
	StageShaping    Stage = "shaping"
	StageResponding Stage = "responding"
)

// Outcome is the terminal state of a request.
type Outcome string

const (
	OutcomeCompleted          Outcome = "completed"
	OutcomeValidationRejected Outcome = "validation_rejected"
	OutcomeUpstreamFailed     Outcome = "upstream_failed"
	OutcomeInternal           Outcome = "internal"
)

// StageError wraps errors with the stage where they occurred.
type StageError struct {
	Stage Stage
	Cause error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *StageError) Unwrap() error {
	return e.Cause
}

// Outcome reports the terminal state implied by the failing stage.
func (e *StageError) Outcome() Outcome {
	switch e.Stage {
	case StageValidating:
		return OutcomeValidationRejected
	case StageFetching:
		return OutcomeUpstreamFailed
	case StageShaping, StageResponding:
		return OutcomeInternal
	default:
		return OutcomeInternal
	}
}

// Executor runs operations through the request lifecycle.
// It provides logging and error handling at each stage.
type Executor struct {
	logger *slog.Logger
}

// NewExecutor creates a new executor with the given logger.
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{logger: logger}
}

// Operation defines the functions for each stage of the request lifecycle.
//
// I is the raw input, R the validated request, F the fetched domain value and
// O the shaped public value.
type Operation[I, R, F, O any] struct {
	// Name identifies this operation for logging.
	Name string

	// Validate turns raw input into a typed request.
	Validate func(ctx context.Context, input I) (R, error)

	// Fetch performs the single upstream call.
	Fetch func(ctx context.Context, req R) (F, error)

	// Shape maps the fetched value to the public schema.
	Shape func(ctx context.Context, req R, fetched F) (O, error)

	// Respond writes the shaped value. Optional.
	Respond func(ctx context.Context, shaped O) error
}

// Execute runs an operation through all stages and returns the shaped value.
// Any failure is returned as a *StageError.
func Execute[I, R, F, O any](ctx context.Context, exec *Executor, op Operation[I, R, F, O], input I) (O, error) {
	var zero O

	logger := logging.FromContextOr(ctx, exec.logger).With(slog.String("operation", op.Name))
	start := time.Now()

	fail := func(stage Stage, err error) (O, error) {
		stageErr := &StageError{Stage: stage, Cause: err}
		logger.DebugContext(ctx, "request left lifecycle",
			slog.String("stage", string(stage)),
			slog.String("outcome", string(stageErr.Outcome())),
			slog.Any("error", err),
		)

		return zero, stageErr
	}

	// Stage 1: Validating.
	req, err := op.Validate(ctx, input)
	if err != nil {
		return fail(StageValidating, err)
	}

	// Stage 2: Fetching.
	fetched, err := op.Fetch(ctx, req)
	if err != nil {
		return fail(StageFetching, err)
	}

	// Stage 3: Shaping.
	shaped, err := op.Shape(ctx, req, fetched)
	if err != nil {
		return fail(StageShaping, err)
	}

	// Stage 4: Responding.
	if op.Respond != nil {
		err = op.Respond(ctx, shaped)
		if err != nil {
			return fail(StageResponding, err)
		}
	}

	logger.DebugContext(ctx, "request completed",
		slog.String("outcome", string(OutcomeCompleted)),
		slog.Duration("duration", time.Since(start)),
	)

	return shaped, nil
}

// GetStage extracts the failing stage from an error.
func GetStage(err error) (Stage, bool) {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Stage, true
	}

	return "", false
}

// GetOutcome reports the terminal state for an error returned by Execute.
// A nil error is a completed request.
func GetOutcome(err error) Outcome {
	if err == nil {
		return OutcomeCompleted
	}

	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Outcome()
	}

	return OutcomeInternal
}
