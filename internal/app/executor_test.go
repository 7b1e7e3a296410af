package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/movie-gateway/internal/domain"
	"github.com/jsamuelsen/movie-gateway/internal/platform/logging"
)

func parseOp(fetchErr error, calls *[]Stage) Operation[string, int, int, string] {
	return Operation[string, int, int, string]{
		Name: "test",
		Validate: func(_ context.Context, raw string) (int, error) {
			*calls = append(*calls, StageValidating)

			n, err := strconv.Atoi(raw)
			if err != nil {
				return 0, domain.NewValidationError(domain.CodeInvalidPage, "page", "not a number")
			}

			return n, nil
		},
		Fetch: func(_ context.Context, n int) (int, error) {
			*calls = append(*calls, StageFetching)
			if fetchErr != nil {
				return 0, fetchErr
			}

			return n * 2, nil
		},
		Shape: func(_ context.Context, _ int, fetched int) (string, error) {
			*calls = append(*calls, StageShaping)
			return strconv.Itoa(fetched), nil
		},
		Respond: func(_ context.Context, _ string) error {
			*calls = append(*calls, StageResponding)
			return nil
		},
	}
}

func TestExecute_AllStagesInOrder(t *testing.T) {
	var calls []Stage

	out, err := Execute(context.Background(), NewExecutor(discardLogger()), parseOp(nil, &calls), "21")

	require.NoError(t, err)
	assert.Equal(t, "42", out)
	assert.Equal(t, []Stage{StageValidating, StageFetching, StageShaping, StageResponding}, calls)
	assert.Equal(t, OutcomeCompleted, GetOutcome(err))
}

func TestExecute_ValidationRejectedSkipsFetch(t *testing.T) {
	var calls []Stage

	_, err := Execute(context.Background(), NewExecutor(discardLogger()), parseOp(nil, &calls), "abc")

	require.Error(t, err)
	assert.Equal(t, []Stage{StageValidating}, calls)
	assert.True(t, domain.IsValidation(err))

	stage, ok := GetStage(err)
	require.True(t, ok)
	assert.Equal(t, StageValidating, stage)
	assert.Equal(t, OutcomeValidationRejected, GetOutcome(err))
}

func TestExecute_UpstreamFailedSkipsShaping(t *testing.T) {
	var calls []Stage

	_, err := Execute(context.Background(), NewExecutor(discardLogger()),
		parseOp(domain.NewRateLimitedError(10), &calls), "1")

	require.Error(t, err)
	assert.Equal(t, []Stage{StageValidating, StageFetching}, calls)
	assert.True(t, domain.IsRateLimited(err))
	assert.Equal(t, OutcomeUpstreamFailed, GetOutcome(err))

	upstreamErr, ok := domain.AsUpstreamError(err)
	require.True(t, ok)
	assert.Equal(t, 10, upstreamErr.RetryAfterSeconds)
}

func TestExecute_RespondFailure(t *testing.T) {
	var calls []Stage

	op := parseOp(nil, &calls)
	op.Respond = func(context.Context, string) error { return errors.New("client went away") }

	_, err := Execute(context.Background(), NewExecutor(nil), op, "1")

	stage, ok := GetStage(err)
	require.True(t, ok)
	assert.Equal(t, StageResponding, stage)
	assert.Equal(t, OutcomeInternal, GetOutcome(err))
}

func TestGetOutcome_UnknownError(t *testing.T) {
	assert.Equal(t, OutcomeInternal, GetOutcome(errors.New("boom")))

	_, ok := GetStage(errors.New("boom"))
	assert.False(t, ok)
}

func TestExecute_LogsWithExecutorLoggerWithoutContextLogger(t *testing.T) {
	var buf bytes.Buffer
	exec := NewExecutor(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	var calls []Stage
	_, err := Execute(context.Background(), exec, parseOp(nil, &calls), "21")

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"operation":"test"`)
	assert.Contains(t, buf.String(), "request completed")
}

func TestExecute_PrefersContextLogger(t *testing.T) {
	var execBuf, ctxBuf bytes.Buffer
	exec := NewExecutor(slog.New(slog.NewJSONHandler(&execBuf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	ctx := logging.WithContext(context.Background(),
		slog.New(slog.NewJSONHandler(&ctxBuf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	var calls []Stage
	_, err := Execute(ctx, exec, parseOp(nil, &calls), "21")

	require.NoError(t, err)
	assert.Empty(t, execBuf.String())
	assert.Contains(t, ctxBuf.String(), `"operation":"test"`)
}
