package tmdb

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/movie-gateway/internal/adapters/clients"
	"github.com/jsamuelsen/movie-gateway/internal/domain"
)

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseRetryAfter(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	original := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = original })

	tests := []struct {
		name     string
		value    string
		expected int
	}{
		{name: "missing", value: "", expected: domain.DefaultRetryAfterSeconds},
		{name: "delta seconds", value: "12", expected: 12},
		{name: "padded delta", value: " 5 ", expected: 5},
		{name: "zero means one second", value: "0", expected: 1},
		{name: "negative", value: "-3", expected: domain.DefaultRetryAfterSeconds},
		{name: "garbage", value: "soon", expected: domain.DefaultRetryAfterSeconds},
		{name: "http date", value: fixed.Add(90 * time.Second).Format(http.TimeFormat), expected: 90},
		{name: "http date in the past", value: fixed.Add(-time.Hour).Format(http.TimeFormat), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseRetryAfter(tt.value))
		})
	}
}

func TestClassify_Success(t *testing.T) {
	assert.NoError(t, Classify(response(http.StatusOK, "{}"), nil))
	assert.NoError(t, Classify(response(http.StatusNoContent, ""), nil))
}

func TestClassify_TransportErrors(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		expectedKind  domain.ErrorKind
		expectedRetry int
	}{
		{
			name:          "local pacing refusal",
			err:           &clients.ThrottledError{Delay: 2500 * time.Millisecond},
			expectedKind:  domain.KindRateLimited,
			expectedRetry: 3,
		},
		{
			name:         "circuit open",
			err:          clients.ErrCircuitOpen,
			expectedKind: domain.KindServiceUnavailable,
		},
		{
			name:         "timeout",
			err:          fmt.Errorf("%w: %w", clients.ErrRequestFailed, errors.New("context deadline exceeded")),
			expectedKind: domain.KindServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify(nil, tt.err)

			upstreamErr, ok := domain.AsUpstreamError(err)
			require.True(t, ok)
			assert.Equal(t, tt.expectedKind, upstreamErr.Kind)
			assert.Equal(t, tt.expectedRetry, upstreamErr.RetryAfterSeconds)
		})
	}
}

func TestClassify_NilResponse(t *testing.T) {
	assert.True(t, domain.IsUnavailable(Classify(nil, nil)))
}

func TestClassify_StatusMessage(t *testing.T) {
	tests := []struct {
		name     string
		resp     *http.Response
		expected string
	}{
		{
			name:     "provider message",
			resp:     response(http.StatusUnauthorized, `{"status_code":7,"status_message":"Invalid API key"}`),
			expected: "Invalid API key",
		},
		{
			name:     "not json",
			resp:     response(http.StatusBadRequest, "<html>bad</html>"),
			expected: "Bad Request",
		},
		{
			name:     "empty message",
			resp:     response(http.StatusNotFound, `{"status_code":34,"status_message":"  "}`),
			expected: "Not Found",
		},
		{
			name:     "unknown status",
			resp:     response(499, ""),
			expected: "upstream status 499",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstreamErr, ok := domain.AsUpstreamError(Classify(tt.resp, nil))
			require.True(t, ok)

			assert.Equal(t, domain.KindGeneric, upstreamErr.Kind)
			assert.Equal(t, tt.resp.StatusCode, upstreamErr.Status)
			assert.Equal(t, tt.expected, upstreamErr.Message)
		})
	}
}

func TestClassify_ServerErrorsAreOutages(t *testing.T) {
	for _, status := range []int{500, 502, 503, 504} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			upstreamErr, ok := domain.AsUpstreamError(Classify(response(status, ""), nil))
			require.True(t, ok)

			assert.Equal(t, domain.KindServiceUnavailable, upstreamErr.Kind)
			assert.Equal(t, http.StatusServiceUnavailable, upstreamErr.Status)
			assert.Equal(t, domain.CodeExternalAPIDown, upstreamErr.Code())
		})
	}
}

func TestDecode(t *testing.T) {
	out, err := decode[genreListDTO](strings.NewReader(`{"genres":[{"id":1,"name":"A"}]}`))
	require.NoError(t, err)
	assert.Len(t, out.Genres, 1)

	_, err = decode[genreListDTO](strings.NewReader(`not json`))
	upstreamErr, ok := domain.AsUpstreamError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, upstreamErr.Status)
	assert.Equal(t, domain.CodeUpstreamError, upstreamErr.Code())
}
