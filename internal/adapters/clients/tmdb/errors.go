package tmdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jsamuelsen/movie-gateway/internal/adapters/clients"
	"github.com/jsamuelsen/movie-gateway/internal/domain"
)

const (
	// maxErrorBody bounds how much of an error response is read.
	maxErrorBody = 64 << 10

	msgUnavailable     = "The movie database is temporarily unavailable."
	msgCircuitOpen     = "The movie database is temporarily unavailable. Please try again shortly."
	msgInvalidResponse = "The movie database returned an unexpected response."
)

// now is overridable for Retry-After date tests.
var now = time.Now

// Classify turns the outcome of one upstream call into a classified error.
// It returns nil for a 2xx response. The response body is consumed only for
// non-2xx responses; closing it stays with the caller.
func Classify(resp *http.Response, err error) error {
	if err != nil {
		return classifyTransport(err)
	}

	if resp == nil {
		return domain.NewUnavailableError(msgUnavailable, errors.New("no response received"))
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	return classifyStatus(resp)
}

func classifyTransport(err error) error {
	var throttled *clients.ThrottledError
	if errors.As(err, &throttled) {
		return domain.NewRateLimitedError(throttled.RetryAfterSeconds())
	}

	if errors.Is(err, clients.ErrCircuitOpen) {
		return domain.NewUnavailableError(msgCircuitOpen, err)
	}

	return domain.NewUnavailableError(msgUnavailable, err)
}

func classifyStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return domain.NewRateLimitedError(parseRetryAfter(resp.Header.Get("Retry-After")))

	case resp.StatusCode >= http.StatusInternalServerError:
		return domain.NewUnavailableError(msgUnavailable,
			fmt.Errorf("upstream status %d", resp.StatusCode))

	default:
		return domain.NewUpstreamError(resp.StatusCode, statusMessage(resp), nil)
	}
}

// statusMessage extracts TMDB's status_message, falling back to the status text.
func statusMessage(resp *http.Response) string {
	fallback := http.StatusText(resp.StatusCode)
	if fallback == "" {
		fallback = fmt.Sprintf("upstream status %d", resp.StatusCode)
	}

	if resp.Body == nil {
		return fallback
	}

	var status statusDTO
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&status); err != nil {
		return fallback
	}

	if msg := strings.TrimSpace(status.StatusMessage); msg != "" {
		return msg
	}

	return fallback
}

// parseRetryAfter reads a Retry-After header as delta-seconds or an HTTP-date.
// Missing or unparseable values yield the default hint; a hint already in the
// past yields one second.
func parseRetryAfter(value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return domain.DefaultRetryAfterSeconds
	}

	if secs, err := strconv.Atoi(value); err == nil {
		if secs < 0 {
			return domain.DefaultRetryAfterSeconds
		}

		return max(secs, 1)
	}

	when, err := http.ParseTime(value)
	if err != nil {
		return domain.DefaultRetryAfterSeconds
	}

	wait := when.Sub(now())
	secs := int((wait + time.Second - 1) / time.Second)

	return max(secs, 1)
}

// decode reads a 2xx body into T. Failures are generic upstream errors with status 500.
func decode[T any](body io.Reader) (*T, error) {
	var out T
	if err := json.NewDecoder(body).Decode(&out); err != nil {
		return nil, invalidResponse(err)
	}

	return &out, nil
}

func invalidResponse(cause error) error {
	return domain.NewUpstreamError(http.StatusInternalServerError, msgInvalidResponse, cause)
}
