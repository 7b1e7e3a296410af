// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/movie-gateway/internal/domain"
	"github.com/jsamuelsen/movie-gateway/internal/platform/logging"
)

// ErrorResponse is the error body shared by every endpoint.
type ErrorResponse struct {
	// Error is a short human-readable title.
	Error string `json:"error"`

	// Message gives detail when there is any to give.
	Message string `json:"message,omitempty"`

	// Code is the stable machine-readable code.
	Code string `json:"code"`

	// RetryAfter is set on rate-limited responses only, in seconds.
	RetryAfter *int `json:"retryAfter,omitempty"`
}

const msgInternal = "An unexpected error occurred. Please try again later."

// errorTitles maps each code to its short title.
var errorTitles = map[string]string{
	domain.CodeInvalidPage:     "Invalid page parameter",
	domain.CodeInvalidGenre:    "Invalid genre parameter",
	domain.CodeInvalidQuery:    "Invalid search query",
	domain.CodeInvalidMovieID:  "Invalid movie ID",
	domain.CodeMissingMovieID:  "Movie ID is required",
	domain.CodeMovieNotFound:   "Movie not found",
	domain.CodeRateLimited:     "Rate limit exceeded",
	domain.CodeExternalAPIDown: "External service unavailable",
	domain.CodeUpstreamError:   "Movie database error",
	domain.CodeInternalError:   "Internal server error",
}

// NewErrorResponse creates an error body for code. The title is derived from the code.
func NewErrorResponse(code, message string) *ErrorResponse {
	title, ok := errorTitles[code]
	if !ok {
		title = http.StatusText(http.StatusInternalServerError)
	}

	return &ErrorResponse{
		Error:   title,
		Message: message,
		Code:    code,
	}
}

// InternalErrorResponse is the body for anything that was not anticipated.
func InternalErrorResponse() *ErrorResponse {
	return NewErrorResponse(domain.CodeInternalError, msgInternal)
}

// MapError maps an error to an HTTP status and error body.
// Validation and not-found errors are local; upstream errors keep the status and
// code assigned when they were classified. Anything else is an internal error
// with a generic message.
func MapError(err error) (int, *ErrorResponse) {
	var (
		validationErr *domain.ValidationError
		notFoundErr   *domain.NotFoundError
	)

	switch {
	case err == nil:
		return http.StatusOK, nil

	case errors.As(err, &validationErr):
		return http.StatusBadRequest, NewErrorResponse(validationErr.Code, validationErr.Message)

	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, NewErrorResponse(domain.CodeMovieNotFound, notFoundErr.Error())
	}

	upstreamErr, ok := domain.AsUpstreamError(err)
	if !ok {
		return http.StatusInternalServerError, InternalErrorResponse()
	}

	return mapUpstreamError(upstreamErr)
}

func mapUpstreamError(e *domain.UpstreamError) (int, *ErrorResponse) {
	resp := NewErrorResponse(e.Code(), e.Message)

	switch e.Kind {
	case domain.KindRateLimited:
		retryAfter := e.RetryAfterSeconds
		if retryAfter <= 0 {
			retryAfter = domain.DefaultRetryAfterSeconds
		}

		resp.RetryAfter = &retryAfter

		return http.StatusTooManyRequests, resp

	case domain.KindServiceUnavailable:
		return http.StatusServiceUnavailable, resp

	case domain.KindGeneric:
		status := e.Status
		if status < http.StatusBadRequest || status > 599 {
			status = http.StatusInternalServerError
		}

		return status, resp

	default:
		return http.StatusInternalServerError, InternalErrorResponse()
	}
}

// RespondError writes the error response for err and aborts the handler chain.
// Rate-limited responses also carry a Retry-After header.
func RespondError(c *gin.Context, err error) {
	status, body := MapError(err)

	_ = c.Error(err)

	if body.RetryAfter != nil {
		c.Header("Retry-After", strconv.Itoa(*body.RetryAfter))
	}

	if body.Code == domain.CodeInternalError {
		logging.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "internal error",
			slog.Any("error", err),
		)
	}

	c.AbortWithStatusJSON(status, body)
}
