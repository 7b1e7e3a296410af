// Package middleware holds the Gin middleware chain for the gateway.
package middleware

import (
	"context"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/movie-gateway/internal/platform/logging"
)

const (
	// HeaderRequestID identifies a single call to the gateway.
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID spans a whole user interaction across services.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyRequestID is the gin context key for the request id.
	ContextKeyRequestID = "request_id"

	// ContextKeyCorrelationID is the gin context key for the correlation id.
	ContextKeyCorrelationID = "correlation_id"
)

// safeID bounds inbound ids before they reach logs and TMDB headers.
var safeID = regexp.MustCompile(`^[A-Za-z0-9._:\-]{1,128}$`)

// tracingID describes one id header the gateway accepts, echoes and forwards.
type tracingID struct {
	header string
	ginKey string
	attach func(ctx context.Context, id string) context.Context
}

func (t tracingID) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(t.header)
		if !safeID.MatchString(id) {
			id = uuid.NewString()
		}

		c.Set(t.ginKey, id)
		c.Header(t.header, id)
		c.Request = c.Request.WithContext(t.attach(c.Request.Context(), id))

		c.Next()
	}
}

// RequestID accepts a well-formed X-Request-ID or generates one. The id is
// echoed in the response, attached to the context logger and forwarded to
// TMDB by the outbound client.
func RequestID() gin.HandlerFunc {
	return tracingID{
		header: HeaderRequestID,
		ginKey: ContextKeyRequestID,
		attach: func(ctx context.Context, id string) context.Context {
			return logging.WithRequestID(ContextWithRequestID(ctx, id), id)
		},
	}.handler()
}

// CorrelationID propagates X-Correlation-ID, starting a new one when absent.
func CorrelationID() gin.HandlerFunc {
	return tracingID{
		header: HeaderCorrelationID,
		ginKey: ContextKeyCorrelationID,
		attach: func(ctx context.Context, id string) context.Context {
			return logging.WithCorrelationID(ContextWithCorrelationID(ctx, id), id)
		},
	}.handler()
}

// GetRequestID returns the request id set by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// GetCorrelationID returns the correlation id set by CorrelationID, or "".
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(ContextKeyCorrelationID)
}
