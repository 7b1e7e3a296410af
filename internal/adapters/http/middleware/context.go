package middleware

import "context"

// idKey indexes the tracing ids this package stores on a request context.
// The TMDB client reads them back to tag outbound calls.
type idKey uint8

const (
	requestIDKey idKey = iota + 1
	correlationIDKey
)

func idValue(ctx context.Context, key idKey) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(key).(string)

	return id
}

// RequestIDFromContext returns the request id, or "" when ctx carries none.
func RequestIDFromContext(ctx context.Context) string {
	return idValue(ctx, requestIDKey)
}

// CorrelationIDFromContext returns the correlation id, or "" when ctx carries none.
func CorrelationIDFromContext(ctx context.Context) string {
	return idValue(ctx, correlationIDKey)
}

// ContextWithRequestID returns a copy of ctx carrying the request id.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// ContextWithCorrelationID returns a copy of ctx carrying the correlation id.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}
