package middleware

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextIDs(t *testing.T) {
	tests := []struct {
		name            string
		build           func() context.Context
		wantRequest     string
		wantCorrelation string
	}{
		{
			name:  "empty context",
			build: context.Background,
		},
		{
			name: "nil context",
			build: func() context.Context {
				return nil
			},
		},
		{
			name: "request id only",
			build: func() context.Context {
				return ContextWithRequestID(context.Background(), "550e8400-e29b-41d4-a716-446655440000")
			},
			wantRequest: "550e8400-e29b-41d4-a716-446655440000",
		},
		{
			name: "both ids are independent",
			build: func() context.Context {
				ctx := ContextWithRequestID(context.Background(), "req-genres")
				return ContextWithCorrelationID(ctx, "checkout-flow")
			},
			wantRequest:     "req-genres",
			wantCorrelation: "checkout-flow",
		},
		{
			name: "inner value wins",
			build: func() context.Context {
				ctx := ContextWithCorrelationID(context.Background(), "outer")
				return ContextWithCorrelationID(ctx, "inner")
			},
			wantCorrelation: "inner",
		},
		{
			name: "foreign string key is ignored",
			build: func() context.Context {
				//nolint:staticcheck // checks collisions with plain string keys
				return context.WithValue(context.Background(), "request_id", "spoofed")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := tt.build()

			assert.Equal(t, tt.wantRequest, RequestIDFromContext(ctx))
			assert.Equal(t, tt.wantCorrelation, CorrelationIDFromContext(ctx))
		})
	}
}
