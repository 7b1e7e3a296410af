package telemetry

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	meterName = "github.com/jsamuelsen/movie-gateway/telemetry"

	// HeaderTraceID echoes the server span's trace id so callers can quote it.
	HeaderTraceID = "X-Trace-ID"
)

// serverMetrics are the otel instruments for inbound gateway requests.
type serverMetrics struct {
	duration metric.Float64Histogram
	requests metric.Int64Counter
	inFlight metric.Int64UpDownCounter
}

func newServerMetrics(meter metric.Meter) (*serverMetrics, error) {
	var (
		m   serverMetrics
		err error
	)

	if m.duration, err = meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("Gateway request duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	if m.requests, err = meter.Int64Counter("http.server.request.total",
		metric.WithDescription("Gateway requests by route and status"),
	); err != nil {
		return nil, err
	}

	if m.inFlight, err = meter.Int64UpDownCounter("http.server.active_requests",
		metric.WithDescription("Gateway requests currently being served"),
	); err != nil {
		return nil, err
	}

	return &m, nil
}

func (m *serverMetrics) begin(ctx context.Context, route attribute.Set) func() {
	m.inFlight.Add(ctx, 1, metric.WithAttributeSet(route))
	return func() { m.inFlight.Add(ctx, -1, metric.WithAttributeSet(route)) }
}

func (m *serverMetrics) finish(ctx context.Context, elapsed time.Duration, attrs ...attribute.KeyValue) {
	opt := metric.WithAttributes(attrs...)
	m.duration.Record(ctx, elapsed.Seconds(), opt)
	m.requests.Add(ctx, 1, opt)
}

// Middleware records request metrics and sets the X-Trace-ID response header.
// It must run after TracingMiddleware so the server span exists.
func Middleware(serviceName string) gin.HandlerFunc {
	metrics, err := newServerMetrics(otel.Meter(meterName))
	if err != nil {
		otel.Handle(err)
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
			c.Header(HeaderTraceID, sc.TraceID().String())
		}

		if metrics == nil {
			c.Next()
			return
		}

		start := time.Now()
		method := attribute.String("http.method", c.Request.Method)
		route := attribute.String("http.route", c.FullPath())

		done := metrics.begin(ctx, attribute.NewSet(method, route))
		defer done()

		c.Next()

		metrics.finish(ctx, time.Since(start),
			method,
			route,
			attribute.Int("http.status_code", c.Writer.Status()),
			attribute.String("service.name", serviceName),
		)
	}
}

// TracingMiddleware starts a server span per request. Outbound TMDB spans
// become its children.
func TracingMiddleware(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName)
}
