package tmdb

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jsamuelsen/movie-gateway/internal/domain"
)

const outcomeOK = "ok"

var upstreamRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "movie_gateway",
		Name:      "upstream_requests_total",
		Help:      "TMDB calls by operation and classified outcome.",
	},
	[]string{"operation", "outcome"},
)

// observe counts one upstream call. The outcome is "ok" or the error kind.
func observe(operation string, err error) {
	outcome := outcomeOK
	if err != nil {
		outcome = "internal"
		if upstreamErr, ok := domain.AsUpstreamError(err); ok {
			outcome = upstreamErr.Kind.String()
		}
	}

	upstreamRequests.WithLabelValues(operation, outcome).Inc()
}
