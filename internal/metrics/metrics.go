// Package metrics holds the prometheus collectors shared by the CLI and the API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QuotesTotal counts spot price lookups by source and outcome (ok, error, cache_hit).
	QuotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ilsurface",
		Name:      "quotes_total",
		Help:      "Spot price lookups by source and status.",
	}, []string{"source", "status"})

	QuoteDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ilsurface",
		Name:      "quote_duration_seconds",
		Help:      "Latency of on-chain quote calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})

	SimulationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ilsurface",
		Name:      "simulations_total",
		Help:      "Completed impermanent loss simulations.",
	})

	SurfaceBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ilsurface",
		Name:      "surface_build_duration_seconds",
		Help:      "Time spent building and interpolating the IL surface.",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ilsurface",
		Name:      "http_requests_total",
		Help:      "API requests by route and status code.",
	}, []string{"route", "code"})
)
