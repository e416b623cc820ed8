// Package metrics exposes Prometheus counters and histograms for session
// outcomes and per-step latency, with an optional /metrics HTTP endpoint.
//
// No direct teacher precedent (the teacher has no metrics layer); grounded
// on postalsys-Muti-Metroo's use of github.com/prometheus/client_golang,
// enrichment "from the rest of the pack" for the ambient observability
// stack SPEC_FULL.md's §4.11 calls for.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SessionsStarted counts sessions started per protocol/role.
var SessionsStarted = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "fdexchange_sessions_started_total",
		Help: "Number of protocol sessions started.",
	},
	[]string{"protocol", "role"},
)

// SessionsFinished counts sessions that finished, broken down by outcome.
var SessionsFinished = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "fdexchange_sessions_finished_total",
		Help: "Number of protocol sessions finished, by outcome.",
	},
	[]string{"protocol", "role", "outcome"},
)

// StepLatency is a histogram for the wall-clock duration of named protocol
// steps; no code in this module records observations into it.
var StepLatency = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "fdexchange_step_latency_seconds",
		Help:    "Duration of a single protocol step.",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"protocol", "role", "step"},
)

// Serve starts a blocking HTTP server exposing /metrics on addr.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
