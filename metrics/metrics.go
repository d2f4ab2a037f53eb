// Package metrics exposes prometheus instrumentation for the planning
// pipelines.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for PlanRequests.
const (
	OutcomeSuccess  = "success"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
	OutcomeInvalid  = "invalid"
)

// Model call kinds.
const (
	CallKindGenerate = "generate"
	CallKindRepair   = "repair"
	CallKindRevise   = "revise"
)

var (
	// PlanRequests counts planning requests by outcome.
	PlanRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tripweaver",
		Name:      "plan_requests_total",
		Help:      "Planning requests by outcome.",
	}, []string{"outcome"})

	// ModelCalls counts completion calls by kind.
	ModelCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tripweaver",
		Name:      "model_calls_total",
		Help:      "Model completion calls by kind.",
	}, []string{"kind"})

	// StageDuration observes per-stage latency.
	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tripweaver",
		Name:      "stage_duration_seconds",
		Help:      "Latency of pipeline stages.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"stage"})
)

// Handler serves the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
