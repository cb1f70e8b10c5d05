// Package metrics exposes prometheus instrumentation for the HTTP surface,
// tool discovery, tool dispatch, and provider calls.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mcpchat",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duration of handled HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"path", "method", "status"})

	discoveryProbes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mcpchat",
		Subsystem: "mcp",
		Name:      "discovery_probes_total",
		Help:      "Tool discovery probes by outcome.",
	}, []string{"outcome"})

	discoveredTools = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mcpchat",
		Subsystem: "mcp",
		Name:      "discovered_tools",
		Help:      "Number of tools returned per successful discovery probe.",
		Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
	}, []string{"outcome"})

	toolDispatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mcpchat",
		Subsystem: "mcp",
		Name:      "tool_dispatches_total",
		Help:      "Tool dispatch attempts by tool name and outcome.",
	}, []string{"tool", "outcome"})

	toolDispatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "mcpchat",
		Subsystem: "mcp",
		Name:      "tool_dispatch_duration_seconds",
		Help:      "End-to-end duration of tool dispatches, including discovery.",
		Buckets:   prometheus.DefBuckets,
	})

	providerCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mcpchat",
		Subsystem: "provider",
		Name:      "calls_total",
		Help:      "Upstream provider chat completion calls by provider and outcome.",
	}, []string{"provider", "outcome"})

	providerCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mcpchat",
		Subsystem: "provider",
		Name:      "call_duration_seconds",
		Help:      "Duration of upstream provider calls.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"provider"})
)

// RecordHTTPRequest observes one handled HTTP request.
func RecordHTTPRequest(start time.Time, path, method string, status int) {
	httpRequestDuration.WithLabelValues(path, method, strconv.Itoa(status)).
		Observe(time.Since(start).Seconds())
}

// RecordDiscovery counts one discovery probe and the catalog size it yielded.
func RecordDiscovery(success bool, toolCount int) {
	outcome := outcomeLabel(success)
	discoveryProbes.WithLabelValues(outcome).Inc()
	discoveredTools.WithLabelValues(outcome).Observe(float64(toolCount))
}

// RecordToolDispatch observes one tool dispatch attempt.
func RecordToolDispatch(start time.Time, tool string, success bool) {
	toolDispatches.WithLabelValues(tool, outcomeLabel(success)).Inc()
	toolDispatchDuration.Observe(time.Since(start).Seconds())
}

// RecordProviderCall observes one upstream provider chat completion call.
func RecordProviderCall(start time.Time, provider string, success bool) {
	providerCalls.WithLabelValues(provider, outcomeLabel(success)).Inc()
	providerCallDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}

func outcomeLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
