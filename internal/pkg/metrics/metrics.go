// Package metrics defines and registers all custom Prometheus metrics for the
// ATS assistant. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on import via
// promauto; the HTTP layer exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ats_assistant"

// ── Chat metrics ──────────────────────────────────────────────────────────────

// ChatRequestsTotal counts answered chat requests.
// Labels:
//   - intent: requirement, client, allocations or general
//   - outcome: "answered", "llm_error" or "internal_error"
var ChatRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_requests_total",
		Help:      "Total number of chat requests answered, by intent and outcome.",
	},
	[]string{"intent", "outcome"},
)

// ChatRejectedTotal counts chat requests refused before any data was fetched.
// Label:
//   - reason: "missing_identity" or "empty_message"
var ChatRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_rejected_total",
		Help:      "Total number of chat requests rejected for bad input.",
	},
	[]string{"reason"},
)

// ── Data access metrics ───────────────────────────────────────────────────────

// AccessorResultsTotal counts role-scoped reads.
// Labels:
//   - operation: accessor name (e.g. "requirement_by_id")
//   - outcome: "ok", "empty" or "unavailable"
var AccessorResultsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accessor_results_total",
		Help:      "Total number of role-scoped data reads, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// ── LLM metrics ───────────────────────────────────────────────────────────────

// LLMCallDuration measures round trips to the model provider.
// Label:
//   - kind: "chat" or "screening"
var LLMCallDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "llm_call_duration_seconds",
		Help:      "Duration of LLM provider calls.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30},
	},
	[]string{"kind"},
)

// ScreeningsTotal counts screening results.
// Label:
//   - source: "llm", "fallback" or "cache"
var ScreeningsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "screenings_total",
		Help:      "Total number of candidate screenings, by result source.",
	},
	[]string{"source"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks exchanges waiting in each audit worker channel.
// Label:
//   - worker_id: numeric worker index
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of chat exchanges pending in each audit worker channel.",
	},
	[]string{"worker_id"},
)

// AuditDroppedTotal counts exchanges dropped because a worker queue was full.
var AuditDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_dropped_total",
		Help:      "Total number of chat exchanges dropped from the audit queue.",
	},
)
