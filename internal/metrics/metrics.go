// Package metrics defines and registers all custom Prometheus metrics for the
// EduSkill platform API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "eduskill"

// ── Exam metrics ──────────────────────────────────────────────────────────────

// ExamsSubmittedTotal counts graded exam submissions.
// Label:
//   - result: "passed" or "failed"
var ExamsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exams_submitted_total",
		Help:      "Total number of exam submissions graded, by result.",
	},
	[]string{"result"},
)

// CertificatesIssuedTotal counts newly minted certificates. Idempotent
// re-passes do not increment it.
var CertificatesIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "certificates_issued_total",
		Help:      "Total number of certificates issued on first passing submission.",
	},
)

// ── Messaging metrics ─────────────────────────────────────────────────────────

// MessagesSentTotal counts messages created.
var MessagesSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total number of direct messages sent.",
	},
)

// ConversationsAggregatedTotal counts completed conversation aggregations.
var ConversationsAggregatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "conversations_aggregated_total",
		Help:      "Total number of conversation list aggregations served.",
	},
)

// ── Marketplace metrics ───────────────────────────────────────────────────────

// BookingsTotal counts booking lifecycle events.
// Label:
//   - status: the status entered ("pending" on create, then "accepted", …)
var BookingsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_total",
		Help:      "Total number of booking lifecycle events, by resulting status.",
	},
	[]string{"status"},
)

// ── Assistant metrics ─────────────────────────────────────────────────────────

// ChatRequestsTotal counts assistant requests.
// Label:
//   - mode: "live" (generative API), "fallback" (canned), or "throttled"
var ChatRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_requests_total",
		Help:      "Total number of assistant requests, by answer mode.",
	},
	[]string{"mode"},
)

// ── Upload metrics ────────────────────────────────────────────────────────────

// UploadsTotal counts accepted file uploads.
var UploadsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of files stored by the upload endpoint.",
	},
)
