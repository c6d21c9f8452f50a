// Package metrics holds the Prometheus collectors shared by the webhook
// front door, the dispatcher and the audit pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "phiguard"

type Metrics struct {
	// WebhookRequests counts inbound deliveries.
	// Labels: outcome (accepted, ignored, unauthorized, malformed, rate_limited, unavailable)
	WebhookRequests *prometheus.CounterVec

	// Audits counts completed audits. Labels: status (CLEAN, VIOLATION)
	Audits *prometheus.CounterVec

	// StageFailures counts pipeline stages that failed.
	// Labels: stage (fetch, reviewer, static_analysis, ledger, persist, notify, publish, panic)
	StageFailures *prometheus.CounterVec

	ReviewerDegraded prometheus.Counter
	LedgerConflicts  prometheus.Counter
	ChainGaps        prometheus.Counter

	AuditDuration prometheus.Histogram
	InFlight      prometheus.Gauge
}

// New registers every collector on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		WebhookRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "requests_total",
			Help:      "Webhook deliveries by outcome",
		}, []string{"outcome"}),
		Audits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audits_total",
			Help:      "Completed audits by verdict",
		}, []string{"status"}),
		StageFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_failures_total",
			Help:      "Pipeline stage failures by stage",
		}, []string{"stage"}),
		ReviewerDegraded: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reviewer",
			Name:      "degraded_total",
			Help:      "Audits that completed without a usable reviewer answer",
		}),
		LedgerConflicts: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "write_conflicts_total",
			Help:      "Ledger appends that lost a race for the chain head",
		}),
		ChainGaps: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "chain_gaps_total",
			Help:      "Ledger entries whose predecessor has no persisted record",
		}),
		AuditDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "audit_duration_seconds",
			Help:      "Wall time of a full audit run",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		}),
		InFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "audits_in_flight",
			Help:      "Audit runs currently executing",
		}),
	}
}

// NewNop returns collectors registered on a private registry, for tests and
// one-shot CLI commands.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
