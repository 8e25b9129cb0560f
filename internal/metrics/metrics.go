// Package metrics exposes prometheus instrumentation for the ledger.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Mutations counts ledger mutations by operation and outcome
	// (ok, rejected, error).
	Mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_mutations_total",
		Help: "Ledger mutations by operation and outcome.",
	}, []string{"operation", "outcome"})

	// ValidationRejections counts mutations refused by the reconciliation
	// engine, by reason.
	ValidationRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_validation_rejections_total",
		Help: "Mutations rejected by ledger validation, by reason.",
	}, []string{"reason"})

	// ReconcileRuns counts debt recomputations.
	ReconcileRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_reconcile_runs_total",
		Help: "Debt reconciliation runs.",
	})

	// SettlementTransitions counts debt state flips, by direction
	// (settled, reopened).
	SettlementTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_settlement_transitions_total",
		Help: "Debt settlement state transitions, by direction.",
	}, []string{"direction"})

	// HTTPRequestDuration observes API request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "status"})
)

// Outcome values for the Mutations counter.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)
