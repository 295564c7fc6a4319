// Package metrics provides centralized Prometheus metrics for the back
// office.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Store metrics track object-store operations across backends.
var (
	// StoreOperationsTotal counts store operations by backend, type,
	// operation and status.
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operations_total",
			Help: "Total number of object store operations",
		},
		[]string{"backend", "type", "operation", "status"},
	)

	// StoreOperationDuration measures store operation duration in seconds.
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Object store operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "type", "operation"},
	)
)

// Business metrics track editorial operations.
var (
	// ArticleTransitionsTotal counts article status transitions.
	ArticleTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_transitions_total",
			Help: "Total number of article status transitions",
		},
		[]string{"transition"},
	)

	// VerificationCodesSentTotal counts verification codes sent by purpose.
	VerificationCodesSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verification_codes_sent_total",
			Help: "Total number of verification codes sent",
		},
		[]string{"purpose"},
	)

	// VerificationCodesSweptTotal counts expired codes dropped by the sweep.
	VerificationCodesSweptTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "verification_codes_swept_total",
			Help: "Total number of expired verification codes swept",
		},
	)

	// UsersTotal tracks the number of registered accounts.
	UsersTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "users_total",
			Help: "Total number of registered accounts",
		},
	)
)
