package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Readings
	ReadingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "farmwatch_readings_total",
			Help: "Total number of sensor readings received",
		},
		[]string{"status"}, // status: accepted, rejected
	)

	// Oracle
	OracleRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "farmwatch_oracle_requests_total",
			Help: "Total number of decision oracle evaluations",
		},
		[]string{"outcome"}, // outcome: ok, repaired, fallback
	)

	OracleRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "farmwatch_oracle_request_duration_seconds",
			Help:    "Decision oracle round-trip latency in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15},
		},
	)

	// Notifications
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "farmwatch_notifications_total",
			Help: "Total number of SMS notification attempts",
		},
		[]string{"category", "status"}, // status: sent, failed
	)

	NotificationsSuppressed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "farmwatch_notifications_suppressed_total",
			Help: "Notifications suppressed by the dedup layer",
		},
		[]string{"category"},
	)

	// Dedup persistence
	StatePersistFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "farmwatch_alert_state_persist_failures_total",
			Help: "Failed attempts to persist alert dedup state",
		},
	)
)
