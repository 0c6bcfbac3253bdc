// Package metrics holds the Prometheus collectors of the service.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Label values shared by callers.
const (
	ResultApplied      = "applied"
	ResultConflict     = "conflict"
	ResultUnauthorized = "unauthorized"
	ResultOK           = "ok"
	ResultFailed       = "failed"
)

var (
	TransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workorders_transitions_total",
			Help: "Lifecycle transitions attempted, by operation and result",
		},
		[]string{"operation", "result"},
	)

	NotificationsSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workorders_notifications_sent_total",
			Help: "Push messages delivered, by notification class",
		},
		[]string{"class"},
	)

	NotificationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workorders_notification_failures_total",
			Help: "Push messages that could not be delivered or recorded, by notification class",
		},
		[]string{"class"},
	)

	RetractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workorders_retractions_total",
			Help: "Push message deletions, by notification class and result",
		},
		[]string{"class", "result"},
	)

	SweptOrdersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workorders_swept_orders_total",
			Help: "Orders archived or purged by housekeeping",
		},
		[]string{"sweep"},
	)

	SweepDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "workorders_sweep_duration_seconds",
			Help:    "Duration of one housekeeping iteration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"sweep"},
	)
)

// Register registers all Prometheus metrics
func Register() {
	prometheus.MustRegister(TransitionsTotal)
	prometheus.MustRegister(NotificationsSentTotal)
	prometheus.MustRegister(NotificationFailuresTotal)
	prometheus.MustRegister(RetractionsTotal)
	prometheus.MustRegister(SweptOrdersTotal)
	prometheus.MustRegister(SweepDuration)
}
