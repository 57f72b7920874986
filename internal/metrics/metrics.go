package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	reservations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gymbook",
			Name:      "reservations_total",
			Help:      "Reserve operations by outcome.",
		},
		[]string{"outcome"},
	)

	cancellations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gymbook",
			Name:      "cancellations_total",
			Help:      "Cancel operations by outcome.",
		},
		[]string{"outcome"},
	)

	notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gymbook",
			Name:      "notifications_published_total",
			Help:      "Email notifications handed to the dispatch topic, by kind.",
		},
		[]string{"kind"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(reservations, cancellations, notifications)
	})
}

// IncReservation records a Reserve outcome label such as "ok" or "already_booked".
func IncReservation(outcome string) {
	reservations.WithLabelValues(outcome).Inc()
}

// IncCancellation records a Cancel outcome label.
func IncCancellation(outcome string) {
	cancellations.WithLabelValues(outcome).Inc()
}

// IncNotification records a published notification by kind
// ("feedback_admin", "feedback_ack", "reminder").
func IncNotification(kind string) {
	notifications.WithLabelValues(kind).Inc()
}
