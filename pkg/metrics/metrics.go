package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	BookingsCreated  prometheus.Counter
	BookingsRejected *prometheus.CounterVec

	Approvals     prometheus.Counter
	Declines      prometheus.Counter
	Cancellations prometheus.Counter
	Reschedules   prometheus.Counter

	NotificationsEnqueued prometheus.Counter

	StoreOperations *prometheus.CounterVec
}

// New creates and registers all application metrics against the given
// registerer. Tests pass a fresh prometheus.NewRegistry to avoid duplicate
// registration panics.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		BookingsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "Total number of appointments booked",
		}),
		BookingsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_rejected_total",
			Help:      "Total number of booking attempts rejected",
		}, []string{"reason"}),
		Approvals: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_approved_total",
			Help:      "Total number of appointments approved",
		}),
		Declines: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_declined_total",
			Help:      "Total number of appointments declined",
		}),
		Cancellations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_cancelled_total",
			Help:      "Total number of appointments cancelled",
		}),
		Reschedules: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_rescheduled_total",
			Help:      "Total number of appointments rescheduled",
		}),
		NotificationsEnqueued: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_enqueued_total",
			Help:      "Total number of notifications written to a feed",
		}),
		StoreOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Total number of key-value store operations",
		}, []string{"operation", "status"}),
	}
}
