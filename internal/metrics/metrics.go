package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitclub_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitclub_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SessionsBookedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitclub_pt_sessions_booked_total",
			Help: "Total number of PT sessions booked",
		},
	)

	SessionCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitclub_pt_session_cancellations_total",
			Help: "Total number of PT session cancellations",
		},
	)

	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitclub_class_registrations_total",
			Help: "Total number of class registrations",
		},
		[]string{"kind"},
	)

	WaitlistPromotionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitclub_waitlist_promotions_total",
			Help: "Total number of waitlist promotions",
		},
	)

	BookingConflictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitclub_booking_conflicts_total",
			Help: "Total number of bookings rejected for time conflicts",
		},
		[]string{"resource"},
	)

	EmailsSentTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitclub_emails_sent_total",
			Help: "Total number of emails sent",
		},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fitclub_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordSessionBooked() {
	SessionsBookedTotal.Inc()
}

func RecordSessionCancelled() {
	SessionCancellationsTotal.Inc()
}

func RecordRegistration(kind string) {
	RegistrationsTotal.WithLabelValues(kind).Inc()
}

func RecordWaitlistPromotion() {
	WaitlistPromotionsTotal.Inc()
}

func RecordBookingConflict(resource string) {
	BookingConflictsTotal.WithLabelValues(resource).Inc()
}

func RecordEmailSent() {
	EmailsSentTotal.Inc()
}
