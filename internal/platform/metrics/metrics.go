package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics of the progress service.
type Metrics struct {
	RequestDuration        *prometheus.HistogramVec
	SessionsCreated        prometheus.Counter
	SessionsExpired        prometheus.Counter
	StepsSaved             *prometheus.CounterVec
	RegistrationsSubmitted prometheus.Counter
}

// New creates and registers the metrics with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "progress_http_request_duration_seconds",
			Help:    "Duration of progress API requests by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
		SessionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "progress_sessions_created_total",
			Help: "Registration sessions created by register or login",
		}),
		SessionsExpired: factory.NewCounter(prometheus.CounterOpts{
			Name: "progress_sessions_expired_total",
			Help: "Requests rejected because the session had expired",
		}),
		StepsSaved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "progress_steps_saved_total",
			Help: "Step payloads accepted, by step number",
		}, []string{"step"}),
		RegistrationsSubmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "progress_registrations_submitted_total",
			Help: "Registrations completed through the final submission",
		}),
	}
}

func (m *Metrics) ObserveRequest(route string, status int, start time.Time) {
	m.RequestDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementSessionsCreated() {
	m.SessionsCreated.Inc()
}

func (m *Metrics) IncrementSessionsExpired() {
	m.SessionsExpired.Inc()
}

func (m *Metrics) IncrementStepsSaved(step int) {
	m.StepsSaved.WithLabelValues(strconv.Itoa(step)).Inc()
}

func (m *Metrics) IncrementRegistrationsSubmitted() {
	m.RegistrationsSubmitted.Inc()
}
