package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registration wizard.
// Tracks step completions, session expirations and progress API latency.
type Metrics struct {
	StepsCompleted         *prometheus.CounterVec
	ValidationFailures     *prometheus.CounterVec
	SessionExpirations     prometheus.Counter
	RegistrationsCompleted prometheus.Counter
	RemoteCallDuration     *prometheus.HistogramVec
	RemoteCallFailures     *prometheus.CounterVec
}

// New registers the wizard metrics with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers with reg. Tests pass a fresh
// prometheus.NewRegistry() to avoid duplicate registration.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		StepsCompleted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_steps_completed_total",
			Help: "Wizard steps completed and persisted, by step number",
		}, []string{"step"}),
		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_step_validation_failures_total",
			Help: "Step submissions rejected by local validation, by step number",
		}, []string{"step"}),
		SessionExpirations: factory.NewCounter(prometheus.CounterOpts{
			Name: "signup_session_expirations_total",
			Help: "Drafts abandoned because the server-side session disappeared",
		}),
		RegistrationsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "signup_registrations_completed_total",
			Help: "Registrations submitted successfully",
		}),
		RemoteCallDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "signup_remote_call_duration_seconds",
			Help:    "Duration of progress API calls",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation"}),
		RemoteCallFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_remote_call_failures_total",
			Help: "Failed progress API calls by operation and error kind",
		}, []string{"operation", "kind"}),
	}
}

func (m *Metrics) IncrementStepCompleted(step int) {
	m.StepsCompleted.WithLabelValues(strconv.Itoa(step)).Inc()
}

func (m *Metrics) IncrementValidationFailure(step int) {
	m.ValidationFailures.WithLabelValues(strconv.Itoa(step)).Inc()
}

func (m *Metrics) IncrementSessionExpired() {
	m.SessionExpirations.Inc()
}

func (m *Metrics) IncrementRegistrationCompleted() {
	m.RegistrationsCompleted.Inc()
}

// ObserveRemoteCall records the duration of a progress API call.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveRemoteCall(operation string, start time.Time) {
	m.RemoteCallDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementRemoteFailure(operation, kind string) {
	m.RemoteCallFailures.WithLabelValues(operation, kind).Inc()
}
