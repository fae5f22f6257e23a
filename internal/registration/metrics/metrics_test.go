package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	m.IncrementStepCompleted(2)
	m.IncrementStepCompleted(2)
	m.IncrementStepCompleted(10)
	m.IncrementValidationFailure(6)
	m.IncrementSessionExpired()
	m.IncrementRegistrationCompleted()
	m.IncrementRemoteFailure("save_beneficiaries", "transient")
	m.ObserveRemoteCall("fetch_progress", time.Now())

	assert.InDelta(t, 2, testutil.ToFloat64(m.StepsCompleted.WithLabelValues("2")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.StepsCompleted.WithLabelValues("10")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ValidationFailures.WithLabelValues("6")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.SessionExpirations), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RegistrationsCompleted), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RemoteCallFailures.WithLabelValues("save_beneficiaries", "transient")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.RemoteCallDuration))
}
