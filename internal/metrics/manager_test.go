package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestManagerCounters(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()

	m.HistoryFetched(OutcomeOK)
	m.HistoryFetched(OutcomeError)
	m.PlanGenerated(OutcomeOK, 2*time.Second)
	m.LogSaved(OutcomeEmpty)
	m.LogSaved(OutcomeOK)
	m.LogSaved(OutcomeOK)
	m.RequestServed("/save", "POST", 200, 10*time.Millisecond)
	m.HandlerPanicked()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterHistoryFetches.WithLabelValues(OutcomeError)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterPlans.WithLabelValues(OutcomeOK)))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.CounterLogSaves.WithLabelValues(OutcomeOK)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterLogSaves.WithLabelValues(OutcomeEmpty)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterRequests.WithLabelValues("POST", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterHandlerPanics))

	assert.Equal(t, 1, testutil.CollectAndCount(m.HistPlanDuration, "powerbuilder_test_server_plan_duration_seconds"))

	n, err := testutil.GatherAndCount(reg)
	assert.NoError(t, err)
	assert.Greater(t, n, 0)
}

func TestNilManagerIsNoop(t *testing.T) {
	var m *Manager
	assert.NotPanics(t, func() {
		m.HistoryFetched(OutcomeOK)
		m.PlanGenerated(OutcomeError, time.Second)
		m.LogSaved(OutcomeOK)
		m.RequestServed("/", "GET", 200, time.Millisecond)
		m.HandlerPanicked()
	})
}
