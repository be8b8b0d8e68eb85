package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

type Manager struct {
	// counters
	CounterRequests       *prometheus.CounterVec
	CounterHistoryFetches *prometheus.CounterVec
	CounterPlans          *prometheus.CounterVec
	CounterLogSaves       *prometheus.CounterVec
	CounterHandlerPanics  prometheus.Counter

	// histograms
	HistPlanDuration         prometheus.Histogram
	HistogramRequestDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("powerbuilder", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("powerbuilder", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterHistoryFetches := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "history_fetches",
		Help:      "History reads from the log sheet by outcome",
	}, []string{"outcome"})
	counterPlans := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "plans",
		Help:      "Workout plan generations by outcome",
	}, []string{"outcome"})
	counterLogSaves := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "log_saves",
		Help:      "Session log saves by outcome",
	}, []string{"outcome"})
	counterHandlerPanics := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})

	histPlanDuration := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "plan_duration_seconds",
		Help:      "Time spent waiting on the model for a plan",
		Buckets:   []float64{.25, .5, 1, 2, 4, 8, 16, 32, 64},
	})
	histogramRequestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Histogram of response time for requests in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"route", "method", "status_code"})

	return &Manager{
		CounterRequests:          counterRequests,
		CounterHistoryFetches:    counterHistoryFetches,
		CounterPlans:             counterPlans,
		CounterLogSaves:          counterLogSaves,
		CounterHandlerPanics:     counterHandlerPanics,
		HistPlanDuration:         histPlanDuration,
		HistogramRequestDuration: histogramRequestDuration,
	}
}

// The helpers below accept a nil receiver so callers can run without metrics.

func (m *Manager) HistoryFetched(outcome string) {
	if m == nil {
		return
	}
	m.CounterHistoryFetches.WithLabelValues(outcome).Inc()
}

func (m *Manager) PlanGenerated(outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.CounterPlans.WithLabelValues(outcome).Inc()
	m.HistPlanDuration.Observe(took.Seconds())
}

func (m *Manager) LogSaved(outcome string) {
	if m == nil {
		return
	}
	m.CounterLogSaves.WithLabelValues(outcome).Inc()
}

func (m *Manager) RequestServed(route, method string, status int, took time.Duration) {
	if m == nil {
		return
	}
	code := statusText(status)
	m.CounterRequests.WithLabelValues(method, code).Inc()
	m.HistogramRequestDuration.WithLabelValues(route, method, code).Observe(took.Seconds())
}

func (m *Manager) HandlerPanicked() {
	if m == nil {
		return
	}
	m.CounterHandlerPanics.Inc()
}
