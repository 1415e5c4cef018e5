package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the process collectors. Each instance has its own registry so
// api, worker and tests never collide on registration.
type Metrics struct {
	registry *prometheus.Registry

	checkCycles   *prometheus.CounterVec
	checkDuration prometheus.Histogram
	resultsFound  prometheus.Counter
	alertsRaised  *prometheus.CounterVec
	transitions   *prometheus.CounterVec
	analyses      *prometheus.CounterVec
	busEvents     *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}
	m.checkCycles = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pressroom",
		Subsystem: "monitoring",
		Name:      "check_cycles_total",
		Help:      "Publication check cycles by outcome",
	}, []string{"outcome"})
	m.checkDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pressroom",
		Subsystem: "monitoring",
		Name:      "check_cycle_duration_seconds",
		Help:      "Wall time of a check cycle including retries",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
	})
	m.resultsFound = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pressroom",
		Subsystem: "monitoring",
		Name:      "results_found_total",
		Help:      "New monitoring results appended",
	})
	m.alertsRaised = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pressroom",
		Subsystem: "alerts",
		Name:      "raised_total",
		Help:      "Alerts raised by type and severity",
	}, []string{"type", "severity"})
	m.transitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pressroom",
		Subsystem: "releases",
		Name:      "transitions_total",
		Help:      "Release status transitions",
	}, []string{"from", "to"})
	m.analyses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pressroom",
		Subsystem: "moderation",
		Name:      "analyses_total",
		Help:      "Content analyzer calls by outcome",
	}, []string{"outcome"})

	m.busEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pressroom",
		Subsystem: "bus",
		Name:      "events_consumed_total",
		Help:      "Bus events handled by the process consumers",
	}, []string{"topic", "event_type"})

	m.registry.MustRegister(
		m.checkCycles, m.checkDuration, m.resultsFound,
		m.alertsRaised, m.transitions, m.analyses,
		m.busEvents,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveCheckCycle(outcome string, newResults int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.checkCycles.WithLabelValues(outcome).Inc()
	m.checkDuration.Observe(elapsed.Seconds())
	if newResults > 0 {
		m.resultsFound.Add(float64(newResults))
	}
}

func (m *Metrics) ObserveAlert(alertType string, severity string) {
	if m == nil {
		return
	}
	m.alertsRaised.WithLabelValues(alertType, severity).Inc()
}

func (m *Metrics) ObserveTransition(from string, to string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) ObserveAnalysis(outcome string) {
	if m == nil {
		return
	}
	m.analyses.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveBusEvent(topic string, eventType string) {
	if m == nil {
		return
	}
	m.busEvents.WithLabelValues(topic, eventType).Inc()
}
