package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes counters/histograms for the panel and its backend calls.
type Metrics struct {
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
	backendRequests *prometheus.CounterVec
	backendLatency  *prometheus.HistogramVec
	bookingActions  *prometheus.CounterVec
	wizardSteps     *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the collectors on reg; a nil reg uses a private registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "booking_panel",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served, by route and status.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "booking_panel",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of served HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		backendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "booking_panel",
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Calls to the booking backend; status 0 means no response.",
		}, []string{"endpoint", "status"}),
		backendLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "booking_panel",
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Latency of booking backend calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		bookingActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "booking_panel",
			Subsystem: "booking",
			Name:      "actions_total",
			Help:      "Booking, cancel and reschedule attempts by outcome.",
		}, []string{"action", "outcome"}),
		wizardSteps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "booking_panel",
			Subsystem: "wizard",
			Name:      "steps_total",
			Help:      "Wizard steps reached.",
		}, []string{"flow", "step"}),
		gatherer: reg,
	}
	reg.MustRegister(
		m.httpRequests, m.httpLatency,
		m.backendRequests, m.backendLatency,
		m.bookingActions, m.wizardSteps,
	)
	return m
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveBackend satisfies backend.Observer.
func (m *Metrics) ObserveBackend(endpoint string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.backendRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	m.backendLatency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveAction(action string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.bookingActions.WithLabelValues(action, outcome).Inc()
}

func (m *Metrics) ObserveStep(flow, step string) {
	if m == nil {
		return
	}
	if flow == "" {
		flow = "none"
	}
	m.wizardSteps.WithLabelValues(flow, step).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
