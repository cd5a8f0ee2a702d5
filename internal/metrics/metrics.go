package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the service's Prometheus collectors. All observe helpers
// are nil-safe so wiring metrics stays optional in tests.
type Registry struct {
	registry         *prometheus.Registry
	submissionsTotal *prometheus.CounterVec
	deferralsTotal   *prometheus.CounterVec
	resumesTotal     *prometheus.CounterVec
	pendingGauge     prometheus.Gauge
}

// NewRegistry constructs and registers the collectors.
func NewRegistry() *Registry {
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "coinramp_submissions_total",
		Help: "Total onramp submission attempts by outcome",
	}, []string{"outcome"})

	deferrals := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "coinramp_deferrals_total",
		Help: "Deferred submissions by provider error code",
	}, []string{"code"})

	resumes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "coinramp_resumes_total",
		Help: "Resume checks by result",
	}, []string{"result"})

	pending := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "coinramp_pending_submission",
		Help: "Whether a pending submission is currently held (0 or 1)",
	})

	r := prometheus.NewRegistry()
	r.MustRegister(submissions, deferrals, resumes, pending)

	return &Registry{
		registry:         r,
		submissionsTotal: submissions,
		deferralsTotal:   deferrals,
		resumesTotal:     resumes,
		pendingGauge:     pending,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveSubmission counts a submission outcome.
func (m *Registry) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

// ObserveDeferral counts a deferral by provider code.
func (m *Registry) ObserveDeferral(code string) {
	if m == nil {
		return
	}
	m.deferralsTotal.WithLabelValues(code).Inc()
}

// ObserveResume counts a resume check result.
func (m *Registry) ObserveResume(result string) {
	if m == nil {
		return
	}
	m.resumesTotal.WithLabelValues(result).Inc()
}

// SetPending records whether a pending submission is held.
func (m *Registry) SetPending(held bool) {
	if m == nil {
		return
	}
	if held {
		m.pendingGauge.Set(1)
	} else {
		m.pendingGauge.Set(0)
	}
}
