package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Session metrics
	SessionsIssued  prometheus.Counter
	SessionsRevoked prometheus.Counter
	LoginFailures   *prometheus.CounterVec

	// Route guard metrics
	GuardDecisions *prometheus.CounterVec

	// Branch context metrics
	BranchSwitches         prometheus.Counter
	BranchSwitchesRejected prometheus.Counter

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		SessionsIssued: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_issued_total",
			Help:      "Total number of sessions created by successful logins",
		}),
		SessionsRevoked: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_revoked_total",
			Help:      "Total number of sessions destroyed by logout",
		}),
		LoginFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_failures_total",
			Help:      "Failed login attempts by reason",
		}, []string{"reason"}),
		GuardDecisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guard_decisions_total",
			Help:      "Route guard decisions by outcome and reason",
		}, []string{"outcome", "reason"}),
		BranchSwitches: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "branch_switches_total",
			Help:      "Successful active-branch switches",
		}),
		BranchSwitchesRejected: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "branch_switches_rejected_total",
			Help:      "Branch switches rejected for unknown branch ids",
		}),
		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, path and status",
		}, []string{"method", "path", "status"}),
		HTTPDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method", "path"}),
	}
}

// Nil-safe helpers so unit tests can pass a nil *Metrics.

func (m *Metrics) IncSessionsIssued() {
	if m != nil {
		m.SessionsIssued.Inc()
	}
}

func (m *Metrics) IncSessionsRevoked() {
	if m != nil {
		m.SessionsRevoked.Inc()
	}
}

func (m *Metrics) IncLoginFailure(reason string) {
	if m != nil {
		m.LoginFailures.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) IncGuardDecision(outcome, reason string) {
	if m != nil {
		m.GuardDecisions.WithLabelValues(outcome, reason).Inc()
	}
}

func (m *Metrics) IncBranchSwitch() {
	if m != nil {
		m.BranchSwitches.Inc()
	}
}

func (m *Metrics) IncBranchSwitchRejected() {
	if m != nil {
		m.BranchSwitchesRejected.Inc()
	}
}

func (m *Metrics) ObserveHTTPRequest(method, path, status string, elapsed time.Duration) {
	if m != nil {
		m.HTTPRequests.WithLabelValues(method, path, status).Inc()
		m.HTTPDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
	}
}
