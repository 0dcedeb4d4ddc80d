package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	LoginAttempts        *prometheus.CounterVec
	ExhibitsRegistered   prometheus.Counter
	VisitsLogged         prometheus.Counter
	MaintenanceScheduled prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		LoginAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "curator_login_attempts_total",
			Help: "Login attempts partitioned by outcome",
		}, []string{"outcome"}),
		ExhibitsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "curator_exhibits_registered_total",
			Help: "Total number of exhibits registered",
		}),
		VisitsLogged: promauto.NewCounter(prometheus.CounterOpts{
			Name: "curator_visits_logged_total",
			Help: "Total number of guest visits logged",
		}),
		MaintenanceScheduled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "curator_maintenance_scheduled_total",
			Help: "Total number of maintenance actions scheduled",
		}),
	}
}

// RecordLogin counts one login attempt with outcome "ok" or "denied".
func (m *Metrics) RecordLogin(ok bool) {
	outcome := "denied"
	if ok {
		outcome = "ok"
	}
	m.LoginAttempts.WithLabelValues(outcome).Inc()
}
