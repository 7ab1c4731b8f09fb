package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	accounting "github.com/bumlambs-max/Accounting-2.0"
)

// metrics exposes event and sync counters on a private registry, so
// several servers can coexist in one process (tests mostly).
type metrics struct {
	registry       *prometheus.Registry
	eventsApplied  prometheus.Counter
	eventsRejected prometheus.Counter
}

func newMetrics(session *accounting.Session) *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		eventsApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "farmbook_events_applied_total",
			Help: "Events accepted into the book.",
		}),
		eventsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "farmbook_events_rejected_total",
			Help: "Events refused by validation or decoding.",
		}),
	}
	m.registry.MustRegister(m.eventsApplied, m.eventsRejected)

	// Sync counters live in the session; export them as functions
	// rather than double counting.
	m.registry.MustRegister(prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name: "farmbook_sync_pushes_total",
		Help: "Completed pushes to the remote store.",
	}, func() float64 { return float64(session.Stats().Pushes) }))
	m.registry.MustRegister(prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name: "farmbook_sync_pulls_total",
		Help: "Completed pulls from the remote store.",
	}, func() float64 { return float64(session.Stats().Pulls) }))
	m.registry.MustRegister(prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name: "farmbook_sync_failures_total",
		Help: "Pushes and pulls that failed in transport.",
	}, func() float64 { return float64(session.Stats().Failures) }))
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "farmbook_syncing",
		Help: "1 while a push or pull is in flight.",
	}, func() float64 {
		if session.Syncing() {
			return 1
		}
		return 0
	}))

	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
