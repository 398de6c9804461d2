// Package metrics exposes Prometheus collectors for the sync engine and an
// optional HTTP listener serving them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "stash"

// Metrics records coordinator and mutation activity. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	loads        prometheus.Counter
	loadFailures *prometheus.CounterVec
	toggles      *prometheus.CounterVec
	staleDropped prometheus.Counter
	visible      prometheus.Gauge
}

// MustNew constructs Metrics registered with reg. Registration errors other
// than an identical collector already being present panic.
func MustNew(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		loads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "screen",
			Name:      "loads_total",
			Help:      "Number of Load intents that started a subscription.",
		}),
		loadFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "screen",
			Name:      "load_failures_total",
			Help:      "Number of subscriptions that ended in the error state, by reason.",
		}, []string{"reason"}),
		toggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "favorites",
			Name:      "toggles_total",
			Help:      "Favorite toggle requests by outcome.",
		}, []string{"result"}),
		staleDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "screen",
			Name:      "stale_emissions_dropped_total",
			Help:      "Emissions from superseded subscriptions that were discarded.",
		}),
		visible: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "screen",
			Name:      "visible_favorites",
			Help:      "Number of favorites in the current success state.",
		}),
	}

	m.loads = register(reg, m.loads)
	m.loadFailures = register(reg, m.loadFailures)
	m.toggles = register(reg, m.toggles)
	m.staleDropped = register(reg, m.staleDropped)
	m.visible = register(reg, m.visible)
	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// IncLoad counts a started subscription.
func (m *Metrics) IncLoad() {
	if m == nil {
		return
	}
	m.loads.Inc()
}

// IncLoadFailure counts a subscription that surfaced an error.
func (m *Metrics) IncLoadFailure(reason string) {
	if m == nil {
		return
	}
	m.loadFailures.WithLabelValues(reason).Inc()
}

// IncToggle counts a toggle outcome: added, removed, failed or cancelled.
func (m *Metrics) IncToggle(result string) {
	if m == nil {
		return
	}
	m.toggles.WithLabelValues(result).Inc()
}

// IncStaleDropped counts a discarded emission from an old subscription.
func (m *Metrics) IncStaleDropped() {
	if m == nil {
		return
	}
	m.staleDropped.Inc()
}

// SetVisible records how many favorites are on screen.
func (m *Metrics) SetVisible(n int) {
	if m == nil {
		return
	}
	m.visible.Set(float64(n))
}
