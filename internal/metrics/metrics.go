package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AlexZinkM/wallet-txcore/transaction"
)

// Metrics holds the service's collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	TransitionsTotal   *prometheus.CounterVec
	BuildFailuresTotal *prometheus.CounterVec
	SubmittedTotal     *prometheus.CounterVec
	PriceRefreshTotal  *prometheus.CounterVec
	OpenForms          prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		TransitionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "txcore_workflow_transitions_total",
			Help: "Workflow state transitions by kind and target state",
		}, []string{"kind", "state"}),
		BuildFailuresTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "txcore_build_failures_total",
			Help: "Build capability failures by kind",
		}, []string{"kind"}),
		SubmittedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "txcore_submitted_total",
			Help: "Transactions built and handed off, by kind",
		}, []string{"kind"}),
		PriceRefreshTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "txcore_price_refresh_total",
			Help: "Price refreshes by source and result",
		}, []string{"source", "result"}),
		OpenForms: factory.NewGauge(prometheus.GaugeOpts{
			Name: "txcore_open_forms",
			Help: "Forms held by the local API",
		}),
	}
}

// ObserveTransition is a transaction.WithObserver callback.
func (m *Metrics) ObserveTransition(tr transaction.Transition) {
	m.TransitionsTotal.WithLabelValues(tr.Kind, string(tr.To)).Inc()

	switch {
	case tr.To == transaction.StateSubmitted:
		m.SubmittedTotal.WithLabelValues(tr.Kind).Inc()
	case tr.From == transaction.StateBuilding && tr.To == transaction.StateFailed:
		m.BuildFailuresTotal.WithLabelValues(tr.Kind).Inc()
	}
}

// ObservePriceRefresh is a market.RefreshObserver.
func (m *Metrics) ObservePriceRefresh(source string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.PriceRefreshTotal.WithLabelValues(source, result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
