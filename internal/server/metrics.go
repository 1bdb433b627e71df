package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the quote service.
type Metrics struct {
	registry *prometheus.Registry

	QuotesTotal   *prometheus.CounterVec
	QuoteErrors   *prometheus.CounterVec
	QuoteDuration prometheus.Histogram
	CatalogReload prometheus.Counter
}

// NewMetrics creates and registers the service collectors on a fresh
// registry, so multiple server instances (tests included) never collide.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		QuotesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "riskquote",
			Name:      "quotes_total",
			Help:      "Quotes computed, by policy type.",
		}, []string{"policy_type"}),
		QuoteErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "riskquote",
			Name:      "quote_errors_total",
			Help:      "Quote requests rejected, by reason.",
		}, []string{"reason"}),
		QuoteDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "riskquote",
			Name:      "quote_duration_seconds",
			Help:      "Time spent computing a quote.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
		CatalogReload: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "riskquote",
			Name:      "catalog_reloads_total",
			Help:      "Successful catalog hot reloads.",
		}),
	}

	registry.MustRegister(m.QuotesTotal, m.QuoteErrors, m.QuoteDuration, m.CatalogReload)
	return m
}

// Registry exposes the underlying registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
