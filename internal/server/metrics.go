package server

import (
	nethttp "net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/handiism/album-catalog/internal/ingest"
)

// Metrics are the catalog's Prometheus collectors, registered on a private
// registry so tests and several servers in one process do not collide.
type Metrics struct {
	registry *prometheus.Registry

	recordsLoaded    prometheus.Gauge
	rowsParsed       prometheus.Counter
	rowsDropped      prometheus.Counter
	shapeFallbacks   prometheus.Counter
	ingestFailures   prometheus.Counter
	filterRequests   prometheus.Counter
	routeCorrections prometheus.Counter
	transitions      *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		recordsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "catalog",
			Name:      "records_loaded",
			Help:      "Records published by the last successful ingestion.",
		}),
		rowsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "catalog",
			Name:      "rows_parsed_total",
			Help:      "Sheet rows parsed across ingestions.",
		}),
		rowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "catalog",
			Name:      "rows_dropped_total",
			Help:      "Sheet rows dropped by the validity filter.",
		}),
		shapeFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "catalog",
			Name:      "shape_fallbacks_total",
			Help:      "Ingestions that fell back to positional columns.",
		}),
		ingestFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "catalog",
			Name:      "ingest_failures_total",
			Help:      "Ingestions that failed to publish records.",
		}),
		filterRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "catalog",
			Name:      "filter_requests_total",
			Help:      "Filter applications, including resets and genre toggles.",
		}),
		routeCorrections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "catalog",
			Name:      "route_corrections_total",
			Help:      "Detail markers without an open record, corrected to the list.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "catalog",
			Name:      "view_transitions_total",
			Help:      "Router transitions by resulting view.",
		}, []string{"view"}),
	}

	m.registry.MustRegister(
		m.recordsLoaded,
		m.rowsParsed,
		m.rowsDropped,
		m.shapeFallbacks,
		m.ingestFailures,
		m.filterRequests,
		m.routeCorrections,
		m.transitions,
	)
	return m
}

// ObserveIngest records one ingestion outcome. It matches the signature of
// ingest.Pipeline.OnResult.
func (m *Metrics) ObserveIngest(res ingest.Result, err error) {
	if err != nil {
		m.ingestFailures.Inc()
		return
	}
	m.recordsLoaded.Set(float64(len(res.Records)))
	m.rowsParsed.Add(float64(res.Parsed))
	m.rowsDropped.Add(float64(res.Dropped))
	if res.HasNotice(ingest.NoticeShapeFallback) {
		m.shapeFallbacks.Inc()
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() nethttp.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
