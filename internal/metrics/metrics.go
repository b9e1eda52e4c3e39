// Package metrics exposes prometheus collectors for discovery, the registry
// and freshness reporting. Every method is safe to call on a nil *Metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "backupcheck"

	subsystemDiscovery = "discovery"
	subsystemRegistry  = "registry"
	subsystemFreshness = "freshness"
)

// Result label values
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics holds every collector on a private registry
type Metrics struct {
	probesTotal      *prometheus.CounterVec
	probesInFlight   prometheus.Gauge
	sweepsTotal      *prometheus.CounterVec
	liveHosts        prometheus.Histogram
	upsertsTotal     *prometheus.CounterVec
	runDuration      prometheus.Histogram
	freshnessServers *prometheus.GaugeVec

	registry *prometheus.Registry
}

// New returns a Metrics instance with all collectors registered
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		probesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystemDiscovery,
				Name:      "probes_total",
				Help:      "Total number of host probes by result",
			},
			[]string{"result"},
		),
		probesInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystemDiscovery,
				Name:      "probes_in_flight",
				Help:      "Number of host probes currently running",
			},
		),
		sweepsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystemDiscovery,
				Name:      "sweeps_total",
				Help:      "Total number of subnet sweeps by result",
			},
			[]string{"result"},
		),
		liveHosts: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystemDiscovery,
				Name:      "live_hosts",
				Help:      "Number of live hosts found per subnet sweep",
				Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
			},
		),
		upsertsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystemRegistry,
				Name:      "upserts_total",
				Help:      "Total number of server upserts by result",
			},
			[]string{"result"},
		),
		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystemDiscovery,
				Name:      "run_duration_seconds",
				Help:      "Duration of discovery runs in seconds",
				Buckets:   []float64{1, 5, 10, 30, 60, 300, 600, 1800},
			},
		),
		freshnessServers: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystemFreshness,
				Name:      "servers",
				Help:      "Number of servers per backup freshness verdict",
			},
			[]string{"verdict"},
		),
	}

	registry.MustRegister(
		m.probesTotal,
		m.probesInFlight,
		m.sweepsTotal,
		m.liveHosts,
		m.upsertsTotal,
		m.runDuration,
		m.freshnessServers,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry returns the underlying prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}

	return m.registry
}

// Handler returns an http handler serving the registry
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}

	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ProbeStarted records a probe entering the pool
func (m *Metrics) ProbeStarted() {
	if m == nil {
		return
	}

	m.probesInFlight.Inc()
}

// ProbeFinished records a probe leaving the pool
func (m *Metrics) ProbeFinished(success bool) {
	if m == nil {
		return
	}

	m.probesInFlight.Dec()
	m.probesTotal.WithLabelValues(result(success)).Inc()
}

// SweepFinished records a completed subnet sweep
func (m *Metrics) SweepFinished(success bool, live int) {
	if m == nil {
		return
	}

	m.sweepsTotal.WithLabelValues(result(success)).Inc()

	if success {
		m.liveHosts.Observe(float64(live))
	}
}

// Upserted records a registry upsert
func (m *Metrics) Upserted(success bool) {
	if m == nil {
		return
	}

	m.upsertsTotal.WithLabelValues(result(success)).Inc()
}

// RunFinished records the duration of a discovery run
func (m *Metrics) RunFinished(d time.Duration) {
	if m == nil {
		return
	}

	m.runDuration.Observe(d.Seconds())
}

// SetFreshness records the number of servers per verdict
func (m *Metrics) SetFreshness(counts map[string]int) {
	if m == nil {
		return
	}

	m.freshnessServers.Reset()

	for verdict, count := range counts {
		m.freshnessServers.WithLabelValues(verdict).Set(float64(count))
	}
}

func result(success bool) string {
	if success {
		return ResultSuccess
	}

	return ResultFailure
}
