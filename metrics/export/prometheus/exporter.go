package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	admingate "github.com/kovrae/admingate"
)

type metricsSource interface {
	MetricsSnapshot() admingate.MetricsSnapshot
}

// Collector reads a counter snapshot on every scrape and renders it as
// const metrics. It holds no state of its own.
type Collector struct {
	source metricsSource
	descs  map[admingate.MetricID]*prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector that reads from the given engine.
func NewCollector(engine *admingate.Engine) *Collector {
	return NewCollectorFromSource(engine)
}

// NewCollectorFromSource creates a collector from a custom snapshot source.
func NewCollectorFromSource(source metricsSource) *Collector {
	descs := make(map[admingate.MetricID]*prometheus.Desc, len(CounterDefs))
	for _, def := range CounterDefs {
		descs[def.ID] = prometheus.NewDesc(def.Name, def.Help, nil, nil)
	}
	return &Collector{source: source, descs: descs}
}

// Describe implements [prometheus.Collector].
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, def := range CounterDefs {
		ch <- c.descs[def.ID]
	}
}

// Collect implements [prometheus.Collector].
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	if c == nil || c.source == nil {
		return
	}
	snapshot := c.source.MetricsSnapshot()
	for _, def := range CounterDefs {
		ch <- prometheus.MustNewConstMetric(
			c.descs[def.ID],
			prometheus.CounterValue,
			float64(snapshot.Counters[def.ID]),
		)
	}
}

// Handler mounts the collector on a private registry and returns a scrape
// handler for it.
func Handler(engine *admingate.Engine) http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(NewCollector(engine))
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
