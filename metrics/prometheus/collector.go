// Package prometheus exports engine metrics to Prometheus.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector implements henkan.MetricsCollector.
type Collector struct {
	convertLatency prometheus.Histogram
	convertResults prometheus.Histogram
	inputRunes     prometheus.Histogram
	loadLatency    *prometheus.HistogramVec
	loads          *prometheus.CounterVec
	releases       *prometheus.CounterVec
	loaded         *prometheus.GaugeVec
}

// New creates a Collector and registers it with reg. A nil reg uses the
// default registerer.
func New(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collector{
		convertLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "henkan_convert_latency_seconds",
			Help:    "Latency of conversion queries",
			Buckets: prometheus.ExponentialBuckets(0.00005, 2, 14),
		}),
		convertResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "henkan_convert_results",
			Help:    "Number of candidates returned per query",
			Buckets: prometheus.LinearBuckets(0, 10, 10),
		}),
		inputRunes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "henkan_convert_input_runes",
			Help:    "Length of query readings in runes",
			Buckets: prometheus.LinearBuckets(1, 2, 12),
		}),
		loadLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "henkan_dictionary_load_seconds",
			Help:    "Latency of dictionary loads",
			Buckets: prometheus.DefBuckets,
		}, []string{"dictionary"}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "henkan_dictionary_loads_total",
			Help: "Dictionary loads by outcome",
		}, []string{"dictionary", "status"}),
		releases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "henkan_dictionary_releases_total",
			Help: "Optional dictionary releases",
		}, []string{"dictionary"}),
		loaded: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "henkan_dictionary_loaded",
			Help: "1 if the dictionary is loaded",
		}, []string{"dictionary"}),
	}
	reg.MustRegister(
		c.convertLatency,
		c.convertResults,
		c.inputRunes,
		c.loadLatency,
		c.loads,
		c.releases,
		c.loaded,
	)
	return c
}

// RecordConvert implements henkan.MetricsCollector.
func (c *Collector) RecordConvert(inputLen, results int, d time.Duration) {
	c.convertLatency.Observe(d.Seconds())
	c.convertResults.Observe(float64(results))
	c.inputRunes.Observe(float64(inputLen))
}

// RecordLoad implements henkan.MetricsCollector.
func (c *Collector) RecordLoad(name string, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.loads.WithLabelValues(name, status).Inc()
	if err != nil {
		return
	}
	c.loadLatency.WithLabelValues(name).Observe(d.Seconds())
	c.loaded.WithLabelValues(name).Set(1)
}

// RecordRelease implements henkan.MetricsCollector.
func (c *Collector) RecordRelease(name string) {
	c.releases.WithLabelValues(name).Inc()
	c.loaded.WithLabelValues(name).Set(0)
}
