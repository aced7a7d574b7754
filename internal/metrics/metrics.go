// Package metrics exports run statistics in the Prometheus textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/verte-zerg/mmfreq/internal/freq"
	"github.com/verte-zerg/mmfreq/internal/model"
)

const namespace = "mmfreq"

// Run holds the gauges describing one pipeline run.
type Run struct {
	registry  *prometheus.Registry
	chars     *prometheus.GaugeVec
	distinct  *prometheus.GaugeVec
	duration  prometheus.Gauge
	timestamp prometheus.Gauge
}

// NewRun registers the run gauges on a fresh registry.
func NewRun() *Run {
	r := &Run{
		registry: prometheus.NewRegistry(),
		chars: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "characters",
			Help:      "Characters counted in the last run, per bucket.",
		}, []string{"bucket"}),
		distinct: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "distinct_characters",
			Help:      "Distinct characters seen in the last run, per bucket.",
		}, []string{"bucket"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Time spent reading and tallying the input.",
		}),
		timestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
	}
	r.registry.MustRegister(r.chars, r.distinct, r.duration, r.timestamp)
	return r
}

// Observe records a finished tally.
func (r *Run) Observe(t *freq.Tally, elapsed time.Duration, finished time.Time) {
	for _, b := range []model.Bucket{model.Designated, model.Other} {
		tbl := t.Table(b)
		r.chars.WithLabelValues(b.String()).Set(float64(tbl.Sum()))
		r.distinct.WithLabelValues(b.String()).Set(float64(tbl.Len()))
	}
	r.duration.Set(elapsed.Seconds())
	r.timestamp.Set(float64(finished.UnixNano()) / 1e9)
}

// Registry exposes the underlying registry.
func (r *Run) Registry() *prometheus.Registry {
	return r.registry
}

// WriteFile writes the gauges atomically for a node exporter textfile collector.
func (r *Run) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
