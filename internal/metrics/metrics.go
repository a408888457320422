// Package metrics records run counters and writes them in the Prometheus
// text exposition format, for node_exporter's textfile collector.
//
// Metrics:
//   - diet_items_total: items by outcome (found, kept, deleted, skipped, errors)
//   - diet_containers_total: containers processed
//   - diet_last_run_timestamp_seconds: end of the last run
//   - diet_last_run_duration_seconds: wall time of the last run
//   - diet_dry_run: 1 when the last run did not delete anything
package metrics

import (
	"fmt"
	"time"

	"github.com/babarot/diet/internal/report"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "diet"

// Recorder holds the metrics of one run
type Recorder struct {
	registry *prometheus.Registry
	started  time.Time

	items      *prometheus.CounterVec
	containers prometheus.Counter
	lastRun    prometheus.Gauge
	duration   prometheus.Gauge
	dryRun     prometheus.Gauge
}

// NewRecorder creates and registers the run metrics on a fresh registry
func NewRecorder(backend string, dryRun bool) *Recorder {
	labels := prometheus.Labels{"backend": backend}
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		started:  time.Now(),

		items: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Name:        "items_total",
				Help:        "Items by retention outcome",
				ConstLabels: labels,
			},
			[]string{"outcome"},
		),
		containers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "containers_total",
			Help:        "Containers processed",
			ConstLabels: labels,
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "last_run_timestamp_seconds",
			Help:        "Unix time the last run finished",
			ConstLabels: labels,
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "last_run_duration_seconds",
			Help:        "Duration of the last run",
			ConstLabels: labels,
		}),
		dryRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "dry_run",
			Help:        "Whether the last run was a dry run",
			ConstLabels: labels,
		}),
	}

	if dryRun {
		r.dryRun.Set(1)
	}

	r.registry.MustRegister(
		r.items,
		r.containers,
		r.lastRun,
		r.duration,
		r.dryRun,
	)

	return r
}

// Observe adds the counters of one container
func (r *Recorder) Observe(s report.Summary) {
	if r == nil {
		return
	}
	r.containers.Inc()
	r.items.WithLabelValues("found").Add(float64(s.Found))
	r.items.WithLabelValues("kept").Add(float64(s.Kept))
	r.items.WithLabelValues("deleted").Add(float64(s.Deleted))
	r.items.WithLabelValues("skipped").Add(float64(s.Skipped))
	r.items.WithLabelValues("errors").Add(float64(s.Errors))
}

// WriteTextfile stamps the run end and writes all metrics to path
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	now := time.Now()
	r.lastRun.Set(float64(now.Unix()))
	r.duration.Set(now.Sub(r.started).Seconds())

	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
