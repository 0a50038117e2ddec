// Package metrics exposes Prometheus metrics for test executions.
//
// Each Collector owns its metric vectors, so several engines (or tests) can
// register against separate registries. The CLI is short-lived and exports
// the registry as a node_exporter textfile instead of serving it.
package metrics

import (
	"time"

	"github.com/isseis/go-cmdline-engine/internal/engine/enginetypes"
	"github.com/isseis/go-cmdline-engine/internal/engine/runerrors"
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "cmdline_engine"

// Recorder receives execution observations.
type Recorder interface {
	RecordExecution(status enginetypes.Status, duration time.Duration, outputBytes int)
	RecordError(kind runerrors.Kind)
}

// Collector records execution metrics.
type Collector struct {
	info       *prometheus.GaugeVec
	executions *prometheus.CounterVec
	errors     *prometheus.CounterVec
	duration   prometheus.Histogram
	output     prometheus.Histogram
}

// NewCollector creates a collector and registers it with registry.
func NewCollector(registry prometheus.Registerer, version string) *Collector {
	c := &Collector{
		info: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "info",
				Help:      "Information about the engine (value always 1)",
			},
			[]string{"version"},
		),
		executions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "executions_total",
				Help:      "Completed test executions by reported status",
			},
			[]string{"status"},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "errors_total",
				Help:      "Failed test executions by error kind",
			},
			[]string{"kind"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "execution_duration_seconds",
				Help:      "Wall-clock time between launch and exit of the test tool",
				Buckets:   []float64{0.1, 0.5, 1, 5, 15, 60, 300, 900, 3600},
			},
		),
		output: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "output_bytes",
				Help:      "Size of the captured tool output",
				Buckets:   prometheus.ExponentialBuckets(64, 4, 10),
			},
		),
	}

	registry.MustRegister(c.info, c.executions, c.errors, c.duration, c.output)
	c.info.WithLabelValues(version).Set(1)
	return c
}

// RecordExecution implements Recorder.
func (c *Collector) RecordExecution(status enginetypes.Status, duration time.Duration, outputBytes int) {
	c.executions.WithLabelValues(status.String()).Inc()
	c.duration.Observe(duration.Seconds())
	c.output.Observe(float64(outputBytes))
}

// RecordError implements Recorder.
func (c *Collector) RecordError(kind runerrors.Kind) {
	c.errors.WithLabelValues(string(kind)).Inc()
}

// WriteTextfile writes every metric gathered from g to path in the text exposition format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}

// Nop discards observations.
type Nop struct{}

// RecordExecution implements Recorder.
func (Nop) RecordExecution(enginetypes.Status, time.Duration, int) {}

// RecordError implements Recorder.
func (Nop) RecordError(runerrors.Kind) {}
