// Package metrics exports benchmark readings in the Prometheus text format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dshills/newestbench/internal/bench"
)

// Recorder holds the gauges of one benchmark run on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	// QueryDuration is the measured time per strategy label.
	QueryDuration *prometheus.GaugeVec
	// QueryRows is the number of materialized rows per strategy label.
	QueryRows *prometheus.GaugeVec
	// RunInfo is always 1 and carries the run identity as labels.
	RunInfo *prometheus.GaugeVec
}

// New creates a recorder with its own registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		QueryDuration: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "newestbench_query_duration_milliseconds",
				Help: "Elapsed time of the last measurement of each strategy",
			},
			[]string{"strategy"},
		),
		QueryRows: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "newestbench_query_rows",
				Help: "Rows materialized by the last measurement of each strategy",
			},
			[]string{"strategy"},
		),
		RunInfo: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "newestbench_run_info",
				Help: "Identity of the benchmark run",
			},
			[]string{"run_id", "driver"},
		),
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// SetRun records the run identity.
func (r *Recorder) SetRun(runID, driver string) {
	r.RunInfo.WithLabelValues(runID, driver).Set(1)
}

// Observe records every result under its report label.
func (r *Recorder) Observe(results []bench.Result) {
	for _, res := range results {
		r.QueryDuration.WithLabelValues(res.Label).Set(float64(res.Elapsed.Microseconds()) / 1000)
		r.QueryRows.WithLabelValues(res.Label).Set(float64(res.RowCount))
	}
}

// WriteTextfile writes the registry to path in the node exporter textfile
// format. The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
