// Package prometheus exports check outcomes as Prometheus metrics.
//
// The tool runs as a batch job, so metrics are written to a textfile for
// the node exporter's textfile collector rather than served over HTTP.
package prometheus

import (
	"github.com/fwojciec/vanity"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ensure Recorder implements vanity.Recorder.
var _ vanity.Recorder = (*Recorder)(nil)

// Recorder counts check outcomes in its own registry.
type Recorder struct {
	registry *prometheus.Registry

	Checks    *prometheus.CounterVec
	Attempts  *prometheus.CounterVec
	Throttled *prometheus.CounterVec

	Available   *prometheus.GaugeVec
	Unavailable *prometheus.GaugeVec
	LastRun     *prometheus.GaugeVec
	RunDuration *prometheus.GaugeVec
}

// NewRecorder creates a Recorder with a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		Checks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vanity_checks_total",
			Help: "Total number of identifiers processed, by terminal outcome",
		}, []string{"mode", "outcome"}),
		Attempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vanity_requests_total",
			Help: "Total number of remote lookups issued",
		}, []string{"mode"}),
		Throttled: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vanity_throttled_responses_total",
			Help: "Total number of lookups answered with HTTP 429",
		}, []string{"mode"}),
		Available: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "vanity_available_identifiers",
			Help: "Size of the available set after the last run",
		}, []string{"mode"}),
		Unavailable: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "vanity_unavailable_identifiers",
			Help: "Size of the unavailable map after the last run",
		}, []string{"mode"}),
		LastRun: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "vanity_last_run_timestamp_seconds",
			Help: "Unix time the last run finished",
		}, []string{"mode"}),
		RunDuration: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "vanity_last_run_duration_seconds",
			Help: "Wall time of the last run",
		}, []string{"mode"}),
	}
}

// Record counts one terminal result.
func (r *Recorder) Record(mode vanity.Mode, result vanity.Result) {
	m := string(mode)
	r.Checks.WithLabelValues(m, string(result.Outcome)).Inc()
	if result.Attempts > 0 {
		r.Attempts.WithLabelValues(m).Add(float64(result.Attempts))
	}
	if result.Throttles > 0 {
		r.Throttled.WithLabelValues(m).Add(float64(result.Throttles))
	}
}

// ObserveRun sets the state gauges from a finished run.
func (r *Recorder) ObserveRun(run *vanity.Run) {
	if run == nil {
		return
	}
	m := string(run.Mode)
	r.Available.WithLabelValues(m).Set(float64(run.Available))
	r.Unavailable.WithLabelValues(m).Set(float64(run.Unavailable))
	r.LastRun.WithLabelValues(m).Set(float64(run.FinishedAt.Unix()))
	r.RunDuration.WithLabelValues(m).Set(run.FinishedAt.Sub(run.StartedAt).Seconds())
}

// Gatherer returns the registry holding the recorder's metrics.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes the current metrics to path in the text exposition
// format. The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
