// Package metrics exports cleanup run statistics as Prometheus metrics.
//
// Runs are short-lived, so metrics are written to a file for the
// node_exporter textfile collector instead of being served over HTTP.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/infodancer/mailclean"
)

// Recorder implements mailclean.Recorder with Prometheus collectors
// on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	messages     *prometheus.CounterVec
	lastRun      prometheus.Gauge
	lastDuration prometheus.Gauge
	trialRun     prometheus.Gauge
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		messages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mailclean_messages_total",
				Help: "Messages examined, by folder and decided action",
			},
			[]string{"folder", "action"},
		),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mailclean_last_run_timestamp_seconds",
			Help: "Unix time the last cleanup run finished",
		}),
		lastDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mailclean_last_run_duration_seconds",
			Help: "Duration of the last cleanup run in seconds",
		}),
		trialRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mailclean_trial_run",
			Help: "1 if the last run was a trial run that changed nothing",
		}),
	}
	r.registry.MustRegister(r.messages, r.lastRun, r.lastDuration, r.trialRun)
	return r
}

// Observe implements mailclean.Recorder.
func (r *Recorder) Observe(folder string, action mailclean.Action) {
	r.messages.WithLabelValues(folder, action.String()).Inc()
}

// Finish records the end of a run that started at start.
func (r *Recorder) Finish(start time.Time, trial bool) {
	now := time.Now()
	r.lastRun.Set(float64(now.Unix()))
	r.lastDuration.Set(now.Sub(start).Seconds())
	if trial {
		r.trialRun.Set(1)
	} else {
		r.trialRun.Set(0)
	}
}

// WriteFile writes all metrics to path in the text exposition format.
// The file is replaced atomically.
func (r *Recorder) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

var _ mailclean.Recorder = (*Recorder)(nil)
