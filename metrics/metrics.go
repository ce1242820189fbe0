package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run collects the counters of one report run on its own registry.
type Run struct {
	Registry *prometheus.Registry

	Prompts         *prometheus.CounterVec
	GeneratedTokens prometheus.Counter
	PromptTokens    prometheus.Counter
	GenerationTime  prometheus.Histogram
	ReportsWritten  prometheus.Counter
}

// NewRun registers a fresh set of collectors labelled with the model id.
func NewRun(model string) *Run {
	reg := prometheus.NewRegistry()
	f := promauto.With(prometheus.WrapRegistererWith(prometheus.Labels{"model": model}, reg))

	return &Run{
		Registry: reg,
		Prompts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "model_report_prompts_total",
			Help: "Prompts processed, by outcome",
		}, []string{"status"}),
		GeneratedTokens: f.NewCounter(prometheus.CounterOpts{
			Name: "model_report_generated_tokens_total",
			Help: "Completion tokens reported by the engine",
		}),
		PromptTokens: f.NewCounter(prometheus.CounterOpts{
			Name: "model_report_prompt_tokens_total",
			Help: "Prompt tokens reported by the engine",
		}),
		GenerationTime: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "model_report_generation_seconds",
			Help:    "Wall time of a single generate call",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		}),
		ReportsWritten: f.NewCounter(prometheus.CounterOpts{
			Name: "model_report_reports_written_total",
			Help: "HTML reports written to disk",
		}),
	}
}

// ObserveGeneration records one successful prompt.
func (r *Run) ObserveGeneration(d time.Duration, promptTokens, completionTokens int64) {
	r.Prompts.WithLabelValues("ok").Inc()
	r.GenerationTime.Observe(d.Seconds())
	if promptTokens > 0 {
		r.PromptTokens.Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		r.GeneratedTokens.Add(float64(completionTokens))
	}
}

// ObserveFailure records a prompt that aborted the run.
func (r *Run) ObserveFailure() {
	r.Prompts.WithLabelValues("error").Inc()
}

// WriteTextfile dumps the registry in text exposition format, for the
// node exporter textfile collector.
func (r *Run) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.Registry)
}
