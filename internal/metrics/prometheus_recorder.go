package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once           sync.Once
	commands       *prom.CounterVec
	mergeOutcomes  *prom.CounterVec
	mergedBullets  prom.Counter
	renderDuration *prom.HistogramVec
	renderRetries  *prom.CounterVec
	externalCalls  *prom.HistogramVec
}

// NewPrometheusRecorder constructs and registers the studio metrics on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.commands = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "resume_studio",
			Name:      "commands_total",
			Help:      "Edit commands applied to session documents",
		}, []string{"op", "result"})
		pr.mergeOutcomes = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "resume_studio",
			Name:      "merge_outcomes_total",
			Help:      "Generated content merges by outcome",
		}, []string{"outcome"})
		pr.mergedBullets = prom.NewCounter(prom.CounterOpts{
			Namespace: "resume_studio",
			Name:      "merged_bullets_total",
			Help:      "Generated bullets inserted into documents",
		})
		pr.renderDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "resume_studio",
			Name:      "render_duration_seconds",
			Help:      "Duration of document renders by output format",
			Buckets:   prom.DefBuckets,
		}, []string{"format", "result"})
		pr.renderRetries = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "resume_studio",
			Name:      "render_retries_total",
			Help:      "Render attempts that were retried",
		}, []string{"format"})
		pr.externalCalls = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "resume_studio",
			Name:      "external_call_duration_seconds",
			Help:      "Duration of Resume Parser and Content Generator calls",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"op", "result"})
		reg.MustRegister(pr.commands, pr.mergeOutcomes, pr.mergedBullets, pr.renderDuration, pr.renderRetries, pr.externalCalls)
	})
	return pr
}

func (p *PrometheusRecorder) IncCommand(op string, result ResultLabel) {
	if p == nil || p.commands == nil {
		return
	}
	p.commands.WithLabelValues(op, string(result)).Inc()
}

func (p *PrometheusRecorder) IncMergeOutcome(outcome string, inserted int) {
	if p == nil || p.mergeOutcomes == nil {
		return
	}
	p.mergeOutcomes.WithLabelValues(outcome).Inc()
	p.mergedBullets.Add(float64(inserted))
}

func (p *PrometheusRecorder) ObserveRenderDuration(format string, d time.Duration, result ResultLabel) {
	if p == nil || p.renderDuration == nil {
		return
	}
	p.renderDuration.WithLabelValues(format, string(result)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRenderRetry(format string) {
	if p == nil || p.renderRetries == nil {
		return
	}
	p.renderRetries.WithLabelValues(format).Inc()
}

func (p *PrometheusRecorder) ObserveExternalCall(op string, d time.Duration, result ResultLabel) {
	if p == nil || p.externalCalls == nil {
		return
	}
	p.externalCalls.WithLabelValues(op, string(result)).Observe(d.Seconds())
}
