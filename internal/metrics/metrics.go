// Package metrics exposes analysis outcomes to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"OptionSentinel/internal/analyzer"
	"OptionSentinel/internal/model"
)

// Recorder implements analyzer.Metrics using Prometheus.
type Recorder struct {
	analyses        *prometheus.CounterVec
	recommendations *prometheus.CounterVec
	fetchFailures   *prometheus.CounterVec
	duration        prometheus.Histogram
}

// New registers the collectors with reg, or the default registry when reg is nil.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Recorder{
		analyses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "optionsentinel_analyses_total",
				Help: "Total number of instrument analyses by outcome",
			},
			[]string{"outcome"},
		),
		recommendations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "optionsentinel_recommendations_total",
				Help: "Total number of accepted recommendations by archetype and tier",
			},
			[]string{"archetype", "tier"},
		),
		fetchFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "optionsentinel_fetch_failures_total",
				Help: "Total number of failed collaborator calls by source",
			},
			[]string{"source"},
		),
		duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "optionsentinel_analysis_duration_seconds",
				Help:    "Duration of a single instrument analysis in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// AnalysisCompleted records one finished analysis.
func (r *Recorder) AnalysisCompleted(outcome analyzer.Outcome, seconds float64) {
	r.analyses.WithLabelValues(string(outcome)).Inc()
	r.duration.Observe(seconds)
}

// RecommendationMade records an accepted recommendation.
func (r *Recorder) RecommendationMade(archetype string, tier model.Tier) {
	r.recommendations.WithLabelValues(archetype, string(tier)).Inc()
}

// FetchFailed records a failed call to a data source.
func (r *Recorder) FetchFailed(source string) {
	r.fetchFailures.WithLabelValues(source).Inc()
}
