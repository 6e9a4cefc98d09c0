// Package metrics provides Prometheus metrics for the submission evaluator.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Evaluation outcomes used as label values.
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// defaultDurationBuckets covers sub-millisecond to multi-second evaluations.
var defaultDurationBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000, 5000} //nolint:gochecknoglobals // constant table

// Manager owns all evaluator metrics on one registry.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         *prometheus.Registry

	evaluations         *prometheus.CounterVec
	validationFailures  *prometheus.CounterVec
	evaluationDuration  *prometheus.HistogramVec
	groundTruthProfiles prometheus.Gauge
	primaryScore        prometheus.Gauge
	secondaryScore      prometheus.Gauge
	correlation         *prometheus.GaugeVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
// Without WithPrometheusRegistry it registers on a fresh private registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "aware",
		subsystem:        "evaluator",
		histogramBuckets: defaultDurationBuckets,
		constLabels:      make(map[string]string),
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.evaluations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "evaluations_total",
		Help:        "Evaluation calls by outcome (success, invalid, error)",
		ConstLabels: m.constLabels,
	}, []string{"outcome"})

	m.validationFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "validation_failures_total",
		Help:        "Rejected submissions by violation kind",
		ConstLabels: m.constLabels,
	}, []string{"kind"})

	m.evaluationDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "phase_duration_milliseconds",
		Help:        "Duration of evaluation phases in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"phase"})

	m.groundTruthProfiles = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "ground_truth_profiles",
		Help:        "Number of profiles in the loaded ground truth",
		ConstLabels: m.constLabels,
	})

	m.primaryScore = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "primary_score",
		Help:        "Primary score (mean Pearson correlation) of the last successful evaluation",
		ConstLabels: m.constLabels,
	})

	m.secondaryScore = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "secondary_score",
		Help:        "Secondary score of the last successful evaluation",
		ConstLabels: m.constLabels,
	})

	m.correlation = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "situation_correlation",
		Help:        "Pearson correlation per situation code of the last successful evaluation",
		ConstLabels: m.constLabels,
	}, []string{"situation"})
}

// Registry returns the registry this manager registers on.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// RecordEvaluation counts one evaluation call with the given outcome.
func (m *Manager) RecordEvaluation(outcome string) { m.evaluations.WithLabelValues(outcome).Inc() }

// RecordValidationFailure counts one rejected submission.
func (m *Manager) RecordValidationFailure(kind string) {
	m.validationFailures.WithLabelValues(kind).Inc()
}

// RecordPhaseDuration observes how long a phase took in milliseconds.
func (m *Manager) RecordPhaseDuration(phase string, durationMs float64) {
	m.evaluationDuration.WithLabelValues(phase).Observe(durationMs)
}

// UpdateGroundTruthProfiles sets the ground-truth profile count.
func (m *Manager) UpdateGroundTruthProfiles(count int) { m.groundTruthProfiles.Set(float64(count)) }

// UpdateScores sets the primary and secondary score gauges.
func (m *Manager) UpdateScores(primary, secondary float64) {
	m.primaryScore.Set(primary)
	m.secondaryScore.Set(secondary)
}

// UpdateSituationCorrelation sets the correlation gauge for one situation code.
func (m *Manager) UpdateSituationCorrelation(situation string, value float64) {
	m.correlation.WithLabelValues(situation).Set(value)
}

// WriteTextfile writes the registry in text exposition format to path,
// for the node-exporter textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	return nil
}

// RecordEvaluation counts one evaluation call on the global manager.
func RecordEvaluation(outcome string) { globalManager.RecordEvaluation(outcome) }

// RecordValidationFailure counts one rejected submission on the global manager.
func RecordValidationFailure(kind string) { globalManager.RecordValidationFailure(kind) }

// RecordPhaseDuration observes a phase duration on the global manager.
func RecordPhaseDuration(phase string, durationMs float64) {
	globalManager.RecordPhaseDuration(phase, durationMs)
}

// UpdateGroundTruthProfiles sets the ground-truth profile count on the global manager.
func UpdateGroundTruthProfiles(count int) { globalManager.UpdateGroundTruthProfiles(count) }

// UpdateScores sets the score gauges on the global manager.
func UpdateScores(primary, secondary float64) { globalManager.UpdateScores(primary, secondary) }

// UpdateSituationCorrelation sets a per-situation gauge on the global manager.
func UpdateSituationCorrelation(situation string, value float64) {
	globalManager.UpdateSituationCorrelation(situation, value)
}

// WriteTextfile exports the global registry to path.
func WriteTextfile(path string) error { return globalManager.WriteTextfile(path) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
