// Package metrics provides Prometheus metrics for the prediction pipeline.
package metrics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Manager manages all Prometheus metrics for the pipeline.
type Manager struct {
	namespace string
	subsystem string
	registry  *prometheus.Registry

	// Extraction metrics
	postsProcessed       prometheus.Counter
	predictionsExtracted prometheus.Counter
	suspectLines         *prometheus.CounterVec
	rankingsAccepted     prometheus.Counter
	rankingsRejected     prometheus.Counter

	// Reconciliation metrics
	roundsRepaired    prometheus.Counter
	duplicatesDropped prometheus.Counter

	// Scoring metrics
	predictionsScored prometheus.Counter
	perfectRounds     prometheus.Counter

	// Scale gauges
	participantCount prometheus.Gauge
	authorCount      prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "schedina",
		subsystem: "pipeline",
		registry:  prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.postsProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "posts_processed_total",
		Help:      "Total number of forum posts scanned for predictions",
	})

	m.predictionsExtracted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predictions_extracted_total",
		Help:      "Total number of predictions extracted from posts",
	})

	m.suspectLines = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "suspect_lines_total",
			Help:      "Total number of lines or posts flagged for human review, by reason",
		},
		[]string{"reason"},
	)

	m.rankingsAccepted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rankings_accepted_total",
		Help:      "Total number of final-ranking guesses accepted",
	})

	m.rankingsRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rankings_rejected_total",
		Help:      "Total number of final-ranking guesses rejected as malformed",
	})

	m.roundsRepaired = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rounds_repaired_total",
		Help:      "Total number of predictions whose round was corrected from the official feed",
	})

	m.duplicatesDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicates_dropped_total",
		Help:      "Total number of superseded duplicate predictions dropped",
	})

	m.predictionsScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predictions_scored_total",
		Help:      "Total number of predictions scored against official results",
	})

	m.perfectRounds = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "perfect_rounds_total",
		Help:      "Total number of perfect-round bonuses awarded",
	})

	m.participantCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "participant_count",
		Help:      "Number of tournament participants configured",
	})

	m.authorCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "author_count",
		Help:      "Number of distinct forecast authors seen",
	})
}

// Package-level helpers recording on the global manager.

func RecordPostProcessed()         { globalManager.postsProcessed.Inc() }
func RecordPredictionExtracted()   { globalManager.predictionsExtracted.Inc() }
func RecordRankingAccepted()       { globalManager.rankingsAccepted.Inc() }
func RecordRankingRejected()       { globalManager.rankingsRejected.Inc() }
func RecordRoundRepaired()         { globalManager.roundsRepaired.Inc() }
func RecordDuplicateDropped()      { globalManager.duplicatesDropped.Inc() }
func RecordPredictionScored()      { globalManager.predictionsScored.Inc() }
func RecordPerfectRound()          { globalManager.perfectRounds.Inc() }
func UpdateParticipantCount(n int) { globalManager.participantCount.Set(float64(n)) }
func UpdateAuthorCount(n int)      { globalManager.authorCount.Set(float64(n)) }

// RecordSuspectLine counts a flagged line or post under its reason label.
func RecordSuspectLine(reason string) {
	globalManager.suspectLines.WithLabelValues(reason).Inc()
}

// Summary gathers the global registry and renders nonzero metrics as
// "name=value" pairs, sorted by name. Used for the end-of-run report.
func Summary() ([]string, error) {
	return globalManager.SummaryLines()
}

// SummaryLines gathers this manager's registry into printable lines.
func (m *Manager) SummaryLines() ([]string, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	var lines []string
	for _, fam := range families {
		for _, metric := range fam.GetMetric() {
			val := metricValue(fam.GetType(), metric)
			if val == 0 {
				continue
			}
			name := fam.GetName()
			if labels := metric.GetLabel(); len(labels) > 0 {
				parts := make([]string, len(labels))
				for i, l := range labels {
					parts[i] = l.GetName() + "=" + l.GetValue()
				}
				name += "{" + strings.Join(parts, ",") + "}"
			}
			lines = append(lines, fmt.Sprintf("%s=%g", name, val))
		}
	}
	sort.Strings(lines)
	return lines, nil
}

func metricValue(kind dto.MetricType, m *dto.Metric) float64 {
	switch kind {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue()
	default:
		return 0
	}
}
