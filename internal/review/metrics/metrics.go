package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var latencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

// Metrics provides observability for the review module.
// Tracks workflow outcomes and the team aggregation hot path.
type Metrics struct {
	CycleTransitions     *prometheus.CounterVec
	NominationsCreated   prometheus.Counter
	ValidationRejections *prometheus.CounterVec
	AdjustmentDecisions  *prometheus.CounterVec
	ScoresLocked         prometheus.Counter
	DeadlinesPassed      *prometheus.CounterVec
	CacheLookups         *prometheus.CounterVec
	TeamAggregation      *prometheus.HistogramVec
}

// New registers the review metrics with reg. A nil reg creates unregistered collectors.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CycleTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "calibra_review_cycle_transitions_total",
			Help: "Review cycle status transitions by target status",
		}, []string{"status"}),
		NominationsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "calibra_peer_nominations_created_total",
			Help: "Peer nominations persisted",
		}),
		ValidationRejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "calibra_validation_rejections_total",
			Help: "Requests rejected by a business rule, by operation and error code",
		}, []string{"operation", "code"}),
		AdjustmentDecisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "calibra_score_adjustment_decisions_total",
			Help: "Score adjustment requests by resulting status",
		}, []string{"status"}),
		ScoresLocked: f.NewCounter(prometheus.CounterOpts{
			Name: "calibra_final_scores_locked_total",
			Help: "Final scores locked by calibration finalization or administrators",
		}),
		DeadlinesPassed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "calibra_review_deadlines_passed_total",
			Help: "Phase deadlines observed as passed by the deadline monitor",
		}, []string{"phase"}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "calibra_final_score_cache_lookups_total",
			Help: "Final score cache lookups by result (hit, miss, error)",
		}, []string{"result"}),
		TeamAggregation: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "calibra_team_aggregation_duration_seconds",
			Help:    "Duration of team aggregation requests",
			Buckets: latencyBuckets,
		}, []string{"operation"}),
	}
}

func (m *Metrics) IncCycleTransition(status string) {
	m.CycleTransitions.WithLabelValues(status).Inc()
}

func (m *Metrics) AddNominations(n int) {
	m.NominationsCreated.Add(float64(n))
}

func (m *Metrics) IncRejection(operation, code string) {
	m.ValidationRejections.WithLabelValues(operation, code).Inc()
}

func (m *Metrics) IncAdjustmentDecision(status string) {
	m.AdjustmentDecisions.WithLabelValues(status).Inc()
}

func (m *Metrics) AddScoresLocked(n int) {
	m.ScoresLocked.Add(float64(n))
}

func (m *Metrics) IncDeadlinePassed(phase string) {
	m.DeadlinesPassed.WithLabelValues(phase).Inc()
}

func (m *Metrics) IncCacheLookup(result string) {
	m.CacheLookups.WithLabelValues(result).Inc()
}

// ObserveTeamAggregation records the duration of a team aggregation call.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveTeamAggregation(operation string, start time.Time) {
	m.TeamAggregation.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
