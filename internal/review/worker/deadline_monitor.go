// Package worker runs the review module's background jobs.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"calibra/internal/review/metrics"
	"calibra/internal/review/models"
	id "calibra/pkg/domain"
	audit "calibra/pkg/platform/audit"
	"calibra/pkg/platform/sentinel"
)

type ActiveCycleSource interface {
	FindActive(ctx context.Context) (*models.ReviewCycle, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// DeadlineMonitor watches the active cycle and reports each phase deadline
// once, the first time a check sees it as passed. State is per process: a
// restart reports already-passed phases again. Only the active cycle's state
// is kept; a cycle never becomes active twice.
type DeadlineMonitor struct {
	cycles    ActiveCycleSource
	publisher AuditPublisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	interval  time.Duration
	now       func() time.Time

	mu       sync.Mutex
	reported map[id.CycleID]map[models.ReviewPhase]bool
}

type Option func(*DeadlineMonitor)

func WithInterval(d time.Duration) Option {
	return func(m *DeadlineMonitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *DeadlineMonitor) { m.logger = logger }
}

func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *DeadlineMonitor) { m.metrics = mt }
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(m *DeadlineMonitor) { m.publisher = p }
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(m *DeadlineMonitor) { m.now = now }
}

func NewDeadlineMonitor(cycles ActiveCycleSource, opts ...Option) *DeadlineMonitor {
	m := &DeadlineMonitor{
		cycles:   cycles,
		interval: time.Minute,
		logger:   slog.Default(),
		now:      time.Now,
		reported: make(map[id.CycleID]map[models.ReviewPhase]bool),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run checks on every tick until ctx is cancelled.
func (m *DeadlineMonitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := m.Check(ctx); err != nil {
				m.logger.WarnContext(ctx, "deadline check failed", "error", err)
			}
		}
	}
}

// Check reports newly passed phases of the active cycle, in deadline order.
// No active cycle is not an error.
func (m *DeadlineMonitor) Check(ctx context.Context) ([]models.ReviewPhase, error) {
	cycle, err := m.cycles.FindActive(ctx)
	if errors.Is(err, sentinel.ErrNotFound) {
		m.mu.Lock()
		clear(m.reported)
		m.mu.Unlock()
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	now := m.now()
	passed := m.claimPassed(cycle, now)
	for _, phase := range passed {
		m.report(ctx, cycle, phase, now)
	}
	return passed, nil
}

func (m *DeadlineMonitor) claimPassed(cycle *models.ReviewCycle, now time.Time) []models.ReviewPhase {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen, ok := m.reported[cycle.ID]
	if !ok {
		clear(m.reported)
		seen = make(map[models.ReviewPhase]bool)
		m.reported[cycle.ID] = seen
	}
	var passed []models.ReviewPhase
	for _, phase := range models.Phases {
		if !seen[phase] && cycle.HasDeadlinePassed(phase, now) {
			seen[phase] = true
			passed = append(passed, phase)
		}
	}
	return passed
}

func (m *DeadlineMonitor) report(ctx context.Context, cycle *models.ReviewCycle, phase models.ReviewPhase, now time.Time) {
	deadline := cycle.Deadlines.For(phase)
	m.logger.InfoContext(ctx, string(audit.EventDeadlinePassed),
		"log_type", "audit",
		"cycle_id", cycle.ID.String(),
		"phase", string(phase),
		"deadline", deadline,
	)
	if m.metrics != nil {
		m.metrics.IncDeadlinePassed(string(phase))
	}
	if m.publisher == nil {
		return
	}
	event := audit.Event{
		Timestamp: now,
		CycleID:   cycle.ID,
		Subject:   cycle.Name,
		Action:    string(audit.EventDeadlinePassed),
		Reason:    string(phase),
	}
	if err := m.publisher.Emit(ctx, event); err != nil {
		m.logger.WarnContext(ctx, "failed to emit audit event", "event", event.Action, "error", err)
	}
}
