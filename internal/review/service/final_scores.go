package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"calibra/internal/review/models"
	id "calibra/pkg/domain"
	"calibra/pkg/platform/audit"
	"calibra/pkg/requestcontext"
)

// GetFinalScore returns the shaped final score. A missing employee record
// renders as "Unknown" instead of failing.
func (s *Service) GetFinalScore(ctx context.Context, employeeID id.UserID, cycleID id.CycleID) (_ *models.FinalScoreView, err error) {
	ctx, span := s.startSpan(ctx, "GetFinalScore", attribute.String("cycle_id", cycleID.String()))
	defer func() { endSpan(span, err) }()

	cycle, err := s.loadCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	score, err := s.loadFinalScore(ctx, employeeID, cycleID)
	if err != nil {
		return nil, err
	}
	employee, err := s.users.FindByID(ctx, employeeID)
	if employee, err = optional(employee, err); err != nil {
		return nil, err
	}

	view := models.NewFinalScoreView(score, cycle, employee)
	return &view, nil
}

func (s *Service) LockFinalScore(ctx context.Context, employeeID id.UserID, cycleID id.CycleID) (*models.FinalScore, error) {
	return s.setLock(ctx, employeeID, cycleID, true)
}

// UnlockFinalScore opens a locked score for correction. It must be locked again
// before adjustment requests can be filed against it.
func (s *Service) UnlockFinalScore(ctx context.Context, employeeID id.UserID, cycleID id.CycleID) (*models.FinalScore, error) {
	return s.setLock(ctx, employeeID, cycleID, false)
}

func (s *Service) setLock(ctx context.Context, employeeID id.UserID, cycleID id.CycleID, lock bool) (_ *models.FinalScore, err error) {
	ctx, span := s.startSpan(ctx, "SetFinalScoreLock", attribute.Bool("lock", lock))
	defer func() { endSpan(span, err) }()

	score, err := s.loadFinalScore(ctx, employeeID, cycleID)
	if err != nil {
		return nil, err
	}
	if score.Locked == lock {
		return score, nil
	}

	now := requestcontext.Now(ctx)
	event := audit.EventFinalScoreUnlocked
	if lock {
		score.Lock(now)
		event = audit.EventFinalScoreLocked
	} else {
		score.Unlock(now)
	}
	if err := s.finalScores.Save(ctx, score); err != nil {
		return nil, err
	}

	if lock && s.metrics != nil {
		s.metrics.AddScoresLocked(1)
	}
	s.logAudit(ctx, event, audit.Event{UserID: employeeID, CycleID: cycleID})
	return score, nil
}

// MarkFeedbackDelivered records delivery. Repeated calls overwrite the previous
// delivery metadata; nil notes keep existing notes.
func (s *Service) MarkFeedbackDelivered(ctx context.Context, employeeID id.UserID, cycleID id.CycleID, deliveredBy id.UserID, notes *string) (_ *models.FinalScore, err error) {
	ctx, span := s.startSpan(ctx, "MarkFeedbackDelivered", attribute.String("cycle_id", cycleID.String()))
	defer func() { endSpan(span, err) }()

	score, err := s.loadFinalScore(ctx, employeeID, cycleID)
	if err != nil {
		return nil, err
	}
	score.MarkFeedbackDelivered(deliveredBy, notes, requestcontext.Now(ctx))
	if err := s.finalScores.Save(ctx, score); err != nil {
		return nil, err
	}

	s.logAudit(ctx, audit.EventFeedbackDelivered, audit.Event{UserID: employeeID, ActorID: deliveredBy, CycleID: cycleID})
	return score, nil
}

func (s *Service) ListFinalScoresByBonusTier(ctx context.Context, cycleID id.CycleID, tier models.BonusTier) ([]*models.FinalScore, error) {
	if _, err := s.loadCycle(ctx, cycleID); err != nil {
		return nil, err
	}
	return s.finalScores.FindByBonusTier(ctx, cycleID, tier)
}
