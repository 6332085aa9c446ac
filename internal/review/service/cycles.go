package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"calibra/internal/review/models"
	id "calibra/pkg/domain"
	dErrors "calibra/pkg/domain-errors"
	"calibra/pkg/platform/audit"
	"calibra/pkg/platform/sentinel"
	"calibra/pkg/requestcontext"
)

const errAnotherCycleActive = "Another review cycle is already active"

type CreateCycleInput struct {
	Name      string
	Year      int
	Deadlines models.DeadlineDates
	StartDate time.Time
}

// CreateReviewCycle creates a cycle in DRAFT.
func (s *Service) CreateReviewCycle(ctx context.Context, in CreateCycleInput) (_ *models.ReviewCycle, err error) {
	ctx, span := s.startSpan(ctx, "CreateReviewCycle", attribute.Int("year", in.Year))
	defer func() { endSpan(span, err) }()

	deadlines, err := models.NewCycleDeadlines(in.Deadlines)
	if err != nil {
		return nil, s.reject("create_cycle", err)
	}
	now := requestcontext.Now(ctx)
	cycle, err := models.NewReviewCycle(id.CycleID(uuid.New()), in.Name, in.Year, deadlines, in.StartDate, now)
	if err != nil {
		return nil, s.reject("create_cycle", err)
	}
	if err := s.cycles.Save(ctx, cycle); err != nil {
		return nil, err
	}

	s.logAudit(ctx, audit.EventReviewCycleCreated, audit.Event{CycleID: cycle.ID},
		"name", cycle.Name,
		"year", cycle.Year,
	)
	return cycle, nil
}

func (s *Service) GetReviewCycle(ctx context.Context, cycleID id.CycleID) (*models.ReviewCycle, error) {
	return s.loadCycle(ctx, cycleID)
}

func (s *Service) GetActiveCycle(ctx context.Context) (*models.ReviewCycle, error) {
	cycle, err := s.cycles.FindActive(ctx)
	if err != nil {
		return nil, notFound(err, "No active review cycle")
	}
	return cycle, nil
}

func (s *Service) ListCyclesByYear(ctx context.Context, year int) ([]*models.ReviewCycle, error) {
	return s.cycles.FindByYear(ctx, year)
}

// StartReviewCycle moves a DRAFT cycle to ACTIVE. Only one cycle may be ACTIVE,
// so the store is consulted before the transition.
func (s *Service) StartReviewCycle(ctx context.Context, cycleID id.CycleID) (_ *models.ReviewCycle, err error) {
	ctx, span := s.startSpan(ctx, "StartReviewCycle", attribute.String("cycle_id", cycleID.String()))
	defer func() { endSpan(span, err) }()

	cycle, err := s.loadCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}

	active, err := s.cycles.FindActive(ctx)
	if active, err = optional(active, err); err != nil {
		return nil, err
	}
	if active != nil && active.ID != cycle.ID {
		return nil, s.reject("start_cycle", dErrors.New(dErrors.CodeConflict, errAnotherCycleActive))
	}

	if err := cycle.Start(requestcontext.Now(ctx)); err != nil {
		return nil, s.reject("start_cycle", err)
	}
	if err := s.cycles.Save(ctx, cycle); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.Wrap(err, dErrors.CodeConflict, errAnotherCycleActive)
		}
		return nil, err
	}

	s.recordTransition(ctx, audit.EventReviewCycleStarted, cycle)
	return cycle, nil
}

func (s *Service) EnterCalibration(ctx context.Context, cycleID id.CycleID) (_ *models.ReviewCycle, err error) {
	ctx, span := s.startSpan(ctx, "EnterCalibration", attribute.String("cycle_id", cycleID.String()))
	defer func() { endSpan(span, err) }()

	cycle, err := s.loadCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	if err := cycle.EnterCalibration(requestcontext.Now(ctx)); err != nil {
		return nil, s.reject("enter_calibration", err)
	}
	if err := s.cycles.Save(ctx, cycle); err != nil {
		return nil, err
	}

	s.recordTransition(ctx, audit.EventCalibrationEntered, cycle)
	return cycle, nil
}

func (s *Service) CompleteReviewCycle(ctx context.Context, cycleID id.CycleID) (_ *models.ReviewCycle, err error) {
	ctx, span := s.startSpan(ctx, "CompleteReviewCycle", attribute.String("cycle_id", cycleID.String()))
	defer func() { endSpan(span, err) }()

	cycle, err := s.loadCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	if err := cycle.Complete(requestcontext.Now(ctx)); err != nil {
		return nil, s.reject("complete_cycle", err)
	}
	if err := s.cycles.Save(ctx, cycle); err != nil {
		return nil, err
	}

	s.recordTransition(ctx, audit.EventReviewCycleCompleted, cycle)
	return cycle, nil
}

// DeleteReviewCycle removes a cycle that never left DRAFT.
func (s *Service) DeleteReviewCycle(ctx context.Context, cycleID id.CycleID) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteReviewCycle", attribute.String("cycle_id", cycleID.String()))
	defer func() { endSpan(span, err) }()

	cycle, err := s.loadCycle(ctx, cycleID)
	if err != nil {
		return err
	}
	if err := cycle.CanDelete(); err != nil {
		return s.reject("delete_cycle", err)
	}
	if err := s.cycles.Delete(ctx, cycleID); err != nil {
		return notFound(err, "Review cycle with ID "+cycleID.String()+" not found")
	}

	s.logAudit(ctx, audit.EventReviewCycleDeleted, audit.Event{CycleID: cycleID}, "name", cycle.Name)
	return nil
}

func (s *Service) recordTransition(ctx context.Context, event audit.AuditEvent, cycle *models.ReviewCycle) {
	if s.metrics != nil {
		s.metrics.IncCycleTransition(string(cycle.Status))
	}
	s.logAudit(ctx, event, audit.Event{CycleID: cycle.ID},
		"name", cycle.Name,
		"status", string(cycle.Status),
	)
}
