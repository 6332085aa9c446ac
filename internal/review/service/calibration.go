package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"calibra/internal/review/models"
	id "calibra/pkg/domain"
	dErrors "calibra/pkg/domain-errors"
	"calibra/pkg/platform/audit"
	"calibra/pkg/requestcontext"
)

type CreateSessionInput struct {
	CycleID        id.CycleID
	Name           string
	FacilitatorID  id.UserID
	ParticipantIDs []id.UserID
	ScheduledAt    time.Time
}

// CreateCalibrationSession schedules a session for a cycle in CALIBRATION.
func (s *Service) CreateCalibrationSession(ctx context.Context, in CreateSessionInput) (_ *models.CalibrationSession, err error) {
	ctx, span := s.startSpan(ctx, "CreateCalibrationSession", attribute.String("cycle_id", in.CycleID.String()))
	defer func() { endSpan(span, err) }()

	cycle, err := s.loadCycle(ctx, in.CycleID)
	if err != nil {
		return nil, err
	}
	if cycle.Status != models.CycleStatusCalibration {
		return nil, s.reject("create_session", dErrors.New(dErrors.CodeBadRequest,
			"Calibration sessions can only be created during the calibration phase"))
	}
	if _, err := s.users.FindByID(ctx, in.FacilitatorID); err != nil {
		return nil, notFound(err, "Facilitator not found")
	}

	session, err := models.NewCalibrationSession(id.CalibrationSessionID(uuid.New()), in.CycleID, in.Name,
		in.FacilitatorID, in.ParticipantIDs, in.ScheduledAt, requestcontext.Now(ctx))
	if err != nil {
		return nil, s.reject("create_session", err)
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	s.logAudit(ctx, audit.EventCalibrationSessionCreated,
		audit.Event{ActorID: in.FacilitatorID, CycleID: in.CycleID, Subject: session.ID.String()},
		"session_name", session.Name,
		"participants", len(session.ParticipantIDs),
	)
	return session, nil
}

func (s *Service) ListCalibrationSessions(ctx context.Context, cycleID id.CycleID) ([]*models.CalibrationSession, error) {
	return s.sessions.FindByCycle(ctx, cycleID)
}

func (s *Service) StartCalibrationSession(ctx context.Context, sessionID id.CalibrationSessionID) (*models.CalibrationSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Start(requestcontext.Now(ctx)); err != nil {
		return nil, s.reject("start_session", err)
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	s.logAudit(ctx, audit.EventCalibrationSessionStarted,
		audit.Event{CycleID: session.CycleID, Subject: session.ID.String()})
	return session, nil
}

func (s *Service) CompleteCalibrationSession(ctx context.Context, sessionID id.CalibrationSessionID, notes string) (*models.CalibrationSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Complete(notes, requestcontext.Now(ctx)); err != nil {
		return nil, s.reject("complete_session", err)
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	s.logAudit(ctx, audit.EventCalibrationSessionCompleted,
		audit.Event{CycleID: session.CycleID, Subject: session.ID.String()})
	return session, nil
}

func (s *Service) loadSession(ctx context.Context, sessionID id.CalibrationSessionID) (*models.CalibrationSession, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, notFound(err, "Calibration session not found")
	}
	return session, nil
}

// ApplyCalibrationAdjustment replaces an unlocked final score's pillars and
// weighted score as agreed during calibration.
func (s *Service) ApplyCalibrationAdjustment(ctx context.Context, cycleID id.CycleID, employeeID id.UserID, pillars models.Pillars, weighted float64) (_ *models.FinalScore, err error) {
	ctx, span := s.startSpan(ctx, "ApplyCalibrationAdjustment", attribute.String("cycle_id", cycleID.String()))
	defer func() { endSpan(span, err) }()

	if _, err := s.loadCycle(ctx, cycleID); err != nil {
		return nil, err
	}
	score, err := s.loadFinalScore(ctx, employeeID, cycleID)
	if err != nil {
		return nil, err
	}
	if err := score.CanUpdateScores(); err != nil {
		return nil, s.reject("calibration_adjustment", err)
	}

	ps, err := models.NewPillarScores(pillars)
	if err != nil {
		return nil, s.reject("calibration_adjustment", err)
	}
	ws, err := models.NewWeightedScore(weighted)
	if err != nil {
		return nil, s.reject("calibration_adjustment", err)
	}
	before := score.WeightedScore.Value()
	if err := score.UpdateScores(ps, ws, requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	if err := s.finalScores.Save(ctx, score); err != nil {
		return nil, err
	}

	s.logAudit(ctx, audit.EventCalibrationAdjusted, audit.Event{UserID: employeeID, CycleID: cycleID},
		"weighted_before", before,
		"weighted_after", ws.Value(),
		"bonus_tier", string(score.BonusTier()),
	)
	return score, nil
}

// FinalizeCalibration locks every final score of a cycle in CALIBRATION and
// returns how many were newly locked.
func (s *Service) FinalizeCalibration(ctx context.Context, cycleID id.CycleID) (_ int, err error) {
	ctx, span := s.startSpan(ctx, "FinalizeCalibration", attribute.String("cycle_id", cycleID.String()))
	defer func() { endSpan(span, err) }()

	cycle, err := s.loadCycle(ctx, cycleID)
	if err != nil {
		return 0, err
	}
	if cycle.Status != models.CycleStatusCalibration {
		return 0, s.reject("finalize_calibration", dErrors.New(dErrors.CodeBadRequest,
			"Calibration can only be finalized during the calibration phase"))
	}

	scores, err := s.finalScores.FindByCycle(ctx, cycleID)
	if err != nil {
		return 0, err
	}

	now := requestcontext.Now(ctx)
	locked := 0
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, score := range scores {
			if score.Locked {
				continue
			}
			score.Lock(now)
			if err := s.finalScores.Save(ctx, score); err != nil {
				return err
			}
			locked++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if s.metrics != nil {
		s.metrics.AddScoresLocked(locked)
	}
	s.logAudit(ctx, audit.EventCalibrationFinalized, audit.Event{CycleID: cycleID},
		"locked", locked,
		"total", len(scores),
	)
	return locked, nil
}
