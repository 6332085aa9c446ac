package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"calibra/internal/review/models"
	"calibra/internal/review/service/mocks"
	id "calibra/pkg/domain"
	dErrors "calibra/pkg/domain-errors"
	"calibra/pkg/platform/audit"
	"calibra/pkg/platform/sentinel"
)

func (s *ServiceSuite) TestCreateCalibrationSession() {
	facilitator := user("Facilitator", id.UserID{})
	input := func(cycleID id.CycleID) CreateSessionInput {
		return CreateSessionInput{
			CycleID:        cycleID,
			Name:           "Platform org calibration",
			FacilitatorID:  facilitator.ID,
			ParticipantIDs: []id.UserID{id.UserID(uuid.New()), id.UserID(uuid.New())},
			ScheduledAt:    s.now.Add(48 * time.Hour),
		}
	}

	s.Run("schedules a session during calibration", func() {
		cycle := s.cycle(models.CycleStatusCalibration)
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.users.EXPECT().FindByID(gomock.Any(), facilitator.ID).Return(facilitator, nil)
		s.sessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		session, err := s.service.CreateCalibrationSession(s.ctx, input(cycle.ID))

		s.Require().NoError(err)
		s.Equal(models.SessionScheduled, session.Status)
		s.Len(session.ParticipantIDs, 2)
		s.Equal([]string{string(audit.EventCalibrationSessionCreated)}, s.eventActions())
	})

	s.Run("cycle must be in calibration", func() {
		cycle := s.cycle(models.CycleStatusActive)
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)

		_, err := s.service.CreateCalibrationSession(s.ctx, input(cycle.ID))

		s.requireCode(err, dErrors.CodeBadRequest, "Calibration sessions can only be created during the calibration phase")
	})

	s.Run("unknown facilitator", func() {
		cycle := s.cycle(models.CycleStatusCalibration)
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.users.EXPECT().FindByID(gomock.Any(), facilitator.ID).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.CreateCalibrationSession(s.ctx, input(cycle.ID))

		s.requireNotFound(err, "Facilitator not found")
	})

	s.Run("name is required", func() {
		cycle := s.cycle(models.CycleStatusCalibration)
		in := input(cycle.ID)
		in.Name = ""
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.users.EXPECT().FindByID(gomock.Any(), facilitator.ID).Return(facilitator, nil)

		_, err := s.service.CreateCalibrationSession(s.ctx, in)

		s.requireCode(err, dErrors.CodeValidation, "Calibration session name is required")
	})
}

func (s *ServiceSuite) TestCalibrationSessionLifecycle() {
	session, err := models.NewCalibrationSession(id.CalibrationSessionID(uuid.New()), id.CycleID(uuid.New()),
		"Infra", id.UserID(uuid.New()), nil, s.now, s.now)
	s.Require().NoError(err)
	s.sessions.EXPECT().FindByID(gomock.Any(), session.ID).Return(session, nil).AnyTimes()
	s.sessions.EXPECT().Save(gomock.Any(), session).Return(nil).Times(2)

	_, err = s.service.StartCalibrationSession(s.ctx, session.ID)
	s.Require().NoError(err)
	got, err := s.service.CompleteCalibrationSession(s.ctx, session.ID, "two scores moved up")
	s.Require().NoError(err)

	s.Equal(models.SessionCompleted, got.Status)
	s.Equal("two scores moved up", got.Notes)

	_, err = s.service.StartCalibrationSession(s.ctx, session.ID)
	s.ErrorIs(err, models.ErrInvalidTransition)
}

func (s *ServiceSuite) TestApplyCalibrationAdjustment() {
	s.Run("updates an unlocked score", func() {
		cycle := s.cycle(models.CycleStatusCalibration)
		employeeID := id.UserID(uuid.New())
		score := s.finalScore(employeeID, cycle.ID, 3.2, false)
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.scores.EXPECT().FindByUserAndCycle(gomock.Any(), employeeID, cycle.ID).Return(score, nil)
		s.scores.EXPECT().Save(gomock.Any(), score).Return(nil)

		got, err := s.service.ApplyCalibrationAdjustment(s.ctx, cycle.ID, employeeID, pillars(4), 3.5)

		s.Require().NoError(err)
		s.InDelta(87.5, got.PercentageScore(), 1e-9)
		s.Equal(models.BonusTierExceeds, got.BonusTier())
		s.Equal([]string{string(audit.EventCalibrationAdjusted)}, s.eventActions())
	})

	s.Run("locked score is refused and unchanged", func() {
		cycle := s.cycle(models.CycleStatusCalibration)
		employeeID := id.UserID(uuid.New())
		score := s.finalScore(employeeID, cycle.ID, 3.2, true)
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.scores.EXPECT().FindByUserAndCycle(gomock.Any(), employeeID, cycle.ID).Return(score, nil)

		_, err := s.service.ApplyCalibrationAdjustment(s.ctx, cycle.ID, employeeID, pillars(4), 3.5)

		s.ErrorIs(err, models.ErrFinalScoreLocked)
		s.InDelta(3.2, score.WeightedScore.Value(), 1e-9)
	})
}

func (s *ServiceSuite) TestFinalizeCalibration() {
	s.Run("locks every unlocked score in one transaction", func() {
		tx := mocks.NewMockTxRunner(s.ctrl)
		tx.EXPECT().RunInTx(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, fn func(context.Context) error) error {
				return fn(ctx)
			})
		svc, err := New(s.stores(), WithTxRunner(tx), WithAuditPublisher(s.publisher))
		s.Require().NoError(err)

		cycle := s.cycle(models.CycleStatusCalibration)
		scores := []*models.FinalScore{
			s.finalScore(id.UserID(uuid.New()), cycle.ID, 3.0, false),
			s.finalScore(id.UserID(uuid.New()), cycle.ID, 2.0, true),
			s.finalScore(id.UserID(uuid.New()), cycle.ID, 1.0, false),
		}
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.scores.EXPECT().FindByCycle(gomock.Any(), cycle.ID).Return(scores, nil)
		s.scores.EXPECT().Save(gomock.Any(), scores[0]).Return(nil)
		s.scores.EXPECT().Save(gomock.Any(), scores[2]).Return(nil)

		locked, err := svc.FinalizeCalibration(s.ctx, cycle.ID)

		s.Require().NoError(err)
		s.Equal(2, locked)
		for _, score := range scores {
			s.True(score.Locked)
		}
		s.Equal([]string{string(audit.EventCalibrationFinalized)}, s.eventActions())
	})

	s.Run("cycle must be in calibration", func() {
		cycle := s.cycle(models.CycleStatusActive)
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)

		_, err := s.service.FinalizeCalibration(s.ctx, cycle.ID)

		s.requireCode(err, dErrors.CodeBadRequest, "Calibration can only be finalized during the calibration phase")
	})

	s.Run("save failure aborts", func() {
		cycle := s.cycle(models.CycleStatusCalibration)
		scores := []*models.FinalScore{s.finalScore(id.UserID(uuid.New()), cycle.ID, 3.0, false)}
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.scores.EXPECT().FindByCycle(gomock.Any(), cycle.ID).Return(scores, nil)
		s.scores.EXPECT().Save(gomock.Any(), scores[0]).Return(errStoreDown)

		_, err := s.service.FinalizeCalibration(s.ctx, cycle.ID)

		s.ErrorIs(err, errStoreDown)
		s.Empty(s.events)
	})
}

func (s *ServiceSuite) TestListCalibrationSessions() {
	cycleID := id.CycleID(uuid.New())
	session, err := models.NewCalibrationSession(id.CalibrationSessionID(uuid.New()), cycleID,
		"Infra", id.UserID(uuid.New()), nil, s.now, s.now)
	s.Require().NoError(err)
	s.sessions.EXPECT().FindByCycle(gomock.Any(), cycleID).Return([]*models.CalibrationSession{session}, nil)

	got, err := s.service.ListCalibrationSessions(s.ctx, cycleID)

	s.Require().NoError(err)
	s.Equal([]*models.CalibrationSession{session}, got)
}
