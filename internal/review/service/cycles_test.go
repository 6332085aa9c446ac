package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"calibra/internal/review/models"
	id "calibra/pkg/domain"
	dErrors "calibra/pkg/domain-errors"
	"calibra/pkg/platform/audit"
	"calibra/pkg/platform/sentinel"
)

func (s *ServiceSuite) TestCreateReviewCycle() {
	s.Run("creates a draft cycle", func() {
		var saved *models.ReviewCycle
		s.cycles.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c *models.ReviewCycle) error {
				saved = c
				return nil
			})

		cycle, err := s.service.CreateReviewCycle(s.ctx, CreateCycleInput{
			Name:      "2025 Annual",
			Year:      2025,
			Deadlines: s.deadlines(),
			StartDate: s.now,
		})

		s.Require().NoError(err)
		s.Same(saved, cycle)
		s.Equal(models.CycleStatusDraft, cycle.Status)
		s.Nil(cycle.EndDate)
		s.Equal(s.now, cycle.CreatedAt)
		s.Equal([]string{string(audit.EventReviewCycleCreated)}, s.eventActions())
		s.Equal("req-123", s.events[0].RequestID)
	})

	s.Run("rejects unordered deadlines before saving", func() {
		d := s.deadlines()
		d.Calibration = d.ManagerEvaluation

		_, err := s.service.CreateReviewCycle(s.ctx, CreateCycleInput{Name: "x", Year: 2025, Deadlines: d, StartDate: s.now})

		s.ErrorIs(err, models.ErrInvalidDeadlineOrder)
	})

	s.Run("rejects empty name", func() {
		_, err := s.service.CreateReviewCycle(s.ctx, CreateCycleInput{Name: "  ", Year: 2025, Deadlines: s.deadlines(), StartDate: s.now})

		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

func (s *ServiceSuite) TestStartReviewCycle() {
	s.Run("starts a draft cycle when none is active", func() {
		cycle := s.cycle(models.CycleStatusDraft)
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.cycles.EXPECT().FindActive(gomock.Any()).Return(nil, sentinel.ErrNotFound)
		s.cycles.EXPECT().Save(gomock.Any(), cycle).Return(nil)

		got, err := s.service.StartReviewCycle(s.ctx, cycle.ID)

		s.Require().NoError(err)
		s.Equal(models.CycleStatusActive, got.Status)
		s.Equal([]string{string(audit.EventReviewCycleStarted)}, s.eventActions())
		s.Equal(cycle.ID, s.events[0].CycleID)
	})

	s.Run("another active cycle blocks the start", func() {
		cycle := s.cycle(models.CycleStatusDraft)
		other := s.cycle(models.CycleStatusActive)
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.cycles.EXPECT().FindActive(gomock.Any()).Return(other, nil)

		_, err := s.service.StartReviewCycle(s.ctx, cycle.ID)

		s.requireCode(err, dErrors.CodeConflict, "Another review cycle is already active")
		s.Equal(models.CycleStatusDraft, cycle.Status)
	})

	s.Run("non-draft cycle reports the state error", func() {
		cycle := s.cycle(models.CycleStatusCompleted)
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.cycles.EXPECT().FindActive(gomock.Any()).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.StartReviewCycle(s.ctx, cycle.ID)

		s.ErrorIs(err, models.ErrInvalidReviewCycleState)
		s.EqualError(err, "Cannot start review cycle from COMPLETED status. Must be DRAFT")
	})

	s.Run("unique violation on save maps to conflict", func() {
		cycle := s.cycle(models.CycleStatusDraft)
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.cycles.EXPECT().FindActive(gomock.Any()).Return(nil, sentinel.ErrNotFound)
		s.cycles.EXPECT().Save(gomock.Any(), cycle).Return(sentinel.ErrConflict)

		_, err := s.service.StartReviewCycle(s.ctx, cycle.ID)

		s.requireCode(err, dErrors.CodeConflict, "Another review cycle is already active")
		s.ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("active lookup failure propagates", func() {
		cycle := s.cycle(models.CycleStatusDraft)
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.cycles.EXPECT().FindActive(gomock.Any()).Return(nil, errStoreDown)

		_, err := s.service.StartReviewCycle(s.ctx, cycle.ID)

		s.Equal(errStoreDown, err)
	})

	s.Run("unknown cycle", func() {
		cycleID := id.CycleID(uuid.New())
		s.cycles.EXPECT().FindByID(gomock.Any(), cycleID).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.StartReviewCycle(s.ctx, cycleID)

		s.requireNotFound(err, "Review cycle with ID "+cycleID.String()+" not found")
	})
}

func (s *ServiceSuite) TestCycleLifecycle() {
	cycle := s.cycle(models.CycleStatusDraft)
	s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil).AnyTimes()
	s.cycles.EXPECT().FindActive(gomock.Any()).Return(nil, sentinel.ErrNotFound).AnyTimes()
	s.cycles.EXPECT().Save(gomock.Any(), cycle).Return(nil).Times(3)

	_, err := s.service.StartReviewCycle(s.ctx, cycle.ID)
	s.Require().NoError(err)
	_, err = s.service.EnterCalibration(s.ctx, cycle.ID)
	s.Require().NoError(err)
	got, err := s.service.CompleteReviewCycle(s.ctx, cycle.ID)
	s.Require().NoError(err)

	s.Equal(models.CycleStatusCompleted, got.Status)
	s.Require().NotNil(got.EndDate)
	s.Equal(s.now, *got.EndDate)
	s.Equal([]string{
		string(audit.EventReviewCycleStarted),
		string(audit.EventCalibrationEntered),
		string(audit.EventReviewCycleCompleted),
	}, s.eventActions())

	_, err = s.service.StartReviewCycle(s.ctx, cycle.ID)
	s.ErrorIs(err, models.ErrInvalidReviewCycleState)
}

func (s *ServiceSuite) TestTransitionsFromWrongState() {
	s.Run("enter calibration from draft", func() {
		cycle := s.cycle(models.CycleStatusDraft)
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)

		_, err := s.service.EnterCalibration(s.ctx, cycle.ID)

		s.EqualError(err, "Cannot enter calibration from DRAFT status. Must be ACTIVE")
	})

	s.Run("complete from active", func() {
		cycle := s.cycle(models.CycleStatusActive)
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)

		_, err := s.service.CompleteReviewCycle(s.ctx, cycle.ID)

		s.EqualError(err, "Cannot complete review cycle from ACTIVE status. Must be CALIBRATION")
		s.Nil(cycle.EndDate)
	})
}

func (s *ServiceSuite) TestGetActiveCycle() {
	s.Run("returns the active cycle", func() {
		cycle := s.cycle(models.CycleStatusActive)
		s.cycles.EXPECT().FindActive(gomock.Any()).Return(cycle, nil)

		got, err := s.service.GetActiveCycle(s.ctx)

		s.Require().NoError(err)
		s.Same(cycle, got)
	})

	s.Run("none active", func() {
		s.cycles.EXPECT().FindActive(gomock.Any()).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.GetActiveCycle(s.ctx)

		s.requireNotFound(err, "No active review cycle")
	})
}

func (s *ServiceSuite) TestDeleteReviewCycle() {
	s.Run("draft cycle is deleted", func() {
		cycle := s.cycle(models.CycleStatusDraft)
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.cycles.EXPECT().Delete(gomock.Any(), cycle.ID).Return(nil)

		s.Require().NoError(s.service.DeleteReviewCycle(s.ctx, cycle.ID))
		s.Equal([]string{string(audit.EventReviewCycleDeleted)}, s.eventActions())
	})

	s.Run("started cycle is kept", func() {
		cycle := s.cycle(models.CycleStatusActive)
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)

		err := s.service.DeleteReviewCycle(s.ctx, cycle.ID)

		s.ErrorIs(err, models.ErrInvalidReviewCycleState)
	})
}

func (s *ServiceSuite) TestListCyclesByYear() {
	cycles := []*models.ReviewCycle{s.cycle(models.CycleStatusDraft)}
	s.cycles.EXPECT().FindByYear(gomock.Any(), 2025).Return(cycles, nil)

	got, err := s.service.ListCyclesByYear(s.ctx, 2025)

	s.Require().NoError(err)
	s.Equal(cycles, got)
}

func (s *ServiceSuite) TestGetReviewCycle() {
	cycle := s.cycle(models.CycleStatusCalibration)
	s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)

	got, err := s.service.GetReviewCycle(s.ctx, cycle.ID)

	s.Require().NoError(err)
	s.Same(cycle, got)
}
