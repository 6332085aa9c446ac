package service

import (
	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"calibra/internal/review/models"
	id "calibra/pkg/domain"
	"calibra/pkg/platform/audit"
	"calibra/pkg/platform/sentinel"
)

func (s *ServiceSuite) TestGetFinalScore() {
	s.Run("shapes the score with cycle and employee", func() {
		cycle := s.cycle(models.CycleStatusCompleted)
		employee := user("Ada", id.UserID(uuid.New()))
		score := s.finalScore(employee.ID, cycle.ID, 3.2, true)
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.scores.EXPECT().FindByUserAndCycle(gomock.Any(), employee.ID, cycle.ID).Return(score, nil)
		s.users.EXPECT().FindByID(gomock.Any(), employee.ID).Return(employee, nil)

		view, err := s.service.GetFinalScore(s.ctx, employee.ID, cycle.ID)

		s.Require().NoError(err)
		s.Equal("2025 Annual", view.CycleName)
		s.Equal("Ada", view.EmployeeName)
		s.Equal("SENIOR", view.EmployeeLevel)
		s.InDelta(80.0, view.PercentageScore, 1e-9)
		s.Equal(models.BonusTierMeets, view.BonusTier)
		s.True(view.Locked)
	})

	s.Run("missing employee renders as unknown", func() {
		cycle := s.cycle(models.CycleStatusCompleted)
		employeeID := id.UserID(uuid.New())
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.scores.EXPECT().FindByUserAndCycle(gomock.Any(), employeeID, cycle.ID).
			Return(s.finalScore(employeeID, cycle.ID, 2.0, false), nil)
		s.users.EXPECT().FindByID(gomock.Any(), employeeID).Return(nil, sentinel.ErrNotFound)

		view, err := s.service.GetFinalScore(s.ctx, employeeID, cycle.ID)

		s.Require().NoError(err)
		s.Equal(models.UnknownLabel, view.EmployeeName)
		s.Equal(models.UnknownLabel, view.EmployeeLevel)
	})

	s.Run("missing score", func() {
		cycle := s.cycle(models.CycleStatusCompleted)
		employeeID := id.UserID(uuid.New())
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.scores.EXPECT().FindByUserAndCycle(gomock.Any(), employeeID, cycle.ID).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.GetFinalScore(s.ctx, employeeID, cycle.ID)

		s.requireNotFound(err, "Final score not found")
	})

	s.Run("directory failure propagates", func() {
		cycle := s.cycle(models.CycleStatusCompleted)
		employeeID := id.UserID(uuid.New())
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.scores.EXPECT().FindByUserAndCycle(gomock.Any(), employeeID, cycle.ID).
			Return(s.finalScore(employeeID, cycle.ID, 2.0, false), nil)
		s.users.EXPECT().FindByID(gomock.Any(), employeeID).Return(nil, errStoreDown)

		_, err := s.service.GetFinalScore(s.ctx, employeeID, cycle.ID)

		s.Equal(errStoreDown, err)
	})
}

func (s *ServiceSuite) TestLockAndUnlock() {
	s.Run("lock saves and audits once", func() {
		cycleID := id.CycleID(uuid.New())
		employeeID := id.UserID(uuid.New())
		score := s.finalScore(employeeID, cycleID, 3.0, false)
		s.scores.EXPECT().FindByUserAndCycle(gomock.Any(), employeeID, cycleID).Return(score, nil)
		s.scores.EXPECT().Save(gomock.Any(), score).Return(nil)

		got, err := s.service.LockFinalScore(s.ctx, employeeID, cycleID)

		s.Require().NoError(err)
		s.True(got.Locked)
		s.Equal(s.now, *got.LockedAt)
		s.Equal([]string{string(audit.EventFinalScoreLocked)}, s.eventActions())
		s.Equal(audit.CategoryCompliance, audit.EventFinalScoreLocked.Category())
	})

	s.Run("locking a locked score is a no-op", func() {
		cycleID := id.CycleID(uuid.New())
		employeeID := id.UserID(uuid.New())
		score := s.finalScore(employeeID, cycleID, 3.0, true)
		lockedAt := *score.LockedAt
		s.scores.EXPECT().FindByUserAndCycle(gomock.Any(), employeeID, cycleID).Return(score, nil)

		got, err := s.service.LockFinalScore(s.ctx, employeeID, cycleID)

		s.Require().NoError(err)
		s.Equal(lockedAt, *got.LockedAt)
		s.Empty(s.events)
	})

	s.Run("unlock clears the lock", func() {
		cycleID := id.CycleID(uuid.New())
		employeeID := id.UserID(uuid.New())
		score := s.finalScore(employeeID, cycleID, 3.0, true)
		s.scores.EXPECT().FindByUserAndCycle(gomock.Any(), employeeID, cycleID).Return(score, nil)
		s.scores.EXPECT().Save(gomock.Any(), score).Return(nil)

		got, err := s.service.UnlockFinalScore(s.ctx, employeeID, cycleID)

		s.Require().NoError(err)
		s.False(got.Locked)
		s.Nil(got.LockedAt)
		s.Equal([]string{string(audit.EventFinalScoreUnlocked)}, s.eventActions())
	})
}

func (s *ServiceSuite) TestMarkFeedbackDelivered() {
	cycleID := id.CycleID(uuid.New())
	employeeID := id.UserID(uuid.New())
	managerID := id.UserID(uuid.New())
	score := s.finalScore(employeeID, cycleID, 3.0, true)
	s.scores.EXPECT().FindByUserAndCycle(gomock.Any(), employeeID, cycleID).Return(score, nil).Times(2)
	s.scores.EXPECT().Save(gomock.Any(), score).Return(nil).Times(2)

	notes := "discussed growth plan"
	_, err := s.service.MarkFeedbackDelivered(s.ctx, employeeID, cycleID, managerID, &notes)
	s.Require().NoError(err)

	other := id.UserID(uuid.New())
	got, err := s.service.MarkFeedbackDelivered(s.ctx, employeeID, cycleID, other, nil)
	s.Require().NoError(err)

	s.True(got.FeedbackDelivered)
	s.Equal(other, *got.DeliveredBy)
	s.Equal(notes, *got.FeedbackNotes)
	s.Equal(s.now, *got.FeedbackDeliveredAt)
	s.Len(s.events, 2)
}

func (s *ServiceSuite) TestListFinalScoresByBonusTier() {
	cycle := s.cycle(models.CycleStatusCompleted)
	scores := []*models.FinalScore{s.finalScore(id.UserID(uuid.New()), cycle.ID, 3.6, true)}
	s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
	s.scores.EXPECT().FindByBonusTier(gomock.Any(), cycle.ID, models.BonusTierExceeds).Return(scores, nil)

	got, err := s.service.ListFinalScoresByBonusTier(s.ctx, cycle.ID, models.BonusTierExceeds)

	s.Require().NoError(err)
	s.Equal(scores, got)
}
