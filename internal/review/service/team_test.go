package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/mock/gomock"

	"calibra/internal/review/models"
	id "calibra/pkg/domain"
	"calibra/pkg/platform/sentinel"
)

func (s *ServiceSuite) TestGetTeamReviews() {
	managerID := id.UserID(uuid.New())

	s.Run("empty team short-circuits", func() {
		cycle := s.cycle(models.CycleStatusActive)
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.users.EXPECT().FindByManagerID(gomock.Any(), managerID).Return(nil, nil)

		result, err := s.service.GetTeamReviews(s.ctx, managerID, cycle.ID)

		s.Require().NoError(err)
		s.NotNil(result.Reviews)
		s.Empty(result.Reviews)
		s.Equal(0, result.Total)
	})

	s.Run("unknown cycle", func() {
		cycleID := id.CycleID(uuid.New())
		s.cycles.EXPECT().FindByID(gomock.Any(), cycleID).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.GetTeamReviews(s.ctx, managerID, cycleID)

		s.requireNotFound(err, "Review cycle with ID "+cycleID.String()+" not found")
	})

	s.Run("fills defaults and keeps directory order", func() {
		cycle := s.cycle(models.CycleStatusActive)
		first := user("First", managerID)
		second := user("Second", managerID)
		second.Level = ""
		submitted := s.now.Add(-time.Hour)

		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.users.EXPECT().FindByManagerID(gomock.Any(), managerID).Return([]*models.User{first, second}, nil)

		s.selfReviews.EXPECT().FindByUserAndCycle(gomock.Any(), first.ID, cycle.ID).
			Return(&models.SelfReview{Status: models.ReviewSubmitted, SubmittedAt: &submitted}, nil)
		s.peerFeedback.EXPECT().FindByRevieweeAndCycle(gomock.Any(), first.ID, cycle.ID).
			Return([]*models.PeerFeedback{{}, {}, {}}, nil)
		s.managerEval.EXPECT().FindByEmployeeAndCycle(gomock.Any(), first.ID, cycle.ID).
			Return(&models.ManagerEvaluation{Status: models.ReviewDraft}, nil)

		s.selfReviews.EXPECT().FindByUserAndCycle(gomock.Any(), second.ID, cycle.ID).Return(nil, sentinel.ErrNotFound)
		s.peerFeedback.EXPECT().FindByRevieweeAndCycle(gomock.Any(), second.ID, cycle.ID).
			Return([]*models.PeerFeedback{{}}, nil)
		s.managerEval.EXPECT().FindByEmployeeAndCycle(gomock.Any(), second.ID, cycle.ID).Return(nil, sentinel.ErrNotFound)

		result, err := s.service.GetTeamReviews(s.ctx, managerID, cycle.ID)

		s.Require().NoError(err)
		s.Equal(2, result.Total)
		s.Require().Len(result.Reviews, 2)

		a := result.Reviews[0]
		s.Equal(first.ID, a.EmployeeID)
		s.Equal("SENIOR", a.EmployeeLevel)
		s.Equal(models.ReviewSubmitted, a.SelfReviewStatus)
		s.Equal(&submitted, a.SelfReviewSubmittedAt)
		s.Equal(3, a.PeerFeedbackCount)
		s.Equal(models.PeerFeedbackComplete, a.PeerFeedbackStatus)
		s.Equal(models.ReviewDraft, a.ManagerEvalStatus)

		b := result.Reviews[1]
		s.Equal(second.ID, b.EmployeeID)
		s.Equal(models.UnknownLabel, b.EmployeeLevel)
		s.Equal(models.ReviewNotStarted, b.SelfReviewStatus)
		s.Equal(1, b.PeerFeedbackCount)
		s.Equal(models.PeerFeedbackPending, b.PeerFeedbackStatus)
		s.Equal(models.ReviewNotStarted, b.ManagerEvalStatus)

		s.Equal(1, testutil.CollectAndCount(s.service.metrics.TeamAggregation))
	})

	s.Run("any failing lookup fails the request", func() {
		cycle := s.cycle(models.CycleStatusActive)
		member := user("Member", managerID)
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.users.EXPECT().FindByManagerID(gomock.Any(), managerID).Return([]*models.User{member}, nil)
		s.selfReviews.EXPECT().FindByUserAndCycle(gomock.Any(), member.ID, cycle.ID).Return(nil, sentinel.ErrNotFound).AnyTimes()
		s.peerFeedback.EXPECT().FindByRevieweeAndCycle(gomock.Any(), member.ID, cycle.ID).Return(nil, errStoreDown)
		s.managerEval.EXPECT().FindByEmployeeAndCycle(gomock.Any(), member.ID, cycle.ID).Return(nil, sentinel.ErrNotFound).AnyTimes()

		result, err := s.service.GetTeamReviews(s.ctx, managerID, cycle.ID)

		s.Nil(result)
		s.ErrorIs(err, errStoreDown)
	})
}

func (s *ServiceSuite) TestGetTeamFinalScores() {
	managerID := id.UserID(uuid.New())

	s.Run("empty team short-circuits", func() {
		cycle := s.cycle(models.CycleStatusCompleted)
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.users.EXPECT().FindByManagerID(gomock.Any(), managerID).Return([]*models.User{}, nil)

		result, err := s.service.GetTeamFinalScores(s.ctx, managerID, cycle.ID)

		s.Require().NoError(err)
		s.Equal(cycle.ID, result.CycleID)
		s.NotNil(result.TeamScores)
		s.Empty(result.TeamScores)
	})

	s.Run("missing scores get zero rows", func() {
		cycle := s.cycle(models.CycleStatusCompleted)
		scored := user("Scored", managerID)
		unscored := user("Unscored", managerID)
		score := s.finalScore(scored.ID, cycle.ID, 3.5, true)
		score.MarkFeedbackDelivered(managerID, nil, s.now)

		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.users.EXPECT().FindByManagerID(gomock.Any(), managerID).Return([]*models.User{unscored, scored}, nil)
		s.scores.EXPECT().FindByUserAndCycle(gomock.Any(), scored.ID, cycle.ID).Return(score, nil)
		s.scores.EXPECT().FindByUserAndCycle(gomock.Any(), unscored.ID, cycle.ID).Return(nil, sentinel.ErrNotFound)

		result, err := s.service.GetTeamFinalScores(s.ctx, managerID, cycle.ID)

		s.Require().NoError(err)
		s.Require().Len(result.TeamScores, 2)

		zero := result.TeamScores[0]
		s.Equal(unscored.ID, zero.EmployeeID)
		s.Zero(zero.WeightedScore)
		s.Zero(zero.PercentageScore)
		s.Equal(models.BonusTierBelow, zero.BonusTier)
		s.False(zero.FeedbackDelivered)

		row := result.TeamScores[1]
		s.Equal(scored.ID, row.EmployeeID)
		s.InDelta(3.5, row.WeightedScore, 1e-9)
		s.InDelta(87.5, row.PercentageScore, 1e-9)
		s.Equal(models.BonusTierExceeds, row.BonusTier)
		s.True(row.FeedbackDelivered)
		s.True(row.Locked)
	})

	s.Run("directory failure propagates", func() {
		cycle := s.cycle(models.CycleStatusCompleted)
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.users.EXPECT().FindByManagerID(gomock.Any(), managerID).Return(nil, errStoreDown)

		_, err := s.service.GetTeamFinalScores(s.ctx, managerID, cycle.ID)

		s.Equal(errStoreDown, err)
	})
}
