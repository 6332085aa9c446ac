package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"calibra/internal/review/models"
	id "calibra/pkg/domain"
	dErrors "calibra/pkg/domain-errors"
	"calibra/pkg/platform/audit"
	"calibra/pkg/platform/sentinel"
)

func (s *ServiceSuite) TestRequestScoreAdjustment() {
	manager := user("Manager", id.UserID{})
	employee := user("Employee", manager.ID)
	input := func(cycleID id.CycleID) RequestAdjustmentInput {
		return RequestAdjustmentInput{
			CycleID:        cycleID,
			EmployeeID:     employee.ID,
			Reason:         "Delivered the migration after calibration closed",
			ProposedScores: pillars(4),
		}
	}

	s.Run("direct manager files a request against a locked score", func() {
		cycle := s.cycle(models.CycleStatusCompleted)
		score := s.finalScore(employee.ID, cycle.ID, 3.0, true)
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.scores.EXPECT().FindByUserAndCycle(gomock.Any(), employee.ID, cycle.ID).Return(score, nil)
		s.users.EXPECT().FindByID(gomock.Any(), employee.ID).Return(employee, nil)

		var saved *models.ScoreAdjustmentRequest
		s.adjustments.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, r *models.ScoreAdjustmentRequest) error {
				saved = r
				return nil
			})

		result, err := s.service.RequestScoreAdjustment(s.ctx, manager.ID, input(cycle.ID))

		s.Require().NoError(err)
		s.Require().NotNil(saved)
		s.Equal(models.AdjustmentPending, saved.Status)
		s.Equal(manager.ID, saved.RequesterID)
		s.Equal(s.now, saved.RequestedAt)
		s.Equal(pillars(4), saved.ProposedScores.ToObject())

		s.Equal(saved.ID, result.ID)
		s.Equal("Employee", result.EmployeeName)
		s.Equal(models.AdjustmentPending, result.Status)
		s.Equal([]string{string(audit.EventAdjustmentRequested)}, s.eventActions())
		s.Equal(manager.ID, s.events[0].ActorID)
		s.Equal("Delivered the migration after calibration closed", s.events[0].Reason)
	})

	s.Run("unknown cycle", func() {
		cycleID := id.CycleID(uuid.New())
		s.cycles.EXPECT().FindByID(gomock.Any(), cycleID).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.RequestScoreAdjustment(s.ctx, manager.ID, input(cycleID))

		s.requireNotFound(err, "Review cycle with ID "+cycleID.String()+" not found")
	})

	s.Run("missing final score", func() {
		cycle := s.cycle(models.CycleStatusCompleted)
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.scores.EXPECT().FindByUserAndCycle(gomock.Any(), employee.ID, cycle.ID).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.RequestScoreAdjustment(s.ctx, manager.ID, input(cycle.ID))

		s.requireNotFound(err, "Final score not found")
	})

	s.Run("unlocked score is rejected before the employee lookup", func() {
		cycle := s.cycle(models.CycleStatusCalibration)
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.scores.EXPECT().FindByUserAndCycle(gomock.Any(), employee.ID, cycle.ID).
			Return(s.finalScore(employee.ID, cycle.ID, 3.0, false), nil)
		s.adjustments.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

		_, err := s.service.RequestScoreAdjustment(s.ctx, manager.ID, input(cycle.ID))

		s.requireCode(err, dErrors.CodeBadRequest, "Cannot request score adjustment until final scores are locked")
	})

	s.Run("missing employee", func() {
		cycle := s.cycle(models.CycleStatusCompleted)
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.scores.EXPECT().FindByUserAndCycle(gomock.Any(), employee.ID, cycle.ID).
			Return(s.finalScore(employee.ID, cycle.ID, 3.0, true), nil)
		s.users.EXPECT().FindByID(gomock.Any(), employee.ID).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.RequestScoreAdjustment(s.ctx, manager.ID, input(cycle.ID))

		s.requireNotFound(err, "Employee not found")
	})

	s.Run("only the direct manager may request", func() {
		cycle := s.cycle(models.CycleStatusCompleted)
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.scores.EXPECT().FindByUserAndCycle(gomock.Any(), employee.ID, cycle.ID).
			Return(s.finalScore(employee.ID, cycle.ID, 3.0, true), nil)
		s.users.EXPECT().FindByID(gomock.Any(), employee.ID).Return(employee, nil)
		s.adjustments.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

		_, err := s.service.RequestScoreAdjustment(s.ctx, id.UserID(uuid.New()), input(cycle.ID))

		s.requireCode(err, dErrors.CodeForbidden, "You can only request adjustments for your direct reports")
		s.Empty(s.events)
	})

	s.Run("employee without a manager cannot be adjusted by anyone", func() {
		cycle := s.cycle(models.CycleStatusCompleted)
		orphan := user("Orphan", id.UserID{})
		in := input(cycle.ID)
		in.EmployeeID = orphan.ID
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.scores.EXPECT().FindByUserAndCycle(gomock.Any(), orphan.ID, cycle.ID).
			Return(s.finalScore(orphan.ID, cycle.ID, 3.0, true), nil)
		s.users.EXPECT().FindByID(gomock.Any(), orphan.ID).Return(orphan, nil)

		_, err := s.service.RequestScoreAdjustment(s.ctx, id.UserID{}, in)

		s.requireCode(err, dErrors.CodeForbidden, "You can only request adjustments for your direct reports")
	})

	s.Run("out of range proposal is rejected after authorization", func() {
		cycle := s.cycle(models.CycleStatusCompleted)
		in := input(cycle.ID)
		in.ProposedScores.Direction = 5
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.scores.EXPECT().FindByUserAndCycle(gomock.Any(), employee.ID, cycle.ID).
			Return(s.finalScore(employee.ID, cycle.ID, 3.0, true), nil)
		s.users.EXPECT().FindByID(gomock.Any(), employee.ID).Return(employee, nil)

		_, err := s.service.RequestScoreAdjustment(s.ctx, manager.ID, in)

		s.ErrorIs(err, models.ErrInvalidPillarScore)
	})

	s.Run("blank reason", func() {
		cycle := s.cycle(models.CycleStatusCompleted)
		in := input(cycle.ID)
		in.Reason = "   "
		s.cycles.EXPECT().FindByID(gomock.Any(), cycle.ID).Return(cycle, nil)
		s.scores.EXPECT().FindByUserAndCycle(gomock.Any(), employee.ID, cycle.ID).
			Return(s.finalScore(employee.ID, cycle.ID, 3.0, true), nil)
		s.users.EXPECT().FindByID(gomock.Any(), employee.ID).Return(employee, nil)

		_, err := s.service.RequestScoreAdjustment(s.ctx, manager.ID, in)

		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestReviewScoreAdjustment() {
	employeeID := id.UserID(uuid.New())
	reviewerID := id.UserID(uuid.New())
	pending := func(cycleID id.CycleID) *models.ScoreAdjustmentRequest {
		req, err := models.NewScoreAdjustmentRequest(id.AdjustmentRequestID(uuid.New()), cycleID, employeeID,
			id.UserID(uuid.New()), "late impact", models.MustPillarScores(pillars(4)), s.now.Add(-24*time.Hour))
		s.Require().NoError(err)
		return req
	}

	s.Run("approval rewrites the score and keeps it locked", func() {
		cycleID := id.CycleID(uuid.New())
		req := pending(cycleID)
		score := s.finalScore(employeeID, cycleID, 3.0, true)
		s.adjustments.EXPECT().FindByID(gomock.Any(), req.ID).Return(req, nil)
		s.scores.EXPECT().FindByUserAndCycle(gomock.Any(), employeeID, cycleID).Return(score, nil)
		gomock.InOrder(
			s.scores.EXPECT().Save(gomock.Any(), score).Return(nil),
			s.adjustments.EXPECT().Save(gomock.Any(), req).Return(nil),
		)

		got, err := s.service.ReviewScoreAdjustment(s.ctx, ReviewAdjustmentInput{
			RequestID:     req.ID,
			ReviewerID:    reviewerID,
			Decision:      models.DecisionApprove,
			WeightedScore: 3.5,
			Note:          "agreed",
		})

		s.Require().NoError(err)
		s.Equal(models.AdjustmentApproved, got.Status)
		s.Equal(reviewerID, *got.ReviewedBy)
		s.True(score.Locked)
		s.Equal(s.now, *score.LockedAt)
		s.Equal(pillars(4), score.PillarScores.ToObject())
		s.InDelta(87.5, score.PercentageScore(), 1e-9)
		s.Equal(models.BonusTierExceeds, score.BonusTier())
		s.Equal([]string{string(audit.EventAdjustmentApproved)}, s.eventActions())
		s.Equal("APPROVED", s.events[0].Decision)
	})

	s.Run("approval keeps an administrator unlock in place", func() {
		cycleID := id.CycleID(uuid.New())
		req := pending(cycleID)
		score := s.finalScore(employeeID, cycleID, 3.0, false)
		s.adjustments.EXPECT().FindByID(gomock.Any(), req.ID).Return(req, nil)
		s.scores.EXPECT().FindByUserAndCycle(gomock.Any(), employeeID, cycleID).Return(score, nil)
		s.scores.EXPECT().Save(gomock.Any(), score).Return(nil)
		s.adjustments.EXPECT().Save(gomock.Any(), req).Return(nil)

		got, err := s.service.ReviewScoreAdjustment(s.ctx, ReviewAdjustmentInput{
			RequestID:     req.ID,
			ReviewerID:    reviewerID,
			Decision:      models.DecisionApprove,
			WeightedScore: 3.5,
		})

		s.Require().NoError(err)
		s.Equal(models.AdjustmentApproved, got.Status)
		s.False(score.Locked)
		s.Nil(score.LockedAt)
		s.Equal(pillars(4), score.PillarScores.ToObject())
		s.InDelta(3.5, score.WeightedScore.Value(), 1e-9)
	})

	s.Run("rejection leaves the score alone", func() {
		req := pending(id.CycleID(uuid.New()))
		s.adjustments.EXPECT().FindByID(gomock.Any(), req.ID).Return(req, nil)
		s.adjustments.EXPECT().Save(gomock.Any(), req).Return(nil)

		got, err := s.service.ReviewScoreAdjustment(s.ctx, ReviewAdjustmentInput{
			RequestID:  req.ID,
			ReviewerID: reviewerID,
			Decision:   models.DecisionReject,
			Note:       "no new evidence",
		})

		s.Require().NoError(err)
		s.Equal(models.AdjustmentRejected, got.Status)
		s.Equal("no new evidence", got.ReviewNote)
		s.Equal([]string{string(audit.EventAdjustmentRejected)}, s.eventActions())
	})

	s.Run("already reviewed request", func() {
		req := pending(id.CycleID(uuid.New()))
		s.Require().NoError(req.Reject(reviewerID, "", s.now))
		s.adjustments.EXPECT().FindByID(gomock.Any(), req.ID).Return(req, nil)

		_, err := s.service.ReviewScoreAdjustment(s.ctx, ReviewAdjustmentInput{
			RequestID: req.ID, ReviewerID: reviewerID, Decision: models.DecisionApprove, WeightedScore: 3,
		})

		s.ErrorIs(err, models.ErrInvalidTransition)
	})

	s.Run("unknown decision is rejected before any lookup", func() {
		_, err := s.service.ReviewScoreAdjustment(s.ctx, ReviewAdjustmentInput{
			RequestID: id.AdjustmentRequestID(uuid.New()), Decision: "MAYBE",
		})

		s.requireCode(err, dErrors.CodeValidation, "Decision must be APPROVE or REJECT")
	})

	s.Run("invalid weighted score on approval", func() {
		req := pending(id.CycleID(uuid.New()))
		s.adjustments.EXPECT().FindByID(gomock.Any(), req.ID).Return(req, nil)

		_, err := s.service.ReviewScoreAdjustment(s.ctx, ReviewAdjustmentInput{
			RequestID: req.ID, ReviewerID: reviewerID, Decision: models.DecisionApprove, WeightedScore: 4.5,
		})

		s.ErrorIs(err, models.ErrInvalidWeightedScore)
		s.True(req.IsPending())
	})
}

func (s *ServiceSuite) TestListAdjustments() {
	employeeID := id.UserID(uuid.New())
	stored := []*models.ScoreAdjustmentRequest{{ID: id.AdjustmentRequestID(uuid.New())}}
	s.adjustments.EXPECT().FindPending(gomock.Any()).Return(stored, nil)
	s.adjustments.EXPECT().FindByEmployee(gomock.Any(), employeeID).Return(stored, nil)

	pending, err := s.service.ListPendingAdjustments(s.ctx)
	s.Require().NoError(err)
	s.Equal(stored, pending)

	forEmployee, err := s.service.ListAdjustmentsForEmployee(s.ctx, employeeID)
	s.Require().NoError(err)
	s.Equal(stored, forEmployee)
}
