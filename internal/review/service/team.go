package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"calibra/internal/review/models"
	id "calibra/pkg/domain"
)

// GetTeamReviews reports review progress for each direct report of managerID.
//
// Lookups per employee run concurrently. An absent self-review, evaluation or
// feedback list yields defaults; any store error fails the whole call. Rows
// keep the order of the direct-report lookup.
func (s *Service) GetTeamReviews(ctx context.Context, managerID id.UserID, cycleID id.CycleID) (_ *models.TeamReviewsResult, err error) {
	ctx, span := s.startSpan(ctx, "GetTeamReviews", attribute.String("cycle_id", cycleID.String()))
	defer func() { endSpan(span, err) }()
	if s.metrics != nil {
		defer s.metrics.ObserveTeamAggregation("team_reviews", time.Now())
	}

	if _, err := s.loadCycle(ctx, cycleID); err != nil {
		return nil, err
	}
	reports, err := s.users.FindByManagerID(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return &models.TeamReviewsResult{Reviews: []models.TeamMemberReview{}, Total: 0}, nil
	}

	rows := make([]models.TeamMemberReview, len(reports))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.teamFetchLimit)
	for i, employee := range reports {
		rows[i] = models.TeamMemberReview{
			EmployeeID:         employee.ID,
			EmployeeName:       employee.Name,
			EmployeeLevel:      employee.Level.Label(),
			SelfReviewStatus:   models.ReviewNotStarted,
			PeerFeedbackStatus: models.PeerFeedbackPending,
			ManagerEvalStatus:  models.ReviewNotStarted,
		}
		row := &rows[i]

		g.Go(func() error {
			review, err := s.selfReviews.FindByUserAndCycle(gctx, employee.ID, cycleID)
			if review, err = optional(review, err); err != nil || review == nil {
				return err
			}
			row.SelfReviewStatus = review.Status
			row.SelfReviewSubmittedAt = review.SubmittedAt
			return nil
		})
		g.Go(func() error {
			feedback, err := s.peerReviews.FindByRevieweeAndCycle(gctx, employee.ID, cycleID)
			if err != nil {
				return err
			}
			row.PeerFeedbackCount = len(feedback)
			row.PeerFeedbackStatus = models.PeerFeedbackStatusFor(len(feedback))
			return nil
		})
		g.Go(func() error {
			eval, err := s.managerEval.FindByEmployeeAndCycle(gctx, employee.ID, cycleID)
			if eval, err = optional(eval, err); err != nil || eval == nil {
				return err
			}
			row.ManagerEvalStatus = eval.Status
			row.ManagerEvalSubmittedAt = eval.SubmittedAt
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.TeamReviewsResult{Reviews: rows, Total: len(rows)}, nil
}

// GetTeamFinalScores lists the final score of each direct report of managerID.
// A report without a final score gets a zero row with tier BELOW.
func (s *Service) GetTeamFinalScores(ctx context.Context, managerID id.UserID, cycleID id.CycleID) (_ *models.TeamFinalScoresResult, err error) {
	ctx, span := s.startSpan(ctx, "GetTeamFinalScores", attribute.String("cycle_id", cycleID.String()))
	defer func() { endSpan(span, err) }()
	if s.metrics != nil {
		defer s.metrics.ObserveTeamAggregation("team_final_scores", time.Now())
	}

	if _, err := s.loadCycle(ctx, cycleID); err != nil {
		return nil, err
	}
	reports, err := s.users.FindByManagerID(ctx, managerID)
	if err != nil {
		return nil, err
	}
	result := &models.TeamFinalScoresResult{CycleID: cycleID, TeamScores: []models.TeamMemberScore{}}
	if len(reports) == 0 {
		return result, nil
	}

	rows := make([]models.TeamMemberScore, len(reports))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.teamFetchLimit)
	for i, employee := range reports {
		g.Go(func() error {
			score, err := s.finalScores.FindByUserAndCycle(gctx, employee.ID, cycleID)
			if score, err = optional(score, err); err != nil {
				return err
			}
			rows[i] = models.NewTeamMemberScore(*employee, score)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.TeamScores = rows
	return result, nil
}
