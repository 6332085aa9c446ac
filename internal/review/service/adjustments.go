package service

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"calibra/internal/review/models"
	id "calibra/pkg/domain"
	dErrors "calibra/pkg/domain-errors"
	"calibra/pkg/platform/audit"
	"calibra/pkg/requestcontext"
)

type RequestAdjustmentInput struct {
	CycleID        id.CycleID
	EmployeeID     id.UserID
	Reason         string
	ProposedScores models.Pillars
}

// RequestScoreAdjustment files a request to change a locked final score.
// Only the employee's direct manager may file one.
func (s *Service) RequestScoreAdjustment(ctx context.Context, managerID id.UserID, in RequestAdjustmentInput) (_ *models.AdjustmentRequestResult, err error) {
	ctx, span := s.startSpan(ctx, "RequestScoreAdjustment",
		attribute.String("cycle_id", in.CycleID.String()),
		attribute.String("employee_id", in.EmployeeID.String()),
	)
	defer func() { endSpan(span, err) }()

	if _, err := s.loadCycle(ctx, in.CycleID); err != nil {
		return nil, err
	}

	score, err := s.loadFinalScore(ctx, in.EmployeeID, in.CycleID)
	if err != nil {
		return nil, err
	}
	if !score.Locked {
		return nil, s.reject("request_adjustment", dErrors.New(dErrors.CodeBadRequest,
			"Cannot request score adjustment until final scores are locked"))
	}

	employee, err := s.users.FindByID(ctx, in.EmployeeID)
	if err != nil {
		return nil, notFound(err, "Employee not found")
	}
	if !employee.IsDirectReportOf(managerID) {
		return nil, s.reject("request_adjustment", dErrors.New(dErrors.CodeForbidden,
			"You can only request adjustments for your direct reports"))
	}

	proposed, err := models.NewPillarScores(in.ProposedScores)
	if err != nil {
		return nil, s.reject("request_adjustment", err)
	}
	req, err := models.NewScoreAdjustmentRequest(id.AdjustmentRequestID(uuid.New()), in.CycleID, in.EmployeeID, managerID,
		in.Reason, proposed, requestcontext.Now(ctx))
	if err != nil {
		return nil, s.reject("request_adjustment", err)
	}
	if err := s.adjustments.Save(ctx, req); err != nil {
		return nil, err
	}

	s.logAudit(ctx, audit.EventAdjustmentRequested,
		audit.Event{UserID: in.EmployeeID, ActorID: managerID, CycleID: in.CycleID},
		"adjustment_id", req.ID.String(),
		"reason", req.Reason,
	)
	result := models.NewAdjustmentRequestResult(req, employee.Name)
	return &result, nil
}

type ReviewAdjustmentInput struct {
	RequestID  id.AdjustmentRequestID
	ReviewerID id.UserID
	Decision   models.AdjustmentDecision
	// WeightedScore is the recomputed weighted score for the proposed pillars.
	// Ignored on reject.
	WeightedScore float64
	Note          string
}

// ReviewScoreAdjustment approves or rejects a pending request. Approval
// applies the proposed pillars with the supplied weighted score and leaves
// the final score in the lock state it was found in; both records are saved
// together.
func (s *Service) ReviewScoreAdjustment(ctx context.Context, in ReviewAdjustmentInput) (_ *models.ScoreAdjustmentRequest, err error) {
	ctx, span := s.startSpan(ctx, "ReviewScoreAdjustment", attribute.String("decision", string(in.Decision)))
	defer func() { endSpan(span, err) }()

	if in.Decision != models.DecisionApprove && in.Decision != models.DecisionReject {
		return nil, s.reject("review_adjustment",
			dErrors.New(dErrors.CodeValidation, "Decision must be APPROVE or REJECT"))
	}

	req, err := s.adjustments.FindByID(ctx, in.RequestID)
	if err != nil {
		return nil, notFound(err, "Score adjustment request not found")
	}
	if err := req.CanReview(); err != nil {
		return nil, s.reject("review_adjustment", err)
	}

	now := requestcontext.Now(ctx)
	if in.Decision == models.DecisionReject {
		if err := req.Reject(in.ReviewerID, in.Note, now); err != nil {
			return nil, err
		}
		if err := s.adjustments.Save(ctx, req); err != nil {
			return nil, err
		}
		s.recordDecision(ctx, audit.EventAdjustmentRejected, req)
		return req, nil
	}

	weighted, err := models.NewWeightedScore(in.WeightedScore)
	if err != nil {
		return nil, s.reject("review_adjustment", err)
	}
	score, err := s.loadFinalScore(ctx, req.EmployeeID, req.CycleID)
	if err != nil {
		return nil, err
	}

	wasLocked := score.Locked
	score.Unlock(now)
	if err := score.UpdateScores(req.ProposedScores, weighted, now); err != nil {
		return nil, err
	}
	if wasLocked {
		score.Lock(now)
	}
	if err := req.Approve(in.ReviewerID, in.Note, now); err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.finalScores.Save(ctx, score); err != nil {
			return err
		}
		return s.adjustments.Save(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	s.recordDecision(ctx, audit.EventAdjustmentApproved, req)
	return req, nil
}

func (s *Service) ListPendingAdjustments(ctx context.Context) ([]*models.ScoreAdjustmentRequest, error) {
	return s.adjustments.FindPending(ctx)
}

func (s *Service) ListAdjustmentsForEmployee(ctx context.Context, employeeID id.UserID) ([]*models.ScoreAdjustmentRequest, error) {
	return s.adjustments.FindByEmployee(ctx, employeeID)
}

func (s *Service) recordDecision(ctx context.Context, event audit.AuditEvent, req *models.ScoreAdjustmentRequest) {
	if s.metrics != nil {
		s.metrics.IncAdjustmentDecision(string(req.Status))
	}
	var reviewer id.UserID
	if req.ReviewedBy != nil {
		reviewer = *req.ReviewedBy
	}
	s.logAudit(ctx, event, audit.Event{UserID: req.EmployeeID, ActorID: reviewer, CycleID: req.CycleID},
		"adjustment_id", req.ID.String(),
		"decision", string(req.Status),
		"reason", req.ReviewNote,
	)
}
