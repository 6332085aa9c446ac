package models

import (
	"fmt"
	"strings"
	"time"

	id "calibra/pkg/domain"
	dErrors "calibra/pkg/domain-errors"
)

type AdjustmentStatus string

const (
	AdjustmentPending  AdjustmentStatus = "PENDING"
	AdjustmentApproved AdjustmentStatus = "APPROVED"
	AdjustmentRejected AdjustmentStatus = "REJECTED"
)

// AdjustmentDecision is a reviewer's verdict on a pending request.
type AdjustmentDecision string

const (
	DecisionApprove AdjustmentDecision = "APPROVE"
	DecisionReject  AdjustmentDecision = "REJECT"
)

// ScoreAdjustmentRequest is a manager's request to change a locked final score.
//
// Invariants:
//   - Reason is non-empty
//   - Status leaves PENDING at most once; ReviewedBy/ReviewedAt are set with it
type ScoreAdjustmentRequest struct {
	ID             id.AdjustmentRequestID `json:"id"`
	CycleID        id.CycleID             `json:"cycle_id"`
	EmployeeID     id.UserID              `json:"employee_id"`
	RequesterID    id.UserID              `json:"requester_id"`
	Reason         string                 `json:"reason"`
	Status         AdjustmentStatus       `json:"status"`
	ProposedScores PillarScores           `json:"-"`
	RequestedAt    time.Time              `json:"requested_at"`
	ReviewedBy     *id.UserID             `json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time             `json:"reviewed_at,omitempty"`
	ReviewNote     string                 `json:"review_note,omitempty"`
}

func NewScoreAdjustmentRequest(requestID id.AdjustmentRequestID, cycleID id.CycleID, employeeID, requesterID id.UserID,
	reason string, proposed PillarScores, now time.Time,
) (*ScoreAdjustmentRequest, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "Reason is required for a score adjustment request")
	}
	return &ScoreAdjustmentRequest{
		ID:             requestID,
		CycleID:        cycleID,
		EmployeeID:     employeeID,
		RequesterID:    requesterID,
		Reason:         reason,
		Status:         AdjustmentPending,
		ProposedScores: proposed,
		RequestedAt:    now,
	}, nil
}

func (r *ScoreAdjustmentRequest) IsPending() bool {
	return r.Status == AdjustmentPending
}

func (r *ScoreAdjustmentRequest) CanReview() error {
	if r.Status != AdjustmentPending {
		return invariant(ErrInvalidTransition,
			fmt.Sprintf("Cannot review adjustment request from %s status. Must be %s", r.Status, AdjustmentPending))
	}
	return nil
}

func (r *ScoreAdjustmentRequest) applyReview(status AdjustmentStatus, reviewer id.UserID, note string, now time.Time) {
	at := now
	by := reviewer
	r.Status = status
	r.ReviewedBy = &by
	r.ReviewedAt = &at
	r.ReviewNote = strings.TrimSpace(note)
}

func (r *ScoreAdjustmentRequest) Approve(reviewer id.UserID, note string, now time.Time) error {
	if err := r.CanReview(); err != nil {
		return err
	}
	r.applyReview(AdjustmentApproved, reviewer, note, now)
	return nil
}

func (r *ScoreAdjustmentRequest) Reject(reviewer id.UserID, note string, now time.Time) error {
	if err := r.CanReview(); err != nil {
		return err
	}
	r.applyReview(AdjustmentRejected, reviewer, note, now)
	return nil
}
