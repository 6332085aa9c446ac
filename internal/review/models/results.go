package models

import (
	"time"

	id "calibra/pkg/domain"
)

// PeerFeedbackStatus summarizes received peer feedback.
type PeerFeedbackStatus string

const (
	PeerFeedbackPending  PeerFeedbackStatus = "PENDING"
	PeerFeedbackComplete PeerFeedbackStatus = "COMPLETE"
)

// PeerFeedbackStatusFor is COMPLETE once at least the minimum nomination count has responded.
func PeerFeedbackStatusFor(count int) PeerFeedbackStatus {
	if count >= MinPeerNominations {
		return PeerFeedbackComplete
	}
	return PeerFeedbackPending
}

type TeamMemberReview struct {
	EmployeeID             id.UserID          `json:"employee_id"`
	EmployeeName           string             `json:"employee_name"`
	EmployeeLevel          string             `json:"employee_level"`
	SelfReviewStatus       ReviewStatus       `json:"self_review_status"`
	PeerFeedbackCount      int                `json:"peer_feedback_count"`
	PeerFeedbackStatus     PeerFeedbackStatus `json:"peer_feedback_status"`
	ManagerEvalStatus      ReviewStatus       `json:"manager_eval_status"`
	SelfReviewSubmittedAt  *time.Time         `json:"self_review_submitted_at,omitempty"`
	ManagerEvalSubmittedAt *time.Time         `json:"manager_eval_submitted_at,omitempty"`
}

type TeamReviewsResult struct {
	Reviews []TeamMemberReview `json:"reviews"`
	Total   int                `json:"total"`
}

type TeamMemberScore struct {
	EmployeeID        id.UserID `json:"employee_id"`
	EmployeeName      string    `json:"employee_name"`
	Level             string    `json:"level"`
	WeightedScore     float64   `json:"weighted_score"`
	PercentageScore   float64   `json:"percentage_score"`
	BonusTier         BonusTier `json:"bonus_tier"`
	FeedbackDelivered bool      `json:"feedback_delivered"`
	Locked            bool      `json:"locked"`
}

type TeamFinalScoresResult struct {
	CycleID    id.CycleID        `json:"cycle_id"`
	TeamScores []TeamMemberScore `json:"team_scores"`
}

type NominationResult struct {
	ID          id.NominationID  `json:"id"`
	NomineeID   id.UserID        `json:"nominee_id"`
	NomineeName string           `json:"nominee_name"`
	Status      NominationStatus `json:"status"`
	NominatedAt time.Time        `json:"nominated_at"`
}

type FinalScoreView struct {
	ID                  id.FinalScoreID `json:"id"`
	CycleID             id.CycleID      `json:"cycle_id"`
	CycleName           string          `json:"cycle_name"`
	EmployeeID          id.UserID       `json:"employee_id"`
	EmployeeName        string          `json:"employee_name"`
	EmployeeLevel       string          `json:"employee_level"`
	Pillars             Pillars         `json:"pillar_scores"`
	WeightedScore       float64         `json:"weighted_score"`
	PercentageScore     float64         `json:"percentage_score"`
	BonusTier           BonusTier       `json:"bonus_tier"`
	FinalLevel          string          `json:"final_level"`
	PeerAverages        *Pillars        `json:"peer_average_scores,omitempty"`
	PeerFeedbackCount   int             `json:"peer_feedback_count"`
	Locked              bool            `json:"locked"`
	LockedAt            *time.Time      `json:"locked_at,omitempty"`
	FeedbackDelivered   bool            `json:"feedback_delivered"`
	FeedbackDeliveredAt *time.Time      `json:"feedback_delivered_at,omitempty"`
	FeedbackNotes       *string         `json:"feedback_notes,omitempty"`
}

// NewFinalScoreView shapes a score for output. A nil employee renders as "Unknown".
func NewFinalScoreView(score *FinalScore, cycle *ReviewCycle, employee *User) FinalScoreView {
	view := FinalScoreView{
		ID:                  score.ID,
		CycleID:             score.CycleID,
		EmployeeID:          score.UserID,
		EmployeeName:        UnknownLabel,
		EmployeeLevel:       UnknownLabel,
		Pillars:             score.PillarScores.ToObject(),
		WeightedScore:       score.WeightedScore.Value(),
		PercentageScore:     score.PercentageScore(),
		BonusTier:           score.BonusTier(),
		FinalLevel:          score.FinalLevel.Label(),
		PeerFeedbackCount:   score.PeerFeedbackCount,
		Locked:              score.Locked,
		LockedAt:            score.LockedAt,
		FeedbackDelivered:   score.FeedbackDelivered,
		FeedbackDeliveredAt: score.FeedbackDeliveredAt,
		FeedbackNotes:       score.FeedbackNotes,
	}
	if cycle != nil {
		view.CycleName = cycle.Name
	}
	if employee != nil {
		view.EmployeeName = employee.Name
		view.EmployeeLevel = employee.Level.Label()
	}
	if score.PeerAverageScores != nil {
		p := score.PeerAverageScores.ToObject()
		view.PeerAverages = &p
	}
	return view
}

// NewTeamMemberScore shapes a team row. A nil score yields the zero defaults.
func NewTeamMemberScore(employee User, score *FinalScore) TeamMemberScore {
	row := TeamMemberScore{
		EmployeeID:   employee.ID,
		EmployeeName: employee.Name,
		Level:        employee.Level.Label(),
		BonusTier:    BonusTierBelow,
	}
	if score == nil {
		return row
	}
	row.WeightedScore = score.WeightedScore.Value()
	row.PercentageScore = score.PercentageScore()
	row.BonusTier = score.BonusTier()
	row.FeedbackDelivered = score.FeedbackDelivered
	row.Locked = score.Locked
	return row
}

type AdjustmentRequestResult struct {
	ID             id.AdjustmentRequestID `json:"id"`
	CycleID        id.CycleID             `json:"cycle_id"`
	EmployeeID     id.UserID              `json:"employee_id"`
	EmployeeName   string                 `json:"employee_name"`
	RequesterID    id.UserID              `json:"requester_id"`
	Reason         string                 `json:"reason"`
	Status         AdjustmentStatus       `json:"status"`
	ProposedScores Pillars                `json:"proposed_scores"`
	RequestedAt    time.Time              `json:"requested_at"`
}

func NewAdjustmentRequestResult(req *ScoreAdjustmentRequest, employeeName string) AdjustmentRequestResult {
	return AdjustmentRequestResult{
		ID:             req.ID,
		CycleID:        req.CycleID,
		EmployeeID:     req.EmployeeID,
		EmployeeName:   employeeName,
		RequesterID:    req.RequesterID,
		Reason:         req.Reason,
		Status:         req.Status,
		ProposedScores: req.ProposedScores.ToObject(),
		RequestedAt:    req.RequestedAt,
	}
}
