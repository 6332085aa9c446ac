package models

import (
	"time"

	id "calibra/pkg/domain"
)

// User is the directory view of an employee.
type User struct {
	ID        id.UserID     `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email,omitempty"`
	Level     EngineerLevel `json:"level,omitempty"`
	ManagerID id.UserID     `json:"manager_id"`
}

func (u *User) HasManager() bool {
	return !u.ManagerID.IsNil()
}

// IsDirectReportOf reports whether managerID is this user's recorded manager.
func (u *User) IsDirectReportOf(managerID id.UserID) bool {
	return u.HasManager() && u.ManagerID == managerID
}

// ReviewStatus is the progress of a self-review or manager evaluation.
type ReviewStatus string

const (
	ReviewNotStarted ReviewStatus = "NOT_STARTED"
	ReviewDraft      ReviewStatus = "DRAFT"
	ReviewSubmitted  ReviewStatus = "SUBMITTED"
)

type SelfReview struct {
	ID          id.ReviewID  `json:"id"`
	CycleID     id.CycleID   `json:"cycle_id"`
	UserID      id.UserID    `json:"user_id"`
	Status      ReviewStatus `json:"status"`
	Scores      PillarScores `json:"-"`
	Narrative   string       `json:"narrative,omitempty"`
	SubmittedAt *time.Time   `json:"submitted_at,omitempty"`
}

type PeerFeedback struct {
	ID          id.ReviewID  `json:"id"`
	CycleID     id.CycleID   `json:"cycle_id"`
	RevieweeID  id.UserID    `json:"reviewee_id"`
	ReviewerID  id.UserID    `json:"reviewer_id"`
	Scores      PillarScores `json:"-"`
	Strengths   string       `json:"strengths,omitempty"`
	GrowthAreas string       `json:"growth_areas,omitempty"`
	SubmittedAt time.Time    `json:"submitted_at"`
}

type ManagerEvaluation struct {
	ID          id.ReviewID  `json:"id"`
	CycleID     id.CycleID   `json:"cycle_id"`
	EmployeeID  id.UserID    `json:"employee_id"`
	ManagerID   id.UserID    `json:"manager_id"`
	Status      ReviewStatus `json:"status"`
	Scores      PillarScores `json:"-"`
	Narrative   string       `json:"narrative,omitempty"`
	SubmittedAt *time.Time   `json:"submitted_at,omitempty"`
}
