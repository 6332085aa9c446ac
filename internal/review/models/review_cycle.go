package models

import (
	"fmt"
	"strings"
	"time"

	id "calibra/pkg/domain"
	dErrors "calibra/pkg/domain-errors"
)

// CycleStatus is the lifecycle state of a review cycle.
type CycleStatus string

const (
	CycleStatusDraft       CycleStatus = "DRAFT"
	CycleStatusActive      CycleStatus = "ACTIVE"
	CycleStatusCalibration CycleStatus = "CALIBRATION"
	CycleStatusCompleted   CycleStatus = "COMPLETED"
)

const (
	MinCycleYear = 2000
	MaxCycleYear = 2100
)

// ReviewCycle is the aggregate root for one review period.
//
// Invariants:
//   - Name is non-empty, Year is between 2000 and 2100
//   - Deadlines are strictly ordered (enforced by CycleDeadlines)
//   - Status transitions: DRAFT -> ACTIVE -> CALIBRATION -> COMPLETED, no skips, no reversal
//   - EndDate is nil until COMPLETED and set exactly once
//
// At most one cycle is ACTIVE system-wide. That rule spans aggregates, so the
// service checks it against the store before calling Start.
type ReviewCycle struct {
	ID        id.CycleID     `json:"id"`
	Name      string         `json:"name"`
	Year      int            `json:"year"`
	Status    CycleStatus    `json:"status"`
	Deadlines CycleDeadlines `json:"-"`
	StartDate time.Time      `json:"start_date"`
	EndDate   *time.Time     `json:"end_date,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func NewReviewCycle(cycleID id.CycleID, name string, year int, deadlines CycleDeadlines, startDate, now time.Time) (*ReviewCycle, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "review cycle name cannot be empty")
	}
	if year < MinCycleYear || year > MaxCycleYear {
		return nil, dErrors.New(dErrors.CodeInvariantViolation,
			fmt.Sprintf("review cycle year must be between %d and %d", MinCycleYear, MaxCycleYear))
	}
	return &ReviewCycle{
		ID:        cycleID,
		Name:      name,
		Year:      year,
		Status:    CycleStatusDraft,
		Deadlines: deadlines,
		StartDate: startDate,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (c *ReviewCycle) IsActive() bool {
	return c.Status == CycleStatusActive
}

func (c *ReviewCycle) IsCompleted() bool {
	return c.Status == CycleStatusCompleted
}

func (c *ReviewCycle) requireStatus(action string, required CycleStatus) error {
	if c.Status != required {
		return invariant(ErrInvalidReviewCycleState,
			fmt.Sprintf("Cannot %s from %s status. Must be %s", action, c.Status, required))
	}
	return nil
}

// CanStart checks the DRAFT -> ACTIVE transition.
func (c *ReviewCycle) CanStart() error {
	return c.requireStatus("start review cycle", CycleStatusDraft)
}

// ApplyStart moves the cycle to ACTIVE. Call CanStart first.
func (c *ReviewCycle) ApplyStart(now time.Time) {
	c.Status = CycleStatusActive
	c.UpdatedAt = now
}

// Start validates and applies DRAFT -> ACTIVE.
func (c *ReviewCycle) Start(now time.Time) error {
	if err := c.CanStart(); err != nil {
		return err
	}
	c.ApplyStart(now)
	return nil
}

// Activate is an alias for Start.
func (c *ReviewCycle) Activate(now time.Time) error {
	return c.Start(now)
}

func (c *ReviewCycle) CanEnterCalibration() error {
	return c.requireStatus("enter calibration", CycleStatusActive)
}

func (c *ReviewCycle) ApplyEnterCalibration(now time.Time) {
	c.Status = CycleStatusCalibration
	c.UpdatedAt = now
}

// EnterCalibration validates and applies ACTIVE -> CALIBRATION.
func (c *ReviewCycle) EnterCalibration(now time.Time) error {
	if err := c.CanEnterCalibration(); err != nil {
		return err
	}
	c.ApplyEnterCalibration(now)
	return nil
}

func (c *ReviewCycle) CanComplete() error {
	return c.requireStatus("complete review cycle", CycleStatusCalibration)
}

// ApplyComplete moves the cycle to COMPLETED and records the end date.
func (c *ReviewCycle) ApplyComplete(now time.Time) {
	end := now
	c.Status = CycleStatusCompleted
	c.EndDate = &end
	c.UpdatedAt = now
}

// Complete validates and applies CALIBRATION -> COMPLETED.
func (c *ReviewCycle) Complete(now time.Time) error {
	if err := c.CanComplete(); err != nil {
		return err
	}
	c.ApplyComplete(now)
	return nil
}

// CanDelete allows deletion of cycles that never started.
func (c *ReviewCycle) CanDelete() error {
	return c.requireStatus("delete review cycle", CycleStatusDraft)
}

// HasDeadlinePassed is valid in any status.
func (c *ReviewCycle) HasDeadlinePassed(phase ReviewPhase, now time.Time) bool {
	return c.Deadlines.HasPassedDeadline(phase, now)
}

// CurrentPhase returns the first phase whose deadline has not passed.
// ok is false once every deadline is behind now.
func (c *ReviewCycle) CurrentPhase(now time.Time) (phase ReviewPhase, ok bool) {
	for _, p := range Phases {
		if !c.HasDeadlinePassed(p, now) {
			return p, true
		}
	}
	return "", false
}
