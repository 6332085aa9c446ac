package models

import (
	"fmt"
	"strings"
	"time"

	id "calibra/pkg/domain"
	dErrors "calibra/pkg/domain-errors"
	"calibra/pkg/platform/dedupe"
)

type SessionStatus string

const (
	SessionScheduled  SessionStatus = "SCHEDULED"
	SessionInProgress SessionStatus = "IN_PROGRESS"
	SessionCompleted  SessionStatus = "COMPLETED"
)

// CalibrationSession is a meeting where managers align scores within a cycle.
//
// Invariants:
//   - Name is non-empty and ScheduledAt is set
//   - ParticipantIDs holds each user once
//   - Status transitions: SCHEDULED -> IN_PROGRESS -> COMPLETED
type CalibrationSession struct {
	ID             id.CalibrationSessionID `json:"id"`
	CycleID        id.CycleID              `json:"cycle_id"`
	Name           string                  `json:"name"`
	FacilitatorID  id.UserID               `json:"facilitator_id"`
	ParticipantIDs []id.UserID             `json:"participant_ids"`
	ScheduledAt    time.Time               `json:"scheduled_at"`
	Status         SessionStatus           `json:"status"`
	Notes          string                  `json:"notes,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	StartedAt      *time.Time              `json:"started_at,omitempty"`
	CompletedAt    *time.Time              `json:"completed_at,omitempty"`
}

func NewCalibrationSession(sessionID id.CalibrationSessionID, cycleID id.CycleID, name string,
	facilitatorID id.UserID, participantIDs []id.UserID, scheduledAt, now time.Time,
) (*CalibrationSession, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "Calibration session name is required")
	}
	if scheduledAt.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "Calibration session must have a scheduled time")
	}
	return &CalibrationSession{
		ID:             sessionID,
		CycleID:        cycleID,
		Name:           name,
		FacilitatorID:  facilitatorID,
		ParticipantIDs: dedupe.Stable(append([]id.UserID(nil), participantIDs...)),
		ScheduledAt:    scheduledAt,
		Status:         SessionScheduled,
		CreatedAt:      now,
	}, nil
}

func (s *CalibrationSession) requireStatus(action string, required SessionStatus) error {
	if s.Status != required {
		return invariant(ErrInvalidTransition,
			fmt.Sprintf("Cannot %s calibration session from %s status. Must be %s", action, s.Status, required))
	}
	return nil
}

func (s *CalibrationSession) Start(now time.Time) error {
	if err := s.requireStatus("start", SessionScheduled); err != nil {
		return err
	}
	at := now
	s.Status = SessionInProgress
	s.StartedAt = &at
	return nil
}

// Complete closes the session. Empty notes keep any existing notes.
func (s *CalibrationSession) Complete(notes string, now time.Time) error {
	if err := s.requireStatus("complete", SessionInProgress); err != nil {
		return err
	}
	at := now
	s.Status = SessionCompleted
	s.CompletedAt = &at
	if n := strings.TrimSpace(notes); n != "" {
		s.Notes = n
	}
	return nil
}
