package models

import (
	"fmt"
	"time"

	id "calibra/pkg/domain"
	dErrors "calibra/pkg/domain-errors"
)

type NominationStatus string

const (
	NominationPending             NominationStatus = "PENDING"
	NominationAccepted            NominationStatus = "ACCEPTED"
	NominationDeclined            NominationStatus = "DECLINED"
	NominationOverriddenByManager NominationStatus = "OVERRIDDEN_BY_MANAGER"
)

const (
	MinPeerNominations = 3
	MaxPeerNominations = 5
)

// PeerNomination asks a nominee for peer feedback on the nominator.
//
// Invariants:
//   - NominatorID != NomineeID
//   - Status leaves PENDING at most once
type PeerNomination struct {
	ID          id.NominationID  `json:"id"`
	CycleID     id.CycleID       `json:"cycle_id"`
	NominatorID id.UserID        `json:"nominator_id"`
	NomineeID   id.UserID        `json:"nominee_id"`
	Status      NominationStatus `json:"status"`
	NominatedAt time.Time        `json:"nominated_at"`
	RespondedAt *time.Time       `json:"responded_at,omitempty"`
}

func NewPeerNomination(nominationID id.NominationID, cycleID id.CycleID, nominatorID, nomineeID id.UserID, now time.Time) (*PeerNomination, error) {
	if nominatorID == nomineeID {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Cannot nominate yourself for peer feedback")
	}
	return &PeerNomination{
		ID:          nominationID,
		CycleID:     cycleID,
		NominatorID: nominatorID,
		NomineeID:   nomineeID,
		Status:      NominationPending,
		NominatedAt: now,
	}, nil
}

func (n *PeerNomination) IsPending() bool {
	return n.Status == NominationPending
}

func (n *PeerNomination) transition(action string, to NominationStatus, now time.Time) error {
	if n.Status != NominationPending {
		return invariant(ErrInvalidTransition,
			fmt.Sprintf("Cannot %s nomination from %s status. Must be %s", action, n.Status, NominationPending))
	}
	at := now
	n.Status = to
	n.RespondedAt = &at
	return nil
}

func (n *PeerNomination) Accept(now time.Time) error {
	return n.transition("accept", NominationAccepted, now)
}

func (n *PeerNomination) Decline(now time.Time) error {
	return n.transition("decline", NominationDeclined, now)
}

func (n *PeerNomination) OverrideByManager(now time.Time) error {
	return n.transition("override", NominationOverriddenByManager, now)
}
