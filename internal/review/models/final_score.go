package models

import (
	"time"

	id "calibra/pkg/domain"
)

// FinalScore is the aggregate holding an employee's official result for a cycle.
//
// Invariants:
//   - PillarScores and WeightedScore change only through UpdateScores, and only while unlocked
//   - LockedAt is set iff Locked is true
//   - PercentageScore and BonusTier are always derived from the current WeightedScore
//   - Feedback delivery is independent of lock state; the last MarkFeedbackDelivered call wins
type FinalScore struct {
	ID                  id.FinalScoreID `json:"id"`
	CycleID             id.CycleID      `json:"cycle_id"`
	UserID              id.UserID       `json:"user_id"`
	PillarScores        PillarScores    `json:"-"`
	WeightedScore       WeightedScore   `json:"-"`
	FinalLevel          EngineerLevel   `json:"final_level,omitempty"`
	PeerAverageScores   *PillarScores   `json:"-"`
	PeerFeedbackCount   int             `json:"peer_feedback_count"`
	Locked              bool            `json:"locked"`
	LockedAt            *time.Time      `json:"locked_at,omitempty"`
	FeedbackDelivered   bool            `json:"feedback_delivered"`
	FeedbackDeliveredAt *time.Time      `json:"feedback_delivered_at,omitempty"`
	DeliveredAt         *time.Time      `json:"delivered_at,omitempty"`
	DeliveredBy         *id.UserID      `json:"delivered_by,omitempty"`
	FeedbackNotes       *string         `json:"feedback_notes,omitempty"`
	CalculatedAt        time.Time       `json:"calculated_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// NewFinalScore creates an unlocked score as produced by the scoring process.
func NewFinalScore(scoreID id.FinalScoreID, cycleID id.CycleID, userID id.UserID,
	pillars PillarScores, weighted WeightedScore, level EngineerLevel, now time.Time,
) *FinalScore {
	return &FinalScore{
		ID:            scoreID,
		CycleID:       cycleID,
		UserID:        userID,
		PillarScores:  pillars,
		WeightedScore: weighted,
		FinalLevel:    level,
		CalculatedAt:  now,
		UpdatedAt:     now,
	}
}

// WithPeerAverages records the externally computed peer averages.
func (f *FinalScore) WithPeerAverages(scores PillarScores, count int) *FinalScore {
	f.PeerAverageScores = &scores
	f.PeerFeedbackCount = count
	return f
}

func (f *FinalScore) PercentageScore() float64 {
	return f.WeightedScore.Percentage()
}

func (f *FinalScore) BonusTier() BonusTier {
	return f.WeightedScore.BonusTier()
}

// Lock is a no-op when already locked.
func (f *FinalScore) Lock(now time.Time) {
	if f.Locked {
		return
	}
	lockedAt := now
	f.Locked = true
	f.LockedAt = &lockedAt
	f.UpdatedAt = now
}

// Unlock is a no-op when already unlocked.
func (f *FinalScore) Unlock(now time.Time) {
	if !f.Locked {
		return
	}
	f.Locked = false
	f.LockedAt = nil
	f.UpdatedAt = now
}

func (f *FinalScore) CanUpdateScores() error {
	if f.Locked {
		return invariant(ErrFinalScoreLocked, "Cannot update scores: final score is locked")
	}
	return nil
}

// UpdateScores replaces pillars and weighted score together.
func (f *FinalScore) UpdateScores(pillars PillarScores, weighted WeightedScore, now time.Time) error {
	if err := f.CanUpdateScores(); err != nil {
		return err
	}
	f.PillarScores = pillars
	f.WeightedScore = weighted
	f.UpdatedAt = now
	return nil
}

// MarkFeedbackDelivered records delivery. A nil notes leaves prior notes untouched.
func (f *FinalScore) MarkFeedbackDelivered(deliveredBy id.UserID, notes *string, now time.Time) {
	at := now
	by := deliveredBy
	f.FeedbackDelivered = true
	f.FeedbackDeliveredAt = &at
	f.DeliveredAt = &at
	f.DeliveredBy = &by
	if notes != nil {
		n := *notes
		f.FeedbackNotes = &n
	}
	f.UpdatedAt = now
}
