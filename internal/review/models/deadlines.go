package models

import "time"

// ReviewPhase names a deadline-bearing phase of a review cycle.
type ReviewPhase string

const (
	PhaseSelfReview        ReviewPhase = "SELF_REVIEW"
	PhasePeerFeedback      ReviewPhase = "PEER_FEEDBACK"
	PhaseManagerEvaluation ReviewPhase = "MANAGER_EVALUATION"
	PhaseCalibration       ReviewPhase = "CALIBRATION"
	PhaseFeedbackDelivery  ReviewPhase = "FEEDBACK_DELIVERY"
)

// Phases lists every phase in deadline order.
var Phases = []ReviewPhase{
	PhaseSelfReview,
	PhasePeerFeedback,
	PhaseManagerEvaluation,
	PhaseCalibration,
	PhaseFeedbackDelivery,
}

// DeadlineDates is the plain form of CycleDeadlines.
type DeadlineDates struct {
	SelfReview        time.Time `json:"self_review"`
	PeerFeedback      time.Time `json:"peer_feedback"`
	ManagerEvaluation time.Time `json:"manager_evaluation"`
	Calibration       time.Time `json:"calibration"`
	FeedbackDelivery  time.Time `json:"feedback_delivery"`
}

// CycleDeadlines holds one deadline per phase.
//
// Invariants:
//   - selfReview < peerFeedback < managerEvaluation < calibration < feedbackDelivery (strict)
type CycleDeadlines struct {
	d DeadlineDates
}

func NewCycleDeadlines(d DeadlineDates) (CycleDeadlines, error) {
	ordered := []time.Time{d.SelfReview, d.PeerFeedback, d.ManagerEvaluation, d.Calibration, d.FeedbackDelivery}
	for i := 1; i < len(ordered); i++ {
		if !ordered[i-1].Before(ordered[i]) {
			return CycleDeadlines{}, invariant(ErrInvalidDeadlineOrder,
				"Deadlines must be in order: selfReview < peerFeedback < managerEvaluation < calibration < feedbackDelivery")
		}
	}
	return CycleDeadlines{d: d}, nil
}

// MustCycleDeadlines panics on invalid input. Use only in tests or with known-good values.
func MustCycleDeadlines(d DeadlineDates) CycleDeadlines {
	c, err := NewCycleDeadlines(d)
	if err != nil {
		panic(err)
	}
	return c
}

// For returns the deadline of a phase, or the zero time for an unknown phase.
func (c CycleDeadlines) For(phase ReviewPhase) time.Time {
	switch phase {
	case PhaseSelfReview:
		return c.d.SelfReview
	case PhasePeerFeedback:
		return c.d.PeerFeedback
	case PhaseManagerEvaluation:
		return c.d.ManagerEvaluation
	case PhaseCalibration:
		return c.d.Calibration
	case PhaseFeedbackDelivery:
		return c.d.FeedbackDelivery
	}
	return time.Time{}
}

// HasPassedDeadline reports whether now is after the phase deadline.
// Unknown phases never pass.
func (c CycleDeadlines) HasPassedDeadline(phase ReviewPhase, now time.Time) bool {
	deadline := c.For(phase)
	if deadline.IsZero() {
		return false
	}
	return now.After(deadline)
}

func (c CycleDeadlines) ToObject() DeadlineDates {
	return c.d
}
