package models

import id "calibra/pkg/domain"

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Clone returns a copy that shares no mutable state with c.
func (c *ReviewCycle) Clone() *ReviewCycle {
	out := *c
	out.EndDate = clonePtr(c.EndDate)
	return &out
}

// Clone returns a copy that shares no mutable state with f.
func (f *FinalScore) Clone() *FinalScore {
	out := *f
	out.PeerAverageScores = clonePtr(f.PeerAverageScores)
	out.LockedAt = clonePtr(f.LockedAt)
	out.FeedbackDeliveredAt = clonePtr(f.FeedbackDeliveredAt)
	out.DeliveredAt = clonePtr(f.DeliveredAt)
	out.DeliveredBy = clonePtr(f.DeliveredBy)
	out.FeedbackNotes = clonePtr(f.FeedbackNotes)
	return &out
}

func (n *PeerNomination) Clone() *PeerNomination {
	out := *n
	out.RespondedAt = clonePtr(n.RespondedAt)
	return &out
}

func (r *ScoreAdjustmentRequest) Clone() *ScoreAdjustmentRequest {
	out := *r
	out.ReviewedBy = clonePtr(r.ReviewedBy)
	out.ReviewedAt = clonePtr(r.ReviewedAt)
	return &out
}

func (s *CalibrationSession) Clone() *CalibrationSession {
	out := *s
	if s.ParticipantIDs != nil {
		out.ParticipantIDs = append([]id.UserID(nil), s.ParticipantIDs...)
	}
	out.StartedAt = clonePtr(s.StartedAt)
	out.CompletedAt = clonePtr(s.CompletedAt)
	return &out
}

func (u *User) Clone() *User {
	out := *u
	return &out
}

func (r *SelfReview) Clone() *SelfReview {
	out := *r
	out.SubmittedAt = clonePtr(r.SubmittedAt)
	return &out
}

func (e *ManagerEvaluation) Clone() *ManagerEvaluation {
	out := *e
	out.SubmittedAt = clonePtr(e.SubmittedAt)
	return &out
}

func (f *PeerFeedback) Clone() *PeerFeedback {
	out := *f
	return &out
}
