// Package reviews stores the review records the team dashboards read:
// self-reviews, peer feedback and manager evaluations. Authoring these
// records happens upstream; the Save methods exist for seeding and imports.
// Records are copied in and out.
package reviews

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"calibra/internal/review/models"
	id "calibra/pkg/domain"
	"calibra/pkg/platform/sentinel"
)

type recordKey struct {
	userID  id.UserID
	cycleID id.CycleID
}

type InMemoryStore struct {
	mu          sync.RWMutex
	selfReviews map[recordKey]*models.SelfReview
	evaluations map[recordKey]*models.ManagerEvaluation
	feedback    map[recordKey][]*models.PeerFeedback
}

func New() *InMemoryStore {
	return &InMemoryStore{
		selfReviews: make(map[recordKey]*models.SelfReview),
		evaluations: make(map[recordKey]*models.ManagerEvaluation),
		feedback:    make(map[recordKey][]*models.PeerFeedback),
	}
}

func (s *InMemoryStore) FindByUserAndCycle(_ context.Context, userID id.UserID, cycleID id.CycleID) (*models.SelfReview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.selfReviews[recordKey{userID, cycleID}]; ok {
		return r.Clone(), nil
	}
	return nil, fmt.Errorf("self review not found: %w", sentinel.ErrNotFound)
}

func (s *InMemoryStore) FindByEmployeeAndCycle(_ context.Context, employeeID id.UserID, cycleID id.CycleID) (*models.ManagerEvaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.evaluations[recordKey{employeeID, cycleID}]; ok {
		return e.Clone(), nil
	}
	return nil, fmt.Errorf("manager evaluation not found: %w", sentinel.ErrNotFound)
}

// FindByRevieweeAndCycle returns submitted feedback in submission order.
func (s *InMemoryStore) FindByRevieweeAndCycle(_ context.Context, revieweeID id.UserID, cycleID id.CycleID) ([]*models.PeerFeedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.feedback[recordKey{revieweeID, cycleID}]
	out := make([]*models.PeerFeedback, 0, len(entries))
	for _, f := range entries {
		out = append(out, f.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SubmittedAt.Before(out[j].SubmittedAt) })
	return out, nil
}

func (s *InMemoryStore) SaveSelfReview(_ context.Context, r *models.SelfReview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selfReviews[recordKey{r.UserID, r.CycleID}] = r.Clone()
	return nil
}

func (s *InMemoryStore) SaveManagerEvaluation(_ context.Context, e *models.ManagerEvaluation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evaluations[recordKey{e.EmployeeID, e.CycleID}] = e.Clone()
	return nil
}

// SavePeerFeedback replaces an earlier entry with the same id.
func (s *InMemoryStore) SavePeerFeedback(_ context.Context, f *models.PeerFeedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := recordKey{f.RevieweeID, f.CycleID}
	entries := s.feedback[key]
	for i, existing := range entries {
		if existing.ID == f.ID {
			entries[i] = f.Clone()
			return nil
		}
	}
	s.feedback[key] = append(entries, f.Clone())
	return nil
}
