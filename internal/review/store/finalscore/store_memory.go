package finalscore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"calibra/internal/review/models"
	id "calibra/pkg/domain"
	"calibra/pkg/platform/sentinel"
)

type scoreKey struct {
	userID  id.UserID
	cycleID id.CycleID
}

// Error Contract:
// - Return sentinel.ErrNotFound when the requested score does not exist
// - Return sentinel.ErrConflict when a different score already exists for the same user and cycle
// - List methods return an empty slice, never ErrNotFound
// - Scores are copied in and out; callers never share the stored value
//
// InMemoryFinalScoreStore keeps final scores in memory for tests and local runs.
type InMemoryFinalScoreStore struct {
	mu     sync.RWMutex
	scores map[id.FinalScoreID]*models.FinalScore
	byUser map[scoreKey]id.FinalScoreID
}

func New() *InMemoryFinalScoreStore {
	return &InMemoryFinalScoreStore{
		scores: make(map[id.FinalScoreID]*models.FinalScore),
		byUser: make(map[scoreKey]id.FinalScoreID),
	}
}

func (s *InMemoryFinalScoreStore) FindByUserAndCycle(_ context.Context, userID id.UserID, cycleID id.CycleID) (*models.FinalScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if scoreID, ok := s.byUser[scoreKey{userID, cycleID}]; ok {
		return s.scores[scoreID].Clone(), nil
	}
	return nil, fmt.Errorf("final score not found: %w", sentinel.ErrNotFound)
}

func (s *InMemoryFinalScoreStore) FindByCycle(_ context.Context, cycleID id.CycleID) ([]*models.FinalScore, error) {
	return s.filter(func(f *models.FinalScore) bool { return f.CycleID == cycleID }), nil
}

func (s *InMemoryFinalScoreStore) FindByBonusTier(_ context.Context, cycleID id.CycleID, tier models.BonusTier) ([]*models.FinalScore, error) {
	return s.filter(func(f *models.FinalScore) bool {
		return f.CycleID == cycleID && f.BonusTier() == tier
	}), nil
}

// filter returns matches ordered by weighted score, highest first.
func (s *InMemoryFinalScoreStore) filter(match func(*models.FinalScore) bool) []*models.FinalScore {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.FinalScore, 0)
	for _, f := range s.scores {
		if match(f) {
			out = append(out, f.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WeightedScore.Value() > out[j].WeightedScore.Value()
	})
	return out
}

func (s *InMemoryFinalScoreStore) Save(_ context.Context, score *models.FinalScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := scoreKey{score.UserID, score.CycleID}
	if existing, ok := s.byUser[key]; ok && existing != score.ID {
		return fmt.Errorf("save final score: %w", sentinel.ErrConflict)
	}
	s.scores[score.ID] = score.Clone()
	s.byUser[key] = score.ID
	return nil
}

func (s *InMemoryFinalScoreStore) Delete(_ context.Context, scoreID id.FinalScoreID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	score, ok := s.scores[scoreID]
	if !ok {
		return fmt.Errorf("final score not found: %w", sentinel.ErrNotFound)
	}
	delete(s.byUser, scoreKey{score.UserID, score.CycleID})
	delete(s.scores, scoreID)
	return nil
}
