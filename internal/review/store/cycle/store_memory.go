package cycle

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"calibra/internal/review/models"
	id "calibra/pkg/domain"
	"calibra/pkg/platform/sentinel"
)

// Error Contract:
// - Return sentinel.ErrNotFound when the requested cycle does not exist
// - Return sentinel.ErrConflict when a save would leave two ACTIVE cycles
// - List methods return an empty slice, never ErrNotFound
// - Cycles are copied in and out; callers never share the stored value
//
// InMemoryCycleStore keeps review cycles in memory for tests and local runs.
type InMemoryCycleStore struct {
	mu     sync.RWMutex
	cycles map[id.CycleID]*models.ReviewCycle
}

func New() *InMemoryCycleStore {
	return &InMemoryCycleStore{cycles: make(map[id.CycleID]*models.ReviewCycle)}
}

func (s *InMemoryCycleStore) FindByID(_ context.Context, cycleID id.CycleID) (*models.ReviewCycle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.cycles[cycleID]; ok {
		return c.Clone(), nil
	}
	return nil, fmt.Errorf("review cycle not found: %w", sentinel.ErrNotFound)
}

func (s *InMemoryCycleStore) FindActive(_ context.Context) (*models.ReviewCycle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cycles {
		if c.IsActive() {
			return c.Clone(), nil
		}
	}
	return nil, fmt.Errorf("active review cycle not found: %w", sentinel.ErrNotFound)
}

// FindByYear returns the year's cycles ordered by start date.
func (s *InMemoryCycleStore) FindByYear(_ context.Context, year int) ([]*models.ReviewCycle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.ReviewCycle, 0)
	for _, c := range s.cycles {
		if c.Year == year {
			out = append(out, c.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (s *InMemoryCycleStore) Save(_ context.Context, cycle *models.ReviewCycle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cycle.IsActive() {
		for otherID, other := range s.cycles {
			if otherID != cycle.ID && other.IsActive() {
				return fmt.Errorf("save review cycle: %w", sentinel.ErrConflict)
			}
		}
	}
	s.cycles[cycle.ID] = cycle.Clone()
	return nil
}

func (s *InMemoryCycleStore) Delete(_ context.Context, cycleID id.CycleID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cycles[cycleID]; !ok {
		return fmt.Errorf("review cycle not found: %w", sentinel.ErrNotFound)
	}
	delete(s.cycles, cycleID)
	return nil
}
