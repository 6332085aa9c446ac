package nomination

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"calibra/internal/review/models"
	id "calibra/pkg/domain"
	"calibra/pkg/platform/sentinel"
)

// InMemoryNominationStore keeps peer nominations in memory.
// Lists come back in nomination order and are never nil. Nominations are
// copied in and out.
type InMemoryNominationStore struct {
	mu          sync.RWMutex
	nominations map[id.NominationID]*models.PeerNomination
}

func New() *InMemoryNominationStore {
	return &InMemoryNominationStore{nominations: make(map[id.NominationID]*models.PeerNomination)}
}

func (s *InMemoryNominationStore) FindByID(_ context.Context, nominationID id.NominationID) (*models.PeerNomination, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n, ok := s.nominations[nominationID]; ok {
		return n.Clone(), nil
	}
	return nil, fmt.Errorf("nomination not found: %w", sentinel.ErrNotFound)
}

func (s *InMemoryNominationStore) FindByNominatorAndCycle(_ context.Context, nominatorID id.UserID, cycleID id.CycleID) ([]*models.PeerNomination, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.PeerNomination, 0)
	for _, n := range s.nominations {
		if n.NominatorID == nominatorID && n.CycleID == cycleID {
			out = append(out, n.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].NominatedAt.Before(out[j].NominatedAt) })
	return out, nil
}

func (s *InMemoryNominationStore) Save(_ context.Context, nomination *models.PeerNomination) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nominations[nomination.ID] = nomination.Clone()
	return nil
}
