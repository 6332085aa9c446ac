package session

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"calibra/internal/review/models"
	id "calibra/pkg/domain"
	"calibra/pkg/platform/sentinel"
)

// InMemorySessionStore keeps calibration sessions in memory. Sessions are
// copied in and out.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[id.CalibrationSessionID]*models.CalibrationSession
}

func New() *InMemorySessionStore {
	return &InMemorySessionStore{sessions: make(map[id.CalibrationSessionID]*models.CalibrationSession)}
}

func (s *InMemorySessionStore) FindByID(_ context.Context, sessionID id.CalibrationSessionID) (*models.CalibrationSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if cs, ok := s.sessions[sessionID]; ok {
		return cs.Clone(), nil
	}
	return nil, fmt.Errorf("calibration session not found: %w", sentinel.ErrNotFound)
}

// FindByCycle returns the cycle's sessions by scheduled time.
func (s *InMemorySessionStore) FindByCycle(_ context.Context, cycleID id.CycleID) ([]*models.CalibrationSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.CalibrationSession, 0)
	for _, cs := range s.sessions {
		if cs.CycleID == cycleID {
			out = append(out, cs.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out, nil
}

func (s *InMemorySessionStore) Save(_ context.Context, session *models.CalibrationSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session.Clone()
	return nil
}
