package adjustment

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"calibra/internal/review/models"
	id "calibra/pkg/domain"
	"calibra/pkg/platform/sentinel"
)

// InMemoryAdjustmentStore keeps score adjustment requests in memory. Requests
// are copied in and out.
type InMemoryAdjustmentStore struct {
	mu       sync.RWMutex
	requests map[id.AdjustmentRequestID]*models.ScoreAdjustmentRequest
}

func New() *InMemoryAdjustmentStore {
	return &InMemoryAdjustmentStore{requests: make(map[id.AdjustmentRequestID]*models.ScoreAdjustmentRequest)}
}

func (s *InMemoryAdjustmentStore) FindByID(_ context.Context, requestID id.AdjustmentRequestID) (*models.ScoreAdjustmentRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.requests[requestID]; ok {
		return r.Clone(), nil
	}
	return nil, fmt.Errorf("score adjustment request not found: %w", sentinel.ErrNotFound)
}

// FindPending returns the review queue, oldest first.
func (s *InMemoryAdjustmentStore) FindPending(_ context.Context) ([]*models.ScoreAdjustmentRequest, error) {
	out := s.filter(func(r *models.ScoreAdjustmentRequest) bool { return r.IsPending() })
	sort.SliceStable(out, func(i, j int) bool { return out[i].RequestedAt.Before(out[j].RequestedAt) })
	return out, nil
}

// FindByEmployee returns an employee's history, newest first.
func (s *InMemoryAdjustmentStore) FindByEmployee(_ context.Context, employeeID id.UserID) ([]*models.ScoreAdjustmentRequest, error) {
	out := s.filter(func(r *models.ScoreAdjustmentRequest) bool { return r.EmployeeID == employeeID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].RequestedAt.After(out[j].RequestedAt) })
	return out, nil
}

func (s *InMemoryAdjustmentStore) filter(match func(*models.ScoreAdjustmentRequest) bool) []*models.ScoreAdjustmentRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.ScoreAdjustmentRequest, 0)
	for _, r := range s.requests {
		if match(r) {
			out = append(out, r.Clone())
		}
	}
	return out
}

func (s *InMemoryAdjustmentStore) Save(_ context.Context, request *models.ScoreAdjustmentRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[request.ID] = request.Clone()
	return nil
}
