package user

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"calibra/internal/review/models"
	id "calibra/pkg/domain"
	"calibra/pkg/platform/sentinel"
)

// InMemoryDirectory is a read-mostly user directory. Save seeds it.
// Users are copied in and out.
type InMemoryDirectory struct {
	mu    sync.RWMutex
	users map[id.UserID]*models.User
}

func New() *InMemoryDirectory {
	return &InMemoryDirectory{users: make(map[id.UserID]*models.User)}
}

func (s *InMemoryDirectory) FindByID(_ context.Context, userID id.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[userID]; ok {
		return u.Clone(), nil
	}
	return nil, fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
}

// FindByManagerID returns direct reports sorted by name.
func (s *InMemoryDirectory) FindByManagerID(_ context.Context, managerID id.UserID) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.User, 0)
	for _, u := range s.users {
		if u.IsDirectReportOf(managerID) {
			out = append(out, u.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (s *InMemoryDirectory) Save(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u.Clone()
	return nil
}
