package users

import (
	"context"
	"sort"
	"strings"
	"sync"

	"userdir/pkg/platform/sentinel"
)

// InMemoryStore keeps users in a map. It favors clarity over performance and
// backs tests and zero-config runs.
type InMemoryStore struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{users: make(map[string]User)}
}

func (s *InMemoryStore) Create(_ context.Context, user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; ok {
		return sentinel.ErrConflict
	}
	s.users[user.ID] = user
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return User{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) Update(_ context.Context, user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.users[user.ID] = user
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *InMemoryStore) ListIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *InMemoryStore) List(_ context.Context, filter ListFilter) (Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]User, 0, len(s.users))
	needle := strings.ToLower(filter.Search)
	for _, user := range s.users {
		if needle != "" &&
			!strings.Contains(strings.ToLower(user.Name), needle) &&
			!strings.Contains(strings.ToLower(user.Address), needle) {
			continue
		}
		matched = append(matched, user)
	}
	// Stable order: oldest first, ID as tiebreaker, matching the SQL store.
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	page := Page{Total: len(matched), Page: filter.Page, PerPage: filter.PerPage}
	offset := (filter.Page - 1) * filter.PerPage
	if offset < len(matched) {
		end := offset + filter.PerPage
		if end > len(matched) {
			end = len(matched)
		}
		page.Users = append([]User{}, matched[offset:end]...)
	} else {
		page.Users = []User{}
	}
	return page, nil
}

func (s *InMemoryStore) Ping(_ context.Context) error { return nil }
