package service

import (
	"sort"
	"sync"

	"github.com/bagdasarian/simpleprefix/internal/domain"
	"github.com/google/uuid"
)

// Sessions - пользователи, которые сейчас онлайн
type Sessions struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*domain.User
}

func NewSessions() *Sessions {
	return &Sessions{users: make(map[uuid.UUID]*domain.User)}
}

func (s *Sessions) Add(user domain.User) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := user
	u.Permissions = append([]string(nil), user.Permissions...)
	s.users[u.ID] = &u
	return copyUser(&u)
}

func (s *Sessions) Remove(id uuid.UUID) (*domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, false
	}
	delete(s.users, id)
	return u, true
}

// Get возвращает копию, которую можно передавать в другие горутины
func (s *Sessions) Get(id uuid.UUID) (*domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, false
	}
	return copyUser(u), true
}

func (s *Sessions) SetPermissions(id uuid.UUID, permissions []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return false
	}
	u.Permissions = append([]string(nil), permissions...)
	return true
}

// Online - копии всех пользователей онлайн, отсортированные по имени
func (s *Sessions) Online() []*domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		result = append(result, copyUser(u))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

func copyUser(u *domain.User) *domain.User {
	c := *u
	c.Permissions = append([]string(nil), u.Permissions...)
	return &c
}
