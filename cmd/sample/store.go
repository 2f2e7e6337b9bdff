package main

import (
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// User is the public representation of a user account.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type userStore struct {
	mu     sync.RWMutex
	users  map[string]*User
	nextID int
}

func newUserStore() *userStore {
	now := time.Now()
	return &userStore{
		users: map[string]*User{
			"1": {ID: "1", Name: "Alice", Email: "alice@example.com", Role: "admin", CreatedAt: now},
			"2": {ID: "2", Name: "Bob", Email: "bob@example.com", Role: "member", CreatedAt: now},
		},
		nextID: 3,
	}
}

func (s *userStore) list(role string) []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		if role != "" && u.Role != role {
			continue
		}
		out = append(out, *u)
	}
	slices.SortFunc(out, func(a, b User) int { return strings.Compare(a.ID, b.ID) })
	return out
}

func (s *userStore) get(id string) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, false
	}
	cp := *u
	return &cp, true
}

func (s *userStore) create(name, email, role string) *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &User{
		ID:        strconv.Itoa(s.nextID),
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now(),
	}
	s.users[u.ID] = u
	s.nextID++
	cp := *u
	return &cp
}

func (s *userStore) update(id, name, email string) (*User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, false
	}
	if name != "" {
		u.Name = name
	}
	if email != "" {
		u.Email = email
	}
	cp := *u
	return &cp, true
}

func (s *userStore) delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return false
	}
	delete(s.users, id)
	return true
}
