// Package session answers whether a user currently holds an unexpired session.
package session

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process session table keyed by user ID.
type Memory struct {
	mu      sync.RWMutex
	expires map[string]time.Time
	now     func() time.Time
}

// NewMemory creates an empty session table using the wall clock.
func NewMemory() *Memory {
	return &Memory{expires: make(map[string]time.Time), now: time.Now}
}

// Set records a session for userID that ends at expiresAt.
func (m *Memory) Set(userID string, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expires[userID] = expiresAt
}

// Delete ends userID's session.
func (m *Memory) Delete(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.expires, userID)
}

// IsValid reports whether userID has a session that has not expired yet.
func (m *Memory) IsValid(_ context.Context, userID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	exp, ok := m.expires[userID]
	return ok && exp.After(m.now()), nil
}

// AllowAll accepts every user. It backs local runs where no session table exists.
type AllowAll struct{}

// IsValid always reports true.
func (AllowAll) IsValid(context.Context, string) (bool, error) { return true, nil }
