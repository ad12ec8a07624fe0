package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/construction-sim/internal/domain/game"
)

// MockSessionRepository is a test double for the SessionRepository interface.
// It stores the session pointers it is given, so tests can inspect them.
type MockSessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*game.Session

	// SaveErr, when set, is returned by every Save call
	SaveErr   error
	SaveCalls int
}

// NewMockSessionRepository creates a new mock session repository
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{
		sessions: make(map[string]*game.Session),
	}
}

// AddSession adds a session to the mock repository
func (m *MockSessionRepository) AddSession(s *game.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID().String()] = s
}

// Save persists session state
func (m *MockSessionRepository) Save(ctx context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.sessions[s.ID().String()] = s
	return nil
}

// FindByID retrieves a session by ID
func (m *MockSessionRepository) FindByID(ctx context.Context, id game.SessionID) (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id.String()]
	if !ok {
		return nil, &game.ErrSessionNotFound{ID: id.String()}
	}
	return s, nil
}

// Delete removes a session
func (m *MockSessionRepository) Delete(ctx context.Context, id game.SessionID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id.String()]; !ok {
		return &game.ErrSessionNotFound{ID: id.String()}
	}
	delete(m.sessions, id.String())
	return nil
}

// Count returns the number of stored sessions
func (m *MockSessionRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
