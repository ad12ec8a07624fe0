package game

import "context"

// SessionRepository stores sessions for the lifetime of the process
type SessionRepository interface {
	// Save creates or replaces a session
	Save(ctx context.Context, session *Session) error

	// FindByID retrieves a session, returning *ErrSessionNotFound if absent
	FindByID(ctx context.Context, id SessionID) (*Session, error)

	// Delete removes a session
	Delete(ctx context.Context, id SessionID) error
}
