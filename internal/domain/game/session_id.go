package game

import (
	"fmt"

	"github.com/google/uuid"
)

// SessionID is a value object identifying one playthrough
type SessionID struct {
	value string
}

// NewSessionID creates a SessionID with a generated UUID
func NewSessionID() SessionID {
	return SessionID{value: uuid.New().String()}
}

// NewSessionIDFromString creates a SessionID from an existing UUID string
func NewSessionIDFromString(id string) (SessionID, error) {
	if id == "" {
		return SessionID{}, fmt.Errorf("session_id cannot be empty")
	}

	if _, err := uuid.Parse(id); err != nil {
		return SessionID{}, fmt.Errorf("invalid session_id format: %w", err)
	}

	return SessionID{value: id}, nil
}

// MustNewSessionIDFromString creates a SessionID from a string, panicking if invalid.
// Use only when the ID is known to be valid (e.g., read back from the database).
func MustNewSessionIDFromString(id string) SessionID {
	sid, err := NewSessionIDFromString(id)
	if err != nil {
		panic(err)
	}
	return sid
}

func (s SessionID) String() string {
	return s.value
}

// Short returns the first block of the UUID for display
func (s SessionID) Short() string {
	if len(s.value) < 8 {
		return s.value
	}
	return s.value[:8]
}

func (s SessionID) Equals(other SessionID) bool {
	return s.value == other.value
}

func (s SessionID) IsZero() bool {
	return s.value == ""
}
