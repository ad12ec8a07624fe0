package game

import "fmt"

// ErrSessionNotFound is returned when no session exists for an ID
type ErrSessionNotFound struct {
	ID string
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.ID)
}

// GameOverError is returned when a decision is submitted to a finished run
type GameOverError struct {
	SessionID string
	Month     int
}

func (e *GameOverError) Error() string {
	return fmt.Sprintf("game over: session %s finished at month %d", e.SessionID, e.Month)
}
