package repository

import (
	"github.com/seqcls/verdict/internal/domain/entity"
)

// TurnRepository defines the interface for conversation log storage
type TurnRepository interface {
	// Append adds a turn to the end of a session's log
	Append(sessionID string, turn entity.Turn)

	// List returns a copy of a session's log in order
	List(sessionID string) []entity.Turn

	// Last returns the most recent turn of a session
	Last(sessionID string) (entity.Turn, bool)

	// Reset replaces a session's log with turns
	Reset(sessionID string, turns ...entity.Turn)

	// Delete drops a session's log
	Delete(sessionID string)
}
