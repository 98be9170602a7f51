package memory

import (
	"sync"

	"github.com/seqcls/verdict/internal/domain/entity"
	"github.com/seqcls/verdict/internal/domain/repository"
)

var _ repository.TurnRepository = (*TurnStore)(nil)

// TurnStore keeps conversation logs in memory, keyed by session ID
type TurnStore struct {
	mu    sync.RWMutex
	turns map[string][]entity.Turn
}

// NewTurnStore creates an empty TurnStore
func NewTurnStore() *TurnStore {
	return &TurnStore{
		turns: make(map[string][]entity.Turn),
	}
}

// Append adds a turn to the end of a session's log
func (s *TurnStore) Append(sessionID string, turn entity.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns[sessionID] = append(s.turns[sessionID], turn)
}

// List returns a copy of a session's log
func (s *TurnStore) List(sessionID string) []entity.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.turns[sessionID]
	out := make([]entity.Turn, len(turns))
	copy(out, turns)
	return out
}

// Last returns the most recent turn of a session
func (s *TurnStore) Last(sessionID string) (entity.Turn, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.turns[sessionID]
	if len(turns) == 0 {
		return entity.Turn{}, false
	}
	return turns[len(turns)-1], true
}

// Reset replaces a session's log with the given turns
func (s *TurnStore) Reset(sessionID string, turns ...entity.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns[sessionID] = append([]entity.Turn(nil), turns...)
}

// Delete drops a session's log
func (s *TurnStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.turns, sessionID)
}
