// Package chat implements the client-side conversation: a turn log seeded
// with a greeting, advanced by submit, clear and refresh events, where each
// unanswered user turn triggers exactly one round-trip to the inference
// service.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seqcls/verdict/internal/adapter/client"
	"github.com/seqcls/verdict/internal/domain/entity"
	"github.com/seqcls/verdict/internal/domain/repository"
)

// Fixed assistant messages
const (
	Greeting             = "Hi! Ask me a yes/no question and I'll tell you what the model thinks: Yes, No or Maybe."
	NotRespondingMessage = "Backend is not responding. Cannot send message."
)

// Submit errors
var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrBusy         = errors.New("waiting for the previous answer")
)

// Backend is the part of the inference service the conversation needs
type Backend interface {
	Health(ctx context.Context) (*client.HealthResponse, error)
	Predict(ctx context.Context, text string) (*client.PredictResponse, error)
	Root(ctx context.Context) (*client.RootResponse, error)
}

// Request is a pending user turn handed out for answering
type Request struct {
	Text       string
	generation int
}

// Session is one conversation. Methods are safe for concurrent use.
type Session struct {
	id      string
	store   repository.TurnRepository
	backend Backend
	logger  *zap.Logger

	mu         sync.Mutex
	inFlight   bool
	generation int
	status     Status
}

// NewSession creates a session whose log starts with the greeting
func NewSession(store repository.TurnRepository, backend Backend, logger *zap.Logger) *Session {
	s := &Session{
		id:      uuid.New().String(),
		store:   store,
		backend: backend,
		logger:  logger,
	}
	s.logger = logger.With(zap.String("session_id", s.id))
	store.Reset(s.id, seedTurn())
	return s
}

func seedTurn() entity.Turn {
	return entity.NewAssistantTurn(Greeting, nil)
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Turns returns a copy of the log
func (s *Session) Turns() []entity.Turn {
	return s.store.List(s.id)
}

// Status returns the result of the last health check
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Submit appends a user turn
func (s *Session) Submit(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight {
		return ErrBusy
	}
	s.store.Append(s.id, entity.NewUserTurn(text))
	s.logger.Debug("User turn submitted")
	return nil
}

// Pending reports whether the last turn is an unanswered user turn
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingLocked()
}

func (s *Session) pendingLocked() bool {
	last, ok := s.store.Last(s.id)
	return ok && last.IsUser()
}

// InFlight reports whether a request has been handed out and not yet resolved
func (s *Session) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// NextRequest hands out the pending user turn. It returns false when nothing
// is pending or the pending turn was already handed out.
func (s *Session) NextRequest() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight || !s.pendingLocked() {
		return Request{}, false
	}

	last, _ := s.store.Last(s.id)
	s.inFlight = true
	return Request{Text: last.Content, generation: s.generation}, true
}

// Resolve appends the assistant turn answering req. Answers to requests
// issued before the last Clear are dropped.
func (s *Session) Resolve(req Request, turn entity.Turn, status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if status.Healthy && status.Model == "" {
		status.Model = s.status.Model
	}
	s.status = status
	if req.generation != s.generation {
		s.logger.Debug("Dropping answer for cleared history")
		return
	}

	s.inFlight = false
	s.store.Append(s.id, turn)
}

// Respond runs one response cycle if a user turn is pending
func (s *Session) Respond(ctx context.Context) bool {
	req, ok := s.NextRequest()
	if !ok {
		return false
	}

	s.Complete(ctx, req)
	return true
}

// Complete answers a request handed out by NextRequest and resolves it
func (s *Session) Complete(ctx context.Context, req Request) {
	turn, status := Answer(ctx, s.backend, req.Text, s.logger)
	s.Resolve(req, turn, status)
}

// Refresh re-runs the health check without touching the log. A healthy
// backend is also asked for the name of the model it serves.
func (s *Session) Refresh(ctx context.Context) Status {
	status := CheckStatus(ctx, s.backend)
	if status.Healthy {
		root, err := s.backend.Root(ctx)
		if err != nil {
			s.logger.Debug("Could not read service banner", zap.Error(err))
		} else {
			status.Model = root.Model
		}
	}
	s.setStatus(status)
	return status
}

func (s *Session) setStatus(status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// Clear resets the log to the greeting
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.inFlight = false
	s.store.Reset(s.id, seedTurn())
	s.logger.Info("Conversation cleared")
}

// Close drops the conversation log
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.store.Delete(s.id)
}
