package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/visali231996/banking-agent/internal/agent"
	"github.com/visali231996/banking-agent/internal/model/conversation"
)

var (
	ErrAccountRequired = errors.New("account id is required")
	ErrSessionNotFound = errors.New("session not found")
)

// Session binds a conversation to an account.
type Session struct {
	ID        string    `json:"id"`
	AccountID string    `json:"accountId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Service owns conversation state across turns. The agent itself is stateless
// between invocations; this registry snapshots the evolved state after every
// turn and resupplies it on the next one. Turns against the same account are
// serialized with a per-account lock.
type Service struct {
	engine *agent.Engine

	mu           sync.RWMutex
	sessions     map[string]Session
	states       map[string]conversation.State
	accountLocks map[string]*sync.Mutex
}

// NewService bootstraps the in-memory session registry around the engine.
func NewService(engine *agent.Engine) *Service {
	return &Service{
		engine:       engine,
		sessions:     make(map[string]Session),
		states:       make(map[string]conversation.State),
		accountLocks: make(map[string]*sync.Mutex),
	}
}

// CreateSession provisions a fresh unauthenticated conversation bound to an
// account.
func (s *Service) CreateSession(_ context.Context, accountID string) (Session, error) {
	if accountID == "" {
		return Session{}, ErrAccountRequired
	}

	session := Session{
		ID:        uuid.NewString(),
		AccountID: accountID,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.states[session.ID] = conversation.New(accountID)
	s.mu.Unlock()

	return session, nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return session, nil
}

// RunTurn processes one user message for the session and returns the evolved
// state plus the assistant reply. A failed turn leaves the stored state
// untouched.
func (s *Service) RunTurn(ctx context.Context, sessionID, userMessage string) (conversation.State, string, error) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return conversation.State{}, "", ErrSessionNotFound
	}

	lock := s.accountLock(session.AccountID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.RLock()
	prior := s.states[sessionID]
	s.mu.RUnlock()

	next, reply, err := s.engine.RunTurn(ctx, prior, userMessage)
	if err != nil {
		return conversation.State{}, "", err
	}

	s.mu.Lock()
	s.states[sessionID] = next
	s.mu.Unlock()

	return next, reply, nil
}

// Transcript returns the stored messages for the session.
func (s *Service) Transcript(_ context.Context, sessionID string) ([]conversation.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.states[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return append([]conversation.Message(nil), st.Messages...), nil
}

// accountLock hands out the mutex serializing turns for one account.
func (s *Service) accountLock(accountID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.accountLocks[accountID]
	if !ok {
		lock = &sync.Mutex{}
		s.accountLocks[accountID] = lock
	}
	return lock
}
