package store

import (
	"context"
	"sync"

	"github.com/Yashr23-ui/agentic-honeypot-api/internal/domain/models"
)

// MemoryStore is the default in-process session store. The outer mutex only
// guards the session map; each session carries its own lock, so appends to
// different sessions never contend.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memorySession
}

type memorySession struct {
	mu              sync.Mutex
	conversation    []models.Message
	intelligenceLog []models.IntelligenceEntry
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*memorySession),
	}
}

// session returns the state for sessionID, creating it if absent.
func (s *MemoryStore) session(sessionID string) *memorySession {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[sessionID]; ok {
		return sess
	}
	sess = &memorySession{}
	s.sessions[sessionID] = sess
	return sess
}

// AppendConversation appends msgs to the session transcript as one unit.
func (s *MemoryStore) AppendConversation(_ context.Context, sessionID string, msgs ...models.Message) error {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.conversation = append(sess.conversation, msgs...)
	return nil
}

// AppendIntelligence appends one entry to the session's intelligence log.
func (s *MemoryStore) AppendIntelligence(_ context.Context, sessionID string, entry models.IntelligenceEntry) error {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.intelligenceLog = append(sess.intelligenceLog, entry)
	return nil
}

// Get returns a deep-copy snapshot so callers can read without holding locks.
func (s *MemoryStore) Get(_ context.Context, sessionID string) (*models.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	out := &models.Session{
		ID:              sessionID,
		Conversation:    append([]models.Message(nil), sess.conversation...),
		IntelligenceLog: append([]models.IntelligenceEntry(nil), sess.intelligenceLog...),
	}
	return out, nil
}
