package main

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"madiskarte.ai/cmd/server/llm"
)

type sessionEntry struct {
	chat       *llm.ChatSession
	createdAt  time.Time
	lastActive time.Time
}

// SessionInfo describes one live mentor chat
type SessionInfo struct {
	ID           string
	MessageCount int
	CreatedAt    time.Time
	LastActive   time.Time
}

// SessionStore keeps mentor chats alive between turns. Sessions live in
// memory only and expire after idleTimeout without activity.
type SessionStore struct {
	mu          sync.RWMutex
	sessions    map[string]*sessionEntry
	idleTimeout time.Duration
	now         func() time.Time
}

// NewSessionStore creates a new SessionStore instance
func NewSessionStore(idleTimeout time.Duration) *SessionStore {
	return &SessionStore{
		sessions:    make(map[string]*sessionEntry),
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// Add registers chat under a fresh UUID and returns the id
func (s *SessionStore) Add(chat *llm.ChatSession) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	now := s.now()
	s.sessions[id] = &sessionEntry{chat: chat, createdAt: now, lastActive: now}
	return id
}

// Get returns the chat for id and marks it active
func (s *SessionStore) Get(id string) (*llm.ChatSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.sessions[id]
	if !exists {
		return nil, false
	}
	entry.lastActive = s.now()
	return entry.chat, true
}

// Info describes id without marking it active
func (s *SessionStore) Info(id string) (SessionInfo, bool) {
	s.mu.RLock()
	entry, exists := s.sessions[id]
	if !exists {
		s.mu.RUnlock()
		return SessionInfo{}, false
	}
	info := SessionInfo{ID: id, CreatedAt: entry.createdAt, LastActive: entry.lastActive}
	chat := entry.chat
	s.mu.RUnlock()

	info.MessageCount = chat.Len()
	return info, true
}

// Remove drops id; it reports whether the session existed
func (s *SessionStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.sessions[id]
	delete(s.sessions, id)
	return exists
}

// CleanupIdleSessions removes sessions idle for longer than the timeout
// and returns how many were removed
func (s *SessionStore) CleanupIdleSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, entry := range s.sessions {
		if now.Sub(entry.lastActive) > s.idleTimeout {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// GetSessionCount returns the number of active sessions
func (s *SessionStore) GetSessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// GetAllSessionsInfo returns a snapshot of every live session
func (s *SessionStore) GetAllSessionsInfo() []SessionInfo {
	s.mu.RLock()
	infos := make([]SessionInfo, 0, len(s.sessions))
	chats := make([]*llm.ChatSession, 0, len(s.sessions))
	for id, entry := range s.sessions {
		infos = append(infos, SessionInfo{
			ID:         id,
			CreatedAt:  entry.createdAt,
			LastActive: entry.lastActive,
		})
		chats = append(chats, entry.chat)
	}
	s.mu.RUnlock()

	for i, chat := range chats {
		infos[i].MessageCount = chat.Len()
	}
	return infos
}
