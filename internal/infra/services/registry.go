package services

import (
	"errors"
	"sync"
)

// ErrDuplicateCall is returned when a session already exists for a call
// SID. Exactly one session per call identifier may be registered.
var ErrDuplicateCall = errors.New("session already registered for call")

// SessionManager is the concurrency-safe registry of active call
// sessions. Webhook requests for different calls arrive on concurrent
// goroutines, so every map access is guarded.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*CallSession
}

func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]*CallSession)}
}

// Add registers a session under its call SID.
func (m *SessionManager) Add(session *CallSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[session.CallSID]; exists {
		return ErrDuplicateCall
	}
	m.sessions[session.CallSID] = session
	return nil
}

// Get looks up the session for a call SID.
func (m *SessionManager) Get(callSID string) (*CallSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[callSID]
	return session, ok
}

// Remove drops the session for a call SID, if present.
func (m *SessionManager) Remove(callSID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, callSID)
}

// Len reports the number of active sessions.
func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
