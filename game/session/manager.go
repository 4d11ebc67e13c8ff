package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wricardo/spilled-mushrooms/game/engine"
	"github.com/wricardo/spilled-mushrooms/game/service"
	"github.com/wricardo/spilled-mushrooms/pkg/logger"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrGameNotFinished      = errors.New("game is still running")
)

// Manager handles game session lifecycle
type Manager struct {
	sessions map[string]*service.Session
	archiver RunArchiver
	mu       sync.RWMutex
}

// NewManager creates a new session manager
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*service.Session),
	}
}

// NewManagerWithArchiver creates a session manager that records finished runs
func NewManagerWithArchiver(archiver RunArchiver) *Manager {
	return &Manager{
		sessions: make(map[string]*service.Session),
		archiver: archiver,
	}
}

// Create creates a new session with the given ID and configuration. Bad
// roster or location entries do not fail the call; they are kept on the
// session as warnings.
func (m *Manager) Create(id string, config *engine.GameConfig) (*service.Session, error) {
	eng, warnings, err := engine.NewEngineFromConfig(config, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		id = m.generateSessionID()
	} else if m.sessionExists(id) {
		return nil, ErrSessionAlreadyExists
	}

	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		Warnings:       warnings,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
	m.sessions[strings.ToLower(id)] = session

	for _, w := range warnings {
		logger.Get().WithFields(logrus.Fields{
			"session_id": id,
			"field":      w.Field,
			"index":      w.Index,
			"value":      w.Value,
		}).Warn(w.Error())
	}

	return session, nil
}

// Get retrieves a session by ID (case-insensitive)
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// GetOrCreate gets an existing session or creates a new one
func (m *Manager) GetOrCreate(id string, config *engine.GameConfig) (*service.Session, error) {
	session, err := m.Get(id)
	if err == nil {
		return session, nil
	}

	if errors.Is(err, ErrSessionNotFound) {
		return m.Create(id, config)
	}

	return nil, err
}

// List returns all active sessions
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}

	return result
}

// Delete removes a session
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	if _, exists := m.sessions[lowerID]; !exists {
		return ErrSessionNotFound
	}
	delete(m.sessions, lowerID)
	return nil
}

// UpdateLastAccessed updates the last accessed time for a session
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return ErrSessionNotFound
	}

	session.LastAccessedAt = time.Now()
	return nil
}

// Archive hands a finished session to the run archiver. It is a no-op when
// no archiver is configured or the run was already archived. It does not lock
// the session; callers serialise it with moves on the same session.
func (m *Manager) Archive(id string) error {
	session, err := m.Get(id)
	if err != nil {
		return err
	}
	return m.archive(session)
}

func (m *Manager) archive(session *service.Session) error {
	if m.archiver == nil || session.RunID != "" {
		return nil
	}
	if !session.Engine.IsGameOver() && !session.Engine.IsStalled() {
		return ErrGameNotFinished
	}

	runID, err := m.archiver.Archive(session)
	if err != nil {
		return fmt.Errorf("failed to archive session %s: %w", session.ID, err)
	}
	session.RunID = runID

	logger.Get().WithFields(logrus.Fields{
		"session_id": session.ID,
		"run_id":     runID,
		"victory":    session.Engine.IsVictory(),
	}).Info("Run archived")
	return nil
}

// CleanupExpiredSessions removes sessions that haven't been accessed in the given duration
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for id, session := range m.sessions {
		if session.LastAccessedAt.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}

	return removed
}

// Count returns the number of active sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// generateSessionID returns an unused random 4-character session ID.
// Callers must hold the write lock.
func (m *Manager) generateSessionID() string {
	bytes := make([]byte, 2)
	for {
		rand.Read(bytes)
		id := hex.EncodeToString(bytes)
		if !m.sessionExists(id) {
			return id
		}
	}
}

// sessionExists checks if a session exists (case-insensitive)
func (m *Manager) sessionExists(id string) bool {
	_, exists := m.sessions[strings.ToLower(id)]
	return exists
}
