// Package session is the single source of truth for search session
// tokens. The results page previously grew several divergent client-side
// bookkeeping schemes; the gateway now issues and refreshes tokens in one
// place. Sessions gate nothing — they tie searches together for
// analytics, which is why a missing or expired token never fails a
// request.
package session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one tracked search session.
type Session struct {
	ID        string    `json:"sessionId"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Service issues, validates and refreshes session tokens.
type Service struct {
	mu              sync.RWMutex
	sessions        map[string]*Session
	ttl             time.Duration
	stopCleanup     chan struct{}
	cleanupOnce     sync.Once
	cleanupInterval time.Duration

	now func() time.Time
}

// NewService creates a session service. Non-positive ttl defaults to 30
// minutes.
func NewService(ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	s := &Service{
		sessions:        make(map[string]*Session),
		ttl:             ttl,
		stopCleanup:     make(chan struct{}),
		cleanupInterval: 5 * time.Minute,
		now:             time.Now,
	}

	go s.cleanupExpired()

	return s
}

// NewID builds a token in the sess_<unix-ms>_<random> format the results
// page already understands.
func (s *Service) NewID() string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("sess_%d_%s", s.now().UnixMilli(), random)
}

// Issue creates and stores a new session.
func (s *Service) Issue() *Session {
	now := s.now()
	sess := &Session{
		ID:        s.NewID(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess
}

// Validate returns the session for id if it exists and has not expired.
func (s *Service) Validate(id string) (*Session, bool) {
	if !WellFormed(id) {
		return nil, false
	}

	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok || s.now().After(sess.ExpiresAt) {
		return nil, false
	}

	out := *sess
	return &out, true
}

// Touch refreshes the expiry of a live session, mirroring the old
// refresh-on-interaction behavior. Returns false for unknown or expired
// tokens.
func (s *Service) Touch(id string) bool {
	if !WellFormed(id) {
		return false
	}

	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || now.After(sess.ExpiresAt) {
		return false
	}
	sess.ExpiresAt = now.Add(s.ttl)
	return true
}

// Revoke removes a session.
func (s *Service) Revoke(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of stored sessions, expired included until the
// next sweep.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// WellFormed checks the token shape without touching the store.
func WellFormed(id string) bool {
	parts := strings.Split(id, "_")
	return len(parts) == 3 && parts[0] == "sess" && parts[1] != "" && parts[2] != ""
}

func (s *Service) cleanupExpired() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := s.now()
			s.mu.Lock()
			for id, sess := range s.sessions {
				if now.After(sess.ExpiresAt) {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		case <-s.stopCleanup:
			return
		}
	}
}

// Close stops the cleanup goroutine. Call this on shutdown or in tests.
func (s *Service) Close() error {
	s.cleanupOnce.Do(func() {
		close(s.stopCleanup)
	})
	return nil
}
