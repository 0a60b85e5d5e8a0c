package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// SessionExpiry is how long a session token stays valid
const SessionExpiry = 24 * time.Hour

// SessionCookieName is the cookie carrying the opaque session token
const SessionCookieName = "sessionid"

const sessionTokenBytes = 32 // 256 bits of entropy

type sessionEntry struct {
	UserID    uint
	CreatedAt time.Time
}

// SessionStore maps opaque tokens to logged-in staff users. Storage is
// process-local and volatile: sessions do not survive a restart. Safe
// for concurrent use.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]sessionEntry
	now      func() time.Time
}

// NewSessionStore creates an empty session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]sessionEntry),
		now:      time.Now,
	}
}

// Sessions is the shared session store for the running process
var Sessions = NewSessionStore()

// Create generates a cryptographically random token and stores the
// session under it
func (s *SessionStore) Create(userID uint) (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %v", err)
	}
	token := hex.EncodeToString(buf)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = sessionEntry{UserID: userID, CreatedAt: s.now()}
	return token, nil
}

// Lookup resolves a token to a user ID. Unknown tokens return false;
// expired tokens are evicted on the spot and also return false.
func (s *SessionStore) Lookup(token string) (uint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[token]
	if !ok {
		return 0, false
	}
	if s.now().Sub(entry.CreatedAt) > SessionExpiry {
		delete(s.sessions, token)
		return 0, false
	}
	return entry.UserID, true
}

// Delete removes a session unconditionally (logout, or a session whose
// user turned out to be inactive or deleted)
func (s *SessionStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// EvictExpired scans the store and removes expired sessions, returning
// how many were dropped
func (s *SessionStore) EvictExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	evicted := 0
	for token, entry := range s.sessions {
		if now.Sub(entry.CreatedAt) > SessionExpiry {
			delete(s.sessions, token)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of stored sessions
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// StartCleanup runs EvictExpired on a fixed interval until stop is
// closed
func (s *SessionStore) StartCleanup(interval time.Duration) (stop chan struct{}) {
	stop = make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := s.EvictExpired(); n > 0 {
					LogInfo("Evicted %d expired sessions", n)
				}
			case <-stop:
				return
			}
		}
	}()
	return stop
}
