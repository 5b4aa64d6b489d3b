package memory

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/mtlahti/choreboard/internal/model"
)

// SessionStore holds login sessions. Sessions are never snapshotted; a
// restart logs everyone out.
type SessionStore struct {
	s *Store
}

func NewSessionStore(s *Store) *SessionStore {
	return &SessionStore{s: s}
}

func (ss *SessionStore) Create(userID string, ttl time.Duration) (*model.Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	now := time.Now().UTC()
	sess := &model.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}

	ss.s.mu.Lock()
	ss.s.sessions[token] = sess
	ss.s.mu.Unlock()

	out := *sess
	return &out, nil
}

// GetByToken returns nil for unknown or expired tokens; expired sessions are
// dropped on access.
func (ss *SessionStore) GetByToken(token string) (*model.Session, error) {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()

	sess, ok := ss.s.sessions[token]
	if !ok {
		return nil, nil
	}
	if time.Now().After(sess.ExpiresAt) {
		delete(ss.s.sessions, token)
		return nil, nil
	}
	out := *sess
	return &out, nil
}

func (ss *SessionStore) Delete(token string) error {
	ss.s.mu.Lock()
	delete(ss.s.sessions, token)
	ss.s.mu.Unlock()
	return nil
}

// DeleteExpired removes expired sessions and returns how many were dropped.
func (ss *SessionStore) DeleteExpired() int {
	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()

	now := time.Now()
	removed := 0
	for token, sess := range ss.s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(ss.s.sessions, token)
			removed++
		}
	}
	return removed
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
