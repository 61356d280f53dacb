// Package memory keeps login sessions in process memory. Sessions do not
// survive a restart, matching the ledger itself.
package memory

import (
    "context"
    "sync"
    "time"

    "github.com/google/uuid"
    "github.com/tinoosan/bankledger/internal/errs"
    "github.com/tinoosan/bankledger/internal/service/banking"
)

// Store is an in-memory session store guarded by an RWMutex.
type Store struct {
    mu       sync.RWMutex
    sessions map[uuid.UUID]banking.Session
    // Per-account token index so an account's sessions can be listed or revoked together.
    tokensByAccount map[int]map[uuid.UUID]struct{}
}

// New constructs an empty store.
func New() *Store {
    return &Store{
        sessions:        make(map[uuid.UUID]banking.Session),
        tokensByAccount: make(map[int]map[uuid.UUID]struct{}),
    }
}

func (s *Store) Reset() {
    s.mu.Lock()
    s.sessions = map[uuid.UUID]banking.Session{}
    s.tokensByAccount = map[int]map[uuid.UUID]struct{}{}
    s.mu.Unlock()
}

// Ready always succeeds; the store has no backing service.
func (s *Store) Ready(context.Context) error { return nil }

// CreateSession stores sess. Tokens must be unique.
func (s *Store) CreateSession(_ context.Context, sess banking.Session) (banking.Session, error) {
    if sess.Token == uuid.Nil { return banking.Session{}, errs.ErrInvalid }
    s.mu.Lock()
    defer s.mu.Unlock()
    if _, exists := s.sessions[sess.Token]; exists { return banking.Session{}, errs.ErrInvalid }
    s.sessions[sess.Token] = sess
    m, ok := s.tokensByAccount[sess.AccountID]
    if !ok { m = make(map[uuid.UUID]struct{}); s.tokensByAccount[sess.AccountID] = m }
    m[sess.Token] = struct{}{}
    return sess, nil
}

// GetSession returns the session for token.
func (s *Store) GetSession(_ context.Context, token uuid.UUID) (banking.Session, error) {
    s.mu.RLock(); defer s.mu.RUnlock()
    sess, ok := s.sessions[token]
    if !ok { return banking.Session{}, errs.ErrNotFound }
    return sess, nil
}

// DeleteSession removes token; deleting an unknown token is not an error.
func (s *Store) DeleteSession(_ context.Context, token uuid.UUID) error {
    s.mu.Lock(); defer s.mu.Unlock()
    s.deleteLocked(token)
    return nil
}

// SessionsByAccount returns the live and expired sessions held for an account.
func (s *Store) SessionsByAccount(_ context.Context, accountID int) ([]banking.Session, error) {
    s.mu.RLock(); defer s.mu.RUnlock()
    tokens := s.tokensByAccount[accountID]
    out := make([]banking.Session, 0, len(tokens))
    for t := range tokens {
        out = append(out, s.sessions[t])
    }
    return out, nil
}

// PurgeExpired drops sessions whose expiry is at or before now and returns how many were removed.
func (s *Store) PurgeExpired(_ context.Context, now time.Time) int {
    s.mu.Lock(); defer s.mu.Unlock()
    n := 0
    for token, sess := range s.sessions {
        if sess.Expired(now) {
            s.deleteLocked(token)
            n++
        }
    }
    return n
}

// deleteLocked removes token from both maps. Caller must hold s.mu (write lock).
func (s *Store) deleteLocked(token uuid.UUID) {
    sess, ok := s.sessions[token]
    if !ok { return }
    delete(s.sessions, token)
    if m, ok := s.tokensByAccount[sess.AccountID]; ok {
        delete(m, token)
        if len(m) == 0 { delete(s.tokensByAccount, sess.AccountID) }
    }
}
