package banking

import (
    "context"
    "time"

    "github.com/google/uuid"
)

// Session binds a bearer token to the account that logged in.
type Session struct {
    Token     uuid.UUID
    AccountID int
    CreatedAt time.Time
    ExpiresAt time.Time
}

// Expired reports whether the session is no longer usable at now.
func (s Session) Expired(now time.Time) bool { return !now.Before(s.ExpiresAt) }

// SessionStore persists sessions for the lifetime of the process.
type SessionStore interface {
    CreateSession(ctx context.Context, s Session) (Session, error)
    // GetSession returns errs.ErrNotFound for unknown tokens.
    GetSession(ctx context.Context, token uuid.UUID) (Session, error)
    DeleteSession(ctx context.Context, token uuid.UUID) error
}
