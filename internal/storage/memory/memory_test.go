package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/tinoosan/bankledger/internal/errs"
	"github.com/tinoosan/bankledger/internal/service/banking"
)

func TestStore_CreateGetDelete(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Now().UTC()
	sess := banking.Session{Token: uuid.New(), AccountID: 10001, CreatedAt: now, ExpiresAt: now.Add(time.Minute)}
	if _, err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.CreateSession(ctx, sess); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("expected duplicate token to be rejected, got %v", err)
	}
	got, err := s.GetSession(ctx, sess.Token)
	if err != nil || got.AccountID != 10001 {
		t.Fatalf("get: %+v %v", got, err)
	}
	list, _ := s.SessionsByAccount(ctx, 10001)
	if len(list) != 1 {
		t.Fatalf("expected 1 session for account, got %d", len(list))
	}
	if err := s.DeleteSession(ctx, sess.Token); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetSession(ctx, sess.Token); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	list, _ = s.SessionsByAccount(ctx, 10001)
	if len(list) != 0 {
		t.Fatalf("expected account index cleared, got %d", len(list))
	}
}

func TestStore_PurgeExpired(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Now().UTC()
	live := banking.Session{Token: uuid.New(), AccountID: 1, ExpiresAt: now.Add(time.Hour)}
	dead := banking.Session{Token: uuid.New(), AccountID: 2, ExpiresAt: now.Add(-time.Second)}
	_, _ = s.CreateSession(ctx, live)
	_, _ = s.CreateSession(ctx, dead)
	if n := s.PurgeExpired(ctx, now); n != 1 {
		t.Fatalf("expected 1 purged, got %d", n)
	}
	if _, err := s.GetSession(ctx, live.Token); err != nil {
		t.Fatalf("live session purged: %v", err)
	}
	s.Reset()
	if _, err := s.GetSession(ctx, live.Token); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected empty store after reset")
	}
}

func TestStore_RejectsNilToken(t *testing.T) {
	if _, err := New().CreateSession(context.Background(), banking.Session{}); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("expected invalid, got %v", err)
	}
}
