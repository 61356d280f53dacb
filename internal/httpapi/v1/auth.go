package v1

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/tinoosan/bankledger/internal/service/banking"
)

func parseBearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	if !strings.HasPrefix(h, "Bearer ") && !strings.HasPrefix(h, "bearer ") {
		return "", false
	}
	return strings.TrimSpace(h[len("Bearer "):]), true
}

// requireSession enforces Authorization: Bearer <session token> and stores
// the resolved banking.Session in the request context.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := parseBearerToken(r)
		if !ok {
			unauthorized(w)
			return
		}
		token, err := uuid.Parse(raw)
		if err != nil {
			unauthorized(w)
			return
		}
		sess, err := s.svc.Authorize(r.Context(), token)
		if err != nil {
			unauthorized(w)
			return
		}
		ctx := context.WithValue(r.Context(), ctxKeySession, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(r *http.Request) (banking.Session, bool) {
	sess, ok := r.Context().Value(ctxKeySession).(banking.Session)
	return sess, ok
}
