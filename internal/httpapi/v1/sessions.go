package v1

import (
    "net/http"
)

// postSession handles POST /v1/sessions (login). A failed login does not say
// whether the owner name or the credential was wrong.
func (s *Server) postSession(w http.ResponseWriter, r *http.Request) {
    req, ok := r.Context().Value(ctxKeyPostSession).(postSessionRequest)
    if !ok {
        toJSON(w, http.StatusInternalServerError, errorResponse{Error: "validated request missing"})
        return
    }
    sess, d, err := s.svc.Login(r.Context(), req.OwnerName, req.Credential)
    if err != nil {
        s.writeDomainErr(w, r, err)
        return
    }
    toJSON(w, http.StatusCreated, sessionResponse{Token: sess.Token, ExpiresAt: sess.ExpiresAt, Account: toAccountResponse(d)})
}

// deleteSession handles DELETE /v1/sessions (logout).
func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
    sess, ok := sessionFrom(r)
    if !ok { unauthorized(w); return }
    if err := s.svc.Logout(r.Context(), sess.Token); err != nil {
        s.writeDomainErr(w, r, err)
        return
    }
    w.WriteHeader(http.StatusNoContent)
}
