package v1

import (
    "net/http"
    "strconv"

    chi "github.com/go-chi/chi/v5"
    "github.com/tinoosan/bankledger/internal/service/banking"
)

// getRecipient handles GET /v1/recipients/{id}?owner_name=...
// It confirms a transfer target before the client asks for an amount.
func (s *Server) getRecipient(w http.ResponseWriter, r *http.Request) {
    sess, ok := sessionFrom(r)
    if !ok { unauthorized(w); return }
    id, err := strconv.Atoi(chi.URLParam(r, "id"))
    if err != nil || id <= 0 {
        badRequest(w, "invalid account id")
        return
    }
    owner := r.URL.Query().Get("owner_name")
    if owner == "" {
        badRequest(w, "owner_name is required")
        return
    }
    rcpt, err := s.svc.VerifyRecipient(r.Context(), sess.AccountID, id, owner)
    if err != nil {
        s.writeDomainErr(w, r, err)
        return
    }
    toJSON(w, http.StatusOK, recipientResponse{AccountID: rcpt.AccountID, OwnerName: rcpt.OwnerName})
}

// postTransfer handles POST /v1/transfers from the session's account.
func (s *Server) postTransfer(w http.ResponseWriter, r *http.Request) {
    sess, ok := sessionFrom(r)
    if !ok { unauthorized(w); return }
    in, ok := r.Context().Value(ctxKeyPostTransfer).(banking.TransferInput)
    if !ok {
        toJSON(w, http.StatusInternalServerError, errorResponse{Error: "validated request missing"})
        return
    }
    in.FromAccountID = sess.AccountID
    bal, err := s.svc.Transfer(r.Context(), in)
    if err != nil {
        s.writeDomainErr(w, r, err)
        return
    }
    toJSON(w, http.StatusOK, toBalanceResponse(sess.AccountID, bal))
}
