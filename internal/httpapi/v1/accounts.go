package v1

// Account handlers: open, existence check, details, deposit and withdraw.

import (
    "context"
    "net/http"
    "strings"

    "github.com/govalues/money"
    "github.com/tinoosan/bankledger/internal/service/banking"
)

func (s *Server) postAccount(w http.ResponseWriter, r *http.Request) {
    in, ok := r.Context().Value(ctxKeyPostAccount).(banking.OpenAccountInput)
    if !ok {
        toJSON(w, http.StatusInternalServerError, errorResponse{Error: "validated request missing"})
        return
    }
    d, err := s.svc.OpenAccount(r.Context(), in)
    if err != nil {
        s.writeDomainErr(w, r, err)
        return
    }
    toJSON(w, http.StatusCreated, toAccountResponse(d))
}

// accountExists handles GET /v1/accounts/exists?owner_name=...
func (s *Server) accountExists(w http.ResponseWriter, r *http.Request) {
    name := strings.TrimSpace(r.URL.Query().Get("owner_name"))
    if name == "" {
        badRequest(w, "owner_name is required")
        return
    }
    toJSON(w, http.StatusOK, existsResponse{OwnerName: name, Exists: s.svc.AccountExists(r.Context(), name)})
}

func (s *Server) getMe(w http.ResponseWriter, r *http.Request) {
    sess, ok := sessionFrom(r)
    if !ok { unauthorized(w); return }
    d, err := s.svc.Details(r.Context(), sess.AccountID)
    if err != nil {
        s.writeDomainErr(w, r, err)
        return
    }
    toJSON(w, http.StatusOK, toAccountResponse(d))
}

func (s *Server) deposit(w http.ResponseWriter, r *http.Request) {
    s.applyAmount(w, r, s.svc.Deposit)
}

func (s *Server) withdraw(w http.ResponseWriter, r *http.Request) {
    s.applyAmount(w, r, s.svc.Withdraw)
}

// applyAmount runs a single-account balance operation for the session's account.
func (s *Server) applyAmount(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, accountID int, amount money.Amount) (money.Amount, error)) {
    sess, ok := sessionFrom(r)
    if !ok { unauthorized(w); return }
    amt, ok := r.Context().Value(ctxKeyAmount).(money.Amount)
    if !ok {
        toJSON(w, http.StatusInternalServerError, errorResponse{Error: "validated request missing"})
        return
    }
    bal, err := op(r.Context(), sess.AccountID, amt)
    if err != nil {
        s.writeDomainErr(w, r, err)
        return
    }
    toJSON(w, http.StatusOK, toBalanceResponse(sess.AccountID, bal))
}
