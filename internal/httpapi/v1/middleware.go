package v1

import (
    "context"
    "encoding/json"
    "net/http"
    "strings"

    "github.com/tinoosan/bankledger/internal/service/banking"
)

type ctxKey string

const ctxKeyPostAccount ctxKey = "validatedPostAccount"
const ctxKeyPostSession ctxKey = "validatedPostSession"
const ctxKeyAmount ctxKey = "validatedAmount"
const ctxKeyPostTransfer ctxKey = "validatedPostTransfer"
const ctxKeySession ctxKey = "session"

// decodeStrict decodes a JSON body rejecting unknown fields. On failure it writes 400 and returns false.
func decodeStrict(w http.ResponseWriter, r *http.Request, v any) bool {
    dec := json.NewDecoder(r.Body)
    dec.DisallowUnknownFields()
    if err := dec.Decode(v); err != nil {
        toJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
        return false
    }
    return true
}

// validatePostAccount parses POST /v1/accounts and stores banking.OpenAccountInput.
// Names and credentials are trimmed before use.
func (s *Server) validatePostAccount() func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            var req postAccountRequest
            if !decodeStrict(w, r, &req) { return }
            in := banking.OpenAccountInput{
                OwnerName:  strings.TrimSpace(req.OwnerName),
                Credential: strings.TrimSpace(req.Credential),
            }
            if in.OwnerName == "" {
                badRequest(w, "owner_name is required")
                return
            }
            if in.Credential == "" {
                badRequest(w, "credential is required")
                return
            }
            if req.ConfirmCredential != nil {
                c := strings.TrimSpace(*req.ConfirmCredential)
                in.ConfirmCredential = &c
            }
            ctx := context.WithValue(r.Context(), ctxKeyPostAccount, in)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

// validatePostSession parses POST /v1/sessions.
func (s *Server) validatePostSession() func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            var req postSessionRequest
            if !decodeStrict(w, r, &req) { return }
            req.OwnerName = strings.TrimSpace(req.OwnerName)
            req.Credential = strings.TrimSpace(req.Credential)
            if req.OwnerName == "" || req.Credential == "" {
                badRequest(w, "owner_name and credential are required")
                return
            }
            ctx := context.WithValue(r.Context(), ctxKeyPostSession, req)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

// validateAmount parses {"amount": "..."} into a money.Amount in the ledger currency.
func (s *Server) validateAmount() func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            var req amountRequest
            if !decodeStrict(w, r, &req) { return }
            amt, err := s.svc.ParseAmount(req.Amount)
            if err != nil {
                unprocessable(w, "amount must be a decimal number", "invalid_amount")
                return
            }
            ctx := context.WithValue(r.Context(), ctxKeyAmount, amt)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

// validatePostTransfer parses POST /v1/transfers. The sender is filled in by the handler from the session.
func (s *Server) validatePostTransfer() func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            var req postTransferRequest
            if !decodeStrict(w, r, &req) { return }
            if req.ToAccountID <= 0 {
                badRequest(w, "to_account_id is required")
                return
            }
            if strings.TrimSpace(req.ToOwnerName) == "" {
                badRequest(w, "to_owner_name is required")
                return
            }
            amt, err := s.svc.ParseAmount(req.Amount)
            if err != nil {
                unprocessable(w, "amount must be a decimal number", "invalid_amount")
                return
            }
            in := banking.TransferInput{ToAccountID: req.ToAccountID, ToOwnerName: req.ToOwnerName, Amount: amt}
            ctx := context.WithValue(r.Context(), ctxKeyPostTransfer, in)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}
