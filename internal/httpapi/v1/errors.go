package v1

import (
    "encoding/json"
    "errors"
    "net/http"

    "github.com/tinoosan/bankledger/internal/errs"
)

// errorResponse is the standard error payload for the API.
type errorResponse struct {
    Error string `json:"error"`
    Code  string `json:"code,omitempty"`
    // CanRegister is set on failed logins so clients can offer account creation.
    CanRegister bool `json:"can_register,omitempty"`
}

// toJSON writes a JSON response with status code.
func toJSON(w http.ResponseWriter, status int, v any) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    _ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg, code string) {
    toJSON(w, status, errorResponse{Error: msg, Code: code})
}

func badRequest(w http.ResponseWriter, msg string) { writeErr(w, http.StatusBadRequest, msg, "") }
func unauthorized(w http.ResponseWriter)           { writeErr(w, http.StatusUnauthorized, "unauthorized", "unauthorized") }
func unprocessable(w http.ResponseWriter, msg, code string) {
    writeErr(w, http.StatusUnprocessableEntity, msg, code)
}

// statusFor maps a domain error to an HTTP status and error code.
func statusFor(err error) (int, string) {
    switch {
    case errors.Is(err, errs.ErrInvalidAmount):
        return http.StatusUnprocessableEntity, "invalid_amount"
    case errors.Is(err, errs.ErrInsufficientFunds):
        return http.StatusUnprocessableEntity, "insufficient_funds"
    case errors.Is(err, errs.ErrOwnerMismatch):
        return http.StatusUnprocessableEntity, "owner_mismatch"
    case errors.Is(err, errs.ErrSelfTransfer):
        return http.StatusUnprocessableEntity, "self_transfer"
    case errors.Is(err, errs.ErrRecipientNotFound):
        return http.StatusNotFound, "recipient_not_found"
    case errors.Is(err, errs.ErrDuplicateOwner):
        return http.StatusConflict, "duplicate_owner"
    case errors.Is(err, errs.ErrAuthenticationFailed):
        return http.StatusUnauthorized, "authentication_failed"
    case errors.Is(err, errs.ErrUnauthorized):
        return http.StatusUnauthorized, "unauthorized"
    case errors.Is(err, errs.ErrNotFound):
        return http.StatusNotFound, "not_found"
    case errors.Is(err, errs.ErrInvalid):
        return http.StatusBadRequest, "invalid"
    default:
        return http.StatusInternalServerError, "internal_error"
    }
}

// writeDomainErr renders err using statusFor. Internal errors are logged and
// replaced with a generic message.
func (s *Server) writeDomainErr(w http.ResponseWriter, r *http.Request, err error) {
    status, code := statusFor(err)
    if status == http.StatusInternalServerError {
        s.log.Error("request failed", "path", r.URL.Path, "err", err)
        writeErr(w, status, "internal_error", code)
        return
    }
    resp := errorResponse{Error: err.Error(), Code: code}
    if errors.Is(err, errs.ErrAuthenticationFailed) {
        // same message for unknown owner and wrong credential
        resp.Error = "invalid owner name or credential"
        resp.CanRegister = true
    }
    toJSON(w, status, resp)
}
