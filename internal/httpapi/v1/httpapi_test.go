package v1

import (
    "bytes"
    "encoding/json"
    "io"
    "log/slog"
    "net/http"
    "net/http/httptest"
    "strconv"
    "testing"
    "time"

    "golang.org/x/crypto/bcrypt"

    "github.com/tinoosan/bankledger/internal/ledger"
    "github.com/tinoosan/bankledger/internal/service/banking"
    "github.com/tinoosan/bankledger/internal/storage/memory"
)

func testLogger() *slog.Logger {
    return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type acctResp struct {
    AccountID    int    `json:"account_id"`
    OwnerName    string `json:"owner_name"`
    Currency     string `json:"currency"`
    Balance      string `json:"balance"`
    BalanceMinor int64  `json:"balance_minor"`
}

type sessResp struct {
    Token     string    `json:"token"`
    ExpiresAt time.Time `json:"expires_at"`
    Account   acctResp  `json:"account"`
}

type errResp struct {
    Error       string `json:"error"`
    Code        string `json:"code"`
    CanRegister bool   `json:"can_register"`
}

func setup(t *testing.T) http.Handler {
    t.Helper()
    l, err := ledger.New(ledger.Config{Currency: "USD", CredentialCost: bcrypt.MinCost})
    if err != nil {
        t.Fatalf("ledger: %v", err)
    }
    store := memory.New()
    svc := banking.New(l, store, time.Minute, testLogger())
    return New(svc, store, testLogger()).Handler()
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
    t.Helper()
    var rdr io.Reader
    if body != nil {
        b, _ := json.Marshal(body)
        rdr = bytes.NewReader(b)
    }
    req := httptest.NewRequest(method, path, rdr)
    if body != nil {
        req.Header.Set("Content-Type", "application/json")
    }
    if token != "" {
        req.Header.Set("Authorization", "Bearer "+token)
    }
    rec := httptest.NewRecorder()
    h.ServeHTTP(rec, req)
    return rec
}

func openAndLogin(t *testing.T, h http.Handler, name string) (acctResp, string) {
    t.Helper()
    rec := do(t, h, http.MethodPost, "/v1/accounts", "", map[string]any{"owner_name": name, "credential": "pw"})
    if rec.Code != http.StatusCreated {
        t.Fatalf("open %s expected 201, got %d: %s", name, rec.Code, rec.Body.String())
    }
    var ar acctResp
    _ = json.Unmarshal(rec.Body.Bytes(), &ar)
    rec = do(t, h, http.MethodPost, "/v1/sessions", "", map[string]any{"owner_name": name, "credential": "pw"})
    if rec.Code != http.StatusCreated {
        t.Fatalf("login %s expected 201, got %d: %s", name, rec.Code, rec.Body.String())
    }
    var sr sessResp
    _ = json.Unmarshal(rec.Body.Bytes(), &sr)
    return ar, sr.Token
}

func decodeErr(t *testing.T, rec *httptest.ResponseRecorder) errResp {
    t.Helper()
    var er errResp
    if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
        t.Fatalf("decode error body: %v (%s)", err, rec.Body.String())
    }
    return er
}

func TestOpenAccount_SequentialAndDuplicate(t *testing.T) {
    h := setup(t)
    alice, _ := openAndLogin(t, h, "Alice")
    bob, _ := openAndLogin(t, h, "Bob")
    if alice.AccountID != 10001 || bob.AccountID != 10002 {
        t.Fatalf("unexpected ids: %d %d", alice.AccountID, bob.AccountID)
    }
    if alice.Currency != "USD" || alice.BalanceMinor != 0 {
        t.Fatalf("unexpected account: %+v", alice)
    }

    rec := do(t, h, http.MethodPost, "/v1/accounts", "", map[string]any{"owner_name": "alice", "credential": "x"})
    if rec.Code != http.StatusConflict {
        t.Fatalf("expected 409, got %d", rec.Code)
    }
    if er := decodeErr(t, rec); er.Code != "duplicate_owner" {
        t.Fatalf("unexpected code: %+v", er)
    }

    rec = do(t, h, http.MethodGet, "/v1/accounts/exists?owner_name=ALICE", "", nil)
    if rec.Code != http.StatusOK || !bytes.Contains(rec.Body.Bytes(), []byte(`"exists":true`)) {
        t.Fatalf("exists expected true, got %d: %s", rec.Code, rec.Body.String())
    }
}

func TestOpenAccount_Validation(t *testing.T) {
    h := setup(t)
    rec := do(t, h, http.MethodPost, "/v1/accounts", "", map[string]any{"owner_name": "  ", "credential": "pw"})
    if rec.Code != http.StatusBadRequest {
        t.Fatalf("blank name expected 400, got %d", rec.Code)
    }
    rec = do(t, h, http.MethodPost, "/v1/accounts", "", map[string]any{"owner_name": "Alice", "credential": "pw", "confirm_credential": "nope"})
    if rec.Code != http.StatusBadRequest {
        t.Fatalf("mismatched confirmation expected 400, got %d", rec.Code)
    }
    rec = do(t, h, http.MethodPost, "/v1/accounts", "", map[string]any{"owner_name": "Alice", "credential": "pw", "extra": 1})
    if rec.Code != http.StatusBadRequest {
        t.Fatalf("unknown field expected 400, got %d", rec.Code)
    }
    req := httptest.NewRequest(http.MethodPost, "/v1/accounts", bytes.NewReader([]byte(`{}`)))
    req.Header.Set("Content-Type", "text/plain")
    rr := httptest.NewRecorder()
    h.ServeHTTP(rr, req)
    if rr.Code != http.StatusUnsupportedMediaType {
        t.Fatalf("expected 415, got %d", rr.Code)
    }
}

func TestLogin_FailuresIndistinguishable(t *testing.T) {
    h := setup(t)
    openAndLogin(t, h, "Alice")

    wrong := do(t, h, http.MethodPost, "/v1/sessions", "", map[string]any{"owner_name": "Alice", "credential": "wrong"})
    unknown := do(t, h, http.MethodPost, "/v1/sessions", "", map[string]any{"owner_name": "Unknown", "credential": "wrong"})
    if wrong.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
        t.Fatalf("expected 401s, got %d and %d", wrong.Code, unknown.Code)
    }
    if wrong.Body.String() != unknown.Body.String() {
        t.Fatalf("bodies differ: %s vs %s", wrong.Body.String(), unknown.Body.String())
    }
    if er := decodeErr(t, wrong); er.Code != "authentication_failed" || !er.CanRegister {
        t.Fatalf("unexpected body: %+v", er)
    }
}

func TestDepositWithdraw(t *testing.T) {
    h := setup(t)
    _, tok := openAndLogin(t, h, "Alice")

    rec := do(t, h, http.MethodPost, "/v1/accounts/me/deposit", tok, map[string]any{"amount": "100.25"})
    if rec.Code != http.StatusOK {
        t.Fatalf("deposit expected 200, got %d: %s", rec.Code, rec.Body.String())
    }
    rec = do(t, h, http.MethodPost, "/v1/accounts/me/withdraw", tok, map[string]any{"amount": "200"})
    if rec.Code != http.StatusUnprocessableEntity || decodeErr(t, rec).Code != "insufficient_funds" {
        t.Fatalf("overdraft expected 422 insufficient_funds, got %d: %s", rec.Code, rec.Body.String())
    }
    rec = do(t, h, http.MethodPost, "/v1/accounts/me/deposit", tok, map[string]any{"amount": "-1"})
    if rec.Code != http.StatusUnprocessableEntity || decodeErr(t, rec).Code != "invalid_amount" {
        t.Fatalf("negative deposit expected 422 invalid_amount, got %d: %s", rec.Code, rec.Body.String())
    }
    rec = do(t, h, http.MethodPost, "/v1/accounts/me/deposit", tok, map[string]any{"amount": "abc"})
    if rec.Code != http.StatusUnprocessableEntity {
        t.Fatalf("non-numeric deposit expected 422, got %d", rec.Code)
    }
    rec = do(t, h, http.MethodPost, "/v1/accounts/me/withdraw", tok, map[string]any{"amount": "0.25"})
    if rec.Code != http.StatusOK {
        t.Fatalf("withdraw expected 200, got %d: %s", rec.Code, rec.Body.String())
    }

    rec = do(t, h, http.MethodGet, "/v1/accounts/me", tok, nil)
    var ar acctResp
    _ = json.Unmarshal(rec.Body.Bytes(), &ar)
    if rec.Code != http.StatusOK || ar.BalanceMinor != 10000 || ar.OwnerName != "Alice" {
        t.Fatalf("unexpected details %d: %+v", rec.Code, ar)
    }
    if bytes.Contains(rec.Body.Bytes(), []byte("credential")) {
        t.Fatalf("details must not expose the credential: %s", rec.Body.String())
    }
}

func TestTransferFlow(t *testing.T) {
    h := setup(t)
    alice, aliceTok := openAndLogin(t, h, "Alice")
    bob, bobTok := openAndLogin(t, h, "Bob")
    do(t, h, http.MethodPost, "/v1/accounts/me/deposit", aliceTok, map[string]any{"amount": "50"})

    bobID := strconv.Itoa(bob.AccountID)
    rec := do(t, h, http.MethodGet, "/v1/recipients/"+bobID+"?owner_name=bob", aliceTok, nil)
    if rec.Code != http.StatusOK {
        t.Fatalf("verify recipient expected 200, got %d: %s", rec.Code, rec.Body.String())
    }
    rec = do(t, h, http.MethodGet, "/v1/recipients/"+bobID+"?owner_name=Robert", aliceTok, nil)
    if rec.Code != http.StatusUnprocessableEntity || decodeErr(t, rec).Code != "owner_mismatch" {
        t.Fatalf("expected owner_mismatch, got %d: %s", rec.Code, rec.Body.String())
    }
    rec = do(t, h, http.MethodGet, "/v1/recipients/99999?owner_name=bob", aliceTok, nil)
    if rec.Code != http.StatusNotFound || decodeErr(t, rec).Code != "recipient_not_found" {
        t.Fatalf("expected recipient_not_found, got %d: %s", rec.Code, rec.Body.String())
    }

    rec = do(t, h, http.MethodPost, "/v1/transfers", aliceTok, map[string]any{"to_account_id": bob.AccountID, "to_owner_name": "BOB", "amount": "20"})
    if rec.Code != http.StatusOK {
        t.Fatalf("transfer expected 200, got %d: %s", rec.Code, rec.Body.String())
    }
    rec = do(t, h, http.MethodPost, "/v1/transfers", aliceTok, map[string]any{"to_account_id": alice.AccountID, "to_owner_name": "Alice", "amount": "1"})
    if rec.Code != http.StatusUnprocessableEntity || decodeErr(t, rec).Code != "self_transfer" {
        t.Fatalf("expected self_transfer, got %d: %s", rec.Code, rec.Body.String())
    }
    rec = do(t, h, http.MethodPost, "/v1/transfers", aliceTok, map[string]any{"to_account_id": bob.AccountID, "to_owner_name": "Bob", "amount": "31"})
    if rec.Code != http.StatusUnprocessableEntity || decodeErr(t, rec).Code != "insufficient_funds" {
        t.Fatalf("expected insufficient_funds, got %d: %s", rec.Code, rec.Body.String())
    }

    for _, c := range []struct {
        tok  string
        want int64
    }{{aliceTok, 3000}, {bobTok, 2000}} {
        rec = do(t, h, http.MethodGet, "/v1/accounts/me", c.tok, nil)
        var ar acctResp
        _ = json.Unmarshal(rec.Body.Bytes(), &ar)
        if ar.BalanceMinor != c.want {
            t.Fatalf("balance %s = %d, want %d", ar.OwnerName, ar.BalanceMinor, c.want)
        }
    }
}

func TestSessionRequired(t *testing.T) {
    h := setup(t)
    _, tok := openAndLogin(t, h, "Alice")

    if rec := do(t, h, http.MethodGet, "/v1/accounts/me", "", nil); rec.Code != http.StatusUnauthorized {
        t.Fatalf("missing token expected 401, got %d", rec.Code)
    }
    if rec := do(t, h, http.MethodGet, "/v1/accounts/me", "not-a-uuid", nil); rec.Code != http.StatusUnauthorized {
        t.Fatalf("bad token expected 401, got %d", rec.Code)
    }
    if rec := do(t, h, http.MethodDelete, "/v1/sessions", tok, nil); rec.Code != http.StatusNoContent {
        t.Fatalf("logout expected 204, got %d", rec.Code)
    }
    if rec := do(t, h, http.MethodGet, "/v1/accounts/me", tok, nil); rec.Code != http.StatusUnauthorized {
        t.Fatalf("token after logout expected 401, got %d", rec.Code)
    }
}

func TestHealthReadyMetrics(t *testing.T) {
    h := setup(t)
    for _, p := range []string{"/healthz", "/readyz", "/metrics"} {
        if rec := do(t, h, http.MethodGet, p, "", nil); rec.Code != http.StatusOK {
            t.Fatalf("%s expected 200, got %d", p, rec.Code)
        }
    }
}
