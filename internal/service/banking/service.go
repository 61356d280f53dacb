// Package banking implements the account operations offered to API callers:
// opening accounts, session login/logout, deposits, withdrawals and routed
// transfers. Balance rules live in the ledger package; this layer adds
// sessions, logging and metrics.
package banking

import (
    "context"
    "fmt"
    "log/slog"
    "strings"
    "time"

    "github.com/google/uuid"
    "github.com/govalues/money"

    "github.com/tinoosan/bankledger/internal/errs"
    "github.com/tinoosan/bankledger/internal/ledger"
)

// OpenAccountInput carries the fields needed to open an account.
// ConfirmCredential is optional; when set it must equal Credential.
type OpenAccountInput struct {
    OwnerName         string
    Credential        string
    ConfirmCredential *string
}

// TransferInput describes a transfer from the session's account.
type TransferInput struct {
    FromAccountID int
    ToAccountID   int
    ToOwnerName   string
    Amount        money.Amount
}

// Recipient is what a sender may learn about a transfer target.
type Recipient struct {
    AccountID int
    OwnerName string
}

type Service interface {
    OpenAccount(ctx context.Context, in OpenAccountInput) (ledger.Details, error)
    AccountExists(ctx context.Context, ownerName string) bool
    Login(ctx context.Context, ownerName, credential string) (Session, ledger.Details, error)
    Logout(ctx context.Context, token uuid.UUID) error
    Authorize(ctx context.Context, token uuid.UUID) (Session, error)
    Details(ctx context.Context, accountID int) (ledger.Details, error)
    Deposit(ctx context.Context, accountID int, amount money.Amount) (money.Amount, error)
    Withdraw(ctx context.Context, accountID int, amount money.Amount) (money.Amount, error)
    VerifyRecipient(ctx context.Context, fromAccountID, toAccountID int, toOwnerName string) (Recipient, error)
    Transfer(ctx context.Context, in TransferInput) (money.Amount, error)
    ParseAmount(s string) (money.Amount, error)
}

type service struct {
    ledger   *ledger.Ledger
    sessions SessionStore
    ttl      time.Duration
    log      *slog.Logger
    now      func() time.Time
}

func New(l *ledger.Ledger, sessions SessionStore, ttl time.Duration, logger *slog.Logger) Service {
    if logger == nil {
        logger = slog.Default()
    }
    return &service{ledger: l, sessions: sessions, ttl: ttl, log: logger, now: time.Now}
}

func (s *service) OpenAccount(_ context.Context, in OpenAccountInput) (ledger.Details, error) {
    if in.ConfirmCredential != nil && *in.ConfirmCredential != in.Credential {
        observe("open_account", errs.ErrInvalid)
        return ledger.Details{}, fmt.Errorf("credentials do not match: %w", errs.ErrInvalid)
    }
    acc, err := s.ledger.CreateAccount(in.OwnerName, in.Credential)
    observe("open_account", err)
    if err != nil {
        return ledger.Details{}, err
    }
    accountsOpen.Set(float64(s.ledger.Len()))
    s.log.Info("account opened", "account_id", acc.ID())
    return acc.Details(), nil
}

func (s *service) AccountExists(_ context.Context, ownerName string) bool {
    return s.ledger.AccountExists(ownerName)
}

// Login authenticates the owner and issues a session token.
func (s *service) Login(ctx context.Context, ownerName, credential string) (Session, ledger.Details, error) {
    acc, err := s.ledger.Authenticate(ownerName, credential)
    observe("login", err)
    if err != nil {
        s.log.Debug("login failed")
        return Session{}, ledger.Details{}, err
    }
    now := s.now().UTC()
    sess, err := s.sessions.CreateSession(ctx, Session{
        Token:     uuid.New(),
        AccountID: acc.ID(),
        CreatedAt: now,
        ExpiresAt: now.Add(s.ttl),
    })
    if err != nil {
        return Session{}, ledger.Details{}, err
    }
    s.log.Info("session started", "account_id", acc.ID())
    return sess, acc.Details(), nil
}

func (s *service) Logout(ctx context.Context, token uuid.UUID) error {
    if token == uuid.Nil {
        return errs.ErrUnauthorized
    }
    return s.sessions.DeleteSession(ctx, token)
}

// Authorize resolves a live session. Unknown and expired tokens both yield ErrUnauthorized.
func (s *service) Authorize(ctx context.Context, token uuid.UUID) (Session, error) {
    if token == uuid.Nil {
        return Session{}, errs.ErrUnauthorized
    }
    sess, err := s.sessions.GetSession(ctx, token)
    if err != nil {
        return Session{}, errs.ErrUnauthorized
    }
    if sess.Expired(s.now()) {
        _ = s.sessions.DeleteSession(ctx, token)
        return Session{}, errs.ErrUnauthorized
    }
    return sess, nil
}

func (s *service) Details(_ context.Context, accountID int) (ledger.Details, error) {
    acc, err := s.ledger.FindByAccountID(accountID)
    if err != nil {
        return ledger.Details{}, err
    }
    return acc.Details(), nil
}

func (s *service) Deposit(_ context.Context, accountID int, amount money.Amount) (money.Amount, error) {
    acc, err := s.ledger.FindByAccountID(accountID)
    if err != nil {
        return money.Amount{}, err
    }
    bal, err := acc.Deposit(amount)
    observe("deposit", err)
    if err != nil {
        return money.Amount{}, err
    }
    s.log.Info("deposit applied", "account_id", accountID, "amount", amount.String())
    return bal, nil
}

func (s *service) Withdraw(_ context.Context, accountID int, amount money.Amount) (money.Amount, error) {
    acc, err := s.ledger.FindByAccountID(accountID)
    if err != nil {
        return money.Amount{}, err
    }
    bal, err := acc.Withdraw(amount)
    observe("withdraw", err)
    if err != nil {
        return money.Amount{}, err
    }
    s.log.Info("withdrawal applied", "account_id", accountID, "amount", amount.String())
    return bal, nil
}

// VerifyRecipient runs the routing checks (not self, exists, owner matches)
// so a caller can confirm the target before asking for an amount.
func (s *service) VerifyRecipient(_ context.Context, fromAccountID, toAccountID int, toOwnerName string) (Recipient, error) {
    sender, err := s.ledger.FindByAccountID(fromAccountID)
    if err != nil {
        return Recipient{}, err
    }
    recipient, err := s.ledger.ResolveRecipient(sender, toAccountID, strings.TrimSpace(toOwnerName))
    if err != nil {
        return Recipient{}, err
    }
    return Recipient{AccountID: recipient.ID(), OwnerName: recipient.OwnerName()}, nil
}

func (s *service) Transfer(_ context.Context, in TransferInput) (money.Amount, error) {
    sender, err := s.ledger.FindByAccountID(in.FromAccountID)
    if err != nil {
        return money.Amount{}, err
    }
    bal, err := s.ledger.Transfer(sender, in.ToAccountID, strings.TrimSpace(in.ToOwnerName), in.Amount)
    observe("transfer", err)
    if err != nil {
        s.log.Debug("transfer rejected", "from_account_id", in.FromAccountID, "to_account_id", in.ToAccountID, "reason", outcome(err))
        return money.Amount{}, err
    }
    s.log.Info("transfer applied", "from_account_id", in.FromAccountID, "to_account_id", in.ToAccountID, "amount", in.Amount.String())
    return bal, nil
}

func (s *service) ParseAmount(str string) (money.Amount, error) { return s.ledger.ParseAmount(str) }
