// Package ledger holds the account registry and the balance rules: deposits,
// withdrawals and transfers between accounts of a single currency.
package ledger

import (
    "errors"
    "fmt"
    "strings"
    "sync"

    "github.com/govalues/money"
    "golang.org/x/crypto/bcrypt"

    "github.com/tinoosan/bankledger/internal/errs"
)

// FirstAccountID is the number given to the first account a Ledger opens.
const FirstAccountID = 10001

// Config controls how a Ledger is built.
type Config struct {
    // Currency is the ISO 4217 code every balance is held in.
    Currency string
    // CredentialCost is the bcrypt cost used to hash credentials.
    // Zero means bcrypt.DefaultCost.
    CredentialCost int
}

// Ledger owns every Account and keeps two indices over them: by account id
// and by case-folded owner name. Both are written under one lock so an
// account is visible through both or neither.
type Ledger struct {
    mu       sync.RWMutex
    currency money.Currency
    cost     int
    decoy    []byte
    byID     map[int]*Account
    idByName map[string]int
    nextID   int
}

// New returns an empty ledger.
func New(cfg Config) (*Ledger, error) {
    code := strings.TrimSpace(cfg.Currency)
    if code == "" {
        code = "USD"
    }
    curr, err := money.ParseCurr(code)
    if err != nil {
        return nil, fmt.Errorf("currency %q: %w", code, errs.ErrInvalid)
    }
    cost := cfg.CredentialCost
    if cost == 0 {
        cost = bcrypt.DefaultCost
    }
    if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
        return nil, fmt.Errorf("credential cost %d: %w", cost, errs.ErrInvalid)
    }
    // Unknown owners are checked against this hash so a failed login costs
    // the same whether or not the name exists.
    decoy, err := bcrypt.GenerateFromPassword([]byte("decoy-credential"), cost)
    if err != nil {
        return nil, err
    }
    return &Ledger{
        currency: curr,
        cost:     cost,
        decoy:    decoy,
        byID:     make(map[int]*Account),
        idByName: make(map[string]int),
        nextID:   FirstAccountID,
    }, nil
}

// Currency returns the ledger's currency code.
func (l *Ledger) Currency() string { return l.currency.Code() }

// Zero returns a zero amount in the ledger currency.
func (l *Ledger) Zero() money.Amount {
    z, _ := money.NewAmountFromMinorUnits(l.currency.Code(), 0)
    return z
}

// ParseAmount parses a decimal string such as "12.50" in the ledger currency.
func (l *Ledger) ParseAmount(s string) (money.Amount, error) {
    amt, err := money.ParseAmount(l.currency.Code(), strings.TrimSpace(s))
    if err != nil {
        return money.Amount{}, fmt.Errorf("parse %q: %w", s, errs.ErrInvalidAmount)
    }
    return amt, nil
}

// CreateAccount opens an account with a zero balance. Owner names are
// unique ignoring case; the first spelling registered is the one kept.
func (l *Ledger) CreateAccount(ownerName, credential string) (*Account, error) {
    if strings.TrimSpace(ownerName) == "" {
        return nil, fmt.Errorf("owner name is required: %w", errs.ErrInvalid)
    }
    if strings.TrimSpace(credential) == "" {
        return nil, fmt.Errorf("credential is required: %w", errs.ErrInvalid)
    }
    key := normalizeOwner(ownerName)
    if l.exists(key) {
        return nil, errs.ErrDuplicateOwner
    }
    hash, err := hashCredential(credential, l.cost)
    if err != nil {
        return nil, err
    }

    l.mu.Lock()
    defer l.mu.Unlock()
    // re-check: another caller may have registered the name while hashing
    if _, ok := l.idByName[key]; ok {
        return nil, errs.ErrDuplicateOwner
    }
    acc := &Account{
        id:         l.nextAccountIDLocked(),
        ownerName:  ownerName,
        credential: hash,
        balance:    l.Zero(),
    }
    l.byID[acc.id] = acc
    l.idByName[key] = acc.id
    return acc, nil
}

// NextAccountID hands out the current counter value and advances it.
// CreateAccount reserves its id this way; ids are never reused.
func (l *Ledger) NextAccountID() int {
    l.mu.Lock()
    defer l.mu.Unlock()
    return l.nextAccountIDLocked()
}

// nextAccountIDLocked requires l.mu held for writing.
func (l *Ledger) nextAccountIDLocked() int {
    id := l.nextID
    l.nextID++
    return id
}

// Authenticate returns the account only when both the owner name (ignoring
// case) and the credential match. Every failure is ErrAuthenticationFailed.
func (l *Ledger) Authenticate(ownerName, credential string) (*Account, error) {
    acc, err := l.FindByOwnerName(ownerName)
    if err != nil {
        _ = bcrypt.CompareHashAndPassword(l.decoy, []byte(credential))
        return nil, errs.ErrAuthenticationFailed
    }
    if !acc.credentialMatches(credential) {
        return nil, errs.ErrAuthenticationFailed
    }
    return acc, nil
}

// FindByAccountID resolves an account by number.
func (l *Ledger) FindByAccountID(id int) (*Account, error) {
    l.mu.RLock()
    defer l.mu.RUnlock()
    acc, ok := l.byID[id]
    if !ok {
        return nil, errs.ErrNotFound
    }
    return acc, nil
}

// FindByOwnerName resolves an account by owner name, ignoring case.
func (l *Ledger) FindByOwnerName(name string) (*Account, error) {
    l.mu.RLock()
    defer l.mu.RUnlock()
    id, ok := l.idByName[normalizeOwner(name)]
    if !ok {
        return nil, errs.ErrNotFound
    }
    return l.byID[id], nil
}

// AccountExists reports whether name is registered, ignoring case.
func (l *Ledger) AccountExists(name string) bool { return l.exists(normalizeOwner(name)) }

func (l *Ledger) exists(key string) bool {
    l.mu.RLock()
    defer l.mu.RUnlock()
    _, ok := l.idByName[key]
    return ok
}

// Len returns the number of accounts.
func (l *Ledger) Len() int {
    l.mu.RLock()
    defer l.mu.RUnlock()
    return len(l.byID)
}

// ResolveRecipient performs the checks that precede a transfer amount:
// the target must not be the sender, must exist, and must belong to
// expectedOwner (ignoring case).
func (l *Ledger) ResolveRecipient(sender *Account, targetID int, expectedOwner string) (*Account, error) {
    if sender == nil {
        return nil, errs.ErrInvalid
    }
    if targetID == sender.ID() {
        return nil, errs.ErrSelfTransfer
    }
    recipient, err := l.FindByAccountID(targetID)
    if errors.Is(err, errs.ErrNotFound) {
        return nil, errs.ErrRecipientNotFound
    }
    if err != nil {
        return nil, err
    }
    if !sameOwner(recipient.OwnerName(), expectedOwner) {
        return nil, errs.ErrOwnerMismatch
    }
    return recipient, nil
}

// Transfer routes amount from sender to the account targetID owned by
// expectedOwner and returns the sender's new balance.
func (l *Ledger) Transfer(sender *Account, targetID int, expectedOwner string, amount money.Amount) (money.Amount, error) {
    recipient, err := l.ResolveRecipient(sender, targetID, expectedOwner)
    if err != nil {
        return money.Amount{}, err
    }
    return sender.Transfer(recipient, amount)
}
