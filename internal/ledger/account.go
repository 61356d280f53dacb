package ledger

import (
    "fmt"
    "sync"

    "github.com/govalues/money"

    "github.com/tinoosan/bankledger/internal/errs"
)

// Account holds one owner's balance and credential. Accounts are only
// constructed by a Ledger; identity fields never change after creation.
// All methods are safe for concurrent use.
type Account struct {
    mu         sync.Mutex
    id         int
    ownerName  string
    credential []byte
    balance    money.Amount
}

// Details is the read-only projection of an account used for display.
// It never carries the credential.
type Details struct {
    OwnerName string
    AccountID int
    Balance   money.Amount
}

// ID returns the account number assigned by the ledger.
func (a *Account) ID() int { return a.id }

// OwnerName returns the owner's name as it was given at creation.
func (a *Account) OwnerName() string { return a.ownerName }

// Balance returns the current balance.
func (a *Account) Balance() money.Amount {
    a.mu.Lock()
    defer a.mu.Unlock()
    return a.balance
}

// Details returns a snapshot of owner name, account id and balance.
func (a *Account) Details() Details {
    a.mu.Lock()
    defer a.mu.Unlock()
    return Details{OwnerName: a.ownerName, AccountID: a.id, Balance: a.balance}
}

// Deposit credits amount and returns the new balance.
func (a *Account) Deposit(amount money.Amount) (money.Amount, error) {
    a.mu.Lock()
    defer a.mu.Unlock()
    if err := a.checkAmountLocked(amount); err != nil {
        return money.Amount{}, err
    }
    next, err := a.balance.Add(amount)
    if err != nil {
        return money.Amount{}, fmt.Errorf("deposit: %w", errs.ErrInvalidAmount)
    }
    a.balance = next
    return next, nil
}

// Withdraw debits amount and returns the new balance. A withdrawal larger
// than the balance is rejected as a whole.
func (a *Account) Withdraw(amount money.Amount) (money.Amount, error) {
    a.mu.Lock()
    defer a.mu.Unlock()
    if err := a.checkDebitLocked(amount); err != nil {
        return money.Amount{}, err
    }
    next, err := a.balance.Sub(amount)
    if err != nil {
        return money.Amount{}, fmt.Errorf("withdraw: %w", errs.ErrInvalidAmount)
    }
    a.balance = next
    return next, nil
}

// Transfer moves amount from a to recipient and returns a's new balance.
// Both account locks are held, lower account id first, while both sides are
// validated and applied, so either both balances change or neither does.
func (a *Account) Transfer(recipient *Account, amount money.Amount) (money.Amount, error) {
    if recipient == nil {
        return money.Amount{}, errs.ErrRecipientNotFound
    }
    if recipient == a || recipient.id == a.id {
        return money.Amount{}, errs.ErrSelfTransfer
    }
    unlock := lockPair(a, recipient)
    defer unlock()

    if err := a.checkDebitLocked(amount); err != nil {
        return money.Amount{}, err
    }
    if err := recipient.checkAmountLocked(amount); err != nil {
        return money.Amount{}, err
    }
    debited, err := a.balance.Sub(amount)
    if err != nil {
        return money.Amount{}, fmt.Errorf("transfer debit: %w", errs.ErrInvalidAmount)
    }
    credited, err := recipient.balance.Add(amount)
    if err != nil {
        return money.Amount{}, fmt.Errorf("transfer credit: %w", errs.ErrInvalidAmount)
    }
    a.balance = debited
    recipient.balance = credited
    return debited, nil
}

// checkAmountLocked accepts only positive amounts in the account currency
// that fit the currency's minor unit. Caller must hold a.mu.
func (a *Account) checkAmountLocked(amount money.Amount) error {
    if amount.Curr().Code() != a.balance.Curr().Code() {
        return fmt.Errorf("currency %s: %w", amount.Curr().Code(), errs.ErrInvalidAmount)
    }
    if !amount.IsPos() {
        return errs.ErrInvalidAmount
    }
    if c, err := amount.RoundToCurr().Cmp(amount); err != nil || c != 0 {
        return fmt.Errorf("more precision than %s allows: %w", amount.Curr().Code(), errs.ErrInvalidAmount)
    }
    return nil
}

// checkDebitLocked validates amount and ensures the balance covers it.
// Caller must hold a.mu.
func (a *Account) checkDebitLocked(amount money.Amount) error {
    if err := a.checkAmountLocked(amount); err != nil {
        return err
    }
    c, err := amount.Cmp(a.balance)
    if err != nil {
        return fmt.Errorf("compare balance: %w", errs.ErrInvalidAmount)
    }
    if c > 0 {
        return errs.ErrInsufficientFunds
    }
    return nil
}

// lockPair locks both accounts in ascending id order and returns the matching unlock.
func lockPair(x, y *Account) func() {
    first, second := x, y
    if y.id < x.id {
        first, second = y, x
    }
    first.mu.Lock()
    second.mu.Lock()
    return func() {
        second.mu.Unlock()
        first.mu.Unlock()
    }
}
