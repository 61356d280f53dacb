package v1

import (
    "time"

    "github.com/google/uuid"
    "github.com/govalues/money"
    "github.com/tinoosan/bankledger/internal/ledger"
)

type postAccountRequest struct {
    OwnerName         string  `json:"owner_name"`
    Credential        string  `json:"credential"`
    ConfirmCredential *string `json:"confirm_credential,omitempty"`
}

type postSessionRequest struct {
    OwnerName  string `json:"owner_name"`
    Credential string `json:"credential"`
}

// amountRequest is the body of deposit and withdraw calls. Amount is a decimal string, e.g. "12.50".
type amountRequest struct {
    Amount string `json:"amount"`
}

type postTransferRequest struct {
    ToAccountID int    `json:"to_account_id"`
    ToOwnerName string `json:"to_owner_name"`
    Amount      string `json:"amount"`
}

type accountResponse struct {
    AccountID    int    `json:"account_id"`
    OwnerName    string `json:"owner_name"`
    Currency     string `json:"currency"`
    Balance      string `json:"balance"`
    BalanceMinor int64  `json:"balance_minor"`
}

type balanceResponse struct {
    AccountID    int    `json:"account_id"`
    Currency     string `json:"currency"`
    Balance      string `json:"balance"`
    BalanceMinor int64  `json:"balance_minor"`
}

type sessionResponse struct {
    Token     uuid.UUID       `json:"token"`
    ExpiresAt time.Time       `json:"expires_at"`
    Account   accountResponse `json:"account"`
}

type recipientResponse struct {
    AccountID int    `json:"account_id"`
    OwnerName string `json:"owner_name"`
}

type existsResponse struct {
    OwnerName string `json:"owner_name"`
    Exists    bool   `json:"exists"`
}

func toAccountResponse(d ledger.Details) accountResponse {
    minor, _ := d.Balance.MinorUnits()
    return accountResponse{
        AccountID:    d.AccountID,
        OwnerName:    d.OwnerName,
        Currency:     d.Balance.Curr().Code(),
        Balance:      d.Balance.Decimal().String(),
        BalanceMinor: minor,
    }
}

func toBalanceResponse(accountID int, bal money.Amount) balanceResponse {
    minor, _ := bal.MinorUnits()
    return balanceResponse{
        AccountID:    accountID,
        Currency:     bal.Curr().Code(),
        Balance:      bal.Decimal().String(),
        BalanceMinor: minor,
    }
}
