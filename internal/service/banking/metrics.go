package banking

import (
    "errors"

    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"

    "github.com/tinoosan/bankledger/internal/errs"
)

var (
    operationsTotal = promauto.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "bank",
            Name:      "operations_total",
            Help:      "Banking operations by outcome",
        },
        []string{"operation", "outcome"},
    )
    accountsOpen = promauto.NewGauge(
        prometheus.GaugeOpts{
            Namespace: "bank",
            Name:      "accounts",
            Help:      "Number of accounts in the ledger",
        },
    )
)

func observe(op string, err error) {
    operationsTotal.WithLabelValues(op, outcome(err)).Inc()
}

// outcome maps an error to a bounded label value.
func outcome(err error) string {
    if err == nil {
        return "ok"
    }
    for _, known := range []error{
        errs.ErrInvalidAmount,
        errs.ErrInsufficientFunds,
        errs.ErrRecipientNotFound,
        errs.ErrOwnerMismatch,
        errs.ErrSelfTransfer,
        errs.ErrDuplicateOwner,
        errs.ErrAuthenticationFailed,
        errs.ErrUnauthorized,
        errs.ErrNotFound,
        errs.ErrInvalid,
    } {
        if errors.Is(err, known) {
            return known.Error()
        }
    }
    return "error"
}
