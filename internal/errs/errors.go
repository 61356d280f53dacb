package errs

import "errors"

// Common sentinel errors for cross-layer signaling.
var (
	ErrNotFound = errors.New("not_found")
	ErrInvalid  = errors.New("invalid")
	// ErrUnauthorized is returned for missing, unknown or expired sessions.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidAmount rejects non-positive amounts, or amounts in a foreign currency or finer than its minor unit.
	ErrInvalidAmount = errors.New("invalid_amount")
	// ErrInsufficientFunds rejects debits larger than the available balance.
	ErrInsufficientFunds = errors.New("insufficient_funds")
	ErrRecipientNotFound = errors.New("recipient_not_found")
	// ErrOwnerMismatch indicates the recipient's owner name differs from the name supplied for verification.
	ErrOwnerMismatch = errors.New("owner_mismatch")
	ErrSelfTransfer  = errors.New("self_transfer")
	// ErrDuplicateOwner indicates an account already exists for the owner name (case-insensitive).
	ErrDuplicateOwner = errors.New("duplicate_owner")
	// ErrAuthenticationFailed covers both unknown owners and wrong credentials.
	ErrAuthenticationFailed = errors.New("authentication_failed")
)
