package ledger

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/tinoosan/bankledger/internal/errs"
)

func hashCredential(credential string, cost int) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(credential), cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, fmt.Errorf("credential longer than 72 bytes: %w", errs.ErrInvalid)
	}
	if err != nil {
		return nil, fmt.Errorf("hash credential: %w", err)
	}
	return hash, nil
}

// credentialMatches compares against the stored hash. The hash is never
// exposed outside the account.
func (a *Account) credentialMatches(credential string) bool {
	return bcrypt.CompareHashAndPassword(a.credential, []byte(credential)) == nil
}
