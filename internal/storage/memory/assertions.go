package memory

import (
	"github.com/tinoosan/bankledger/internal/service/banking"
)

// Compile-time interface assertions documenting which interfaces Store satisfies.
var (
	_ banking.SessionStore = (*Store)(nil)
)
