package v1

import "github.com/tinoosan/bankledger/internal/storage/memory"

// Compile-time interface assertions for the in-memory Store against HTTP API interfaces.
var (
    _ ReadyChecker = (*memory.Store)(nil)
)
