package ledger

import "golang.org/x/text/cases"

// normalizeOwner returns the key owner names are indexed under.
// A Caser is stateful, so one is built per call.
func normalizeOwner(name string) string {
	return cases.Fold().String(name)
}

func sameOwner(a, b string) bool {
	return normalizeOwner(a) == normalizeOwner(b)
}
