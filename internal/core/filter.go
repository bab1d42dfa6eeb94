package core

import "strings"

// Criteria narrows which transactions are visible. An empty Category matches
// everything; a non-empty Category must match exactly. Subcategory is a
// case-insensitive substring match. Type always selects exactly one side.
type Criteria struct {
	Category    string
	Subcategory string
	Type        TransactionType
}

// Narrowed reports whether a category or subcategory filter is active. The
// statement view switches display modes on this, not on the type selection.
func (c Criteria) Narrowed() bool {
	return c.Category != "" || c.Subcategory != ""
}

// Matches applies all three predicates to a single transaction.
func (c Criteria) Matches(t Transaction) bool {
	if c.Category != "" && t.Category != c.Category {
		return false
	}
	if c.Subcategory != "" &&
		!strings.Contains(strings.ToLower(t.Subcategory), strings.ToLower(c.Subcategory)) {
		return false
	}
	return t.Type == c.Type
}

// Apply returns the transactions matching the criteria, preserving relative
// order. It is pure and idempotent.
func (c Criteria) Apply(transactions []Transaction) []Transaction {
	filtered := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if c.Matches(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
