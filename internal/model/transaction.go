package model

import (
	"sort"
	"time"
)

// Kind indicates whether a transaction moves money into or out of the ledger.
type Kind string

const (
	// KindIncome marks money coming in.
	KindIncome Kind = "income"
	// KindExpense marks money going out.
	KindExpense Kind = "expense"
)

// Valid reports whether k is one of the two recognized kinds.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Transaction represents a single financial movement recorded by the user.
// The JSON tags define the persisted snapshot format; dates round-trip
// through RFC 3339 strings.
type Transaction struct {
	Date         time.Time `json:"date"`
	ID           string    `json:"id"`
	Category     string    `json:"category"`
	CategoryIcon string    `json:"categoryIcon"`
	Description  string    `json:"description"`
	Kind         Kind      `json:"type"`
	Amount       float64   `json:"amount"`
}

// SortByDateDesc orders transactions most recent first, the conventional
// display order. Ties keep their relative (insertion) order.
func SortByDateDesc(txns []Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Date.After(txns[j].Date)
	})
}
