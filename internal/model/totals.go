package model

// Totals holds the three derived aggregates over a transaction set.
// A Totals value is always computed from a full transaction list and never
// stored independently of it.
type Totals struct {
	TotalIncome  float64
	TotalExpense float64
	Balance      float64
}

// ComputeTotals folds over the entire transaction list and returns fresh
// aggregates. Every mutation recomputes from scratch rather than adjusting
// running counters, so the totals cannot drift from the underlying set.
func ComputeTotals(txns []Transaction) Totals {
	var t Totals
	for _, txn := range txns {
		switch txn.Kind {
		case KindIncome:
			t.TotalIncome += txn.Amount
		case KindExpense:
			t.TotalExpense += txn.Amount
		}
	}
	t.Balance = t.TotalIncome - t.TotalExpense
	return t
}
