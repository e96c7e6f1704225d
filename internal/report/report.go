// Package report derives display-oriented views from a transaction list:
// monthly flow buckets, per-category totals, and date-range cash flow.
// Everything here is a pure fold over the input; nothing is stored.
package report

import (
	"sort"
	"time"

	"github.com/jcurci/bethunter/internal/model"
)

// MonthFlow is one month's income/expense bucket.
type MonthFlow struct {
	Month   time.Month
	Income  float64
	Expense float64
}

// Net returns the month's income minus expense.
func (m MonthFlow) Net() float64 {
	return m.Income - m.Expense
}

// MonthlyFlow buckets the given year's transactions by calendar month.
// All twelve months are returned, zero-valued when empty, so charts get a
// stable x-axis.
func MonthlyFlow(txns []model.Transaction, year int) []MonthFlow {
	flows := make([]MonthFlow, 12)
	for i := range flows {
		flows[i].Month = time.Month(i + 1)
	}

	for _, txn := range txns {
		if txn.Date.Year() != year {
			continue
		}
		bucket := &flows[int(txn.Date.Month())-1]
		switch txn.Kind {
		case model.KindIncome:
			bucket.Income += txn.Amount
		case model.KindExpense:
			bucket.Expense += txn.Amount
		}
	}
	return flows
}

// CategoryTotal aggregates one category's transactions of a single kind.
type CategoryTotal struct {
	Category string
	Kind     model.Kind
	Total    float64
	Count    int
}

// ByCategory sums transactions per (category, kind) over [start, end),
// largest totals first. Categories are split by kind so an "Other" income
// bucket never nets against an "Other" expense bucket.
func ByCategory(txns []model.Transaction, start, end time.Time) []CategoryTotal {
	type key struct {
		category string
		kind     model.Kind
	}
	buckets := make(map[key]*CategoryTotal)

	for _, txn := range txns {
		if !inRange(txn.Date, start, end) || !txn.Kind.Valid() {
			continue
		}
		k := key{category: txn.Category, kind: txn.Kind}
		b, ok := buckets[k]
		if !ok {
			b = &CategoryTotal{Category: txn.Category, Kind: txn.Kind}
			buckets[k] = b
		}
		b.Total += txn.Amount
		b.Count++
	}

	totals := make([]CategoryTotal, 0, len(buckets))
	for _, b := range buckets {
		totals = append(totals, *b)
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Total != totals[j].Total {
			return totals[i].Total > totals[j].Total
		}
		return totals[i].Category < totals[j].Category
	})
	return totals
}

// CashFlowSummary contains income, expense, and net flow over a date range.
type CashFlowSummary struct {
	Start        time.Time
	End          time.Time
	TotalIncome  float64
	TotalExpense float64
	Net          float64
	Transactions int
}

// CashFlow totals the transactions dated within [start, end).
func CashFlow(txns []model.Transaction, start, end time.Time) CashFlowSummary {
	summary := CashFlowSummary{Start: start, End: end}
	for _, txn := range txns {
		if !inRange(txn.Date, start, end) {
			continue
		}
		switch txn.Kind {
		case model.KindIncome:
			summary.TotalIncome += txn.Amount
		case model.KindExpense:
			summary.TotalExpense += txn.Amount
		default:
			continue
		}
		summary.Transactions++
	}
	summary.Net = summary.TotalIncome - summary.TotalExpense
	return summary
}

func inRange(d, start, end time.Time) bool {
	return !d.Before(start) && d.Before(end)
}
