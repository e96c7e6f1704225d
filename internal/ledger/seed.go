package ledger

import (
	"time"

	"github.com/jcurci/bethunter/internal/model"
)

// SeedTransactions returns the fixed sample ledger installed on first run,
// before the user has recorded anything. The list is deterministic: ids and
// dates are constants so repeated seeding produces an identical snapshot.
func SeedTransactions() []model.Transaction {
	return []model.Transaction{
		{
			ID:           "seed-0001",
			Date:         time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC),
			Category:     "Salary",
			CategoryIcon: "cash",
			Description:  "Monthly paycheck",
			Kind:         model.KindIncome,
			Amount:       2500,
		},
		{
			ID:           "seed-0002",
			Date:         time.Date(2024, time.March, 3, 18, 30, 0, 0, time.UTC),
			Category:     "Food",
			CategoryIcon: "cart",
			Description:  "Groceries",
			Kind:         model.KindExpense,
			Amount:       180.45,
		},
		{
			ID:           "seed-0003",
			Date:         time.Date(2024, time.March, 5, 8, 15, 0, 0, time.UTC),
			Category:     "Transport",
			CategoryIcon: "bus",
			Description:  "Monthly transit pass",
			Kind:         model.KindExpense,
			Amount:       60,
		},
		{
			ID:           "seed-0004",
			Date:         time.Date(2024, time.March, 10, 14, 0, 0, 0, time.UTC),
			Category:     "Education",
			CategoryIcon: "book",
			Description:  "Online course subscription",
			Kind:         model.KindExpense,
			Amount:       49.90,
		},
		{
			ID:           "seed-0005",
			Date:         time.Date(2024, time.March, 15, 11, 0, 0, 0, time.UTC),
			Category:     "Freelance",
			CategoryIcon: "laptop",
			Description:  "Design gig",
			Kind:         model.KindIncome,
			Amount:       350,
		},
		{
			ID:           "seed-0006",
			Date:         time.Date(2024, time.March, 20, 21, 0, 0, 0, time.UTC),
			Category:     "Entertainment",
			CategoryIcon: "tv",
			Description:  "Streaming service",
			Kind:         model.KindExpense,
			Amount:       19.90,
		},
	}
}
