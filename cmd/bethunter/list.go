package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jcurci/bethunter/internal/cli"
	"github.com/jcurci/bethunter/internal/model"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, most recent first",
		RunE:  runList,
	}

	cmd.Flags().IntP("limit", "n", 0, "Show at most N transactions (0 = all)")
	cmd.Flags().String("category", "", "Only show transactions in this category")

	_ = viper.BindPFlag("list.limit", cmd.Flags().Lookup("limit"))
	_ = viper.BindPFlag("list.category", cmd.Flags().Lookup("category"))

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	limit := viper.GetInt("list.limit")
	category := viper.GetString("list.category")

	store, cleanup, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	txns := store.Transactions()
	model.SortByDateDesc(txns)

	if category != "" {
		filtered := txns[:0]
		for _, txn := range txns {
			if strings.EqualFold(txn.Category, category) {
				filtered = append(filtered, txn)
			}
		}
		txns = filtered
	}
	if limit > 0 && len(txns) > limit {
		txns = txns[:limit]
	}

	if len(txns) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No transactions recorded yet. Try 'bethunter add'."))
		return nil
	}

	var b strings.Builder
	b.WriteString(cli.TableHeaderStyle.Render(fmt.Sprintf("%-10s  %-8s  %-14s  %-28s  %10s", "DATE", "ID", "CATEGORY", "DESCRIPTION", "AMOUNT")))
	b.WriteString("\n")
	for _, txn := range txns {
		b.WriteString(fmt.Sprintf("%-10s  %-8s  %-14s  %-28s  %10s\n",
			txn.Date.Format("2006-01-02"),
			shortID(txn.ID),
			truncate(txn.Category, 14),
			truncate(txn.Description, 28),
			cli.FormatMoney(txn.Amount, txn.Kind == model.KindIncome),
		))
	}

	totals := store.Totals()
	b.WriteString("\n")
	b.WriteString(cli.SubtleStyle.Render(fmt.Sprintf("income %.2f · expense %.2f · balance %.2f",
		totals.TotalIncome, totals.TotalExpense, totals.Balance)))

	fmt.Println(b.String())
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
