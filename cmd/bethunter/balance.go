package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcurci/bethunter/internal/cli"
)

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show current totals",
		RunE:  runBalance,
	}
}

func runBalance(cmd *cobra.Command, _ []string) error {
	store, cleanup, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	totals := store.Totals()
	content := fmt.Sprintf("Income:   %s\nExpenses: %s\nBalance:  %.2f",
		cli.FormatMoney(totals.TotalIncome, true),
		cli.FormatMoney(totals.TotalExpense, false),
		totals.Balance,
	)

	fmt.Println(cli.RenderBox(cli.CoinIcon+" Ledger balance", content))
	return nil
}
