package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jcurci/bethunter/internal/cli"
	"github.com/jcurci/bethunter/internal/ledger"
	"github.com/jcurci/bethunter/internal/model"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new transaction",
		Long: `Record a new income or expense transaction in the ledger.

Examples:
  bethunter add --amount 2500 --type income --category Salary --description "Monthly paycheck"
  bethunter add --amount 49.90 --type expense --category Education --icon book --date 2024-03-10`,
		RunE: runAdd,
	}

	cmd.Flags().Float64P("amount", "a", 0, "Transaction amount (required, positive)")
	cmd.Flags().StringP("type", "t", "", "Transaction type: income or expense (required)")
	cmd.Flags().StringP("category", "c", "", "Category label (required)")
	cmd.Flags().String("icon", "", "Category icon name")
	cmd.Flags().StringP("description", "d", "", "Free-form description")
	cmd.Flags().String("date", "", "Transaction date (YYYY-MM-DD, default today)")

	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func runAdd(cmd *cobra.Command, _ []string) error {
	amount, _ := cmd.Flags().GetFloat64("amount")
	kind, _ := cmd.Flags().GetString("type")
	category, _ := cmd.Flags().GetString("category")
	icon, _ := cmd.Flags().GetString("icon")
	description, _ := cmd.Flags().GetString("description")
	dateFlag, _ := cmd.Flags().GetString("date")

	date, err := parseDate(dateFlag)
	if err != nil {
		return err
	}

	store, cleanup, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	txn, err := store.Add(ledger.AddInput{
		Date:         date,
		Category:     category,
		CategoryIcon: icon,
		Description:  description,
		Kind:         model.Kind(kind),
		Amount:       amount,
	})
	if err != nil {
		return err
	}

	totals := store.Totals()
	slog.Info(cli.FormatSuccess(fmt.Sprintf("Recorded %s of %s in %s (id %s)",
		txn.Kind, cli.FormatMoney(txn.Amount, txn.Kind == model.KindIncome), txn.Category, shortID(txn.ID))))
	slog.Info(cli.SubtleStyle.Render(fmt.Sprintf("Balance: %.2f", totals.Balance)))
	return nil
}
