package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jcurci/bethunter/internal/cli"
	"github.com/jcurci/bethunter/internal/report"
)

func flowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flow",
		Short: "View monthly income/expense flow",
		Long: `Show a month-by-month breakdown of income, expense, and net flow
for a year of ledger activity.`,
		RunE: runFlow,
	}

	cmd.Flags().IntP("year", "y", time.Now().Year(), "Year to analyze")
	_ = viper.BindPFlag("flow.year", cmd.Flags().Lookup("year"))

	return cmd
}

func runFlow(cmd *cobra.Command, _ []string) error {
	year := viper.GetInt("flow.year")

	store, cleanup, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	flows := report.MonthlyFlow(store.Transactions(), year)

	var b strings.Builder
	b.WriteString(cli.TableHeaderStyle.Render(fmt.Sprintf("%-10s %12s %12s %12s", "MONTH", "INCOME", "EXPENSE", "NET")))
	b.WriteString("\n")

	var yearIncome, yearExpense float64
	for _, m := range flows {
		if m.Income == 0 && m.Expense == 0 {
			continue
		}
		yearIncome += m.Income
		yearExpense += m.Expense
		b.WriteString(fmt.Sprintf("%-10s %12.2f %12.2f %12.2f\n", m.Month, m.Income, m.Expense, m.Net()))
	}

	if yearIncome == 0 && yearExpense == 0 {
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("No transactions recorded in %d.", year)))
		return nil
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total: income %.2f, expense %.2f, net %.2f",
		yearIncome, yearExpense, yearIncome-yearExpense))

	fmt.Println(cli.RenderBox(fmt.Sprintf("%s %d financial flow", cli.ChartIcon, year), b.String()))
	return nil
}
