package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jcurci/bethunter/internal/cli"
	"github.com/jcurci/bethunter/internal/model"
	"github.com/jcurci/bethunter/internal/report"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "View spending and income by category",
		RunE:  runCategories,
	}

	cmd.Flags().IntP("year", "y", time.Now().Year(), "Year to analyze")
	_ = viper.BindPFlag("categories.year", cmd.Flags().Lookup("year"))

	return cmd
}

func runCategories(cmd *cobra.Command, _ []string) error {
	year := viper.GetInt("categories.year")

	store, cleanup, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	totals := report.ByCategory(store.Transactions(), start, end)

	if len(totals) == 0 {
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("No transactions recorded in %d.", year)))
		return nil
	}

	var b strings.Builder
	b.WriteString(cli.TableHeaderStyle.Render(fmt.Sprintf("%-16s %-8s %12s %6s", "CATEGORY", "KIND", "TOTAL", "COUNT")))
	b.WriteString("\n")
	for _, c := range totals {
		b.WriteString(fmt.Sprintf("%-16s %-8s %12s %6d\n",
			truncate(c.Category, 16), c.Kind,
			cli.FormatMoney(c.Total, c.Kind == model.KindIncome), c.Count))
	}

	fmt.Println(cli.RenderBox(fmt.Sprintf("%s %d by category", cli.ChartIcon, year), b.String()))
	return nil
}
