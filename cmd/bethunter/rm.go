package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jcurci/bethunter/internal/cli"
	"github.com/jcurci/bethunter/internal/model"
)

func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a transaction by id",
		Long: `Delete a transaction from the ledger.

Accepts a full transaction id or the unique short prefix shown by 'bethunter list'.
Deleting an id that does not exist is not an error.`,
		Args: cobra.ExactArgs(1),
		RunE: runRm,
	}
}

func runRm(cmd *cobra.Command, args []string) error {
	store, cleanup, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	id := args[0]

	// Resolve a short prefix to a full id when it is unambiguous.
	if matches := matchPrefix(store.Transactions(), id); len(matches) == 1 {
		id = matches[0]
	} else if len(matches) > 1 {
		return fmt.Errorf("id prefix %q is ambiguous (%d matches)", id, len(matches))
	}

	removed, err := store.Delete(id)
	if err != nil {
		return err
	}

	if !removed {
		slog.Warn(cli.FormatWarning(fmt.Sprintf("No transaction with id %s; nothing deleted", id)))
		return nil
	}

	slog.Info(cli.FormatSuccess(fmt.Sprintf("Deleted transaction %s", shortID(id))))
	slog.Info(cli.SubtleStyle.Render(fmt.Sprintf("Balance: %.2f", store.Totals().Balance)))
	return nil
}

func matchPrefix(txns []model.Transaction, prefix string) []string {
	var ids []string
	for _, txn := range txns {
		if txn.ID == prefix {
			return []string{txn.ID}
		}
		if strings.HasPrefix(txn.ID, prefix) {
			ids = append(ids, txn.ID)
		}
	}
	return ids
}
