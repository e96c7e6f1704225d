package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/jcurci/bethunter/internal/config"
	"github.com/jcurci/bethunter/internal/kv"
	"github.com/jcurci/bethunter/internal/ledger"
)

// openLedger opens the configured database, loads the ledger, and returns
// the store plus a cleanup func that flushes pending writes.
func openLedger(ctx context.Context) (*ledger.Store, func(), error) {
	path := config.ExpandPath(viper.GetString("storage.path"))

	db, err := kv.NewBoltStore(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open ledger database: %w", err)
	}

	store := ledger.NewStore(db)
	cleanup := func() {
		_ = store.Close()
		_ = db.Close()
	}

	if err := store.Load(ctx); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	return store, cleanup, nil
}

// parseDate accepts the date formats users actually type: a bare day, a
// day with time, or full RFC 3339.
func parseDate(value string) (time.Time, error) {
	if value == "" || value == "today" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	layouts := []string{
		"2006-01-02",
		"2006-01-02 15:04",
		time.RFC3339,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (expected YYYY-MM-DD)", value)
}

// shortID trims a UUID down to the prefix shown in listings.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
