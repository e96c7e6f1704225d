// Package kv defines the persistent key-value store the ledger snapshots
// into, plus its durable (bbolt) and in-memory implementations.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value exists for a key.
var ErrNotFound = errors.New("key not found")

// Store is the contract the ledger requires from durable storage: a plain
// asynchronous get/set with whole-value overwrite. No compare-and-swap,
// versioning, or transactions are expected.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
