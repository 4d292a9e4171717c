// Package storage provides the durable key-value snapshot stores that
// back the expense and debt collections. Each logical collection is
// serialized as a whole document under a fixed key; there is no
// incremental persistence.
package storage

import (
	"context"
	"errors"
)

// Snapshot keys. These match the persist names the collections have
// always been stored under, so existing data rehydrates unchanged.
const (
	ExpenseSnapshotKey = "expense-storage"
	DebtSnapshotKey    = "debt-storage"
)

// ErrKeyNotFound is returned by Get when no snapshot exists for a key.
var ErrKeyNotFound = errors.New("storage: key not found")

// KV is the durable byte store contract. Put overwrites the previous
// value for the key in full.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}
