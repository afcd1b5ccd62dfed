package db

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key has never been set or was deleted
var ErrNotFound = errors.New("key not found")

// KeyValueStore persists small JSON documents under fixed string keys.
// The file, memory, sqlite, postgres and redis backends all implement it.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
