package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when no snapshot is stored under a key.
var ErrNotFound = errors.New("snapshot not found")

// Driver identifies a snapshot backend.
type Driver string

const (
	DriverSQLite Driver = "sqlite"
	DriverFile   Driver = "file"
	DriverMemory Driver = "memory"
)

// Blobs persists opaque snapshots under fixed string keys. Each Put fully
// overwrites the previous value for that key.
type Blobs interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]KeyInfo, error)
	Driver() Driver
	Close() error
}

// KeyInfo describes one stored snapshot.
type KeyInfo struct {
	Key       string
	Size      int64
	UpdatedAt time.Time
}
