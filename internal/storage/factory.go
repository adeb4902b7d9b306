package storage

import (
	"context"
	"fmt"
	"path/filepath"
)

// Options selects and configures a backend for Open.
type Options struct {
	Driver Driver
	// Dir is the data directory. The sqlite driver places File inside it;
	// the file driver writes one file per key into it.
	Dir string
	// File is the SQLite database file name.
	File string
}

// Open constructs the backend named by opts.Driver. An empty driver
// defaults to sqlite.
func Open(ctx context.Context, opts Options) (Blobs, error) {
	switch opts.Driver {
	case DriverSQLite, "":
		name := opts.File
		if name == "" {
			name = "diary.db"
		}
		return OpenSQLite(ctx, filepath.Join(opts.Dir, name))
	case DriverFile:
		return NewFileBlobs(opts.Dir)
	case DriverMemory:
		return NewMemoryBlobs(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
