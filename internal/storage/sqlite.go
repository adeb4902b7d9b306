package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteBlobs implements Blobs on a single SQLite table.
type SQLiteBlobs struct {
	db     *sql.DB
	ownsDB bool

	get    *sql.Stmt
	put    *sql.Stmt
	delete *sql.Stmt
}

// OpenSQLite opens (or creates) the database file at path, applies
// migrations and returns a ready store. Pass ":memory:" for a private
// in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteBlobs, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection serializes writers and keeps :memory: coherent.
	db.SetMaxOpenConns(1)

	if err := NewMigrationRunner(db).Run(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	s, err := NewSQLiteBlobs(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	s.ownsDB = true
	return s, nil
}

// NewSQLiteBlobs wraps an already-opened and migrated database. The caller
// keeps ownership of db.
func NewSQLiteBlobs(db *sql.DB) (*SQLiteBlobs, error) {
	s := &SQLiteBlobs{db: db}
	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}
	return s, nil
}

func (s *SQLiteBlobs) prepareStatements() error {
	var err error

	s.get, err = s.db.Prepare(`SELECT body FROM snapshots WHERE key = ?`)
	if err != nil {
		return err
	}

	s.put, err = s.db.Prepare(`
		INSERT INTO snapshots (key, body, byte_size, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			body = excluded.body,
			byte_size = excluded.byte_size,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return err
	}

	s.delete, err = s.db.Prepare(`DELETE FROM snapshots WHERE key = ?`)
	return err
}

// Get returns the snapshot stored under key.
func (s *SQLiteBlobs) Get(ctx context.Context, key string) ([]byte, error) {
	var body []byte
	err := s.get.QueryRowContext(ctx, key).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get snapshot %q: %w", key, err)
	}
	return body, nil
}

// Put overwrites the snapshot stored under key.
func (s *SQLiteBlobs) Put(ctx context.Context, key string, data []byte) error {
	ts := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.put.ExecContext(ctx, key, data, len(data), ts); err != nil {
		return fmt.Errorf("put snapshot %q: %w", key, err)
	}
	return nil
}

// Delete removes the snapshot under key. Missing keys are not an error.
func (s *SQLiteBlobs) Delete(ctx context.Context, key string) error {
	if _, err := s.delete.ExecContext(ctx, key); err != nil {
		return fmt.Errorf("delete snapshot %q: %w", key, err)
	}
	return nil
}

// Keys lists stored snapshots ordered by key.
func (s *SQLiteBlobs) Keys(ctx context.Context) ([]KeyInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, byte_size, updated_at FROM snapshots ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	out := []KeyInfo{}
	for rows.Next() {
		var (
			ki    KeyInfo
			tsStr string
		)
		if err := rows.Scan(&ki.Key, &ki.Size, &tsStr); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		ki.UpdatedAt, _ = parseTimestamp(tsStr)
		out = append(out, ki)
	}
	return out, rows.Err()
}

// Driver reports DriverSQLite.
func (s *SQLiteBlobs) Driver() Driver { return DriverSQLite }

// Close releases prepared statements, and the database when it was opened
// by OpenSQLite.
func (s *SQLiteBlobs) Close() error {
	for _, stmt := range []*sql.Stmt{s.get, s.put, s.delete} {
		if stmt != nil {
			stmt.Close()
		}
	}
	if s.ownsDB {
		return s.db.Close()
	}
	return nil
}

// parseTimestamp tries several common SQLite timestamp formats.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
}
