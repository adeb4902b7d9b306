package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backends returns one fresh instance of every Blobs implementation.
func backends(t *testing.T) map[string]Blobs {
	t.Helper()
	ctx := context.Background()

	sqlite, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	sqliteFile, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "nested", "diary.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteFile.Close() })

	files, err := NewFileBlobs(filepath.Join(t.TempDir(), "snapshots"))
	require.NoError(t, err)

	return map[string]Blobs{
		"sqlite-memory": sqlite,
		"sqlite-file":   sqliteFile,
		"file":          files,
		"memory":        NewMemoryBlobs(),
	}
}

func TestBlobs_GetMissing(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := b.Get(context.Background(), "entries")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestBlobs_PutGetOverwrite(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, b.Put(ctx, "entries", []byte(`[1]`)))
			require.NoError(t, b.Put(ctx, "entries", []byte(`[1,2]`)))

			got, err := b.Get(ctx, "entries")
			require.NoError(t, err)
			assert.Equal(t, `[1,2]`, string(got))
		})
	}
}

func TestBlobs_KeysAreIndependent(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, b.Put(ctx, "matches", []byte(`["m"]`)))
			require.NoError(t, b.Put(ctx, "players", []byte(`["p"]`)))

			keys, err := b.Keys(ctx)
			require.NoError(t, err)
			require.Len(t, keys, 2)
			assert.Equal(t, "matches", keys[0].Key)
			assert.Equal(t, "players", keys[1].Key)
			assert.Equal(t, int64(5), keys[0].Size)

			got, err := b.Get(ctx, "players")
			require.NoError(t, err)
			assert.Equal(t, `["p"]`, string(got))
		})
	}
}

func TestBlobs_Delete(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, b.Put(ctx, "settings", []byte(`{}`)))
			require.NoError(t, b.Delete(ctx, "settings"))
			// Deleting again is a no-op.
			require.NoError(t, b.Delete(ctx, "settings"))

			_, err := b.Get(ctx, "settings")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestBlobs_GetReturnsCopy(t *testing.T) {
	b := NewMemoryBlobs()
	ctx := context.Background()
	data := []byte(`abc`)
	require.NoError(t, b.Put(ctx, "k", data))
	data[0] = 'z'

	got, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFileBlobs_RejectsUnsafeKeys(t *testing.T) {
	b, err := NewFileBlobs(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../escape", "a/b", ".hidden"} {
		err := b.Put(context.Background(), key, []byte(`x`))
		assert.Error(t, err, "key %q", key)
	}
}

func TestFileBlobs_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	b, err := NewFileBlobs(dir)
	require.NoError(t, err)

	require.NoError(t, b.Put(context.Background(), "entries", []byte(`[]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "entries.json", entries[0].Name())
}

func TestSQLiteBlobs_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "diary.db")

	b, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, b.Put(ctx, "entries", []byte(`{"version":1}`)))
	require.NoError(t, b.Close())

	b, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer b.Close()

	got, err := b.Get(ctx, "entries")
	require.NoError(t, err)
	assert.Equal(t, `{"version":1}`, string(got))
}

func TestOpen_Drivers(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		driver Driver
		want   Driver
	}{
		{"", DriverSQLite},
		{DriverSQLite, DriverSQLite},
		{DriverFile, DriverFile},
		{DriverMemory, DriverMemory},
	}
	for _, tc := range tests {
		b, err := Open(ctx, Options{Driver: tc.driver, Dir: dir})
		require.NoError(t, err, "driver %q", tc.driver)
		assert.Equal(t, tc.want, b.Driver())
		require.NoError(t, b.Close())
	}

	_, err := Open(ctx, Options{Driver: "s3", Dir: dir})
	assert.ErrorContains(t, err, "unknown storage driver")
}
