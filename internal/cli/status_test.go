package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/diary/internal/storage"
)

func TestStatus_HumanOutput(t *testing.T) {
	a := newTestApp(t)
	addEntry(t, a, AddCommand{Title: "x"})
	addMatch(t, a, MatchAddCommand{Opponent: "Hawks", MVP: "Sam"})

	out := captureOutput(t, func() {
		require.NoError(t, (&StatusCommand{globals: &GlobalFlags{}, version: "1.0.0", app: a}).Execute(nil))
	})
	assert.Contains(t, out, "Diary Status")
	assert.Contains(t, out, "Version:       1.0.0")
	assert.Contains(t, out, "Storage:       memory")
	assert.Contains(t, out, "Entries:       1")
	assert.Contains(t, out, "Matches:       1")
	assert.Contains(t, out, "Players:       1")
	assert.Contains(t, out, "Onboarding:    pending")
	assert.Contains(t, out, "entries")
	assert.Contains(t, out, "categories")
}

func TestStatus_JSONOutput(t *testing.T) {
	a := newTestApp(t)
	addEntry(t, a, AddCommand{Title: "x"})

	var got statusJSON
	out := captureOutput(t, func() {
		require.NoError(t, (&StatusCommand{globals: &GlobalFlags{JSON: true}, version: "1.0.0", app: a}).Execute(nil))
	})
	decodeJSON(t, out, &got)

	assert.Equal(t, "1.0.0", got.Version)
	assert.Equal(t, "memory", got.Driver)
	assert.Equal(t, 1, got.Entries)
	assert.Equal(t, 5, got.Categories)
	assert.Empty(t, got.PersistErrors)

	keys := make([]string, len(got.Snapshots))
	for i, s := range got.Snapshots {
		keys[i] = s.Key
		assert.Positive(t, s.SizeBytes)
	}
	assert.Equal(t, []string{"categories", "entries"}, keys)
}

// brokenPut fails every write to one key.
type brokenPut struct {
	*storage.MemoryBlobs
	key string
}

func (b brokenPut) Put(ctx context.Context, key string, data []byte) error {
	if key == b.key {
		return errors.New("read-only filesystem")
	}
	return b.MemoryBlobs.Put(ctx, key, data)
}

func TestStatus_ReportsPersistFailure(t *testing.T) {
	a := newTestAppOver(t, brokenPut{storage.NewMemoryBlobs(), "entries"})

	err := (&AddCommand{Title: "x", globals: &GlobalFlags{}, app: a}).Execute(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only filesystem")

	var got statusJSON
	out := captureOutput(t, func() {
		require.NoError(t, (&StatusCommand{globals: &GlobalFlags{JSON: true}, app: a}).Execute(nil))
	})
	decodeJSON(t, out, &got)
	assert.Equal(t, 1, got.Entries)
	require.Len(t, got.PersistErrors, 1)
	assert.Contains(t, got.PersistErrors[0], "read-only filesystem")
}

func TestStatus_ReportsCategoryPersistFailure(t *testing.T) {
	a := newTestAppOver(t, brokenPut{storage.NewMemoryBlobs(), "categories"})

	var got statusJSON
	out := captureOutput(t, func() {
		require.NoError(t, (&StatusCommand{globals: &GlobalFlags{JSON: true}, app: a}).Execute(nil))
	})
	decodeJSON(t, out, &got)
	assert.Equal(t, 5, got.Categories)
	require.Len(t, got.PersistErrors, 1)
	assert.Contains(t, got.PersistErrors[0], `"categories"`)
}

func TestOnboard(t *testing.T) {
	a := newTestApp(t)

	out := captureOutput(t, func() {
		require.NoError(t, (&OnboardCommand{globals: &GlobalFlags{}, app: a}).Execute(nil))
	})
	assert.Contains(t, out, "Welcome to diary.")
	assert.True(t, a.settings.OnboardingComplete())
	require.NotNil(t, a.settings.Values().OnboardedAt)
	assert.Equal(t, testNow.UTC(), *a.settings.Values().OnboardedAt)

	out = captureOutput(t, func() {
		require.NoError(t, (&OnboardCommand{globals: &GlobalFlags{}, app: a}).Execute(nil))
	})
	assert.Contains(t, out, "already complete")

	b := newTestAppOver(t, a.blobs)
	assert.True(t, b.settings.OnboardingComplete())

	out = captureOutput(t, func() {
		require.NoError(t, (&OnboardCommand{Reset: true, globals: &GlobalFlags{}, app: b}).Execute(nil))
	})
	assert.Contains(t, out, "Onboarding reset")
	assert.False(t, b.settings.OnboardingComplete())
}

func TestFirstRunHint(t *testing.T) {
	a := newTestApp(t)
	var hints bytes.Buffer
	a.hints = &hints

	captureOutput(t, func() {
		require.NoError(t, (&ListCommand{globals: &GlobalFlags{}, app: a}).Execute(nil))
	})
	assert.Contains(t, hints.String(), "diary onboard")

	hints.Reset()
	captureOutput(t, func() {
		require.NoError(t, (&ListCommand{globals: &GlobalFlags{JSON: true}, app: a}).Execute(nil))
	})
	assert.Empty(t, hints.String())

	captureOutput(t, func() {
		require.NoError(t, (&OnboardCommand{globals: &GlobalFlags{}, app: a}).Execute(nil))
	})
	assert.Empty(t, hints.String())

	captureOutput(t, func() {
		require.NoError(t, (&ListCommand{globals: &GlobalFlags{}, app: a}).Execute(nil))
	})
	assert.Empty(t, hints.String())
}
