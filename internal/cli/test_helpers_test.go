package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/runnerr0/diary/internal/config"
	"github.com/runnerr0/diary/internal/storage"
)

var testNow = time.Date(2025, 4, 16, 20, 30, 0, 0, time.UTC)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// newTestApp returns an app over fresh in-memory storage with a fixed clock.
func newTestApp(t *testing.T) *app {
	t.Helper()
	return newTestAppOver(t, storage.NewMemoryBlobs())
}

func newTestAppOver(t *testing.T, blobs storage.Blobs) *app {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := newApp(context.Background(), config.DefaultConfig(), blobs, logger, func() time.Time { return testNow })
	a.hints = io.Discard
	return a
}

// decodeJSON unmarshals captured output into v.
func decodeJSON(t *testing.T, out string, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(out), v), "output: %s", out)
}
