package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/diary/internal/stats"
	"github.com/runnerr0/diary/internal/storage"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))
	return cfgPath
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "~/.config/diary", cfg.Storage.Path)
	assert.Equal(t, "diary.db", cfg.Storage.SQLiteFile)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "auto", cfg.Logging.Color)
	assert.False(t, cfg.Display.CaseSensitiveSort)
	assert.Equal(t, "today", cfg.Display.StreakAnchor)
	assert.Equal(t, "newest", cfg.Display.DefaultSort)
	assert.Equal(t, 5, cfg.Display.TopTags)
	assert.Equal(t, DefaultCategories(), cfg.Categories.Defaults)
	assert.NoError(t, cfg.Validate())
}

func TestLoadValidYAMLOverridesDefaults(t *testing.T) {
	cfgPath := writeConfig(t, `
storage:
  driver: file
  path: /tmp/diary-data
logging:
  level: debug
display:
  streak_anchor: yesterday
  case_sensitive_sort: true
`)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	// Overridden values
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, "/tmp/diary-data", cfg.Storage.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Display.CaseSensitiveSort)
	assert.Equal(t, stats.AnchorYesterday, cfg.StreakAnchor())

	// Non-overridden values remain defaults
	assert.Equal(t, "diary.db", cfg.Storage.SQLiteFile)
	assert.Equal(t, "auto", cfg.Logging.Color)
	assert.Equal(t, 5, cfg.Display.TopTags)
}

func TestLoadInvalidYAMLReturnsError(t *testing.T) {
	_, err := Load(writeConfig(t, ":::not valid yaml{{{"))
	assert.Error(t, err)
}

func TestLoadNonExistentFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing", "config.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name, yaml, want string
	}{
		{"driver", "storage:\n  driver: postgres\n", "storage.driver"},
		{"empty path", "storage:\n  path: \"\"\n", "storage.path"},
		{"level", "logging:\n  level: loud\n", "logging.level"},
		{"color", "logging:\n  color: sometimes\n", "logging.color"},
		{"anchor", "display:\n  streak_anchor: tomorrow\n", "display.streak_anchor"},
		{"sort", "display:\n  default_sort: random\n", "display.default_sort"},
		{"top tags", "display:\n  top_tags: -1\n", "display.top_tags"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestMemoryDriverAllowsEmptyPath(t *testing.T) {
	cfg, err := Load(writeConfig(t, "storage:\n  driver: memory\n  path: \"\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Driver)
}

func TestLoadOrCreateCreatesDefaultsWhenMissing(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "sub", "deep", "config.yaml")

	cfg, err := LoadOrCreateAt(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)

	// File should now exist on disk
	_, statErr := os.Stat(cfgPath)
	assert.NoError(t, statErr)

	// File should be valid YAML loadable again
	cfg2, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, cfg, cfg2)
}

func TestLoadOrCreateLoadsExistingFile(t *testing.T) {
	cfgPath := writeConfig(t, "display:\n  top_tags: 10\n")

	cfg, err := LoadOrCreateAt(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Display.TopTags)
	// Other fields remain defaults
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
}

func TestLoadReplacesCategoryDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "categories:\n  defaults:\n    - Floral\n    - Woody\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Floral", "Woody"}, cfg.Categories.Defaults)
}

func TestStorageOptionsExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	opts, err := DefaultConfig().StorageOptions()
	require.NoError(t, err)
	assert.Equal(t, storage.DriverSQLite, opts.Driver)
	assert.Equal(t, filepath.Join(home, ".config", "diary"), opts.Dir)
	assert.Equal(t, "diary.db", opts.File)
}

func TestResolvePath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ResolvePath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "diary", "config.yaml"), got)

	got, err = ResolvePath("/etc/diary.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/etc/diary.yaml", got)
}
