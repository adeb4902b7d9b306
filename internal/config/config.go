package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/runnerr0/diary/internal/journal"
	"github.com/runnerr0/diary/internal/stats"
	"github.com/runnerr0/diary/internal/storage"
)

// Default config file path.
const DefaultConfigPath = "~/.config/diary/config.yaml"

// Config holds all diary configuration.
type Config struct {
	Storage    StorageConfig    `yaml:"storage"`
	Logging    LoggingConfig    `yaml:"logging"`
	Display    DisplayConfig    `yaml:"display"`
	Categories CategoriesConfig `yaml:"categories"`
}

type StorageConfig struct {
	Driver     string `yaml:"driver"`
	Path       string `yaml:"path"`
	SQLiteFile string `yaml:"sqlite_file"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	// Color is auto, always or never.
	Color string `yaml:"color"`
}

type DisplayConfig struct {
	CaseSensitiveSort bool   `yaml:"case_sensitive_sort"`
	StreakAnchor      string `yaml:"streak_anchor"`
	DefaultSort       string `yaml:"default_sort"`
	TopTags           int    `yaml:"top_tags"`
}

type CategoriesConfig struct {
	// Defaults are seeded the first time the category set is opened.
	Defaults []string `yaml:"defaults"`
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read, contains invalid YAML or
// fails validation.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every enumerated setting.
func (c *Config) Validate() error {
	var errs []error

	switch storage.Driver(c.Storage.Driver) {
	case storage.DriverSQLite, storage.DriverFile, storage.DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("storage.driver: unknown driver %q", c.Storage.Driver))
	}
	if storage.Driver(c.Storage.Driver) != storage.DriverMemory && strings.TrimSpace(c.Storage.Path) == "" {
		errs = append(errs, errors.New("storage.path: must not be empty"))
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level: unknown level %q", c.Logging.Level))
	}
	switch c.Logging.Color {
	case "auto", "always", "never":
	default:
		errs = append(errs, fmt.Errorf("logging.color: want auto, always or never, got %q", c.Logging.Color))
	}

	if _, err := stats.ParseAnchor(c.Display.StreakAnchor); err != nil {
		errs = append(errs, fmt.Errorf("display.streak_anchor: %w", err))
	}
	if _, err := journal.ParseSort(c.Display.DefaultSort); err != nil {
		errs = append(errs, fmt.Errorf("display.default_sort: %w", err))
	}
	if c.Display.TopTags < 0 {
		errs = append(errs, fmt.Errorf("display.top_tags: must not be negative, got %d", c.Display.TopTags))
	}

	return errors.Join(errs...)
}

// StorageOptions resolves the storage section into backend options.
func (c *Config) StorageOptions() (storage.Options, error) {
	dir, err := expandPath(c.Storage.Path)
	if err != nil {
		return storage.Options{}, err
	}
	return storage.Options{
		Driver: storage.Driver(c.Storage.Driver),
		Dir:    dir,
		File:   c.Storage.SQLiteFile,
	}, nil
}

// StreakAnchor returns the parsed display.streak_anchor.
func (c *Config) StreakAnchor() stats.Anchor {
	a, _ := stats.ParseAnchor(c.Display.StreakAnchor)
	return a
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// ResolvePath expands ~ in path, falling back to DefaultConfigPath when
// path is empty.
func ResolvePath(path string) (string, error) {
	if path == "" {
		path = DefaultConfigPath
	}
	return expandPath(path)
}

// LoadOrCreate loads the config from the default path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreate() (*Config, error) {
	path, err := ResolvePath("")
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		return cfg, nil
	}

	return Load(path)
}
