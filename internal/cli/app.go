package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/runnerr0/diary/internal/category"
	"github.com/runnerr0/diary/internal/collection"
	"github.com/runnerr0/diary/internal/config"
	"github.com/runnerr0/diary/internal/journal"
	"github.com/runnerr0/diary/internal/matchlog"
	"github.com/runnerr0/diary/internal/settings"
	"github.com/runnerr0/diary/internal/storage"
)

// categoriesKey is the snapshot key of the entry category set.
const categoriesKey = "categories"

// app is everything a command needs: the loaded configuration and every
// store opened over one storage backend.
type app struct {
	cfg     *config.Config
	cfgPath string
	blobs   storage.Blobs
	logger  *slog.Logger
	now     func() time.Time
	in      io.Reader
	hints   io.Writer

	entries    *journal.Store
	categories *category.Set
	matches    *matchlog.Log
	settings   *settings.Settings
}

// openApp loads the config named by the global flags, opens its storage
// backend and loads every store.
func openApp(ctx context.Context, globals *GlobalFlags) (*app, error) {
	cfgPath, err := config.ResolvePath(globals.Config)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadOrCreateAt(cfgPath)
	if err != nil {
		return nil, err
	}

	logger := newLogger(os.Stderr, cfg.Logging, globals.Verbose)

	opts, err := cfg.StorageOptions()
	if err != nil {
		return nil, err
	}
	blobs, err := storage.Open(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", opts.Driver, err)
	}
	logger.Debug("storage opened", "driver", blobs.Driver(), "dir", opts.Dir)

	a := newApp(ctx, cfg, blobs, logger, time.Now)
	a.cfgPath = cfgPath
	if a.settings.Values().LastBackend != string(blobs.Driver()) {
		if err := a.settings.NoteBackend(ctx, blobs.Driver()); err != nil {
			logger.Warn("could not record storage backend", "error", err)
		}
	}
	return a, nil
}

// newApp builds and loads the stores over blobs.
func newApp(ctx context.Context, cfg *config.Config, blobs storage.Blobs, logger *slog.Logger, now func() time.Time) *app {
	opts := []collection.Option{collection.WithLogger(logger), collection.WithClock(now)}

	a := &app{
		cfg:        cfg,
		blobs:      blobs,
		logger:     logger,
		now:        now,
		in:         os.Stdin,
		hints:      os.Stderr,
		entries:    journal.NewStore(blobs, opts...),
		categories: category.NewSet(blobs, categoriesKey, cfg.Categories.Defaults, opts...),
		matches:    matchlog.New(blobs, now, opts...),
		settings:   settings.New(blobs, now, logger),
	}

	a.entries.Load(ctx)
	if err := a.categories.Load(ctx); err != nil {
		logger.Warn("seeding default categories failed", "error", err)
	}
	a.matches.Load(ctx)
	a.settings.Load(ctx)
	return a
}

// Close releases the storage backend.
func (a *app) Close() error {
	return a.blobs.Close()
}

// withApp runs fn against the injected app, or opens one from the config
// and closes it afterwards. Until onboarding is complete it points the user
// at `diary onboard` first.
func withApp(globals *GlobalFlags, injected *app, fn func(context.Context, *app) error) error {
	return runApp(globals, injected, true, fn)
}

func runApp(globals *GlobalFlags, injected *app, hint bool, fn func(context.Context, *app) error) error {
	ctx := context.Background()
	a := injected
	if a == nil {
		var err error
		if a, err = openApp(ctx, globals); err != nil {
			return err
		}
		defer a.Close()
	}
	if hint && !(globals != nil && globals.JSON) && !a.settings.OnboardingComplete() {
		fmt.Fprintln(a.hints, "New here? Run `diary onboard` for a short tour.")
	}
	return fn(ctx, a)
}
