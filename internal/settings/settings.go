// Package settings persists the handful of app-level preferences that sit
// outside any record collection, such as the onboarding flag.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/runnerr0/diary/internal/storage"
)

// Key is the snapshot key settings are stored under.
const Key = "settings"

// Values is the persisted form.
type Values struct {
	OnboardingComplete bool       `json:"onboarding_complete"`
	OnboardedAt        *time.Time `json:"onboarded_at,omitempty"`
	LastBackend        string     `json:"last_backend,omitempty"`
}

// Settings reads and writes Values. Like collection stores it treats a
// missing or corrupt snapshot as defaults.
type Settings struct {
	blobs  storage.Blobs
	now    func() time.Time
	logger *slog.Logger

	mu     sync.RWMutex
	values Values
}

// New returns Settings backed by blobs. now stamps OnboardedAt; nil means
// time.Now.
func New(blobs storage.Blobs, now func() time.Time, logger *slog.Logger) *Settings {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Settings{blobs: blobs, now: now, logger: logger}
}

// Load reads the stored values.
func (s *Settings) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = Values{}
	data, err := s.blobs.Get(ctx, Key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("settings unreadable, using defaults", "error", err)
		}
		return
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		s.logger.Warn("settings undecodable, using defaults", "error", err)
		s.values = Values{}
	}
}

// Values returns a copy of the current values.
func (s *Settings) Values() Values {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values
}

// OnboardingComplete reports whether the first-run flow has finished.
func (s *Settings) OnboardingComplete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values.OnboardingComplete
}

// CompleteOnboarding sets the onboarding flag. Repeated calls keep the first
// completion time.
func (s *Settings) CompleteOnboarding(ctx context.Context) error {
	return s.update(ctx, func(v *Values) {
		if v.OnboardingComplete {
			return
		}
		at := s.now().UTC()
		v.OnboardingComplete = true
		v.OnboardedAt = &at
	})
}

// ResetOnboarding clears the onboarding flag.
func (s *Settings) ResetOnboarding(ctx context.Context) error {
	return s.update(ctx, func(v *Values) {
		v.OnboardingComplete = false
		v.OnboardedAt = nil
	})
}

// NoteBackend records which storage driver was last used.
func (s *Settings) NoteBackend(ctx context.Context, driver storage.Driver) error {
	return s.update(ctx, func(v *Values) { v.LastBackend = string(driver) })
}

func (s *Settings) update(ctx context.Context, fn func(*Values)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.values)
	data, err := json.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := s.blobs.Put(ctx, Key, data); err != nil {
		s.logger.Error("persist settings failed", "error", err)
		return fmt.Errorf("persist settings: %w", err)
	}
	return nil
}
