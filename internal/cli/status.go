package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/runnerr0/diary/internal/storage"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version            string         `json:"version"`
	ConfigPath         string         `json:"config_path,omitempty"`
	Driver             string         `json:"driver"`
	Entries            int            `json:"entries"`
	Categories         int            `json:"categories"`
	Matches            int            `json:"matches"`
	Players            int            `json:"players"`
	OnboardingComplete bool           `json:"onboarding_complete"`
	Snapshots          []snapshotJSON `json:"snapshots"`
	PersistErrors      []string       `json:"persist_errors,omitempty"`
}

type snapshotJSON struct {
	Key       string `json:"key"`
	SizeBytes int64  `json:"size_bytes"`
	UpdatedAt string `json:"updated_at"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	return withApp(c.globals, c.app, func(ctx context.Context, a *app) error {
		keys, err := a.blobs.Keys(ctx)
		if err != nil {
			return fmt.Errorf("list snapshots: %w", err)
		}

		out := statusJSON{
			Version:            c.version,
			ConfigPath:         a.cfgPath,
			Driver:             string(a.blobs.Driver()),
			Entries:            a.entries.Len(),
			Categories:         len(a.categories.List()),
			Matches:            len(a.matches.Matches()),
			Players:            len(a.matches.Players()),
			OnboardingComplete: a.settings.OnboardingComplete(),
			Snapshots:          make([]snapshotJSON, len(keys)),
		}
		for i, k := range keys {
			out.Snapshots[i] = snapshotJSON{Key: k.Key, SizeBytes: k.Size, UpdatedAt: k.UpdatedAt.UTC().Format(time.RFC3339)}
		}
		for _, err := range []error{
			a.entries.LastPersistError(),
			a.categories.LastPersistError(),
			a.matches.MatchStore().LastPersistError(),
			a.matches.PlayerStore().LastPersistError(),
		} {
			if err != nil {
				out.PersistErrors = append(out.PersistErrors, err.Error())
			}
		}

		if c.globals != nil && c.globals.JSON {
			return printJSON(out)
		}
		c.printStatusHuman(out, keys)
		return nil
	})
}

func (c *StatusCommand) printStatusHuman(out statusJSON, keys []storage.KeyInfo) {
	fmt.Println("Diary Status")
	fmt.Println("============")
	fmt.Printf("Version:       %s\n", out.Version)
	if out.ConfigPath != "" {
		fmt.Printf("Config:        %s\n", out.ConfigPath)
	}
	fmt.Printf("Storage:       %s\n", out.Driver)
	fmt.Printf("Entries:       %d\n", out.Entries)
	fmt.Printf("Categories:    %d\n", out.Categories)
	fmt.Printf("Matches:       %d\n", out.Matches)
	fmt.Printf("Players:       %d\n", out.Players)
	if out.OnboardingComplete {
		fmt.Println("Onboarding:    complete")
	} else {
		fmt.Println("Onboarding:    pending (run `diary onboard`)")
	}

	if len(keys) > 0 {
		fmt.Println()
		fmt.Println("Snapshots:")
		for _, k := range keys {
			fmt.Printf("  %-12s %10s  %s\n", k.Key, formatBytes(k.Size), k.UpdatedAt.Local().Format("2006-01-02 15:04"))
		}
	}
	for _, e := range out.PersistErrors {
		fmt.Printf("\nLast write failed: %s\n", e)
	}
}
