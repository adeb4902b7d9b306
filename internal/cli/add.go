package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/runnerr0/diary/internal/journal"
)

// Execute implements the go-flags Commander interface for AddCommand.
func (c *AddCommand) Execute(args []string) error {
	title, err := requireText("title", c.Title)
	if err != nil {
		return err
	}
	if c.Rating < 0 || c.Rating > 5 {
		return fmt.Errorf("--rating must be between 0 and 5, got %d", c.Rating)
	}

	return withApp(c.globals, c.app, func(ctx context.Context, a *app) error {
		created, err := parseDate(c.Date, a.now())
		if err != nil {
			return err
		}
		cat, err := a.resolveCategory(c.Category)
		if err != nil {
			return err
		}

		entry, err := a.entries.Add(ctx, journal.Entry{
			CreatedAt: created,
			Title:     title,
			Notes:     strings.TrimSpace(c.Notes),
			Category:  cat,
			Mood:      strings.TrimSpace(c.Mood),
			Tags:      cleanTags(c.Tags),
			Favorite:  c.Favorite,
			Rating:    c.Rating,
		})
		if err != nil {
			return fmt.Errorf("saving entry: %w", err)
		}

		if c.globals.JSON {
			return printJSON(entry)
		}
		fmt.Printf("Added entry %s (%s)\n", entry.ID, entry.CreatedAt.Format(time.RFC3339))
		fmt.Printf("  Title:    %s\n", entry.Title)
		fmt.Printf("  Category: %s\n", a.categories.Display(entry.Category))
		if len(entry.Tags) > 0 {
			fmt.Printf("  Tags:     %s\n", strings.Join(entry.Tags, ", "))
		}
		return nil
	})
}

// resolveCategory maps a user-typed category to its stored spelling. Empty
// means no category; unknown names are rejected.
func (a *app) resolveCategory(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}
	if !a.categories.Has(name) {
		return "", fmt.Errorf("unknown category %q (see `diary category list`)", name)
	}
	return a.categories.Display(name), nil
}

// Execute implements the go-flags Commander interface for EditCommand.
func (c *EditCommand) Execute(args []string) error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("--id is required for edit command")
	}
	if c.Title != "" && strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("--title must not be blank")
	}
	if c.Rating < -1 || c.Rating > 5 {
		return fmt.Errorf("--rating must be between 0 and 5, got %d", c.Rating)
	}
	if c.Favorite && c.Unfavorite {
		return fmt.Errorf("--favorite and --unfavorite are mutually exclusive")
	}
	if c.ClearTags && len(c.Tags) > 0 {
		return fmt.Errorf("--tag and --clear-tags are mutually exclusive")
	}

	return withApp(c.globals, c.app, func(ctx context.Context, a *app) error {
		current, ok := a.entries.Get(c.ID)
		if !ok {
			return fmt.Errorf("entry not found: %s", c.ID)
		}
		next, err := c.apply(a, current)
		if err != nil {
			return err
		}

		entry, _, err := journal.Edit(ctx, a.entries, next, a.now())
		if err != nil {
			return fmt.Errorf("saving entry: %w", err)
		}

		if c.globals.JSON {
			return printJSON(entry)
		}
		fmt.Printf("Updated entry %s\n", entry.ID)
		return nil
	})
}

func (c *EditCommand) apply(a *app, e journal.Entry) (journal.Entry, error) {
	if c.Title != "" {
		e.Title = strings.TrimSpace(c.Title)
	}
	if c.Notes != "" {
		e.Notes = strings.TrimSpace(c.Notes)
	}
	if c.Category != "" {
		cat, err := a.resolveCategory(c.Category)
		if err != nil {
			return e, err
		}
		e.Category = cat
	}
	if c.Mood != "" {
		e.Mood = strings.TrimSpace(c.Mood)
	}
	switch {
	case c.ClearTags:
		e.Tags = nil
	case len(c.Tags) > 0:
		e.Tags = cleanTags(c.Tags)
	}
	switch {
	case c.Favorite:
		e.Favorite = true
	case c.Unfavorite:
		e.Favorite = false
	}
	if c.Rating >= 0 {
		e.Rating = c.Rating
	}
	return e, nil
}

// Execute implements the go-flags Commander interface for RmCommand.
func (c *RmCommand) Execute(args []string) error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("--id is required for rm command")
	}

	return withApp(c.globals, c.app, func(ctx context.Context, a *app) error {
		n, err := a.entries.Delete(ctx, c.ID)
		if err != nil {
			return fmt.Errorf("deleting entry: %w", err)
		}

		if c.globals.JSON {
			return printJSON(map[string]any{"id": c.ID, "deleted": n > 0})
		}
		if n == 0 {
			fmt.Printf("No entry %s; nothing deleted.\n", c.ID)
			return nil
		}
		fmt.Printf("Deleted entry %s\n", c.ID)
		return nil
	})
}
