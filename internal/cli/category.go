package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/runnerr0/diary/internal/category"
)

type categoryJSON struct {
	Name    string `json:"name"`
	Custom  bool   `json:"custom"`
	Entries int    `json:"entries"`
}

// Execute implements the go-flags Commander interface for CategoryListCommand.
func (c *CategoryListCommand) Execute(args []string) error {
	return withApp(c.globals, c.app, func(ctx context.Context, a *app) error {
		usage := make(map[string]int)
		for _, e := range a.entries.All() {
			usage[strings.ToLower(a.categories.Display(e.Category))]++
		}

		cats := a.categories.List()
		out := make([]categoryJSON, len(cats))
		for i, cat := range cats {
			out[i] = categoryJSON{Name: cat.Name, Custom: cat.IsCustom, Entries: usage[strings.ToLower(cat.Name)]}
		}

		if c.globals.JSON {
			return printJSON(out)
		}
		if len(out) == 0 {
			fmt.Println("No categories.")
			return nil
		}
		for _, cat := range out {
			kind := "predefined"
			if cat.Custom {
				kind = "custom"
			}
			fmt.Printf("  %-20s %-10s %4d\n", cat.Name, kind, cat.Entries)
		}
		if n := usage[strings.ToLower(category.Uncategorized)]; n > 0 && !a.categories.Has(category.Uncategorized) {
			fmt.Printf("  %-20s %-10s %4d\n", category.Uncategorized, "", n)
		}
		return nil
	})
}

// Execute implements the go-flags Commander interface for CategoryAddCommand.
func (c *CategoryAddCommand) Execute(args []string) error {
	name, err := requireText("name", c.Name)
	if err != nil {
		return err
	}

	return withApp(c.globals, c.app, func(ctx context.Context, a *app) error {
		cat, err := a.categories.Add(ctx, name)
		if errors.Is(err, category.ErrDuplicate) {
			return fmt.Errorf("category %q already exists", name)
		}
		if err != nil {
			return fmt.Errorf("adding category: %w", err)
		}

		if c.globals.JSON {
			return printJSON(categoryJSON{Name: cat.Name, Custom: cat.IsCustom})
		}
		fmt.Printf("Added category %s\n", cat.Name)
		return nil
	})
}

// Execute implements the go-flags Commander interface for CategoryRenameCommand.
func (c *CategoryRenameCommand) Execute(args []string) error {
	from, err := requireText("from", c.From)
	if err != nil {
		return err
	}
	to, err := requireText("to", c.To)
	if err != nil {
		return err
	}

	return withApp(c.globals, c.app, func(ctx context.Context, a *app) error {
		ok, err := a.categories.Rename(ctx, from, to)
		if errors.Is(err, category.ErrDuplicate) {
			return fmt.Errorf("category %q already exists", to)
		}
		if err != nil {
			return fmt.Errorf("renaming category: %w", err)
		}
		if !ok {
			return fmt.Errorf("category not found: %s", from)
		}

		if c.globals.JSON {
			return printJSON(map[string]any{"from": from, "to": to, "renamed": true})
		}
		fmt.Printf("Renamed category %s to %s\n", from, to)
		if !strings.EqualFold(from, to) {
			fmt.Println("Entries filed under the old name now show as Uncategorized.")
		}
		return nil
	})
}

// Execute implements the go-flags Commander interface for CategoryRmCommand.
func (c *CategoryRmCommand) Execute(args []string) error {
	name, err := requireText("name", c.Name)
	if err != nil {
		return err
	}

	return withApp(c.globals, c.app, func(ctx context.Context, a *app) error {
		ok, err := a.categories.Delete(ctx, name)
		if err != nil {
			return fmt.Errorf("deleting category: %w", err)
		}

		if c.globals.JSON {
			return printJSON(map[string]any{"name": name, "deleted": ok})
		}
		if !ok {
			fmt.Printf("No category %s; nothing deleted.\n", name)
			return nil
		}
		fmt.Printf("Deleted category %s\n", name)
		return nil
	})
}
