package cli

import (
	"context"
	"errors"
	"fmt"
)

// Execute implements the go-flags Commander interface for PurgeCommand.
func (c *PurgeCommand) Execute(args []string) error {
	if !c.All {
		return fmt.Errorf("purge requires --all flag for safety")
	}

	return withApp(c.globals, c.app, func(ctx context.Context, a *app) error {
		// Confirmation prompt unless --force
		if !c.Force {
			fmt.Println("⚠ WARNING: This will permanently delete:")
			fmt.Printf("  - %d diary entries\n", a.entries.Len())
			fmt.Printf("  - %d matches\n", len(a.matches.Matches()))
			fmt.Printf("  - %d players\n", len(a.matches.Players()))
			fmt.Println()
			fmt.Println("Categories and settings are kept. This action cannot be undone.")
			fmt.Println()
			if err := confirm(a.in, `Type "PURGE" to confirm: `, "PURGE"); err != nil {
				return err
			}
		}

		err := errors.Join(a.entries.DeleteAll(ctx), a.matches.DeleteAll(ctx))
		if err != nil {
			return fmt.Errorf("purge failed: %w", err)
		}

		if c.globals.JSON {
			return printJSON(map[string]any{
				"purged":  true,
				"message": "all entries, matches and players deleted",
			})
		}

		fmt.Println("Purged all entries, matches and players.")
		return nil
	})
}
