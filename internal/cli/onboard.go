package cli

import (
	"context"
	"fmt"
)

// Execute implements the go-flags Commander interface for OnboardCommand.
func (c *OnboardCommand) Execute(args []string) error {
	return runApp(c.globals, c.app, false, func(ctx context.Context, a *app) error {
		if c.Reset {
			if err := a.settings.ResetOnboarding(ctx); err != nil {
				return err
			}
			if c.globals.JSON {
				return printJSON(map[string]any{"onboarding_complete": false})
			}
			fmt.Println("Onboarding reset; it will be shown again.")
			return nil
		}

		already := a.settings.OnboardingComplete()
		if err := a.settings.CompleteOnboarding(ctx); err != nil {
			return err
		}
		if c.globals.JSON {
			return printJSON(map[string]any{"onboarding_complete": true, "already_complete": already})
		}
		if already {
			fmt.Println("Onboarding already complete.")
			return nil
		}

		fmt.Println("Welcome to diary.")
		fmt.Println()
		fmt.Println("  diary add --title \"First entry\" --category Personal")
		fmt.Println("  diary list --filter week")
		fmt.Println("  diary stats")
		fmt.Println("  diary match add --opponent Hawks --ours 3 --theirs 1 --mvp Sam")
		fmt.Println()
		fmt.Printf("Categories: %d available (see `diary category list`).\n", len(a.categories.List()))
		return nil
	})
}
