package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/runnerr0/diary/internal/journal"
)

// Execute implements the go-flags Commander interface for ViewCommand.
func (c *ViewCommand) Execute(args []string) error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("--id is required for view command")
	}

	return withApp(c.globals, c.app, func(ctx context.Context, a *app) error {
		entry, ok, err := journal.MarkViewed(ctx, a.entries, c.ID, a.now())
		if !ok {
			return fmt.Errorf("entry not found: %s", c.ID)
		}
		if err != nil {
			a.logger.Warn("view count not saved", "id", c.ID, "error", err)
		}

		if c.globals.JSON {
			return printJSON(entry)
		}

		switch c.Format {
		case "notes":
			if entry.Notes == "" {
				fmt.Println("No notes")
			} else {
				fmt.Println(entry.Notes)
			}
		case "md":
			c.outputMarkdown(a, entry)
		default: // "full"
			c.outputFull(a, entry)
		}
		return nil
	})
}

func (c *ViewCommand) outputFull(a *app, e journal.Entry) {
	fmt.Println(e.ID)
	fmt.Printf("Title:     %s\n", e.Title)
	fmt.Printf("Created:   %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04"))
	if e.UpdatedAt != nil {
		fmt.Printf("Updated:   %s\n", e.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	fmt.Printf("Category:  %s\n", a.categories.Display(e.Category))
	if e.Mood != "" {
		fmt.Printf("Mood:      %s\n", e.Mood)
	}
	if len(e.Tags) > 0 {
		fmt.Printf("Tags:      %s\n", strings.Join(e.Tags, ", "))
	}
	fmt.Printf("Rating:    %s\n", stars(e.Rating))
	fmt.Printf("Favorite:  %t\n", e.Favorite)
	fmt.Printf("Views:     %d\n", e.ViewCount)
	fmt.Println()
	fmt.Println("--- Notes ---")
	if e.Notes == "" {
		fmt.Println("No notes")
	} else {
		fmt.Println(e.Notes)
	}
}

func (c *ViewCommand) outputMarkdown(a *app, e journal.Entry) {
	fmt.Println("---")
	fmt.Printf("id: %s\n", e.ID)
	fmt.Printf("title: %s\n", e.Title)
	fmt.Printf("created: %s\n", e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"))
	fmt.Printf("category: %s\n", a.categories.Display(e.Category))
	if e.Mood != "" {
		fmt.Printf("mood: %s\n", e.Mood)
	}
	if len(e.Tags) > 0 {
		fmt.Printf("tags: [%s]\n", strings.Join(e.Tags, ", "))
	}
	fmt.Printf("rating: %d\n", e.Rating)
	fmt.Printf("favorite: %t\n", e.Favorite)
	fmt.Println("---")
	fmt.Println()
	fmt.Printf("# %s\n", e.Title)
	if e.Notes != "" {
		fmt.Println()
		fmt.Println(e.Notes)
	}
}

// stars renders a 0-5 rating.
func stars(n int) string {
	if n <= 0 {
		return "unrated"
	}
	n = min(n, 5)
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}
