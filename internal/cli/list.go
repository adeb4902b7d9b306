package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/runnerr0/diary/internal/journal"
	"github.com/runnerr0/diary/internal/stats"
)

// Execute implements the go-flags Commander interface for ListCommand.
func (c *ListCommand) Execute(args []string) error {
	filter, err := journal.ParseFilter(c.Filter)
	if err != nil {
		return err
	}
	if c.Limit < 0 {
		return fmt.Errorf("--limit must not be negative")
	}

	search := c.Search
	if search == "" && len(args) > 0 {
		search = strings.Join(args, " ")
	}

	return withApp(c.globals, c.app, func(ctx context.Context, a *app) error {
		sortName := c.Sort
		if sortName == "" {
			sortName = a.cfg.Display.DefaultSort
		}
		order, err := journal.ParseSort(sortName)
		if err != nil {
			return err
		}

		results := journal.NewView(a.entries, journal.ViewOptions{
			Filter:        filter,
			Sort:          order,
			Search:        search,
			Category:      c.Category,
			CaseSensitive: a.cfg.Display.CaseSensitiveSort,
			Now:           a.now,
		}).Results()
		total := len(results)
		if c.Limit > 0 && len(results) > c.Limit {
			results = results[:c.Limit]
		}

		if c.globals.JSON {
			return printJSON(map[string]any{
				"total":   total,
				"entries": results,
			})
		}

		if total == 0 {
			fmt.Println("No entries found.")
			return nil
		}
		for _, e := range results {
			fav := " "
			if e.Favorite {
				fav = "♥"
			}
			fmt.Printf("%s %s  %-36s  %-14s  %s\n",
				fav,
				e.CreatedAt.Local().Format("2006-01-02"),
				truncate(e.Title, 36),
				truncate(a.categories.Display(e.Category), 14),
				e.ID,
			)
		}
		if len(results) < total {
			fmt.Printf("\n%d of %d entries shown\n", len(results), total)
		}
		return nil
	})
}

type shareJSON struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type countJSON struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type statsJSON struct {
	Total         int         `json:"total"`
	Favorites     int         `json:"favorites"`
	CurrentStreak int         `json:"current_streak"`
	LongestStreak int         `json:"longest_streak"`
	AverageRating float64     `json:"average_rating"`
	Categories    []shareJSON `json:"categories"`
	Moods         []countJSON `json:"moods"`
	TopTags       []countJSON `json:"top_tags"`
	MostViewed    string      `json:"most_viewed,omitempty"`
}

func toCountJSON(counts []stats.Count[string]) []countJSON {
	out := make([]countJSON, len(counts))
	for i, c := range counts {
		out[i] = countJSON{Name: c.Key, Count: c.N}
	}
	return out
}

// Execute implements the go-flags Commander interface for StatsCommand.
func (c *StatsCommand) Execute(args []string) error {
	if c.Top < 0 {
		return fmt.Errorf("--top must not be negative")
	}

	return withApp(c.globals, c.app, func(ctx context.Context, a *app) error {
		top := c.Top
		if top == 0 {
			top = a.cfg.Display.TopTags
		}
		sum := journal.Summarize(a.entries.All(), a.now(), a.cfg.StreakAnchor(), a.categories.Display, top)

		if c.globals.JSON {
			out := statsJSON{
				Total:         sum.Total,
				Favorites:     sum.Favorites,
				CurrentStreak: sum.Streak.Current,
				LongestStreak: sum.Streak.Longest,
				AverageRating: sum.AvgRating,
				Categories:    make([]shareJSON, len(sum.Categories)),
				Moods:         toCountJSON(sum.Moods),
				TopTags:       toCountJSON(sum.TopTags),
			}
			for i, s := range sum.Categories {
				out.Categories[i] = shareJSON{Name: s.Key, Count: s.N, Percent: s.Percent()}
			}
			if sum.MostViewed != nil {
				out.MostViewed = sum.MostViewed.ID
			}
			return printJSON(out)
		}

		fmt.Println("Diary Statistics")
		fmt.Println("================")
		fmt.Printf("Entries:        %d\n", sum.Total)
		fmt.Printf("Favorites:      %d\n", sum.Favorites)
		fmt.Printf("Current streak: %s\n", days(sum.Streak.Current))
		fmt.Printf("Longest streak: %s\n", days(sum.Streak.Longest))
		if sum.AvgRating > 0 {
			fmt.Printf("Avg rating:     %.1f\n", sum.AvgRating)
		}
		if sum.MostViewed != nil {
			fmt.Printf("Most viewed:    %s (%d views)\n", sum.MostViewed.Title, sum.MostViewed.ViewCount)
		}

		if len(sum.Categories) > 0 {
			fmt.Println()
			fmt.Println("Categories:")
			for _, s := range sum.Categories {
				fmt.Printf("  %-20s %4d  %5.1f%%\n", s.Key, s.N, s.Percent())
			}
		}
		printCounts("Moods:", sum.Moods)
		printCounts("Top Tags:", sum.TopTags)
		return nil
	})
}

func printCounts(title string, counts []stats.Count[string]) {
	if len(counts) == 0 {
		return
	}
	fmt.Println()
	fmt.Println(title)
	for _, c := range counts {
		fmt.Printf("  %-20s %4d\n", c.Key, c.N)
	}
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// Execute implements the go-flags Commander interface for CalendarCommand.
func (c *CalendarCommand) Execute(args []string) error {
	return withApp(c.globals, c.app, func(ctx context.Context, a *app) error {
		now := a.now()
		year, month := now.Year(), now.Month()
		if c.Month != "" {
			t, err := time.ParseInLocation("2006-01", c.Month, now.Location())
			if err != nil {
				return fmt.Errorf("invalid --month %q (use YYYY-MM)", c.Month)
			}
			year, month = t.Year(), t.Month()
		}

		markers := journal.Calendar(a.entries.All(), year, month, now.Location())

		if c.globals.JSON {
			var marked []string
			for _, m := range markers {
				if m.HasEntry {
					marked = append(marked, m.Day.String())
				}
			}
			return printJSON(map[string]any{
				"month":      fmt.Sprintf("%04d-%02d", year, int(month)),
				"days":       len(markers),
				"entry_days": marked,
			})
		}

		fmt.Printf("%s %d\n", month, year)
		fmt.Println("  Su  Mo  Tu  We  Th  Fr  Sa")
		first := time.Date(year, month, 1, 0, 0, 0, 0, now.Location()).Weekday()
		fmt.Print(strings.Repeat("    ", int(first)))
		for i, m := range markers {
			mark := " "
			if m.HasEntry {
				mark = "*"
			}
			fmt.Printf("%3d%s", m.Day.Day, mark)
			if (int(first)+i)%7 == 6 {
				fmt.Println()
			}
		}
		if (int(first)+len(markers))%7 != 0 {
			fmt.Println()
		}
		return nil
	})
}
