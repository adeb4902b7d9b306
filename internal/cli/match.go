package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/runnerr0/diary/internal/matchlog"
	"github.com/runnerr0/diary/internal/query"
)

// Execute implements the go-flags Commander interface for MatchAddCommand.
func (c *MatchAddCommand) Execute(args []string) error {
	opponent, err := requireText("opponent", c.Opponent)
	if err != nil {
		return err
	}
	if c.Ours < 0 || c.Theirs < 0 {
		return fmt.Errorf("scores must not be negative")
	}

	return withApp(c.globals, c.app, func(ctx context.Context, a *app) error {
		played, err := parseDate(c.Date, a.now())
		if err != nil {
			return err
		}

		m, err := a.matches.AddMatch(ctx, matchlog.Match{
			PlayedAt:   played,
			Opponent:   opponent,
			OurScore:   c.Ours,
			TheirScore: c.Theirs,
			MVP:        strings.TrimSpace(c.MVP),
			Tournament: strings.TrimSpace(c.Tournament),
			Notes:      strings.TrimSpace(c.Notes),
		})
		if err != nil {
			return fmt.Errorf("saving match: %w", err)
		}

		if c.globals.JSON {
			return printJSON(matchToJSON(m))
		}
		fmt.Printf("Recorded %s vs %s %d-%d (%s)\n", m.Outcome(), m.Opponent, m.OurScore, m.TheirScore, m.ID)
		if m.MVP != "" {
			if p, ok := a.matches.Player(m.MVP); ok {
				fmt.Printf("  MVP: %s (%d total)\n", p.Name, p.MVPCount)
			}
		}
		return nil
	})
}

// Execute implements the go-flags Commander interface for MatchEditCommand.
func (c *MatchEditCommand) Execute(args []string) error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("--id is required for match edit command")
	}
	if c.Opponent != "" && strings.TrimSpace(c.Opponent) == "" {
		return fmt.Errorf("--opponent must not be blank")
	}
	if c.Ours < -1 || c.Theirs < -1 {
		return fmt.Errorf("scores must not be negative")
	}
	if c.ClearMVP && c.MVP != "" {
		return fmt.Errorf("--mvp and --clear-mvp are mutually exclusive")
	}

	return withApp(c.globals, c.app, func(ctx context.Context, a *app) error {
		m, ok := a.matches.Match(c.ID)
		if !ok {
			return fmt.Errorf("match not found: %s", c.ID)
		}

		if c.Opponent != "" {
			m.Opponent = strings.TrimSpace(c.Opponent)
		}
		if c.Ours >= 0 {
			m.OurScore = c.Ours
		}
		if c.Theirs >= 0 {
			m.TheirScore = c.Theirs
		}
		switch {
		case c.ClearMVP:
			m.MVP = ""
		case c.MVP != "":
			m.MVP = strings.TrimSpace(c.MVP)
		}
		if c.Tournament != "" {
			m.Tournament = strings.TrimSpace(c.Tournament)
		}
		if c.Notes != "" {
			m.Notes = strings.TrimSpace(c.Notes)
		}
		if c.Date != "" {
			played, err := parseDate(c.Date, a.now())
			if err != nil {
				return err
			}
			m.PlayedAt = played
		}

		if _, err := a.matches.UpdateMatch(ctx, m); err != nil {
			return fmt.Errorf("saving match: %w", err)
		}

		if c.globals.JSON {
			return printJSON(matchToJSON(m))
		}
		fmt.Printf("Updated match %s\n", m.ID)
		return nil
	})
}

// Execute implements the go-flags Commander interface for MatchRmCommand.
func (c *MatchRmCommand) Execute(args []string) error {
	if c.All && c.ID != "" {
		return fmt.Errorf("--id and --all are mutually exclusive")
	}
	if !c.All && strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("--id is required for match rm command")
	}

	return withApp(c.globals, c.app, func(ctx context.Context, a *app) error {
		if c.All {
			return c.clearAll(ctx, a)
		}

		ok, err := a.matches.DeleteMatch(ctx, c.ID)
		if err != nil {
			return fmt.Errorf("deleting match: %w", err)
		}

		if c.globals.JSON {
			return printJSON(map[string]any{"id": c.ID, "deleted": ok})
		}
		if !ok {
			fmt.Printf("No match %s; nothing deleted.\n", c.ID)
			return nil
		}
		fmt.Printf("Deleted match %s\n", c.ID)
		return nil
	})
}

func (c *MatchRmCommand) clearAll(ctx context.Context, a *app) error {
	n := len(a.matches.Matches())
	if !c.Force {
		prompt := fmt.Sprintf("Delete all %d matches and reset MVP tallies? Type \"DELETE\" to confirm: ", n)
		if err := confirm(a.in, prompt, "DELETE"); err != nil {
			return err
		}
	}
	if err := a.matches.DeleteAllMatches(ctx); err != nil {
		return fmt.Errorf("deleting matches: %w", err)
	}

	if c.globals.JSON {
		return printJSON(map[string]any{"deleted": n})
	}
	fmt.Printf("Deleted %d matches; roster kept with tallies reset.\n", n)
	return nil
}

type matchJSON struct {
	ID         string `json:"id"`
	PlayedAt   string `json:"played_at"`
	Opponent   string `json:"opponent"`
	OurScore   int    `json:"our_score"`
	TheirScore int    `json:"their_score"`
	Outcome    string `json:"outcome"`
	Margin     int    `json:"margin"`
	MVP        string `json:"mvp,omitempty"`
	Tournament string `json:"tournament,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

func matchToJSON(m matchlog.Match) matchJSON {
	return matchJSON{
		ID:         m.ID,
		PlayedAt:   m.PlayedAt.UTC().Format(time.RFC3339),
		Opponent:   m.Opponent,
		OurScore:   m.OurScore,
		TheirScore: m.TheirScore,
		Outcome:    string(m.Outcome()),
		Margin:     m.Margin(),
		MVP:        m.MVP,
		Tournament: m.Tournament,
		Notes:      m.Notes,
	}
}

// Execute implements the go-flags Commander interface for MatchListCommand.
func (c *MatchListCommand) Execute(args []string) error {
	filter, err := matchlog.ParseFilter(c.Filter)
	if err != nil {
		return err
	}
	window, err := query.ParseWindow(c.Window)
	if err != nil {
		return err
	}
	order, err := matchlog.ParseSort(c.Sort)
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
		results := matchlog.NewView(a.matches, matchlog.ViewOptions{
			Filter:        filter,
			Window:        window,
			Sort:          order,
			Search:        search,
			Tournament:    c.Tournament,
			CaseSensitive: a.cfg.Display.CaseSensitiveSort,
			Now:           a.now,
		}).Results()
		total := len(results)
		if c.Limit > 0 && len(results) > c.Limit {
			results = results[:c.Limit]
		}

		if c.globals.JSON {
			out := make([]matchJSON, len(results))
			for i, m := range results {
				out[i] = matchToJSON(m)
			}
			return printJSON(map[string]any{"total": total, "matches": out})
		}

		if total == 0 {
			fmt.Println("No matches found.")
			return nil
		}
		for _, m := range results {
			fmt.Printf("%s  %-4s %3d-%-3d vs %-20s  %-14s  %s\n",
				m.PlayedAt.Local().Format("2006-01-02"),
				strings.ToUpper(string(m.Outcome())[:1]),
				m.OurScore, m.TheirScore,
				truncate(m.Opponent, 20),
				truncate(m.MVP, 14),
				m.ID,
			)
		}
		if len(results) < total {
			fmt.Printf("\n%d of %d matches shown\n", len(results), total)
		}
		return nil
	})
}

type playerJSON struct {
	Name      string `json:"name"`
	MVPCount  int    `json:"mvp_count"`
	LastMVPAt string `json:"last_mvp_at,omitempty"`
}

func playersToJSON(players []matchlog.Player) []playerJSON {
	out := make([]playerJSON, len(players))
	for i, p := range players {
		out[i] = playerJSON{Name: p.Name, MVPCount: p.MVPCount}
		if p.LastMVPAt != nil {
			out[i].LastMVPAt = p.LastMVPAt.UTC().Format(time.RFC3339)
		}
	}
	return out
}

// Execute implements the go-flags Commander interface for MatchStatsCommand.
func (c *MatchStatsCommand) Execute(args []string) error {
	window, err := query.ParseWindow(c.Window)
	if err != nil {
		return err
	}

	return withApp(c.globals, c.app, func(ctx context.Context, a *app) error {
		matches := matchlog.NewView(a.matches, matchlog.ViewOptions{Window: window, Now: a.now}).Results()
		sum := matchlog.Summarize(matches, a.matches.Players())

		if c.globals.JSON {
			return printJSON(map[string]any{
				"window":         window.String(),
				"played":         sum.Played,
				"wins":           sum.Wins,
				"losses":         sum.Losses,
				"draws":          sum.Draws,
				"win_rate":       sum.WinRate,
				"scored_for":     sum.ScoredFor,
				"scored_against": sum.ScoredAgainst,
				"leaderboard":    playersToJSON(sum.Leaderboard),
			})
		}

		fmt.Println("Season Record")
		fmt.Println("=============")
		fmt.Printf("Played:    %d\n", sum.Played)
		fmt.Printf("Record:    %d-%d-%d (W-L-D)\n", sum.Wins, sum.Losses, sum.Draws)
		fmt.Printf("Win rate:  %.1f%%\n", sum.WinRate*100)
		fmt.Printf("Scored:    %d for, %d against\n", sum.ScoredFor, sum.ScoredAgainst)
		if len(sum.Opponents) > 0 {
			fmt.Printf("Most met:  %s (%d)\n", sum.Opponents[0].Key, sum.Opponents[0].N)
		}
		printLeaderboard(sum.Leaderboard)
		return nil
	})
}

func printLeaderboard(board []matchlog.Player) {
	if len(board) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("MVP Leaderboard:")
	for i, p := range board {
		fmt.Printf("  %2d. %-20s %3d\n", i+1, p.Name, p.MVPCount)
	}
}

// Execute implements the go-flags Commander interface for PlayersCommand.
func (c *PlayersCommand) Execute(args []string) error {
	if c.Add != "" && c.Rm != "" {
		return fmt.Errorf("--add and --rm are mutually exclusive")
	}

	return withApp(c.globals, c.app, func(ctx context.Context, a *app) error {
		switch {
		case c.Add != "":
			name, err := requireText("add", c.Add)
			if err != nil {
				return err
			}
			if _, err := a.matches.AddPlayer(ctx, name); err != nil {
				if errors.Is(err, matchlog.ErrDuplicatePlayer) {
					return fmt.Errorf("player %q already exists", name)
				}
				return fmt.Errorf("adding player: %w", err)
			}
			if !c.globals.JSON {
				fmt.Printf("Added player %s\n", name)
			}
		case c.Rm != "":
			ok, err := a.matches.DeletePlayer(ctx, c.Rm)
			if err != nil {
				return fmt.Errorf("removing player: %w", err)
			}
			if !c.globals.JSON {
				if ok {
					fmt.Printf("Removed player %s\n", strings.TrimSpace(c.Rm))
				} else {
					fmt.Printf("No player %s; nothing removed.\n", strings.TrimSpace(c.Rm))
				}
			}
		}

		players := a.matches.Players()
		if c.globals.JSON {
			return printJSON(playersToJSON(players))
		}
		if len(players) == 0 {
			fmt.Println("No players yet. Name an MVP with `diary match add --mvp` or use --add.")
			return nil
		}
		fmt.Println("Players:")
		for _, p := range players {
			last := "never"
			if p.LastMVPAt != nil {
				last = p.LastMVPAt.Local().Format("2006-01-02")
			}
			fmt.Printf("  %-20s %3d MVP  last %s\n", p.Name, p.MVPCount, last)
		}
		printLeaderboard(matchlog.Leaderboard(players))
		return nil
	})
}
