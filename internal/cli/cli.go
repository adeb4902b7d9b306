package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Add      *AddCommand
	Edit     *EditCommand
	View     *ViewCommand
	Rm       *RmCommand
	List     *ListCommand
	Stats    *StatsCommand
	Calendar *CalendarCommand

	CategoryList   *CategoryListCommand
	CategoryAdd    *CategoryAddCommand
	CategoryRename *CategoryRenameCommand
	CategoryRm     *CategoryRmCommand

	MatchAdd   *MatchAddCommand
	MatchEdit  *MatchEditCommand
	MatchRm    *MatchRmCommand
	MatchList  *MatchListCommand
	MatchStats *MatchStatsCommand
	Players    *PlayersCommand

	Onboard *OnboardCommand
	Status  *StatusCommand
	Purge   *PurgeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags
	g := &globals

	parser := goflags.NewParser(g, goflags.Default)
	parser.Name = "diary"
	parser.LongDescription = "Local journal, scent diary and match log with categories, streaks and statistics."

	cmds := &commands{
		Add:      &AddCommand{globals: g},
		Edit:     &EditCommand{globals: g},
		View:     &ViewCommand{globals: g},
		Rm:       &RmCommand{globals: g},
		List:     &ListCommand{globals: g},
		Stats:    &StatsCommand{globals: g},
		Calendar: &CalendarCommand{globals: g},

		CategoryList:   &CategoryListCommand{globals: g},
		CategoryAdd:    &CategoryAddCommand{globals: g},
		CategoryRename: &CategoryRenameCommand{globals: g},
		CategoryRm:     &CategoryRmCommand{globals: g},

		MatchAdd:   &MatchAddCommand{globals: g},
		MatchEdit:  &MatchEditCommand{globals: g},
		MatchRm:    &MatchRmCommand{globals: g},
		MatchList:  &MatchListCommand{globals: g},
		MatchStats: &MatchStatsCommand{globals: g},
		Players:    &PlayersCommand{globals: g},

		Onboard: &OnboardCommand{globals: g},
		Status:  &StatusCommand{globals: g, version: version},
		Purge:   &PurgeCommand{globals: g},
	}

	parser.AddCommand("add", "Write a new entry", "Write a new diary entry. --title is required.", cmds.Add)
	parser.AddCommand("edit", "Change an entry", "Change fields of an existing entry; unset flags keep their value.", cmds.Edit)
	parser.AddCommand("view", "Print one entry", "Print the full content of one entry and count the view.", cmds.View)
	parser.AddCommand("rm", "Delete an entry", "Delete one entry by ID. Deleting an unknown ID does nothing.", cmds.Rm)
	parser.AddCommand("list", "List entries", "List entries with optional filter, sort, category and search text.", cmds.List)
	parser.AddCommand("stats", "Show entry statistics", "Show totals, category shares, moods, top tags and streaks.", cmds.Stats)
	parser.AddCommand("calendar", "Show a month calendar", "Show a month grid marking the days that have entries.", cmds.Calendar)

	categoryCmd, _ := parser.AddCommand("category", "Manage categories", "List, add, rename and delete categories. Entries are never rewritten.", &CategoryCommand{})
	categoryCmd.AddCommand("list", "List categories", "List predefined and custom categories.", cmds.CategoryList)
	categoryCmd.AddCommand("add", "Add a category", "Add a custom category. Names are unique ignoring case.", cmds.CategoryAdd)
	categoryCmd.AddCommand("rename", "Rename a category", "Rename a category. Entries keep the old name.", cmds.CategoryRename)
	categoryCmd.AddCommand("rm", "Delete a category", "Delete a category. Entries that use it show as Uncategorized.", cmds.CategoryRm)

	matchCmd, _ := parser.AddCommand("match", "Manage the match log", "Record, edit, delete and list matches. MVP tallies follow every change.", &MatchCommand{})
	matchCmd.AddCommand("add", "Record a match", "Record a match. --opponent is required.", cmds.MatchAdd)
	matchCmd.AddCommand("edit", "Change a match", "Change a recorded match; unset flags keep their value.", cmds.MatchEdit)
	matchCmd.AddCommand("rm", "Delete a match", "Delete a match and debit its MVP.", cmds.MatchRm)
	matchCmd.AddCommand("list", "List matches", "List matches with optional outcome filter, time window, sort and search.", cmds.MatchList)
	matchCmd.AddCommand("stats", "Show the season record", "Show wins, losses, draws, win rate and the MVP leaderboard.", cmds.MatchStats)
	parser.AddCommand("players", "Show the roster", "Show players and their MVP counts; add or remove roster entries.", cmds.Players)

	parser.AddCommand("onboard", "Complete first-run setup", "Mark onboarding as done, or reset it with --reset.", cmds.Onboard)
	parser.AddCommand("status", "Show storage status", "Show backend, stored snapshots, collection sizes and onboarding state.", cmds.Status)
	parser.AddCommand("purge", "Delete ALL entries and matches", "Delete ALL entries, matches and players. Destructive operation with safety prompt.", cmds.Purge)

	return parser, g, cmds
}

// Run is the main entry point for the diary CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("diary %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
