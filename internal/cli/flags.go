package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// AddCommand writes a new diary entry.
type AddCommand struct {
	Title    string   `long:"title" description:"Entry title (required)"`
	Notes    string   `long:"notes" description:"Free-text notes"`
	Category string   `long:"category" description:"Category name (must exist)"`
	Mood     string   `long:"mood" description:"Mood label"`
	Tags     []string `long:"tag" description:"Tag (repeatable)"`
	Favorite bool     `long:"favorite" description:"Mark as favorite"`
	Rating   int      `long:"rating" description:"Rating from 1 to 5, 0 for none" default:"0"`
	Date     string   `long:"date" description:"Entry date: YYYY-MM-DD, RFC 3339, today, yesterday or an age like 3d"`

	globals *GlobalFlags
	app     *app // injectable for testing; nil means open from config
}

// EditCommand changes fields of an existing entry. Unset flags keep the
// current value.
type EditCommand struct {
	ID         string   `long:"id" description:"Entry ID (required)"`
	Title      string   `long:"title" description:"New title"`
	Notes      string   `long:"notes" description:"New notes"`
	Category   string   `long:"category" description:"New category name"`
	Mood       string   `long:"mood" description:"New mood"`
	Tags       []string `long:"tag" description:"Replace tags (repeatable)"`
	ClearTags  bool     `long:"clear-tags" description:"Remove all tags"`
	Favorite   bool     `long:"favorite" description:"Mark as favorite"`
	Unfavorite bool     `long:"unfavorite" description:"Clear the favorite mark"`
	Rating     int      `long:"rating" description:"New rating, 0 clears, -1 keeps" default:"-1"`

	globals *GlobalFlags
	app     *app
}

// ViewCommand prints one entry and counts the view.
type ViewCommand struct {
	ID     string `long:"id" description:"Entry ID (required)"`
	Format string `long:"format" description:"Output format: full | md | notes" default:"full"`

	globals *GlobalFlags
	app     *app
}

// RmCommand deletes one entry.
type RmCommand struct {
	ID string `long:"id" description:"Entry ID (required)"`

	globals *GlobalFlags
	app     *app
}

// ListCommand lists entries through the filter/sort engine.
type ListCommand struct {
	Filter   string `long:"filter" description:"all | today | week | month | favorites" default:"all"`
	Sort     string `long:"sort" description:"newest | oldest | title | title-desc | tags | rating (default from config)"`
	Search   string `long:"search" description:"Case-insensitive text search"`
	Category string `long:"category" description:"Only entries in this category"`
	Limit    int    `long:"limit" description:"Maximum results, 0 for all" default:"0"`

	globals *GlobalFlags
	app     *app
}

// StatsCommand prints entry statistics.
type StatsCommand struct {
	Top int `long:"top" description:"Number of top tags to show (default from config)"`

	globals *GlobalFlags
	app     *app
}

// CalendarCommand prints a month grid with entry markers.
type CalendarCommand struct {
	Month string `long:"month" description:"Month as YYYY-MM (default: current month)"`

	globals *GlobalFlags
	app     *app
}

// CategoryCommand groups the category subcommands.
type CategoryCommand struct{}

// CategoryListCommand lists categories.
type CategoryListCommand struct {
	globals *GlobalFlags
	app     *app
}

// CategoryAddCommand adds a custom category.
type CategoryAddCommand struct {
	Name string `long:"name" description:"Category name (required)"`

	globals *GlobalFlags
	app     *app
}

// CategoryRenameCommand renames a category without touching entries.
type CategoryRenameCommand struct {
	From string `long:"from" description:"Current name (required)"`
	To   string `long:"to" description:"New name (required)"`

	globals *GlobalFlags
	app     *app
}

// CategoryRmCommand deletes a category without touching entries.
type CategoryRmCommand struct {
	Name string `long:"name" description:"Category name (required)"`

	globals *GlobalFlags
	app     *app
}

// MatchCommand groups the match subcommands.
type MatchCommand struct{}

// MatchAddCommand records a match.
type MatchAddCommand struct {
	Opponent   string `long:"opponent" description:"Opponent name (required)"`
	Ours       int    `long:"ours" description:"Our score" default:"0"`
	Theirs     int    `long:"theirs" description:"Their score" default:"0"`
	MVP        string `long:"mvp" description:"Most valuable player"`
	Tournament string `long:"tournament" description:"Tournament name"`
	Notes      string `long:"notes" description:"Free-text notes"`
	Date       string `long:"date" description:"Match date (default: now)"`

	globals *GlobalFlags
	app     *app
}

// MatchEditCommand changes a recorded match. Unset flags keep the current
// value.
type MatchEditCommand struct {
	ID         string `long:"id" description:"Match ID (required)"`
	Opponent   string `long:"opponent" description:"New opponent"`
	Ours       int    `long:"ours" description:"New score, -1 keeps" default:"-1"`
	Theirs     int    `long:"theirs" description:"New score, -1 keeps" default:"-1"`
	MVP        string `long:"mvp" description:"New MVP"`
	ClearMVP   bool   `long:"clear-mvp" description:"Remove the MVP"`
	Tournament string `long:"tournament" description:"New tournament"`
	Notes      string `long:"notes" description:"New notes"`
	Date       string `long:"date" description:"New match date"`

	globals *GlobalFlags
	app     *app
}

// MatchRmCommand deletes a match, or with --all the whole history.
type MatchRmCommand struct {
	ID    string `long:"id" description:"Match ID (required unless --all)"`
	All   bool   `long:"all" description:"Delete every match and reset MVP tallies, keeping the roster"`
	Force bool   `long:"force" description:"Skip the confirmation prompt for --all"`

	globals *GlobalFlags
	app     *app
}

// MatchListCommand lists matches.
type MatchListCommand struct {
	Filter     string `long:"filter" description:"all | wins | losses | draws" default:"all"`
	Window     string `long:"window" description:"all | today | week | month" default:"all"`
	Sort       string `long:"sort" description:"newest | oldest | margin | opponent" default:"newest"`
	Search     string `long:"search" description:"Case-insensitive text search"`
	Tournament string `long:"tournament" description:"Only matches of this tournament"`
	Limit      int    `long:"limit" description:"Maximum results, 0 for all" default:"0"`

	globals *GlobalFlags
	app     *app
}

// MatchStatsCommand prints the season record.
type MatchStatsCommand struct {
	Window string `long:"window" description:"all | today | week | month" default:"all"`

	globals *GlobalFlags
	app     *app
}

// PlayersCommand prints the roster and MVP leaderboard.
type PlayersCommand struct {
	Add string `long:"add" description:"Add a player to the roster"`
	Rm  string `long:"rm" description:"Remove a player from the roster"`

	globals *GlobalFlags
	app     *app
}

// OnboardCommand completes or resets the first-run flow.
type OnboardCommand struct {
	Reset bool `long:"reset" description:"Show onboarding again on next run"`

	globals *GlobalFlags
	app     *app
}

// StatusCommand shows storage health and collection sizes.
type StatusCommand struct {
	globals *GlobalFlags
	version string
	app     *app
}

// PurgeCommand deletes ALL entries and matches with safety confirmation.
type PurgeCommand struct {
	All   bool `long:"all" description:"Required flag to confirm purge intent"`
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	app     *app
}
