package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/diary/internal/journal"
)

func seedEntries(t *testing.T, a *app) {
	t.Helper()
	addEntry(t, a, AddCommand{Title: "today walk", Category: "Travel", Tags: []string{"rain"}, Mood: "calm"})
	addEntry(t, a, AddCommand{Title: "Yesterday idea", Category: "Ideas", Date: "yesterday", Favorite: true, Rating: 5})
	addEntry(t, a, AddCommand{Title: "ancient", Date: "40d", Tags: []string{"rain", "cold"}})
}

type listOutput struct {
	Total   int             `json:"total"`
	Entries []journal.Entry `json:"entries"`
}

func runList(t *testing.T, a *app, cmd ListCommand, args ...string) listOutput {
	t.Helper()
	cmd.globals = &GlobalFlags{JSON: true}
	cmd.app = a
	var got listOutput
	out := captureOutput(t, func() {
		require.NoError(t, cmd.Execute(args))
	})
	decodeJSON(t, out, &got)
	return got
}

func listTitles(l listOutput) []string {
	out := make([]string, len(l.Entries))
	for i, e := range l.Entries {
		out[i] = e.Title
	}
	return out
}

func TestList_FilterDeleteScenario(t *testing.T) {
	a := newTestApp(t)
	seedEntries(t, a)

	week := runList(t, a, ListCommand{Filter: "week"})
	require.Equal(t, 2, week.Total)

	var yesterday string
	for _, e := range week.Entries {
		if e.Title == "Yesterday idea" {
			yesterday = e.ID
		}
	}
	rm := &RmCommand{ID: yesterday, globals: &GlobalFlags{}, app: a}
	captureOutput(t, func() { require.NoError(t, rm.Execute(nil)) })

	assert.Equal(t, []string{"today walk"}, listTitles(runList(t, a, ListCommand{Filter: "week"})))
}

func TestList_SortsSearchesAndLimits(t *testing.T) {
	a := newTestApp(t)
	seedEntries(t, a)

	assert.Equal(t, []string{"today walk", "Yesterday idea", "ancient"}, listTitles(runList(t, a, ListCommand{Filter: "all"})))
	assert.Equal(t, []string{"ancient", "today walk", "Yesterday idea"}, listTitles(runList(t, a, ListCommand{Sort: "title"})))
	assert.Equal(t, []string{"Yesterday idea"}, listTitles(runList(t, a, ListCommand{Filter: "favorites"})))
	assert.Equal(t, []string{"today walk"}, listTitles(runList(t, a, ListCommand{Category: "travel"})))
	assert.Equal(t, []string{"today walk", "ancient"}, listTitles(runList(t, a, ListCommand{}, "RAIN")))

	limited := runList(t, a, ListCommand{Limit: 1})
	assert.Equal(t, 3, limited.Total)
	assert.Len(t, limited.Entries, 1)
}

func TestList_CaseSensitiveSortFromConfig(t *testing.T) {
	a := newTestApp(t)
	seedEntries(t, a)
	a.cfg.Display.CaseSensitiveSort = true

	assert.Equal(t, []string{"Yesterday idea", "ancient", "today walk"}, listTitles(runList(t, a, ListCommand{Sort: "title"})))
}

func TestList_RejectsUnknownModes(t *testing.T) {
	a := newTestApp(t)
	assert.Error(t, (&ListCommand{Filter: "yearly", globals: &GlobalFlags{}, app: a}).Execute(nil))
	assert.Error(t, (&ListCommand{Sort: "random", globals: &GlobalFlags{}, app: a}).Execute(nil))
	assert.Error(t, (&ListCommand{Limit: -1, globals: &GlobalFlags{}, app: a}).Execute(nil))
}

func TestList_HumanOutput(t *testing.T) {
	a := newTestApp(t)
	out := captureOutput(t, func() {
		require.NoError(t, (&ListCommand{globals: &GlobalFlags{}, app: a}).Execute(nil))
	})
	assert.Contains(t, out, "No entries found.")

	seedEntries(t, a)
	out = captureOutput(t, func() {
		require.NoError(t, (&ListCommand{Limit: 2, globals: &GlobalFlags{}, app: a}).Execute(nil))
	})
	assert.Contains(t, out, "today walk")
	assert.Contains(t, out, "♥")
	assert.Contains(t, out, "2 of 3 entries shown")
}

func TestStats_JSON(t *testing.T) {
	a := newTestApp(t)
	seedEntries(t, a)

	var got statsJSON
	out := captureOutput(t, func() {
		require.NoError(t, (&StatsCommand{globals: &GlobalFlags{JSON: true}, app: a}).Execute(nil))
	})
	decodeJSON(t, out, &got)

	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 1, got.Favorites)
	assert.Equal(t, 2, got.CurrentStreak)
	assert.Equal(t, 2, got.LongestStreak)
	assert.InDelta(t, 5.0, got.AverageRating, 1e-9)
	require.Len(t, got.Categories, 3)
	assert.Equal(t, "Travel", got.Categories[0].Name)
	assert.InDelta(t, 100.0/3, got.Categories[0].Percent, 1e-9)
	assert.Equal(t, "Uncategorized", got.Categories[2].Name)
	assert.Equal(t, []countJSON{{Name: "rain", Count: 2}, {Name: "cold", Count: 1}}, got.TopTags)
}

func TestStats_EmptyHasNoNaN(t *testing.T) {
	a := newTestApp(t)
	out := captureOutput(t, func() {
		require.NoError(t, (&StatsCommand{globals: &GlobalFlags{}, app: a}).Execute(nil))
	})
	assert.Contains(t, out, "Entries:        0")
	assert.Contains(t, out, "Current streak: 0 days")
	assert.NotContains(t, out, "NaN")
}

func TestStats_YesterdayAnchor(t *testing.T) {
	a := newTestApp(t)
	a.cfg.Display.StreakAnchor = "yesterday"
	addEntry(t, a, AddCommand{Title: "a", Date: "yesterday"})
	addEntry(t, a, AddCommand{Title: "b", Date: "2d"})

	var got statsJSON
	out := captureOutput(t, func() {
		require.NoError(t, (&StatsCommand{globals: &GlobalFlags{JSON: true}, app: a}).Execute(nil))
	})
	decodeJSON(t, out, &got)
	assert.Equal(t, 2, got.CurrentStreak)

	a.cfg.Display.StreakAnchor = "today"
	out = captureOutput(t, func() {
		require.NoError(t, (&StatsCommand{globals: &GlobalFlags{JSON: true}, app: a}).Execute(nil))
	})
	decodeJSON(t, out, &got)
	assert.Equal(t, 0, got.CurrentStreak)
}

func TestCalendar(t *testing.T) {
	a := newTestApp(t)
	addEntry(t, a, AddCommand{Title: "a", Date: "2025-04-02"})
	addEntry(t, a, AddCommand{Title: "b"})
	addEntry(t, a, AddCommand{Title: "c", Date: "2025-03-31"})

	out := captureOutput(t, func() {
		require.NoError(t, (&CalendarCommand{globals: &GlobalFlags{}, app: a}).Execute(nil))
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, "April 2025", lines[0])
	assert.Equal(t, "  Su  Mo  Tu  We  Th  Fr  Sa", lines[1])
	// April 1st 2025 is a Tuesday.
	assert.Equal(t, "          1   2*  3   4   5 ", lines[2])
	assert.Contains(t, out, " 16*")
	assert.NotContains(t, out, " 31*")

	var got struct {
		Month     string   `json:"month"`
		Days      int      `json:"days"`
		EntryDays []string `json:"entry_days"`
	}
	out = captureOutput(t, func() {
		require.NoError(t, (&CalendarCommand{Month: "2025-03", globals: &GlobalFlags{JSON: true}, app: a}).Execute(nil))
	})
	decodeJSON(t, out, &got)
	assert.Equal(t, "2025-03", got.Month)
	assert.Equal(t, 31, got.Days)
	assert.Equal(t, []string{"2025-03-31"}, got.EntryDays)

	assert.Error(t, (&CalendarCommand{Month: "March", globals: &GlobalFlags{}, app: a}).Execute(nil))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"", testNow},
		{"today", testNow},
		{"Yesterday", testNow.AddDate(0, 0, -1)},
		{"2025-01-05", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"2025-01-05T10:00:00Z", time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)},
		{"2w", testNow.Add(-14 * 24 * time.Hour)},
		{"12h", testNow.Add(-12 * time.Hour)},
	}
	for _, tc := range tests {
		got, err := parseDate(tc.in, testNow)
		require.NoError(t, err, tc.in)
		assert.True(t, tc.want.Equal(got), "%s: got %s", tc.in, got)
	}

	for _, bad := range []string{"soon", "3y", "-2d", "d"} {
		_, err := parseDate(bad, testNow)
		assert.Error(t, err, bad)
	}
}
