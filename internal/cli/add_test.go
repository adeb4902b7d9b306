package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/diary/internal/journal"
)

func addEntry(t *testing.T, a *app, cmd AddCommand) journal.Entry {
	t.Helper()
	cmd.globals = &GlobalFlags{JSON: true}
	cmd.app = a
	var got journal.Entry
	out := captureOutput(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})
	decodeJSON(t, out, &got)
	return got
}

func TestAdd_RequiresTitle(t *testing.T) {
	a := newTestApp(t)
	for _, title := range []string{"", "   "} {
		cmd := &AddCommand{Title: title, globals: &GlobalFlags{}, app: a}
		err := cmd.Execute(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--title is required")
	}
	assert.Zero(t, a.entries.Len())
}

func TestAdd_RejectsBadRating(t *testing.T) {
	a := newTestApp(t)
	cmd := &AddCommand{Title: "x", Rating: 6, globals: &GlobalFlags{}, app: a}
	assert.Error(t, cmd.Execute(nil))
}

func TestAdd_RejectsUnknownCategory(t *testing.T) {
	a := newTestApp(t)
	cmd := &AddCommand{Title: "x", Category: "Nope", globals: &GlobalFlags{}, app: a}
	err := cmd.Execute(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestAdd_StoresTrimmedFields(t *testing.T) {
	a := newTestApp(t)
	got := addEntry(t, a, AddCommand{
		Title:    "  Lavender  ",
		Category: "personal",
		Tags:     []string{"calm", " Calm ", "", "night"},
		Rating:   4,
		Favorite: true,
	})

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "Lavender", got.Title)
	assert.Equal(t, "Personal", got.Category)
	assert.Equal(t, []string{"calm", "night"}, got.Tags)
	assert.True(t, got.Favorite)
	assert.True(t, testNow.Equal(got.CreatedAt))

	stored, ok := a.entries.Get(got.ID)
	require.True(t, ok)
	assert.Equal(t, "Lavender", stored.Title)
}

func TestAdd_BackdatesWithDate(t *testing.T) {
	a := newTestApp(t)
	got := addEntry(t, a, AddCommand{Title: "old", Date: "2025-04-01"})
	assert.Equal(t, "2025-04-01", got.CreatedAt.Format(time.DateOnly))

	got = addEntry(t, a, AddCommand{Title: "recent", Date: "3d"})
	assert.True(t, testNow.Add(-72*time.Hour).Equal(got.CreatedAt))
}

func TestAdd_HumanOutput(t *testing.T) {
	a := newTestApp(t)
	cmd := &AddCommand{Title: "Rose", Tags: []string{"floral"}, globals: &GlobalFlags{}, app: a}
	out := captureOutput(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})
	assert.Contains(t, out, "Added entry")
	assert.Contains(t, out, "Title:    Rose")
	assert.Contains(t, out, "Category: Uncategorized")
	assert.Contains(t, out, "Tags:     floral")
}

func TestEdit_ChangesOnlyGivenFields(t *testing.T) {
	a := newTestApp(t)
	orig := addEntry(t, a, AddCommand{Title: "draft", Notes: "keep me", Tags: []string{"a"}, Rating: 3})

	cmd := &EditCommand{ID: orig.ID, Title: "final", Rating: -1, Favorite: true, globals: &GlobalFlags{}, app: a}
	captureOutput(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})

	got, _ := a.entries.Get(orig.ID)
	assert.Equal(t, "final", got.Title)
	assert.Equal(t, "keep me", got.Notes)
	assert.Equal(t, []string{"a"}, got.Tags)
	assert.Equal(t, 3, got.Rating)
	assert.True(t, got.Favorite)
	require.NotNil(t, got.UpdatedAt)
	assert.Equal(t, orig.CreatedAt.Unix(), got.CreatedAt.Unix())
}

func TestEdit_ClearTagsAndRating(t *testing.T) {
	a := newTestApp(t)
	orig := addEntry(t, a, AddCommand{Title: "x", Tags: []string{"a"}, Rating: 3, Favorite: true})

	cmd := &EditCommand{ID: orig.ID, ClearTags: true, Rating: 0, Unfavorite: true, globals: &GlobalFlags{}, app: a}
	captureOutput(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})

	got, _ := a.entries.Get(orig.ID)
	assert.Empty(t, got.Tags)
	assert.Zero(t, got.Rating)
	assert.False(t, got.Favorite)
}

func TestEdit_Validation(t *testing.T) {
	a := newTestApp(t)
	orig := addEntry(t, a, AddCommand{Title: "x"})

	tests := []struct {
		name string
		cmd  EditCommand
		want string
	}{
		{"missing id", EditCommand{Rating: -1}, "--id is required"},
		{"blank title", EditCommand{ID: orig.ID, Title: "  ", Rating: -1}, "must not be blank"},
		{"favorite both", EditCommand{ID: orig.ID, Favorite: true, Unfavorite: true, Rating: -1}, "mutually exclusive"},
		{"tags both", EditCommand{ID: orig.ID, ClearTags: true, Tags: []string{"a"}, Rating: -1}, "mutually exclusive"},
		{"unknown id", EditCommand{ID: "nope", Rating: -1}, "entry not found"},
		{"unknown category", EditCommand{ID: orig.ID, Category: "Nope", Rating: -1}, "unknown category"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd := tc.cmd
			cmd.globals = &GlobalFlags{}
			cmd.app = a
			err := cmd.Execute(nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestRm_IsIdempotent(t *testing.T) {
	a := newTestApp(t)
	e := addEntry(t, a, AddCommand{Title: "x"})

	cmd := &RmCommand{ID: e.ID, globals: &GlobalFlags{}, app: a}
	out := captureOutput(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})
	assert.Contains(t, out, "Deleted entry")

	out = captureOutput(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})
	assert.Contains(t, out, "nothing deleted")
	assert.Zero(t, a.entries.Len())
}

func TestView_CountsViews(t *testing.T) {
	a := newTestApp(t)
	e := addEntry(t, a, AddCommand{Title: "Vetiver", Notes: "smoky", Rating: 2})

	cmd := &ViewCommand{ID: e.ID, Format: "full", globals: &GlobalFlags{}, app: a}
	out := captureOutput(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})
	assert.Contains(t, out, "Title:     Vetiver")
	assert.Contains(t, out, "smoky")
	assert.Contains(t, out, "★★☆☆☆")
	assert.Contains(t, out, "Views:     1")

	cmd.Format = "md"
	out = captureOutput(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})
	assert.Contains(t, out, "title: Vetiver")
	assert.Contains(t, out, "# Vetiver")

	got, _ := a.entries.Get(e.ID)
	assert.Equal(t, 2, got.ViewCount)
	require.NotNil(t, got.LastViewedAt)
	assert.True(t, testNow.Equal(*got.LastViewedAt))
}

func TestView_UnknownID(t *testing.T) {
	a := newTestApp(t)
	cmd := &ViewCommand{ID: "nope", globals: &GlobalFlags{}, app: a}
	err := cmd.Execute(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry not found")
}

func TestAdd_PersistsAcrossApps(t *testing.T) {
	a := newTestApp(t)
	e := addEntry(t, a, AddCommand{Title: "kept"})

	b := newTestAppOver(t, a.blobs)
	got, ok := b.entries.Get(e.ID)
	require.True(t, ok)
	assert.Equal(t, "kept", got.Title)
	assert.NoError(t, b.entries.LastPersistError())
}
