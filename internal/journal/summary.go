package journal

import (
	"strings"
	"time"

	"github.com/runnerr0/diary/internal/stats"
)

// Summary is the statistics screen for a set of entries.
type Summary struct {
	Total      int
	Favorites  int
	Categories []stats.Share[string]
	Moods      []stats.Count[string]
	TopTags    []stats.Count[string]
	Streak     stats.Streak
	AvgRating  float64
	MostViewed *Entry
}

// Summarize computes the summary. display maps a stored category reference
// to its label, so dangling references fold into one bucket; nil keeps the
// raw names.
func Summarize(entries []Entry, today time.Time, anchor stats.Anchor, display func(string) string, topTags int) Summary {
	sum := Summary{Total: len(entries)}

	var (
		cats, moods     []string
		dates           []time.Time
		rated, ratedSum int
	)
	for i, e := range entries {
		if e.Favorite {
			sum.Favorites++
		}
		cat := e.Category
		if display != nil {
			cat = display(cat)
		}
		cats = append(cats, cat)
		if m := strings.TrimSpace(e.Mood); m != "" {
			moods = append(moods, m)
		}
		dates = append(dates, e.CreatedAt)
		if e.Rating > 0 {
			rated++
			ratedSum += e.Rating
		}
		if e.ViewCount > 0 && (sum.MostViewed == nil || e.ViewCount > sum.MostViewed.ViewCount) {
			sum.MostViewed = &entries[i]
		}
	}

	sum.Categories = stats.Shares(stats.Frequency(cats))
	sum.Moods = stats.Frequency(moods)
	sum.TopTags = stats.Top(stats.FrequencyBy(entries, func(e Entry) []string { return e.Tags }), topTags)
	sum.Streak = stats.Streaks(dates, today, anchor)
	sum.AvgRating = stats.Ratio(ratedSum, rated)
	return sum
}

// Calendar returns the has-entry markers for one month.
func Calendar(entries []Entry, year int, month time.Month, loc *time.Location) []stats.Marker {
	dates := make([]time.Time, len(entries))
	for i, e := range entries {
		dates[i] = e.CreatedAt
	}
	return stats.Days(dates, loc).Month(year, month)
}
