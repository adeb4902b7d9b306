package matchlog

import (
	"fmt"
	"strings"
	"time"

	"github.com/runnerr0/diary/internal/query"
)

// Filter selects matches by outcome.
type Filter string

const (
	FilterAll    Filter = "all"
	FilterWins   Filter = "wins"
	FilterLosses Filter = "losses"
	FilterDraws  Filter = "draws"
)

var filterOutcome = map[Filter]Outcome{
	FilterWins:   Win,
	FilterLosses: Loss,
	FilterDraws:  Draw,
}

// ParseFilter validates an outcome filter. Empty means all.
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	if f == "" || f == FilterAll {
		return FilterAll, nil
	}
	if _, ok := filterOutcome[f]; ok {
		return f, nil
	}
	return FilterAll, fmt.Errorf("unknown match filter %q", s)
}

// Sort is a match list ordering.
type Sort string

const (
	SortNewest   Sort = "newest"
	SortOldest   Sort = "oldest"
	SortMargin   Sort = "margin"
	SortOpponent Sort = "opponent"
)

// ParseSort validates a match sort. Empty means newest.
func ParseSort(s string) (Sort, error) {
	switch o := Sort(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return SortNewest, nil
	case SortNewest, SortOldest, SortMargin, SortOpponent:
		return o, nil
	}
	return SortNewest, fmt.Errorf("unknown match sort %q", s)
}

func playedAt(m Match) time.Time { return m.PlayedAt }

// Compare returns the comparator for the sort.
func (o Sort) Compare(caseSensitive bool) query.Compare[Match] {
	switch o {
	case SortOldest:
		return query.OldestFirst(playedAt)
	case SortMargin:
		return query.MagnitudeDesc(Match.Margin)
	case SortOpponent:
		return query.Alphabetical(func(m Match) string { return m.Opponent }, query.Ascending, caseSensitive)
	default:
		return query.NewestFirst(playedAt)
	}
}

// ViewOptions configures NewView.
type ViewOptions struct {
	Filter        Filter
	Window        query.Window
	Sort          Sort
	Search        string
	Tournament    string
	CaseSensitive bool
	Now           func() time.Time
}

// NewView returns a query.View over the live match history.
func NewView(l *Log, o ViewOptions) *query.View[Match] {
	v := query.NewView(l.Matches, Match.searchFields)
	if o.Now != nil {
		v.WithClock(o.Now)
	}
	v.SetFilter(func(now time.Time) query.Predicate[Match] {
		var outcome query.Predicate[Match]
		if want, ok := filterOutcome[o.Filter]; ok {
			outcome = query.Equal(want, Match.Outcome)
		}
		return query.And(outcome, query.InWindow(o.Window, now, playedAt))
	})
	v.SetScope(query.EqualFold(o.Tournament, func(m Match) string { return m.Tournament }))
	v.SetSort(o.Sort.Compare(o.CaseSensitive))
	v.SetSearch(o.Search)
	return v
}
