package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/runnerr0/diary/internal/query"
)

// Filter is a list-screen filter mode.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterToday     Filter = "today"
	FilterWeek      Filter = "week"
	FilterMonth     Filter = "month"
	FilterFavorites Filter = "favorites"
)

// Filters lists the accepted filter modes.
var Filters = []Filter{FilterAll, FilterToday, FilterWeek, FilterMonth, FilterFavorites}

// Sort is a list-screen ordering.
type Sort string

const (
	SortNewest    Sort = "newest"
	SortOldest    Sort = "oldest"
	SortTitle     Sort = "title"
	SortTitleDesc Sort = "title-desc"
	SortMostTags  Sort = "tags"
	SortRating    Sort = "rating"
)

// Sorts lists the accepted sort modes.
var Sorts = []Sort{SortNewest, SortOldest, SortTitle, SortTitleDesc, SortMostTags, SortRating}

// ParseFilter validates a filter name. Empty means all.
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FilterAll, nil
	}
	for _, known := range Filters {
		if f == known {
			return f, nil
		}
	}
	return FilterAll, fmt.Errorf("unknown filter %q", s)
}

// ParseSort validates a sort name. Empty means newest.
func ParseSort(s string) (Sort, error) {
	o := Sort(strings.ToLower(strings.TrimSpace(s)))
	if o == "" {
		return SortNewest, nil
	}
	for _, known := range Sorts {
		if o == known {
			return o, nil
		}
	}
	return SortNewest, fmt.Errorf("unknown sort %q", s)
}

func createdAt(e Entry) time.Time { return e.CreatedAt }

// Predicate returns the filter predicate evaluated at now.
func (f Filter) Predicate(now time.Time) query.Predicate[Entry] {
	switch f {
	case FilterToday:
		return query.InWindow(query.WindowToday, now, createdAt)
	case FilterWeek:
		return query.InWindow(query.WindowWeek, now, createdAt)
	case FilterMonth:
		return query.InWindow(query.WindowMonth, now, createdAt)
	case FilterFavorites:
		return query.Equal(true, func(e Entry) bool { return e.Favorite })
	default:
		return nil
	}
}

// Compare returns the comparator for the sort mode. caseSensitive only
// affects the title orderings.
func (o Sort) Compare(caseSensitive bool) query.Compare[Entry] {
	title := func(e Entry) string { return e.Title }
	switch o {
	case SortOldest:
		return query.OldestFirst(createdAt)
	case SortTitle:
		return query.Alphabetical(title, query.Ascending, caseSensitive)
	case SortTitleDesc:
		return query.Alphabetical(title, query.Descending, caseSensitive)
	case SortMostTags:
		return query.CountDesc(func(e Entry) int { return len(e.Tags) })
	case SortRating:
		return query.MagnitudeDesc(func(e Entry) int { return e.Rating })
	default:
		return query.NewestFirst(createdAt)
	}
}

// ViewOptions configures NewView.
type ViewOptions struct {
	Filter        Filter
	Sort          Sort
	Search        string
	Category      string
	CaseSensitive bool
	Now           func() time.Time
}

// NewView returns a query.View over the live store contents.
func NewView(s *Store, o ViewOptions) *query.View[Entry] {
	v := query.NewView(s.All, Entry.SearchFields)
	if o.Now != nil {
		v.WithClock(o.Now)
	}
	v.SetFilter(o.Filter.Predicate)
	v.SetSort(o.Sort.Compare(o.CaseSensitive))
	v.SetSearch(o.Search)
	v.SetScope(query.EqualFold(o.Category, func(e Entry) string { return e.Category }))
	return v
}
