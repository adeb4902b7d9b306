package stats

import (
	"fmt"
	"slices"
	"time"
)

// Day is a calendar date with no time or zone.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf returns the calendar day of t in loc.
func DayOf(t time.Time, loc *time.Location) Day {
	y, m, d := t.In(loc).Date()
	return Day{Year: y, Month: m, Day: d}
}

// AddDays moves n days forward (or back when negative), normalizing across
// month and year boundaries.
func (d Day) AddDays(n int) Day {
	y, m, dd := time.Date(d.Year, d.Month, d.Day+n, 12, 0, 0, 0, time.UTC).Date()
	return Day{Year: y, Month: m, Day: dd}
}

// Compare orders days chronologically.
func (d Day) Compare(o Day) int {
	switch {
	case d.Year != o.Year:
		return d.Year - o.Year
	case d.Month != o.Month:
		return int(d.Month) - int(o.Month)
	default:
		return d.Day - o.Day
	}
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// DaySet answers "is there at least one record on this day".
type DaySet struct {
	loc  *time.Location
	days map[Day]struct{}
}

// Days builds the set of calendar days (in loc) touched by dates.
func Days(dates []time.Time, loc *time.Location) DaySet {
	if loc == nil {
		loc = time.Local
	}
	s := DaySet{loc: loc, days: make(map[Day]struct{}, len(dates))}
	for _, t := range dates {
		s.days[DayOf(t, loc)] = struct{}{}
	}
	return s
}

// Len returns the number of distinct days.
func (s DaySet) Len() int { return len(s.days) }

// Has reports whether t's calendar day is in the set.
func (s DaySet) Has(t time.Time) bool { return s.HasDay(DayOf(t, s.loc)) }

// HasDay reports whether d is in the set.
func (s DaySet) HasDay(d Day) bool {
	_, ok := s.days[d]
	return ok
}

// Sorted returns the days in chronological order.
func (s DaySet) Sorted() []Day {
	out := make([]Day, 0, len(s.days))
	for d := range s.days {
		out = append(out, d)
	}
	slices.SortFunc(out, Day.Compare)
	return out
}

// Marker is one cell of a calendar grid.
type Marker struct {
	Day      Day
	HasEntry bool
}

// Month returns one marker per day of the given month.
func (s DaySet) Month(year int, month time.Month) []Marker {
	first := Day{Year: year, Month: month, Day: 1}
	var out []Marker
	for d := first; d.Month == month; d = d.AddDays(1) {
		out = append(out, Marker{Day: d, HasEntry: s.HasDay(d)})
	}
	return out
}
