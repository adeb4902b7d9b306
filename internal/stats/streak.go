package stats

import (
	"fmt"
	"strings"
	"time"
)

// Anchor decides when the current streak is considered broken.
type Anchor int

const (
	// AnchorToday: the current streak is 0 unless today has a record.
	AnchorToday Anchor = iota
	// AnchorYesterday: a run ending yesterday still counts while today is
	// not over.
	AnchorYesterday
)

func (a Anchor) String() string {
	if a == AnchorYesterday {
		return "yesterday"
	}
	return "today"
}

// ParseAnchor accepts "today" and "yesterday".
func ParseAnchor(s string) (Anchor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return AnchorToday, nil
	case "yesterday":
		return AnchorYesterday, nil
	}
	return AnchorToday, fmt.Errorf("unknown streak anchor %q (use today or yesterday)", s)
}

// Streak holds the current and the longest run of consecutive days.
type Streak struct {
	Current int
	Longest int
}

// Streaks computes runs of consecutive calendar days, in today's location,
// over the days touched by dates.
func Streaks(dates []time.Time, today time.Time, anchor Anchor) Streak {
	set := Days(dates, today.Location())
	if set.Len() == 0 {
		return Streak{}
	}

	var st Streak
	run := 0
	var prev Day
	for i, d := range set.Sorted() {
		if i > 0 && prev.AddDays(1) == d {
			run++
		} else {
			run = 1
		}
		if run > st.Longest {
			st.Longest = run
		}
		prev = d
	}

	start := DayOf(today, today.Location())
	if !set.HasDay(start) {
		if anchor != AnchorYesterday || !set.HasDay(start.AddDays(-1)) {
			return st
		}
		start = start.AddDays(-1)
	}
	for d := start; set.HasDay(d); d = d.AddDays(-1) {
		st.Current++
	}
	return st
}
