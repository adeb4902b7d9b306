package query

import (
	"fmt"
	"strings"
	"time"
)

// Window is a time-range filter evaluated against "now" at call time.
type Window int

const (
	WindowAll Window = iota
	WindowToday
	WindowWeek
	WindowMonth
)

var windowNames = map[Window]string{
	WindowAll:   "all",
	WindowToday: "today",
	WindowWeek:  "week",
	WindowMonth: "month",
}

func (w Window) String() string {
	if s, ok := windowNames[w]; ok {
		return s
	}
	return fmt.Sprintf("Window(%d)", int(w))
}

// ParseWindow accepts all, today, week (last 7 days) and month (last 30 days).
func ParseWindow(s string) (Window, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return WindowAll, nil
	case "today":
		return WindowToday, nil
	case "week", "7d":
		return WindowWeek, nil
	case "month", "30d":
		return WindowMonth, nil
	}
	return WindowAll, fmt.Errorf("unknown time window %q (use all, today, week or month)", s)
}

// Contains reports whether t falls in the window relative to now. Today
// means the same calendar day in now's location; week and month are rolling
// windows of 7 and 30 days ending at now.
func (w Window) Contains(t, now time.Time) bool {
	switch w {
	case WindowToday:
		t = t.In(now.Location())
		y1, m1, d1 := t.Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case WindowWeek:
		return !t.Before(now.AddDate(0, 0, -7))
	case WindowMonth:
		return !t.Before(now.AddDate(0, 0, -30))
	default:
		return true
	}
}

// InWindow builds a predicate over the record's date field. WindowAll
// yields nil so it costs nothing inside And.
func InWindow[T any](w Window, now time.Time, date func(T) time.Time) Predicate[T] {
	if w == WindowAll {
		return nil
	}
	return func(v T) bool { return w.Contains(date(v), now) }
}
