package engine

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/go-eventboard/internal/config"
)

// MatchesQuery reports whether the title or description contains query, ignoring case.
// An empty query matches everything.
func MatchesQuery(e Event, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(e.Title), q) ||
		strings.Contains(strings.ToLower(e.Description), q)
}

// FilterByQuery keeps the events matching query, preserving order.
func FilterByQuery(events []Event, query string) []Event {
	return filter(events, func(e Event) bool { return MatchesQuery(e, query) })
}

// MonthFilter selects a calendar month (0 = January) or every month.
type MonthFilter int

// MonthAll disables month filtering.
const MonthAll MonthFilter = -1

// ParseMonthFilter accepts "all" (or an empty string) and "0" through "11".
func ParseMonthFilter(s string) (MonthFilter, error) {
	if s == "" || s == config.MonthAllValue {
		return MonthAll, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 11 {
		return MonthAll, errors.New(config.ErrMonthFilter)
	}
	return MonthFilter(n), nil
}

// String renders the filter in the form ParseMonthFilter accepts.
func (m MonthFilter) String() string {
	if m == MonthAll {
		return config.MonthAllValue
	}
	return strconv.Itoa(int(m))
}

// Matches reports whether t falls in the selected month, read in loc.
func (m MonthFilter) Matches(t time.Time, loc *time.Location) bool {
	if m == MonthAll {
		return true
	}
	if loc == nil {
		loc = time.Local
	}
	return int(t.In(loc).Month())-1 == int(m)
}

// FilterByMonth keeps the events whose local month matches m.
func FilterByMonth(events []Event, m MonthFilter, loc *time.Location) []Event {
	return filter(events, func(e Event) bool { return m.Matches(e.Date, loc) })
}

// Criteria groups the interactive narrowing options of a board.
type Criteria struct {
	Query     string
	Month     MonthFilter
	Direction Direction
}

// DefaultCriteria shows every month in ascending order.
func DefaultCriteria() Criteria {
	return Criteria{Month: MonthAll, Direction: Ascending}
}

// Apply filters by query and month, then sorts by date.
func (c Criteria) Apply(events []Event, loc *time.Location) []Event {
	out := FilterByQuery(events, c.Query)
	out = FilterByMonth(out, c.Month, loc)
	return SortByDate(out, c.Direction)
}

// OnOrAfter keeps the events that have not started before now.
func OnOrAfter(events []Event, now time.Time) []Event {
	return filter(events, func(e Event) bool { return !e.Date.Before(now) })
}

func filter(events []Event, keep func(Event) bool) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
