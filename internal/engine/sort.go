package engine

import (
	"errors"
	"slices"

	"github.com/tartampluch/go-eventboard/internal/config"
)

// Direction is the date ordering of a board.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// ParseDirection accepts "asc" (or an empty string) and "desc".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "", config.SortAscValue:
		return Ascending, nil
	case config.SortDescValue:
		return Descending, nil
	}
	return Ascending, errors.New(config.ErrSortDirection)
}

// String renders the direction in the form ParseDirection accepts.
func (d Direction) String() string {
	if d == Descending {
		return config.SortDescValue
	}
	return config.SortAscValue
}

// Toggle flips the direction.
func (d Direction) Toggle() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// SortByDate returns a copy of events ordered by date.
// Events with equal dates keep their relative order in both directions.
func SortByDate(events []Event, dir Direction) []Event {
	out := slices.Clone(events)
	slices.SortStableFunc(out, func(a, b Event) int {
		if dir == Descending {
			return b.Date.Compare(a.Date)
		}
		return a.Date.Compare(b.Date)
	})
	return out
}
