package board

import (
	"sync"

	"github.com/tartampluch/go-eventboard/internal/engine"
)

// EventBoard is the resident events list: search, month filter, sort toggle
// and a pager that returns to the first page whenever the criteria change.
type EventBoard struct {
	mu       sync.Mutex
	clock    engine.Clock
	events   []engine.Event
	criteria engine.Criteria
	pager    *engine.Pager
}

// NewEventBoard returns an empty board showing every month in ascending order.
func NewEventBoard(clock engine.Clock, pageSize int) *EventBoard {
	return &EventBoard{
		clock:    clock,
		criteria: engine.DefaultCriteria(),
		pager:    engine.NewPager(pageSize),
	}
}

// SetEvents replaces the board's events with a new snapshot.
// The current page is kept when it still exists.
func (b *EventBoard) SetEvents(events []engine.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = events
}

// Criteria returns the active criteria.
func (b *EventBoard) Criteria() engine.Criteria {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.criteria
}

// SetQuery changes the search text and goes back to the first page.
func (b *EventBoard) SetQuery(q string) {
	b.update(func(c *engine.Criteria) { c.Query = q })
}

// SetMonth changes the month filter and goes back to the first page.
func (b *EventBoard) SetMonth(m engine.MonthFilter) {
	b.update(func(c *engine.Criteria) { c.Month = m })
}

// ToggleSort flips the date order and goes back to the first page.
func (b *EventBoard) ToggleSort() {
	b.update(func(c *engine.Criteria) { c.Direction = c.Direction.Toggle() })
}

func (b *EventBoard) update(change func(*engine.Criteria)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	change(&b.criteria)
	b.pager.Reset()
}

// Next moves to the next page, staying on the last one.
func (b *EventBoard) Next() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pager.SetLen(len(b.visible()))
	b.pager.Next()
}

// Prev moves to the previous page, staying on the first one.
func (b *EventBoard) Prev() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pager.Prev()
}

// View renders the current page.
func (b *EventBoard) View() PageView[engine.Event] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return pageView(b.pager, b.visible())
}

func (b *EventBoard) visible() []engine.Event {
	return ResidentEvents(b.events, b.clock.Now(), b.criteria)
}
