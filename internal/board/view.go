package board

import (
	"time"

	"github.com/tartampluch/go-eventboard/internal/engine"
)

// PageView is one rendered page of a list.
type PageView[T any] struct {
	Items   []T  `json:"items"`
	Index   int  `json:"page"`
	Max     int  `json:"max_page"`
	Total   int  `json:"total"`
	HasPrev bool `json:"has_prev"`
	HasNext bool `json:"has_next"`
}

func pageView[T any](p *engine.Pager, items []T) PageView[T] {
	p.SetLen(len(items))
	return PageView[T]{
		Items:   engine.PageOf(p, items),
		Index:   p.Index,
		Max:     p.Max(),
		Total:   len(items),
		HasPrev: p.HasPrev(),
		HasNext: p.HasNext(),
	}
}

// PageItems renders page index of items without keeping any state.
// An out-of-range index yields an empty page rather than being clamped.
func PageItems[T any](items []T, index, size int) PageView[T] {
	last := engine.MaxPageIndex(len(items), size)
	return PageView[T]{
		Items:   engine.Page(items, index, size),
		Index:   index,
		Max:     last,
		Total:   len(items),
		HasPrev: index > 0,
		HasNext: index < last,
	}
}

// ResidentEvents is what residents browse: events that have not started yet,
// narrowed by c.
func ResidentEvents(events []engine.Event, now time.Time, c engine.Criteria) []engine.Event {
	return c.Apply(engine.OnOrAfter(events, now), now.Location())
}

// AdminBuckets categorizes events and applies query to every bucket.
func AdminBuckets(events []engine.Event, now time.Time, adminID, query string) (engine.Buckets, engine.Stats) {
	all := engine.Categorize(events, now, adminID)
	stats := all.Stats()
	return engine.Buckets{
		Ongoing:  engine.FilterByQuery(all.Ongoing, query),
		Upcoming: engine.FilterByQuery(all.Upcoming, query),
		Past:     engine.FilterByQuery(all.Past, query),
		Featured: engine.FilterByQuery(all.Featured, query),
	}, stats
}
