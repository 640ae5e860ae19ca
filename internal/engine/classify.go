package engine

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-eventboard/internal/config"
)

// Bucket is the date category an event falls into for a given "now".
// Featured is a separate axis and never returned by Classify as a Bucket.
type Bucket string

const (
	BucketOngoing  Bucket = "ongoing"
	BucketUpcoming Bucket = "upcoming"
	BucketPast     Bucket = "past"
	BucketFeatured Bucket = "featured"
)

// AllBuckets lists the buckets in display order.
var AllBuckets = []Bucket{BucketOngoing, BucketUpcoming, BucketPast, BucketFeatured}

// ParseBucket validates a bucket name coming from a query string.
func ParseBucket(s string) (Bucket, error) {
	for _, b := range AllBuckets {
		if string(b) == s {
			return b, nil
		}
	}
	return "", fmt.Errorf("%s: %q", config.ErrBucket, s)
}

// Classification is the result of Classify.
type Classification struct {
	Bucket   Bucket
	Featured bool
}

// Classify assigns an event to past, ongoing or upcoming relative to now.
//
// The strict "before now" test runs first, so an event that started earlier
// today is past, not ongoing. Calendar days are compared in now's location.
func Classify(e Event, now time.Time, adminID string) Classification {
	c := Classification{Featured: e.Owner != adminID}

	switch {
	case e.Date.Before(now):
		c.Bucket = BucketPast
	case sameDay(e.Date, now):
		c.Bucket = BucketOngoing
	default:
		c.Bucket = BucketUpcoming
	}
	return c
}

func sameDay(t, now time.Time) bool {
	y1, m1, d1 := t.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Buckets holds events grouped by Classify. Each slice is sorted ascending by date.
// An event appears in exactly one of Ongoing, Upcoming and Past, and additionally
// in Featured when it was not published by the admin.
type Buckets struct {
	Ongoing  []Event
	Upcoming []Event
	Past     []Event
	Featured []Event
}

// Categorize classifies every event and sorts each bucket ascending.
func Categorize(events []Event, now time.Time, adminID string) Buckets {
	var b Buckets
	for _, e := range events {
		c := Classify(e, now, adminID)
		if c.Featured {
			b.Featured = append(b.Featured, e)
		}
		switch c.Bucket {
		case BucketPast:
			b.Past = append(b.Past, e)
		case BucketOngoing:
			b.Ongoing = append(b.Ongoing, e)
		default:
			b.Upcoming = append(b.Upcoming, e)
		}
	}

	b.Ongoing = SortByDate(b.Ongoing, Ascending)
	b.Upcoming = SortByDate(b.Upcoming, Ascending)
	b.Past = SortByDate(b.Past, Ascending)
	b.Featured = SortByDate(b.Featured, Ascending)
	return b
}

// Get returns the events of one bucket. Unknown buckets yield nil.
func (b Buckets) Get(bucket Bucket) []Event {
	switch bucket {
	case BucketOngoing:
		return b.Ongoing
	case BucketUpcoming:
		return b.Upcoming
	case BucketPast:
		return b.Past
	case BucketFeatured:
		return b.Featured
	}
	return nil
}

// Stats summarises the admin dashboard counters.
type Stats struct {
	TotalEvents  int `json:"total_events"`
	ActiveEvents int `json:"active_events"`
}

// Stats counts all events and the active (ongoing plus upcoming) ones.
func (b Buckets) Stats() Stats {
	active := len(b.Ongoing) + len(b.Upcoming)
	return Stats{
		TotalEvents:  active + len(b.Past),
		ActiveEvents: active,
	}
}
