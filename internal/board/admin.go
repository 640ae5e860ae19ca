package board

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/tartampluch/go-eventboard/internal/api"
	"github.com/tartampluch/go-eventboard/internal/config"
	"github.com/tartampluch/go-eventboard/internal/engine"
)

// AdminView is the rendered admin dashboard.
type AdminView struct {
	Stats   engine.Stats
	Buckets map[engine.Bucket]PageView[engine.Event]
}

// AdminBoard is the admin dashboard: counters, one pager per bucket,
// a shared search box and the create-event form.
type AdminBoard struct {
	client  api.EventsAPI
	session api.Session
	clock   engine.Clock
	adminID string

	mu     sync.Mutex
	events []engine.Event
	query  string
	pagers map[engine.Bucket]*engine.Pager

	submitting atomic.Bool
}

// NewAdminBoard wires the dashboard to the upstream API.
func NewAdminBoard(client api.EventsAPI, s api.Session, clock engine.Clock, adminID string, pageSize int) *AdminBoard {
	pagers := make(map[engine.Bucket]*engine.Pager, len(engine.AllBuckets))
	for _, b := range engine.AllBuckets {
		pagers[b] = engine.NewPager(pageSize)
	}
	return &AdminBoard{
		client:  client,
		session: s,
		clock:   clock,
		adminID: adminID,
		pagers:  pagers,
	}
}

// SetEvents replaces the dashboard's events with a new snapshot.
func (b *AdminBoard) SetEvents(events []engine.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = events
}

// SetQuery changes the search text and returns every bucket to its first page.
func (b *AdminBoard) SetQuery(q string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.query = q
	for _, p := range b.pagers {
		p.Reset()
	}
}

// Next advances one bucket's page. Unknown buckets are ignored.
func (b *AdminBoard) Next(bucket engine.Bucket) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.pagers[bucket]
	if !ok {
		return
	}
	buckets, _ := b.buckets()
	p.SetLen(len(buckets.Get(bucket)))
	p.Next()
}

// Prev moves one bucket back a page. Unknown buckets are ignored.
func (b *AdminBoard) Prev(bucket engine.Bucket) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if p, ok := b.pagers[bucket]; ok {
		p.Prev()
	}
}

// View renders the counters and the current page of every bucket.
func (b *AdminBoard) View() AdminView {
	b.mu.Lock()
	defer b.mu.Unlock()

	buckets, stats := b.buckets()
	view := AdminView{
		Stats:   stats,
		Buckets: make(map[engine.Bucket]PageView[engine.Event], len(engine.AllBuckets)),
	}
	for _, bucket := range engine.AllBuckets {
		view.Buckets[bucket] = pageView(b.pagers[bucket], buckets.Get(bucket))
	}
	return view
}

func (b *AdminBoard) buckets() (engine.Buckets, engine.Stats) {
	return AdminBuckets(b.events, b.clock.Now(), b.adminID, b.query)
}

// Submit sends the create-event form. An "Emergency Message" is broadcast
// through the urgent SMS/call endpoint with the description as its text
// instead of being stored as an event. Only one submission runs at a time.
func (b *AdminBoard) Submit(ctx context.Context, e api.NewEvent) error {
	if err := ValidateEvent(e); err != nil {
		return err
	}
	if !b.submitting.CompareAndSwap(false, true) {
		return ErrSubmitPending
	}
	defer b.submitting.Store(false)

	log := slog.With(config.LogKeyComponent, config.CompBoard, config.LogKeyUser, b.session.UserID)

	if e.Type == config.EventTypeEmergency {
		if err := b.client.SendUrgent(ctx, b.session, strings.TrimSpace(e.Description)); err != nil {
			log.Error(config.ErrSendUrgent, config.LogKeyError, err)
			return err
		}
		log.Info(config.MsgUrgentSent)
		return nil
	}

	if err := b.client.CreateEvent(ctx, b.session, e); err != nil {
		log.Error(config.ErrCreateEvent, config.LogKeyError, err)
		return err
	}
	log.Info(config.MsgEventCreated)
	return nil
}

// ValidateEvent checks the fields the chosen event type needs.
func ValidateEvent(e api.NewEvent) error {
	if e.Type == config.EventTypeEmergency {
		if strings.TrimSpace(e.Description) == "" {
			return ErrMessageRequired
		}
		return nil
	}
	if strings.TrimSpace(e.Title) == "" {
		return ErrTitleRequired
	}
	return nil
}
