package board

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-eventboard/internal/api"
	"github.com/tartampluch/go-eventboard/internal/config"
	"github.com/tartampluch/go-eventboard/internal/engine"
)

// ScheduleView is the rendered personal schedule.
type ScheduleView struct {
	Entries   []engine.ScheduleEntry `json:"entries"`
	Available []engine.Event         `json:"available"`
}

// BuildSchedule computes the schedule and the reminder candidates for userID.
func BuildSchedule(d Data, userID string, now time.Time) ScheduleView {
	return ScheduleView{
		Entries:   engine.ScheduleEntries(d.Events, d.Reminders, userID, now),
		Available: engine.ReminderCandidates(d.Events, d.Reminders, userID, now),
	}
}

// ScheduleBoard is the personal schedule and its reminder form.
type ScheduleBoard struct {
	client  api.EventsAPI
	session api.Session
	clock   engine.Clock

	// OnSubmitted runs after a reminder was created, typically to trigger a refresh.
	OnSubmitted func(ctx context.Context)

	mu   sync.Mutex
	data Data

	submitting atomic.Bool
}

// NewScheduleBoard returns a board for the session user. It is empty until SetData.
func NewScheduleBoard(client api.EventsAPI, s api.Session, clock engine.Clock) *ScheduleBoard {
	return &ScheduleBoard{client: client, session: s, clock: clock}
}

// SetData replaces the board's events and reminders with a new snapshot.
func (b *ScheduleBoard) SetData(d Data) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = d
}

// View renders the schedule and the reminder candidates at the clock's current time.
func (b *ScheduleBoard) View() ScheduleView {
	b.mu.Lock()
	defer b.mu.Unlock()
	return BuildSchedule(b.data, b.session.UserID, b.clock.Now())
}

// Submit creates a reminder for the session user. Only one submission runs at a time
// and nothing is retried.
func (b *ScheduleBoard) Submit(ctx context.Context, r api.NewReminder) error {
	if r.EventID == "" {
		return ErrEventRequired
	}
	if b.session.UserID == "" {
		return ErrUserRequired
	}
	if !b.submitting.CompareAndSwap(false, true) {
		return ErrSubmitPending
	}
	defer b.submitting.Store(false)

	log := slog.With(
		config.LogKeyComponent, config.CompBoard,
		config.LogKeyUser, b.session.UserID,
		config.LogKeyEventID, r.EventID,
	)

	if err := b.client.CreateReminder(ctx, b.session, r); err != nil {
		log.Error(config.ErrCreateReminder, config.LogKeyError, err)
		return err
	}
	log.Info(config.MsgReminderSaved)

	if b.OnSubmitted != nil {
		b.OnSubmitted(ctx)
	}
	return nil
}
