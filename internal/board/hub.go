package board

import (
	"context"
	"log/slog"
	"time"

	"github.com/tartampluch/go-eventboard/internal/api"
	"github.com/tartampluch/go-eventboard/internal/config"
	"github.com/tartampluch/go-eventboard/internal/engine"
	"github.com/tartampluch/go-eventboard/internal/refresh"
)

// Settings selects who the hub fetches for and how often.
type Settings struct {
	Session  api.Session
	AdminID  string
	Interval time.Duration
	PageSize int
}

// Hub owns the refresh loops and fans each new snapshot out to the boards.
type Hub struct {
	Settings Settings
	Clock    engine.Clock

	Data     *refresh.Loop[Data]
	Feedback *refresh.Loop[[]engine.Feedback]

	Events       *EventBoard
	Admin        *AdminBoard
	FeedbackList *FeedbackBoard
	Schedule     *ScheduleBoard

	// OnData runs after the boards received a new events/reminders snapshot.
	OnData func(Data)
	// OnFeedback runs after the feedback board received a new snapshot.
	OnFeedback func([]engine.Feedback)
	// OnError runs when a refresh of either loop fails.
	OnError func(error)
}

// NewHub builds the boards and their loops. Nothing runs until Start.
func NewHub(client api.EventsAPI, st Settings, clock engine.Clock) *Hub {
	if st.PageSize <= 0 {
		st.PageSize = config.DefaultPageSize
	}
	if st.AdminID == "" {
		st.AdminID = config.DefaultAdminID
	}

	h := &Hub{
		Settings:     st,
		Clock:        clock,
		Events:       NewEventBoard(clock, st.PageSize),
		Admin:        NewAdminBoard(client, st.Session, clock, st.AdminID, st.PageSize),
		FeedbackList: NewFeedbackBoard(st.PageSize),
		Schedule:     NewScheduleBoard(client, st.Session, clock),
	}

	h.Data = refresh.NewLoop(config.LoopSchedule, st.Interval, FetchData(client, st.Session))
	h.Data.OnUpdate = h.applyData
	h.Data.OnError = h.fail

	// Feedback has no timer: it is fetched at start, when its view opens and on manual refresh.
	h.Feedback = refresh.NewLoop(config.LoopFeedback, config.DisabledInterval, FetchFeedback(client, st.Session))
	h.Feedback.OnUpdate = h.applyFeedback
	h.Feedback.OnError = h.fail

	h.Schedule.OnSubmitted = func(ctx context.Context) {
		_ = h.Data.Refresh(ctx)
	}
	return h
}

func (h *Hub) applyData(d Data) {
	h.Events.SetEvents(d.Events)
	h.Admin.SetEvents(d.Events)
	h.Schedule.SetData(d)

	slog.Info(config.MsgSnapshot,
		config.LogKeyComponent, config.CompBoard,
		config.LogKeyEvents, len(d.Events),
		config.LogKeyReminders, len(d.Reminders),
	)
	if h.OnData != nil {
		h.OnData(d)
	}
}

func (h *Hub) applyFeedback(f []engine.Feedback) {
	h.FeedbackList.SetFeedback(f)
	if h.OnFeedback != nil {
		h.OnFeedback(f)
	}
}

func (h *Hub) fail(err error) {
	if h.OnError != nil {
		h.OnError(err)
	}
}

// Start runs both loops until ctx is cancelled or the returned stop is called.
// stop waits for the loops to exit.
func (h *Hub) Start(ctx context.Context) (stop func()) {
	data := h.Data.Start(ctx)
	feedback := h.Feedback.Start(ctx)
	return func() {
		data.Stop()
		feedback.Stop()
	}
}

// RefreshAll fetches both snapshots now and returns the first error.
func (h *Hub) RefreshAll(ctx context.Context) error {
	errData := h.Data.Refresh(ctx)
	errFeedback := h.Feedback.Refresh(ctx)
	if errData != nil {
		return errData
	}
	return errFeedback
}

// TodayCount is the number of ongoing events in the current snapshot, or -1 before the first fetch.
func (h *Hub) TodayCount() int {
	snap := h.Data.Snapshot()
	if snap == nil {
		return -1
	}
	b := engine.Categorize(snap.Data.Events, h.Clock.Now(), h.Settings.AdminID)
	return len(b.Ongoing)
}
