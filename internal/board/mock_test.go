package board_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/tartampluch/go-eventboard/internal/api"
	"github.com/tartampluch/go-eventboard/internal/config"
	"github.com/tartampluch/go-eventboard/internal/engine"
)

// MockAPI simulates api.EventsAPI using testify/mock.
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) GetAllEvents(ctx context.Context, s api.Session) ([]engine.Event, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]engine.Event), args.Error(1)
}

func (m *MockAPI) CreateEvent(ctx context.Context, s api.Session, e api.NewEvent) error {
	return m.Called(ctx, s, e).Error(0)
}

func (m *MockAPI) GetReminders(ctx context.Context, s api.Session) ([]engine.Reminder, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]engine.Reminder), args.Error(1)
}

func (m *MockAPI) CreateReminder(ctx context.Context, s api.Session, r api.NewReminder) error {
	return m.Called(ctx, s, r).Error(0)
}

func (m *MockAPI) SendUrgent(ctx context.Context, s api.Session, message string) error {
	return m.Called(ctx, s, message).Error(0)
}

func (m *MockAPI) GetFeedbacks(ctx context.Context, s api.Session) ([]engine.Feedback, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]engine.Feedback), args.Error(1)
}

var (
	now     = time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)
	clock   = engine.FixedClock(now)
	session = api.Session{Token: "tok", UserID: "U1"}
	adminID = config.DefaultAdminID
)

func ids(events []engine.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

// inDays returns an event starting n days (and h hours) after now.
func inDays(id string, n int, h int, owner string) engine.Event {
	return engine.Event{
		ID:    id,
		Title: "Event " + id,
		Date:  now.AddDate(0, 0, n).Add(time.Duration(h) * time.Hour),
		Owner: owner,
	}
}
