package board_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-eventboard/internal/api"
	"github.com/tartampluch/go-eventboard/internal/board"
	"github.com/tartampluch/go-eventboard/internal/engine"
)

func newHub(client *MockAPI) *board.Hub {
	return board.NewHub(client, board.Settings{Session: session}, clock)
}

func TestHub_RefreshAllFansOut(t *testing.T) {
	client := new(MockAPI)
	client.On("GetAllEvents", mock.Anything, session).Return([]engine.Event{
		inDays("today", 0, 1, "U2"),
		inDays("later", 3, 0, "U2"),
	}, nil)
	client.On("GetReminders", mock.Anything, session).Return([]engine.Reminder{}, nil)
	client.On("GetFeedbacks", mock.Anything, session).Return([]engine.Feedback{{ID: "F1"}}, nil)

	h := newHub(client)
	var gotData board.Data
	h.OnData = func(d board.Data) { gotData = d }

	assert.Equal(t, -1, h.TodayCount(), "unknown before the first refresh")
	require.NoError(t, h.RefreshAll(context.Background()))

	assert.Len(t, gotData.Events, 2)
	assert.Equal(t, 1, h.TodayCount())
	assert.Equal(t, 2, h.Events.View().Total)
	assert.Equal(t, 2, h.Admin.View().Stats.ActiveEvents)
	assert.Len(t, h.Schedule.View().Entries, 2)
	assert.Equal(t, 1, h.FeedbackList.View().Total)
}

func TestHub_FailureKeepsBoards(t *testing.T) {
	client := new(MockAPI)
	client.On("GetAllEvents", mock.Anything, session).Return([]engine.Event{inDays("a", 1, 0, "U2")}, nil).Once()
	client.On("GetReminders", mock.Anything, session).Return([]engine.Reminder{}, nil).Once()
	client.On("GetAllEvents", mock.Anything, session).Return(nil, errors.New("down"))
	client.On("GetReminders", mock.Anything, session).Return([]engine.Reminder{}, nil)

	h := newHub(client)
	var failures int
	h.OnError = func(error) { failures++ }

	require.NoError(t, h.Data.Refresh(context.Background()))
	require.Error(t, h.Data.Refresh(context.Background()))

	assert.Equal(t, 1, failures)
	assert.Equal(t, 1, h.Events.View().Total, "stale data stays on screen")
	assert.Equal(t, 0, h.TodayCount())
}

func TestHub_ReminderSubmitTriggersRefresh(t *testing.T) {
	client := new(MockAPI)
	client.On("CreateReminder", mock.Anything, session, mock.Anything).Return(nil).Once()
	client.On("GetAllEvents", mock.Anything, session).Return([]engine.Event{}, nil).Once()
	client.On("GetReminders", mock.Anything, session).Return([]engine.Reminder{{EventID: "E1"}}, nil).Once()

	h := newHub(client)
	require.NoError(t, h.Schedule.Submit(context.Background(), api.NewReminder{EventID: "E1"}))

	require.NotNil(t, h.Data.Snapshot())
	assert.Len(t, h.Data.Snapshot().Data.Reminders, 1)
	client.AssertExpectations(t)
}
