package board_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-eventboard/internal/api"
	"github.com/tartampluch/go-eventboard/internal/board"
	"github.com/tartampluch/go-eventboard/internal/engine"
)

func TestFetchData_JoinsBothSources(t *testing.T) {
	client := new(MockAPI)
	client.On("GetAllEvents", mock.Anything, session).Return([]engine.Event{{ID: "E1"}}, nil)
	client.On("GetReminders", mock.Anything, session).Return([]engine.Reminder{{EventID: "E1"}}, nil)

	d, err := board.FetchData(client, session)(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"E1"}, ids(d.Events))
	assert.Len(t, d.Reminders, 1)
	client.AssertExpectations(t)
}

func TestFetchData_EitherFailureFailsAll(t *testing.T) {
	tests := []struct {
		name         string
		eventsErr    error
		remindersErr error
	}{
		{"Events fail", errors.New("events down"), nil},
		{"Reminders fail", nil, errors.New("reminders down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockAPI)
			if tt.eventsErr != nil {
				client.On("GetAllEvents", mock.Anything, session).Return(nil, tt.eventsErr)
			} else {
				client.On("GetAllEvents", mock.Anything, session).Return([]engine.Event{{ID: "E1"}}, nil)
			}
			if tt.remindersErr != nil {
				client.On("GetReminders", mock.Anything, session).Return(nil, tt.remindersErr)
			} else {
				client.On("GetReminders", mock.Anything, session).Return([]engine.Reminder{{EventID: "E1"}}, nil)
			}

			d, err := board.FetchData(client, session)(context.Background())
			require.Error(t, err)
			assert.Empty(t, d.Events, "no partial data on failure")
			assert.Empty(t, d.Reminders)
		})
	}
}

func TestFetchData_NoUserSkipsReminders(t *testing.T) {
	anon := api.Session{Token: "tok"}
	client := new(MockAPI)
	client.On("GetAllEvents", mock.Anything, anon).Return([]engine.Event{{ID: "E1"}}, nil)

	d, err := board.FetchData(client, anon)(context.Background())
	require.NoError(t, err)
	assert.Len(t, d.Events, 1)
	assert.Empty(t, d.Reminders)
	client.AssertNotCalled(t, "GetReminders", mock.Anything, mock.Anything)
}

func TestFetchFeedback(t *testing.T) {
	client := new(MockAPI)
	client.On("GetFeedbacks", mock.Anything, session).Return([]engine.Feedback{{ID: "F1"}}, nil)

	f, err := board.FetchFeedback(client, session)(context.Background())
	require.NoError(t, err)
	assert.Len(t, f, 1)
}

func TestPageItems(t *testing.T) {
	items := []int{0, 1, 2, 3, 4, 5, 6}

	v := board.PageItems(items, 2, 3)
	assert.Equal(t, []int{6}, v.Items)
	assert.Equal(t, 2, v.Max)
	assert.Equal(t, 7, v.Total)
	assert.True(t, v.HasPrev)
	assert.False(t, v.HasNext)

	v = board.PageItems(items, 5, 3)
	assert.Empty(t, v.Items, "out of range is empty, not clamped")

	v = board.PageItems(items, math.MaxInt/3+1, 3)
	assert.NotNil(t, v.Items)
	assert.Empty(t, v.Items)
	assert.False(t, v.HasNext)
}
