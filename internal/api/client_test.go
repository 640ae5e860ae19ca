package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-eventboard/internal/api"
	"github.com/tartampluch/go-eventboard/internal/config"
)

var session = api.Session{Token: "secret-token", UserID: "U1"}

func newClient(t *testing.T, ts *httptest.Server) *api.Client {
	t.Helper()
	c, err := api.NewClient(ts.URL)
	require.NoError(t, err)
	c.Location = time.UTC
	return c
}

// TestClient_GetAllEvents verifies headers, path and record mapping.
func TestClient_GetAllEvents(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, config.PathGetAllEvents, r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get(config.HeaderAuthorization))
		assert.Equal(t, config.UserAgent, r.Header.Get(config.HeaderUserAgent))
		_, err := uuid.Parse(r.Header.Get(config.HeaderRequestID))
		assert.NoError(t, err, "request id must be a uuid")

		_, _ = w.Write([]byte(`[
			{"eventId":"E1","eventTitle":"Yoga","eventDescription":"Mats provided","eventDate":"2024-03-05T09:30","eventImg":"https://img/1.png","eventType":"Event","userId":"U9","tags":["sport"]},
			{"eventId":"E2","eventTitle":"Broken","eventDate":"next tuesday","userId":"U9"},
			{"eventId":"E3","eventTitle":"Zoned","eventDate":"2024-03-06T10:00:00Z","userId":"U1"}
		]`))
	}))
	defer ts.Close()

	events, err := newClient(t, ts).GetAllEvents(context.Background(), session)
	require.NoError(t, err)
	require.Len(t, events, 2, "records with unreadable dates are skipped")

	e := events[0]
	assert.Equal(t, "E1", e.ID)
	assert.Equal(t, "Yoga", e.Title)
	assert.Equal(t, "Mats provided", e.Description)
	assert.Equal(t, time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC), e.Date)
	assert.Equal(t, "https://img/1.png", e.Image)
	assert.Equal(t, "U9", e.Owner)
	assert.Equal(t, "Event", e.Type)
	assert.Equal(t, []string{"sport"}, e.Tags)

	assert.Equal(t, "E3", events[1].ID)
}

func TestClient_NoTokenStillSends(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Empty(t, r.Header.Get(config.HeaderAuthorization))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	events, err := newClient(t, ts).GetAllEvents(context.Background(), api.Session{})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Empty(t, events)
}

func TestClient_CreateEvent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, config.PathAddEvent, r.URL.Path)
		assert.Equal(t, config.MimeJSON, r.Header.Get(config.HeaderContentType))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{
			"eventTitle":       "Street fair",
			"eventDescription": "Food and music",
			"eventDate":        "2024-07-14T18:00",
			"eventImg":         "https://img/fair.png",
			"eventType":        config.EventTypeEvent,
			"userId":           "U1",
		}, body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"created"}`))
	}))
	defer ts.Close()

	err := newClient(t, ts).CreateEvent(context.Background(), session, api.NewEvent{
		Title:       "Street fair",
		Description: "Food and music",
		Date:        time.Date(2024, 7, 14, 18, 0, 0, 0, time.UTC),
		Image:       "https://img/fair.png",
		Type:        config.EventTypeEvent,
	})
	assert.NoError(t, err)
}

func TestClient_GetReminders(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, config.PathRemindersByUser+"U1", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"reminderId":"R1","userId":"U1","event":{"eventId":"E1"},"needSms":true,"needCall":false,"needEmail":true},
			{"_id":"R2","userId":"U1","eventId":"E2","needCall":true}
		]`))
	}))
	defer ts.Close()

	reminders, err := newClient(t, ts).GetReminders(context.Background(), session)
	require.NoError(t, err)
	require.Len(t, reminders, 2)

	assert.Equal(t, "R1", reminders[0].ID)
	assert.Equal(t, "E1", reminders[0].EventID, "event id comes from the embedded event")
	assert.True(t, reminders[0].NeedSMS)
	assert.False(t, reminders[0].NeedCall)
	assert.True(t, reminders[0].NeedEmail)

	assert.Equal(t, "R2", reminders[1].ID)
	assert.Equal(t, "E2", reminders[1].EventID)
	assert.True(t, reminders[1].NeedCall)
}

func TestClient_CreateReminder(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, config.PathCreateReminder, r.URL.Path)

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{
			"userId":    "U1",
			"eventId":   "E7",
			"needSms":   true,
			"needCall":  false,
			"needEmail": true,
		}, body)
	}))
	defer ts.Close()

	err := newClient(t, ts).CreateReminder(context.Background(), session, api.NewReminder{
		EventID: "E7", NeedSMS: true, NeedEmail: true,
	})
	assert.NoError(t, err)
}

func TestClient_SendUrgent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, config.PathSendUrgent, r.URL.Path)
		assert.Equal(t, "Water cut at 5pm & 6pm", r.URL.Query().Get(config.QueryMessage))
	}))
	defer ts.Close()

	assert.NoError(t, newClient(t, ts).SendUrgent(context.Background(), session, "Water cut at 5pm & 6pm"))
}

func TestClient_GetFeedbacks(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, config.PathGetFeedbacks, r.URL.Path)
		_, _ = w.Write([]byte(`[{"_id":"F1","userName":"Ana","feedbackMessage":"  Loved it!\n","eventTitle":"Yoga"}]`))
	}))
	defer ts.Close()

	feedback, err := newClient(t, ts).GetFeedbacks(context.Background(), session)
	require.NoError(t, err)
	require.Len(t, feedback, 1)
	assert.Equal(t, "F1", feedback[0].ID)
	assert.Equal(t, "Ana", feedback[0].UserName)
	assert.Equal(t, "Loved it!", feedback[0].Message)
	assert.Equal(t, "Yoga", feedback[0].EventTitle)
}

// TestClient_StatusErrors verifies proper error handling for non-2xx statuses.
func TestClient_StatusErrors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    string
	}{
		{"NotFound", http.StatusNotFound, "404"},
		{"ServerError", http.StatusInternalServerError, "500"},
		{"Unauthorized", http.StatusUnauthorized, "401"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer ts.Close()

			events, err := newClient(t, ts).GetAllEvents(context.Background(), session)

			require.Error(t, err)
			assert.Nil(t, events)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Contains(t, err.Error(), config.ErrFetchEvents)

			var statusErr *api.StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.statusCode, statusErr.StatusCode)
		})
	}
}

func TestClient_DecodeError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"`))
	}))
	defer ts.Close()

	_, err := newClient(t, ts).GetFeedbacks(context.Background(), session)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrDecodeResponse)
}

// TestClient_Timeout ensures the client respects context deadlines.
func TestClient_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := newClient(t, ts).GetAllEvents(ctx, session)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewClient_Validation(t *testing.T) {
	_, err := api.NewClient(string([]byte{0x7f}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrInvalidURL)

	_, err = api.NewClient("ftp://example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrProtocol)

	c, err := api.NewClient("https://events.example.org/v1/")
	require.NoError(t, err)
	assert.Equal(t, "/v1", c.BaseURL.Path)
}

func TestParseEventDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-10", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
		{"2024-01-10T14:30", time.Date(2024, 1, 10, 14, 30, 0, 0, time.UTC)},
		{"2024-01-10T14:30:15", time.Date(2024, 1, 10, 14, 30, 15, 0, time.UTC)},
		{"2024-01-10T14:30:15.250", time.Date(2024, 1, 10, 14, 30, 15, 250_000_000, time.UTC)},
		{"2024-01-10T14:30:00+02:00", time.Date(2024, 1, 10, 12, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := api.ParseEventDate(tt.in, time.UTC)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}

	_, err := api.ParseEventDate("soon", time.UTC)
	assert.ErrorContains(t, err, config.ErrDateParse)
}
