package api

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/tartampluch/go-eventboard/internal/config"
	"github.com/tartampluch/go-eventboard/internal/engine"
)

// eventRecord is the upstream JSON shape of an event.
type eventRecord struct {
	EventID          string   `json:"eventId"`
	EventTitle       string   `json:"eventTitle"`
	EventDescription string   `json:"eventDescription"`
	EventDate        string   `json:"eventDate"`
	EventImg         string   `json:"eventImg"`
	EventType        string   `json:"eventType"`
	UserID           string   `json:"userId"`
	Tags             []string `json:"tags"`
}

// reminderRecord embeds a minimal copy of the referenced event.
type reminderRecord struct {
	ReminderID string `json:"reminderId"`
	MongoID    string `json:"_id"`
	UserID     string `json:"userId"`
	EventID    string `json:"eventId"`
	Event      *struct {
		EventID string `json:"eventId"`
	} `json:"event"`
	NeedSms   bool `json:"needSms"`
	NeedCall  bool `json:"needCall"`
	NeedEmail bool `json:"needEmail"`
}

type feedbackRecord struct {
	ID              string `json:"_id"`
	UserName        string `json:"userName"`
	FeedbackMessage string `json:"feedbackMessage"`
	EventTitle      string `json:"eventTitle"`
}

type createEventRequest struct {
	EventTitle       string `json:"eventTitle"`
	EventDescription string `json:"eventDescription"`
	EventDate        string `json:"eventDate"`
	EventImg         string `json:"eventImg"`
	EventType        string `json:"eventType"`
	UserID           string `json:"userId"`
}

type createReminderRequest struct {
	UserID    string `json:"userId"`
	EventID   string `json:"eventId"`
	NeedSms   bool   `json:"needSms"`
	NeedCall  bool   `json:"needCall"`
	NeedEmail bool   `json:"needEmail"`
}

// ParseEventDate reads the date layouts the upstream API is known to emit.
// Values without a zone are taken in loc.
func ParseEventDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	value = strings.TrimSpace(value)
	for _, layout := range config.UpstreamDateFormats {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New(config.ErrDateParse)
}

// FormatEventDate renders a date the way the create form submits it.
func FormatEventDate(t time.Time) string {
	return t.Format(config.UpstreamDateFormatOut)
}

func toEvents(records []eventRecord, loc *time.Location) []engine.Event {
	events := make([]engine.Event, 0, len(records))
	for _, r := range records {
		date, err := ParseEventDate(r.EventDate, loc)
		if err != nil {
			// Log and keep going so one bad record does not hide the rest.
			slog.Warn(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompAPI,
				config.LogKeyEventID, r.EventID,
				config.LogKeyValue, r.EventDate)
			continue
		}
		events = append(events, engine.Event{
			ID:          r.EventID,
			Title:       r.EventTitle,
			Description: r.EventDescription,
			Date:        date,
			Image:       r.EventImg,
			Owner:       r.UserID,
			Type:        r.EventType,
			Tags:        r.Tags,
		})
	}
	return events
}

func toReminders(records []reminderRecord) []engine.Reminder {
	reminders := make([]engine.Reminder, 0, len(records))
	for _, r := range records {
		id := r.ReminderID
		if id == "" {
			id = r.MongoID
		}
		eventID := r.EventID
		if r.Event != nil && r.Event.EventID != "" {
			eventID = r.Event.EventID
		}
		reminders = append(reminders, engine.Reminder{
			ID:        id,
			UserID:    r.UserID,
			EventID:   eventID,
			NeedSMS:   r.NeedSms,
			NeedCall:  r.NeedCall,
			NeedEmail: r.NeedEmail,
		})
	}
	return reminders
}

func toFeedback(records []feedbackRecord) []engine.Feedback {
	out := make([]engine.Feedback, 0, len(records))
	for _, r := range records {
		out = append(out, engine.Feedback{
			ID:         r.ID,
			UserName:   r.UserName,
			Message:    strings.TrimSpace(r.FeedbackMessage),
			EventTitle: r.EventTitle,
		})
	}
	return out
}
