package engine

import (
	"time"

	"github.com/tartampluch/go-eventboard/internal/config"
)

// Annotate marks the events that have at least one reminder.
func Annotate(events []Event, reminders []Reminder) []AnnotatedEvent {
	reminded := make(map[string]bool, len(reminders))
	for _, r := range reminders {
		reminded[r.EventID] = true
	}

	out := make([]AnnotatedEvent, 0, len(events))
	for _, e := range events {
		out = append(out, AnnotatedEvent{Event: e, HasReminder: reminded[e.ID]})
	}
	return out
}

// AvailableForReminder lists the events userID may still set a reminder on:
// not authored by userID and without an existing reminder of userID.
// Reminders with no user are taken to belong to userID, since they come
// from a per-user endpoint.
func AvailableForReminder(events []Event, reminders []Reminder, userID string) []Event {
	taken := remindedBy(reminders, userID)
	return filter(events, func(e Event) bool {
		return e.Owner != userID && !taken[e.ID]
	})
}

// ScheduleEntries builds the personal schedule: upcoming events only,
// one hour each, flagged when userID has a reminder on someone else's event.
func ScheduleEntries(events []Event, reminders []Reminder, userID string, now time.Time) []ScheduleEntry {
	taken := remindedBy(reminders, userID)

	upcoming := SortByDate(OnOrAfter(events, now), Ascending)
	out := make([]ScheduleEntry, 0, len(upcoming))
	for _, e := range upcoming {
		out = append(out, ScheduleEntry{
			Event:    e,
			Start:    e.Date,
			End:      e.Date.Add(config.ScheduleEntryDuration),
			Reminded: taken[e.ID] && e.Owner != userID,
		})
	}
	return out
}

// ReminderCandidates is AvailableForReminder restricted to events that have not started.
func ReminderCandidates(events []Event, reminders []Reminder, userID string, now time.Time) []Event {
	return SortByDate(AvailableForReminder(OnOrAfter(events, now), reminders, userID), Ascending)
}

func remindedBy(reminders []Reminder, userID string) map[string]bool {
	taken := make(map[string]bool, len(reminders))
	for _, r := range reminders {
		if r.UserID == "" || r.UserID == userID {
			taken[r.EventID] = true
		}
	}
	return taken
}
