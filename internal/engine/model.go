package engine

import "time"

// Event is a community event as published by the upstream API.
// The core treats events as read-only values.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Image       string    `json:"image,omitempty"`
	Owner       string    `json:"owner"`
	Type        string    `json:"type,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
}

// Reminder records that a user wants to be notified about an event,
// and through which channels.
type Reminder struct {
	ID        string `json:"id,omitempty"`
	UserID    string `json:"user_id"`
	EventID   string `json:"event_id"`
	NeedSMS   bool   `json:"need_sms"`
	NeedCall  bool   `json:"need_call"`
	NeedEmail bool   `json:"need_email"`
}

// Feedback is a resident's comment on an event.
type Feedback struct {
	ID         string `json:"id"`
	UserName   string `json:"user_name"`
	Message    string `json:"message"`
	EventTitle string `json:"event_title"`
}

// AnnotatedEvent is an Event plus whether the current user already has a reminder on it.
type AnnotatedEvent struct {
	Event
	HasReminder bool `json:"has_reminder"`
}

// ScheduleEntry is one block on the personal schedule.
type ScheduleEntry struct {
	Event    Event     `json:"event"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Reminded bool      `json:"reminded"`
}
