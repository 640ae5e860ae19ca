package engine

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-eventboard/internal/config"
)

// CalendarBuilder renders a schedule as an iCalendar feed.
type CalendarBuilder struct {
	Clock Clock

	// AlarmText allows the UI to inject a localized reminder text.
	AlarmText func(title string) string
}

// Build encodes the schedule entries. Entries flagged Reminded get a DISPLAY
// alarm one hour before the start. An empty schedule still yields a valid VCALENDAR.
func (b *CalendarBuilder) Build(entries []ScheduleEntry) ([]byte, error) {
	if len(entries) == 0 {
		var buf bytes.Buffer
		buf.WriteString(config.StubVCalendar)
		return buf.Bytes(), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986 refresh hint
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(b.now().UTC())

	reminded := 0
	for _, entry := range entries {
		event := b.buildEvent(entry)
		event.Props.Set(dtStampProp)
		if entry.Reminded {
			reminded++
		}
		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyEntries, len(entries)),
			slog.Int(config.LogKeyReminders, reminded),
		),
	)
	return buf.Bytes(), nil
}

func (b *CalendarBuilder) buildEvent(entry ScheduleEntry) *ical.Event {
	e := entry.Event

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, e.ID, config.ICalDomain))

	title := e.Title
	if title == "" {
		title = config.FallbackTitle
	}
	event.Props.SetText(config.PropSummary, title)
	if e.Description != "" {
		event.Props.SetText(config.PropDescription, e.Description)
	}

	start := ical.NewProp(config.PropDTStart)
	start.SetDateTime(entry.Start.UTC())
	event.Props.Set(start)

	end := ical.NewProp(config.PropDTEnd)
	end.SetDateTime(entry.End.UTC())
	event.Props.Set(end)

	if len(e.Tags) > 0 {
		categories := ical.NewProp(config.PropCategories)
		categories.Value = joinTextList(e.Tags)
		event.Props.Set(categories)
	}

	if e.Image != "" {
		image := ical.NewProp(config.PropImage)
		image.Params.Set(config.ParamValue, config.ICalValueURI)
		image.Value = e.Image
		event.Props.Set(image)
	}

	if entry.Reminded {
		addAlarm(event, b.alarmText(title))
	}
	return event
}

func (b *CalendarBuilder) now() time.Time {
	if b.Clock == nil {
		return time.Now()
	}
	return b.Clock.Now()
}

func (b *CalendarBuilder) alarmText(title string) string {
	if b.AlarmText != nil {
		if s := b.AlarmText(title); s != "" {
			return s
		}
	}
	return fmt.Sprintf(config.FallbackAlarmText, title)
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = config.ICalTrigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

var textEscaper = strings.NewReplacer(`\`, `\\`, `;`, `\;`, `,`, `\,`, "\n", `\n`)

// joinTextList builds a TEXT list value (RFC 5545 3.3.11).
func joinTextList(values []string) string {
	escaped := make([]string, 0, len(values))
	for _, v := range values {
		escaped = append(escaped, textEscaper.Replace(v))
	}
	return strings.Join(escaped, ",")
}
