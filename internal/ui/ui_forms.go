package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-eventboard/internal/api"
	"github.com/tartampluch/go-eventboard/internal/config"
	"github.com/tartampluch/go-eventboard/internal/engine"
)

// showEventForm opens the admin create-event dialog. The dialog closes on submit;
// the request runs in the background and its outcome is reported as a notification.
func (app *EventboardApp) showEventForm(parent fyne.Window) {
	title := widget.NewEntry()
	desc := widget.NewMultiLineEntry()
	date := widget.NewEntry()
	date.SetPlaceHolder(config.PlaceholderDate)
	image := widget.NewEntry()
	image.SetPlaceHolder(config.PlaceholderURL)

	kind := widget.NewSelect([]string{config.EventTypeEvent, config.EventTypeEmergency}, nil)
	kind.SetSelected(config.EventTypeEvent)

	itemDate := widget.NewFormItem(app.GetMsg(config.TKeyLblDate), date)
	itemDate.HintText = app.GetMsg(config.TKeyHelpDate)

	items := []*widget.FormItem{
		widget.NewFormItem(app.GetMsg(config.TKeyLblType), kind),
		widget.NewFormItem(app.GetMsg(config.TKeyLblTitle), title),
		widget.NewFormItem(app.GetMsg(config.TKeyLblDescription), desc),
		itemDate,
		widget.NewFormItem(app.GetMsg(config.TKeyLblImage), image),
	}

	dialog.ShowForm(app.GetMsg(config.TKeyBtnCreate), app.GetMsg(config.TKeyBtnSubmit), app.GetMsg(config.TKeyBtnCancel), items,
		func(ok bool) {
			if !ok {
				return
			}
			ev, err := app.parseEventForm(kind.Selected, title.Text, desc.Text, date.Text, image.Text)
			if err != nil {
				dialog.ShowError(err, parent)
				return
			}
			go func() { _ = app.submitEvent(ev) }()
		}, parent)
}

// parseEventForm turns the create-event fields into a request.
// An emergency message only needs its description.
func (app *EventboardApp) parseEventForm(kind, title, desc, date, image string) (api.NewEvent, error) {
	ev := api.NewEvent{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(desc),
		Image:       strings.TrimSpace(image),
		Type:        kind,
	}
	if ev.Type == "" {
		ev.Type = config.EventTypeEvent
	}
	if ev.Type == config.EventTypeEmergency {
		return ev, nil
	}

	if ev.Title == "" {
		return api.NewEvent{}, errors.New(app.GetMsg(config.TKeyErrTitleReq))
	}
	when, err := time.ParseInLocation(config.DateTimeFormatDisplay, strings.TrimSpace(date), app.Clock.Now().Location())
	if err != nil {
		return api.NewEvent{}, errors.New(app.GetMsg(config.TKeyErrDateFmt))
	}
	ev.Date = when
	return ev, nil
}

// submitEvent sends the form through the admin board and notifies the outcome.
func (app *EventboardApp) submitEvent(ev api.NewEvent) error {
	hub := app.Hub()
	if hub == nil {
		app.notify(config.TKeyNotifSubmitErr)
		return errors.New(config.ErrRefreshFailed)
	}
	err := hub.Admin.Submit(app.Ctx, ev)
	app.notifyResult(err)
	return err
}

// showReminderForm opens the reminder dialog over the events the user may still pick.
func (app *EventboardApp) showReminderForm(parent fyne.Window, available []engine.Event) {
	labels := make([]string, 0, len(available))
	ids := make(map[string]string, len(available))
	for _, e := range available {
		label := fmt.Sprintf("%s (%s)", e.Title, app.formatDateTime(e.Date))
		labels = append(labels, label)
		ids[label] = e.ID
	}

	event := widget.NewSelect(labels, nil)
	sms := widget.NewCheck(app.GetMsg(config.TKeyChanSMS), nil)
	call := widget.NewCheck(app.GetMsg(config.TKeyChanCall), nil)
	email := widget.NewCheck(app.GetMsg(config.TKeyChanEmail), nil)

	items := []*widget.FormItem{
		widget.NewFormItem(app.GetMsg(config.TKeyLblEvent), event),
		widget.NewFormItem(app.GetMsg(config.TKeyLblChannels), container.NewHBox(sms, call, email)),
	}

	dialog.ShowForm(app.GetMsg(config.TKeyBtnRemind), app.GetMsg(config.TKeyBtnSubmit), app.GetMsg(config.TKeyBtnCancel), items,
		func(ok bool) {
			if !ok {
				return
			}
			id := ids[event.Selected]
			if id == "" {
				dialog.ShowError(errors.New(app.GetMsg(config.TKeyErrEventReq)), parent)
				return
			}
			r := api.NewReminder{
				EventID:   id,
				NeedSMS:   sms.Checked,
				NeedCall:  call.Checked,
				NeedEmail: email.Checked,
			}
			go func() { _ = app.submitReminder(r) }()
		}, parent)
}

// submitReminder creates the reminder. On success the schedule board refetches.
func (app *EventboardApp) submitReminder(r api.NewReminder) error {
	hub := app.Hub()
	if hub == nil {
		app.notify(config.TKeyNotifSubmitErr)
		return errors.New(config.ErrRefreshFailed)
	}
	err := hub.Schedule.Submit(app.Ctx, r)
	app.notifyResult(err)
	return err
}

func (app *EventboardApp) notifyResult(err error) {
	if err != nil {
		app.App.SendNotification(fyne.NewNotification(config.TitleSyncError,
			app.GetMsg(config.TKeyNotifSubmitErr)+": "+err.Error()))
		return
	}
	app.notify(config.TKeyNotifSubmitOK)
}

func (app *EventboardApp) notify(key string) {
	app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(key)))
}
