package ui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-eventboard/internal/board"
	"github.com/tartampluch/go-eventboard/internal/config"
	"github.com/tartampluch/go-eventboard/internal/engine"
)

// boardWindow is an open board and the function that redraws it from its board.
type boardWindow struct {
	window fyne.Window
	render func()
}

// openBoard shows the window registered under key, creating it with build on first use.
// Only one window per key exists; reopening requests focus instead.
func (app *EventboardApp) openBoard(key string, build func(w fyne.Window, hub *board.Hub) (fyne.CanvasObject, func())) {
	if bw, ok := app.windows[key]; ok {
		bw.window.RequestFocus()
		return
	}

	hub := app.Hub()
	if hub == nil {
		app.notify(config.TKeyNotifError)
		return
	}

	w := app.App.NewWindow(app.GetMsg(key))
	w.Resize(fyne.NewSize(config.BoardWinWidth, config.BoardWinHeight))

	content, render := build(w, hub)
	app.windows[key] = &boardWindow{window: w, render: render}

	slog.Info(config.LogMsgOpenWin,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyWindow, key)

	w.SetContent(content)
	w.SetOnClosed(func() { delete(app.windows, key) })
	render()
	w.Show()
}

// renderWindow redraws the board window registered under key, if it is open.
func (app *EventboardApp) renderWindow(key string) {
	if bw, ok := app.windows[key]; ok {
		bw.render()
	}
}

// closeBoards closes every board window. Open boards belong to the hub they
// were built from, so they are closed when the hub is replaced.
func (app *EventboardApp) closeBoards() {
	for _, bw := range app.windows {
		bw.window.Close()
	}
}

// pagedList is a list widget with previous/next buttons and a page indicator.
type pagedList[T any] struct {
	items []T
	list  *widget.List
	prev  *widget.Button
	next  *widget.Button
	page  *widget.Label
	empty *widget.Label
}

// newPagedList builds the list. describe returns the bold first line and the detail line of an item.
func newPagedList[T any](app *EventboardApp, describe func(T) (string, string), onPrev, onNext func()) *pagedList[T] {
	p := &pagedList[T]{}
	p.list = widget.NewList(
		func() int {
			return len(p.items)
		},
		func() fyne.CanvasObject {
			title := widget.NewLabelWithStyle(config.ListPlaceholder, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
			detail := widget.NewLabel(config.ListPlaceholder)
			detail.Truncation = fyne.TextTruncateEllipsis
			return container.NewVBox(title, detail)
		},
		func(id widget.ListItemID, o fyne.CanvasObject) {
			if id >= len(p.items) {
				return
			}
			title, detail := describe(p.items[id])
			box := o.(*fyne.Container)
			box.Objects[0].(*widget.Label).SetText(title)
			box.Objects[1].(*widget.Label).SetText(detail)
		},
	)

	p.prev = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnPrev), theme.NavigateBackIcon(), onPrev)
	p.next = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnNext), theme.NavigateNextIcon(), onNext)
	p.page = widget.NewLabel("")
	p.empty = widget.NewLabel(app.GetMsg(config.TKeyLblEmpty))
	p.empty.Hide()
	return p
}

func (p *pagedList[T]) set(v board.PageView[T]) {
	p.items = v.Items
	p.page.SetText(fmt.Sprintf(config.FormatPageIndicator, v.Index+1, v.Max+1))

	if v.HasPrev {
		p.prev.Enable()
	} else {
		p.prev.Disable()
	}
	if v.HasNext {
		p.next.Enable()
	} else {
		p.next.Disable()
	}
	if v.Total == 0 {
		p.empty.Show()
	} else {
		p.empty.Hide()
	}
	p.list.Refresh()
}

func (p *pagedList[T]) content() fyne.CanvasObject {
	footer := container.NewBorder(nil, nil, p.prev, p.next, container.NewCenter(p.page))
	return container.NewBorder(p.empty, footer, nil, nil, p.list)
}

// ShowEventsWindow displays the resident events board.
func (app *EventboardApp) ShowEventsWindow() {
	app.openBoard(config.TKeyWinEvents, func(_ fyne.Window, hub *board.Hub) (fyne.CanvasObject, func()) {
		b := hub.Events
		var render func()

		list := newPagedList(app, app.describeEvent,
			func() { b.Prev(); render() },
			func() { b.Next(); render() },
		)

		search := widget.NewEntry()
		search.SetPlaceHolder(app.GetMsg(config.TKeyLblSearch))
		search.OnChanged = func(q string) {
			b.SetQuery(q)
			render()
		}

		month := widget.NewSelect(app.monthOptions(), nil)
		month.SetSelectedIndex(0)
		month.OnChanged = func(string) {
			b.SetMonth(engine.MonthFilter(month.SelectedIndex() - 1))
			render()
		}

		sortBtn := widget.NewButton("", func() {
			b.ToggleSort()
			render()
		})

		render = func() {
			list.set(b.View())
			sortBtn.SetText(app.sortLabel(b.Criteria().Direction))
		}

		controls := container.NewBorder(nil, nil, nil, container.NewHBox(month, sortBtn), search)
		return container.NewBorder(controls, nil, nil, nil, list.content()), render
	})
}

// ShowAdminWindow displays the admin dashboard: counters, one tab per bucket
// and the create-event form.
func (app *EventboardApp) ShowAdminWindow() {
	app.openBoard(config.TKeyWinAdmin, func(w fyne.Window, hub *board.Hub) (fyne.CanvasObject, func()) {
		b := hub.Admin
		var render func()

		stats := widget.NewLabel("")
		search := widget.NewEntry()
		search.SetPlaceHolder(app.GetMsg(config.TKeyLblSearch))
		search.OnChanged = func(q string) {
			b.SetQuery(q)
			render()
		}

		lists := make(map[engine.Bucket]*pagedList[engine.Event], len(engine.AllBuckets))
		tabs := container.NewAppTabs()
		for _, bucket := range engine.AllBuckets {
			bucket := bucket // per-iteration copy for the closures below (pre-Go 1.22 loop semantics)
			lists[bucket] = newPagedList(app, app.describeEvent,
				func() { b.Prev(bucket); render() },
				func() { b.Next(bucket); render() },
			)
			tabs.Append(container.NewTabItem(app.GetMsg(bucketKey(bucket)), lists[bucket].content()))
		}

		create := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCreate), theme.ContentAddIcon(), func() {
			app.showEventForm(w)
		})
		create.Importance = widget.HighImportance

		render = func() {
			v := b.View()
			stats.SetText(app.GetMsgData(config.TKeyLblStats, map[string]interface{}{
				"Total":  v.Stats.TotalEvents,
				"Active": v.Stats.ActiveEvents,
			}))
			for bucket, list := range lists {
				list.set(v.Buckets[bucket])
			}
		}

		header := container.NewVBox(container.NewBorder(nil, nil, nil, create, stats), search)
		return container.NewBorder(header, nil, nil, nil, tabs), render
	})
}

// ShowFeedbackWindow displays the feedback board. Feedback is fetched each time
// the window opens, not on the refresh timer.
func (app *EventboardApp) ShowFeedbackWindow() {
	app.openBoard(config.TKeyWinFeedback, func(_ fyne.Window, hub *board.Hub) (fyne.CanvasObject, func()) {
		b := hub.FeedbackList
		var render func()

		list := newPagedList(app, app.describeFeedback,
			func() { b.Prev(); render() },
			func() { b.Next(); render() },
		)
		render = func() { list.set(b.View()) }

		go func() { _ = hub.Feedback.Refresh(app.Ctx) }()
		return list.content(), render
	})
}

// ShowScheduleWindow displays the user's upcoming schedule and the reminder form.
func (app *EventboardApp) ShowScheduleWindow() {
	app.openBoard(config.TKeyWinSchedule, func(w fyne.Window, hub *board.Hub) (fyne.CanvasObject, func()) {
		b := hub.Schedule
		var view board.ScheduleView

		list := widget.NewList(
			func() int {
				return len(view.Entries)
			},
			func() fyne.CanvasObject {
				title := widget.NewLabelWithStyle(config.ListPlaceholder, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
				return container.NewVBox(title, widget.NewLabel(config.ListPlaceholder))
			},
			func(id widget.ListItemID, o fyne.CanvasObject) {
				if id >= len(view.Entries) {
					return
				}
				title, detail := app.describeEntry(view.Entries[id])
				box := o.(*fyne.Container)
				box.Objects[0].(*widget.Label).SetText(title)
				box.Objects[1].(*widget.Label).SetText(detail)
			},
		)
		empty := widget.NewLabel(app.GetMsg(config.TKeyLblEmpty))

		remind := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnRemind), theme.ContentAddIcon(), func() {
			app.showReminderForm(w, b.View().Available)
		})

		render := func() {
			view = b.View()
			if len(view.Entries) == 0 {
				empty.Show()
			} else {
				empty.Hide()
			}
			if len(view.Available) == 0 {
				remind.Disable()
			} else {
				remind.Enable()
			}
			list.Refresh()
		}

		return container.NewBorder(empty, remind, nil, nil, list), render
	})
}

func (app *EventboardApp) describeEvent(e engine.Event) (string, string) {
	title := e.Title
	if title == "" {
		title = config.FallbackTitle
	}
	detail := app.formatDateTime(e.Date)
	if desc := firstLine(e.Description); desc != "" {
		detail += " · " + desc
	}
	return title, detail
}

func (app *EventboardApp) describeFeedback(f engine.Feedback) (string, string) {
	detail := f.Message
	if f.EventTitle != "" {
		detail = app.GetMsgData(config.TKeyLblFeedbackFor, map[string]interface{}{"Title": f.EventTitle}) + ": " + detail
	}
	return f.UserName, detail
}

func (app *EventboardApp) describeEntry(e engine.ScheduleEntry) (string, string) {
	title, _ := app.describeEvent(e.Event)
	if e.Reminded {
		title += " · " + app.GetMsg(config.TKeyLblReminded)
	}
	return title, app.formatDateTime(e.Start) + " - " + app.formatDateTime(e.End)
}

// formatDateTime renders t in the clock's location with the localized layout.
func (app *EventboardApp) formatDateTime(t time.Time) string {
	layout := app.GetMsg(config.TKeyFormatDateTime)
	if layout == config.TKeyFormatDateTime {
		layout = config.DateTimeFormatDisplay
	}
	return t.In(app.Clock.Now().Location()).Format(layout)
}

// monthOptions lists "all months" followed by January through December,
// so a select index minus one is the MonthFilter.
func (app *EventboardApp) monthOptions() []string {
	opts := []string{app.GetMsg(config.TKeyLblMonthAll)}
	for m := time.January; m <= time.December; m++ {
		opts = append(opts, m.String())
	}
	return opts
}

func (app *EventboardApp) sortLabel(d engine.Direction) string {
	if d == engine.Descending {
		return app.GetMsg(config.TKeyLblSortDesc) + config.SortIconDesc
	}
	return app.GetMsg(config.TKeyLblSortAsc) + config.SortIconAsc
}

func bucketKey(b engine.Bucket) string {
	switch b {
	case engine.BucketOngoing:
		return config.TKeyBucketOngoing
	case engine.BucketUpcoming:
		return config.TKeyBucketUpcoming
	case engine.BucketPast:
		return config.TKeyBucketPast
	default:
		return config.TKeyBucketFeatured
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
