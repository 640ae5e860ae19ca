package ui

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-eventboard/internal/api"
	"github.com/tartampluch/go-eventboard/internal/board"
	"github.com/tartampluch/go-eventboard/internal/config"
	"github.com/tartampluch/go-eventboard/internal/engine"
	"github.com/tartampluch/go-eventboard/internal/server"
	"github.com/zalando/go-keyring"
)

//go:embed Icon.png
var appIconData []byte

// Connector builds the upstream client for a base URL.
type Connector func(baseURL string) (api.EventsAPI, error)

// EventboardApp encapsulates the UI state, preferences, and the refresh hub.
type EventboardApp struct {
	App         fyne.App
	Window      fyne.Window // settings
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Server  *server.Server
	Connect Connector
	Clock   engine.Clock // Injected clock for testability

	// Env supplies defaults for preferences the user has not set yet.
	Env config.Env

	hubMu   sync.Mutex
	hub     *board.Hub
	stopHub func()

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem   *fyne.MenuItem
	TrayEventsItem   *fyne.MenuItem
	TrayAdminItem    *fyne.MenuItem
	TrayFeedbackItem *fyne.MenuItem
	TrayScheduleItem *fyne.MenuItem
	TrayRefreshItem  *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem

	SupportedLanguages []string
	configChan         chan string

	// Open board windows and their render functions, keyed by title key.
	windows map[string]*boardWindow
}

// NewEventboardApp constructs the application and wires dependencies.
func NewEventboardApp(a fyne.App, ctx context.Context, srv *server.Server, env config.Env) *EventboardApp {
	a.SetIcon(fyne.NewStaticResource(config.IconFile, appIconData))

	return &EventboardApp{
		App:         a,
		Preferences: a.Preferences(),
		Ctx:         ctx,
		Server:      srv,
		Env:         env,
		Connect: func(baseURL string) (api.EventsAPI, error) {
			return api.NewClient(baseURL)
		},
		Clock:              engine.RealClock{},
		SupportedLanguages: config.SupportedLanguages,
		configChan:         make(chan string, config.ChannelBufferSize),
		windows:            make(map[string]*boardWindow),
	}
}

// Run launches the server, the refresh hub and the main UI loop.
func (app *EventboardApp) Run() {
	app.SetupI18n()
	app.watchPreferences()

	go func() {
		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	app.restartHub()
	go app.backgroundWorker()
	app.App.Run()
}

// watchPreferences monitors changes to settings to trigger a hub restart.
func (app *EventboardApp) watchPreferences() {
	app.Preferences.AddChangeListener(func() {
		select {
		case app.configChan <- config.PrefInterval:
		default:
		}
	})
}

// setupTrayMenu constructs the system tray menu.
func (app *EventboardApp) setupTrayMenu() {
	// The status line doubles as a shortcut to the events board.
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, func() {
		app.ShowEventsWindow()
	})

	app.TrayEventsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuEvents), func() {
		app.ShowEventsWindow()
	})
	app.TrayAdminItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuAdmin), func() {
		app.ShowAdminWindow()
	})
	app.TrayFeedbackItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuFeedback), func() {
		app.ShowFeedbackWindow()
	})
	app.TrayScheduleItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSchedule), func() {
		app.ShowScheduleWindow()
	})
	app.TrayRefreshItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuRefresh), func() {
		go app.performRefresh(true)
	})
	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayEventsItem,
		app.TrayAdminItem,
		app.TrayFeedbackItem,
		app.TrayScheduleItem,
		fyne.NewMenuItemSeparator(),
		app.TrayRefreshItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *EventboardApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayEventsItem.Label = app.GetMsg(config.TKeyMenuEvents)
	app.TrayAdminItem.Label = app.GetMsg(config.TKeyMenuAdmin)
	app.TrayFeedbackItem.Label = app.GetMsg(config.TKeyMenuFeedback)
	app.TrayScheduleItem.Label = app.GetMsg(config.TKeyMenuSchedule)
	app.TrayRefreshItem.Label = app.GetMsg(config.TKeyMenuRefresh)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.Menu.Refresh()
}

// backgroundWorker restarts the hub whenever the effective settings change.
func (app *EventboardApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompUI)

	for {
		select {
		case <-app.Ctx.Done():
			app.hubMu.Lock()
			if app.stopHub != nil {
				app.stopHub()
				app.stopHub = nil
			}
			app.hubMu.Unlock()
			log.Info(config.MsgLoopStop)
			return

		case <-app.configChan:
			current := app.Hub()
			if current == nil || current.Settings != app.loadSettings() {
				log.Info(config.MsgUpdateSync)
				app.restartHub()
			}
		}
	}
}

// Hub returns the running hub, or nil when none could be started.
func (app *EventboardApp) Hub() *board.Hub {
	app.hubMu.Lock()
	defer app.hubMu.Unlock()
	return app.hub
}

// loadSettings assembles the hub settings from preferences, the keyring and Env.
func (app *EventboardApp) loadSettings() board.Settings {
	userID := app.Preferences.StringWithFallback(config.PrefUserID, app.Env.UserID)

	token := app.Env.Token
	if userID != "" {
		if t, err := keyring.Get(config.KeyringService, userID); err == nil {
			token = t
		} else {
			slog.Debug(config.MsgTokenFail,
				config.LogKeyUser, userID,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}

	interval := app.Env.Refresh
	if sec := app.Preferences.IntWithFallback(config.PrefInterval, -1); sec >= 0 {
		interval = time.Duration(sec) * time.Second
	}

	adminID := app.Preferences.StringWithFallback(config.PrefAdminID, app.Env.AdminID)
	if adminID == "" {
		adminID = config.DefaultAdminID
	}

	return board.Settings{
		Session:  api.Session{Token: token, UserID: userID},
		AdminID:  adminID,
		Interval: interval,
		PageSize: config.DefaultPageSize,
	}
}

// baseURL is the upstream API address from preferences or Env.
func (app *EventboardApp) baseURL() string {
	fallback := app.Env.APIBaseURL
	if fallback == "" {
		fallback = config.DefaultAPIBaseURL
	}
	return app.Preferences.StringWithFallback(config.PrefAPIBaseURL, fallback)
}

// restartHub stops the running hub, if any, and starts one for the current settings.
func (app *EventboardApp) restartHub() {
	hub, err := app.newHub()

	app.hubMu.Lock()
	replaced := app.hub != nil
	if app.stopHub != nil {
		app.stopHub()
		app.stopHub = nil
	}
	app.hub = hub
	if hub != nil {
		app.stopHub = hub.Start(app.Ctx)
	}
	app.hubMu.Unlock()

	if replaced {
		fyne.Do(app.closeBoards)
	}

	if err != nil {
		slog.Error(config.ErrRefreshFailed,
			config.LogKeyError, err,
			config.LogKeyComponent, config.CompUI)
		app.updateTrayStatus(-1)
	}
}

// newHub builds a hub for the current settings and wires its callbacks to the UI.
// It does not start the loops.
func (app *EventboardApp) newHub() (*board.Hub, error) {
	client, err := app.Connect(app.baseURL())
	if err != nil {
		return nil, err
	}

	hub := board.NewHub(client, app.loadSettings(), app.Clock)
	// A replaced hub can still finish a refresh, e.g. one started by a reminder
	// submit. Its results belong to the old settings and are dropped.
	hub.OnData = func(d board.Data) {
		if app.Hub() != hub {
			return
		}
		app.publishCalendar(hub, d)
		fyne.Do(func() { app.onData(hub) })
	}
	hub.OnFeedback = func([]engine.Feedback) {
		if app.Hub() != hub {
			return
		}
		fyne.Do(func() { app.renderWindow(config.TKeyWinFeedback) })
	}
	hub.OnError = func(error) {
		if app.Hub() != hub {
			return
		}
		fyne.Do(func() { app.updateTrayStatus(-1) })
	}
	return hub, nil
}

// onData updates the tray and every open board after a new snapshot.
func (app *EventboardApp) onData(hub *board.Hub) {
	app.updateTrayStatus(hub.TodayCount())
	for key := range app.windows {
		app.renderWindow(key)
	}
}

// publishCalendar renders the user's schedule into the served ICS feed.
func (app *EventboardApp) publishCalendar(hub *board.Hub, d board.Data) {
	builder := &engine.CalendarBuilder{
		Clock:     app.Clock,
		AlarmText: app.alarmText,
	}
	entries := board.BuildSchedule(d, hub.Settings.Session.UserID, app.Clock.Now()).Entries
	if err := app.Server.PublishSchedule(builder, entries); err != nil {
		slog.Error(config.ErrICalEncode, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
	}
}

// performRefresh fetches every snapshot now.
func (app *EventboardApp) performRefresh(manual bool) {
	slog.Info(config.MsgSyncReq,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyManual, manual)

	hub := app.Hub()
	if hub == nil {
		app.restartHub()
		hub = app.Hub()
	}

	if manual {
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifStart)))
	}

	err := errors.New(config.ErrRefreshFailed)
	if hub != nil {
		err = hub.RefreshAll(app.Ctx)
	}
	if err != nil {
		slog.Error(config.MsgSyncFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		if manual {
			app.App.SendNotification(fyne.NewNotification(config.TitleSyncError, app.GetMsg(config.TKeyNotifError)))
		}
		return
	}

	if manual {
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifSuccess)))
	}
}

// updateTrayStatus shows how many events are happening today.
func (app *EventboardApp) updateTrayStatus(count int) {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}

	var label string
	switch {
	case count < 0:
		label = config.FallbackTrayError
	case count == 0:
		label = app.GetMsg(config.TKeyTrayStatusZero)
		if label == config.TKeyTrayStatusZero {
			label = fmt.Sprintf(config.FallbackTrayDefault, 0)
		}
	default:
		if app.Localizer != nil {
			msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
				MessageID:    config.TKeyTrayStatus,
				TemplateData: map[string]interface{}{"Count": count},
				PluralCount:  count,
			})
			if err == nil {
				label = msg
			}
		}
		if label == "" {
			label = fmt.Sprintf(config.FallbackTrayDefault, count)
		}
	}

	app.TrayStatusItem.Label = label
	app.Menu.Refresh()
}

// alarmText localizes the VALARM description of a reminded schedule entry.
func (app *EventboardApp) alarmText(title string) string {
	msg := app.GetMsgData(config.TKeyAlarmText, map[string]interface{}{"Title": title})
	if msg == config.TKeyAlarmText {
		return fmt.Sprintf(config.FallbackAlarmText, title)
	}
	return msg
}
