package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-eventboard/internal/config"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect    *widget.Select
	urlEntry      *widget.Entry
	userEntry     *widget.Entry
	adminEntry    *widget.Entry
	tokenEntry    *widget.Entry
	entryInterval *NumericalEntry
	entryPort     *NumericalEntry
}

// ShowSettingsWindow displays the configuration dialog.
func (app *EventboardApp) ShowSettingsWindow() {
	if app.Window != nil {
		slog.Debug(config.MsgSettingsFocus, config.LogKeyComponent, config.CompUISet)
		app.Window.RequestFocus()
		return
	}

	slog.Info(config.MsgSettingsOpen, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w

	sw := app.newSettingsWidgets()

	// --- Account ---
	itemURL := widget.NewFormItem(app.GetMsg(config.TKeyLblURL), sw.urlEntry)
	itemURL.HintText = app.GetMsg(config.TKeyHelpURL)
	itemAdmin := widget.NewFormItem(app.GetMsg(config.TKeyLblAdmin), sw.adminEntry)
	itemAdmin.HintText = app.GetMsg(config.TKeyHelpAdmin)

	accountCard := widget.NewCard(app.GetMsg(config.TKeyLblAccount), "", widget.NewForm(
		itemURL,
		widget.NewFormItem(app.GetMsg(config.TKeyLblUser), sw.userEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblToken), sw.tokenEntry),
		itemAdmin,
	))

	// --- General ---
	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)

	widInterval := container.NewBorder(nil, nil, nil, widget.NewLabel(app.GetMsg(config.TKeyLblSeconds)), sw.entryInterval)
	itemInterval := widget.NewFormItem(app.GetMsg(config.TKeyLblRefresh), widInterval)
	itemInterval.HintText = app.GetMsg(config.TKeyHelpInterval)

	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", widget.NewForm(itemLang, itemInterval, itemPort))

	// --- Actions ---
	saveAction := func() {
		if err := app.validateSettings(sw); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw)
		w.Close()
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footerLabel := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewPadded(container.NewVBox(
		accountCard,
		generalCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	w.SetContent(content)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.Window = nil })
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, content.MinSize().Height))
	w.Show()
}

// newSettingsWidgets builds the form fields pre-filled from preferences and the keyring.
func (app *EventboardApp) newSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.SetText(app.baseURL())
	sw.urlEntry.SetPlaceHolder(config.PlaceholderURL)

	settings := app.loadSettings()

	sw.userEntry = widget.NewEntry()
	sw.userEntry.SetText(settings.Session.UserID)

	sw.adminEntry = widget.NewEntry()
	sw.adminEntry.SetText(settings.AdminID)

	sw.tokenEntry = widget.NewPasswordEntry()
	sw.tokenEntry.SetText(settings.Session.Token)

	// Interval in seconds. Empty or 0 disables the timer; only manual refreshes remain.
	sw.entryInterval = NewNumericalEntry()
	sw.entryInterval.SetIntValue(int(settings.Interval.Seconds()))

	sw.entryPort = NewNumericalEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, app.defaultPort()))
	sw.entryPort.Validator = func(s string) error {
		if s == "" {
			return errors.New(app.GetMsg(config.TKeyErrPortReq))
		}
		port, err := strconv.Atoi(s)
		if err != nil {
			return errors.New(app.GetMsg(config.TKeyErrPortNum))
		}
		if port < config.MinPort || port > config.MaxPort {
			return errors.New(app.GetMsg(config.TKeyErrPortRange))
		}
		return nil
	}

	return sw
}

// validateSettings rejects a bad port or an API URL the client cannot use.
func (app *EventboardApp) validateSettings(sw *settingsWidgets) error {
	if err := sw.entryPort.Validate(); err != nil {
		return err
	}
	if _, err := app.Connect(strings.TrimSpace(sw.urlEntry.Text)); err != nil {
		return err
	}
	return nil
}

// saveSettings persists the form and restarts the hub with the new settings.
func (app *EventboardApp) saveSettings(sw *settingsWidgets) {
	slog.Info(config.MsgSettingsSaved, config.LogKeyComponent, config.CompUISet)

	userID := strings.TrimSpace(sw.userEntry.Text)

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	app.Preferences.SetString(config.PrefAPIBaseURL, strings.TrimSpace(sw.urlEntry.Text))
	app.Preferences.SetString(config.PrefUserID, userID)
	app.Preferences.SetString(config.PrefAdminID, strings.TrimSpace(sw.adminEntry.Text))

	// The token lives in the OS keyring, keyed by user id.
	if userID != "" && sw.tokenEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, userID, sw.tokenEntry.Text); err != nil {
			slog.Error(config.MsgKeyringSaveErr, config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
		}
	}

	interval := sw.entryInterval.IntValue(config.DisabledInterval)
	if interval <= 0 {
		interval = config.DisabledInterval
		slog.Info(config.MsgRefreshOff, config.LogKeyComponent, config.CompUISet)
	}
	app.Preferences.SetInt(config.PrefInterval, interval)

	// The port takes effect on the next start.
	if sw.entryPort.Text != "" {
		app.Preferences.SetString(config.PrefServerPort, sw.entryPort.Text)
	}

	app.UpdateLocalizer()
	app.RefreshTrayMenu()
	app.restartHub()
}

func (app *EventboardApp) defaultPort() string {
	if app.Env.Port != "" {
		return app.Env.Port
	}
	return config.DefaultPort
}
