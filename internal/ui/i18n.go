package ui

import (
	"embed"
	"encoding/json"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-eventboard/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

const (
	localeDir    = "locales"
	localePrefix = "active."
	localeSuffix = ".json"
)

// SetupI18n loads every embedded locale file into a bundle and records
// which languages were found. English is the fallback language.
func (app *EventboardApp) SetupI18n() {
	log := slog.With(config.LogKeyComponent, config.CompI18n)

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir(localeDir)
	if err != nil {
		log.Error(config.ErrLocalesAccess, config.LogKeyError, err)
		return
	}

	var langs []string
	for _, entry := range entries {
		name := entry.Name()
		lang, ok := localeCode(name)
		if !ok {
			log.Debug(config.MsgLocaleSkip, config.LogKeyFile, name)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, path.Join(localeDir, name)); err != nil {
			log.Error(config.ErrLocaleLoad, config.LogKeyFile, name, config.LogKeyError, err)
			continue
		}
		log.Debug(config.MsgLocaleLoaded, config.LogKeyLang, lang, config.LogKeyFile, name)
		langs = append(langs, lang)
	}

	slices.Sort(langs)
	app.SupportedLanguages = langs
	app.I18nBundle = bundle
	app.UpdateLocalizer()
}

// localeCode extracts "fr" from "active.fr.json".
func localeCode(name string) (string, bool) {
	if !strings.HasPrefix(name, localePrefix) || !strings.HasSuffix(name, localeSuffix) {
		return "", false
	}
	lang := strings.TrimSuffix(strings.TrimPrefix(name, localePrefix), localeSuffix)
	if lang == "" {
		slog.Warn(config.MsgLocaleBadName, config.LogKeyComponent, config.CompI18n, config.LogKeyFile, name)
		return "", false
	}
	return lang, true
}

// UpdateLocalizer refreshes the translator based on the user's language preference.
// Unknown languages fall back to the bundle's default (English).
func (app *EventboardApp) UpdateLocalizer() {
	lang := app.Preferences.String(config.PrefLanguage)
	if lang == "" {
		lang = config.DefaultLanguage
	}
	app.Localizer = i18n.NewLocalizer(app.I18nBundle, lang)
}

// GetMsg translates a key, returning the key itself when no translation exists.
func (app *EventboardApp) GetMsg(key string) string {
	return app.GetMsgData(key, nil)
}

// GetMsgData translates a key whose message is a template over data.
func (app *EventboardApp) GetMsgData(key string, data map[string]interface{}) string {
	if app.Localizer == nil {
		return key
	}
	msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}
