package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Eventboard/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Eventboard"
	AppID             = "com.github.tartampluch.go-eventboard"
	KeyringService    = "com.github.tartampluch.go-eventboard"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	IconFile          = "Icon.png"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagHeadless     = "headless"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescHeadless = "Run the refresh loops and local server without the tray UI (configured from EVENTBOARD_* variables)"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Environment
// -----------------------------------------------------------------------------

// EnvPrefix is prepended to every variable read by LoadEnv.
const EnvPrefix = "EVENTBOARD_"

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	SettingsWindowWidth = 600

	// Preference Keys
	PrefAPIBaseURL = "api_base_url"
	PrefUserID     = "user_id"
	PrefAdminID    = "admin_id"
	PrefLanguage   = "language"
	PrefInterval   = "refresh_interval_sec"
	PrefServerPort = "server_port"
	PrefLastRun    = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// UI Board Windows
// -----------------------------------------------------------------------------

const (
	BoardWinWidth  = 620
	BoardWinHeight = 520

	// DateTimeFormatDisplay is used when the locale does not provide one.
	DateTimeFormatDisplay = "2006-01-02 15:04"
	ListPlaceholder       = "Item Content"
	LogMsgOpenWin         = "Opening window"

	// Sorting Indicators
	SortIconAsc  = " ▲"
	SortIconDesc = " ▼"

	// FormatPageIndicator renders "current / total" pages.
	FormatPageIndicator = "%d / %d"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle       = "win_title"
	TKeyWinEvents      = "win_events_title"
	TKeyWinAdmin       = "win_admin_title"
	TKeyWinFeedback    = "win_feedback_title"
	TKeyWinSchedule    = "win_schedule_title"
	TKeyMenuRefresh    = "menu_refresh"
	TKeyMenuSettings   = "menu_settings"
	TKeyMenuEvents     = "menu_events"
	TKeyMenuAdmin      = "menu_admin"
	TKeyMenuFeedback   = "menu_feedback"
	TKeyMenuSchedule   = "menu_schedule"
	TKeyTrayStatus     = "tray_status"      // Requires Count > 0
	TKeyTrayStatusZero = "tray_status_zero" // Explicit key for 0
	TKeyNotifStart     = "notif_sync_start"
	TKeyNotifSuccess   = "notif_sync_success"
	TKeyNotifError     = "notif_err_sync"
	TKeyLblLanguage    = "lbl_language"
	TKeyHelpLanguage   = "help_language"
	TKeyLblSeconds     = "lbl_seconds_suffix"
	TKeyLblRefresh     = "lbl_refresh_interval"
	TKeyHelpInterval   = "help_interval"
	TKeyLblPort        = "lbl_server_port"
	TKeyHelpPort       = "help_port"
	TKeyLblGeneral     = "lbl_general"
	TKeyLblAccount     = "lbl_account"
	TKeyLblURL         = "lbl_url"
	TKeyHelpURL        = "help_api_url"
	TKeyLblUser        = "lbl_user_id"
	TKeyLblAdmin       = "lbl_admin_id"
	TKeyHelpAdmin      = "help_admin_id"
	TKeyLblToken       = "lbl_token"
	TKeyBtnSave        = "btn_save"
	TKeyBtnCancel      = "btn_cancel"
	TKeyBtnPrev        = "btn_prev"
	TKeyBtnNext        = "btn_next"
	TKeyBtnCreate      = "btn_create_event"
	TKeyBtnRemind      = "btn_add_reminder"
	TKeyBtnSubmit      = "btn_submit"
	TKeyLblFooter      = "lbl_footer"
	TKeyLblSearch      = "lbl_search"
	TKeyLblMonthAll    = "lbl_month_all"
	TKeyLblSortAsc     = "lbl_sort_asc"
	TKeyLblSortDesc    = "lbl_sort_desc"
	TKeyLblEmpty       = "lbl_empty"
	TKeyLblStats       = "lbl_stats" // Requires Total, Active
	TKeyLblReminded    = "lbl_reminded"
	TKeyLblFeedbackFor = "lbl_feedback_for" // Requires Title

	// Admin buckets
	TKeyBucketOngoing  = "bucket_ongoing"
	TKeyBucketUpcoming = "bucket_upcoming"
	TKeyBucketPast     = "bucket_past"
	TKeyBucketFeatured = "bucket_featured"

	// Forms
	TKeyLblTitle       = "lbl_title"
	TKeyLblDescription = "lbl_description"
	TKeyLblDate        = "lbl_date"
	TKeyHelpDate       = "help_date"
	TKeyLblImage       = "lbl_image"
	TKeyLblType        = "lbl_type"
	TKeyLblEvent       = "lbl_event"
	TKeyLblChannels    = "lbl_channels"
	TKeyChanSMS        = "chan_sms"
	TKeyChanCall       = "chan_call"
	TKeyChanEmail      = "chan_email"
	TKeyNotifSubmitOK  = "notif_submit_ok"
	TKeyNotifSubmitErr = "notif_submit_err"

	// Formats
	TKeyFormatDateTime = "format_datetime" // Date format pattern (e.g., "2006-01-02 15:04")

	// Calendar feed
	TKeyAlarmText = "alarm_text" // Requires Title

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
	TKeyErrTitleReq  = "err_title_required"
	TKeyErrDateFmt   = "err_date_format"
	TKeyErrEventReq  = "err_event_required"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	// DefaultAdminID is the distinguished owner whose events are not "featured".
	DefaultAdminID = "681c32fccc57fc42d81613c2"

	DefaultAPIBaseURL = "http://localhost:9997"
	DefaultPort       = "18080"
	DefaultRefreshSec = 30
	DefaultLanguage   = "en"
	DefaultPageSize   = 3
	DisabledInterval  = 0

	// ScheduleEntryDuration is the length given to every schedule entry.
	ScheduleEntryDuration = 1 * time.Hour

	// Event types accepted by the create form.
	EventTypeEvent     = "Event"
	EventTypeEmergency = "Emergency Message"

	// Query values.
	MonthAllValue = "all"
	SortAscValue  = "asc"
	SortDescValue = "desc"
)

// DefaultRefreshInterval is DefaultRefreshSec as a duration.
const DefaultRefreshInterval = DefaultRefreshSec * time.Second

// -----------------------------------------------------------------------------
// Upstream API
// -----------------------------------------------------------------------------

const (
	PathGetAllEvents      = "/event/getAllEvents"
	PathAddEvent          = "/event/add"
	PathRemindersByUser   = "/reminder/getbyUserId/"
	PathCreateReminder    = "/reminder/create"
	PathSendUrgent        = "/reminder/sendUrgentsmsAndCall"
	PathGetFeedbacks      = "/feedback/get-feedbacks"
	QueryMessage          = "Message"
	AuthScheme            = "Bearer "
	MaxAPIResponseSize    = 16 * 1024 * 1024 // 16MB
	MaxRequestBodySize    = 1 * 1024 * 1024  // 1MB
	UpstreamDateFormatOut = "2006-01-02T15:04"
)

// Layouts accepted for upstream event dates, tried in order.
// Layouts without a zone are interpreted in local time.
var UpstreamDateFormats = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Eventboard//Schedule//EN"
	ICalCalName   = "Community Events"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "goeventboard"
	ICalTrigger   = "-PT1H"
	ICalValueURI  = "URI"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTEnd       = "DTEND"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropCategories  = "CATEGORIES"
	PropImage       = "IMAGE"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"
	ParamValue      = "VALUE"

	DefaultICalRefresh = 15 * time.Minute

	FormatUID = "%s@%s"
)

// -----------------------------------------------------------------------------
// Limits
// -----------------------------------------------------------------------------

const (
	MinPort = 1
	MaxPort = 65535
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout        = 30 * time.Second
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "10"
	AllowedMethods     = "GET, HEAD"
	SchemeHTTP         = "http"
	SchemeHTTPS        = "https"
	AddrSeparator      = ":"

	// Local server routes
	RouteCalendar       = "/calendar.ics"
	RouteHealth         = "/healthz"
	RouteAPI            = "/api"
	RouteEvents         = "/events"
	RouteAdminEvents    = "/admin/events"
	RouteFeedback       = "/feedback"
	RouteSchedule       = "/schedule"
	RouteReminders      = "/reminders"
	QueryParamSearch    = "q"
	QueryParamMonth     = "month"
	QueryParamSort      = "sort"
	QueryParamPage      = "page"
	QueryParamBucket    = "bucket"
	HealthStatusOK      = "ok"
	HealthStatusPending = "initializing"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderAuthorization   = "Authorization"
	HeaderAccept          = "Accept"
	HeaderRequestID       = "X-Request-ID"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrPortNumber       = "server port must be a number"
	ErrPortRange        = "server port must be between 1 and 65535"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrBuildRequest     = "failed to create request"
	ErrNetwork          = "network error during request"
	ErrUnexpectedStatus = "upstream returned unexpected status"
	ErrDecodeResponse   = "failed to decode upstream response"
	ErrEncodeRequest    = "failed to encode request body"
	ErrDateParse        = "unable to parse date"
	ErrFetchEvents      = "failed to fetch events"
	ErrFetchReminders   = "failed to fetch reminders"
	ErrFetchFeedback    = "failed to fetch feedback"
	ErrCreateEvent      = "failed to create event"
	ErrCreateReminder   = "failed to create reminder"
	ErrSendUrgent       = "failed to send urgent message"
	ErrRefreshFailed    = "refresh failed, keeping previous snapshot"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrEnvConfig        = "failed to read environment configuration"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrLocNotInit       = "localizer not initialized"
	ErrMonthFilter      = "month filter must be \"all\" or 0-11"
	ErrSortDirection    = "sort direction must be \"asc\" or \"desc\""
	ErrPageIndex        = "page must be a non-negative integer"
	ErrBucket           = "unknown bucket"
	ErrTitleRequired    = "event title is required"
	ErrMessageRequired  = "emergency message requires a description"
	ErrEventRequired    = "reminder requires an event"
	ErrSubmitPending    = "a submission is already in progress"
	ErrUserRequired     = "session has no user id"
	ErrBodyMalformed    = "body contains badly-formed JSON"
	ErrBodyType         = "body contains incorrect JSON type for field %q"
	ErrBodyEmpty        = "body must not be empty"
	ErrBodyUnknownKey   = "body contains unknown key %s"
	ErrBodyTooLarge     = "body must not be larger than %d bytes"
	ErrBodyMultiple     = "body must only contain a single JSON value"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Schedule initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInternalErr  = "the server encountered a problem and could not process your request"
	HTTPMsgUpstreamErr  = "the upstream API rejected the request"
	HTTPMsgNotFound     = "the requested resource could not be found"
	JSONKeyError        = "error"
	JSONKeyStatus       = "status"
	JSONKeyToday        = "events_today"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackAlarmText   = "Starting soon: %s"
	FallbackTrayError   = "Go Eventboard: Refresh Error"
	FallbackTrayDefault = "Go Eventboard (%d today)"
	FallbackTrayLabel   = "Go Eventboard"
	FallbackTitle       = "Untitled event"

	// StubVCalendar is the minimal valid iCalendar object used when the schedule is empty.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	TitleStartupError = "Startup Error"
	TitleSyncError    = "Refresh Error"

	MsgPortBusy       = "Port %s is busy or unavailable."
	MsgSyncSuccess    = "Refresh completed successfully."
	MsgSyncStarted    = "Refresh started..."
	MsgSyncFailed     = "Refresh failed. Check logs."
	MsgSyncReq        = "Refresh requested"
	MsgLoopStart      = "Refresh loop started"
	MsgLoopStop       = "Refresh loop stopping"
	MsgUpdateSync     = "Updating refresh interval"
	MsgSnapshot       = "Snapshot replaced"
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgSkippedDate    = "Skipping event with invalid date"
	MsgGenSuccess     = "Calendar generation successful"
	MsgAppStarting    = "Starting application"
	MsgHeadless       = "Running headless"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Calendar cache updated"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgTokenFail      = "Token retrieval failed (might be empty)"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgRequest        = "Calling upstream API"
	MsgResponse       = "Upstream API responded"
	MsgUpstreamStatus = "Upstream returned error status"
	MsgEventCreated   = "Event created"
	MsgUrgentSent     = "Urgent message sent"
	MsgReminderSaved  = "Reminder created"
	MsgClientError    = "client error"
	MsgServerError    = "server error"
	MsgHTTPRequest    = "HTTP request served"
	MsgSettingsSaved  = "Saving preferences"
	MsgSettingsFocus  = "Settings window already open, requesting focus"
	MsgSettingsOpen   = "Opening settings window"
	MsgKeyringSaveErr = "Failed to save token to keyring"
	MsgRefreshOff     = "Auto-refresh disabled via settings"

	PlaceholderURL  = "https://..."
	PlaceholderDate = "2006-01-02 15:04"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyMethod    = "method"
	LogKeyStatus    = "status_code"
	LogKeyRequestID = "request_id"
	LogKeyPath      = "path"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyInterval  = "interval"
	LogKeyOld       = "old"
	LogKeyNew       = "new"
	LogKeyUser      = "user"
	LogKeyEventID   = "event_id"
	LogKeyEvents    = "events"
	LogKeyReminders = "reminders"
	LogKeyFeedback  = "feedback"
	LogKeyEntries   = "entries"
	LogKeyToday     = "events_today"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyManual    = "manual"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyCount     = "count"
	LogKeyWindow    = "window"
	LogKeyLoop      = "loop"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI      = "ui"
	CompUISet   = "ui_settings"
	CompEngine  = "engine"
	CompServer  = "server"
	CompAPI     = "api"
	CompRefresh = "refresh"
	CompBoard   = "board"
	CompMain    = "main"
	CompI18n    = "i18n"
)

// Loop names used in logs.
const (
	LoopSchedule = "schedule"
	LoopFeedback = "feedback"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
	LayoutColumnsTriple = 3
)
