package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-eventboard/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"DefaultAdminID", config.DefaultAdminID},
		{"MsgUpstreamStatus", config.MsgUpstreamStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestDefaults_Sanity checks that default values make sense logically.
func TestDefaults_Sanity(t *testing.T) {
	assert.Equal(t, 3, config.DefaultPageSize)
	assert.Equal(t, 30*time.Second, config.DefaultRefreshInterval)
	assert.Equal(t, time.Hour, config.ScheduleEntryDuration)
	assert.Equal(t, 30*time.Second, config.HTTPTimeout)
}

// TestUserAgent_Format ensures the UA string follows the standard format.
func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-Eventboard/"), "UserAgent must start with AppName/")
}

func TestUpstreamPaths(t *testing.T) {
	for _, p := range []string{
		config.PathGetAllEvents,
		config.PathAddEvent,
		config.PathRemindersByUser,
		config.PathCreateReminder,
		config.PathSendUrgent,
		config.PathGetFeedbacks,
	} {
		assert.True(t, strings.HasPrefix(p, "/"), "path %q must be absolute", p)
	}
	assert.True(t, strings.HasSuffix(config.PathRemindersByUser, "/"), "user id is appended to the reminders path")
}

// TestTimeoutsAndLimits ensures that operational constraints are reasonable.
func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.HTTPTimeout, 0*time.Second, "HTTPTimeout must be positive")
	assert.LessOrEqual(t, config.HTTPTimeout, 2*time.Minute, "HTTPTimeout should not be excessively long")
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")

	assert.Greater(t, config.MaxAPIResponseSize, 0)
	assert.Less(t, int64(config.MaxAPIResponseSize), int64(1*1024*1024*1024), "MaxAPIResponseSize should stay under 1GB to protect RAM")
	assert.Less(t, config.MaxRequestBodySize, config.MaxAPIResponseSize)
}

func TestLoadEnv_Defaults(t *testing.T) {
	e, err := config.LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, config.DefaultAPIBaseURL, e.APIBaseURL)
	assert.Equal(t, config.DefaultAdminID, e.AdminID)
	assert.Equal(t, config.DefaultPort, e.Port)
	assert.Equal(t, config.DefaultRefreshInterval, e.Refresh)
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("EVENTBOARD_API_BASE_URL", "https://events.example.org")
	t.Setenv("EVENTBOARD_TOKEN", "tok")
	t.Setenv("EVENTBOARD_USER_ID", "U1")
	t.Setenv("EVENTBOARD_PORT", "19000")
	t.Setenv("EVENTBOARD_REFRESH_INTERVAL", "2m")

	e, err := config.LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://events.example.org", e.APIBaseURL)
	assert.Equal(t, "tok", e.Token)
	assert.Equal(t, "U1", e.UserID)
	assert.Equal(t, "19000", e.Port)
	assert.Equal(t, 2*time.Minute, e.Refresh)
}

func TestLoadEnv_InvalidDuration(t *testing.T) {
	t.Setenv("EVENTBOARD_REFRESH_INTERVAL", "soon")

	_, err := config.LoadEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrEnvConfig)
}
