package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-eventboard/internal/config"
	"github.com/tartampluch/go-eventboard/internal/engine"
)

// -----------------------------------------------------------------------------
// Calendar Feed
// -----------------------------------------------------------------------------

// TestHandler_ServingContent verifies headers and body when a calendar is loaded.
func TestHandler_ServingContent(t *testing.T) {
	srv := New("0", nil)
	expectedICS := []byte("BEGIN:VCALENDAR\r\nVERSION:2.0\r\nEND:VCALENDAR")
	srv.Update(expectedICS)

	req := httptest.NewRequest(http.MethodGet, config.RouteCalendar, nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeTextCalendar, resp.Header.Get(config.HeaderContentType))
	assert.Equal(t, config.MimeNoSniff, resp.Header.Get(config.HeaderXContentType))
	assert.Contains(t, resp.Header.Get(config.HeaderCacheControl), "no-cache")
	assert.NotEmpty(t, resp.Header.Get(config.HeaderETag))
	assert.NotEmpty(t, resp.Header.Get(config.HeaderLastModified))

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, expectedICS, body)
}

// TestHandler_Caching verifies If-None-Match yields 304 with no body.
func TestHandler_Caching(t *testing.T) {
	srv := New("0", nil)
	srv.Update([]byte("DATA_VERSION_1"))

	w1 := httptest.NewRecorder()
	srv.handleCalendarRequest(w1, httptest.NewRequest(http.MethodGet, config.RouteCalendar, nil))
	etag := w1.Result().Header.Get(config.HeaderETag)
	require.NotEmpty(t, etag, "Server must provide an ETag")

	req2 := httptest.NewRequest(http.MethodGet, config.RouteCalendar, nil)
	req2.Header.Set(config.HeaderIfNoneMatch, etag)
	w2 := httptest.NewRecorder()
	srv.handleCalendarRequest(w2, req2)

	resp2 := w2.Result()
	defer func() { _ = resp2.Body.Close() }()
	assert.Equal(t, http.StatusNotModified, resp2.StatusCode)
	body, _ := io.ReadAll(resp2.Body)
	assert.Empty(t, body, "Body must be empty on 304 Not Modified")

	// A stale ETag wins over a fresh If-Modified-Since.
	req3 := httptest.NewRequest(http.MethodGet, config.RouteCalendar, nil)
	req3.Header.Set(config.HeaderIfNoneMatch, `"stale"`)
	req3.Header.Set(config.HeaderIfModifiedSince, time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
	w3 := httptest.NewRecorder()
	srv.handleCalendarRequest(w3, req3)
	assert.Equal(t, http.StatusOK, w3.Code)
}

func TestHandler_IfModifiedSince(t *testing.T) {
	srv := New("0", nil)
	srv.Update([]byte("DATA"))

	tests := []struct {
		name  string
		since string
		want  int
	}{
		{"Client is up to date", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat), http.StatusNotModified},
		{"Client is stale", time.Now().Add(-time.Hour).UTC().Format(http.TimeFormat), http.StatusOK},
		{"Unparseable date", "yesterday", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, config.RouteCalendar, nil)
			req.Header.Set(config.HeaderIfModifiedSince, tt.since)
			w := httptest.NewRecorder()
			srv.handleCalendarRequest(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

// TestUpdate_IdenticalContentKeepsETag ensures a refresh with no schedule change
// does not invalidate client caches.
func TestUpdate_IdenticalContentKeepsETag(t *testing.T) {
	srv := New("0", nil)
	srv.Update([]byte("SAME"))
	first := srv.cache.Load()

	srv.Update([]byte("SAME"))
	assert.Same(t, first, srv.cache.Load())

	srv.Update([]byte("OTHER"))
	assert.NotEqual(t, first.etag, srv.cache.Load().etag)
}

// TestHandler_MethodNotAllowed ensures strictly GET and HEAD are accepted.
func TestHandler_MethodNotAllowed(t *testing.T) {
	srv := New("0", nil)

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodPost, config.RouteCalendar, nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, config.AllowedMethods, w.Header().Get(config.HeaderAllow))
}

func TestHandler_Head(t *testing.T) {
	srv := New("0", nil)
	srv.Update([]byte("BEGIN:VCALENDAR"))

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodHead, config.RouteCalendar, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(config.HeaderETag))
	assert.Zero(t, w.Body.Len())
}

// TestHandler_Initializing verifies the 503 behavior when data is not yet ready.
func TestHandler_Initializing(t *testing.T) {
	srv := New("0", nil)

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, config.RouteCalendar, nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, config.RetryAfterSeconds, w.Header().Get(config.HeaderRetryAfter))
}

func TestPublishSchedule(t *testing.T) {
	srv := New("0", nil)
	start := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	builder := &engine.CalendarBuilder{Clock: engine.FixedClock(start.Add(-time.Hour))}

	err := srv.PublishSchedule(builder, []engine.ScheduleEntry{{
		Event: engine.Event{ID: "E1", Title: "Potluck", Date: start},
		Start: start,
		End:   start.Add(time.Hour),
	}})
	require.NoError(t, err)

	item := srv.cache.Load()
	require.NotNil(t, item)
	assert.Contains(t, string(item.data), "SUMMARY:Potluck")
}

// -----------------------------------------------------------------------------
// Concurrency Tests (Race Detection)
// -----------------------------------------------------------------------------

// TestServer_RaceCondition runs writers and readers concurrently.
// Run this with `go test -race`.
func TestServer_RaceCondition(t *testing.T) {
	srv := New("0", nil)
	var wg sync.WaitGroup

	end := time.Now().Add(500 * time.Millisecond)

	for w := 0; w < 5; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			i := 0
			for time.Now().Before(end) {
				srv.Update([]byte(fmt.Sprintf("VERSION:%d-%d", id, i)))
				i++
				time.Sleep(1 * time.Microsecond)
			}
		}(w)
	}

	for r := 0; r < 20; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) {
				w := httptest.NewRecorder()
				srv.handleCalendarRequest(w, httptest.NewRequest(http.MethodGet, config.RouteCalendar, nil))

				code := w.Code
				if code != http.StatusOK && code != http.StatusServiceUnavailable {
					t.Errorf("Unexpected status code during race test: %d", code)
				}
			}
		}()
	}

	wg.Wait()
}

// -----------------------------------------------------------------------------
// Integration Tests (Real TCP Lifecycle)
// -----------------------------------------------------------------------------

// TestServer_Lifecycle verifies network binding and graceful shutdown.
func TestServer_Lifecycle(t *testing.T) {
	const port = "18099"

	srv := New(port, nil)
	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)

	go func() {
		errChan <- srv.Start(ctx)
	}()

	url := "http://127.0.0.1:" + port + config.RouteCalendar

	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return true
	}, 2*time.Second, 50*time.Millisecond, "Server failed to bind/listen in time")

	resp, err := http.Get(url)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	_ = resp.Body.Close()

	srv.Update([]byte("BEGIN:VCALENDAR\nEND:VCALENDAR"))

	resp, err = http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Contains(t, string(body), "BEGIN:VCALENDAR")

	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err, "Server should shutdown gracefully without error")
	case <-time.After(5 * time.Second):
		t.Fatal("Server shutdown timed out")
	}
}

func TestServer_StartRequiresPort(t *testing.T) {
	err := New("", nil).Start(context.Background())
	assert.EqualError(t, err, config.ErrPortRequired)
}
