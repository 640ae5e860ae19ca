package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tartampluch/go-eventboard/internal/config"
	"github.com/tartampluch/go-eventboard/internal/engine"
)

// EventsAPI is the contract of the upstream community events service.
// It allows for mocking in tests and decoupling boards from the network layer.
type EventsAPI interface {
	GetAllEvents(ctx context.Context, s Session) ([]engine.Event, error)
	CreateEvent(ctx context.Context, s Session, e NewEvent) error
	GetReminders(ctx context.Context, s Session) ([]engine.Reminder, error)
	CreateReminder(ctx context.Context, s Session, r NewReminder) error
	SendUrgent(ctx context.Context, s Session, message string) error
	GetFeedbacks(ctx context.Context, s Session) ([]engine.Feedback, error)
}

// NewEvent is the payload of the admin create-event form.
type NewEvent struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Image       string    `json:"image"`
	Type        string    `json:"type"`
}

// NewReminder is the payload of the schedule reminder form.
type NewReminder struct {
	EventID   string `json:"event_id"`
	NeedSMS   bool   `json:"need_sms"`
	NeedCall  bool   `json:"need_call"`
	NeedEmail bool   `json:"need_email"`
}

// StatusError reports a non-2xx upstream response.
// Authentication failures are not singled out and surface as a StatusError too.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", config.ErrUnexpectedStatus, e.Status)
}

// Client implements EventsAPI over HTTP.
type Client struct {
	BaseURL *url.URL
	HTTP    *http.Client

	// Location is used for upstream dates that carry no zone. Nil means time.Local.
	Location *time.Location
}

// NewClient validates baseURL and returns a client with configured timeouts.
func NewClient(baseURL string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}

	// Only plain HTTP(S) upstreams are supported.
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.New(config.ErrInvalidURL)
	}

	u.Path = strings.TrimSuffix(u.Path, "/")
	return &Client{
		BaseURL: u,
		HTTP: &http.Client{
			Timeout: config.HTTPTimeout,
		},
	}, nil
}

// GetAllEvents lists every event. Records with an unreadable date are skipped.
func (c *Client) GetAllEvents(ctx context.Context, s Session) ([]engine.Event, error) {
	var records []eventRecord
	if err := c.do(ctx, http.MethodGet, config.PathGetAllEvents, nil, s, nil, &records); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrFetchEvents, err)
	}
	return toEvents(records, c.Location), nil
}

// CreateEvent publishes an event owned by the session user.
func (c *Client) CreateEvent(ctx context.Context, s Session, e NewEvent) error {
	body := createEventRequest{
		EventTitle:       e.Title,
		EventDescription: e.Description,
		EventDate:        FormatEventDate(e.Date),
		EventImg:         e.Image,
		EventType:        e.Type,
		UserID:           s.UserID,
	}
	if err := c.do(ctx, http.MethodPost, config.PathAddEvent, nil, s, body, nil); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCreateEvent, err)
	}
	return nil
}

// GetReminders lists the reminders of the session user.
func (c *Client) GetReminders(ctx context.Context, s Session) ([]engine.Reminder, error) {
	var records []reminderRecord
	path := config.PathRemindersByUser + url.PathEscape(s.UserID)
	if err := c.do(ctx, http.MethodGet, path, nil, s, nil, &records); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrFetchReminders, err)
	}
	return toReminders(records), nil
}

// CreateReminder registers a reminder of the session user.
func (c *Client) CreateReminder(ctx context.Context, s Session, r NewReminder) error {
	body := createReminderRequest{
		UserID:    s.UserID,
		EventID:   r.EventID,
		NeedSms:   r.NeedSMS,
		NeedCall:  r.NeedCall,
		NeedEmail: r.NeedEmail,
	}
	if err := c.do(ctx, http.MethodPost, config.PathCreateReminder, nil, s, body, nil); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCreateReminder, err)
	}
	return nil
}

// SendUrgent asks the upstream service to broadcast message by SMS and call.
func (c *Client) SendUrgent(ctx context.Context, s Session, message string) error {
	q := url.Values{}
	q.Set(config.QueryMessage, message)
	if err := c.do(ctx, http.MethodGet, config.PathSendUrgent, q, s, nil, nil); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSendUrgent, err)
	}
	return nil
}

// GetFeedbacks lists all feedback, with messages trimmed.
func (c *Client) GetFeedbacks(ctx context.Context, s Session) ([]engine.Feedback, error) {
	var records []feedbackRecord
	if err := c.do(ctx, http.MethodGet, config.PathGetFeedbacks, nil, s, nil, &records); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrFetchFeedback, err)
	}
	return toFeedback(records), nil
}

// do performs one JSON round-trip. The query string is left out of logs
// because the urgent message travels there.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, s Session, in, out any) error {
	u := *c.BaseURL
	u.Path = c.BaseURL.Path + path
	u.RawQuery = query.Encode()

	requestID := uuid.NewString()
	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompAPI),
		slog.String(config.LogKeyMethod, method),
		slog.String(config.LogKeyURL, u.Scheme+"://"+u.Host+u.Path),
		slog.String(config.LogKeyRequestID, requestID),
	)

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: %w", config.ErrEncodeRequest, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrBuildRequest, err)
	}

	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	req.Header.Set(config.HeaderAccept, config.MimeJSON)
	req.Header.Set(config.HeaderRequestID, requestID)
	if auth := s.Authorization(config.AuthScheme); auth != "" {
		req.Header.Set(config.HeaderAuthorization, auth)
	}
	if in != nil {
		req.Header.Set(config.HeaderContentType, config.MimeJSON)
	}

	log.Debug(config.MsgRequest)
	start := time.Now()

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	log.Debug(config.MsgResponse,
		slog.Int(config.LogKeyStatus, resp.StatusCode),
		slog.Int64(config.LogKeyDuration, time.Since(start).Milliseconds()),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Warn(config.MsgUpstreamStatus,
			slog.Int(config.LogKeyStatus, resp.StatusCode),
		)
		return &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	// Protect against oversized payloads.
	limited := io.LimitReader(resp.Body, config.MaxAPIResponseSize)
	if out == nil {
		_, _ = io.Copy(io.Discard, limited)
		return nil
	}
	if err := json.NewDecoder(limited).Decode(out); err != nil {
		return fmt.Errorf("%s: %w", config.ErrDecodeResponse, err)
	}
	return nil
}
