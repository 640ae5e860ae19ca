package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tartampluch/go-eventboard/internal/board"
	"github.com/tartampluch/go-eventboard/internal/config"
)

// Server is the local HTTP endpoint: the schedule as an ICS feed plus
// read-only JSON views of the boards and the two submit forms.
type Server struct {
	// cache uses atomic.Pointer for lock-free reads.
	// Calendar clients poll far more often than the schedule changes.
	cache atomic.Pointer[cacheItem]
	Port  string

	hub     *board.Hub
	handler http.Handler
}

// New builds the server and its router. With a nil hub only the calendar
// feed and the health check are mounted.
func New(port string, hub *board.Hub) *Server {
	s := &Server{Port: port, hub: hub}
	s.setupHandler()
	return s
}

func (s *Server) setupHandler() {
	r := chi.NewMux()

	r.Use(middleware.RequestID, requestLogger, middleware.Recoverer, middleware.StripSlashes)
	r.NotFound(s.notFoundResponse)
	r.MethodNotAllowed(s.methodNotAllowedResponse)

	r.Get(config.RouteHealth, s.healthHandler)
	r.HandleFunc(config.RouteCalendar, s.handleCalendarRequest)

	if s.hub != nil {
		r.Route(config.RouteAPI, func(r chi.Router) {
			r.Get(config.RouteEvents, s.listEventsHandler)
			r.Get(config.RouteAdminEvents, s.adminEventsHandler)
			r.Post(config.RouteAdminEvents, s.createEventHandler)
			r.Get(config.RouteFeedback, s.listFeedbackHandler)
			r.Get(config.RouteSchedule, s.scheduleHandler)
			r.Post(config.RouteReminders, s.createReminderHandler)
		})
	}

	s.handler = r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Start listens on localhost and blocks until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// requestLogger logs every request at debug level with chi's request id.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Debug(config.MsgHTTPRequest,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyMethod, r.Method,
			config.LogKeyPath, r.URL.Path,
			config.LogKeyStatus, ww.Status(),
			config.LogKeyRequestID, middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	ready := s.cache.Load() != nil
	today := -1
	if s.hub != nil {
		today = s.hub.TodayCount()
		ready = today >= 0
	}

	status, code := config.HealthStatusOK, http.StatusOK
	if !ready {
		status, code = config.HealthStatusPending, http.StatusServiceUnavailable
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
	}

	data := map[string]any{config.JSONKeyStatus: status}
	if s.hub != nil {
		data[config.JSONKeyToday] = today
	}
	if err := s.writeJSON(w, code, data, nil); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}
