package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/tartampluch/go-eventboard/internal/board"
	"github.com/tartampluch/go-eventboard/internal/config"
)

func (s *Server) logError(r *http.Request, err error) {
	slog.Error(config.MsgServerError,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyPath, r.URL.Path,
		config.LogKeyRequestID, middleware.GetReqID(r.Context()),
		config.LogKeyError, err,
	)
}

func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	data := map[string]any{config.JSONKeyError: message}

	if err := s.writeJSON(w, status, data, nil); err != nil {
		s.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (s *Server) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	s.logError(r, err)
	s.errorResponse(w, r, http.StatusInternalServerError, config.HTTPMsgInternalErr)
}

func (s *Server) clientErrorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	slog.Debug(config.MsgClientError,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyError, message,
	)
	s.errorResponse(w, r, status, message)
}

func (s *Server) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	s.clientErrorResponse(w, r, http.StatusNotFound, config.HTTPMsgNotFound)
}

func (s *Server) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	s.clientErrorResponse(w, r, http.StatusMethodNotAllowed, config.HTTPMsgMethodNotAll)
}

func (s *Server) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	s.clientErrorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (s *Server) initializingResponse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
	s.clientErrorResponse(w, r, http.StatusServiceUnavailable, config.HTTPMsgInitializing)
}

// submitErrorResponse maps a board submission error to a status code.
// Anything that is not a local validation or concurrency error came from upstream.
func (s *Server) submitErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, board.ErrTitleRequired),
		errors.Is(err, board.ErrMessageRequired),
		errors.Is(err, board.ErrEventRequired),
		errors.Is(err, board.ErrUserRequired):
		s.clientErrorResponse(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, board.ErrSubmitPending):
		s.clientErrorResponse(w, r, http.StatusConflict, err.Error())
	default:
		s.logError(r, fmt.Errorf("%s: %w", config.HTTPMsgUpstreamErr, err))
		s.errorResponse(w, r, http.StatusBadGateway, config.HTTPMsgUpstreamErr)
	}
}
