package server

import (
	"net/http"

	"github.com/tartampluch/go-eventboard/internal/api"
	"github.com/tartampluch/go-eventboard/internal/board"
	"github.com/tartampluch/go-eventboard/internal/config"
	"github.com/tartampluch/go-eventboard/internal/engine"
)

// The JSON views read the hub's latest snapshots and render pages statelessly,
// so concurrent HTTP clients never move the GUI's pagers.

type adminEventsResponse struct {
	Stats   engine.Stats                                   `json:"stats"`
	Buckets map[engine.Bucket]board.PageView[engine.Event] `json:"buckets"`
}

func (s *Server) listEventsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	month, err := engine.ParseMonthFilter(q.Get(config.QueryParamMonth))
	if err != nil {
		s.badRequestResponse(w, r, err)
		return
	}
	dir, err := engine.ParseDirection(q.Get(config.QueryParamSort))
	if err != nil {
		s.badRequestResponse(w, r, err)
		return
	}
	page, err := readPage(r)
	if err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	snap := s.hub.Data.Snapshot()
	if snap == nil {
		s.initializingResponse(w, r)
		return
	}

	criteria := engine.Criteria{Query: q.Get(config.QueryParamSearch), Month: month, Direction: dir}
	events := board.ResidentEvents(snap.Data.Events, s.hub.Clock.Now(), criteria)

	// Reminders in the snapshot are already scoped to the session user.
	resp := board.PageItems(engine.Annotate(events, snap.Data.Reminders), page, s.hub.Settings.PageSize)
	if err := s.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) adminEventsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	buckets := engine.AllBuckets
	if v := q.Get(config.QueryParamBucket); v != "" {
		b, err := engine.ParseBucket(v)
		if err != nil {
			s.badRequestResponse(w, r, err)
			return
		}
		buckets = []engine.Bucket{b}
	}
	page, err := readPage(r)
	if err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	snap := s.hub.Data.Snapshot()
	if snap == nil {
		s.initializingResponse(w, r)
		return
	}

	all, stats := board.AdminBuckets(snap.Data.Events, s.hub.Clock.Now(), s.hub.Settings.AdminID, q.Get(config.QueryParamSearch))
	resp := adminEventsResponse{
		Stats:   stats,
		Buckets: make(map[engine.Bucket]board.PageView[engine.Event], len(buckets)),
	}
	for _, b := range buckets {
		resp.Buckets[b] = board.PageItems(all.Get(b), page, s.hub.Settings.PageSize)
	}

	if err := s.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) createEventHandler(w http.ResponseWriter, r *http.Request) {
	var req api.NewEvent
	if err := s.readJSON(w, r, &req); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}
	if req.Type == "" {
		req.Type = config.EventTypeEvent
	}

	if err := s.hub.Admin.Submit(r.Context(), req); err != nil {
		s.submitErrorResponse(w, r, err)
		return
	}

	status := http.StatusCreated
	if req.Type == config.EventTypeEmergency {
		status = http.StatusAccepted
	}
	w.WriteHeader(status)
}

func (s *Server) listFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	page, err := readPage(r)
	if err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	snap := s.hub.Feedback.Snapshot()
	if snap == nil {
		s.initializingResponse(w, r)
		return
	}

	resp := board.PageItems(snap.Data, page, s.hub.Settings.PageSize)
	if err := s.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) scheduleHandler(w http.ResponseWriter, r *http.Request) {
	snap := s.hub.Data.Snapshot()
	if snap == nil {
		s.initializingResponse(w, r)
		return
	}

	resp := board.BuildSchedule(snap.Data, s.hub.Settings.Session.UserID, s.hub.Clock.Now())
	if err := s.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) createReminderHandler(w http.ResponseWriter, r *http.Request) {
	var req api.NewReminder
	if err := s.readJSON(w, r, &req); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	if err := s.hub.Schedule.Submit(r.Context(), req); err != nil {
		s.submitErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
