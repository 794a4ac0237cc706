package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ayusman/mindfultouch/internal/store"
)

// EventsHandler handles HTTP requests for contact event resources.
type EventsHandler struct {
	store *store.Store
}

// NewEventsHandler creates a new EventsHandler with the given store.
func NewEventsHandler(s *store.Store) *EventsHandler {
	return &EventsHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests
// to the collection or item endpoint.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/events")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		h.list(w, r)
		return
	}

	h.get(w, r, path)
}

type eventResponse struct {
	ID             string `json:"id"`
	SessionID      string `json:"session_id"`
	Type           string `json:"type"`
	Region         string `json:"region"`
	TimestampMs    int64  `json:"timestamp_ms"`
	HeldDurationMs int64  `json:"held_duration_ms"`
	CreatedAt      string `json:"created_at"`
}

type listEventsResponse struct {
	Events []eventResponse `json:"events"`
}

// toEventResponse converts a store.Event to an eventResponse.
func toEventResponse(e *store.Event) eventResponse {
	return eventResponse{
		ID:             e.ID,
		SessionID:      e.SessionID,
		Type:           string(e.Type),
		Region:         e.Region,
		TimestampMs:    e.TimestampMs,
		HeldDurationMs: e.HeldDurationMs,
		CreatedAt:      e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// list handles GET /api/events with optional session, type, region and
// limit query parameters.
func (h *EventsHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.EventFilter{
		SessionID: q.Get("session"),
		Type:      store.EventType(q.Get("type")),
		Region:    q.Get("region"),
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		filter.Limit = limit
	}

	events, err := h.store.Events().List(filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}

	response := listEventsResponse{
		Events: make([]eventResponse, 0, len(events)),
	}
	for _, e := range events {
		response.Events = append(response.Events, toEventResponse(e))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/events/{id} and returns a single event.
func (h *EventsHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	event, err := h.store.Events().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Event not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get event")
		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(event))
}

// StatsHandler handles HTTP requests for daily event statistics.
type StatsHandler struct {
	store *store.Store
}

// NewStatsHandler creates a new StatsHandler with the given store.
func NewStatsHandler(s *store.Store) *StatsHandler {
	return &StatsHandler{store: s}
}

type dayStatsResponse struct {
	Day          string `json:"day"`
	Alerts       int    `json:"alerts"`
	MindfulStops int    `json:"mindful_stops"`
}

type statsResponse struct {
	Days []dayStatsResponse `json:"days"`
}

// ServeHTTP handles GET /api/stats with an optional days query parameter.
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid days")
			return
		}
		days = parsed
	}

	stats, err := h.store.Events().DailyStats(days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get stats")
		return
	}

	response := statsResponse{
		Days: make([]dayStatsResponse, 0, len(stats)),
	}
	for _, d := range stats {
		response.Days = append(response.Days, dayStatsResponse{
			Day:          d.Day,
			Alerts:       d.Alerts,
			MindfulStops: d.MindfulStops,
		})
	}

	writeJSON(w, http.StatusOK, response)
}
