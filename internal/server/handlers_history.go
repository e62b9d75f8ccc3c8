package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/shegge-stack/EmailGenerator/internal/db"
)

// handleListHistory lists recent generations. Filters: company, mode,
// status, limit.
func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "history store not configured (set DATABASE_URL)")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	generations, err := s.store.ListGenerations(r.Context(), db.GenerationFilters{
		Company: r.URL.Query().Get("company"),
		Mode:    r.URL.Query().Get("mode"),
		Status:  r.URL.Query().Get("status"),
		Limit:   limit,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":     true,
		"generations": generations,
	})
}

// handleGetHistory returns one generation by id.
func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "history store not configured (set DATABASE_URL)")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid generation id")
		return
	}

	generation, err := s.store.GetGeneration(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if generation == nil {
		s.errorResponse(w, http.StatusNotFound, "generation not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":    true,
		"generation": generation,
	})
}

// handleEmailPerformance returns the tracking events recorded for one
// sent message.
func (s *Server) handleEmailPerformance(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "history store not configured (set DATABASE_URL)")
		return
	}

	messageID := r.PathValue("message_id")
	events, err := s.store.ListTrackingEvents(r.Context(), messageID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	opens, clicks := 0, 0
	for _, e := range events {
		switch e.Event {
		case "open":
			opens++
		case "click":
			clicks++
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":    true,
		"message_id": messageID,
		"opens":      opens,
		"clicks":     clicks,
		"events":     events,
	})
}
