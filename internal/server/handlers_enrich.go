package server

import (
	"encoding/json"
	"net/http"
)

// enrichRequest is the request body for LinkedIn enrichment.
type enrichRequest struct {
	LinkedInURL string `json:"linkedin_url"`
}

// handleEnrichLinkedIn enriches prospect data from a LinkedIn profile
// URL using URL parsing and the Apollo people-match API. The profile
// page itself is never fetched.
func (s *Server) handleEnrichLinkedIn(w http.ResponseWriter, r *http.Request) {
	if s.enricher == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "enrichment not configured")
		return
	}

	var req enrichRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if req.LinkedInURL == "" {
		s.errorResponse(w, http.StatusBadRequest, "LinkedIn URL is required")
		return
	}

	enrichment, err := s.enricher.EnrichProfile(r.Context(), req.LinkedInURL)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	// Partial enrichment still helps; the caller fills the rest by hand.
	complete := enrichment.FirstName != "" && enrichment.LastName != "" && enrichment.CompanyName != ""
	message := "Data enriched successfully"
	if !complete {
		message = "Manual input required"
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": complete,
		"data":    enrichment,
		"source":  enrichment.Source,
		"message": message,
	})
}
