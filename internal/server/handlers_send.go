package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shegge-stack/EmailGenerator/internal/delivery"
)

// sendEmailRequest is the request body for sending a generated email.
type sendEmailRequest struct {
	ProspectEmail string `json:"prospect_email"`
	ProspectName  string `json:"prospect_name"`
	CompanyName   string `json:"company_name"`
	SenderName    string `json:"sender_name"`
	Subject       string `json:"subject"`
	Body          string `json:"body"`
	TrackOpens    *bool  `json:"track_opens,omitempty"`
	TrackLinks    *bool  `json:"track_links,omitempty"`
}

// handleSendEmail delivers a generated email through Postmark.
func (s *Server) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	if s.sender == nil {
		s.errorResponse(w, http.StatusBadRequest,
			"Postmark not configured. Add POSTMARK_API_KEY to the environment.")
		return
	}

	var req sendEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	var missing []string
	for field, value := range map[string]string{
		"prospect_email": req.ProspectEmail,
		"prospect_name":  req.ProspectName,
		"subject":        req.Subject,
		"body":           req.Body,
		"sender_name":    req.SenderName,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		s.errorResponse(w, http.StatusBadRequest, "missing: "+strings.Join(missing, ", "))
		return
	}

	trackOpens := req.TrackOpens == nil || *req.TrackOpens
	trackLinks := req.TrackLinks == nil || *req.TrackLinks

	result, err := s.sender.Send(r.Context(), delivery.SendRequest{
		ToEmail:     req.ProspectEmail,
		ToName:      req.ProspectName,
		SenderName:  req.SenderName,
		Subject:     req.Subject,
		TextBody:    req.Body,
		CompanyName: req.CompanyName,
		TrackOpens:  trackOpens,
		TrackLinks:  trackLinks,
	})
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"result":  result,
	})
}
