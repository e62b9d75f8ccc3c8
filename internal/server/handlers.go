package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/shegge-stack/EmailGenerator/internal/db"
	"github.com/shegge-stack/EmailGenerator/internal/outreach"
	"github.com/shegge-stack/EmailGenerator/internal/prompts"
	"github.com/shegge-stack/EmailGenerator/internal/quality"
	"github.com/shegge-stack/EmailGenerator/internal/types"
)

// generateRequest is the request body for the generation endpoints: a
// flat prospect record plus generation settings.
type generateRequest struct {
	types.Prospect

	// Mode selects standard or enhanced for single emails; sequence
	// generation has its own endpoint.
	Mode  string `json:"mode,omitempty"`
	Style string `json:"style,omitempty"`
	Steps int    `json:"steps,omitempty"`
}

// options builds the generation options from the request plus config
// defaults.
func (req *generateRequest) options(s *Server) outreach.Options {
	style := req.Style
	if style == "" {
		style = s.app.Email.Style
	}
	return outreach.Options{
		Style:  style,
		Tone:   s.app.Email.Tone,
		Length: s.app.Email.Length,
		Steps:  req.Steps,
		Quiet:  true,
	}
}

func (s *Server) decodeGenerateRequest(w http.ResponseWriter, r *http.Request) (*generateRequest, bool) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return nil, false
	}
	return &req, true
}

// handleGenerateEmail generates one email for the posted prospect.
func (s *Server) handleGenerateEmail(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeGenerateRequest(w, r)
	if !ok {
		return
	}

	mode := types.ModeEnhanced
	if req.Mode != "" {
		var err error
		mode, err = types.ParseMode(req.Mode)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if mode == types.ModeSequence {
		s.errorResponse(w, http.StatusBadRequest, "use /api/generate-sequence for sequence mode")
		return
	}

	opts := req.options(s)
	opts.Mode = mode

	result, err := s.generator.GenerateEmail(r.Context(), &req.Prospect, opts)
	s.recordGeneration(r, &req.Prospect, string(mode), opts.Style, result, err)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":          true,
		"email":            result,
		"prospect":         fmt.Sprintf("%s at %s", req.Prospect.DisplayName(), req.Prospect.CompanyName),
		"model":            s.modelName,
		"postmark_enabled": s.sender != nil,
	})
}

// handleGenerateEmailStream generates one email while streaming pipeline
// progress as Server-Sent Events.
func (s *Server) handleGenerateEmailStream(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeGenerateRequest(w, r)
	if !ok {
		return
	}

	mode := types.ModeEnhanced
	if req.Mode != "" {
		var err error
		mode, err = types.ParseMode(req.Mode)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts := req.options(s)
	opts.Mode = mode
	opts.OnProgress = func(event outreach.ProgressEvent) {
		sse.WriteProgress(event)
	}

	result, err := s.generator.GenerateEmail(r.Context(), &req.Prospect, opts)
	s.recordGeneration(r, &req.Prospect, string(mode), opts.Style, result, err)
	if err != nil {
		sse.WriteError(err.Error())
		return
	}
	sse.WriteResult(result)
}

// handleGenerateSequence generates a multi-step sequence for the posted
// prospect.
func (s *Server) handleGenerateSequence(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeGenerateRequest(w, r)
	if !ok {
		return
	}

	opts := req.options(s)
	result, err := s.generator.GenerateSequence(r.Context(), &req.Prospect, opts)

	var firstSubject *types.EmailResult
	if result != nil && len(result.Steps) > 0 {
		firstSubject = &types.EmailResult{Subject: result.Steps[0].Subject}
	}
	s.recordGeneration(r, &req.Prospect, string(types.ModeSequence), opts.Style, firstSubject, err)

	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":  true,
		"sequence": result,
		"prospect": fmt.Sprintf("%s at %s", req.Prospect.DisplayName(), req.Prospect.CompanyName),
		"model":    s.modelName,
	})
}

// validateEmailRequest is the request body for content validation.
type validateEmailRequest struct {
	Subject string `json:"subject,omitempty"`
	Email   string `json:"email"`
}

// handleValidateEmail runs the quality heuristics over posted email
// content without generating anything.
func (s *Server) handleValidateEmail(w http.ResponseWriter, r *http.Request) {
	var req validateEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if req.Email == "" {
		s.errorResponse(w, http.StatusBadRequest, "email content is required")
		return
	}

	analysis := quality.Analyze(req.Subject, req.Email, nil)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":    true,
		"validation": analysis,
	})
}

// handleEmailStyles lists the available writing styles.
func (s *Server) handleEmailStyles(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"styles":  prompts.Styles(),
		"default": s.app.Email.Style,
	})
}

// handleModels reports the active provider and its configured models.
func (s *Server) handleModels(w http.ResponseWriter, _ *http.Request) {
	active := s.app.ActiveProvider()
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":          true,
		"provider":         s.provider,
		"model":            s.modelName,
		"available_models": active.AvailableModels,
	})
}

// recordGeneration writes a history row when the store is configured.
// History is best-effort; failures are logged, never surfaced.
func (s *Server) recordGeneration(r *http.Request, prospect *types.Prospect, mode, style string, result *types.EmailResult, genErr error) {
	status := db.StatusSucceeded
	subject := ""
	if genErr != nil {
		status = db.StatusFailed
	} else if result != nil {
		subject = result.Subject
	}

	_, err := s.store.RecordGeneration(r.Context(), db.Generation{
		ProspectName: prospect.DisplayName(),
		CompanyName:  prospect.CompanyName,
		Mode:         mode,
		Style:        style,
		Model:        s.modelName,
		Provider:     s.provider,
		Status:       status,
		Subject:      subject,
	})
	if err != nil {
		log.Printf("warning: failed to record generation history: %v", err)
	}
}
