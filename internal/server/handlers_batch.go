package server

import (
	"encoding/json"
	"net/http"

	"github.com/shegge-stack/EmailGenerator/internal/batch"
	"github.com/shegge-stack/EmailGenerator/internal/prompts"
	"github.com/shegge-stack/EmailGenerator/internal/types"
)

// batchRequest is the request body for server-side batch generation:
// a prospect list plus the per-run generation settings.
type batchRequest struct {
	Prospects []*types.Prospect `json:"prospects"`
	Mode      string            `json:"mode,omitempty"`
	Style     string            `json:"style,omitempty"`
	Steps     int               `json:"steps,omitempty"`
	Workers   int               `json:"workers,omitempty"`
}

// batchRowResult is one row of the final batch report.
type batchRowResult struct {
	RowIndex int                   `json:"row_index"`
	Prospect string                `json:"prospect"`
	Status   string                `json:"status"`
	Email    *types.EmailResult    `json:"email,omitempty"`
	Sequence *types.SequenceResult `json:"sequence,omitempty"`
	Error    string                `json:"error,omitempty"`
}

// handleBatch generates emails for a posted prospect list, streaming
// completion counts as Server-Sent Events and finishing with a per-row
// report. Row failures are reported, never aborted on.
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if len(req.Prospects) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "prospects list is empty")
		return
	}

	mode := types.ModeStandard
	if req.Mode != "" {
		var err error
		mode, err = types.ParseMode(req.Mode)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	style := req.Style
	if style == "" {
		style = s.app.Email.Style
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	outcomes := batch.Run(r.Context(), s.generator, req.Prospects, batch.Options{
		Mode:         mode,
		Workers:      req.Workers,
		RateLimitRPS: s.app.Batch.RateLimit,
		Style:        style,
		Tone:         s.app.Email.Tone,
		Length:       s.app.Email.Length,
		Steps:        req.Steps,
		OnProgress: func(completed, total int) {
			sse.WriteEvent("progress", map[string]int{ //nolint:errcheck
				"completed": completed,
				"total":     total,
			})
		},
	})

	rows := make([]batchRowResult, len(outcomes))
	for i, o := range outcomes {
		rows[i] = batchRowResult{
			RowIndex: o.RowIndex,
			Prospect: o.Prospect.DisplayName(),
			Status:   "success",
			Email:    o.Email,
			Sequence: o.Sequence,
		}
		if o.Err != nil {
			rows[i].Status = "failed"
			rows[i].Error = o.Err.Error()
		}
	}

	succeeded, failed := batch.Summary(outcomes)
	sse.WriteResult(map[string]any{
		"success":   failed < len(outcomes),
		"total":     len(outcomes),
		"succeeded": succeeded,
		"failed":    failed,
		"results":   rows,
	})
}

// handleTemplates lists the embedded prompt templates plus the
// placeholder names a custom dynamic template may reference.
func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	templates, err := prompts.Templates()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":      true,
		"templates":    templates,
		"placeholders": prompts.PlaceholderNames(),
	})
}
