package server

import (
	"encoding/base64"
	"log"
	"net/http"

	"github.com/shegge-stack/EmailGenerator/internal/delivery"
)

// trackingPixel is a 1x1 transparent GIF.
var trackingPixel, _ = base64.StdEncoding.DecodeString(
	"R0lGODlhAQABAIAAAAAAAP///yH5BAEAAAAALAAAAAABAAEAAAIBRAA7")

// validateTrackingToken parses and checks a tracking token for the
// expected event type. Invalid tokens are logged, not surfaced: the
// tracking endpoints respond the same way either way so probing them
// reveals nothing.
func (s *Server) validateTrackingToken(token, wantEvent string) *delivery.TrackingClaims {
	if s.tokens == nil {
		return nil
	}
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		log.Printf("[tracking] rejected token: %v", err)
		return nil
	}
	if claims.Event != wantEvent {
		log.Printf("[tracking] token event mismatch: got %q, want %q", claims.Event, wantEvent)
		return nil
	}
	return claims
}

// handleTrackOpen records an open event and returns the tracking pixel.
// The pixel is always returned, valid token or not.
func (s *Server) handleTrackOpen(w http.ResponseWriter, r *http.Request) {
	if claims := s.validateTrackingToken(r.PathValue("token"), delivery.EventOpen); claims != nil {
		if err := s.store.RecordTrackingEvent(r.Context(), claims.MessageID, claims.Event, r.UserAgent()); err != nil {
			log.Printf("[tracking] failed to record open: %v", err)
		}
	}

	w.Header().Set("Content-Type", "image/gif")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(trackingPixel)
}

// handleTrackClick records a click event and redirects to the original
// target URL carried inside the signed token.
func (s *Server) handleTrackClick(w http.ResponseWriter, r *http.Request) {
	claims := s.validateTrackingToken(r.PathValue("token"), delivery.EventClick)
	if claims == nil || claims.TargetURL == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if err := s.store.RecordTrackingEvent(r.Context(), claims.MessageID, claims.Event, r.UserAgent()); err != nil {
		log.Printf("[tracking] failed to record click: %v", err)
	}

	http.Redirect(w, r, claims.TargetURL, http.StatusFound)
}

// handleUnsubscribe records an unsubscribe event and confirms it.
func (s *Server) handleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	claims := s.validateTrackingToken(r.PathValue("token"), delivery.EventUnsubscribe)
	if claims == nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid unsubscribe link")
		return
	}

	if err := s.store.RecordTrackingEvent(r.Context(), claims.MessageID, claims.Event, r.UserAgent()); err != nil {
		log.Printf("[tracking] failed to record unsubscribe: %v", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte("<html><body><p>You have been unsubscribed. Sorry to see you go.</p></body></html>"))
}
