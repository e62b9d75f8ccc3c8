// Package server provides the HTTP REST API for the outreach generator.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shegge-stack/EmailGenerator/internal/config"
	"github.com/shegge-stack/EmailGenerator/internal/db"
	"github.com/shegge-stack/EmailGenerator/internal/delivery"
	"github.com/shegge-stack/EmailGenerator/internal/enrich"
	"github.com/shegge-stack/EmailGenerator/internal/llm"
	"github.com/shegge-stack/EmailGenerator/internal/outreach"
	"github.com/shegge-stack/EmailGenerator/internal/server/middleware"
	"github.com/shegge-stack/EmailGenerator/internal/server/ratelimit"
)

//go:embed static
var staticFiles embed.FS

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	app         *config.Config
	generator   *outreach.Generator
	modelName   string
	provider    string
	store       *db.DB
	tokens      *delivery.TokenService
	sender      *delivery.Sender
	enricher    *enrich.Enricher
	rateLimiter *ratelimit.Limiter
}

// Config holds server configuration. Client is required; the delivery,
// enrichment, and history dependencies are optional and the matching
// endpoints report themselves unconfigured when absent.
type Config struct {
	Addr     string
	App      *config.Config
	Client   llm.Client
	Store    *db.DB
	Tokens   *delivery.TokenService
	Sender   *delivery.Sender
	Enricher *enrich.Enricher
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("model client is required")
	}
	if cfg.App == nil {
		app := config.DefaultConfig()
		cfg.App = &app
	}
	if cfg.Addr == "" {
		cfg.Addr = cfg.App.API.Addr
	}

	s := &Server{
		app:       cfg.App,
		generator: outreach.NewGenerator(cfg.Client),
		modelName: cfg.Client.Model(),
		provider:  cfg.App.ModelProvider,
		store:     cfg.Store,
		tokens:    cfg.Tokens,
		sender:    cfg.Sender,
		enricher:  cfg.Enricher,
	}

	// Initialize rate limiter
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	keyConfig, err := config.NewKeyConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create key config: %w", err)
	}
	auth := middleware.APIKeyAuth(keyConfig, cfg.App.API.KeyHash)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.router(auth)))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for streamed generations
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// router builds the route table. API routes require the key; the
// dashboard, health check, and tracking endpoints stay open (tracking
// links are followed by email clients that cannot present a key).
func (s *Server) router(auth func(http.Handler) http.Handler) http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("POST /api/generate-email", s.handleGenerateEmail)
	api.HandleFunc("POST /api/generate-email/stream", s.handleGenerateEmailStream)
	api.HandleFunc("POST /api/generate-sequence", s.handleGenerateSequence)
	api.HandleFunc("POST /api/batch", s.handleBatch)
	api.HandleFunc("POST /api/validate-email", s.handleValidateEmail)
	api.HandleFunc("GET /api/email-styles", s.handleEmailStyles)
	api.HandleFunc("GET /api/templates", s.handleTemplates)
	api.HandleFunc("GET /api/models", s.handleModels)
	api.HandleFunc("POST /api/enrich-linkedin", s.handleEnrichLinkedIn)
	api.HandleFunc("POST /api/send-email", s.handleSendEmail)
	api.HandleFunc("GET /api/history", s.handleListHistory)
	api.HandleFunc("GET /api/history/{id}", s.handleGetHistory)
	api.HandleFunc("GET /api/email-performance/{message_id}", s.handleEmailPerformance)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleDashboard)
	mux.HandleFunc("GET /track/open/{token}", s.handleTrackOpen)
	mux.HandleFunc("GET /track/click/{token}", s.handleTrackClick)
	mux.HandleFunc("GET /track/unsubscribe/{token}", s.handleUnsubscribe)
	mux.Handle("/api/", auth(api))

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	s.store.Close()
	log.Println("Server stopped")
	return nil
}

// Handler exposes the configured handler chain for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDashboard serves the embedded single-page dashboard.
func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	page, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "dashboard unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]any{"success": false, "error": message})
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
// In the future, this could use X-Forwarded-For header (only from trusted proxies).
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
