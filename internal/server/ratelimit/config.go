package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds limiter settings, normally loaded from the environment.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	Rules           []Rule
}

// Rule is a per-endpoint budget: Limit requests per Window, with Burst
// available immediately. A Limit of zero or less means unlimited. A
// Path ending in "/" matches by prefix.
type Rule struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// LoadConfig reads limiter settings from RATE_LIMIT_* environment
// variables, falling back to the built-in endpoint budgets.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: envDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       splitClientList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       splitClientList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		Rules:           DefaultRules(),
	}
}

// DefaultRules budgets the expensive endpoints. Generation spends
// model tokens (batch multiplies that per row), sends count against
// the Postmark quota, and enrichment hits the Apollo API. Reads fall
// through to the default limit.
func DefaultRules() []Rule {
	return []Rule{
		{Path: "/api/generate-email", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/api/generate-email/stream", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/api/generate-sequence", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/api/batch", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},

		{Path: "/api/send-email", Method: "POST", Limit: 60, Window: time.Hour, Burst: 10},
		{Path: "/api/enrich-linkedin", Method: "POST", Limit: 120, Window: time.Hour, Burst: 10},
	}
}

// rule resolves the budget for one request. Health checks and tracking
// URLs are never throttled: tracking links are opened by mail clients,
// not API callers, and a dropped request there loses the event.
func (c *Config) rule(path, method string) Rule {
	if method == "GET" && (path == "/health" || strings.HasPrefix(path, "/track/")) {
		return Rule{}
	}

	for _, r := range c.Rules {
		if r.Method == method && r.Path == path {
			return r
		}
	}
	for _, r := range c.Rules {
		if r.Method == method && strings.HasSuffix(r.Path, "/") && strings.HasPrefix(path, r.Path) {
			return r
		}
	}

	return Rule{Limit: c.DefaultLimit, Window: c.DefaultWindow, Burst: c.DefaultLimit}
}

func envBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

// splitClientList parses a comma-separated address list into a set.
func splitClientList(list string) map[string]bool {
	set := make(map[string]bool)
	for _, addr := range strings.Split(list, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			set[addr] = true
		}
	}
	return set
}
