package ratelimit

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "")

	cfg := LoadConfig()
	if !cfg.Enabled {
		t.Fatal("limiter should be enabled by default")
	}
	if cfg.DefaultLimit != 1000 || cfg.DefaultWindow != time.Minute {
		t.Errorf("defaults = %d/%v, want 1000/%v", cfg.DefaultLimit, cfg.DefaultWindow, time.Minute)
	}
	if len(cfg.Rules) == 0 {
		t.Error("default rules are missing")
	}
}

func TestLoadConfigDisabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	if cfg := LoadConfig(); cfg.Enabled {
		t.Error("RATE_LIMIT_ENABLED=false should disable the limiter")
	}
}

func TestLoadConfigOverridesAndLists(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "50")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")
	t.Setenv("RATE_LIMIT_BLACKLIST", "192.168.1.9")

	cfg := LoadConfig()
	if cfg.DefaultLimit != 50 || cfg.DefaultWindow != 30*time.Second {
		t.Errorf("overrides = %d/%v, want 50/30s", cfg.DefaultLimit, cfg.DefaultWindow)
	}
	if !cfg.Whitelist["10.0.0.1"] || !cfg.Whitelist["10.0.0.2"] {
		t.Errorf("Whitelist = %v, want both addresses", cfg.Whitelist)
	}
	if !cfg.Blacklist["192.168.1.9"] {
		t.Errorf("Blacklist = %v, want 192.168.1.9", cfg.Blacklist)
	}
}

func TestRuleLookup(t *testing.T) {
	cfg := &Config{
		Enabled:       true,
		DefaultLimit:  200,
		DefaultWindow: time.Minute,
		Rules: []Rule{
			{Path: "/api/generate-email", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
			{Path: "/api/admin/", Method: "POST", Limit: 5, Window: time.Hour, Burst: 1},
		},
	}

	tests := []struct {
		name      string
		path      string
		method    string
		wantLimit int
	}{
		{"exact match", "/api/generate-email", "POST", 30},
		{"prefix match", "/api/admin/reload", "POST", 5},
		{"method mismatch falls back", "/api/generate-email", "GET", 200},
		{"unknown path falls back", "/api/email-styles", "GET", 200},
		{"health is unlimited", "/health", "GET", 0},
		{"tracking is unlimited", "/track/click/tok", "GET", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.rule(tt.path, tt.method); got.Limit != tt.wantLimit {
				t.Errorf("rule(%s %s).Limit = %d, want %d", tt.method, tt.path, got.Limit, tt.wantLimit)
			}
		})
	}
}

func TestDefaultRulesCoverExpensiveEndpoints(t *testing.T) {
	byPath := make(map[string]Rule)
	for _, r := range DefaultRules() {
		byPath[r.Path] = r
	}
	for _, path := range []string{
		"/api/generate-email",
		"/api/generate-sequence",
		"/api/batch",
		"/api/send-email",
		"/api/enrich-linkedin",
	} {
		r, ok := byPath[path]
		if !ok {
			t.Errorf("no default rule for %s", path)
			continue
		}
		if r.Limit <= 0 || r.Window <= 0 {
			t.Errorf("rule for %s = %+v, want positive limit and window", path, r)
		}
	}
}
