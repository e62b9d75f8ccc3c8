package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// hourConfig gives one endpoint a burst of 2 with negligible refill so
// tests can exhaust it deterministically.
func hourConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Rules: []Rule{
			{Path: "/api/generate-email", Method: "POST", Limit: 30, Window: time.Hour, Burst: 2},
		},
	}
}

func TestAllowBurstThenDeny(t *testing.T) {
	l := NewLimiter(hourConfig())
	defer l.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/api/generate-email", "POST")
		if !allowed {
			t.Fatalf("request %d within burst was denied", i+1)
		}
	}

	allowed, info := l.Allow("1.2.3.4", "/api/generate-email", "POST")
	if allowed {
		t.Fatal("request past burst was allowed")
	}
	if info.Limit != 30 {
		t.Errorf("Limit = %d, want 30", info.Limit)
	}
	if info.Remaining != 0 {
		t.Errorf("Remaining = %d, want 0", info.Remaining)
	}
	if info.RetryAfter <= 0 {
		t.Errorf("RetryAfter = %v, want positive", info.RetryAfter)
	}
	if !info.ResetTime.After(time.Now()) {
		t.Errorf("ResetTime = %v, want in the future", info.ResetTime)
	}
}

func TestAllowIsolatesClients(t *testing.T) {
	l := NewLimiter(hourConfig())
	defer l.Stop()

	for i := 0; i < 2; i++ {
		l.Allow("1.2.3.4", "/api/generate-email", "POST")
	}
	if allowed, _ := l.Allow("1.2.3.4", "/api/generate-email", "POST"); allowed {
		t.Fatal("exhausted client was allowed")
	}
	if allowed, _ := l.Allow("5.6.7.8", "/api/generate-email", "POST"); !allowed {
		t.Error("a different client shares the exhausted bucket")
	}
}

func TestAllowRefillsOverTime(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled: true,
		Rules: []Rule{
			// 100/s refill: a short sleep restores a full token.
			{Path: "/api/generate-email", Method: "POST", Limit: 100, Window: time.Second, Burst: 1},
		},
	})
	defer l.Stop()

	if allowed, _ := l.Allow("c", "/api/generate-email", "POST"); !allowed {
		t.Fatal("first request denied")
	}
	if allowed, _ := l.Allow("c", "/api/generate-email", "POST"); allowed {
		t.Fatal("second immediate request allowed")
	}

	time.Sleep(50 * time.Millisecond)
	if allowed, _ := l.Allow("c", "/api/generate-email", "POST"); !allowed {
		t.Error("bucket did not refill after waiting")
	}
}

func TestAllowDisabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		if allowed, _ := l.Allow("1.2.3.4", "/api/generate-email", "POST"); !allowed {
			t.Fatal("disabled limiter denied a request")
		}
	}
}

func TestAllowWhitelistAndBlacklist(t *testing.T) {
	cfg := hourConfig()
	cfg.Whitelist = map[string]bool{"10.0.0.1": true}
	cfg.Blacklist = map[string]bool{"10.0.0.2": true}
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 10; i++ {
		if allowed, _ := l.Allow("10.0.0.1", "/api/generate-email", "POST"); !allowed {
			t.Fatal("whitelisted client was denied")
		}
	}
	if allowed, _ := l.Allow("10.0.0.2", "/health", "GET"); allowed {
		t.Error("blacklisted client was allowed")
	}
}

func TestAllowUnlimitedEndpoints(t *testing.T) {
	l := NewLimiter(hourConfig())
	defer l.Stop()

	for i := 0; i < 50; i++ {
		if allowed, _ := l.Allow("1.2.3.4", "/health", "GET"); !allowed {
			t.Fatal("health check was throttled")
		}
		if allowed, _ := l.Allow("1.2.3.4", "/track/open/sometoken", "GET"); !allowed {
			t.Fatal("tracking pixel was throttled")
		}
	}
}

func TestAllowConcurrentHonorsBurst(t *testing.T) {
	l := NewLimiter(hourConfig())
	defer l.Stop()

	var allowedCount atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := l.Allow("1.2.3.4", "/api/generate-email", "POST"); allowed {
				allowedCount.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := allowedCount.Load(); got != 2 {
		t.Errorf("allowed %d concurrent requests, want burst of 2", got)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	l := NewLimiter(nil)
	l.Stop()
	l.Stop()
}
