// Package ratelimit throttles API clients per endpoint. Generation
// calls spend model tokens and sends count against the Postmark quota,
// so each client gets its own per-endpoint budget.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info reports the outcome of one limit decision. The server copies it
// into the X-RateLimit response headers.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// idleEviction is how long an unused client bucket survives before the
// janitor drops it.
const idleEviction = time.Hour

// entry pairs a client's bucket with its last use.
type entry struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per client+method+path and answers
// allow/deny for each request.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	config  *Config

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLimiter builds a limiter and, when limiting is enabled, starts
// the janitor that evicts idle buckets.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		entries: make(map[string]*entry),
		config:  config,
		stop:    make(chan struct{}),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		go l.janitor(config.CleanupInterval)
	}
	return l
}

// Allow decides whether clientID may hit path with method right now.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	rule := l.config.rule(path, method)
	if rule.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	refill := rate.Limit(float64(rule.Limit) / rule.Window.Seconds())
	burst := rule.Burst
	if burst <= 0 {
		burst = rule.Limit
	}

	now := time.Now()
	key := clientID + "|" + method + " " + path

	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{bucket: rate.NewLimiter(refill, burst)}
		l.entries[key] = e
	}
	e.lastSeen = now
	allowed := e.bucket.AllowN(now, 1)
	tokens := e.bucket.TokensAt(now)
	l.mu.Unlock()

	if tokens < 0 {
		tokens = 0
	}
	info := Info{
		Allowed:   allowed,
		Limit:     rule.Limit,
		Remaining: int(tokens),
		ResetTime: now.Add(refillWait(float64(burst)-tokens, refill)),
	}
	if !allowed {
		info.RetryAfter = refillWait(1-tokens, refill)
	}
	return allowed, info
}

// refillWait converts a token deficit into wall time at the bucket's
// refill rate.
func refillWait(tokens float64, refill rate.Limit) time.Duration {
	if tokens <= 0 || refill <= 0 {
		return 0
	}
	return time.Duration(tokens / float64(refill) * float64(time.Second))
}

// janitor periodically drops buckets that have sat idle past the
// eviction window, so long-running servers do not accumulate one entry
// per address ever seen.
func (l *Limiter) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-idleEviction)
			l.mu.Lock()
			for key, e := range l.entries {
				if e.lastSeen.Before(cutoff) {
					delete(l.entries, key)
				}
			}
			l.mu.Unlock()
		case <-l.stop:
			return
		}
	}
}

// Stop terminates the janitor goroutine. Safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
