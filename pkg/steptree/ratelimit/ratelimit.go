// Package ratelimit provides a per-user token bucket limiter with
// free/pro tiers, used to throttle expansion requests.
package ratelimit

import (
	"sync"
	"time"
)

// Tier selects the request budget for a user.
type Tier string

// Supported tiers.
const (
	TierFree Tier = "free"
	TierPro  Tier = "pro"
)

// Config holds the per-tier budgets.
type Config struct {
	// FreeLimit is the free-tier budget per window.
	FreeLimit int

	// ProLimit is the pro-tier budget per window.
	ProLimit int

	// Window is the refill period for a full budget.
	Window time.Duration
}

// DefaultConfig matches the backend's defaults: 5 free / 50 pro per minute.
func DefaultConfig() Config {
	return Config{
		FreeLimit: 5,
		ProLimit:  50,
		Window:    time.Minute,
	}
}

// Decision is the outcome of one rate limit check.
type Decision struct {
	// Allowed is true if the request may proceed.
	Allowed bool

	// Remaining is the whole number of tokens left after this check.
	Remaining int

	// ResetIn is how long until the next token is available.
	// Zero when tokens remain.
	ResetIn time.Duration
}

// Limiter is an in-memory token bucket limiter keyed by user ID.
// Tokens refill gradually: a full budget refills over one window.
// Limiter is safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	cfg     Config
	buckets map[string]*bucket
	now     func() time.Time
}

type bucket struct {
	tokens float64
	last   time.Time
}

// New creates a limiter with the given config.
// Zero or negative config fields fall back to DefaultConfig.
func New(cfg Config) *Limiter {
	d := DefaultConfig()
	if cfg.FreeLimit <= 0 {
		cfg.FreeLimit = d.FreeLimit
	}
	if cfg.ProLimit <= 0 {
		cfg.ProLimit = d.ProLimit
	}
	if cfg.Window <= 0 {
		cfg.Window = d.Window
	}
	return &Limiter{
		cfg:     cfg,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// limitForTier returns the budget for a tier; unknown tiers get the
// free-tier budget.
func (l *Limiter) limitForTier(tier Tier) int {
	if tier == TierPro {
		return l.cfg.ProLimit
	}
	return l.cfg.FreeLimit
}

// Allow checks and consumes one token for the user.
func (l *Limiter) Allow(userID string, tier Tier) Decision {
	limit := float64(l.limitForTier(tier))

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[userID]
	if !ok {
		b = &bucket{tokens: limit, last: now}
		l.buckets[userID] = b
	}

	// Gradual refill: a full budget refills over one window
	elapsed := now.Sub(b.last).Seconds()
	refill := elapsed * limit / l.cfg.Window.Seconds()
	b.tokens = min(limit, b.tokens+refill)
	b.last = now

	d := Decision{}
	if b.tokens >= 1 {
		b.tokens--
		d.Allowed = true
	}
	d.Remaining = int(b.tokens)
	if b.tokens < 1 {
		secondsPerToken := l.cfg.Window.Seconds() / limit
		d.ResetIn = time.Duration((1 - b.tokens) * secondsPerToken * float64(time.Second))
	}
	return d
}

// Quota reports the user's current budget without consuming a token.
func (l *Limiter) Quota(userID string, tier Tier) Decision {
	limit := float64(l.limitForTier(tier))

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[userID]
	if !ok {
		return Decision{Allowed: true, Remaining: int(limit)}
	}

	elapsed := now.Sub(b.last).Seconds()
	tokens := min(limit, b.tokens+elapsed*limit/l.cfg.Window.Seconds())

	d := Decision{
		Allowed:   tokens >= 1,
		Remaining: int(tokens),
	}
	if tokens < 1 {
		secondsPerToken := l.cfg.Window.Seconds() / limit
		d.ResetIn = time.Duration((1 - tokens) * secondsPerToken * float64(time.Second))
	}
	return d
}

// Reset clears the user's bucket, restoring a full budget.
func (l *Limiter) Reset(userID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.buckets, userID)
}
