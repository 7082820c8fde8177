package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"StockCast/pkg/cache"
)

// Result describes one admission check.
type Result struct {
	Allowed   bool
	Remaining int
	// RetryAfter is the time left in the current window when denied.
	RetryAfter time.Duration
}

// Limiter is a fixed-window request counter keyed by client.
// A limit of zero admits everything.
type Limiter struct {
	store  cache.Counter
	limit  int
	window time.Duration
	now    func() time.Time
}

func New(store cache.Counter, limit int, window time.Duration) *Limiter {
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{store: store, limit: limit, window: window, now: time.Now}
}

// Enabled reports whether requests are counted at all.
func (l *Limiter) Enabled() bool { return l != nil && l.limit > 0 && l.store != nil }

// Allow counts one request for key in the current window.
func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	if !l.Enabled() {
		return Result{Allowed: true, Remaining: -1}, nil
	}

	now := l.now()
	slot := now.UnixNano() / int64(l.window)
	windowEnd := time.Unix(0, (slot+1)*int64(l.window))

	n, err := l.store.Incr(ctx, "rl:"+key+":"+strconv.FormatInt(slot, 10), windowEnd.Sub(now))
	if err != nil {
		return Result{}, fmt.Errorf("ratelimit: %w", err)
	}

	if n > int64(l.limit) {
		return Result{Allowed: false, RetryAfter: windowEnd.Sub(now)}, nil
	}
	return Result{Allowed: true, Remaining: l.limit - int(n)}, nil
}
