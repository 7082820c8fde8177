package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"StockCast/pkg/cache"
)

func TestLimiterFixedWindow(t *testing.T) {
	store := cache.NewMemoryCounter()
	defer store.Close()

	l := New(store, 2, time.Minute)
	now := time.Date(2025, 3, 3, 10, 0, 10, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i, want := range []int{1, 0} {
		r, err := l.Allow(ctx, "10.0.0.1")
		if err != nil {
			t.Fatalf("allow: %v", err)
		}
		if !r.Allowed || r.Remaining != want {
			t.Fatalf("request %d: %+v", i, r)
		}
	}

	r, _ := l.Allow(ctx, "10.0.0.1")
	if r.Allowed {
		t.Fatal("third request should be denied")
	}
	if r.RetryAfter != 50*time.Second {
		t.Errorf("retry after = %v, want 50s", r.RetryAfter)
	}

	if r, _ := l.Allow(ctx, "10.0.0.2"); !r.Allowed {
		t.Error("other client should not share the window")
	}

	// next window resets the count
	now = now.Add(time.Minute)
	if r, _ := l.Allow(ctx, "10.0.0.1"); !r.Allowed {
		t.Error("new window should admit")
	}
}

func TestLimiterDisabled(t *testing.T) {
	l := New(nil, 0, time.Minute)
	for i := 0; i < 100; i++ {
		r, err := l.Allow(context.Background(), "x")
		if err != nil || !r.Allowed {
			t.Fatalf("disabled limiter denied: %+v %v", r, err)
		}
	}

	var nilLimiter *Limiter
	if nilLimiter.Enabled() {
		t.Error("nil limiter reports enabled")
	}
}

type failingCounter struct{}

func (failingCounter) Incr(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("down")
}
func (failingCounter) Close() error { return nil }

func TestLimiterStoreError(t *testing.T) {
	l := New(failingCounter{}, 1, time.Minute)
	if _, err := l.Allow(context.Background(), "x"); err == nil {
		t.Fatal("expected store error")
	}
}
