package cache

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMemoryCounterIncr(t *testing.T) {
	mc := NewMemoryCounter()
	defer mc.Close()
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := mc.Incr(ctx, "k", time.Minute)
		if err != nil {
			t.Fatalf("incr: %v", err)
		}
		if got != want {
			t.Fatalf("incr = %d, want %d", got, want)
		}
	}
	if got, _ := mc.Incr(ctx, "other", time.Minute); got != 1 {
		t.Errorf("independent key = %d, want 1", got)
	}
}

func TestMemoryCounterExpiry(t *testing.T) {
	mc := NewMemoryCounter()
	defer mc.Close()
	ctx := context.Background()

	now := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	mc.now = func() time.Time { return now }

	mc.Incr(ctx, "k", time.Minute)
	mc.Incr(ctx, "k", time.Minute)

	now = now.Add(59 * time.Second)
	if got, _ := mc.Incr(ctx, "k", time.Minute); got != 3 {
		t.Fatalf("before expiry = %d, want 3", got)
	}

	now = now.Add(time.Second)
	if got, _ := mc.Incr(ctx, "k", time.Minute); got != 1 {
		t.Fatalf("after expiry = %d, want 1", got)
	}
}

func TestMemoryCounterEvictsExpiredWhenFull(t *testing.T) {
	mc := NewMemoryCounter(WithMemoryMaxSize(2))
	defer mc.Close()
	ctx := context.Background()

	now := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	mc.now = func() time.Time { return now }

	mc.Incr(ctx, "a", time.Second)
	mc.Incr(ctx, "b", time.Second)
	now = now.Add(2 * time.Second)
	mc.Incr(ctx, "c", time.Second)

	if n := mc.Len(); n != 1 {
		t.Fatalf("len = %d, want 1 after evicting expired keys", n)
	}
}

func TestMemoryCounterEvictsOldestWhenFull(t *testing.T) {
	mc := NewMemoryCounter(WithMemoryMaxSize(2))
	defer mc.Close()
	ctx := context.Background()

	now := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	mc.now = func() time.Time { return now }

	mc.Incr(ctx, "a", time.Minute)
	now = now.Add(time.Second)
	mc.Incr(ctx, "b", time.Minute)
	mc.Incr(ctx, "b", time.Minute)
	now = now.Add(time.Second)
	mc.Incr(ctx, "c", time.Minute)

	if n := mc.Len(); n != 2 {
		t.Fatalf("len = %d, want 2", n)
	}
	if v, _ := mc.Incr(ctx, "b", time.Minute); v != 3 {
		t.Errorf("b = %d, want 3 (b should survive)", v)
	}
	mc.mutex.Lock()
	_, hasA := mc.data["a"]
	mc.mutex.Unlock()
	if hasA {
		t.Error("oldest key a was not evicted")
	}
}

func TestMemoryCounterConcurrent(t *testing.T) {
	mc := NewMemoryCounter()
	defer mc.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mc.Incr(ctx, "k", time.Minute)
		}()
	}
	wg.Wait()

	if got, _ := mc.Incr(ctx, "k", time.Minute); got != 51 {
		t.Fatalf("count = %d, want 51", got)
	}
}

func TestMemoryCounterCloseIdempotent(t *testing.T) {
	mc := NewMemoryCounter()
	if err := mc.Close(); err != nil {
		t.Fatal(err)
	}
	if err := mc.Close(); err != nil {
		t.Fatal(err)
	}
}
