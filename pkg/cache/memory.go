package cache

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	value    int64
	expireAt time.Time
}

func (m *memoryItem) expired(now time.Time) bool {
	return !now.Before(m.expireAt)
}

// MemoryCounter implements Counter in process memory.
type MemoryCounter struct {
	data          map[string]*memoryItem
	mutex         sync.Mutex
	maxSize       int
	now           func() time.Time
	cleanupTicker *time.Ticker
	done          chan struct{}
	closeOnce     sync.Once
}

// NewMemoryCounter creates an in-memory counter store with a background sweeper.
func NewMemoryCounter(opts ...MemoryOption) *MemoryCounter {
	cfg := &MemoryConfig{
		MaxSize:         10000,
		CleanupInterval: time.Minute,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	mc := &MemoryCounter{
		data:          make(map[string]*memoryItem),
		maxSize:       cfg.MaxSize,
		now:           time.Now,
		cleanupTicker: time.NewTicker(cfg.CleanupInterval),
		done:          make(chan struct{}),
	}

	go mc.cleanupExpired()
	return mc
}

func (mc *MemoryCounter) Incr(_ context.Context, key string, ttl time.Duration) (int64, error) {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	now := mc.now()
	item, ok := mc.data[key]
	if !ok || item.expired(now) {
		if !ok && mc.maxSize > 0 && len(mc.data) >= mc.maxSize {
			mc.evictExpiredLocked(now)
			if len(mc.data) >= mc.maxSize {
				mc.evictOldestLocked()
			}
		}
		item = &memoryItem{expireAt: now.Add(ttl)}
		mc.data[key] = item
	}
	item.value++
	return item.value, nil
}

// Len returns the number of stored keys, expired or not.
func (mc *MemoryCounter) Len() int {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()
	return len(mc.data)
}

func (mc *MemoryCounter) Close() error {
	mc.closeOnce.Do(func() {
		mc.cleanupTicker.Stop()
		close(mc.done)
	})
	return nil
}

func (mc *MemoryCounter) cleanupExpired() {
	for {
		select {
		case <-mc.done:
			return
		case <-mc.cleanupTicker.C:
			mc.mutex.Lock()
			mc.evictExpiredLocked(mc.now())
			mc.mutex.Unlock()
		}
	}
}

func (mc *MemoryCounter) evictExpiredLocked(now time.Time) {
	for k, item := range mc.data {
		if item.expired(now) {
			delete(mc.data, k)
		}
	}
}

// evictOldestLocked drops the key whose window ends first.
func (mc *MemoryCounter) evictOldestLocked() {
	var (
		oldest string
		at     time.Time
		found  bool
	)
	for k, item := range mc.data {
		if !found || item.expireAt.Before(at) {
			oldest, at, found = k, item.expireAt, true
		}
	}
	if found {
		delete(mc.data, oldest)
	}
}
