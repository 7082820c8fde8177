package cache

import (
	"context"
	"time"
)

// Counter is a store of expiring integer counters.
type Counter interface {
	// Incr increments key and returns the new value. The first increment
	// of a key starts its ttl; later increments do not extend it.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Close() error
}
