package cache

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestRedisCounterKey(t *testing.T) {
	c := NewRedisCounterFromClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), "stockcast")
	defer c.Close()

	if got := c.Key("rl:1.2.3.4:7"); got != "stockcast:rl:1.2.3.4:7" {
		t.Fatalf("key = %q", got)
	}

	bare := NewRedisCounterFromClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), "")
	defer bare.Close()
	if got := bare.Key("x"); got != "x" {
		t.Fatalf("key = %q", got)
	}
}

func TestNewRedisCounterUnreachable(t *testing.T) {
	_, err := NewRedisCounter(
		WithRedisAddr("127.0.0.1:1"),
		WithRedisDialTimeout(200*time.Millisecond),
	)
	if err == nil {
		t.Fatal("expected ping error")
	}
}
