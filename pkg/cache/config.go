package cache

import "time"

// RedisOption configures the Redis counter store.
type RedisOption func(*RedisConfig)

// RedisConfig holds the connection settings of a RedisCounter.
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	PoolSize    int
	DialTimeout time.Duration
	// Prefix namespaces every counter key, e.g. "stockcast:rl:1.2.3.4:29".
	Prefix string
}

func WithRedisAddr(addr string) RedisOption {
	return func(c *RedisConfig) { c.Addr = addr }
}

func WithRedisPassword(password string) RedisOption {
	return func(c *RedisConfig) { c.Password = password }
}

func WithRedisDB(db int) RedisOption {
	return func(c *RedisConfig) { c.DB = db }
}

// WithRedisPoolSize bounds concurrent connections; counters need few.
func WithRedisPoolSize(n int) RedisOption {
	return func(c *RedisConfig) { c.PoolSize = n }
}

// WithRedisDialTimeout bounds both dialing and the startup ping.
func WithRedisDialTimeout(d time.Duration) RedisOption {
	return func(c *RedisConfig) { c.DialTimeout = d }
}

func WithRedisPrefix(prefix string) RedisOption {
	return func(c *RedisConfig) { c.Prefix = prefix }
}

// MemoryOption configures the in-memory counter store.
type MemoryOption func(*MemoryConfig)

// MemoryConfig bounds the in-memory counter store.
type MemoryConfig struct {
	// MaxSize caps the number of keys. A new key over the cap first sweeps
	// expired keys, then evicts the one whose window ends first.
	MaxSize         int
	CleanupInterval time.Duration
}

func WithMemoryMaxSize(size int) MemoryOption {
	return func(c *MemoryConfig) { c.MaxSize = size }
}

func WithMemoryCleanup(interval time.Duration) MemoryOption {
	return func(c *MemoryConfig) { c.CleanupInterval = interval }
}
