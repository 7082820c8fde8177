package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"StockCast/pkg/logger"

	"gopkg.in/yaml.v3"
)

// Price sources.
const (
	SourcePolygon    = "polygon"
	SourceClickHouse = "clickhouse"
)

// Rate-limit counter backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Host            string        `yaml:"host"`
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		SlowThreshold   time.Duration `yaml:"slow_threshold"`
		CORS            bool          `yaml:"cors"`
		// TrustedProxies lists CIDRs whose X-Forwarded-For is honoured.
		// Empty means the socket peer is the client.
		TrustedProxies  []string      `yaml:"trusted_proxies"`
	} `yaml:"server"`
	Metrics struct {
		Disabled bool `yaml:"disabled"`
	} `yaml:"metrics"`
	Log    logger.Config `yaml:"log"`
	Source string        `yaml:"source"`
	Polygon struct {
		BaseURL string        `yaml:"base_url"`
		APIKey  string        `yaml:"api_key"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"polygon"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		Table            string        `yaml:"table"`
		UseHTTP          bool          `yaml:"use_http"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Fetch struct {
		Window string `yaml:"window"`
	} `yaml:"fetch"`
	Forecast struct {
		Horizon int   `yaml:"horizon"`
		Seed    int64 `yaml:"seed"`
		Trees   int   `yaml:"trees"`
		// Exchange MIC used for future session labels.
		Calendar string `yaml:"calendar"`
	} `yaml:"forecast"`
	RateLimit struct {
		Requests int           `yaml:"requests"`
		Window   time.Duration `yaml:"window"`
		Backend  string        `yaml:"backend"`
	} `yaml:"ratelimit"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix"`
	} `yaml:"redis"`
	Companies map[string]Company `yaml:"companies"`
}

// Company is a directory entry keyed by ticker.
type Company struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Default returns a configuration usable without a file.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	c, err := read(path)
	if err != nil {
		return nil, err
	}
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

func read(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// An empty path starts from built-in defaults.
func LoadWithEnv(path string) (*Config, error) {
	c := &Config{}
	if path != "" {
		var err error
		if c, err = read(path); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("POLYGON_API_KEY"); v != "" {
		c.Polygon.APIKey = v
	}
	if v := os.Getenv("SOURCE"); v != "" {
		c.Source = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
		c.RateLimit.Backend = BackendRedis
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("HTTP_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("FORECAST_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("FORECAST_SEED: %w", err)
		}
		c.Forecast.Seed = seed
	}

	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	// a forecast includes one provider round trip
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 45 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Server.SlowThreshold == 0 {
		c.Server.SlowThreshold = 2 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Source == "" {
		c.Source = SourcePolygon
	}
	if c.Polygon.BaseURL == "" {
		c.Polygon.BaseURL = "https://api.polygon.io"
	}
	if c.Polygon.Timeout == 0 {
		c.Polygon.Timeout = 30 * time.Second
	}
	if c.ClickHouse.Port == 0 {
		c.ClickHouse.Port = 9000
	}
	if c.ClickHouse.Database == "" {
		c.ClickHouse.Database = "default"
	}
	if c.ClickHouse.Table == "" {
		c.ClickHouse.Table = "candles_1d"
	}
	if c.Fetch.Window == "" {
		c.Fetch.Window = "fixed30"
	}
	if c.Forecast.Horizon == 0 {
		c.Forecast.Horizon = 7
	}
	if c.Forecast.Trees == 0 {
		c.Forecast.Trees = 100
	}
	if c.Forecast.Calendar == "" {
		c.Forecast.Calendar = "XNYS"
	}
	if c.RateLimit.Window == 0 {
		c.RateLimit.Window = time.Minute
	}
	if c.RateLimit.Backend == "" {
		c.RateLimit.Backend = BackendMemory
	}
	if c.Redis.Prefix == "" {
		c.Redis.Prefix = "stockcast"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	for _, cidr := range c.Server.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			return fmt.Errorf("server.trusted_proxies: %w", err)
		}
	}
	switch c.Source {
	case SourcePolygon:
		if c.Polygon.BaseURL == "" {
			return fmt.Errorf("polygon.base_url is required")
		}
	case SourceClickHouse:
		if c.ClickHouse.Host == "" {
			return fmt.Errorf("clickhouse.host is required when source is clickhouse")
		}
	default:
		return fmt.Errorf("source must be 'polygon' or 'clickhouse', got '%s'", c.Source)
	}
	if c.Fetch.Window != "fixed30" && c.Fetch.Window != "calendar_month" {
		return fmt.Errorf("fetch.window must be 'fixed30' or 'calendar_month', got '%s'", c.Fetch.Window)
	}
	if c.Forecast.Horizon < 1 {
		return fmt.Errorf("forecast.horizon must be positive")
	}
	if c.Forecast.Trees < 1 {
		return fmt.Errorf("forecast.trees must be positive")
	}
	if c.RateLimit.Requests < 0 {
		return fmt.Errorf("ratelimit.requests cannot be negative")
	}
	switch c.RateLimit.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required when ratelimit.backend is redis")
		}
	default:
		return fmt.Errorf("ratelimit.backend must be 'memory' or 'redis', got '%s'", c.RateLimit.Backend)
	}
	return nil
}
