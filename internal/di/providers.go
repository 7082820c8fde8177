package di

import (
	"fmt"
	"time"

	"StockCast/internal/domain/models"
	"StockCast/internal/domain/repository"
	"StockCast/internal/handler/api"
	"StockCast/internal/handler/web"
	internalrepo "StockCast/internal/repository"
	"StockCast/internal/service/polygon"
	"StockCast/internal/service/ratelimit"
	"StockCast/internal/services/company"
	"StockCast/internal/services/regression"
	"StockCast/internal/usecase"
	"StockCast/pkg/cache"
	"StockCast/pkg/calendar"
	pkgch "StockCast/pkg/clickhouse"
	"StockCast/pkg/config"
	xhttp "StockCast/pkg/http"
	applogger "StockCast/pkg/logger"
	"StockCast/pkg/metrics"
	"StockCast/pkg/server"
	"StockCast/pkg/util"

	"github.com/prometheus/client_golang/prometheus"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics registers Prometheus collectors unless metrics are disabled.
func ProvideMetrics(cfg *config.Config) repository.Metrics {
	if cfg.Metrics.Disabled {
		return metrics.Nop{}
	}
	return metrics.New(prometheus.DefaultRegisterer)
}

// ProvideHTTPClient creates the outbound HTTP client.
func ProvideHTTPClient(cfg *config.Config) *xhttp.Client {
	return xhttp.NewClient(xhttp.WithTimeout(cfg.Polygon.Timeout))
}

// ProvideClickHouseClient creates a ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(4, 2),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvidePriceFetcher selects the configured price source.
func ProvidePriceFetcher(cfg *config.Config, hc *xhttp.Client, l *applogger.Logger) (repository.PriceFetcher, func(), error) {
	if l == nil {
		l = applogger.NewNop()
	}
	window, err := util.ParseWindowMode(cfg.Fetch.Window)
	if err != nil {
		return nil, nil, err
	}

	switch cfg.Source {
	case config.SourceClickHouse:
		ch, err := ProvideClickHouseClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		store, err := internalrepo.NewCHPriceStore(ch, cfg.ClickHouse.Table, window)
		if err != nil {
			_ = ch.Close()
			return nil, nil, err
		}
		store.SetLogger(l)
		cleanup := func() {
			if err := ch.Close(); err != nil {
				l.Warn("clickhouse close error", applogger.Error(err))
			}
		}
		return store, cleanup, nil
	case config.SourcePolygon, "":
		f := polygon.New(hc, cfg.Polygon.BaseURL, cfg.Polygon.APIKey,
			polygon.WithWindow(window),
			polygon.WithLogger(l),
		)
		return f, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown price source %q", cfg.Source)
	}
}

// ProvideSessions returns the exchange calendar used to label forecast days.
func ProvideSessions(cfg *config.Config) usecase.SessionCalendar {
	return calendar.New(cfg.Forecast.Calendar)
}

// ProvideRegistry returns the ordered model set.
func ProvideRegistry(cfg *config.Config) *regression.Registry {
	return regression.Default(regression.Options{
		Seed:  cfg.Forecast.Seed,
		Trees: cfg.Forecast.Trees,
	})
}

// ProvideForecastEngine creates the forecasting engine.
func ProvideForecastEngine(cfg *config.Config, reg *regression.Registry, sessions usecase.SessionCalendar, m repository.Metrics, l *applogger.Logger) *usecase.ForecastEngine {
	return usecase.NewForecastEngine(reg, cfg.Forecast.Horizon, sessions, m, l)
}

// ProvideDecisionPolicy creates the buy/sell policy.
func ProvideDecisionPolicy() *usecase.DecisionPolicy {
	return usecase.NewDecisionPolicy()
}

// ProvidePredictor creates the end-to-end prediction use case.
func ProvidePredictor(
	cfg *config.Config,
	f repository.PriceFetcher,
	e *usecase.ForecastEngine,
	p *usecase.DecisionPolicy,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.Predictor {
	uc := usecase.NewPredictor(f, e, p, m, l)
	// leave headroom under the server write timeout for rendering
	if d := cfg.Server.WriteTimeout - 5*time.Second; d > 0 {
		uc.SetTimeout(d)
	}
	return uc
}

// ProvideCompanyDirectory merges configured companies over the built-in set.
func ProvideCompanyDirectory(cfg *config.Config) *company.Directory {
	extra := make(map[string]models.Company, len(cfg.Companies))
	for ticker, c := range cfg.Companies {
		extra[ticker] = models.Company{Name: c.Name, Description: c.Description}
	}
	return company.NewDirectory(extra)
}

// ProvideCounterStore creates the rate-limit counter backend.
func ProvideCounterStore(cfg *config.Config, l *applogger.Logger) (cache.Counter, func(), error) {
	if l == nil {
		l = applogger.NewNop()
	}
	var store cache.Counter
	switch cfg.RateLimit.Backend {
	case config.BackendRedis:
		rc, err := cache.NewRedisCounter(
			cache.WithRedisAddr(cfg.Redis.Addr),
			cache.WithRedisPassword(cfg.Redis.Password),
			cache.WithRedisDB(cfg.Redis.DB),
			cache.WithRedisPrefix(cfg.Redis.Prefix),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("redis counter: %w", err)
		}
		store = rc
	default:
		store = cache.NewMemoryCounter()
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			l.Warn("counter store close error", applogger.Error(err))
		}
	}
	return store, cleanup, nil
}

// ProvideLimiter creates the per-client request limiter.
func ProvideLimiter(cfg *config.Config, store cache.Counter) *ratelimit.Limiter {
	return ratelimit.New(store, cfg.RateLimit.Requests, cfg.RateLimit.Window)
}

// ProvideHTTPHandler registers the JSON API and the HTML form.
func ProvideHTTPHandler(
	l *applogger.Logger,
	p *usecase.Predictor,
	dir *company.Directory,
	lim *ratelimit.Limiter,
) xhttp.Handler {
	apiHandler := api.NewForecastEchoHandler(l, p, dir, ratelimit.Middleware(lim, l, nil))

	webHandler := web.NewHandler(l, p, dir)
	webHandler.Use(ratelimit.Middleware(lim, l, webHandler.Deny))

	return xhttp.Handlers{apiHandler, webHandler}
}

// ProvideApp creates the application.
func ProvideApp(cfg *config.Config, h xhttp.Handler, l *applogger.Logger) *server.App {
	return server.New(cfg, h, l)
}
