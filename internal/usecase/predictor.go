package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"StockCast/internal/domain/models"
	domrepo "StockCast/internal/domain/repository"
	applogger "StockCast/pkg/logger"
	"StockCast/pkg/metrics"
)

// Predictor runs fetch, forecast and decide for one request.
type Predictor struct {
	fetcher domrepo.PriceFetcher
	engine  *ForecastEngine
	policy  *DecisionPolicy
	metrics domrepo.Metrics
	l       *applogger.Logger
	timeout time.Duration
}

func NewPredictor(f domrepo.PriceFetcher, e *ForecastEngine, p *DecisionPolicy, m domrepo.Metrics, l *applogger.Logger) *Predictor {
	if m == nil {
		m = metrics.Nop{}
	}
	if l == nil {
		l = applogger.NewNop()
	}
	return &Predictor{fetcher: f, engine: e, policy: p, metrics: m, l: l}
}

// SetTimeout bounds a whole Predict call. Zero leaves the caller's context alone.
func (uc *Predictor) SetTimeout(d time.Duration) { uc.timeout = d }

// Predict fetches the month of closes for ticker and derives forecasts,
// accuracies and a decision. No partial result is returned on error.
func (uc *Predictor) Predict(ctx context.Context, ticker string, month int) (*models.Prediction, error) {
	ticker = models.NormalizeTicker(ticker)
	if ticker == "" {
		return nil, models.ErrInvalidTicker
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: %d", models.ErrInvalidMonth, month)
	}
	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	start := time.Now()
	series, err := uc.fetcher.Fetch(ctx, ticker, month)
	uc.metrics.RecordLatency("fetch", time.Since(start).Seconds())
	if err != nil {
		uc.metrics.RecordFetch(uc.fetcher.Name(), fetchOutcome(err))
		uc.metrics.RecordError("fetch")
		uc.l.Warn("predict.fetch error",
			applogger.String("ticker", ticker),
			applogger.Int("month", month),
			applogger.String("source", uc.fetcher.Name()),
			applogger.Error(err),
		)
		return nil, err
	}
	if series.Empty() {
		uc.metrics.RecordFetch(uc.fetcher.Name(), "empty")
	} else {
		uc.metrics.RecordFetch(uc.fetcher.Name(), "ok")
		last, _ := series.Last()
		uc.metrics.RecordLastPrice(ticker, last.Close)
	}
	uc.l.Info("forecast.fetch ok",
		applogger.String("ticker", ticker),
		applogger.Int("month", month),
		applogger.Int("points", series.Len()),
		applogger.Duration("duration", time.Since(start)),
	)

	start = time.Now()
	fc, acc, err := uc.engine.Forecast(series)
	uc.metrics.RecordLatency("forecast", time.Since(start).Seconds())
	if err != nil {
		uc.metrics.RecordError("forecast")
		uc.l.Warn("predict.forecast error", applogger.String("ticker", ticker), applogger.Error(err))
		return nil, err
	}

	dec, err := uc.policy.Decide(series, fc)
	if err != nil {
		uc.metrics.RecordError("decide")
		uc.l.Error("predict.decide error", applogger.String("ticker", ticker), applogger.Error(err))
		return nil, err
	}
	uc.metrics.RecordDecision(string(dec.Action))

	uc.l.Info("predict ok",
		applogger.String("ticker", ticker),
		applogger.String("action", string(dec.Action)),
		applogger.Float64("current", dec.CurrentPrice),
		applogger.Float64("predicted", dec.PredictedPrice),
	)
	return &models.Prediction{
		Ticker:   ticker,
		Month:    month,
		Series:   series,
		Forecast: fc,
		Accuracy: acc,
		Decision: dec,
	}, nil
}

func fetchOutcome(err error) string {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	case errors.Is(err, models.ErrInvalidMonth):
		return "invalid"
	default:
		return "error"
	}
}
