package usecase

import (
	"fmt"
	"strings"
	"time"

	"StockCast/internal/domain/models"
	domrepo "StockCast/internal/domain/repository"
	"StockCast/internal/services/features"
	"StockCast/internal/services/regression"
	applogger "StockCast/pkg/logger"
	"StockCast/pkg/metrics"
)

// SessionCalendar labels future trading days.
type SessionCalendar interface {
	Next(after time.Time, n int) []time.Time
}

// ForecastEngine fits every registered model to a series and extrapolates
// a fixed number of trading days.
type ForecastEngine struct {
	registry *regression.Registry
	horizon  int
	sessions SessionCalendar
	metrics  domrepo.Metrics
	l        *applogger.Logger
}

func NewForecastEngine(reg *regression.Registry, horizon int, sessions SessionCalendar, m domrepo.Metrics, l *applogger.Logger) *ForecastEngine {
	if horizon <= 0 {
		horizon = 7
	}
	if m == nil {
		m = metrics.Nop{}
	}
	if l == nil {
		l = applogger.NewNop()
	}
	return &ForecastEngine{registry: reg, horizon: horizon, sessions: sessions, metrics: m, l: l}
}

// Horizon is the number of future days forecast per model.
func (e *ForecastEngine) Horizon() int { return e.horizon }

// Forecast returns per-model predictions for positions len..len+horizon-1
// and per-model in-sample accuracy. Both results carry exactly the
// registry's model names.
func (e *ForecastEngine) Forecast(s models.PriceSeries) (*models.ForecastResult, models.AccuracyResult, error) {
	if s.Empty() {
		return nil, nil, fmt.Errorf("forecast %s: empty series: %w", s.Ticker, models.ErrInsufficientData)
	}

	x := features.DayIndex(s)
	y := s.Closes()
	future := features.FutureIndex(s.Len(), e.horizon)

	res := &models.ForecastResult{
		Models:      e.registry.Names(),
		Indices:     make([]int, len(future)),
		Predictions: make(map[string][]float64, e.registry.Len()),
	}
	for i, v := range future {
		res.Indices[i] = int(v)
	}
	if e.sessions != nil {
		last, _ := s.Last()
		res.Dates = e.sessions.Next(last.Time, e.horizon)
	}
	acc := make(models.AccuracyResult, e.registry.Len())

	for _, entry := range e.registry.Entries() {
		start := time.Now()
		m := entry.New()
		if s.Len() < m.MinSamples() {
			return nil, nil, fmt.Errorf("forecast %s: %s needs %d samples, have %d: %w",
				s.Ticker, entry.Name, m.MinSamples(), s.Len(), models.ErrInsufficientData)
		}
		if err := m.Fit(x, y); err != nil {
			return nil, nil, fmt.Errorf("fit %s: %w", entry.Name, err)
		}

		pred := m.Predict(future)
		if len(pred) != e.horizon {
			return nil, nil, fmt.Errorf("predict %s: got %d values, want %d", entry.Name, len(pred), e.horizon)
		}
		res.Predictions[entry.Name] = pred
		acc[entry.Name] = features.Accuracy(y, m.Predict(x))

		e.metrics.RecordLatency("fit_"+metricName(entry.Name), time.Since(start).Seconds())
		e.metrics.RecordAccuracy(entry.Name, acc[entry.Name])
		e.l.Debug("forecast.model ok",
			applogger.String("ticker", s.Ticker),
			applogger.String("model", entry.Name),
			applogger.Float64("accuracy", acc[entry.Name]),
			applogger.Duration("duration", time.Since(start)),
		)
	}
	return res, acc, nil
}

func metricName(model string) string {
	return strings.ReplaceAll(strings.ToLower(model), " ", "_")
}
