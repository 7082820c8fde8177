package repository

import (
	"context"

	"StockCast/internal/domain/models"
)

// PriceFetcher retrieves the daily closes of one ticker for one month window.
// A source that answers "no such data" returns models.ErrNotFound.
type PriceFetcher interface {
	Fetch(ctx context.Context, ticker string, month int) (models.PriceSeries, error)
	Name() string
}

type Metrics interface {
	RecordFetch(source, outcome string)
	RecordError(kind string)
	RecordLastPrice(ticker string, price float64)
	RecordLatency(op string, seconds float64)
	RecordAccuracy(model string, accuracy float64)
	RecordDecision(action string)
}
