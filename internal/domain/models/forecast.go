package models

import (
	"sort"
	"time"
)

// Model names of the default registry.
const (
	ModelLinear       = "Linear Regression"
	ModelSVM          = "SVM"
	ModelRandomForest = "Random Forest"
)

// ForecastResult maps a model name to its predictions for the future indices.
type ForecastResult struct {
	Models      []string // registry order
	Indices     []int
	Dates       []time.Time // trading sessions matching Indices; labels only
	Predictions map[string][]float64
}

// For returns the predictions of a model.
func (f *ForecastResult) For(model string) ([]float64, bool) {
	if f == nil {
		return nil, false
	}
	p, ok := f.Predictions[model]
	return p, ok
}

// AccuracyResult maps a model name to 100 - MAPE%, measured in-sample.
type AccuracyResult map[string]float64

// Action is the recommendation emitted by the decision policy.
type Action string

const (
	ActionBuy  Action = "Buy"
	ActionSell Action = "Sell"
)

type Decision struct {
	Action         Action
	CurrentPrice   float64
	PredictedPrice float64
	Summary        string
}

// Prediction bundles everything one request produces.
type Prediction struct {
	Ticker   string
	Month    int
	Series   PriceSeries
	Forecast *ForecastResult
	Accuracy AccuracyResult
	Decision Decision
}

// ForecastModelsOrder lists the models of acc in forecast order, falling
// back to sorted names when no forecast is available.
func ForecastModelsOrder(f *ForecastResult, acc AccuracyResult) []string {
	if f != nil && len(f.Models) > 0 {
		return append([]string(nil), f.Models...)
	}
	names := make([]string, 0, len(acc))
	for n := range acc {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
