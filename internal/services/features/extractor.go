package features

import (
	"math"

	"StockCast/internal/domain/models"
)

// DayIndex returns the regression feature of each observation: its dense
// zero-based position in the series. Calendar gaps are ignored.
func DayIndex(s models.PriceSeries) []float64 {
	out := make([]float64, len(s.Points))
	for i := range s.Points {
		out[i] = float64(i)
	}
	return out
}

// FutureIndex returns the horizon positions following a series of length n:
// n, n+1, ..., n+horizon-1.
func FutureIndex(n, horizon int) []float64 {
	if horizon <= 0 {
		return nil
	}
	out := make([]float64, horizon)
	for i := range out {
		out[i] = float64(n + i)
	}
	return out
}

// MAPE returns mean(|y - yhat| / max(|y|, eps)) as a fraction.
// The floor keeps a zero actual from producing Inf.
func MAPE(y, yhat []float64) float64 {
	n := len(y)
	if len(yhat) < n {
		n = len(yhat)
	}
	if n == 0 {
		return 0
	}
	eps := math.Nextafter(1, 2) - 1
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += math.Abs(y[i]-yhat[i]) / math.Max(math.Abs(y[i]), eps)
	}
	return sum / float64(n)
}

// Accuracy is 100 - MAPE in percent. It is not clamped and goes negative
// when the mean error exceeds the actuals.
func Accuracy(y, yhat []float64) float64 {
	return 100 - MAPE(y, yhat)*100
}
