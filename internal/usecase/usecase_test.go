package usecase

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"StockCast/internal/domain/models"
	"StockCast/internal/services/regression"
)

type fakeFetcher struct {
	series models.PriceSeries
	err    error
	calls  int
	month  int
	ticker string
}

func (f *fakeFetcher) Name() string { return "fake" }

func (f *fakeFetcher) Fetch(_ context.Context, ticker string, month int) (models.PriceSeries, error) {
	f.calls++
	f.ticker, f.month = ticker, month
	return f.series, f.err
}

type fakeMetrics struct {
	mu        sync.Mutex
	fetches   map[string]int
	decisions map[string]int
	accuracy  map[string]float64
	errors    map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{
		fetches:   map[string]int{},
		decisions: map[string]int{},
		accuracy:  map[string]float64{},
		errors:    map[string]int{},
	}
}

func (m *fakeMetrics) RecordFetch(source, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches[source+"/"+outcome]++
}
func (m *fakeMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[kind]++
}
func (m *fakeMetrics) RecordLastPrice(string, float64) {}
func (m *fakeMetrics) RecordLatency(string, float64)   {}
func (m *fakeMetrics) RecordAccuracy(model string, a float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accuracy[model] = a
}
func (m *fakeMetrics) RecordDecision(action string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decisions[action]++
}

type weekdays struct{}

func (weekdays) Next(after time.Time, n int) []time.Time {
	var out []time.Time
	d := after
	for len(out) < n {
		d = d.AddDate(0, 0, 1)
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			out = append(out, d)
		}
	}
	return out
}

func series(closes ...float64) models.PriceSeries {
	pts := make([]models.PricePoint, len(closes))
	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC) // Monday
	for i, c := range closes {
		for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, 1)
		}
		pts[i] = models.PricePoint{Time: day, Close: c}
		day = day.AddDate(0, 0, 1)
	}
	return models.NewPriceSeries("TEST", pts[0].Time, day, pts)
}

func newEngine(m *fakeMetrics) *ForecastEngine {
	return NewForecastEngine(regression.Default(regression.Options{Seed: 42, Trees: 20}), 7, weekdays{}, m, nil)
}

func TestForecastShape(t *testing.T) {
	e := newEngine(newFakeMetrics())
	fc, acc, err := e.Forecast(series(10, 11, 13, 12, 14, 15, 17, 16, 18, 19))
	if err != nil {
		t.Fatalf("forecast: %v", err)
	}
	if len(fc.Predictions) != 3 || len(acc) != 3 {
		t.Fatalf("models: %d forecasts, %d accuracies", len(fc.Predictions), len(acc))
	}
	for _, name := range fc.Models {
		p, ok := fc.For(name)
		if !ok || len(p) != 7 {
			t.Errorf("%s: %d predictions", name, len(p))
		}
		if _, ok := acc[name]; !ok {
			t.Errorf("%s: missing accuracy", name)
		}
	}
	want := []int{10, 11, 12, 13, 14, 15, 16}
	for i := range want {
		if fc.Indices[i] != want[i] {
			t.Fatalf("indices = %v, want %v", fc.Indices, want)
		}
	}
	if len(fc.Dates) != 7 {
		t.Fatalf("dates = %v", fc.Dates)
	}
	// last observation is Friday 2025-03-14
	if got := fc.Dates[0].Format("2006-01-02"); got != "2025-03-17" {
		t.Errorf("first future session = %s", got)
	}
}

func TestForecastEmptySeries(t *testing.T) {
	e := newEngine(newFakeMetrics())
	_, _, err := e.Forecast(models.PriceSeries{Ticker: "X"})
	if !errors.Is(err, models.ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
}

func TestForecastSinglePointIsConstant(t *testing.T) {
	e := newEngine(newFakeMetrics())
	fc, acc, err := e.Forecast(series(250))
	if err != nil {
		t.Fatalf("forecast: %v", err)
	}
	for name, p := range fc.Predictions {
		for _, v := range p {
			if v != 250 {
				t.Fatalf("%s forecast = %v, want constant 250", name, p)
			}
		}
		if acc[name] != 100 {
			t.Errorf("%s accuracy = %v, want 100", name, acc[name])
		}
	}
}

func TestForecastLinearPerfectTrend(t *testing.T) {
	m := newFakeMetrics()
	e := newEngine(m)
	fc, acc, err := e.Forecast(series(100, 102, 104, 106, 108))
	if err != nil {
		t.Fatalf("forecast: %v", err)
	}
	want := []float64{110, 112, 114, 116, 118, 120, 122}
	got, _ := fc.For(models.ModelLinear)
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("linear = %v, want %v", got, want)
		}
	}
	if math.Abs(acc[models.ModelLinear]-100) > 1e-9 {
		t.Errorf("linear accuracy = %v", acc[models.ModelLinear])
	}
	if _, ok := m.accuracy[models.ModelSVM]; !ok {
		t.Error("accuracy metric not recorded")
	}
}

func TestForecastSeededDeterminism(t *testing.T) {
	s := series(10, 12, 11, 14, 13, 15, 17, 16, 18, 20)
	_, a1, _ := newEngine(newFakeMetrics()).Forecast(s)
	_, a2, _ := newEngine(newFakeMetrics()).Forecast(s)
	for name := range a1 {
		if a1[name] != a2[name] {
			t.Errorf("%s accuracy differs: %v vs %v", name, a1[name], a2[name])
		}
	}
}

func TestDecide(t *testing.T) {
	p := NewDecisionPolicy()
	cases := []struct {
		name      string
		last      float64
		predicted float64
		action    models.Action
		summary   string
	}{
		{"up", 108, 122, models.ActionBuy,
			"The predicted price is $122.00, which is higher than the current price of $108.00. It is recommended to buy."},
		{"down", 108, 99.5, models.ActionSell,
			"The predicted price is $99.50, which is lower than the current price of $108.00. It is recommended to sell."},
		{"tie", 108, 108, models.ActionSell,
			"The predicted price is $108.00, which is equal to the current price of $108.00. It is recommended to sell."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fc := &models.ForecastResult{Predictions: map[string][]float64{
				models.ModelLinear: {0, 0, 0, 0, 0, 0, tc.predicted},
				models.ModelSVM:    {0, 0, 0, 0, 0, 0, 1e9},
			}}
			d, err := p.Decide(series(1, tc.last), fc)
			if err != nil {
				t.Fatalf("decide: %v", err)
			}
			if d.Action != tc.action {
				t.Errorf("action = %s, want %s", d.Action, tc.action)
			}
			if d.CurrentPrice != tc.last || d.PredictedPrice != tc.predicted {
				t.Errorf("prices = %v/%v", d.CurrentPrice, d.PredictedPrice)
			}
			if d.Summary != tc.summary {
				t.Errorf("summary = %q", d.Summary)
			}
			again, _ := p.Decide(series(1, tc.last), fc)
			if again != d {
				t.Error("decision not deterministic")
			}
		})
	}
}

func TestDecideErrors(t *testing.T) {
	p := NewDecisionPolicy()
	fc := &models.ForecastResult{Predictions: map[string][]float64{models.ModelLinear: {1}}}
	if _, err := p.Decide(models.PriceSeries{}, fc); !errors.Is(err, models.ErrInsufficientData) {
		t.Errorf("empty series err = %v", err)
	}
	if _, err := p.Decide(series(1), &models.ForecastResult{}); err == nil {
		t.Error("expected error without linear forecast")
	}
	if _, err := p.Decide(series(1), nil); err == nil {
		t.Error("expected error for nil forecast")
	}
}

func TestPredictEndToEnd(t *testing.T) {
	m := newFakeMetrics()
	f := &fakeFetcher{series: series(100, 102, 104, 106, 108)}
	uc := NewPredictor(f, newEngine(m), NewDecisionPolicy(), m, nil)

	p, err := uc.Predict(context.Background(), "  aapl ", 3)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if f.ticker != "AAPL" || f.month != 3 {
		t.Errorf("fetched %q/%d", f.ticker, f.month)
	}
	if p.Decision.Action != models.ActionBuy || p.Decision.CurrentPrice != 108 {
		t.Errorf("decision = %+v", p.Decision)
	}
	if math.Abs(p.Decision.PredictedPrice-122) > 1e-9 {
		t.Errorf("predicted = %v", p.Decision.PredictedPrice)
	}
	if m.fetches["fake/ok"] != 1 || m.decisions["Buy"] != 1 {
		t.Errorf("metrics: fetches=%v decisions=%v", m.fetches, m.decisions)
	}
}

func TestPredictNotFound(t *testing.T) {
	m := newFakeMetrics()
	f := &fakeFetcher{err: models.ErrNotFound}
	uc := NewPredictor(f, newEngine(m), NewDecisionPolicy(), m, nil)

	p, err := uc.Predict(context.Background(), "ZZZZ", 3)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if p != nil {
		t.Fatal("no products expected on fetch failure")
	}
	if m.fetches["fake/not_found"] != 1 || len(m.decisions) != 0 {
		t.Errorf("metrics: fetches=%v decisions=%v", m.fetches, m.decisions)
	}
}

func TestPredictEmptySeries(t *testing.T) {
	f := &fakeFetcher{series: models.PriceSeries{Ticker: "X"}}
	uc := NewPredictor(f, newEngine(newFakeMetrics()), NewDecisionPolicy(), nil, nil)
	if _, err := uc.Predict(context.Background(), "X", 1); !errors.Is(err, models.ErrInsufficientData) {
		t.Fatalf("err = %v", err)
	}
}

func TestPredictValidatesInput(t *testing.T) {
	f := &fakeFetcher{}
	uc := NewPredictor(f, newEngine(newFakeMetrics()), NewDecisionPolicy(), nil, nil)
	if _, err := uc.Predict(context.Background(), "AAPL", 13); !errors.Is(err, models.ErrInvalidMonth) {
		t.Errorf("month 13 err = %v", err)
	}
	if _, err := uc.Predict(context.Background(), "   ", 3); !errors.Is(err, models.ErrInvalidTicker) {
		t.Errorf("blank ticker err = %v", err)
	}
	if f.calls != 0 {
		t.Errorf("fetcher called %d times for invalid input", f.calls)
	}
}
