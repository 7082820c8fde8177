package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"StockCast/internal/domain/models"

	"github.com/labstack/echo/v4"
)

type stubRunner struct {
	p   *models.Prediction
	err error
}

func (s stubRunner) Predict(context.Context, string, int) (*models.Prediction, error) {
	return s.p, s.err
}

type stubCompanies struct{}

func (stubCompanies) Lookup(t string) models.Company {
	return models.Company{Ticker: t, Name: "Apple Inc.", Description: "Makes phones."}
}

func post(t *testing.T, h *Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h.RegisterRoutes(e)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestFormRenders(t *testing.T) {
	e := echo.New()
	h := NewHandler(nil, stubRunner{}, stubCompanies{})
	h.now = func() time.Time { return time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC) }
	h.RegisterRoutes(e)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `<option value="3" selected>March</option>`) {
		t.Errorf("current month not preselected")
	}
	if strings.Contains(body, "Recommendation") {
		t.Errorf("empty form should not show a result")
	}
}

func TestSubmitRendersResult(t *testing.T) {
	d := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	p := &models.Prediction{
		Ticker: "AAPL",
		Month:  3,
		Series: models.NewPriceSeries("AAPL", d, d, []models.PricePoint{{Time: d, Close: 108}}),
		Forecast: &models.ForecastResult{
			Models:      []string{models.ModelLinear},
			Indices:     []int{1},
			Predictions: map[string][]float64{models.ModelLinear: {122}},
		},
		Accuracy: models.AccuracyResult{models.ModelLinear: 99.5},
		Decision: models.Decision{Action: models.ActionBuy, CurrentPrice: 108, PredictedPrice: 122,
			Summary: "The predicted price is $122.00, which is higher than the current price of $108.00. It is recommended to buy."},
	}
	rec := post(t, NewHandler(nil, stubRunner{p: p}, stubCompanies{}), url.Values{"ticker": {"aapl"}, "month": {"3"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"Recommendation: Buy",
		"Apple Inc.",
		"99.50%",
		`id="chart-historical"`,
		`id="chart-profit_loss"`,
		"It is recommended to buy.",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestSubmitNotFoundShowsEmptyState(t *testing.T) {
	rec := post(t, NewHandler(nil, stubRunner{err: models.ErrNotFound}, stubCompanies{}), url.Values{"ticker": {"ZZZZ"}, "month": {"3"}})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "No results found.") {
		t.Error("missing empty state")
	}
	if strings.Contains(body, "Recommendation") {
		t.Error("failed request must not render a decision")
	}
}

func TestSubmitInvalidMonth(t *testing.T) {
	rec := post(t, NewHandler(nil, stubRunner{}, stubCompanies{}), url.Values{"ticker": {"AAPL"}, "month": {"14"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}
