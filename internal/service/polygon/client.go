package polygon

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"StockCast/internal/domain/models"
	drepo "StockCast/internal/domain/repository"
	xhttp "StockCast/pkg/http"
	"StockCast/pkg/logger"
	"StockCast/pkg/util"
)

const DefaultBaseURL = "https://api.polygon.io"

// Client fetches daily aggregates from the Polygon REST API.
type Client struct {
	http    *xhttp.Client
	baseURL string
	apiKey  string
	window  util.WindowMode
	now     func() time.Time
	log     *logger.Logger
}

type Option func(*Client)

// WithWindow selects how a month maps to a date range.
func WithWindow(m util.WindowMode) Option {
	return func(c *Client) { c.window = m }
}

// WithClock overrides the clock used to pick the current year.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a Polygon PriceFetcher.
func New(httpClient *xhttp.Client, baseURL, apiKey string, opts ...Option) drepo.PriceFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		http:    httpClient,
		baseURL: baseURL,
		apiKey:  apiKey,
		window:  util.WindowFixed30,
		now:     time.Now,
		log:     logger.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.http == nil {
		c.http = xhttp.NewClient()
	}
	return c
}

func (c *Client) Name() string { return "polygon" }

type aggBar struct {
	C float64 `json:"c"`
	T int64   `json:"t"` // ms
}

type aggsResponse struct {
	Ticker       string   `json:"ticker"`
	Status       string   `json:"status"`
	ResultsCount int      `json:"resultsCount"`
	Results      []aggBar `json:"results"`
}

// Fetch returns daily closes for ticker over the month window of the current year.
// Any non-2xx answer is reported as models.ErrNotFound.
func (c *Client) Fetch(ctx context.Context, ticker string, month int) (models.PriceSeries, error) {
	from, to, err := util.MonthWindow(c.now().Year(), month, c.window)
	if err != nil {
		return models.PriceSeries{}, fmt.Errorf("%w: %d", models.ErrInvalidMonth, month)
	}

	endpoint := fmt.Sprintf("%s/v2/aggs/ticker/%s/range/1/day/%s/%s",
		c.baseURL, url.PathEscape(ticker), util.FormatDay(from), util.FormatDay(to))

	var resp aggsResponse
	err = c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     endpoint,
		Headers: map[string]string{"Authorization": "Bearer " + c.apiKey},
	}, &resp)
	if err != nil {
		var se *xhttp.StatusError
		if errors.As(err, &se) {
			c.log.Warn("polygon.fetch status",
				logger.String("ticker", ticker),
				logger.Int("status", se.Code),
			)
			return models.PriceSeries{}, fmt.Errorf("polygon %s: status %d: %w", ticker, se.Code, models.ErrNotFound)
		}
		// drop the request URL from transport errors, it ends up in logs
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		return models.PriceSeries{}, fmt.Errorf("polygon %s: %v: %w", ticker, err, models.ErrSourceUnavailable)
	}

	points := make([]models.PricePoint, 0, len(resp.Results))
	for _, b := range resp.Results {
		points = append(points, models.PricePoint{
			Time:  util.TruncateDay(util.FromUnixMillis(b.T)),
			Close: b.C,
		})
	}

	c.log.Debug("polygon.fetch ok",
		logger.String("ticker", ticker),
		logger.String("from", util.FormatDay(from)),
		logger.String("to", util.FormatDay(to)),
		logger.Int("bars", len(points)),
	)
	return models.NewPriceSeries(ticker, from, to, points), nil
}
