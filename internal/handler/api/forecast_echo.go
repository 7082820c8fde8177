package api

import (
	"context"

	"StockCast/internal/domain/models"
	"StockCast/internal/handler"
	xhttp "StockCast/pkg/http"
	xlogger "StockCast/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ForecastRunner runs the prediction pipeline.
type ForecastRunner interface {
	Predict(ctx context.Context, ticker string, month int) (*models.Prediction, error)
}

// CompanyLookup resolves display details for a ticker.
type CompanyLookup interface {
	Lookup(ticker string) models.Company
}

// ForecastEchoHandler serves the JSON forecast API.
type ForecastEchoHandler struct {
	logger    *xlogger.Logger
	runner    ForecastRunner
	companies CompanyLookup
	mws       []echo.MiddlewareFunc
}

func NewForecastEchoHandler(logger *xlogger.Logger, runner ForecastRunner, companies CompanyLookup, mws ...echo.MiddlewareFunc) *ForecastEchoHandler {
	if logger == nil {
		logger = xlogger.NewNop()
	}
	return &ForecastEchoHandler{logger: logger, runner: runner, companies: companies, mws: mws}
}

func (h *ForecastEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/forecast", h.Forecast, h.mws...)
}

func (h *ForecastEchoHandler) Forecast(c echo.Context) error {
	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	req.Normalize()

	p, err := h.runner.Predict(c.Request().Context(), req.Ticker, req.Month)
	if err != nil {
		appErr := handler.ToAppError(err)
		if appErr.Status >= 500 {
			h.logger.Error("forecast usecase error", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		}
		return xhttp.AppErrorResponse(c, appErr)
	}
	return xhttp.SuccessResponse(c, models.NewPredictionResponse(p, h.companies.Lookup(p.Ticker)))
}
