package web

import (
	"context"
	"embed"
	"html/template"
	"io"
	"net/http"
	"time"

	"StockCast/internal/domain/models"
	"StockCast/internal/handler"
	"StockCast/internal/services/charts"
	xhttp "StockCast/pkg/http"
	xlogger "StockCast/pkg/logger"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// ForecastRunner runs the prediction pipeline.
type ForecastRunner interface {
	Predict(ctx context.Context, ticker string, month int) (*models.Prediction, error)
}

type CompanyLookup interface {
	Lookup(ticker string) models.Company
}

type monthOption struct {
	Value    int
	Name     string
	Selected bool
}

type accuracyRow struct {
	Model string
	Value float64
}

type page struct {
	Ticker     string
	Months     []monthOption
	Error      string
	Result     bool
	Company    models.Company
	Decision   models.Decision
	Accuracies []accuracyRow
	Charts     []charts.Figure
}

// Handler serves the HTML form at "/".
type Handler struct {
	logger    *xlogger.Logger
	runner    ForecastRunner
	companies CompanyLookup
	mws       []echo.MiddlewareFunc
	now       func() time.Time
}

func NewHandler(logger *xlogger.Logger, runner ForecastRunner, companies CompanyLookup, mws ...echo.MiddlewareFunc) *Handler {
	if logger == nil {
		logger = xlogger.NewNop()
	}
	return &Handler{logger: logger, runner: runner, companies: companies, mws: mws, now: time.Now}
}

// Use adds middleware to the form submission route.
func (h *Handler) Use(mws ...echo.MiddlewareFunc) { h.mws = append(h.mws, mws...) }

// RegisterRoutes installs the renderer when none is set.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	if e.Renderer == nil {
		r, err := NewRenderer()
		if err != nil {
			// templates are embedded; a parse failure is a build defect
			panic(err)
		}
		e.Renderer = r
	}
	e.GET("/", h.Form)
	e.POST("/", h.Submit, h.mws...)
}

// Deny renders the page for a rate-limited submission.
func (h *Handler) Deny(c echo.Context, retry time.Duration) error {
	p := h.newPage("", 0)
	p.Error = "Too many requests, try again in " + retry.Round(time.Second).String() + "."
	return c.Render(http.StatusTooManyRequests, "index.html", p)
}

func (h *Handler) Form(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", h.newPage("", int(h.now().Month())))
}

func (h *Handler) Submit(c echo.Context) error {
	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		p := h.newPage(models.NormalizeTicker(c.FormValue("ticker")), 0)
		p.Error = "Enter a ticker and pick a month."
		return c.Render(http.StatusBadRequest, "index.html", p)
	}
	req.Normalize()

	p := h.newPage(req.Ticker, req.Month)
	pred, err := h.runner.Predict(c.Request().Context(), req.Ticker, req.Month)
	if err != nil {
		appErr := handler.ToAppError(err)
		if appErr.Status >= 500 {
			h.logger.Error("web forecast error", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		}
		p.Error = appErr.Message + "."
		return c.Render(appErr.Status, "index.html", p)
	}

	p.Result = true
	p.Company = h.companies.Lookup(pred.Ticker)
	p.Decision = pred.Decision
	for _, name := range models.ForecastModelsOrder(pred.Forecast, pred.Accuracy) {
		p.Accuracies = append(p.Accuracies, accuracyRow{Model: name, Value: pred.Accuracy[name]})
	}
	p.Charts = charts.Build(pred)
	return c.Render(http.StatusOK, "index.html", p)
}

func (h *Handler) newPage(ticker string, month int) page {
	p := page{Ticker: ticker, Months: make([]monthOption, 12)}
	for i := range p.Months {
		m := time.Month(i + 1)
		p.Months[i] = monthOption{Value: i + 1, Name: m.String(), Selected: i+1 == month}
	}
	return p
}
