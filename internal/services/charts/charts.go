// Package charts builds Plotly figures for a prediction.
// The page renders them client-side with plotly.js.
package charts

import (
	"StockCast/internal/domain/models"
	"StockCast/pkg/util"
)

type Title struct {
	Text string `json:"text"`
}

type Axis struct {
	Title Title  `json:"title"`
	Type  string `json:"type,omitempty"`
}

type Layout struct {
	Title Title `json:"title"`
	XAxis *Axis `json:"xaxis,omitempty"`
	YAxis *Axis `json:"yaxis,omitempty"`
}

// Trace is the subset of plotly.js trace attributes the page uses.
type Trace struct {
	Type   string        `json:"type"`
	Mode   string        `json:"mode,omitempty"`
	Name   string        `json:"name,omitempty"`
	X      []interface{} `json:"x,omitempty"`
	Y      []float64     `json:"y,omitempty"`
	Labels []string      `json:"labels,omitempty"`
	Values []float64     `json:"values,omitempty"`
}

// Figure is one chart: a DOM id plus plotly data and layout.
type Figure struct {
	ID     string  `json:"id"`
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Build returns the historical, weekly prediction, accuracy and profit/loss
// figures in page order. Figures whose inputs are missing are skipped.
func Build(p *models.Prediction) []Figure {
	if p == nil {
		return nil
	}
	out := make([]Figure, 0, 4)
	if !p.Series.Empty() {
		out = append(out, Historical(p.Series))
	}
	lin, hasLinear := p.Forecast.For(models.ModelLinear)
	if hasLinear {
		out = append(out, WeeklyPredictions(p.Forecast, lin))
	}
	if len(p.Accuracy) > 0 {
		names := models.ForecastModelsOrder(p.Forecast, p.Accuracy)
		out = append(out, AccuracyComparison(names, p.Accuracy))
	}
	if hasLinear {
		out = append(out, ProfitLoss(p.Decision.CurrentPrice, lin))
	}
	return out
}

func Historical(s models.PriceSeries) Figure {
	x := make([]interface{}, len(s.Points))
	for i, pt := range s.Points {
		x[i] = util.FormatDay(pt.Time)
	}
	return Figure{
		ID: "historical",
		Data: []Trace{{
			Type: "scatter",
			Mode: "lines+markers",
			Name: "Closing Price",
			X:    x,
			Y:    s.Closes(),
		}},
		Layout: Layout{
			Title: Title{"Historical Closing Prices"},
			XAxis: &Axis{Title: Title{"Date"}},
			YAxis: &Axis{Title: Title{"Price"}},
		},
	}
}

// WeeklyPredictions plots one model's forecast against the future session
// dates, or the future indices when no dates are known.
func WeeklyPredictions(f *models.ForecastResult, values []float64) Figure {
	x := make([]interface{}, len(values))
	for i := range values {
		switch {
		case i < len(f.Dates):
			x[i] = util.FormatDay(f.Dates[i])
		case i < len(f.Indices):
			x[i] = f.Indices[i]
		default:
			x[i] = i
		}
	}
	return Figure{
		ID: "weekly",
		Data: []Trace{{
			Type: "bar",
			Name: "Predicted Price",
			X:    x,
			Y:    values,
		}},
		Layout: Layout{
			Title: Title{"Weekly Predictions (Linear Regression)"},
			XAxis: &Axis{Title: Title{"Date"}, Type: "category"},
			YAxis: &Axis{Title: Title{"Predicted Price"}},
		},
	}
}

func AccuracyComparison(names []string, acc models.AccuracyResult) Figure {
	values := make([]float64, len(names))
	for i, n := range names {
		values[i] = acc[n]
	}
	return Figure{
		ID: "accuracy",
		Data: []Trace{{
			Type:   "pie",
			Labels: names,
			Values: values,
		}},
		Layout: Layout{Title: Title{"Model Accuracy Comparison"}},
	}
}

// ProfitLoss plots predicted minus current price per future day.
func ProfitLoss(current float64, values []float64) Figure {
	x := make([]interface{}, len(values))
	y := make([]float64, len(values))
	for i, v := range values {
		x[i] = i
		y[i] = v - current
	}
	return Figure{
		ID: "profit_loss",
		Data: []Trace{{
			Type: "bar",
			Name: "Profit/Loss",
			X:    x,
			Y:    y,
		}},
		Layout: Layout{
			Title: Title{"Potential Profit and Loss"},
			XAxis: &Axis{Title: Title{"Future Days"}},
			YAxis: &Axis{Title: Title{"Profit/Loss"}},
		},
	}
}
