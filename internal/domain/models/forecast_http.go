package models

import (
	"strings"
	"time"
)

// ForecastRequest is shared by the HTML form and the JSON API.
type ForecastRequest struct {
	Ticker string `query:"ticker" form:"ticker" json:"ticker" validate:"required,max=12,ticker"`
	Month  int    `query:"month" form:"month" json:"month" validate:"required,min=1,max=12"`
}

// Normalize trims and uppercases the ticker.
func (r *ForecastRequest) Normalize() {
	r.Ticker = NormalizeTicker(r.Ticker)
}

func NormalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

type PricePointDTO struct {
	Index int       `json:"index"`
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

type ForecastDTO struct {
	Models      []string             `json:"models"`
	Indices     []int                `json:"indices"`
	Dates       []time.Time          `json:"dates"`
	Predictions map[string][]float64 `json:"predictions"`
}

type DecisionDTO struct {
	Action         Action  `json:"action"`
	CurrentPrice   float64 `json:"current_price"`
	PredictedPrice float64 `json:"predicted_price"`
	Summary        string  `json:"summary"`
}

// PredictionResponse is the JSON view of a Prediction.
type PredictionResponse struct {
	Ticker   string             `json:"ticker"`
	Month    int                `json:"month"`
	Company  Company            `json:"company"`
	Series   []PricePointDTO    `json:"series"`
	Forecast ForecastDTO        `json:"forecast"`
	Accuracy map[string]float64 `json:"accuracy"`
	Decision DecisionDTO        `json:"decision"`
}

// NewPredictionResponse flattens a Prediction for transport.
func NewPredictionResponse(p *Prediction, c Company) PredictionResponse {
	series := make([]PricePointDTO, 0, p.Series.Len())
	for _, pt := range p.Series.Points {
		series = append(series, PricePointDTO{Index: pt.Index, Date: pt.Time, Close: pt.Close})
	}
	var fc ForecastDTO
	if p.Forecast != nil {
		fc = ForecastDTO{
			Models:      p.Forecast.Models,
			Indices:     p.Forecast.Indices,
			Dates:       p.Forecast.Dates,
			Predictions: p.Forecast.Predictions,
		}
	}
	return PredictionResponse{
		Ticker:   p.Ticker,
		Month:    p.Month,
		Company:  c,
		Series:   series,
		Forecast: fc,
		Accuracy: p.Accuracy,
		Decision: DecisionDTO{
			Action:         p.Decision.Action,
			CurrentPrice:   p.Decision.CurrentPrice,
			PredictedPrice: p.Decision.PredictedPrice,
			Summary:        p.Decision.Summary,
		},
	}
}
