package usecase

import (
	"fmt"

	"StockCast/internal/domain/models"

	"github.com/shopspring/decimal"
)

// DecisionPolicy turns one model's last forecast into a Buy/Sell call.
type DecisionPolicy struct {
	model string
}

// NewDecisionPolicy decides on the Linear Regression forecast.
func NewDecisionPolicy() *DecisionPolicy {
	return &DecisionPolicy{model: models.ModelLinear}
}

// Decide buys only when the horizon-end prediction is strictly above the
// last close; a tie sells.
func (p *DecisionPolicy) Decide(s models.PriceSeries, f *models.ForecastResult) (models.Decision, error) {
	last, ok := s.Last()
	if !ok {
		return models.Decision{}, fmt.Errorf("decide: empty series: %w", models.ErrInsufficientData)
	}
	pred, ok := f.For(p.model)
	if !ok || len(pred) == 0 {
		return models.Decision{}, fmt.Errorf("decide: no %q forecast", p.model)
	}

	d := models.Decision{
		CurrentPrice:   last.Close,
		PredictedPrice: pred[len(pred)-1],
	}

	current := decimal.NewFromFloat(d.CurrentPrice).StringFixed(2)
	predicted := decimal.NewFromFloat(d.PredictedPrice).StringFixed(2)

	var relation string
	switch {
	case d.PredictedPrice > d.CurrentPrice:
		d.Action, relation = models.ActionBuy, "higher than"
	case d.PredictedPrice < d.CurrentPrice:
		d.Action, relation = models.ActionSell, "lower than"
	default:
		d.Action, relation = models.ActionSell, "equal to"
	}
	verb := "sell"
	if d.Action == models.ActionBuy {
		verb = "buy"
	}
	d.Summary = fmt.Sprintf("The predicted price is $%s, which is %s the current price of $%s. It is recommended to %s.",
		predicted, relation, current, verb)
	return d, nil
}
