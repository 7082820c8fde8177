// Package regression holds the single-feature models used for price forecasting.
package regression

import (
	"errors"
	"fmt"

	"StockCast/internal/domain/models"
)

var errShape = errors.New("regression: x and y lengths differ")

func checkXY(x, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("%w (%d vs %d)", errShape, len(x), len(y))
	}
	if len(x) == 0 {
		return models.ErrInsufficientData
	}
	return nil
}
