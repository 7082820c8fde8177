package regression

import (
	"gonum.org/v1/gonum/stat"
)

// Linear is ordinary least squares y = alpha + beta*x.
type Linear struct {
	alpha, beta float64
	fitted      bool
}

func NewLinear() *Linear { return &Linear{} }

func (m *Linear) MinSamples() int { return 1 }

// Fit estimates alpha and beta. With fewer than two points or a constant
// feature, the fit is the horizontal line through the mean.
func (m *Linear) Fit(x, y []float64) error {
	if err := checkXY(x, y); err != nil {
		return err
	}
	if len(x) < 2 || stat.Variance(x, nil) == 0 {
		m.alpha, m.beta = stat.Mean(y, nil), 0
	} else {
		m.alpha, m.beta = stat.LinearRegression(x, y, nil, false)
	}
	m.fitted = true
	return nil
}

func (m *Linear) Predict(x []float64) []float64 {
	if !m.fitted {
		return nil
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = m.alpha + m.beta*v
	}
	return out
}

// Coefficients returns the fitted intercept and slope.
func (m *Linear) Coefficients() (alpha, beta float64) { return m.alpha, m.beta }
