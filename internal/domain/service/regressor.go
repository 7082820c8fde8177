package service

// Regressor is a single-feature regression model.
// Fit may be called once per instance; Predict is valid only after a successful Fit.
type Regressor interface {
	Fit(x, y []float64) error
	Predict(x []float64) []float64
	// MinSamples is the shortest series the model accepts.
	MinSamples() int
}
