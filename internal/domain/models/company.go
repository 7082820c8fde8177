package models

// Company is the display information shown next to a forecast.
type Company struct {
	Ticker      string `json:"ticker" yaml:"-"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}
