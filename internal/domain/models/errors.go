package models

import "errors"

var (
	// ErrNotFound is returned when the market-data source has no answer for a ticker/window.
	ErrNotFound = errors.New("price data not found")
	// ErrInsufficientData is returned when a series is too short to fit a model.
	ErrInsufficientData = errors.New("insufficient price data")
	// ErrInvalidMonth is returned for a month outside 1..12.
	ErrInvalidMonth = errors.New("month must be between 1 and 12")
	// ErrInvalidTicker is returned for an empty ticker.
	ErrInvalidTicker = errors.New("ticker is required")
	// ErrSourceUnavailable wraps transport and query failures of a price source.
	ErrSourceUnavailable = errors.New("price source unavailable")
)
