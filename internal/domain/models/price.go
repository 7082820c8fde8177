package models

import (
	"sort"
	"time"
)

// PricePoint is one observed daily close. Index is the dense zero-based
// position in its series, not a calendar offset.
type PricePoint struct {
	Index int
	Time  time.Time
	Close float64
}

// PriceSeries holds daily closes in ascending date order with no duplicate dates.
type PriceSeries struct {
	Ticker string
	From   time.Time
	To     time.Time
	Points []PricePoint
}

// Len returns the number of observations.
func (s PriceSeries) Len() int { return len(s.Points) }

// Empty reports whether the series has no observations.
func (s PriceSeries) Empty() bool { return len(s.Points) == 0 }

// Last returns the most recent observation.
func (s PriceSeries) Last() (PricePoint, bool) {
	if len(s.Points) == 0 {
		return PricePoint{}, false
	}
	return s.Points[len(s.Points)-1], true
}

// Closes returns the close prices in series order.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Close
	}
	return out
}

// Reindex assigns dense indices 0..len-1 in place.
func (s *PriceSeries) Reindex() {
	for i := range s.Points {
		s.Points[i].Index = i
	}
}

// NewPriceSeries orders points by date, collapses duplicate dates to the
// last point seen and assigns dense indices.
func NewPriceSeries(ticker string, from, to time.Time, points []PricePoint) PriceSeries {
	sort.SliceStable(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })

	out := points[:0]
	for _, p := range points {
		if n := len(out); n > 0 && sameDay(out[n-1].Time, p.Time) {
			out[n-1] = p
			continue
		}
		out = append(out, p)
	}

	s := PriceSeries{Ticker: ticker, From: from, To: to, Points: out}
	s.Reindex()
	return s
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
