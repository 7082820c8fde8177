package models

import (
	"testing"
	"time"
)

func TestNewPriceSeriesOrdersAndDedupes(t *testing.T) {
	d := func(day, hour int) time.Time { return time.Date(2025, 3, day, hour, 0, 0, 0, time.UTC) }
	pts := []PricePoint{
		{Time: d(5, 0), Close: 3},
		{Time: d(3, 0), Close: 1},
		{Time: d(4, 0), Close: 2},
		{Time: d(4, 5), Close: 2.5},
	}

	s := NewPriceSeries("AAPL", d(1, 0), d(31, 0), pts)
	want := []float64{1, 2.5, 3}
	got := s.Closes()
	if len(got) != len(want) {
		t.Fatalf("closes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("close[%d] = %v, want %v", i, got[i], want[i])
		}
		if s.Points[i].Index != i {
			t.Errorf("index[%d] = %d", i, s.Points[i].Index)
		}
	}
	last, ok := s.Last()
	if !ok || last.Close != 3 {
		t.Errorf("last = %+v %v", last, ok)
	}
}

func TestEmptySeries(t *testing.T) {
	s := NewPriceSeries("X", time.Time{}, time.Time{}, nil)
	if !s.Empty() || s.Len() != 0 {
		t.Fatalf("expected empty series")
	}
	if _, ok := s.Last(); ok {
		t.Error("Last on empty series reported ok")
	}
}
