package company

import (
	"testing"

	"StockCast/internal/domain/models"
)

func TestLookupBuiltin(t *testing.T) {
	d := NewDirectory(nil)
	c := d.Lookup(" aapl ")
	if c.Name != "Apple Inc." || c.Ticker != "AAPL" {
		t.Fatalf("lookup = %+v", c)
	}
}

func TestLookupUnknown(t *testing.T) {
	c := NewDirectory(nil).Lookup("ZZZZ")
	if c.Name != "Unknown" || c.Description != "No details available." {
		t.Fatalf("lookup = %+v", c)
	}
	if c.Ticker != "ZZZZ" {
		t.Errorf("ticker = %q", c.Ticker)
	}
}

func TestExtraOverrides(t *testing.T) {
	d := NewDirectory(map[string]models.Company{
		"msft": {Name: "Microsoft Corporation", Description: "Software."},
		"AMZN": {Name: "Amazon.com Inc.", Description: "Retail."},
	})
	if got := d.Lookup("MSFT").Name; got != "Microsoft Corporation" {
		t.Errorf("override = %q", got)
	}
	if got := d.Lookup("amzn").Name; got != "Amazon.com Inc." {
		t.Errorf("extra = %q", got)
	}
	if got := d.Tickers(); len(got) != 4 || got[0] != "AAPL" {
		t.Errorf("tickers = %v", got)
	}
}
