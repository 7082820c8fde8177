package company

import (
	"sort"

	"StockCast/internal/domain/models"
)

var builtin = map[string]models.Company{
	"AAPL": {
		Name:        "Apple Inc.",
		Description: "A multinational technology company that designs, develops, and sells consumer electronics, computer software, and online services.",
	},
	"MSFT": {
		Name:        "Microsoft Corp.",
		Description: "A technology company that develops, licenses, and supports a wide range of software products, services, and devices.",
	},
	"GOOGL": {
		Name:        "Alphabet Inc.",
		Description: "The parent company of Google, focusing on technology and internet services.",
	},
}

// Unknown is returned for tickers with no entry.
var Unknown = models.Company{Name: "Unknown", Description: "No details available."}

// Directory maps tickers to display details.
type Directory struct {
	entries map[string]models.Company
}

// NewDirectory returns the built-in entries merged with extra, which wins on conflict.
func NewDirectory(extra map[string]models.Company) *Directory {
	d := &Directory{entries: make(map[string]models.Company, len(builtin)+len(extra))}
	for k, v := range builtin {
		d.entries[k] = v
	}
	for k, v := range extra {
		d.entries[models.NormalizeTicker(k)] = v
	}
	return d
}

// Lookup never fails; unknown tickers get the Unknown entry.
func (d *Directory) Lookup(ticker string) models.Company {
	ticker = models.NormalizeTicker(ticker)
	c, ok := d.entries[ticker]
	if !ok {
		c = Unknown
	}
	c.Ticker = ticker
	return c
}

// Tickers lists known tickers, sorted.
func (d *Directory) Tickers() []string {
	out := make([]string, 0, len(d.entries))
	for k := range d.entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
