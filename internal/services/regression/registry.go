package regression

import (
	"fmt"

	"StockCast/internal/domain/models"
	"StockCast/internal/domain/service"
)

// Factory builds a fresh, unfitted model.
type Factory func() service.Regressor

// Entry binds a model name to its factory.
type Entry struct {
	Name string
	New  Factory
}

// Registry is an ordered set of named models. The order is the order of
// every forecast and accuracy listing.
type Registry struct {
	entries []Entry
}

func NewRegistry(entries ...Entry) (*Registry, error) {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.Name == "" || e.New == nil {
			return nil, fmt.Errorf("regression: incomplete registry entry %q", e.Name)
		}
		if _, dup := seen[e.Name]; dup {
			return nil, fmt.Errorf("regression: duplicate model %q", e.Name)
		}
		seen[e.Name] = struct{}{}
	}
	return &Registry{entries: append([]Entry(nil), entries...)}, nil
}

func (r *Registry) Entries() []Entry { return append([]Entry(nil), r.entries...) }

func (r *Registry) Names() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Name
	}
	return out
}

func (r *Registry) Len() int { return len(r.entries) }

// Options tunes the default model set.
type Options struct {
	// Seed for the forest's bootstrap; zero means time-derived.
	Seed  int64
	Trees int
}

// Default returns Linear Regression, SVM (RBF, C=1e3, gamma=0.1) and a
// Random Forest, in that order.
func Default(opts Options) *Registry {
	if opts.Trees <= 0 {
		opts.Trees = 100
	}
	r, _ := NewRegistry(
		Entry{Name: models.ModelLinear, New: func() service.Regressor { return NewLinear() }},
		Entry{Name: models.ModelSVM, New: func() service.Regressor { return NewSVR(1e3, 0.1, 0.1) }},
		Entry{Name: models.ModelRandomForest, New: func() service.Regressor { return NewForest(opts.Trees, opts.Seed) }},
	)
	return r
}
