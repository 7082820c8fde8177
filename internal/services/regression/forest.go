package regression

import (
	"math/rand"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Forest is a bagged ensemble of fully grown CART regression trees on one
// feature. Each tree is fitted on a bootstrap sample of the input.
type Forest struct {
	Trees           int
	MinSamplesSplit int
	rng             *rand.Rand
	roots           []*node
}

// NewForest builds a forest of trees. A zero seed draws one from the clock.
func NewForest(trees int, seed int64) *Forest {
	if trees < 1 {
		trees = 1
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Forest{Trees: trees, MinSamplesSplit: 2, rng: rand.New(rand.NewSource(seed))}
}

func (m *Forest) MinSamples() int { return 1 }

type node struct {
	leaf      bool
	value     float64
	threshold float64
	left      *node
	right     *node
}

type sample struct{ x, y float64 }

func (m *Forest) Fit(x, y []float64) error {
	if err := checkXY(x, y); err != nil {
		return err
	}
	n := len(x)
	m.roots = make([]*node, 0, m.Trees)
	for t := 0; t < m.Trees; t++ {
		boot := make([]sample, n)
		for i := range boot {
			j := m.rng.Intn(n)
			boot[i] = sample{x[j], y[j]}
		}
		sort.Slice(boot, func(a, b int) bool { return boot[a].x < boot[b].x })
		m.roots = append(m.roots, m.grow(boot))
	}
	return nil
}

// grow builds a subtree over samples sorted by x.
func (m *Forest) grow(s []sample) *node {
	if len(s) < m.MinSamplesSplit || s[0].x == s[len(s)-1].x || constantY(s) {
		return &node{leaf: true, value: meanY(s)}
	}

	// prefix sums give each split's SSE in O(1)
	n := len(s)
	sum := make([]float64, n+1)
	sq := make([]float64, n+1)
	for i, p := range s {
		sum[i+1] = sum[i] + p.y
		sq[i+1] = sq[i] + p.y*p.y
	}
	sse := func(lo, hi int) float64 {
		c := float64(hi - lo)
		t := sum[hi] - sum[lo]
		return (sq[hi] - sq[lo]) - t*t/c
	}

	best, bestErr := -1, 0.0
	for i := 1; i < n; i++ {
		if s[i].x == s[i-1].x {
			continue
		}
		e := sse(0, i) + sse(i, n)
		if best < 0 || e < bestErr {
			best, bestErr = i, e
		}
	}

	return &node{
		threshold: (s[best-1].x + s[best].x) / 2,
		left:      m.grow(s[:best]),
		right:     m.grow(s[best:]),
	}
}

func (m *Forest) Predict(x []float64) []float64 {
	if len(m.roots) == 0 {
		return nil
	}
	out := make([]float64, len(x))
	per := make([]float64, len(m.roots))
	for i, v := range x {
		for t, r := range m.roots {
			per[t] = r.predict(v)
		}
		out[i] = stat.Mean(per, nil)
	}
	return out
}

func (nd *node) predict(v float64) float64 {
	for !nd.leaf {
		if v <= nd.threshold {
			nd = nd.left
		} else {
			nd = nd.right
		}
	}
	return nd.value
}

func meanY(s []sample) float64 {
	t := 0.0
	for _, p := range s {
		t += p.y
	}
	return t / float64(len(s))
}

func constantY(s []sample) bool {
	for _, p := range s[1:] {
		if p.y != s[0].y {
			return false
		}
	}
	return true
}
