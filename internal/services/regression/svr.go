package regression

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// tau replaces a non-positive curvature in the pair update.
const tau = 1e-12

// SVR is epsilon-insensitive support vector regression with an RBF kernel
// K(a, b) = exp(-gamma * (a-b)^2), so f(x) = b + sum_i beta_i K(x_i, x) with
// |beta_i| <= C and sum_i beta_i = 0.
//
// The dual is solved by SMO over the 2n variables (alpha_i, alpha*_i), one
// pair per step chosen by second order working set selection. The intercept
// b is recovered from the free support vectors, so far from the training
// data f(x) tends to b.
type SVR struct {
	C       float64
	Gamma   float64
	Epsilon float64
	MaxIter int
	Tol     float64
	xs      []float64
	beta    []float64
	bias    float64
	fitted  bool
}

func NewSVR(c, gamma, epsilon float64) *SVR {
	return &SVR{C: c, Gamma: gamma, Epsilon: epsilon, MaxIter: 1000000, Tol: 1e-3}
}

func (m *SVR) MinSamples() int { return 1 }

// Intercept returns the fitted bias term.
func (m *SVR) Intercept() float64 { return m.bias }

func (m *SVR) kernel(a, b float64) float64 {
	d := a - b
	return math.Exp(-m.Gamma * d * d)
}

// smo holds the dual state. Variable t < n is alpha_t with sign +1, variable
// t >= n is alpha*_{t-n} with sign -1.
type smo struct {
	n     int
	c     float64
	k     [][]float64
	alpha []float64
	grad  []float64
}

func (s *smo) sign(t int) float64 {
	if t < s.n {
		return 1
	}
	return -1
}

func (s *smo) q(a, b int) float64 {
	return s.sign(a) * s.sign(b) * s.k[a%s.n][b%s.n]
}

func (s *smo) curvature(i, j int) float64 {
	n := s.n
	quad := s.k[i%n][i%n] + s.k[j%n][j%n] - 2*s.k[i%n][j%n]
	if quad <= 0 {
		return tau
	}
	return quad
}

// selectPair returns the maximal violating pair and the optimality gap.
func (s *smo) selectPair() (int, int, float64) {
	gmax, gmax2 := math.Inf(-1), math.Inf(-1)
	i := -1
	for t := range s.alpha {
		if s.sign(t) > 0 {
			if s.alpha[t] < s.c && -s.grad[t] >= gmax {
				gmax, i = -s.grad[t], t
			}
		} else if s.alpha[t] > 0 && s.grad[t] >= gmax {
			gmax, i = s.grad[t], t
		}
	}

	j := -1
	best := math.Inf(1)
	for t := range s.alpha {
		var diff float64
		if s.sign(t) > 0 {
			if s.alpha[t] <= 0 {
				continue
			}
			gmax2 = math.Max(gmax2, s.grad[t])
			diff = gmax + s.grad[t]
		} else {
			if s.alpha[t] >= s.c {
				continue
			}
			gmax2 = math.Max(gmax2, -s.grad[t])
			diff = gmax - s.grad[t]
		}
		if i < 0 || diff <= 0 {
			continue
		}
		if obj := -(diff * diff) / s.curvature(i, t); obj <= best {
			best, j = obj, t
		}
	}
	return i, j, gmax + gmax2
}

func (s *smo) update(i, j int) {
	c := s.c
	oi, oj := s.alpha[i], s.alpha[j]
	ai, aj := oi, oj
	quad := s.curvature(i, j)

	if s.sign(i) != s.sign(j) {
		delta := (-s.grad[i] - s.grad[j]) / quad
		diff := ai - aj
		ai += delta
		aj += delta
		if diff > 0 {
			if aj < 0 {
				aj, ai = 0, diff
			}
		} else if ai < 0 {
			ai, aj = 0, -diff
		}
		if diff > 0 {
			if ai > c {
				ai, aj = c, c-diff
			}
		} else if aj > c {
			aj, ai = c, c+diff
		}
	} else {
		delta := (s.grad[i] - s.grad[j]) / quad
		sum := ai + aj
		ai -= delta
		aj += delta
		if sum > c {
			if ai > c {
				ai, aj = c, sum-c
			}
		} else if aj < 0 {
			aj, ai = 0, sum
		}
		if sum > c {
			if aj > c {
				aj, ai = c, sum-c
			}
		} else if ai < 0 {
			ai, aj = 0, sum
		}
	}

	s.alpha[i], s.alpha[j] = ai, aj
	di, dj := ai-oi, aj-oj
	for t := range s.grad {
		s.grad[t] += s.q(t, i)*di + s.q(t, j)*dj
	}
}

// rho is the negated intercept implied by the current gradient.
func (s *smo) rho() float64 {
	ub, lb := math.Inf(1), math.Inf(-1)
	free, sum := 0, 0.0
	for t, a := range s.alpha {
		yg := s.sign(t) * s.grad[t]
		switch {
		case a >= s.c:
			if s.sign(t) < 0 {
				ub = math.Min(ub, yg)
			} else {
				lb = math.Max(lb, yg)
			}
		case a <= 0:
			if s.sign(t) > 0 {
				ub = math.Min(ub, yg)
			} else {
				lb = math.Max(lb, yg)
			}
		default:
			free++
			sum += yg
		}
	}
	if free > 0 {
		return sum / float64(free)
	}
	return (ub + lb) / 2
}

func (m *SVR) Fit(x, y []float64) error {
	if err := checkXY(x, y); err != nil {
		return err
	}
	n := len(x)
	m.xs = append([]float64(nil), x...)
	// the intercept absorbs the shift; solving on centred targets keeps
	// the gradients small
	mean := stat.Mean(y, nil)

	s := &smo{
		n:     n,
		c:     m.C,
		k:     make([][]float64, n),
		alpha: make([]float64, 2*n),
		grad:  make([]float64, 2*n),
	}
	for i := range s.k {
		s.k[i] = make([]float64, n)
		for j := range s.k[i] {
			s.k[i][j] = m.kernel(x[i], x[j])
		}
	}
	// alpha starts at zero, so the gradient is the linear term
	for i := 0; i < n; i++ {
		z := y[i] - mean
		s.grad[i] = m.Epsilon - z
		s.grad[i+n] = m.Epsilon + z
	}

	for it := 0; it < m.MaxIter; it++ {
		i, j, gap := s.selectPair()
		if j < 0 || gap < m.Tol {
			break
		}
		s.update(i, j)
	}

	m.beta = make([]float64, n)
	for i := range m.beta {
		m.beta[i] = s.alpha[i] - s.alpha[i+n]
	}
	m.bias = mean - s.rho()
	m.fitted = true
	return nil
}

func (m *SVR) Predict(x []float64) []float64 {
	if !m.fitted {
		return nil
	}
	out := make([]float64, len(x))
	for i, v := range x {
		s := m.bias
		for j, xj := range m.xs {
			if m.beta[j] != 0 {
				s += m.beta[j] * m.kernel(xj, v)
			}
		}
		out[i] = s
	}
	return out
}
