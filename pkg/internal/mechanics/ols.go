package mechanics

import "math"

// RollingOLS maintains running sums for an ordinary least-squares fit of y on x.
// With a positive capacity it keeps a sliding window of the most recent points and
// rebuilds its sums from the window every capacity evictions to bound drift. With
// capacity <= 0 it grows without bound and stores no points.
type RollingOLS struct {
	capacity  int
	xs, ys    []float64
	head      int
	n         int
	evictions int

	sumX, sumY, sumXX, sumXY, sumYY float64
}

// Fit is the result of a least-squares fit over the current window.
type Fit struct {
	Slope     float64
	Intercept float64
	RSquared  float64
	// ResidualStd is the residual standard deviation with n-2 degrees of freedom.
	ResidualStd float64
	N           int
}

// NewRollingOLS returns a fitter with the given window capacity.
func NewRollingOLS(capacity int) *RollingOLS {
	r := &RollingOLS{capacity: capacity}
	if capacity > 0 {
		r.xs = make([]float64, capacity)
		r.ys = make([]float64, capacity)
	}
	return r
}

// Add pushes a point, evicting the oldest one when a bounded window is full.
func (r *RollingOLS) Add(x, y float64) {
	if r.capacity <= 0 {
		r.accumulate(x, y, 1)
		r.n++
		return
	}

	if r.n == r.capacity {
		r.accumulate(r.xs[r.head], r.ys[r.head], -1)
		r.xs[r.head], r.ys[r.head] = x, y
		r.head = (r.head + 1) % r.capacity
		r.accumulate(x, y, 1)
		r.evictions++
		if r.evictions >= r.capacity {
			r.rebuild()
		}
		return
	}

	idx := (r.head + r.n) % r.capacity
	r.xs[idx], r.ys[idx] = x, y
	r.n++
	r.accumulate(x, y, 1)
}

func (r *RollingOLS) accumulate(x, y, sign float64) {
	r.sumX += sign * x
	r.sumY += sign * y
	r.sumXX += sign * x * x
	r.sumXY += sign * x * y
	r.sumYY += sign * y * y
}

func (r *RollingOLS) rebuild() {
	r.sumX, r.sumY, r.sumXX, r.sumXY, r.sumYY = 0, 0, 0, 0, 0
	for i := 0; i < r.n; i++ {
		idx := (r.head + i) % r.capacity
		r.accumulate(r.xs[idx], r.ys[idx], 1)
	}
	r.evictions = 0
}

// Len is the number of points in the window.
func (r *RollingOLS) Len() int { return r.n }

// Full reports whether a bounded window holds capacity points.
func (r *RollingOLS) Full() bool { return r.capacity > 0 && r.n == r.capacity }

// Reset clears all points and sums.
func (r *RollingOLS) Reset() {
	r.head, r.n, r.evictions = 0, 0, 0
	r.sumX, r.sumY, r.sumXX, r.sumXY, r.sumYY = 0, 0, 0, 0, 0
}

// Fit returns the least-squares line over the window. ok is false with fewer than two
// points or when the x values have no spread.
func (r *RollingOLS) Fit() (Fit, bool) {
	if r.n < 2 {
		return Fit{N: r.n}, false
	}
	n := float64(r.n)
	sxx := r.sumXX - r.sumX*r.sumX/n
	if sxx <= 1e-12*r.sumXX || sxx <= 0 {
		return Fit{N: r.n}, false
	}
	sxy := r.sumXY - r.sumX*r.sumY/n
	syy := r.sumYY - r.sumY*r.sumY/n

	slope := sxy / sxx
	intercept := (r.sumY - slope*r.sumX) / n

	f := Fit{Slope: slope, Intercept: intercept, N: r.n}
	if syy > 0 {
		f.RSquared = math.Min(1, (sxy*sxy)/(sxx*syy))
	}
	if r.n > 2 {
		ssRes := syy - slope*sxy
		if ssRes < 0 {
			ssRes = 0
		}
		f.ResidualStd = math.Sqrt(ssRes / (n - 2))
	}
	return f, true
}
