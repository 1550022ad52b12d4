package pitch

import "sort"

// splineYP1 and splineYPN are the clamped first-derivative boundary
// conditions for spline2: slope 2.0 at both ends rather than the
// natural-spline boundary (second derivative zero). The algorithm is not
// sensitive to the exact interpolant, but the boundary slopes shift
// loudness values near the axis edges, so they are fixed constants here
// rather than parameters.
const (
	splineYP1 = 2.0
	splineYPN = 2.0
)

// spline2 computes the natural-cubic-spline second derivatives y2 for the
// knots (x, y), using the clamped boundary slopes splineYP1/splineYPN. x
// must be strictly increasing. This is the classic Numerical Recipes
// tridiagonal forward/back substitution.
func spline2(x, y []float64) []float64 {
	n := len(x)
	y2 := make([]float64, n)
	if n < 2 {
		return y2
	}
	u := make([]float64, n)

	y2[0] = -0.5
	u[0] = (3.0 / (x[1] - x[0])) * ((y[1]-y[0])/(x[1]-x[0]) - splineYP1)

	for i := 1; i < n-1; i++ {
		sig := (x[i] - x[i-1]) / (x[i+1] - x[i-1])
		p := sig*y2[i-1] + 2.0
		y2[i] = (sig - 1.0) / p
		u[i] = (y[i+1]-y[i])/(x[i+1]-x[i]) - (y[i]-y[i-1])/(x[i]-x[i-1])
		u[i] = (6.0*u[i]/(x[i+1]-x[i-1]) - sig*u[i-1]) / p
	}

	qn := 0.5
	un := (3.0 / (x[n-1] - x[n-2])) * (splineYPN - (y[n-1]-y[n-2])/(x[n-1]-x[n-2]))
	y2[n-1] = (un - qn*u[n-2]) / (qn*y2[n-2] + 1.0)

	for k := n - 2; k >= 0; k-- {
		y2[k] = y2[k]*y2[k+1] + u[k]
	}
	return y2
}

// splineEval evaluates the cubic spline defined by (x, y, y2) at xq, given
// the index klo such that x[klo] <= xq <= x[klo+1]. ok is false (and the
// value 0) if xq falls outside [x[0], x[n-1]]; callers treat out-of-range
// queries as zero loudness, so the guard here replaces producing and then
// discarding a NaN.
func splineEval(x, y, y2 []float64, xq float64, klo int) (val float64, ok bool) {
	n := len(x)
	if n == 0 || xq < x[0] || xq > x[n-1] {
		return 0, false
	}
	khi := klo + 1
	if khi >= n {
		khi = n - 1
		klo = khi - 1
	}
	h := x[khi] - x[klo]
	if h == 0 {
		return 0, false
	}
	a := (x[khi] - xq) / h
	b := (xq - x[klo]) / h
	val = a*y[klo] + b*y[khi] +
		((a*a*a-a)*y2[klo]+(b*b*b-b)*y2[khi])*(h*h)/6.0
	return val, true
}

// bisect returns the largest index i such that x[i] <= val, searching the
// full range. Callers then use i (clamped to len(x)-2) as klo for
// splineEval.
func bisect(x []float64, val float64) int {
	i := sort.Search(len(x), func(i int) bool { return x[i] > val }) - 1
	if i < 0 {
		i = 0
	}
	if i > len(x)-2 {
		i = len(x) - 2
	}
	return i
}

// bisectFrom is bisect restricted to [lo, len(x)-1], exploiting a
// monotonically increasing sequence of queries: each call's result becomes
// the next call's lo, so the search window only ever shrinks from the
// previous hit instead of restarting at the whole range.
func bisectFrom(x []float64, val float64, lo int) int {
	if lo < 0 {
		lo = 0
	}
	if lo >= len(x) {
		lo = len(x) - 1
	}
	i := lo + sort.Search(len(x)-lo, func(i int) bool { return x[lo+i] > val }) - 1
	if i < lo {
		i = lo
	}
	if i > len(x)-2 {
		i = len(x) - 2
	}
	return i
}
