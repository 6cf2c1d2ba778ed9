package correct

import "rrational/internal/core/artifact"

// interpolate fills flagged positions in out by fitting an interpolant
// over index position using only valid samples. Returns the method that
// was actually applied (cubic falls back to linear below 4 valid samples)
// and any indexes that could not be filled
func interpolate(out, orig []float64, mask artifact.Mask, method Method) (Method, []int) {
	xs := make([]float64, 0, len(orig))
	ys := make([]float64, 0, len(orig))
	for i, v := range orig {
		if !mask.Flagged(i) {
			xs = append(xs, float64(i))
			ys = append(ys, v)
		}
	}

	switch len(xs) {
	case 0:
		// nothing to anchor on; every flagged value stays as-is
		return method, mask.Indexes()
	case 1:
		for _, i := range mask.Indexes() {
			out[i] = ys[0]
		}
		return method, nil
	}

	eval := evalLinear(xs, ys)
	applied := method
	if method == MethodCubic {
		if len(xs) >= 4 {
			eval = evalSpline(xs, ys)
		} else {
			applied = MethodLinear
		}
	}

	for _, i := range mask.Indexes() {
		out[i] = eval(float64(i))
	}
	return applied, nil
}

// evalLinear interpolates between surrounding known samples and
// extrapolates past the edges along the outermost segment
func evalLinear(xs, ys []float64) func(float64) float64 {
	return func(x float64) float64 {
		hi := searchSegment(xs, x)
		lo := hi - 1
		return ys[lo] + (ys[hi]-ys[lo])*(x-xs[lo])/(xs[hi]-xs[lo])
	}
}

// searchSegment returns the index of the right endpoint of the segment
// that covers x, clamped so edge queries extrapolate on the outer segment
func searchSegment(xs []float64, x float64) int {
	lo, hi := 1, len(xs)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if xs[mid] < x {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// evalSpline fits a natural cubic spline through (xs, ys) and evaluates
// it inside the knot range; beyond the edges it extends the endpoint
// tangent linearly rather than leaving edge artifacts uncorrected
func evalSpline(xs, ys []float64) func(float64) float64 {
	n := len(xs)

	// Tridiagonal solve for the second derivatives, natural boundary
	// conditions (m[0] = m[n-1] = 0)
	h := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		h[i] = xs[i+1] - xs[i]
	}
	sub := make([]float64, n)
	diag := make([]float64, n)
	sup := make([]float64, n)
	rhs := make([]float64, n)
	diag[0], diag[n-1] = 1, 1
	for i := 1; i < n-1; i++ {
		sub[i] = h[i-1]
		diag[i] = 2 * (h[i-1] + h[i])
		sup[i] = h[i]
		rhs[i] = 6 * ((ys[i+1]-ys[i])/h[i] - (ys[i]-ys[i-1])/h[i-1])
	}
	m := solveTridiag(sub, diag, sup, rhs)

	spline := func(x float64) float64 {
		hi := searchSegment(xs, x)
		lo := hi - 1
		dx := xs[hi] - xs[lo]
		a := (xs[hi] - x) / dx
		b := (x - xs[lo]) / dx
		return a*ys[lo] + b*ys[hi] +
			((a*a*a-a)*m[lo]+(b*b*b-b)*m[hi])*dx*dx/6
	}

	// endpoint tangents for linear extension
	slopeLo := (ys[1]-ys[0])/h[0] - h[0]*m[1]/6
	slopeHi := (ys[n-1]-ys[n-2])/h[n-2] + h[n-2]*m[n-2]/6

	return func(x float64) float64 {
		switch {
		case x < xs[0]:
			return ys[0] + slopeLo*(x-xs[0])
		case x > xs[n-1]:
			return ys[n-1] + slopeHi*(x-xs[n-1])
		default:
			return spline(x)
		}
	}
}

// solveTridiag runs the Thomas algorithm; inputs are clobbered
func solveTridiag(sub, diag, sup, rhs []float64) []float64 {
	n := len(diag)
	for i := 1; i < n; i++ {
		w := sub[i] / diag[i-1]
		diag[i] -= w * sup[i-1]
		rhs[i] -= w * rhs[i-1]
	}
	out := make([]float64, n)
	out[n-1] = rhs[n-1] / diag[n-1]
	for i := n - 2; i >= 0; i-- {
		out[i] = (rhs[i] - sup[i]*out[i+1]) / diag[i]
	}
	return out
}
