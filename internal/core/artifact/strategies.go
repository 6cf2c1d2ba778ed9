package artifact

import (
	"math"
	"sort"
)

// Strategy classifies a duration sequence into a boolean artifact mask.
// Implementations must be pure and safe for concurrent use
type Strategy interface {
	Name() string
	Classify(rr []float64) []bool
}

// rangeFilter flags any duration outside [low, high]
type rangeFilter struct {
	low, high float64
}

func (rangeFilter) Name() string { return string(MethodRange) }

func (f rangeFilter) Classify(rr []float64) []bool {
	out := make([]bool, len(rr))
	for i, v := range rr {
		out[i] = v < f.low || v > f.high
	}
	return out
}

// quotientFilter flags interval i when rr[i]/rr[i-1] deviates from 1 by
// more than the threshold fraction. The first interval has no predecessor
// and is never flagged by this rule
type quotientFilter struct {
	threshold float64
}

func (quotientFilter) Name() string { return string(MethodQuotient) }

func (f quotientFilter) Classify(rr []float64) []bool {
	out := make([]bool, len(rr))
	for i := 1; i < len(rr); i++ {
		prev := rr[i-1]
		if prev == 0 {
			out[i] = true
			continue
		}
		out[i] = math.Abs(rr[i]/prev-1) > f.threshold
	}
	return out
}

// adaptiveFilter flags interval i when its first difference exceeds a
// threshold derived from the interquartile spread of the surrounding
// differences. The window truncates at sequence boundaries, so the rule
// adapts to local volatility instead of one global cutoff
type adaptiveFilter struct {
	window int
	factor float64
}

func (adaptiveFilter) Name() string { return string(MethodAdaptive) }

func (f adaptiveFilter) Classify(rr []float64) []bool {
	out := make([]bool, len(rr))
	if len(rr) < 2 {
		return out
	}

	// diffs[k] is the change arriving at interval k+1
	diffs := make([]float64, len(rr)-1)
	for k := 1; k < len(rr); k++ {
		diffs[k-1] = rr[k] - rr[k-1]
	}

	scratch := make([]float64, 0, 2*f.window+1)
	for k := range diffs {
		lo := k - f.window
		if lo < 0 {
			lo = 0
		}
		hi := k + f.window + 1
		if hi > len(diffs) {
			hi = len(diffs)
		}
		scratch = scratch[:0]
		scratch = append(scratch, diffs[lo:hi]...)
		threshold := iqr(scratch) * f.factor
		if math.Abs(diffs[k]) > threshold {
			out[k+1] = true
		}
	}
	return out
}

// iqr computes the interquartile spread of vals. vals is sorted in place
func iqr(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sort.Float64s(vals)
	return quantile(vals, 0.75) - quantile(vals, 0.25)
}

// quantile interpolates linearly between the closest ranks of sorted vals
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
