// Package correct replaces artifact-flagged RR values via interpolation
// or local-median substitution and reports what changed
package correct

import (
	"sort"

	"rrational/internal/core/artifact"
	perr "rrational/internal/platform/errors"
)

// Method selects the correction scheme
type Method string

const (
	// MethodLinear interpolates linearly over index positions
	MethodLinear Method = "linear"
	// MethodCubic fits a natural cubic spline; falls back to linear below 4 valid samples
	MethodCubic Method = "cubic"
	// MethodMedian substitutes the median of valid neighbors in a symmetric window
	MethodMedian Method = "median"
)

// DefaultMedianWindow is the half-width of the median neighbor window
const DefaultMedianWindow = 5

// Config controls correction. Zero values fall back to linear and the
// default median window
type Config struct {
	Method       Method
	MedianWindow int
}

// WithDefaults returns a copy with zero-valued fields filled in
func (c Config) WithDefaults() Config {
	if c.Method == "" {
		c.Method = MethodLinear
	}
	if c.MedianWindow == 0 {
		c.MedianWindow = DefaultMedianWindow
	}
	return c
}

// Validate rejects unusable configuration before any data is read
func (c Config) Validate() error {
	if c.MedianWindow <= 0 {
		return perr.InvalidConfigf("median_window %d must be positive", c.MedianWindow)
	}
	switch c.Method {
	case MethodLinear, MethodCubic, MethodMedian:
	default:
		return perr.InvalidConfigf("unknown correction method %q", c.Method)
	}
	return nil
}

// Report summarizes one correction pass. Rate is corrected/total as a
// percentage at full precision; display rounding is the caller's concern.
// UncorrectedIndexes lists artifact positions left at their original value
// because no valid neighbor was available
type Report struct {
	Total              int     `json:"total"`
	Corrected          int     `json:"corrected"`
	Uncorrected        int     `json:"uncorrected"`
	UncorrectedIndexes []int   `json:"uncorrected_indexes,omitempty"`
	Rate               float64 `json:"rate_pct"`
	Method             Method  `json:"method"`
}

// Correct returns a copy of rr with artifact positions replaced per cfg,
// plus a Report. Replacement values are derived only from positions that
// were valid before the pass started; one pass never cascades. rr is not
// modified
func Correct(rr []float64, mask artifact.Mask, cfg Config) ([]float64, Report, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, Report{}, err
	}
	if len(rr) < 2 {
		return nil, Report{}, perr.InsufficientDataf("need at least 2 intervals, got %d", len(rr))
	}
	if mask.Len() != len(rr) {
		return nil, Report{}, perr.InvalidArgf("mask length %d does not match series length %d", mask.Len(), len(rr))
	}

	out := make([]float64, len(rr))
	copy(out, rr)

	rep := Report{Total: len(rr), Method: cfg.Method}
	if mask.Count() == 0 {
		return out, rep, nil
	}

	switch cfg.Method {
	case MethodMedian:
		rep.UncorrectedIndexes = medianReplace(out, rr, mask, cfg.MedianWindow)
	default:
		rep.Method, rep.UncorrectedIndexes = interpolate(out, rr, mask, cfg.Method)
	}

	rep.Uncorrected = len(rep.UncorrectedIndexes)
	rep.Corrected = mask.Count() - rep.Uncorrected
	rep.Rate = float64(rep.Corrected) / float64(rep.Total) * 100
	return out, rep, nil
}

// medianReplace fills flagged positions in out with the median of valid
// neighbors within ±window of the original series. Returns the indexes
// left uncorrected because the window held no valid neighbor
func medianReplace(out, orig []float64, mask artifact.Mask, window int) []int {
	var uncorrectable []int
	neighbors := make([]float64, 0, 2*window)

	for _, i := range mask.Indexes() {
		neighbors = neighbors[:0]
		lo := i - window
		if lo < 0 {
			lo = 0
		}
		hi := i + window
		if hi > len(orig)-1 {
			hi = len(orig) - 1
		}
		for j := lo; j <= hi; j++ {
			if j == i || mask.Flagged(j) {
				continue
			}
			neighbors = append(neighbors, orig[j])
		}
		if len(neighbors) == 0 {
			uncorrectable = append(uncorrectable, i)
			continue
		}
		out[i] = median(neighbors)
	}
	return uncorrectable
}

// median sorts vals in place
func median(vals []float64) float64 {
	sort.Float64s(vals)
	n := len(vals)
	if n%2 == 1 {
		return vals[n/2]
	}
	return (vals[n/2-1] + vals[n/2]) / 2
}
