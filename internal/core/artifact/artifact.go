// Package artifact classifies RR intervals as valid or artifact using
// interchangeable detection strategies keyed by configuration
package artifact

import (
	perr "rrational/internal/platform/errors"
)

// Method selects the detection strategy
type Method string

const (
	// MethodRange flags durations outside the [LowRRI, HighRRI] band
	MethodRange Method = "range"
	// MethodQuotient flags intervals whose ratio to the predecessor deviates too far from 1
	MethodQuotient Method = "quotient"
	// MethodAdaptive flags intervals by local difference dispersion (Tarvainen-style)
	MethodAdaptive Method = "adaptive"
	// MethodAll runs every strategy and ORs the masks
	MethodAll Method = "all"
)

// Defaults for Config fields left at their zero value
const (
	DefaultLowRRI            = 300.0
	DefaultHighRRI           = 2000.0
	DefaultQuotientThreshold = 0.2
	DefaultAdaptiveWindow    = 45
	DefaultAdaptiveFactor    = 5.2
)

// Config controls detection. Zero values fall back to the defaults above;
// Method defaults to MethodRange
type Config struct {
	LowRRI            float64
	HighRRI           float64
	Method            Method
	QuotientThreshold float64
	AdaptiveWindow    int
	AdaptiveFactor    float64
}

// WithDefaults returns a copy with zero-valued fields filled in
func (c Config) WithDefaults() Config {
	if c.LowRRI == 0 {
		c.LowRRI = DefaultLowRRI
	}
	if c.HighRRI == 0 {
		c.HighRRI = DefaultHighRRI
	}
	if c.Method == "" {
		c.Method = MethodRange
	}
	if c.QuotientThreshold == 0 {
		c.QuotientThreshold = DefaultQuotientThreshold
	}
	if c.AdaptiveWindow == 0 {
		c.AdaptiveWindow = DefaultAdaptiveWindow
	}
	if c.AdaptiveFactor == 0 {
		c.AdaptiveFactor = DefaultAdaptiveFactor
	}
	return c
}

// Validate rejects physiologically insane configuration before any data is read
func (c Config) Validate() error {
	if c.LowRRI >= c.HighRRI {
		return perr.InvalidConfigf("low_rri %v must be below high_rri %v", c.LowRRI, c.HighRRI)
	}
	if c.LowRRI < 0 {
		return perr.InvalidConfigf("low_rri %v must not be negative", c.LowRRI)
	}
	if c.QuotientThreshold <= 0 {
		return perr.InvalidConfigf("quotient_threshold %v must be positive", c.QuotientThreshold)
	}
	if c.AdaptiveWindow <= 0 {
		return perr.InvalidConfigf("adaptive_window %d must be positive", c.AdaptiveWindow)
	}
	if c.AdaptiveFactor <= 0 {
		return perr.InvalidConfigf("adaptive_factor %v must be positive", c.AdaptiveFactor)
	}
	switch c.Method {
	case MethodRange, MethodQuotient, MethodAdaptive, MethodAll:
	default:
		return perr.InvalidConfigf("unknown ectopic method %q", c.Method)
	}
	return nil
}

// Detect runs the configured strategies over rr and returns the combined
// mask with per-index strategy attribution. Strategies are ORed; an index
// may carry more than one firing strategy. rr is not modified
func Detect(rr []float64, cfg Config) (Mask, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Mask{}, err
	}

	m := newMask(len(rr))
	if len(rr) == 0 {
		return m, nil
	}

	for _, s := range cfg.strategies() {
		flags := s.Classify(rr)
		for i, f := range flags {
			if f {
				m.record(i, s.Name())
			}
		}
	}
	return m, nil
}

func (c Config) strategies() []Strategy {
	switch c.Method {
	case MethodQuotient:
		return []Strategy{quotientFilter{threshold: c.QuotientThreshold}}
	case MethodAdaptive:
		return []Strategy{adaptiveFilter{window: c.AdaptiveWindow, factor: c.AdaptiveFactor}}
	case MethodAll:
		return []Strategy{
			rangeFilter{low: c.LowRRI, high: c.HighRRI},
			quotientFilter{threshold: c.QuotientThreshold},
			adaptiveFilter{window: c.AdaptiveWindow, factor: c.AdaptiveFactor},
		}
	default:
		return []Strategy{rangeFilter{low: c.LowRRI, high: c.HighRRI}}
	}
}
