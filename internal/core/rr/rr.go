// Package rr defines the RR-interval series types shared across the pipeline
package rr

import "time"

// Interval is one beat-to-beat gap. RR is the duration in milliseconds
// since the previous detected beat; At is the beat timestamp. Sequences
// are ordered by At, non-decreasing, and may contain duplicate timestamps
// until they pass through Dedupe
type Interval struct {
	At time.Time `json:"at"`
	RR float64   `json:"rr_ms"`
}

// DuplicateGroup reports one run of raw records sharing a timestamp.
// Indexes are positions in the original input, first occurrence included
type DuplicateGroup struct {
	At      time.Time `json:"at"`
	Count   int       `json:"count"`
	Indexes []int     `json:"indexes"`
}

// Dedupe returns a copy of seq with later records at repeated timestamps
// removed, plus the duplicate groups in order of first occurrence. The
// first record at each timestamp is retained; values are never averaged
// or merged. seq is not modified
func Dedupe(seq []Interval) ([]Interval, []DuplicateGroup) {
	if len(seq) == 0 {
		return nil, nil
	}

	out := make([]Interval, 0, len(seq))
	var groups []DuplicateGroup

	i := 0
	for i < len(seq) {
		j := i + 1
		for j < len(seq) && seq[j].At.Equal(seq[i].At) {
			j++
		}
		out = append(out, seq[i])
		if j-i > 1 {
			idx := make([]int, 0, j-i)
			for k := i; k < j; k++ {
				idx = append(idx, k)
			}
			groups = append(groups, DuplicateGroup{At: seq[i].At, Count: j - i, Indexes: idx})
		}
		i = j
	}
	return out, groups
}

// Durations extracts the RR values from seq, preserving order
func Durations(seq []Interval) []float64 {
	if len(seq) == 0 {
		return nil
	}
	out := make([]float64, len(seq))
	for i, iv := range seq {
		out[i] = iv.RR
	}
	return out
}

// WithDurations returns a copy of seq with RR values replaced by rr.
// Panics if lengths differ; callers pair it with Durations output
func WithDurations(seq []Interval, rr []float64) []Interval {
	if len(seq) != len(rr) {
		panic("rr: WithDurations length mismatch")
	}
	out := make([]Interval, len(seq))
	for i, iv := range seq {
		out[i] = Interval{At: iv.At, RR: rr[i]}
	}
	return out
}

// Stats summarizes a duration series for recording overviews
type Stats struct {
	Count int     `json:"count"`
	Min   float64 `json:"min_ms"`
	Max   float64 `json:"max_ms"`
	Mean  float64 `json:"mean_ms"`
}

// Summarize computes Stats over rr. Zero value for an empty series
func Summarize(rr []float64) Stats {
	if len(rr) == 0 {
		return Stats{}
	}
	s := Stats{Count: len(rr), Min: rr[0], Max: rr[0]}
	sum := 0.0
	for _, v := range rr {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
		sum += v
	}
	s.Mean = sum / float64(len(rr))
	return s
}
