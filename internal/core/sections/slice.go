package sections

import (
	"time"

	"rrational/internal/core/events"
	"rrational/internal/core/rr"
)

// Slice returns the intervals of seq falling within the instance bounds,
// start inclusive, end inclusive. Empty for missing_start instances.
// seq must be ordered by timestamp
func Slice(seq []rr.Interval, in Instance) []rr.Interval {
	if in.Status == StatusMissingStart || len(seq) == 0 {
		return nil
	}
	var out []rr.Interval
	for _, iv := range seq {
		if iv.At.Before(in.StartAt) {
			continue
		}
		if iv.At.After(in.EndAt) {
			break
		}
		out = append(out, iv)
	}
	return out
}

// DefaultDefinitions returns the built-in session protocol: a resting
// baseline, the measurement block with an optional pause, and a closing
// rest. Expected durations follow the standard short-term HRV protocol
func DefaultDefinitions() []Definition {
	return []Definition{
		{
			Name:      "rest_pre",
			Label:     "Resting baseline",
			Start:     events.RestPreStart,
			Ends:      []string{events.RestPreEnd, events.MeasurementStart},
			Expected:  5 * time.Minute,
			Tolerance: time.Minute,
		},
		{
			Name:  "measurement",
			Label: "Measurement",
			Start: events.MeasurementStart,
			Ends:  []string{events.MeasurementEnd, events.RestPostStart},
		},
		{
			Name:  "pause",
			Label: "Pause",
			Start: events.PauseStart,
			Ends:  []string{events.PauseEnd, events.MeasurementEnd},
		},
		{
			Name:      "rest_post",
			Label:     "Closing rest",
			Start:     events.RestPostStart,
			Ends:      []string{events.RestPostEnd},
			Expected:  5 * time.Minute,
			Tolerance: time.Minute,
		},
	}
}
