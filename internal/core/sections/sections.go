// Package sections resolves time-bounded session segments from
// canonicalized event occurrences against a catalogue of definitions
package sections

import (
	"time"

	"rrational/internal/core/events"
	perr "rrational/internal/platform/errors"
)

// Status classifies a resolved section instance
type Status string

const (
	// StatusValid means bounds resolved and duration is within tolerance
	StatusValid Status = "valid"
	// StatusOutOfTolerance means bounds resolved but actual duration
	// deviates from the expected duration by more than the tolerance
	StatusOutOfTolerance Status = "duration_out_of_tolerance"
	// StatusMissingStart means the start event never occurred
	StatusMissingStart Status = "missing_start"
	// StatusMissingEnd means no end event occurred after the start; the
	// instance is open-ended at the recording end
	StatusMissingEnd Status = "missing_end"
)

// Definition declares one expected section. Start is a single canonical
// event name; Ends is a non-empty set of canonical names where the first
// occurrence after the start wins. Expected and Tolerance are optional;
// when Expected is zero no duration check is applied
type Definition struct {
	Name      string        `json:"name"`
	Label     string        `json:"label,omitempty"`
	Start     string        `json:"start_event"`
	Ends      []string      `json:"end_events"`
	Expected  time.Duration `json:"expected_duration,omitempty"`
	Tolerance time.Duration `json:"tolerance,omitempty"`
}

// Validate rejects unusable definitions before any matching runs
func (d Definition) Validate() error {
	if d.Name == "" {
		return perr.InvalidConfigf("section definition without a name")
	}
	if d.Start == "" {
		return perr.InvalidConfigf("section %q has no start event", d.Name)
	}
	if len(d.Ends) == 0 {
		return perr.InvalidConfigf("section %q has no end events", d.Name)
	}
	if d.Tolerance < 0 {
		return perr.InvalidConfigf("section %q tolerance must not be negative", d.Name)
	}
	return nil
}

// Instance is a resolved section. StartAt/EndAt are meaningful only when
// the status is not missing_start; for missing_end EndAt is the end of
// the recording and OpenEnded is set
type Instance struct {
	Def       Definition `json:"definition"`
	StartAt   time.Time  `json:"start_at"`
	EndAt     time.Time  `json:"end_at"`
	EndEvent  string     `json:"end_event,omitempty"`
	Status    Status     `json:"status"`
	OpenEnded bool       `json:"open_ended,omitempty"`
}

// Duration returns EndAt - StartAt; zero for missing_start instances
func (in Instance) Duration() time.Duration {
	if in.Status == StatusMissingStart {
		return 0
	}
	return in.EndAt.Sub(in.StartAt)
}

// Resolve matches one definition against occurrences sorted by timestamp.
// Only the first start occurrence is used; repeated sections need distinct
// definitions. The end is the earliest occurrence of any name in Ends
// strictly after the start; a timestamp tie between end candidates breaks
// by declaration order in Ends. Unmapped occurrences never match
func Resolve(def Definition, occs []events.Occurrence, recordingEnd time.Time) (Instance, error) {
	if err := def.Validate(); err != nil {
		return Instance{}, err
	}

	in := Instance{Def: def}

	startIdx := -1
	for i, o := range occs {
		if o.Canonical == def.Start {
			startIdx = i
			break
		}
	}
	if startIdx < 0 {
		in.Status = StatusMissingStart
		return in, nil
	}
	in.StartAt = occs[startIdx].At

	endRank := make(map[string]int, len(def.Ends))
	for r, name := range def.Ends {
		endRank[name] = r
	}

	endIdx := -1
	for i := startIdx + 1; i < len(occs); i++ {
		o := occs[i]
		rank, ok := endRank[o.Canonical]
		if !ok || !o.At.After(in.StartAt) {
			continue
		}
		if endIdx < 0 {
			endIdx = i
			continue
		}
		best := occs[endIdx]
		if o.At.Before(best.At) || (o.At.Equal(best.At) && rank < endRank[best.Canonical]) {
			endIdx = i
		}
	}
	if endIdx < 0 {
		in.Status = StatusMissingEnd
		in.EndAt = recordingEnd
		in.OpenEnded = true
		return in, nil
	}
	in.EndAt = occs[endIdx].At
	in.EndEvent = occs[endIdx].Canonical

	in.Status = StatusValid
	if def.Expected > 0 {
		dev := in.Duration() - def.Expected
		if dev < 0 {
			dev = -dev
		}
		if dev > def.Tolerance {
			in.Status = StatusOutOfTolerance
		}
	}
	return in, nil
}

// Build resolves every definition in order. A definition that fails
// validation aborts the whole build; degraded matches (missing start or
// end) are statuses, not errors
func Build(defs []Definition, occs []events.Occurrence, recordingEnd time.Time) ([]Instance, error) {
	if len(defs) == 0 {
		return nil, nil
	}
	out := make([]Instance, 0, len(defs))
	for _, def := range defs {
		in, err := Resolve(def, occs, recordingEnd)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, nil
}
