// Package pipeline composes the cleaning stages into one deterministic
// run: duplicate resolution, artifact detection, correction, section
// matching and quality grading. Every run is a pure function of its
// input; inputs are never mutated and reruns are idempotent
package pipeline

import (
	"time"

	"rrational/internal/core/artifact"
	"rrational/internal/core/correct"
	"rrational/internal/core/events"
	"rrational/internal/core/quality"
	"rrational/internal/core/rr"
	"rrational/internal/core/sections"
	perr "rrational/internal/platform/errors"
)

// Version stamps results so persisted runs can be invalidated when the
// cleaning semantics change
const Version = 2

// Options is the recognized configuration surface. Zero values fall back
// to the stage defaults
type Options struct {
	LowRRI            float64         `json:"low_rri,omitempty"`
	HighRRI           float64         `json:"high_rri,omitempty"`
	EctopicMethod     artifact.Method `json:"ectopic_method,omitempty"`
	QuotientThreshold float64         `json:"quotient_threshold,omitempty"`
	AdaptiveWindow    int             `json:"adaptive_window,omitempty"`
	AdaptiveFactor    float64         `json:"adaptive_factor,omitempty"`
	CorrectionMethod  correct.Method  `json:"correction_method,omitempty"`
	MedianWindow      int             `json:"median_window,omitempty"`
}

func (o Options) detection() artifact.Config {
	return artifact.Config{
		LowRRI:            o.LowRRI,
		HighRRI:           o.HighRRI,
		Method:            o.EctopicMethod,
		QuotientThreshold: o.QuotientThreshold,
		AdaptiveWindow:    o.AdaptiveWindow,
		AdaptiveFactor:    o.AdaptiveFactor,
	}.WithDefaults()
}

func (o Options) correction() correct.Config {
	return correct.Config{
		Method:       o.CorrectionMethod,
		MedianWindow: o.MedianWindow,
	}.WithDefaults()
}

// Validate checks the full configuration surface before any data is read
func (o Options) Validate() error {
	if err := o.detection().Validate(); err != nil {
		return err
	}
	return o.correction().Validate()
}

// Input is one session's worth of raw material. Catalogue and Sections
// default to the built-in protocol when nil
type Input struct {
	Intervals []rr.Interval
	Events    []events.RawEvent
	Catalogue *events.Catalogue
	Sections  []sections.Definition
	Opts      Options
}

// SectionResult is one resolved section with its grading
type SectionResult struct {
	Instance sections.Instance `json:"instance"`
	Beats    int               `json:"beats"`
	Rate     float64           `json:"rate_pct"`
	Grades   []quality.Result  `json:"grades"`
}

// Result is everything a run exposes upward. Cleaned carries the
// deduplicated timestamps with corrected durations
type Result struct {
	Cleaned    []rr.Interval       `json:"cleaned"`
	Duplicates []rr.DuplicateGroup `json:"duplicates,omitempty"`
	Mask       artifact.Mask       `json:"-"`
	Report     correct.Report      `json:"report"`
	Events     []events.Occurrence `json:"events,omitempty"`
	DupEvents  int                 `json:"duplicate_events,omitempty"`
	Sections   []SectionResult     `json:"sections,omitempty"`
	Stats      rr.Stats            `json:"stats"`
	Version    int                 `json:"version"`
}

// Run executes the full pipeline over one session. Configuration is
// validated first; fewer than 2 intervals after deduplication aborts
// with an insufficient data error. Section statuses and uncorrectable
// indexes are reported in the result, never raised
func Run(in Input) (*Result, error) {
	if err := in.Opts.Validate(); err != nil {
		return nil, err
	}

	deduped, dupGroups := rr.Dedupe(in.Intervals)
	if len(deduped) < 2 {
		return nil, perr.InsufficientDataf("need at least 2 intervals after deduplication, got %d", len(deduped))
	}

	durations := rr.Durations(deduped)
	mask, err := artifact.Detect(durations, in.Opts.detection())
	if err != nil {
		return nil, err
	}
	corrected, report, err := correct.Correct(durations, mask, in.Opts.correction())
	if err != nil {
		return nil, err
	}

	cat := in.Catalogue
	if cat == nil {
		cat = events.DefaultCatalogue()
	}
	defs := in.Sections
	if defs == nil {
		defs = sections.DefaultDefinitions()
	}

	occs := events.Canonicalize(in.Events, cat)
	cleaned := rr.WithDurations(deduped, corrected)

	instances, err := sections.Build(defs, occs, RecordingEnd(cleaned))
	if err != nil {
		return nil, err
	}

	res := &Result{
		Cleaned:    cleaned,
		Duplicates: dupGroups,
		Mask:       mask,
		Report:     report,
		Events:     occs,
		DupEvents:  events.CountDuplicates(occs),
		Stats:      rr.Summarize(corrected),
		Version:    Version,
	}

	for _, inst := range instances {
		res.Sections = append(res.Sections, gradeSection(cleaned, mask, inst))
	}
	return res, nil
}

// gradeSection slices the cleaned series to the instance bounds and
// grades it by its local artifact rate. missing_start sections grade
// insufficient on zero beats
func gradeSection(cleaned []rr.Interval, mask artifact.Mask, inst sections.Instance) SectionResult {
	slice := sections.Slice(cleaned, inst)
	beats := len(slice)

	flagged := 0
	if beats > 0 {
		// the slice shares index space with the full cleaned series
		start := 0
		for start < len(cleaned) && cleaned[start].At.Before(inst.StartAt) {
			start++
		}
		for i := start; i < start+beats; i++ {
			if mask.Flagged(i) {
				flagged++
			}
		}
	}

	rate := 0.0
	if beats > 0 {
		rate = float64(flagged) / float64(beats) * 100
	}
	return SectionResult{
		Instance: inst,
		Beats:    beats,
		Rate:     rate,
		Grades:   quality.GradeAll(beats, rate),
	}
}

// RecordingEnd returns the last interval timestamp, zero for empty input
func RecordingEnd(seq []rr.Interval) time.Time {
	if len(seq) == 0 {
		return time.Time{}
	}
	return seq[len(seq)-1].At
}
