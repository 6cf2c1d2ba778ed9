// Package quality grades cleaned interval segments for HRV suitability
// against fixed, published artifact-rate and beat-count thresholds
package quality

// Class is a metric class with its own tolerance for residual artifacts
type Class string

const (
	// ClassTimeDomain covers RMSSD and SDNN
	ClassTimeDomain Class = "time_domain"
	// ClassPNN50 covers pNN50, which is far more artifact sensitive
	ClassPNN50 Class = "pnn50"
	// ClassFrequencyDomain covers LF, HF and the LF:HF ratio
	ClassFrequencyDomain Class = "frequency_domain"
)

// Classes lists every metric class in reporting order
func Classes() []Class {
	return []Class{ClassTimeDomain, ClassPNN50, ClassFrequencyDomain}
}

// Grade is the suitability verdict for one metric class
type Grade string

const (
	GradeExcellent    Grade = "excellent"
	GradeGood         Grade = "good"
	GradeAcceptable   Grade = "acceptable"
	GradePoor         Grade = "poor"
	GradeInsufficient Grade = "insufficient"
)

// threshold holds the per-class limits: the maximum artifact rate (%)
// at which the class is still usable, and the minimum beat count below
// which no rate can compensate
type threshold struct {
	maxRate  float64
	minBeats int
}

var thresholds = map[Class]threshold{
	ClassTimeDomain:      {maxRate: 36, minBeats: 100},
	ClassPNN50:           {maxRate: 4, minBeats: 100},
	ClassFrequencyDomain: {maxRate: 2, minBeats: 300},
}

// Result pairs a class with its grade for reporting
type Result struct {
	Class Class `json:"class"`
	Grade Grade `json:"grade"`
}

// GradeClass grades one metric class from beat count and artifact rate
// (percent). Below the minimum beat count the grade is insufficient
// regardless of rate; otherwise the grade scales by how far the rate sits
// under the class maximum. Rates above the maximum grade poor but are
// still reported, never dropped
func GradeClass(class Class, beats int, rate float64) Grade {
	th, ok := thresholds[class]
	if !ok {
		return GradeInsufficient
	}
	if beats < th.minBeats {
		return GradeInsufficient
	}
	switch {
	case rate <= th.maxRate*0.25:
		return GradeExcellent
	case rate <= th.maxRate*0.50:
		return GradeGood
	case rate <= th.maxRate:
		return GradeAcceptable
	default:
		return GradePoor
	}
}

// GradeAll grades every metric class in reporting order
func GradeAll(beats int, rate float64) []Result {
	classes := Classes()
	out := make([]Result, len(classes))
	for i, c := range classes {
		out[i] = Result{Class: c, Grade: GradeClass(c, beats, rate)}
	}
	return out
}
