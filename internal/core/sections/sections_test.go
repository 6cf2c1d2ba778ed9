package sections

import (
	"testing"
	"time"

	"rrational/internal/core/events"
	"rrational/internal/core/rr"
	perr "rrational/internal/platform/errors"
)

var base = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func at(sec int) time.Time { return base.Add(time.Duration(sec) * time.Second) }

func occ(sec int, canonical string) events.Occurrence {
	return events.Occurrence{At: at(sec), Raw: canonical, Canonical: canonical}
}

func restDef() Definition {
	return Definition{
		Name:      "rest",
		Start:     "rest_start",
		Ends:      []string{"rest_end", "task_start"},
		Expected:  5 * time.Minute,
		Tolerance: time.Minute,
	}
}

func TestResolve_Valid(t *testing.T) {
	occs := []events.Occurrence{occ(0, "rest_start"), occ(300, "rest_end")}

	in, err := Resolve(restDef(), occs, at(600))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if in.Status != StatusValid {
		t.Fatalf("status = %v, want valid", in.Status)
	}
	if !in.StartAt.Equal(at(0)) || !in.EndAt.Equal(at(300)) {
		t.Fatalf("bounds = (%v, %v), want (t0, t300)", in.StartAt, in.EndAt)
	}
	if in.EndEvent != "rest_end" {
		t.Fatalf("end event = %q", in.EndEvent)
	}
	if in.Duration() != 5*time.Minute {
		t.Fatalf("duration = %v", in.Duration())
	}
}

func TestResolve_MissingEnd(t *testing.T) {
	occs := []events.Occurrence{occ(0, "rest_start")}

	in, err := Resolve(restDef(), occs, at(900))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if in.Status != StatusMissingEnd {
		t.Fatalf("status = %v, want missing_end", in.Status)
	}
	if !in.EndAt.Equal(at(900)) || !in.OpenEnded {
		t.Fatalf("instance = %+v, want open-ended at recording end", in)
	}
}

func TestResolve_MissingStart(t *testing.T) {
	occs := []events.Occurrence{occ(300, "rest_end")}

	in, err := Resolve(restDef(), occs, at(900))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if in.Status != StatusMissingStart {
		t.Fatalf("status = %v, want missing_start", in.Status)
	}
	if in.Duration() != 0 {
		t.Fatalf("duration = %v, want 0 without bounds", in.Duration())
	}
}

func TestResolve_OutOfTolerance(t *testing.T) {
	occs := []events.Occurrence{occ(0, "rest_start"), occ(500, "rest_end")}

	in, err := Resolve(restDef(), occs, at(900))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	// 500s vs expected 300s exceeds the 60s tolerance, but bounds resolve
	if in.Status != StatusOutOfTolerance {
		t.Fatalf("status = %v, want duration_out_of_tolerance", in.Status)
	}
	if !in.EndAt.Equal(at(500)) {
		t.Fatalf("bounds still resolved, got end %v", in.EndAt)
	}
}

func TestResolve_EarliestEndWins(t *testing.T) {
	occs := []events.Occurrence{
		occ(0, "rest_start"),
		occ(200, "task_start"),
		occ(300, "rest_end"),
	}

	in, err := Resolve(restDef(), occs, at(900))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if in.EndEvent != "task_start" || !in.EndAt.Equal(at(200)) {
		t.Fatalf("end = (%q, %v), want earliest candidate task_start at t200", in.EndEvent, in.EndAt)
	}
}

func TestResolve_TieBreaksByDeclarationOrder(t *testing.T) {
	// both end candidates at t=300; rest_end is declared first
	occs := []events.Occurrence{
		occ(0, "rest_start"),
		occ(300, "task_start"),
		occ(300, "rest_end"),
	}

	in, err := Resolve(restDef(), occs, at(900))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if in.EndEvent != "rest_end" {
		t.Fatalf("end event = %q, want rest_end by declaration order", in.EndEvent)
	}
}

func TestResolve_FirstStartOnly(t *testing.T) {
	occs := []events.Occurrence{
		occ(0, "rest_start"),
		occ(100, "rest_start"),
		occ(300, "rest_end"),
	}

	in, err := Resolve(restDef(), occs, at(900))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !in.StartAt.Equal(at(0)) {
		t.Fatalf("start = %v, want first occurrence", in.StartAt)
	}
}

func TestResolve_EndMustFollowStart(t *testing.T) {
	// an end candidate at the exact start timestamp does not close the section
	occs := []events.Occurrence{
		occ(100, "rest_end"),
		occ(200, "rest_start"),
		occ(200, "rest_end"),
		occ(400, "rest_end"),
	}

	in, err := Resolve(restDef(), occs, at(900))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !in.StartAt.Equal(at(200)) || !in.EndAt.Equal(at(400)) {
		t.Fatalf("bounds = (%v, %v), want (t200, t400)", in.StartAt, in.EndAt)
	}
}

func TestResolve_UnmappedNeverMatches(t *testing.T) {
	occs := []events.Occurrence{
		{At: at(0), Raw: "rest_start"}, // unmapped, Canonical empty
		occ(10, "rest_start"),
		occ(300, "rest_end"),
	}

	in, err := Resolve(restDef(), occs, at(900))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !in.StartAt.Equal(at(10)) {
		t.Fatalf("start = %v, want first mapped occurrence", in.StartAt)
	}
}

func TestResolve_ValidatesDefinition(t *testing.T) {
	_, err := Resolve(Definition{Name: "x", Start: "a"}, nil, at(0))
	if !perr.IsCode(err, perr.ErrorCodeInvalidConfig) {
		t.Fatalf("err = %v, want invalid config for empty end set", err)
	}
}

func TestBuild_OrderAndStatuses(t *testing.T) {
	defs := []Definition{
		restDef(),
		{Name: "task", Start: "task_start", Ends: []string{"task_end"}},
	}
	occs := []events.Occurrence{occ(0, "rest_start"), occ(300, "rest_end")}

	out, err := Build(defs, occs, at(900))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].Def.Name != "rest" || out[0].Status != StatusValid {
		t.Fatalf("out[0] = %+v", out[0])
	}
	if out[1].Status != StatusMissingStart {
		t.Fatalf("out[1] = %+v, want missing_start reported, not dropped", out[1])
	}
}

func TestSlice(t *testing.T) {
	seq := []rr.Interval{
		{At: at(0), RR: 800},
		{At: at(100), RR: 810},
		{At: at(300), RR: 790},
		{At: at(400), RR: 820},
	}
	in := Instance{Status: StatusValid, StartAt: at(100), EndAt: at(300)}

	got := Slice(seq, in)
	if len(got) != 2 || got[0].RR != 810 || got[1].RR != 790 {
		t.Fatalf("Slice = %v, want intervals at t100 and t300", got)
	}

	if s := Slice(seq, Instance{Status: StatusMissingStart}); s != nil {
		t.Fatalf("missing_start slice = %v, want nil", s)
	}
}

func TestDefaultDefinitionsValidate(t *testing.T) {
	for _, d := range DefaultDefinitions() {
		if err := d.Validate(); err != nil {
			t.Fatalf("default definition %q invalid: %v", d.Name, err)
		}
	}
}
