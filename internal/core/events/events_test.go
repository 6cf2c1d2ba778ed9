package events

import (
	"testing"
	"time"

	perr "rrational/internal/platform/errors"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{name: "identity", in: "rest_pre_start", out: "rest_pre_start"},
		{name: "case fold", in: "Rest_Pre_START", out: "rest_pre_start"},
		{name: "collapse whitespace", in: "  rest \t pre  start ", out: "rest pre start"},
		{name: "fullwidth", in: "ｐａｕｓｅ", out: "pause"},
		{name: "zero width removed", in: "pau​se", out: "pause"},
		{name: "combining mark stripped", in: "pausé", out: "pause"},
		{name: "precomposed mark stripped", in: "pausé", out: "pause"},
		{name: "umlaut stripped", in: "Übung Ende", out: "ubung ende"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := Fold(tc.in)
			if got != tc.out {
				t.Fatalf("Fold(%q) = %q, want %q", tc.in, got, tc.out)
			}
			if again := Fold(got); again != got {
				t.Fatalf("Fold not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestCatalogueResolve(t *testing.T) {
	c := DefaultCatalogue()

	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{raw: "rest_pre_start", want: RestPreStart, ok: true},
		{raw: "Rest Pre Start", want: RestPreStart, ok: true},
		{raw: "BASELINE-START", want: RestPreStart, ok: true},
		{raw: "task start", want: MeasurementStart, ok: true},
		{raw: "Messung Ende", want: MeasurementEnd, ok: true},
		{raw: "break_start", want: PauseStart, ok: true},
		{raw: "coffee", want: "", ok: false},
		{raw: "", want: "", ok: false},
	}

	for _, tc := range tests {
		got, ok := c.Resolve(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("Resolve(%q) = (%q, %v), want (%q, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNewCatalogue_BadPattern(t *testing.T) {
	_, err := NewCatalogue([]string{"x"}, map[string][]string{"x": {"("}})
	if !perr.IsCode(err, perr.ErrorCodeInvalidConfig) {
		t.Fatalf("err = %v, want invalid config", err)
	}
}

func TestCanonicalize(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	raw := []RawEvent{
		{At: t0, Label: "Baseline Start"},
		{At: t0.Add(5 * time.Minute), Label: "note: coffee spilled"},
		{At: t0.Add(6 * time.Minute), Label: "task_start"},
	}

	occs := Canonicalize(raw, DefaultCatalogue())
	if len(occs) != 3 {
		t.Fatalf("len = %d, want 3 with unmapped retained", len(occs))
	}
	if occs[0].Canonical != RestPreStart {
		t.Fatalf("occs[0] = %+v", occs[0])
	}
	if occs[1].Mapped() {
		t.Fatalf("unknown label mapped: %+v", occs[1])
	}
	if occs[1].Raw != "note: coffee spilled" {
		t.Fatalf("raw label not retained: %+v", occs[1])
	}
	if occs[2].Canonical != MeasurementStart {
		t.Fatalf("occs[2] = %+v", occs[2])
	}
}

func TestCountDuplicates(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	occs := []Occurrence{
		{At: t0, Raw: "task_start"},
		{At: t0, Raw: "task_start"},
		{At: t0, Raw: "task_end"},
		{At: t0.Add(time.Minute), Raw: "task_start"},
	}
	if got := CountDuplicates(occs); got != 1 {
		t.Fatalf("CountDuplicates = %d, want 1", got)
	}
	if got := CountDuplicates(nil); got != 0 {
		t.Fatalf("CountDuplicates(nil) = %d, want 0", got)
	}
}
