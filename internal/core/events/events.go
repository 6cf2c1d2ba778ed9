// Package events canonicalizes raw marker labels from logger exports
// against a catalogue of canonical event names with synonym patterns.
// Labels are folded (NFKC, case fold, strip accents and format chars,
// width fold, collapse whitespace) before matching so vendor spelling
// variants map to one canonical name. Unknown labels stay unmapped,
// never error
package events

import (
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	perr "rrational/internal/platform/errors"
)

// RawEvent is one marker as delivered by the import layer
type RawEvent struct {
	At    time.Time `json:"at"`
	Label string    `json:"label"`
}

// Occurrence is a raw event after canonicalization. Canonical is empty
// for unmapped labels; those are retained for display but excluded from
// section matching
type Occurrence struct {
	At        time.Time `json:"at"`
	Raw       string    `json:"raw"`
	Canonical string    `json:"canonical,omitempty"`
}

// Mapped reports whether the occurrence resolved to a canonical name
func (o Occurrence) Mapped() bool { return o.Canonical != "" }

var chainPool = sync.Pool{
	New: func() any {
		// decompose before stripping marks: NFKC leaves common accents
		// precomposed, so Mn removal alone never sees them
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
			norm.NFC,
		)
	},
}

// Fold normalizes a label for matching
func Fold(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	return collapseSpaces(ns)
}

// collapseSpaces converts whitespace runs to a single ASCII space and trims
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}

// Catalogue maps folded raw labels to canonical event names. Synonyms
// are anchored lowercase regular expressions matched against the folded
// label; the canonical name itself always matches
type Catalogue struct {
	order    []string
	patterns map[string][]*regexp.Regexp
}

// NewCatalogue compiles a catalogue from canonical name to synonym
// patterns. Pattern order within a name is preserved; name order follows
// the given declaration order. Compilation failures reject the whole
// catalogue before any data is read
func NewCatalogue(names []string, synonyms map[string][]string) (*Catalogue, error) {
	c := &Catalogue{
		order:    append([]string(nil), names...),
		patterns: make(map[string][]*regexp.Regexp, len(names)),
	}
	for _, name := range names {
		var pats []*regexp.Regexp
		for _, syn := range synonyms[name] {
			re, err := regexp.Compile("^(?:" + syn + ")$")
			if err != nil {
				return nil, perr.InvalidConfigf("event %q synonym %q: %v", name, syn, err)
			}
			pats = append(pats, re)
		}
		c.patterns[name] = pats
	}
	return c, nil
}

// Names returns the canonical names in declaration order
func (c *Catalogue) Names() []string { return c.order }

// Resolve maps a raw label to its canonical name. The label is folded
// first; an exact match on the canonical name wins, then the synonym
// patterns in declaration order
func (c *Catalogue) Resolve(raw string) (string, bool) {
	folded := Fold(raw)
	if folded == "" {
		return "", false
	}
	for _, name := range c.order {
		if folded == name {
			return name, true
		}
		for _, re := range c.patterns[name] {
			if re.MatchString(folded) {
				return name, true
			}
		}
	}
	return "", false
}

// Canonicalize resolves every raw event against the catalogue, keeping
// input order. raw is not modified
func Canonicalize(raw []RawEvent, c *Catalogue) []Occurrence {
	if len(raw) == 0 {
		return nil
	}
	out := make([]Occurrence, len(raw))
	for i, ev := range raw {
		o := Occurrence{At: ev.At, Raw: ev.Label}
		if name, ok := c.Resolve(ev.Label); ok {
			o.Canonical = name
		}
		out[i] = o
	}
	return out
}

// CountDuplicates reports how many occurrences repeat an earlier
// (timestamp, raw label) pair. Logger exports occasionally double-write
// markers on resume
func CountDuplicates(occs []Occurrence) int {
	if len(occs) < 2 {
		return 0
	}
	type key struct {
		at  time.Time
		raw string
	}
	seen := make(map[key]bool, len(occs))
	dup := 0
	for _, o := range occs {
		k := key{at: o.At, raw: o.Raw}
		if seen[k] {
			dup++
			continue
		}
		seen[k] = true
	}
	return dup
}
