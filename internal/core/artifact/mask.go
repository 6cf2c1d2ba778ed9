package artifact

// Mask is the per-interval artifact classification plus attribution of
// which strategies fired at each flagged index
type Mask struct {
	flags []bool
	fired [][]string
	count int
}

func newMask(n int) Mask {
	return Mask{flags: make([]bool, n), fired: make([][]string, n)}
}

// NewMask builds a mask from raw flags without strategy attribution.
// Used by callers that already hold a classification
func NewMask(flags []bool) Mask {
	m := newMask(len(flags))
	for i, f := range flags {
		if f {
			m.record(i, "")
		}
	}
	return m
}

func (m *Mask) record(i int, strategy string) {
	if !m.flags[i] {
		m.flags[i] = true
		m.count++
	}
	if strategy != "" {
		m.fired[i] = append(m.fired[i], strategy)
	}
}

// Len returns the mask length
func (m Mask) Len() int { return len(m.flags) }

// Flagged reports whether index i is classified as artifact
func (m Mask) Flagged(i int) bool { return m.flags[i] }

// FiredBy returns the strategy names that flagged index i, in run order.
// Nil when the index is clean
func (m Mask) FiredBy(i int) []string { return m.fired[i] }

// Count returns the number of flagged indexes
func (m Mask) Count() int { return m.count }

// Indexes returns the flagged positions in ascending order
func (m Mask) Indexes() []int {
	if m.count == 0 {
		return nil
	}
	out := make([]int, 0, m.count)
	for i, f := range m.flags {
		if f {
			out = append(out, i)
		}
	}
	return out
}

// Flags returns a copy of the raw boolean mask
func (m Mask) Flags() []bool {
	out := make([]bool, len(m.flags))
	copy(out, m.flags)
	return out
}
