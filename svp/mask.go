package svp

import (
	"golang.org/x/exp/rand"
)

// Mask marks which entries of the value table are observed in one
// round. It is regenerated each round and never reused.
type Mask struct {
	rows, cols int
	set        []bool
	count      int
}

func newMask(rows, cols int) *Mask {
	return &Mask{rows: rows, cols: cols, set: make([]bool, rows*cols)}
}

func fullMask(rows, cols int) *Mask {
	m := newMask(rows, cols)
	for i := range m.set {
		m.set[i] = true
	}
	m.count = rows * cols
	return m
}

func (m *Mask) At(s, a int) bool {
	return m.set[s*m.cols+a]
}

func (m *Mask) Dims() (int, int) {
	return m.rows, m.cols
}

// Count is the number of observed entries.
func (m *Mask) Count() int {
	return m.count
}

// Full reports whether every entry is observed.
func (m *Mask) Full() bool {
	return m.count == m.rows*m.cols
}

// Sampler draws a fresh observation mask for each round, one
// independent Bernoulli trial per entry.
type Sampler struct {
	rows, cols int
	rate       float64
	rng        *rand.Rand
}

// NewSampler seeds a sampler for tables of the given shape. The same
// seed, shape and rate reproduce the same sequence of masks.
func NewSampler(rows, cols int, rate float64, seed uint64) *Sampler {
	return &Sampler{
		rows: rows,
		cols: cols,
		rate: rate,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Next draws the next mask. A rate of 1 skips the trials and returns an
// all-true mask.
func (s *Sampler) Next() *Mask {
	if s.rate >= 1 {
		return fullMask(s.rows, s.cols)
	}
	m := newMask(s.rows, s.cols)
	for i := range m.set {
		if s.rng.Float64() < s.rate {
			m.set[i] = true
			m.count++
		}
	}
	return m
}
