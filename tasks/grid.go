// Package tasks implements the benchmark control problems against the
// mdp contract, plus the shared uniform grid discretizer.
package tasks

import "math"

// Grid is a uniform discretization of a box in R^n. Each axis carries
// count points spanning [low, high] endpoints included; indices are
// row-major with the first axis varying slowest.
type Grid struct {
	lows    []float64
	highs   []float64
	counts  []int
	strides []int
	size    int
}

func NewGrid(lows, highs []float64, counts []int) *Grid {
	if len(lows) != len(highs) || len(lows) != len(counts) {
		panic("tasks: mismatched grid axis lengths")
	}
	strides := make([]int, len(counts))
	size := 1
	for d := len(counts) - 1; d >= 0; d-- {
		if counts[d] < 1 {
			panic("tasks: grid axis with no points")
		}
		strides[d] = size
		size *= counts[d]
	}
	return &Grid{
		lows:    append([]float64(nil), lows...),
		highs:   append([]float64(nil), highs...),
		counts:  append([]int(nil), counts...),
		strides: strides,
		size:    size,
	}
}

// Len is the total number of grid points.
func (g *Grid) Len() int {
	return g.size
}

// Axes is the dimensionality of the box.
func (g *Grid) Axes() int {
	return len(g.counts)
}

// Count is the number of points along axis d.
func (g *Grid) Count(d int) int {
	return g.counts[d]
}

// Low and High bound axis d.
func (g *Grid) Low(d int) float64 {
	return g.lows[d]
}

func (g *Grid) High(d int) float64 {
	return g.highs[d]
}

// AxisPoint is the continuous coordinate of the i-th point on axis d.
func (g *Grid) AxisPoint(d, i int) float64 {
	if g.counts[d] == 1 {
		return g.lows[d]
	}
	step := (g.highs[d] - g.lows[d]) / float64(g.counts[d]-1)
	return g.lows[d] + float64(i)*step
}

// Index snaps a continuous point to the nearest grid point. Coordinates
// outside the box clamp to the boundary.
func (g *Grid) Index(point []float64) int {
	index := 0
	for d := range g.counts {
		index += g.axisIndex(d, point[d]) * g.strides[d]
	}
	return index
}

func (g *Grid) axisIndex(d int, x float64) int {
	if g.counts[d] == 1 {
		return 0
	}
	step := (g.highs[d] - g.lows[d]) / float64(g.counts[d]-1)
	i := int(math.Round((x - g.lows[d]) / step))
	if i < 0 {
		return 0
	}
	if i >= g.counts[d] {
		return g.counts[d] - 1
	}
	return i
}

// Point is the continuous coordinate vector of a grid index.
func (g *Grid) Point(index int) []float64 {
	out := make([]float64, len(g.counts))
	rem := index
	for d := range g.counts {
		i := rem / g.strides[d]
		rem -= i * g.strides[d]
		out[d] = g.AxisPoint(d, i)
	}
	return out
}

// Clamp limits each coordinate to the box, in place.
func (g *Grid) Clamp(point []float64) []float64 {
	for d := range g.counts {
		if point[d] < g.lows[d] {
			point[d] = g.lows[d]
		}
		if point[d] > g.highs[d] {
			point[d] = g.highs[d]
		}
	}
	return point
}
