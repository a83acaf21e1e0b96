/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package color

// CLUT is a multi-dimensional color lookup table: InputChannels axes, each
// sampled at GridPoints[i] points, producing OutputChannels interleaved
// floats per grid node. Eval performs N-linear interpolation.
type CLUT struct {
	InputChannels  int
	OutputChannels int
	GridPoints     []int
	Table          []float64 // normalized to [0,1]
}

// Eval interpolates the table at in (each component normalized to [0,1]).
func (c *CLUT) Eval(in []float64) []float64 {
	n := c.InputChannels
	out := make([]float64, c.OutputChannels)

	// Corner weights: iterate the 2^n hypercube corners, accumulating each
	// corner's sample weighted by its N-linear weight.
	lo := make([]int, n)
	frac := make([]float64, n)
	for i := 0; i < n; i++ {
		g := c.GridPoints[i]
		x := in[i]
		if x < 0 {
			x = 0
		}
		if x > 1 {
			x = 1
		}
		pos := x * float64(g-1)
		l := int(pos)
		if l >= g-1 {
			l = g - 2
			if l < 0 {
				l = 0
			}
		}
		lo[i] = l
		frac[i] = pos - float64(l)
	}

	corners := 1 << uint(n)
	idx := make([]int, n)
	for corner := 0; corner < corners; corner++ {
		weight := 1.0
		for i := 0; i < n; i++ {
			bit := (corner >> uint(i)) & 1
			if bit == 1 {
				idx[i] = lo[i] + 1
				if idx[i] >= c.GridPoints[i] {
					idx[i] = c.GridPoints[i] - 1
				}
				weight *= frac[i]
			} else {
				idx[i] = lo[i]
				weight *= 1 - frac[i]
			}
		}
		if weight == 0 {
			continue
		}
		offset := c.flatIndex(idx) * c.OutputChannels
		for o := 0; o < c.OutputChannels; o++ {
			out[o] += weight * c.Table[offset+o]
		}
	}

	return out
}

// flatIndex converts a per-axis grid index to the table's row-major offset,
// the CLUT's slowest-varying axis being input channel 0.
func (c *CLUT) flatIndex(idx []int) int {
	flat := 0
	for i := 0; i < c.InputChannels; i++ {
		flat = flat*c.GridPoints[i] + idx[i]
	}
	return flat
}
