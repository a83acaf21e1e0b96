/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package pattern implements the tiling pattern placement grid and the
// recorded-picture representation a tiling cell's content stream renders
// into. It has no dependency on the PDF object model: callers decode a
// pattern dictionary's BBox/XStep/YStep/Matrix into a TileSpec and hand
// this package a fill-area bounding box.
package pattern

import "math"

// Matrix is a PDF-style 2D affine transform [a b c d e f], mapping
// (x, y) -> (a*x + c*y + e, b*x + d*y + f).
type Matrix [6]float64

// Identity is the identity transform.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

// Apply transforms a point.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Invert returns the inverse transform, or false if m is singular.
func (m Matrix) Invert() (Matrix, bool) {
	det := m[0]*m[3] - m[1]*m[2]
	if det == 0 {
		return Matrix{}, false
	}
	inv := 1 / det
	a, b, c, d, e, f := m[0], m[1], m[2], m[3], m[4], m[5]
	return Matrix{
		d * inv, -b * inv,
		-c * inv, a * inv,
		(c*f - d*e) * inv, (b*e - a*f) * inv,
	}, true
}

// TileSpec is the geometry of a tiling pattern cell (PDF32000 8.7.3.1):
// its bounding box, step intervals, and the matrix mapping pattern space
// into the default coordinate space of the pattern's parent content stream.
type TileSpec struct {
	BBox            [4]float64 // xmin, ymin, xmax, ymax, in pattern space
	XStep           float64
	YStep           float64
	PatternToDevice Matrix
}

// Placement is one tile's pattern-space origin offset: the cell at grid
// index (i, j) is the BBox translated by (i*XStep, j*YStep).
type Placement struct {
	I, J   int
	DX, DY float64
}

// Placements computes every grid cell of spec whose BBox (translated by the
// cell's step offset) intersects fillAreaDevice, a bounding box in the same
// device space PatternToDevice maps into. This is the tiling algorithm
// behind PDF32000 8.7.3.1: the fill area is mapped back into pattern space,
// then the range of integer step indices covering it is enumerated.
func Placements(spec TileSpec, fillAreaDevice [4]float64) []Placement {
	if spec.XStep == 0 || spec.YStep == 0 {
		return nil
	}
	inv, ok := spec.PatternToDevice.Invert()
	if !ok {
		return nil
	}

	corners := [4][2]float64{
		{fillAreaDevice[0], fillAreaDevice[1]},
		{fillAreaDevice[2], fillAreaDevice[1]},
		{fillAreaDevice[0], fillAreaDevice[3]},
		{fillAreaDevice[2], fillAreaDevice[3]},
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		px, py := inv.Apply(c[0], c[1])
		minX, maxX = math.Min(minX, px), math.Max(maxX, px)
		minY, maxY = math.Min(minY, py), math.Max(maxY, py)
	}

	xStep, yStep := math.Abs(spec.XStep), math.Abs(spec.YStep)
	bboxW := spec.BBox[2] - spec.BBox[0]
	bboxH := spec.BBox[3] - spec.BBox[1]

	iMin := int(math.Floor((minX - spec.BBox[2]) / xStep))
	iMax := int(math.Ceil((maxX - spec.BBox[0]) / xStep))
	jMin := int(math.Floor((minY - spec.BBox[3]) / yStep))
	jMax := int(math.Ceil((maxY - spec.BBox[1]) / yStep))

	var out []Placement
	for j := jMin; j <= jMax; j++ {
		dy := float64(j) * spec.YStep
		cellMinY, cellMaxY := spec.BBox[1]+dy, spec.BBox[1]+dy+bboxH
		if cellMaxY < minY || cellMinY > maxY {
			continue
		}
		for i := iMin; i <= iMax; i++ {
			dx := float64(i) * spec.XStep
			cellMinX, cellMaxX := spec.BBox[0]+dx, spec.BBox[0]+dx+bboxW
			if cellMaxX < minX || cellMinX > maxX {
				continue
			}
			out = append(out, Placement{I: i, J: j, DX: dx, DY: dy})
		}
	}
	return out
}

// Op is one recorded drawing primitive from a tiling cell's content stream,
// opaque to this package. Callers (the content-stream interpreter) define
// concrete Op implementations that close over their own render dispatcher
// calls (draw_path, draw_text_sequence, draw_image, ...).
type Op interface {
	// Replay re-issues the recorded draw call, with device-space
	// coordinates shifted by (dx, dy) for the tile placement being drawn,
	// and, for an uncolored pattern, tint substituted for the picture's
	// recorded color.
	Replay(dx, dy float64, tint []float64)
}

// Picture is a tiling cell's content stream recorded as a flat op list,
// captured once per pattern and replayed at every grid placement — "records
// the cell content into a picture ... the returned picture becomes the tile
// of a repeating shader."
type Picture struct {
	Colored bool
	Ops     []Op
}

// Recorder accumulates Ops while a content-stream interpreter runs a tiling
// pattern's cell content stream under a sub graphics state.
type Recorder struct {
	colored bool
	ops     []Op
}

// NewRecorder starts recording a tiling cell. colored mirrors the pattern's
// PaintType: a colored cell's ops carry their own recorded color; an
// uncolored cell's ops defer to the tint supplied at replay time.
func NewRecorder(colored bool) *Recorder {
	return &Recorder{colored: colored}
}

// Record appends one drawing primitive to the picture under construction.
func (r *Recorder) Record(op Op) {
	r.ops = append(r.ops, op)
}

// Picture finalizes the recording.
func (r *Recorder) Picture() Picture {
	return Picture{Colored: r.colored, Ops: r.ops}
}

// Paint replays picture at every placement, translating device coordinates
// by each placement's pattern-to-device-mapped offset and, for an uncolored
// pattern, substituting tint for the picture's color.
func Paint(picture Picture, spec TileSpec, placements []Placement, tint []float64) {
	for _, pl := range placements {
		ddx, ddy := spec.PatternToDevice.Apply(pl.DX, pl.DY)
		originDX, originDY := spec.PatternToDevice.Apply(0, 0)
		for _, op := range picture.Ops {
			op.Replay(ddx-originDX, ddy-originDY, tint)
		}
	}
}
