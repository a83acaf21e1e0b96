/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package shading

import "fmt"

// Point is a 2D coordinate used by Coons and tensor patch control points.
type Point struct{ X, Y float64 }

// Patch is one Coons (12 control points) or tensor-product (16 control
// points) patch. ControlPoints follows the PDF spec's boundary ordering
// (p1..p12 for Coons; the tensor type adds the four internal points
// p13..p16). CornerColors holds one color per corner, in the order
// c1, c2, c3, c4.
type Patch struct {
	ControlPoints []Point
	CornerColors  [][]float64
	Flag          uint8
}

// patchEdge describes, for a connected patch (flag 1-3), which control
// points and corner colors are inherited from the previous patch. Indices
// are into the previous patch's 12 boundary control points / 4 colors.
// Grounded on PDF32000-2:2020 Table 84 (Coons patch edge flags).
var patchEdge = map[uint8]struct {
	points [4]int
	colors [2]int
}{
	1: {[4]int{3, 4, 5, 6}, [2]int{1, 2}},
	2: {[4]int{6, 7, 8, 9}, [2]int{2, 3}},
	3: {[4]int{9, 10, 11, 0}, [2]int{3, 0}},
}

// PatchParams carries the type 6/7 shading dictionary fields the decoder
// needs.
type PatchParams struct {
	BitsPerCoordinate int
	BitsPerComponent  int
	BitsPerFlag       int
	NumColorValues    int
	Decode            []float64
	// ExplicitPoints is 12 for Coons patches (type 6) or 16 for
	// tensor-product patches (type 7).
	ExplicitPoints int
}

func (p PatchParams) readPoint(r *BitReader) (Point, bool) {
	xRaw, ok := r.ReadBits(p.BitsPerCoordinate)
	if !ok {
		return Point{}, false
	}
	yRaw, ok := r.ReadBits(p.BitsPerCoordinate)
	if !ok {
		return Point{}, false
	}
	return Point{
		X: decodeSample(xRaw, p.BitsPerCoordinate, p.Decode[0], p.Decode[1]),
		Y: decodeSample(yRaw, p.BitsPerCoordinate, p.Decode[2], p.Decode[3]),
	}, true
}

func (p PatchParams) readColor(r *BitReader) ([]float64, bool) {
	col := make([]float64, p.NumColorValues)
	for i := range col {
		raw, ok := r.ReadBits(p.BitsPerComponent)
		if !ok {
			return nil, false
		}
		lo, hi := p.Decode[4+2*i], p.Decode[4+2*i+1]
		col[i] = decodeSample(raw, p.BitsPerComponent, lo, hi)
	}
	return col, true
}

// DecodePatches decodes a Coons (ExplicitPoints == 12) or tensor-product
// (ExplicitPoints == 16) patch mesh. A flag-0 patch carries all of its
// control points and all 4 corner colors explicitly; a flag 1-3 patch
// shares one edge (4 control points, 2 corner colors) with the previous
// patch and supplies only the remaining points/colors.
func DecodePatches(data []byte, p PatchParams) ([]Patch, error) {
	r := NewBitReader(data)
	var patches []Patch

	for r.Remaining() >= p.BitsPerFlag {
		flagRaw, ok := r.ReadBits(p.BitsPerFlag)
		if !ok {
			break
		}
		flag := uint8(flagRaw)

		var patch Patch
		patch.Flag = flag

		if flag == 0 {
			patch.ControlPoints = make([]Point, p.ExplicitPoints)
			for i := range patch.ControlPoints {
				pt, ok := p.readPoint(r)
				if !ok {
					return nil, fmt.Errorf("shading: truncated patch control points")
				}
				patch.ControlPoints[i] = pt
			}
			patch.CornerColors = make([][]float64, 4)
			for i := range patch.CornerColors {
				c, ok := p.readColor(r)
				if !ok {
					return nil, fmt.Errorf("shading: truncated patch corner colors")
				}
				patch.CornerColors[i] = c
			}
		} else {
			if len(patches) == 0 {
				return nil, fmt.Errorf("shading: connected patch (flag=%d) with no preceding patch", flag)
			}
			edge, ok := patchEdge[flag]
			if !ok {
				return nil, fmt.Errorf("shading: invalid patch edge flag %d", flag)
			}
			prev := patches[len(patches)-1]

			explicit := p.ExplicitPoints - 4
			patch.ControlPoints = make([]Point, p.ExplicitPoints)
			for i, srcIdx := range edge.points {
				patch.ControlPoints[i] = prev.ControlPoints[srcIdx]
			}
			for i := 0; i < explicit; i++ {
				pt, ok := p.readPoint(r)
				if !ok {
					return nil, fmt.Errorf("shading: truncated connected patch control points")
				}
				patch.ControlPoints[4+i] = pt
			}

			patch.CornerColors = make([][]float64, 4)
			for i, srcIdx := range edge.colors {
				patch.CornerColors[i] = prev.CornerColors[srcIdx]
			}
			for i := 2; i < 4; i++ {
				c, ok := p.readColor(r)
				if !ok {
					return nil, fmt.Errorf("shading: truncated connected patch corner colors")
				}
				patch.CornerColors[i] = c
			}
		}

		patches = append(patches, patch)
	}

	return patches, nil
}

// ColorAt bilinearly interpolates a patch's four corner colors over its
// parametric (u, v) unit square, a standard simplification of full Coons
// surface shading that avoids evaluating the boundary Bezier curves for
// color (only the geometry needs them, for rendering the patch outline).
func (p Patch) ColorAt(u, v float64) []float64 {
	c1, c2, c3, c4 := p.CornerColors[0], p.CornerColors[1], p.CornerColors[2], p.CornerColors[3]
	n := len(c1)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		top := c1[i]*(1-u) + c2[i]*u
		bottom := c4[i]*(1-u) + c3[i]*u
		out[i] = top*(1-v) + bottom*v
	}
	return out
}
