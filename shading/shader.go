/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package shading

import "math"

// ColorFunc evaluates a shading's underlying PDF function(s) at a parametric
// input and returns color-space components. Callers bind this to their own
// PdfFunction.Evaluate so this package stays independent of the PDF object
// model.
type ColorFunc func(input []float64) ([]float64, error)

// Shader is a pixel-domain color evaluator for shading types 1-3.
type Shader interface {
	// ColorAt returns the color at (x, y) in shading space, and false if the
	// point is outside the shading's domain (and not extended there).
	ColorAt(x, y float64) ([]float64, bool)
}

// FunctionShader implements shading type 1 (function-based): color(x, y) is
// the shading Function evaluated at (x, y) mapped through Matrix into
// function space, clipped to Domain.
type FunctionShader struct {
	Domain [4]float64 // xmin, xmax, ymin, ymax
	Matrix [6]float64 // PDF transformation matrix, function space -> shading space
	Fn     ColorFunc
}

func invertMatrix(m [6]float64) ([6]float64, bool) {
	det := m[0]*m[3] - m[1]*m[2]
	if det == 0 {
		return [6]float64{}, false
	}
	inv := 1 / det
	a, b, c, d, e, f := m[0], m[1], m[2], m[3], m[4], m[5]
	return [6]float64{
		d * inv, -b * inv,
		-c * inv, a * inv,
		(c*f - d*e) * inv, (b*e - a*f) * inv,
	}, true
}

func applyMatrix(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// ColorAt implements Shader.
func (s *FunctionShader) ColorAt(x, y float64) ([]float64, bool) {
	inv, ok := invertMatrix(s.Matrix)
	if !ok {
		return nil, false
	}
	fx, fy := applyMatrix(inv, x, y)
	if fx < s.Domain[0] || fx > s.Domain[1] || fy < s.Domain[2] || fy > s.Domain[3] {
		return nil, false
	}
	c, err := s.Fn([]float64{fx, fy})
	if err != nil {
		return nil, false
	}
	return c, true
}

// AxialShader implements shading type 2: color varies linearly with the
// projection of (x, y) onto the axis from Coords[0:2] to Coords[2:4].
type AxialShader struct {
	Coords [4]float64 // x0, y0, x1, y1
	Domain [2]float64 // t0, t1
	Extend [2]bool    // extend before t0, after t1
	Fn     ColorFunc
}

// ColorAt implements Shader.
func (s *AxialShader) ColorAt(x, y float64) ([]float64, bool) {
	x0, y0, x1, y1 := s.Coords[0], s.Coords[1], s.Coords[2], s.Coords[3]
	dx, dy := x1-x0, y1-y0
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return nil, false
	}
	s0 := ((x-x0)*dx + (y-y0)*dy) / lenSq

	if s0 < 0 {
		if !s.Extend[0] {
			return nil, false
		}
		s0 = 0
	} else if s0 > 1 {
		if !s.Extend[1] {
			return nil, false
		}
		s0 = 1
	}

	t := s.Domain[0] + s0*(s.Domain[1]-s.Domain[0])
	c, err := s.Fn([]float64{t})
	if err != nil {
		return nil, false
	}
	return c, true
}

// RadialShader implements shading type 3: color varies with membership in
// the family of circles interpolating between the two given circles.
type RadialShader struct {
	Coords [6]float64 // x0, y0, r0, x1, y1, r1
	Domain [2]float64
	Extend [2]bool
	Fn     ColorFunc
}

// ColorAt implements Shader. It solves for the largest s in [0, 1] (or
// beyond, if extended) such that (x, y) lies on circle s of the family, per
// the PDF spec's quadratic in s.
func (s *RadialShader) ColorAt(x, y float64) ([]float64, bool) {
	x0, y0, r0 := s.Coords[0], s.Coords[1], s.Coords[2]
	x1, y1, r1 := s.Coords[3], s.Coords[4], s.Coords[5]

	dx, dy, dr := x1-x0, y1-y0, r1-r0
	a := dx*dx + dy*dy - dr*dr
	fx, fy := x-x0, y-y0
	b := 2 * (fx*dx + fy*dy + r0*dr)
	c := fx*fx + fy*fy - r0*r0

	var candidates []float64
	if math.Abs(a) < 1e-12 {
		if b != 0 {
			candidates = append(candidates, -c/b)
		}
	} else {
		disc := b*b - 4*a*c
		if disc >= 0 {
			sq := math.Sqrt(disc)
			candidates = append(candidates, (-b+sq)/(2*a), (-b-sq)/(2*a))
		}
	}

	best := math.Inf(-1)
	found := false
	for _, sVal := range candidates {
		if r0+sVal*dr < 0 {
			continue
		}
		if sVal < 0 && !s.Extend[0] {
			continue
		}
		if sVal > 1 && !s.Extend[1] {
			continue
		}
		if sVal > best {
			best = sVal
			found = true
		}
	}
	if !found {
		return nil, false
	}
	sFinal := best
	if sFinal < 0 {
		sFinal = 0
	} else if sFinal > 1 {
		sFinal = 1
	}

	t := s.Domain[0] + sFinal*(s.Domain[1]-s.Domain[0])
	col, err := s.Fn([]float64{t})
	if err != nil {
		return nil, false
	}
	return col, true
}
