/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package transparency implements the PDF transparency model's blend-mode
// mapping, soft-mask scope, and transparency-group compositing (PDF32000
// 11.3/11.4/11.6). It works entirely in [0,1] per-channel color math so it
// has no dependency on the PDF object model or the render canvas; callers
// (the render dispatcher, §4.H) adapt graphics-state fields and canvas
// layers into calls here.
//
// The blend-mode name set is grounded on
// _examples/pdfcpu-pdfcpu/validate/extGState.go's validateBlendMode, the
// formulas on PDF32000-1:2008 11.3.5.
package transparency

import "math"

// BlendMode is one of the sixteen standard PDF blend modes.
type BlendMode int

// Standard separable and non-separable blend modes (PDF32000 11.3.5).
const (
	Normal BlendMode = iota
	Multiply
	Screen
	Overlay
	Darken
	Lighten
	ColorDodge
	ColorBurn
	HardLight
	SoftLight
	Difference
	Exclusion
	Hue
	Saturation
	Color
	Luminosity
)

// ParseBlendMode maps an ExtGState /BM name to a BlendMode. "Compatible" is
// a synonym for Normal (PDF32000 11.3.5, Table 136); any other unrecognized
// name also defaults to Normal rather than erroring, matching the spec's
// "unknown names default to Normal" rule.
func ParseBlendMode(name string) BlendMode {
	switch name {
	case "Multiply":
		return Multiply
	case "Screen":
		return Screen
	case "Overlay":
		return Overlay
	case "Darken":
		return Darken
	case "Lighten":
		return Lighten
	case "ColorDodge":
		return ColorDodge
	case "ColorBurn":
		return ColorBurn
	case "HardLight":
		return HardLight
	case "SoftLight":
		return SoftLight
	case "Difference":
		return Difference
	case "Exclusion":
		return Exclusion
	case "Hue":
		return Hue
	case "Saturation":
		return Saturation
	case "Color":
		return Color
	case "Luminosity":
		return Luminosity
	case "Normal", "Compatible":
		return Normal
	default:
		return Normal
	}
}

// Blend computes the blended result of a source color cs over backdrop
// color cb, each an RGB triple with components in [0,1], per the separable
// (channel-wise) or non-separable blend function named by mode. The result
// still needs to be composited over cb with the source's alpha by the
// caller; Blend only implements the "B(cb, cs)" term of PDF32000's
// C = (1 - as/ar)*Cb + (as/ar)*((1-ab)*Cs + ab*B(Cb,Cs)) formula.
func Blend(mode BlendMode, cb, cs [3]float64) [3]float64 {
	switch mode {
	case Multiply:
		return separable(cb, cs, func(b, s float64) float64 { return b * s })
	case Screen:
		return separable(cb, cs, func(b, s float64) float64 { return b + s - b*s })
	case Overlay:
		return separable(cb, cs, func(b, s float64) float64 { return hardLight(b, s) })
	case Darken:
		return separable(cb, cs, math.Min)
	case Lighten:
		return separable(cb, cs, math.Max)
	case ColorDodge:
		return separable(cb, cs, colorDodge)
	case ColorBurn:
		return separable(cb, cs, colorBurn)
	case HardLight:
		return separable(cb, cs, func(b, s float64) float64 { return hardLight(s, b) })
	case SoftLight:
		return separable(cb, cs, softLight)
	case Difference:
		return separable(cb, cs, func(b, s float64) float64 { return math.Abs(b - s) })
	case Exclusion:
		return separable(cb, cs, func(b, s float64) float64 { return b + s - 2*b*s })
	case Hue:
		return setLum(setSat(cs, sat(cb)), lum(cb))
	case Saturation:
		return setLum(setSat(cb, sat(cs)), lum(cb))
	case Color:
		return setLum(cs, lum(cb))
	case Luminosity:
		return setLum(cb, lum(cs))
	default: // Normal.
		return cs
	}
}

func separable(cb, cs [3]float64, f func(b, s float64) float64) [3]float64 {
	return [3]float64{f(cb[0], cs[0]), f(cb[1], cs[1]), f(cb[2], cs[2])}
}

func colorDodge(b, s float64) float64 {
	if b == 0 {
		return 0
	}
	if s == 1 {
		return 1
	}
	return math.Min(1, b/(1-s))
}

func colorBurn(b, s float64) float64 {
	if b == 1 {
		return 1
	}
	if s == 0 {
		return 0
	}
	return 1 - math.Min(1, (1-b)/s)
}

func hardLight(s, b float64) float64 {
	if s <= 0.5 {
		return b * 2 * s
	}
	return b + (2*s-1) - b*(2*s-1)
}

func softLight(b, s float64) float64 {
	if s <= 0.5 {
		return b - (1-2*s)*b*(1-b)
	}
	var d float64
	if b <= 0.25 {
		d = ((16*b-12)*b + 4) * b
	} else {
		d = math.Sqrt(b)
	}
	return b + (2*s-1)*(d-b)
}

// lum, sat, setLum, setSat, clipColor implement PDF32000 11.3.5.3's
// non-separable blend-mode support functions.
func lum(c [3]float64) float64 {
	return 0.3*c[0] + 0.59*c[1] + 0.11*c[2]
}

func sat(c [3]float64) float64 {
	return math.Max(c[0], math.Max(c[1], c[2])) - math.Min(c[0], math.Min(c[1], c[2]))
}

func setLum(c [3]float64, l float64) [3]float64 {
	d := l - lum(c)
	out := [3]float64{c[0] + d, c[1] + d, c[2] + d}
	return clipColor(out)
}

func clipColor(c [3]float64) [3]float64 {
	l := lum(c)
	n := math.Min(c[0], math.Min(c[1], c[2]))
	x := math.Max(c[0], math.Max(c[1], c[2]))
	if n < 0 {
		for i := range c {
			c[i] = l + (c[i]-l)*l/(l-n)
		}
	}
	if x > 1 {
		for i := range c {
			c[i] = l + (c[i]-l)*(1-l)/(x-l)
		}
	}
	return c
}

func setSat(c [3]float64, s float64) [3]float64 {
	out := c
	minI, maxI := 0, 0
	for i := 1; i < 3; i++ {
		if out[i] < out[minI] {
			minI = i
		}
		if out[i] > out[maxI] {
			maxI = i
		}
	}
	midI := 3 - minI - maxI
	if minI == maxI {
		return [3]float64{0, 0, 0}
	}
	if out[maxI] > out[minI] {
		out[midI] = (out[midI] - out[minI]) * s / (out[maxI] - out[minI])
		out[maxI] = s
	} else {
		out[midI] = 0
		out[maxI] = 0
	}
	out[minI] = 0
	return out
}
