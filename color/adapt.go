/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package color

import "math"

// d50WhitePoint is the CIE standard illuminant D50 white point in XYZ,
// the reference illuminant for the ICC profile connection space.
var d50WhitePoint = [3]float64{0.9642, 1.0, 0.8249}

// d65WhitePoint is the reference illuminant for sRGB.
var d65WhitePoint = [3]float64{0.95047, 1.0, 1.08883}

// bradfordMA and bradfordMAInv are the Bradford cone-response matrix and
// its inverse, used for chromatic adaptation between white points.
var bradfordMA = Matrix3{M: [9]float64{
	0.8951, 0.2664, -0.1614,
	-0.7502, 1.7135, 0.0367,
	0.0389, -0.0685, 1.0296,
}}

var bradfordMAInv = Matrix3{M: [9]float64{
	0.9869929, -0.1470543, 0.1599627,
	0.4323053, 0.5183603, 0.0492912,
	-0.0085287, 0.0400428, 0.9684867,
}}

// bradfordAdapt chromatically adapts xyz from srcWhite to dstWhite using
// the Bradford transform: cone-respond both white points, scale per-cone,
// then transform back.
func bradfordAdapt(xyz, srcWhite, dstWhite [3]float64) [3]float64 {
	srcCone := bradfordMA.Apply(srcWhite)
	dstCone := bradfordMA.Apply(dstWhite)

	scale := Matrix3{M: [9]float64{
		dstCone[0] / srcCone[0], 0, 0,
		0, dstCone[1] / srcCone[1], 0,
		0, 0, dstCone[2] / srcCone[2],
	}}

	cone := bradfordMA.Apply(xyz)
	adapted := scale.Apply(cone)
	return bradfordMAInv.Apply(adapted)
}

// xyzToLinearSRGBMatrix is the standard XYZ(D65)-to-linear-sRGB matrix
// (IEC 61966-2-1).
var xyzToLinearSRGBMatrix = Matrix3{M: [9]float64{
	3.2406, -1.5372, -0.4986,
	-0.9689, 1.8758, 0.0415,
	0.0557, -0.2040, 1.0570,
}}

// sRGB companding constants (IEC 61966-2-1).
const (
	srgbGamma = 1 / 2.4
	srgbA     = 1.055
	srgbC     = 12.92
	srgbD     = 0.0031308
	srgbE     = -0.055
)

// srgbCompand applies the parametric sRGB transfer function to a single
// linear channel value.
func srgbCompand(v float64) float64 {
	if v <= srgbD {
		return srgbC * v
	}
	return srgbA*math.Pow(v, srgbGamma) + srgbE
}

// xyzD50ToSRGB adapts a PCS XYZ (D50) value to D65 via Bradford, converts
// to linear sRGB, then applies sRGB companding. This is the chain the
// final stage of every ICC transform feeds into once profile connection
// space XYZ is known.
func xyzD50ToSRGB(xyz [3]float64) [3]float64 {
	d65 := bradfordAdapt(xyz, d50WhitePoint, d65WhitePoint)
	linear := xyzToLinearSRGBMatrix.Apply(d65)
	return [3]float64{
		clamp01(srgbCompand(linear[0])),
		clamp01(srgbCompand(linear[1])),
		clamp01(srgbCompand(linear[2])),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
