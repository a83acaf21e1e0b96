/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package color

// Matrix3 is a 3x3 (or, with Offset, 3x4) matrix stage used both by the
// matrix/TRC model ('rXYZ'/'gXYZ'/'bXYZ' column vectors) and by the MBA/
// legacy lut orderings' own matrix element.
type Matrix3 struct {
	M      [9]float64
	Offset [3]float64
}

// Identity3 is the no-op 3x3 matrix with a zero offset.
func Identity3() Matrix3 {
	return Matrix3{M: [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}}
}

// Apply maps v through the matrix and adds the offset.
func (m Matrix3) Apply(v [3]float64) [3]float64 {
	return [3]float64{
		m.M[0]*v[0] + m.M[1]*v[1] + m.M[2]*v[2] + m.Offset[0],
		m.M[3]*v[0] + m.M[4]*v[1] + m.M[5]*v[2] + m.Offset[1],
		m.M[6]*v[0] + m.M[7]*v[1] + m.M[8]*v[2] + m.Offset[2],
	}
}

// matrixFromColumns builds the matrix/TRC-model matrix from the three XYZ
// column vectors stored in the profile's rXYZ/gXYZ/bXYZ tags.
func matrixFromColumns(r, g, b [3]float64) Matrix3 {
	return Matrix3{M: [9]float64{
		r[0], g[0], b[0],
		r[1], g[1], b[1],
		r[2], g[2], b[2],
	}}
}
