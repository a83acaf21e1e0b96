/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package color

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Curve is a per-channel tone-reproduction curve (TRC): identity, pure
// gamma, a sampled LUT with linear interpolation, or one of the ICC
// parametric curve types.
type Curve interface {
	Eval(x float64) float64
}

// IdentityCurve passes its input through unchanged.
type IdentityCurve struct{}

// Eval implements Curve.
func (IdentityCurve) Eval(x float64) float64 { return x }

// GammaCurve raises its input to a fixed power.
type GammaCurve struct{ Gamma float64 }

// Eval implements Curve.
func (c GammaCurve) Eval(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return math.Pow(x, c.Gamma)
}

// SampledCurve is a 'curv' tag LUT: uniformly spaced samples in [0,1] on
// both axes, evaluated with linear interpolation.
type SampledCurve struct{ Table []float64 }

// Eval implements Curve.
func (c SampledCurve) Eval(x float64) float64 {
	n := len(c.Table)
	if n == 0 {
		return x
	}
	if n == 1 {
		return c.Table[0]
	}
	if x <= 0 {
		return c.Table[0]
	}
	if x >= 1 {
		return c.Table[n-1]
	}
	pos := x * float64(n-1)
	lo := int(math.Floor(pos))
	hi := lo + 1
	if hi >= n {
		return c.Table[n-1]
	}
	frac := pos - float64(lo)
	return c.Table[lo]*(1-frac) + c.Table[hi]*frac
}

// ParametricCurve implements ICC 'para' function types 0-4 (ICC.1:2004-10
// §10.15). Type g is Y=X^g. Types 1-4 progressively add a linear segment
// near the origin with parameters a,b,c,d,e,f (unused params are zero for
// lower types).
type ParametricCurve struct {
	FuncType int
	G, A, B, C, D, E, F float64
}

// Eval implements Curve.
func (c ParametricCurve) Eval(x float64) float64 {
	switch c.FuncType {
	case 0:
		if x < 0 {
			return 0
		}
		return math.Pow(x, c.G)
	case 1:
		if x >= -c.B/c.A {
			return math.Pow(c.A*x+c.B, c.G)
		}
		return 0
	case 2:
		if x >= -c.B/c.A {
			return math.Pow(c.A*x+c.B, c.G) + c.C
		}
		return c.C
	case 3:
		if x >= c.D {
			return math.Pow(c.A*x+c.B, c.G)
		}
		return c.C * x
	case 4:
		if x >= c.D {
			return math.Pow(c.A*x+c.B, c.G) + c.E
		}
		return c.C*x + c.F
	default:
		return x
	}
}

// parseCurve decodes a 'curv' or 'para' tag payload into a Curve.
func parseCurve(data []byte) (Curve, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("icc: curve tag too short")
	}
	sig := Signature(data[0:4])
	switch sig {
	case "curv":
		count := binary.BigEndian.Uint32(data[8:12])
		if count == 0 {
			return IdentityCurve{}, nil
		}
		if count == 1 {
			// A single entry encodes a pure gamma value as a u8.8 fixed point.
			g := float64(binary.BigEndian.Uint16(data[12:14])) / 256.0
			return GammaCurve{Gamma: g}, nil
		}
		table := make([]float64, count)
		pos := 12
		for i := uint32(0); i < count; i++ {
			table[i] = float64(binary.BigEndian.Uint16(data[pos:pos+2])) / 65535.0
			pos += 2
		}
		return SampledCurve{Table: table}, nil
	case "para":
		funcType := int(binary.BigEndian.Uint16(data[8:10]))
		params := make([]float64, 0, 7)
		pos := 12
		for pos+4 <= len(data) {
			params = append(params, s15Fixed16(data, pos))
			pos += 4
		}
		c := ParametricCurve{FuncType: funcType}
		get := func(i int) float64 {
			if i < len(params) {
				return params[i]
			}
			return 0
		}
		switch funcType {
		case 0:
			c.G = get(0)
		case 1:
			c.G, c.A, c.B = get(0), get(1), get(2)
		case 2:
			c.G, c.A, c.B, c.C = get(0), get(1), get(2), get(3)
		case 3:
			c.G, c.A, c.B, c.C, c.D = get(0), get(1), get(2), get(3), get(4)
		case 4:
			c.G, c.A, c.B, c.C, c.D, c.E, c.F = get(0), get(1), get(2), get(3), get(4), get(5), get(6)
		default:
			return nil, fmt.Errorf("icc: unsupported parametric curve type %d", funcType)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("icc: unsupported curve tag signature %q", sig)
	}
}
