/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package color

import (
	"encoding/binary"
	"fmt"
)

// stage is one step of a ColorTransform's pipeline.
type stage interface {
	apply(in []float64) []float64
}

type curveStage struct{ curves []Curve }

func (s curveStage) apply(in []float64) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		if i < len(s.curves) && s.curves[i] != nil {
			out[i] = s.curves[i].Eval(v)
		} else {
			out[i] = v
		}
	}
	return out
}

type matrixStage struct{ m Matrix3 }

func (s matrixStage) apply(in []float64) []float64 {
	var v [3]float64
	copy(v[:], in)
	r := s.m.Apply(v)
	return r[:]
}

type clutStage struct{ c *CLUT }

func (s clutStage) apply(in []float64) []float64 { return s.c.Eval(in) }

// ColorTransform maps a device color (padded to a fixed component count)
// through an ordered chain of stages into sRGB in [0,1]. It is the
// evaluator named by the component design's ICC evaluator: TRC curves,
// matrix, CLUT, assembled in either MBA order (A-curves, CLUT, M-curves,
// matrix+offset, B-curves) or the legacy lut8/lut16 order (input-curves,
// matrix, CLUT, output-curves).
type ColorTransform struct {
	stages    []stage
	pcsIsLab  bool
	toSRGB    bool // whether this transform's output still needs the XYZ->sRGB finish
}

// Apply runs in (one value per input channel, in [0,1]) through the chain
// and returns sRGB channel values in [0,1].
func (t *ColorTransform) Apply(in []float64) [3]float64 {
	v := append([]float64(nil), in...)
	for _, s := range t.stages {
		v = s.apply(v)
	}

	var xyz [3]float64
	if t.pcsIsLab {
		// Lab tag payloads are encoded 0..1 over L*=[0,100], a*,b*=[-128,127];
		// the stages keep that encoding, so de-normalize to L*a*b* here.
		xyz = labToXYZ(v[0]*100, v[1]*255-128, v[2]*255-128, d50WhitePoint)
	} else {
		copy(xyz[:], v)
	}

	if !t.toSRGB {
		var rgb [3]float64
		copy(rgb[:], v)
		return rgb
	}
	return xyzD50ToSRGB(xyz)
}

// Transform builds a ColorTransform for converting device values (in the
// profile's declared data color space) to sRGB, using the given rendering
// intent to pick among A2B0 (perceptual), A2B1 (relative colorimetric) and
// A2B2 (saturation) when present.
func (p *Profile) Transform(intent RenderingIntent) (*ColorTransform, error) {
	tagForIntent := func() Signature {
		switch intent {
		case RelativeColorimetric, AbsoluteColorimetric:
			return "A2B1"
		case Saturation:
			return "A2B2"
		default:
			return "A2B0"
		}
	}

	for _, sig := range []Signature{tagForIntent(), "A2B0", "A2B1", "A2B2"} {
		if data := p.tagData(sig); data != nil {
			t, err := parseAToBTag(data)
			if err == nil {
				t.pcsIsLab = p.PCS == "Lab "
				t.toSRGB = true
				return t, nil
			}
		}
	}

	// No multi-process-element/legacy lut tag: fall back to the
	// matrix/TRC model built from rXYZ/gXYZ/bXYZ + rTRC/gTRC/bTRC, or the
	// single-channel kTRC model for gray profiles.
	var t *ColorTransform
	var err error
	if p.DataColorSpace == "GRAY" {
		t, err = p.matrixTRCGrayTransform()
	} else {
		t, err = p.matrixTRCTransform()
	}
	if err != nil {
		return nil, err
	}
	t.toSRGB = true
	return t, nil
}

// matrixTRCTransform builds the classic three-component matrix/TRC model:
// per-channel TRC curves, then the matrix assembled from the profile's
// rXYZ/gXYZ/bXYZ column tags.
func (p *Profile) matrixTRCTransform() (*ColorTransform, error) {
	rCurve, err := p.curveTag("rTRC")
	if err != nil {
		return nil, err
	}
	gCurve, err := p.curveTag("gTRC")
	if err != nil {
		return nil, err
	}
	bCurve, err := p.curveTag("bTRC")
	if err != nil {
		return nil, err
	}

	rXYZData, gXYZData, bXYZData := p.tagData("rXYZ"), p.tagData("gXYZ"), p.tagData("bXYZ")
	if rXYZData == nil || gXYZData == nil || bXYZData == nil {
		return nil, fmt.Errorf("icc: missing matrix/TRC model XYZ column tags")
	}
	rXYZ := readXYZ(rXYZData, 8)
	gXYZ := readXYZ(gXYZData, 8)
	bXYZ := readXYZ(bXYZData, 8)

	return &ColorTransform{
		stages: []stage{
			curveStage{curves: []Curve{rCurve, gCurve, bCurve}},
			matrixStage{m: matrixFromColumns(rXYZ, gXYZ, bXYZ)},
		},
	}, nil
}

// matrixTRCGrayTransform builds the single-channel kTRC model used by Gray
// profiles: a TRC curve followed by a replicate-to-XYZ-via-D50-white
// multiply (gray has no matrix tag of its own).
func (p *Profile) matrixTRCGrayTransform() (*ColorTransform, error) {
	curve, err := p.curveTag("kTRC")
	if err != nil {
		return nil, err
	}
	return &ColorTransform{
		stages: []stage{
			curveStage{curves: []Curve{curve}},
			matrixStage{m: Matrix3{M: [9]float64{
				d50WhitePoint[0], 0, 0,
				d50WhitePoint[1], 0, 0,
				d50WhitePoint[2], 0, 0,
			}}},
		},
	}, nil
}

func (p *Profile) curveTag(sig Signature) (Curve, error) {
	data := p.tagData(sig)
	if data == nil {
		return nil, fmt.Errorf("icc: missing curve tag %q", sig)
	}
	return parseCurve(data)
}

// parseAToBTag dispatches on the tag's own type signature: mAB/mBA
// multi-process-element tags (ICC.1:2004-10 §10.8/10.9), or the legacy
// lut8Type/lut16Type fixed-pipeline tags (§10.10/10.11).
func parseAToBTag(data []byte) (*ColorTransform, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("icc: AToB tag too short")
	}
	switch Signature(data[0:4]) {
	case "mAB ", "mBA ":
		return parseMultiProcessElement(data)
	case "mft1":
		return parseLegacyLut(data, false)
	case "mft2":
		return parseLegacyLut(data, true)
	default:
		return nil, fmt.Errorf("icc: unsupported AToB tag type %q", data[0:4])
	}
}

// parseMultiProcessElement parses an 'mAB '/'mBA ' tag: header giving
// input/output channel counts and sub-tag offsets for B-curves, a matrix,
// M-curves, a CLUT, and A-curves; ordering is A-curves -> CLUT -> M-curves
// -> matrix+offset -> B-curves (§10.8, "mAB" direction; the spec's MBA
// name matches the processing order, not the tag signature).
func parseMultiProcessElement(data []byte) (*ColorTransform, error) {
	if len(data) < 32 {
		return nil, fmt.Errorf("icc: mAB/mBA tag too short")
	}
	nIn := int(data[8])
	nOut := int(data[9])

	offB := binary.BigEndian.Uint32(data[12:16])
	offMatrix := binary.BigEndian.Uint32(data[16:20])
	offM := binary.BigEndian.Uint32(data[20:24])
	offCLUT := binary.BigEndian.Uint32(data[24:28])
	offA := binary.BigEndian.Uint32(data[28:32])

	var stages []stage

	if offA != 0 {
		curves, err := parseCurveSet(data, int(offA), nIn)
		if err != nil {
			return nil, err
		}
		stages = append(stages, curveStage{curves: curves})
	}
	if offCLUT != 0 {
		clut, err := parseCLUTTag(data, int(offCLUT), nIn, nOut)
		if err != nil {
			return nil, err
		}
		stages = append(stages, clutStage{c: clut})
	}
	if offM != 0 {
		curves, err := parseCurveSet(data, int(offM), nOut)
		if err != nil {
			return nil, err
		}
		stages = append(stages, curveStage{curves: curves})
	}
	if offMatrix != 0 {
		m, err := parseMatrixElement(data, int(offMatrix))
		if err != nil {
			return nil, err
		}
		stages = append(stages, matrixStage{m: m})
	}
	if offB != 0 {
		curves, err := parseCurveSet(data, int(offB), nOut)
		if err != nil {
			return nil, err
		}
		stages = append(stages, curveStage{curves: curves})
	}

	if len(stages) == 0 {
		return nil, fmt.Errorf("icc: mAB/mBA tag has no stages")
	}
	return &ColorTransform{stages: stages}, nil
}

// parseCurveSet reads nCurves consecutive tagged curve elements starting at
// offset, each individually 4-byte padded per the ICC container rules.
func parseCurveSet(data []byte, offset, nCurves int) ([]Curve, error) {
	curves := make([]Curve, nCurves)
	pos := offset
	for i := 0; i < nCurves; i++ {
		if pos+12 > len(data) {
			return nil, fmt.Errorf("icc: curve set truncated")
		}
		c, size, err := parseCurveElement(data[pos:])
		if err != nil {
			return nil, err
		}
		curves[i] = c
		pos += size
		if pad := pos % 4; pad != 0 {
			pos += 4 - pad
		}
	}
	return curves, nil
}

// parseCurveElement parses a single curveType/parametricCurveType element
// embedded (not as a standalone tag) inside a larger structure, returning
// the curve and its byte length.
func parseCurveElement(data []byte) (Curve, int, error) {
	if len(data) < 12 {
		return nil, 0, fmt.Errorf("icc: curve element too short")
	}
	sig := Signature(data[0:4])
	switch sig {
	case "curv":
		count := binary.BigEndian.Uint32(data[8:12])
		size := 12 + int(count)*2
		if size > len(data) {
			return nil, 0, fmt.Errorf("icc: curve element out of range")
		}
		c, err := parseCurve(data[:size])
		return c, size, err
	case "para":
		funcType := binary.BigEndian.Uint16(data[8:10])
		nParams := map[uint16]int{0: 1, 1: 3, 2: 4, 3: 5, 4: 7}[funcType]
		size := 12 + nParams*4
		if size > len(data) {
			return nil, 0, fmt.Errorf("icc: parametric curve element out of range")
		}
		c, err := parseCurve(data[:size])
		return c, size, err
	default:
		return nil, 0, fmt.Errorf("icc: unsupported embedded curve signature %q", sig)
	}
}

// parseMatrixElement reads the 3x4 s15Fixed16 matrix+offset embedded in an
// mAB/mBA tag.
func parseMatrixElement(data []byte, offset int) (Matrix3, error) {
	if offset+12*4 > len(data) {
		return Matrix3{}, fmt.Errorf("icc: matrix element out of range")
	}
	var m Matrix3
	for i := 0; i < 9; i++ {
		m.M[i] = s15Fixed16(data, offset+i*4)
	}
	for i := 0; i < 3; i++ {
		m.Offset[i] = s15Fixed16(data, offset+(9+i)*4)
	}
	return m, nil
}

// parseCLUTTag reads the 'clut' element embedded in an mAB/mBA tag: one
// grid-point-count byte per input channel, a precision byte (1 or 2), then
// the interleaved table.
func parseCLUTTag(data []byte, offset, nIn, nOut int) (*CLUT, error) {
	if offset+20 > len(data) {
		return nil, fmt.Errorf("icc: clut element out of range")
	}
	grid := make([]int, nIn)
	total := 1
	for i := 0; i < nIn; i++ {
		grid[i] = int(data[offset+i])
		total *= grid[i]
	}
	precision := data[offset+16]

	pos := offset + 20
	table := make([]float64, total*nOut)
	switch precision {
	case 1:
		for i := range table {
			table[i] = float64(data[pos]) / 255.0
			pos++
		}
	case 2:
		for i := range table {
			table[i] = float64(binary.BigEndian.Uint16(data[pos:pos+2])) / 65535.0
			pos += 2
		}
	default:
		return nil, fmt.Errorf("icc: unsupported clut precision %d", precision)
	}

	return &CLUT{InputChannels: nIn, OutputChannels: nOut, GridPoints: grid, Table: table}, nil
}

// parseLegacyLut parses the lut8Type/lut16Type tag (§10.10/10.11): fixed
// pipeline order input-curves -> matrix -> CLUT -> output-curves, each
// curve sampled at 256 points (lut8) or a declared count (lut16).
func parseLegacyLut(data []byte, wide bool) (*ColorTransform, error) {
	if len(data) < 48 {
		return nil, fmt.Errorf("icc: legacy lut tag too short")
	}
	nIn := int(data[8])
	nOut := int(data[9])
	gridPoints := int(data[10])

	var m Matrix3
	for i := 0; i < 9; i++ {
		m.M[i] = s15Fixed16(data, 12+i*4)
	}

	pos := 48
	var inCount, outCount int
	if wide {
		inCount = int(binary.BigEndian.Uint16(data[48:50]))
		outCount = int(binary.BigEndian.Uint16(data[50:52]))
		pos = 52
	} else {
		inCount, outCount = 256, 256
	}

	sampleWidth := 1
	if wide {
		sampleWidth = 2
	}
	readSample := func() float64 {
		var v float64
		if wide {
			v = float64(binary.BigEndian.Uint16(data[pos:pos+2])) / 65535.0
		} else {
			v = float64(data[pos]) / 255.0
		}
		pos += sampleWidth
		return v
	}

	inCurves := make([]Curve, nIn)
	for i := 0; i < nIn; i++ {
		table := make([]float64, inCount)
		for j := 0; j < inCount; j++ {
			table[j] = readSample()
		}
		inCurves[i] = SampledCurve{Table: table}
	}

	total := 1
	grid := make([]int, nIn)
	for i := 0; i < nIn; i++ {
		grid[i] = gridPoints
		total *= gridPoints
	}
	clutTable := make([]float64, total*nOut)
	for i := range clutTable {
		clutTable[i] = readSample()
	}
	clut := &CLUT{InputChannels: nIn, OutputChannels: nOut, GridPoints: grid, Table: clutTable}

	outCurves := make([]Curve, nOut)
	for i := 0; i < nOut; i++ {
		table := make([]float64, outCount)
		for j := 0; j < outCount; j++ {
			table[j] = readSample()
		}
		outCurves[i] = SampledCurve{Table: table}
	}

	return &ColorTransform{
		stages: []stage{
			curveStage{curves: inCurves},
			matrixStage{m: m},
			clutStage{c: clut},
			curveStage{curves: outCurves},
		},
	}, nil
}
