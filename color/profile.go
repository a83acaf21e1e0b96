/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package color implements the ICC-aware color pipeline: profile parsing,
// the curve/matrix/CLUT evaluator chain, chromatic adaptation, and the
// memoized RGBA sampler the model package's color spaces resolve to.
//
// Profile layout (header + tag table) is grounded on the ICC.1:2004-10
// structure as read by pdfcpu's iccProfile.go; the transform stages follow
// the ICC spec's mAB/mBA multi-process-element and legacy lut8/lut16
// orderings named by the spec.
package color

import (
	"encoding/binary"
	"fmt"
)

// RenderingIntent selects how out-of-gamut colors are handled; it also
// doubles as a cache key component for the memoized RGBA sampler.
type RenderingIntent uint32

// Rendering intents defined by the ICC specification (header offset 64).
const (
	Perceptual RenderingIntent = iota
	RelativeColorimetric
	Saturation
	AbsoluteColorimetric
)

// Signature identifies a 4-byte ICC tag or type signature.
type Signature string

// tagEntry is one row of the tag table: signature, offset, size.
type tagEntry struct {
	offset uint32
	size   uint32
}

// Profile is a parsed ICC profile: the fields the color pipeline actually
// needs (data/connection color space, declared intent, tag table) plus the
// raw bytes so tag payloads can be decoded lazily.
type Profile struct {
	raw []byte

	DataColorSpace Signature
	PCS            Signature
	DeclaredIntent RenderingIntent

	tags map[Signature]tagEntry
}

// DecodeProfile parses the 128-byte header and tag table of an ICC profile.
// It does not interpret tag payloads; use Profile.Transform for that.
func DecodeProfile(data []byte) (*Profile, error) {
	if len(data) < 132 {
		return nil, fmt.Errorf("icc: profile too short (%d bytes)", len(data))
	}

	p := &Profile{
		raw:            data,
		DataColorSpace: Signature(data[16:20]),
		PCS:            Signature(data[20:24]),
		DeclaredIntent: RenderingIntent(binary.BigEndian.Uint32(data[64:68])),
		tags:           make(map[Signature]tagEntry),
	}

	tagCount := binary.BigEndian.Uint32(data[128:132])
	pos := 132
	for i := uint32(0); i < tagCount; i++ {
		if pos+12 > len(data) {
			return nil, fmt.Errorf("icc: truncated tag table at entry %d", i)
		}
		sig := Signature(data[pos : pos+4])
		off := binary.BigEndian.Uint32(data[pos+4 : pos+8])
		size := binary.BigEndian.Uint32(data[pos+8 : pos+12])
		p.tags[sig] = tagEntry{offset: off, size: size}
		pos += 12
	}

	return p, nil
}

// tagData returns the raw bytes for sig, or nil if the tag is absent.
func (p *Profile) tagData(sig Signature) []byte {
	e, ok := p.tags[sig]
	if !ok {
		return nil
	}
	if uint64(e.offset)+uint64(e.size) > uint64(len(p.raw)) {
		return nil
	}
	return p.raw[e.offset : e.offset+e.size]
}

// hasTag reports whether sig is present in the tag table.
func (p *Profile) hasTag(sig Signature) bool {
	_, ok := p.tags[sig]
	return ok
}

// s15Fixed16 decodes an ICC s15Fixed16Number (signed Q16.16) at offset i.
func s15Fixed16(b []byte, i int) float64 {
	v := int32(binary.BigEndian.Uint32(b[i : i+4]))
	return float64(v) / 65536.0
}

// readXYZ reads three consecutive s15Fixed16Number XYZ components.
func readXYZ(b []byte, i int) [3]float64 {
	return [3]float64{
		s15Fixed16(b, i),
		s15Fixed16(b, i+4),
		s15Fixed16(b, i+8),
	}
}
