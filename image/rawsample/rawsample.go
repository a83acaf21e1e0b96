/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package rawsample upsamples raw (already predictor-reversed, already
// color-space-resolved) gray and RGB pixel data at 1/2/4/8/16 bits per
// component into 8-bit-per-channel RGBA, the format every downstream
// consumer (the render dispatcher's draw_image, the transparency package's
// mask compositing) expects. Grounded on model/image.go's existing
// ColorComponents/BitsPerComponent-driven sample walks
// (ToGoImage/colorAt), generalized into standalone functions that don't
// require a *model.Image.
package rawsample

import "fmt"

// bitReader reads fixed-width MSB-first samples from a packed byte slice.
type bitReader struct {
	data   []byte
	bitPos int
}

func (r *bitReader) read(bits int) uint32 {
	var v uint32
	for b := 0; b < bits; b++ {
		byteIdx := (r.bitPos + b) / 8
		bitIdx := 7 - (r.bitPos+b)%8
		v <<= 1
		if byteIdx < len(r.data) && r.data[byteIdx]&(1<<uint(bitIdx)) != 0 {
			v |= 1
		}
	}
	r.bitPos += bits
	return v
}

// to8 rescales a bitsPerComponent-wide sample to the full 0-255 range.
func to8(v uint32, bits int) uint8 {
	if bits == 8 {
		return uint8(v)
	}
	maxIn := (uint32(1) << uint(bits)) - 1
	return uint8((v*255 + maxIn/2) / maxIn)
}

// Gray upsamples a single-channel gray image at the given bit depth into
// RGBA (opaque, R=G=B=gray).
func Gray(data []byte, width, height, bitsPerComponent int) ([]byte, error) {
	return upsample(data, width, height, 1, bitsPerComponent, func(samples []uint32, out []byte, o int) {
		g := to8(samples[0], bitsPerComponent)
		out[o], out[o+1], out[o+2], out[o+3] = g, g, g, 255
	})
}

// RGB upsamples a 3-channel RGB image at the given bit depth into RGBA
// (opaque).
func RGB(data []byte, width, height, bitsPerComponent int) ([]byte, error) {
	return upsample(data, width, height, 3, bitsPerComponent, func(samples []uint32, out []byte, o int) {
		out[o] = to8(samples[0], bitsPerComponent)
		out[o+1] = to8(samples[1], bitsPerComponent)
		out[o+2] = to8(samples[2], bitsPerComponent)
		out[o+3] = 255
	})
}

// CMYK upsamples a 4-channel CMYK image at the given bit depth into RGBA
// using the naive subtractive conversion (matching model/colorspace.go's
// DeviceCMYK ColorToRGB formula).
func CMYK(data []byte, width, height, bitsPerComponent int) ([]byte, error) {
	return upsample(data, width, height, 4, bitsPerComponent, func(samples []uint32, out []byte, o int) {
		maxIn := float64((uint32(1) << uint(bitsPerComponent)) - 1)
		c := float64(samples[0]) / maxIn
		m := float64(samples[1]) / maxIn
		y := float64(samples[2]) / maxIn
		k := float64(samples[3]) / maxIn
		out[o] = clampByte((1 - c) * (1 - k) * 255)
		out[o+1] = clampByte((1 - m) * (1 - k) * 255)
		out[o+2] = clampByte((1 - y) * (1 - k) * 255)
		out[o+3] = 255
	})
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// rowBytes is the packed byte width of one row of width*channels samples at
// bitsPerComponent each, rounded up (PDF image rows pad to a byte
// boundary).
func rowBytes(width, channels, bitsPerComponent int) int {
	return (width*channels*bitsPerComponent + 7) / 8
}

func upsample(data []byte, width, height, channels, bitsPerComponent int, px func(samples []uint32, out []byte, o int)) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("rawsample: invalid dimensions %dx%d", width, height)
	}
	stride := rowBytes(width, channels, bitsPerComponent)
	if len(data) < stride*height {
		return nil, fmt.Errorf("rawsample: short data (%d bytes, need %d)", len(data), stride*height)
	}

	out := make([]byte, width*height*4)
	samples := make([]uint32, channels)
	for y := 0; y < height; y++ {
		r := &bitReader{data: data[y*stride : (y+1)*stride]}
		for x := 0; x < width; x++ {
			for c := 0; c < channels; c++ {
				samples[c] = r.read(bitsPerComponent)
			}
			px(samples, out, (y*width+x)*4)
		}
	}
	return out, nil
}
