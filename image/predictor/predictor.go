/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package predictor reverses the TIFF (predictor 2) and PNG (predictors
// 10-15) predictors PDF image streams use under /DecodeParms to improve
// Flate/LZW compression ratios, at 1, 2, 4, 8 and 16 bits per component.
// core.FlateEncoder.postDecodePredict delegates to Reverse.
package predictor

import (
	"fmt"
)

// Params describes the /DecodeParms entries governing predictor reversal.
type Params struct {
	Predictor        int
	Colors           int
	BitsPerComponent int
	Columns          int
}

// Reverse undoes the predictor Params.Predictor applied to data, returning
// the unfiltered sample stream. Predictor 1 (no prediction) returns data
// unchanged.
func Reverse(data []byte, p Params) ([]byte, error) {
	if p.Colors <= 0 {
		p.Colors = 1
	}
	if p.BitsPerComponent <= 0 {
		p.BitsPerComponent = 8
	}
	if p.Columns <= 0 {
		p.Columns = 1
	}

	switch {
	case p.Predictor <= 1:
		return data, nil
	case p.Predictor == 2:
		return reverseTIFF(data, p)
	case p.Predictor >= 10 && p.Predictor <= 15:
		return reversePNG(data, p)
	default:
		return nil, fmt.Errorf("predictor: unsupported predictor %d", p.Predictor)
	}
}

// rowBytesFor is the number of packed bytes one row of Columns samples with
// Colors components at BitsPerComponent each occupies, rounded up to a
// whole byte (sub-byte rows are padded per PDF/TIFF convention).
func rowBytesFor(p Params) int {
	bits := p.Columns * p.Colors * p.BitsPerComponent
	return (bits + 7) / 8
}

// reverseTIFF reverses TIFF predictor 2 (horizontal differencing): each
// sample, after the first of its color plane in a row, is stored as the
// difference from the previous sample of the same plane. Grounded on
// core.FlateEncoder.postDecodePredict's TIFF branch, generalized from its
// BPC-8-only byte loop to 1/2/4/8/16 bits per component.
func reverseTIFF(data []byte, p Params) ([]byte, error) {
	rowBytes := rowBytesFor(p)
	if rowBytes == 0 || len(data)%rowBytes != 0 {
		return nil, fmt.Errorf("predictor: TIFF row length mismatch (data %d, row %d)", len(data), rowBytes)
	}
	rows := len(data) / rowBytes

	out := make([]byte, len(data))
	copy(out, data)

	switch p.BitsPerComponent {
	case 8:
		for r := 0; r < rows; r++ {
			row := out[r*rowBytes : (r+1)*rowBytes]
			for j := p.Colors; j < len(row); j++ {
				row[j] += row[j-p.Colors]
			}
		}
	case 16:
		stride := p.Colors * 2
		for r := 0; r < rows; r++ {
			row := out[r*rowBytes : (r+1)*rowBytes]
			for j := stride; j+2 <= len(row); j += 2 {
				prev := uint16(row[j-stride])<<8 | uint16(row[j-stride+1])
				cur := uint16(row[j])<<8 | uint16(row[j+1])
				sum := prev + cur
				row[j] = byte(sum >> 8)
				row[j+1] = byte(sum)
			}
		}
	case 1, 2, 4:
		samplesPerRow := p.Columns * p.Colors
		mask := uint32(1)<<uint(p.BitsPerComponent) - 1
		for r := 0; r < rows; r++ {
			row := out[r*rowBytes : (r+1)*rowBytes]
			samples := unpackBits(row, p.BitsPerComponent, samplesPerRow)
			for i := p.Colors; i < len(samples); i++ {
				samples[i] = (samples[i] + samples[i-p.Colors]) & mask
			}
			packBits(samples, p.BitsPerComponent, row)
		}
	default:
		return nil, fmt.Errorf("predictor: unsupported TIFF BitsPerComponent %d", p.BitsPerComponent)
	}

	return out, nil
}

// unpackBits unpacks n MSB-first bitWidth-wide samples from a packed row.
func unpackBits(row []byte, bitWidth, n int) []uint32 {
	out := make([]uint32, n)
	bitPos := 0
	for i := 0; i < n; i++ {
		var v uint32
		for b := 0; b < bitWidth; b++ {
			byteIdx := (bitPos + b) / 8
			bitIdx := 7 - (bitPos+b)%8
			v <<= 1
			if byteIdx < len(row) && row[byteIdx]&(1<<uint(bitIdx)) != 0 {
				v |= 1
			}
		}
		out[i] = v
		bitPos += bitWidth
	}
	return out
}

// packBits packs n bitWidth-wide samples MSB-first into row, zeroing row
// first.
func packBits(samples []uint32, bitWidth int, row []byte) {
	for i := range row {
		row[i] = 0
	}
	bitPos := 0
	for _, v := range samples {
		for b := bitWidth - 1; b >= 0; b-- {
			byteIdx := bitPos / 8
			bitIdx := 7 - bitPos%8
			if (v>>uint(b))&1 != 0 {
				row[byteIdx] |= 1 << uint(bitIdx)
			}
			bitPos++
		}
	}
}

// PNG filter type bytes, one per row, per the PNG specification (and
// reused verbatim by the PDF predictors 10-15).
const (
	pfNone byte = iota
	pfSub
	pfUp
	pfAvg
	pfPaeth
)

// reversePNG reverses PNG predictors 10-15: each row is prefixed with a
// filter-type byte selecting how that row's bytes were delta-encoded
// against the byte to the left and the row above. bytesPerPixel follows the
// PNG spec's definition (ceil(colors*bitsPerComponent/8), minimum 1), which
// is what makes this correct for BitsPerComponent values below 8: the
// predictor then operates at a coarser byte granularity than one sample.
// Grounded on core.FlateEncoder.postDecodePredict's PNG branch.
func reversePNG(data []byte, p Params) ([]byte, error) {
	sampleRowBytes := rowBytesFor(p)
	rowBytes := sampleRowBytes + 1 // +1 for the leading filter-type byte.
	if rowBytes <= 1 || len(data)%rowBytes != 0 {
		return nil, fmt.Errorf("predictor: PNG row length mismatch (data %d, row %d)", len(data), rowBytes)
	}
	rows := len(data) / rowBytes

	bytesPerPixel := (p.Colors*p.BitsPerComponent + 7) / 8
	if bytesPerPixel < 1 {
		bytesPerPixel = 1
	}

	out := make([]byte, 0, rows*sampleRowBytes)
	prevRow := make([]byte, sampleRowBytes)

	for r := 0; r < rows; r++ {
		rec := make([]byte, rowBytes)
		copy(rec, data[r*rowBytes:(r+1)*rowBytes])
		filter := rec[0]
		row := rec[1:]

		switch filter {
		case pfNone:
		case pfSub:
			for j := bytesPerPixel; j < len(row); j++ {
				row[j] += row[j-bytesPerPixel]
			}
		case pfUp:
			for j := 0; j < len(row); j++ {
				row[j] += prevRow[j]
			}
		case pfAvg:
			for j := 0; j < len(row); j++ {
				var a byte
				if j >= bytesPerPixel {
					a = row[j-bytesPerPixel]
				}
				row[j] += byte((int(a) + int(prevRow[j])) / 2)
			}
		case pfPaeth:
			for j := 0; j < len(row); j++ {
				var a, c byte
				b := prevRow[j]
				if j >= bytesPerPixel {
					a = row[j-bytesPerPixel]
					c = prevRow[j-bytesPerPixel]
				}
				row[j] += paeth(a, b, c)
			}
		default:
			return nil, fmt.Errorf("predictor: invalid PNG filter byte %d at row %d", filter, r)
		}

		out = append(out, row...)
		prevRow = row
	}

	return out, nil
}

// paeth implements the PNG Paeth predictor function.
func paeth(a, b, c byte) byte {
	pa := absInt(int(b) - int(c))
	pb := absInt(int(a) - int(c))
	pc := absInt(int(a) + int(b) - 2*int(c))
	if pa <= pb && pa <= pc {
		return a
	} else if pb <= pc {
		return b
	}
	return c
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
