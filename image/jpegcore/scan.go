package jpegcore

import (
	"errors"
	"fmt"
)

// decodeScan decodes the entropy-coded segment(s) following SOS, producing a
// fully upsampled, color-converted Image.
func (d *decoder) decodeScan() (*Image, error) {
	nc := len(d.comps)
	if nc != 1 && nc != 3 {
		return nil, fmt.Errorf("jpegcore: unsupported component count %d", nc)
	}
	for _, c := range d.comps {
		if d.quant[c.quantSel] == nil {
			return nil, errors.New("jpegcore: missing quantization table")
		}
		if d.dcTables[c.dcTableID] == nil || d.acTables[c.acTableID] == nil {
			return nil, errors.New("jpegcore: missing huffman table")
		}
	}

	mcuWidth := 8 * d.maxH
	mcuHeight := 8 * d.maxV
	mcusPerRow := (d.width + mcuWidth - 1) / mcuWidth
	mcusPerCol := (d.height + mcuHeight - 1) / mcuHeight

	// Full-resolution plane per component, stored at the component's own
	// sampled resolution (width*h/maxH etc. rounded up to block boundary),
	// upsampled to full size at the end.
	planes := make([][]uint8, nc)
	planeW := make([]int, nc)
	planeH := make([]int, nc)
	for i, c := range d.comps {
		planeW[i] = mcusPerRow * c.h * 8
		planeH[i] = mcusPerCol * c.v * 8
		planes[i] = make([]uint8, planeW[i]*planeH[i])
	}

	br := newBitReader(d.br)
	mcusSinceRestart := 0

	for my := 0; my < mcusPerCol; my++ {
		for mx := 0; mx < mcusPerRow; mx++ {
			for ci, c := range d.comps {
				for by := 0; by < c.v; by++ {
					for bx := 0; bx < c.h; bx++ {
						block, err := d.decodeBlock(br, &d.comps[ci])
						if err != nil {
							return nil, fmt.Errorf("jpegcore: decoding MCU (%d,%d) component %d: %w", mx, my, ci, err)
						}
						var samples [64]uint8
						idct8x8(block, &samples)
						ox := (mx*c.h + bx) * 8
						oy := (my*c.v + by) * 8
						for row := 0; row < 8; row++ {
							copy(planes[ci][(oy+row)*planeW[ci]+ox:(oy+row)*planeW[ci]+ox+8], samples[row*8:row*8+8])
						}
					}
				}
			}

			mcusSinceRestart++
			if d.restartInterv > 0 && mcusSinceRestart == d.restartInterv {
				mcusSinceRestart = 0
				last := my == mcusPerCol-1 && mx == mcusPerRow-1
				if !last {
					if err := d.resync(br); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	img := &Image{
		Config: Config{Width: d.width, Height: d.height, NumComponents: nc, BitsPerComponent: 8},
		Pix:    make([]byte, d.width*d.height*nc),
	}
	d.assemble(img, planes, planeW, planeH)
	return img, nil
}

// decodeBlock decodes one 8x8 block (DC + AC coefficients), dequantizes and
// returns it in natural (row-major) order.
func (d *decoder) decodeBlock(br *bitReader, c *component) (*[64]int32, error) {
	var coeffs [64]int32
	dcTable := d.dcTables[c.dcTableID]
	acTable := d.acTables[c.acTableID]
	quant := d.quant[c.quantSel]

	sizeCat, err := dcTable.decode(br)
	if err != nil {
		return nil, err
	}
	diff := 0
	if sizeCat > 0 {
		bits, err := br.receive(int(sizeCat))
		if err != nil {
			return nil, err
		}
		diff = extend(bits, int(sizeCat))
	}
	c.dcPred += diff
	coeffs[0] = int32(c.dcPred) * int32(quant[0])

	k := 1
	for k < 64 {
		rs, err := acTable.decode(br)
		if err != nil {
			return nil, err
		}
		run := int(rs >> 4)
		size := int(rs & 0x0f)
		if size == 0 {
			if run == 15 {
				k += 16 // ZRL: 16 zero coefficients
				continue
			}
			break // EOB
		}
		k += run
		if k >= 64 {
			return nil, errors.New("jpegcore: AC coefficient index out of range")
		}
		bits, err := br.receive(size)
		if err != nil {
			return nil, err
		}
		val := extend(bits, size)
		coeffs[zigzag[k]] = int32(val) * int32(quant[zigzag[k]])
		k++
	}
	return &coeffs, nil
}

// resync consumes the RSTn marker between restart intervals and resets the
// per-component DC predictors.
func (d *decoder) resync(br *bitReader) error {
	br.align()
	m, err := d.nextMarker()
	if err != nil {
		return err
	}
	if m < markerRST0 || m > markerRST7 {
		return fmt.Errorf("jpegcore: expected restart marker, got 0x%02x", m)
	}
	for i := range d.comps {
		d.comps[i].dcPred = 0
	}
	return nil
}

// assemble upsamples each component plane to full resolution (nearest
// neighbor, matching the common 4:2:0/4:2:2/4:4:4 JPEG subsampling schemes)
// and applies the YCbCr->RGB conversion (gray is copied as is), writing
// interleaved samples into img.Pix.
func (d *decoder) assemble(img *Image, planes [][]uint8, planeW, planeH []int) {
	nc := len(d.comps)
	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			off := (y*d.width + x) * nc
			if nc == 1 {
				img.Pix[off] = sampleAt(planes[0], planeW[0], planeH[0], x, y, d.maxH, d.maxV, d.comps[0].h, d.comps[0].v)
				continue
			}
			Y := float64(sampleAt(planes[0], planeW[0], planeH[0], x, y, d.maxH, d.maxV, d.comps[0].h, d.comps[0].v))
			Cb := float64(sampleAt(planes[1], planeW[1], planeH[1], x, y, d.maxH, d.maxV, d.comps[1].h, d.comps[1].v)) - 128
			Cr := float64(sampleAt(planes[2], planeW[2], planeH[2], x, y, d.maxH, d.maxV, d.comps[2].h, d.comps[2].v)) - 128

			r := Y + 1.402*Cr
			g := Y - 0.344136*Cb - 0.714136*Cr
			b := Y + 1.772*Cb

			img.Pix[off+0] = clamp255(r)
			img.Pix[off+1] = clamp255(g)
			img.Pix[off+2] = clamp255(b)
		}
	}
}

// sampleAt maps a full-resolution pixel coordinate into a (possibly
// subsampled) component plane via nearest-neighbor lookup.
func sampleAt(plane []uint8, planeW, planeH int, x, y, maxH, maxV, h, v int) uint8 {
	px := x * h / maxH
	py := y * v / maxV
	if px >= planeW {
		px = planeW - 1
	}
	if py >= planeH {
		py = planeH - 1
	}
	return plane[py*planeW+px]
}
