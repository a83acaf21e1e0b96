package jpegcore

import "math"

// zigzag maps a zig-zag scan index to its natural 8x8 row-major index, per
// ISO/IEC 10918-1 Annex A, Figure A.6.
var zigzag = [64]int{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

var idctCosTable [8][8]float64

func init() {
	for x := 0; x < 8; x++ {
		for u := 0; u < 8; u++ {
			idctCosTable[x][u] = math.Cos(float64(2*x+1) * float64(u) * math.Pi / 16)
		}
	}
}

func cU(u int) float64 {
	if u == 0 {
		return 1 / math.Sqrt2
	}
	return 1
}

// idct8x8 performs a direct (non-fast) inverse DCT-II on a dequantized,
// natural-order 8x8 coefficient block, writing clamped level-shifted samples
// (0-255) into out. A direct O(n^4) transform is used rather than AAN/Loeffler
// factoring: clarity over speed, since this engine renders pages, not video.
func idct8x8(block *[64]int32, out *[64]uint8) {
	var tmp [64]float64
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			var sum float64
			for v := 0; v < 8; v++ {
				cv := cU(v)
				rowBase := v * 8
				for u := 0; u < 8; u++ {
					coef := float64(block[rowBase+u])
					if coef == 0 {
						continue
					}
					sum += cU(u) * cv * coef * idctCosTable[x][u] * idctCosTable[y][v]
				}
			}
			val := sum/4 + 128
			tmp[y*8+x] = val
		}
	}
	for i, v := range tmp {
		out[i] = clamp255(v)
	}
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
