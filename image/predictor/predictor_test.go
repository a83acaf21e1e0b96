/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package predictor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReverseNoPredictorIsIdentity(t *testing.T) {
	data := []byte{1, 2, 3}
	out, err := Reverse(data, Params{Predictor: 1})
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestReverseTIFF8Bit(t *testing.T) {
	// One row, 1 color component, values 10, 5, 5 encoded as horizontal
	// differences: 10, 5-10=-5(=251 mod 256), 5-5=0.
	encoded := []byte{10, 251, 0}
	out, err := Reverse(encoded, Params{Predictor: 2, Colors: 1, BitsPerComponent: 8, Columns: 3})
	require.NoError(t, err)
	require.Equal(t, []byte{10, 5, 5}, out)
}

func TestReverseTIFF16Bit(t *testing.T) {
	// One row, 1 color component, 2 columns: samples 1000, 1500. Second
	// sample stored as the difference 500.
	encoded := []byte{0x03, 0xE8, 0x01, 0xF4}
	out, err := Reverse(encoded, Params{Predictor: 2, Colors: 1, BitsPerComponent: 16, Columns: 2})
	require.NoError(t, err)
	require.Equal(t, []byte{0x03, 0xE8, 0x05, 0xDC}, out) // 1000, 1500
}

func TestReverseTIFF4Bit(t *testing.T) {
	// 2 columns, 1 color, 4 bits each: values 3 and 5 (5 stored as delta 2),
	// packed into one byte: 0011 0010.
	encoded := []byte{0x32}
	out, err := Reverse(encoded, Params{Predictor: 2, Colors: 1, BitsPerComponent: 4, Columns: 2})
	require.NoError(t, err)
	require.Equal(t, []byte{0x35}, out) // 3, 5 packed as 0011 0101
}

func TestReversePNGUpFilter(t *testing.T) {
	p := Params{Predictor: 12, Colors: 1, BitsPerComponent: 8, Columns: 2}
	// Row 0: filter None, values 10, 20. Row 1: filter Up, deltas 5, 5 ->
	// actual values 15, 25.
	data := []byte{
		0, 10, 20,
		2, 5, 5,
	}
	out, err := Reverse(data, p)
	require.NoError(t, err)
	require.Equal(t, []byte{10, 20, 15, 25}, out)
}

func TestReverseUnsupportedPredictorErrors(t *testing.T) {
	_, err := Reverse([]byte{1}, Params{Predictor: 99})
	require.Error(t, err)
}
