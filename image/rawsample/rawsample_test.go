/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package rawsample

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGray8(t *testing.T) {
	// 2x1 gray image: black, white.
	data := []byte{0x00, 0xFF}
	out, err := Gray(data, 2, 1, 8)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 255, 255, 255, 255, 255}, out)
}

func TestGray1Bit(t *testing.T) {
	// 2x1 1-bit image: 0, 1 packed into the top two bits of one byte.
	data := []byte{0x40}
	out, err := Gray(data, 2, 1, 1)
	require.NoError(t, err)
	require.Equal(t, uint8(0), out[0])
	require.Equal(t, uint8(255), out[4])
}

func TestRGB8(t *testing.T) {
	data := []byte{10, 20, 30}
	out, err := RGB(data, 1, 1, 8)
	require.NoError(t, err)
	require.Equal(t, []byte{10, 20, 30, 255}, out)
}

func TestCMYKAllZeroIsWhite(t *testing.T) {
	data := []byte{0, 0, 0, 0}
	out, err := CMYK(data, 1, 1, 8)
	require.NoError(t, err)
	require.Equal(t, []byte{255, 255, 255, 255}, out)
}

func TestCMYKFullBlack(t *testing.T) {
	data := []byte{0, 0, 0, 255}
	out, err := CMYK(data, 1, 1, 8)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 255}, out)
}

func TestShortDataErrors(t *testing.T) {
	_, err := RGB([]byte{1, 2}, 1, 1, 8)
	require.Error(t, err)
}
