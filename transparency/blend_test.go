/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package transparency

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBlendModeKnownNames(t *testing.T) {
	require.Equal(t, Multiply, ParseBlendMode("Multiply"))
	require.Equal(t, Luminosity, ParseBlendMode("Luminosity"))
	require.Equal(t, Normal, ParseBlendMode("Compatible"))
	require.Equal(t, Normal, ParseBlendMode("NotARealMode"))
}

func TestBlendMultiplyBlack(t *testing.T) {
	cb := [3]float64{1, 1, 1}
	cs := [3]float64{0, 0.5, 1}
	got := Blend(Multiply, cb, cs)
	require.InDeltaSlice(t, []float64{0, 0.5, 1}, got[:], 1e-9)
}

func TestBlendScreenWhite(t *testing.T) {
	cb := [3]float64{0, 0, 0}
	cs := [3]float64{0.2, 0.5, 0.9}
	got := Blend(Screen, cb, cs)
	require.InDeltaSlice(t, []float64{0.2, 0.5, 0.9}, got[:], 1e-9)
}

func TestBlendDarkenLighten(t *testing.T) {
	cb := [3]float64{0.2, 0.8, 0.5}
	cs := [3]float64{0.6, 0.3, 0.5}

	dark := Blend(Darken, cb, cs)
	require.InDeltaSlice(t, []float64{0.2, 0.3, 0.5}, dark[:], 1e-9)

	light := Blend(Lighten, cb, cs)
	require.InDeltaSlice(t, []float64{0.6, 0.8, 0.5}, light[:], 1e-9)
}

func TestBlendNormalIdentityOnSource(t *testing.T) {
	// Normal isn't handled by Blend's switch (it's a no-op at the caller's
	// compositing step), so the default case should return cs unchanged.
	cb := [3]float64{0.1, 0.2, 0.3}
	cs := [3]float64{0.9, 0.8, 0.7}
	got := Blend(Normal, cb, cs)
	require.InDeltaSlice(t, cs[:], got[:], 1e-9)
}

func TestBlendLuminosityTakesSourceLuma(t *testing.T) {
	cb := [3]float64{0.2, 0.2, 0.2}
	cs := [3]float64{0.9, 0.1, 0.1}
	got := Blend(Luminosity, cb, cs)
	require.InDelta(t, lum(cs), lum(got), 1e-9)
}
