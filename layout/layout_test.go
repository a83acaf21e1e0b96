/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package layout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeExtentStacksPagesWithGap(t *testing.T) {
	pages := []Page{
		{Width: 100, Height: 200},
		{Width: 150, Height: 300},
	}
	cfg := Config{Zoom: 1, Gap: 10}

	l := Compute(pages, 400, 400, cfg, 0, 0)

	require.Equal(t, 150.0, l.ExtentWidth)
	require.Equal(t, 200.0+10.0+300.0, l.ExtentHeight)
	require.Len(t, l.Offsets, 2)
	require.Equal(t, 0.0, l.Offsets[0].Y)
	require.Equal(t, 210.0, l.Offsets[1].Y)
}

func TestComputeCentersNarrowerPages(t *testing.T) {
	pages := []Page{
		{Width: 100, Height: 200},
		{Width: 150, Height: 300},
	}
	l := Compute(pages, 400, 400, Config{Zoom: 1}, 0, 0)

	require.Equal(t, 25.0, l.Offsets[0].X) // (150-100)/2
	require.Equal(t, 0.0, l.Offsets[1].X)
}

func TestRotatedSizeSwapsOnOddRotation(t *testing.T) {
	p := Page{Width: 100, Height: 200, Rotation: 90}
	w, h := p.RotatedSize()
	require.Equal(t, 200.0, w)
	require.Equal(t, 100.0, h)

	p.Rotation = 180
	w, h = p.RotatedSize()
	require.Equal(t, 100.0, w)
	require.Equal(t, 200.0, h)
}

func TestVisiblePagesIntersectsViewportBand(t *testing.T) {
	pages := []Page{
		{Width: 100, Height: 100},
		{Width: 100, Height: 100},
		{Width: 100, Height: 100},
	}
	l := Compute(pages, 100, 150, Config{Zoom: 1, Gap: 0}, 0, 120)
	require.Equal(t, []int{1, 2}, l.VisiblePages)
}

func TestCurrentPageTracksViewportCenter(t *testing.T) {
	pages := []Page{
		{Width: 100, Height: 100},
		{Width: 100, Height: 100},
		{Width: 100, Height: 100},
	}
	l := Compute(pages, 100, 100, Config{Zoom: 1, Gap: 0}, 0, 140)
	require.Equal(t, 1, l.CurrentPage)
}

func TestClampOffset(t *testing.T) {
	require.Equal(t, 0.0, ClampOffset(-10, 500, 400))
	require.Equal(t, 100.0, ClampOffset(500, 500, 400))
	require.Equal(t, 50.0, ClampOffset(50, 500, 400))
	require.Equal(t, 0.0, ClampOffset(50, 300, 400))
}
