/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package layout computes the continuous-scroll page layout a PDF viewer
// canvas needs: total scrollable extent, each page's position within it,
// which page the viewport is currently centered on, and which pages are
// visible at all. None of this touches a rasterizer or the PDF object
// model (model.PdfPage et al.) — it works over plain page dimensions so
// the viewer can recompute layout on zoom/resize without re-walking the
// document. Standard library only: none of the pack's examples carry a
// dedicated layout-math dependency (the closest candidates, `fogleman/gg`
// and the unipdf `render/context` package, are rasterizer/canvas
// abstractions, not viewport geometry), so this is plain arithmetic over
// the Page/Viewport inputs.
package layout

import "math"

// Page is one document page's unscaled dimensions and rotation, as
// model.PdfPage.GetMediaBox and model.PdfPage.Rotate already expose them.
type Page struct {
	Width    float64
	Height   float64
	Rotation int // degrees, normalized to one of 0/90/180/270 by the caller
}

// RotatedSize returns the page's width/height swapped if Rotation is an odd
// multiple of 90, matching how a 90/270-degree page is actually painted.
func (p Page) RotatedSize() (w, h float64) {
	if p.Rotation%180 != 0 {
		return p.Height, p.Width
	}
	return p.Width, p.Height
}

// Config carries the viewer's current zoom and spacing; all are in the
// same unscaled page-point units as Page.Width/Height.
type Config struct {
	Zoom                      float64
	Gap                       float64
	PaddingLeft, PaddingRight float64
	PaddingTop, PaddingBottom float64
}

// Offset is one page's computed position and size within the scrollable
// extent, in zoomed pixel units.
type Offset struct {
	X, Y          float64
	Width, Height float64
}

// Layout is the full recomputed geometry for a page collection at a given
// viewport size, zoom, and scroll offsets.
type Layout struct {
	ExtentWidth  float64
	ExtentHeight float64
	Offsets      []Offset
	CurrentPage  int
	VisiblePages []int
}

// Compute derives Layout from pages, viewport size, and cfg. horizOffset/
// vertOffset are the viewer's current (unclamped) scroll position; use
// ClampOffset to fit them to the returned extent before the next Compute
// call, the same way a scrollbar position is clamped after a resize.
func Compute(pages []Page, viewportWidth, viewportHeight float64, cfg Config, horizOffset, vertOffset float64) Layout {
	var maxWidth float64
	offsets := make([]Offset, len(pages))

	gap := cfg.Gap * cfg.Zoom
	y := cfg.PaddingTop * cfg.Zoom
	for i, p := range pages {
		w, h := p.RotatedSize()
		w *= cfg.Zoom
		h *= cfg.Zoom
		if w > maxWidth {
			maxWidth = w
		}
		offsets[i] = Offset{Y: y, Width: w, Height: h}
		y += h + gap
	}
	if len(pages) > 0 {
		y -= gap
	}
	y += cfg.PaddingBottom * cfg.Zoom

	extentWidth := maxWidth + (cfg.PaddingLeft+cfg.PaddingRight)*cfg.Zoom
	for i := range offsets {
		offsets[i].X = (extentWidth - offsets[i].Width) / 2
	}

	l := Layout{
		ExtentWidth:  extentWidth,
		ExtentHeight: y,
		Offsets:      offsets,
	}
	l.CurrentPage = currentPage(offsets, gap, viewportHeight, vertOffset)
	l.VisiblePages = visiblePages(offsets, vertOffset, viewportHeight)
	return l
}

// currentPage returns the first page whose top, measured from the viewport's
// top edge, falls within [-gap, viewportHeight/2], or that covers the
// viewport center line outright — the page the viewer should report as
// "currently viewing" in e.g. a page-number indicator.
func currentPage(offsets []Offset, gap, viewportHeight, vertOffset float64) int {
	center := vertOffset + viewportHeight/2
	for i, o := range offsets {
		pageTop := o.Y - vertOffset
		if pageTop >= -gap && pageTop <= viewportHeight/2 {
			return i
		}
		if o.Y <= center && o.Y+o.Height >= center {
			return i
		}
	}
	if len(offsets) > 0 {
		return len(offsets) - 1
	}
	return 0
}

// visiblePages returns the indices of every page whose vertical extent
// intersects the viewport's visible band [vertOffset, vertOffset+height].
func visiblePages(offsets []Offset, vertOffset, viewportHeight float64) []int {
	lo, hi := vertOffset, vertOffset+viewportHeight
	var visible []int
	for i, o := range offsets {
		if o.Y+o.Height >= lo && o.Y <= hi {
			visible = append(visible, i)
		}
	}
	return visible
}

// ClampOffset fits a scroll offset into [0, max(0, extent-viewport)], the
// range a scrollbar or drag gesture must never escape.
func ClampOffset(offset, extent, viewport float64) float64 {
	max := math.Max(0, extent-viewport)
	if offset < 0 {
		return 0
	}
	if offset > max {
		return max
	}
	return offset
}
