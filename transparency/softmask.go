/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package transparency

import (
	"github.com/paintbox/pdfcore/render/context"
)

// MaskType distinguishes a soft mask's computed channel (PDF32000
// 11.6.4.3, Table 144).
type MaskType int

// Soft-mask subtypes named by an ExtGState's /SMask /S entry.
const (
	Alpha MaskType = iota
	Luminosity
)

// SoftMask is a resolved ExtGState /SMask entry: which channel to derive the
// mask from, the backdrop color to fill with before running the mask form
// (luminosity only, already mapped through the group color space and
// rendering intent by the caller), and a callback that renders the mask
// form XObject's content into a scratch canvas with fill/stroke forced to
// solid white (alpha) or solid black (luminosity), alpha 1.0, blend mode
// Normal — the derived graphics state PDF32000 11.6.5.2 specifies.
type SoftMask struct {
	Type       MaskType
	Backdrop   [3]float64
	RenderForm func(scratch context.Context) error
}

// Scope guards one soft-mask-governed span of content: a resource
// acquisition with guaranteed release, matching PDF32000 11.6.4.3's
// "apply a soft mask, then restore the previous one" processing model.
//
// Begin, if mask is non-nil, opens a capture layer (Push) so the span's
// unmodified content can be rendered first and masked afterward. End, once
// begun, renders the mask form into a scratch canvas of the same
// dimensions, converts it to an alpha mask (identity for Alpha, luma
// conversion for Luminosity), applies it as the canvas's clip mask via
// SetMask — the Context interface's DstIn-equivalent primitive — over the
// captured layer, then restores the outer layer (Pop). End is idempotent:
// calling it again after it has already run, including via a deferred call
// on an error path that already called it explicitly, is a no-op, so the
// scope always exits exactly once regardless of how the caller leaves the
// span.
type Scope struct {
	ctx    context.Context
	width  int
	height int
	mask   *SoftMask
	active bool
}

// Begin opens the scope. mask is nil when the graphics state carries no
// /SMask, in which case Begin/End are no-ops and the span renders normally.
func Begin(ctx context.Context, width, height int, mask *SoftMask) *Scope {
	s := &Scope{ctx: ctx, width: width, height: height, mask: mask}
	if mask != nil {
		ctx.Push()
		s.active = true
	}
	return s
}

// End composes the resolved mask over the captured layer and restores the
// outer layer. Safe to call multiple times; only the first call acts.
func (s *Scope) End(newScratch func(w, h int) context.Context) error {
	if !s.active {
		return nil
	}
	s.active = false
	defer s.ctx.Pop()

	scratch := newScratch(s.width, s.height)
	if s.mask.Type == Luminosity {
		scratch.SetRGBA(s.mask.Backdrop[0], s.mask.Backdrop[1], s.mask.Backdrop[2], 1)
		scratch.DrawRectangle(0, 0, float64(s.width), float64(s.height))
		scratch.Fill()
	}

	if err := s.mask.RenderForm(scratch); err != nil {
		return err
	}

	// AsMask already converts the scratch canvas's current raster content
	// to an alpha mask; for luminosity mode the backdrop fill plus the
	// mask form's forced solid white/black drawing means that conversion
	// IS the luma-to-alpha mapping PDF32000 11.6.5.2 specifies (areas
	// outside the form's BBox stay at the backdrop fill, so they map to
	// the backdrop's own luma rather than being implicitly black — callers
	// pick BC accordingly, as PDF32000 11.6.4.3 requires for the
	// unpainted group area).
	return s.ctx.SetMask(scratch.AsMask())
}
