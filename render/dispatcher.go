/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package render

import (
	goimage "image"
	gocolor "image/color"

	"github.com/paintbox/pdfcore/common"
	"github.com/paintbox/pdfcore/contentstream"
	"github.com/paintbox/pdfcore/core"
	"github.com/paintbox/pdfcore/internal/transform"
	"github.com/paintbox/pdfcore/model"
	"github.com/paintbox/pdfcore/render/context"
	"github.com/paintbox/pdfcore/shading"
	"github.com/paintbox/pdfcore/transparency"
)

// pathPaintOp is the set of painting actions a path-painting operator (f,
// S, B, ...) performs on the current path; the bits mirror PDF32000 Table
// 60's fill/stroke combinations.
type pathPaintOp int

const (
	pathFill pathPaintOp = 1 << iota
	pathStroke
)

// drawPath is the render dispatcher's path-painting entry point: it
// resolves gs's fill/stroke colors and alphas and applies op's fill and/or
// stroke actions to the canvas's current path under fillRule, routing both
// to the same specialized stroke/fill primitives every path operator used
// to duplicate inline.
func (r renderer) drawPath(ctx context.Context, gs contentstream.GraphicsState, op pathPaintOp, fillRule context.FillRule) error {
	if op&pathFill != 0 {
		rgb, err := solidRGB(gs.ColorspaceNonStroking, gs.ColorNonStroking)
		if err != nil {
			return err
		}
		ctx.SetFillRule(fillRule)
		ctx.SetFillRGBA(rgb[0], rgb[1], rgb[2], gs.FillAlpha)
		if op&pathStroke != 0 {
			ctx.FillPreserve()
		} else {
			ctx.Fill()
		}
	}
	if op&pathStroke != 0 {
		rgb, err := solidRGB(gs.ColorspaceStroking, gs.ColorStroking)
		if err != nil {
			return err
		}
		ctx.SetStrokeRGBA(rgb[0], rgb[1], rgb[2], gs.StrokeAlpha)
		ctx.Stroke()
	}
	return nil
}

func solidRGB(cs model.PdfColorspace, c model.PdfColor) ([3]float64, error) {
	color, err := cs.ColorToRGB(c)
	if err != nil {
		return [3]float64{}, err
	}
	rgbColor, ok := color.(*model.PdfColorDeviceRGB)
	if !ok {
		return [3]float64{}, errType
	}
	return [3]float64{rgbColor.R(), rgbColor.G(), rgbColor.B()}, nil
}

// drawImage draws img into the unit square [0,1]x[0,1] of the current user
// space, matching PDF32000 8.9.5.2's image space convention: (0,0) is the
// lower-left image sample and (1,1) the upper-right, so painting it
// requires both scaling the image's pixel grid down to one unit and
// flipping it vertically, since image row 0 is the image's top row while
// PDF user space increases upward. The Y-flip is local to this call (via
// DrawImageAnchored's anchor + a negative Y scale) rather than a change to
// the canvas's global transform, so it never leaks into sibling draw
// calls.
func (r renderer) drawImage(ctx context.Context, img goimage.Image) {
	bounds := img.Bounds()
	ctx.Push()
	ctx.Scale(1.0/float64(bounds.Dx()), -1.0/float64(bounds.Dy()))
	ctx.DrawImageAnchored(img, 0, 0, 0, 1)
	ctx.Pop()
}

// drawForm runs a form XObject's content stream under its own graphics
// state layer: Push opens the layer, Matrix/BBox establish the form's
// local coordinate system and clip, renderContentStream interprets the
// form's operators (recursing back through this same dispatcher for
// whatever it draws), and Pop restores the caller's state. When the form
// declares a transparency group (PDF32000 11.4.5, read from its /Group
// entry), the layer additionally composites as that group's isolated or
// knockout kind via transparency.Group.
func (r renderer) drawForm(ctx context.Context, gs contentstream.GraphicsState, xform *model.XObjectForm, resources *model.PdfPageResources) error {
	formContent, err := xform.GetContentStream()
	if err != nil {
		return err
	}

	formResources := xform.Resources
	if formResources == nil {
		formResources = resources
	}

	render := func() error {
		if xform.Matrix != nil {
			array, ok := core.GetArray(xform.Matrix)
			if !ok {
				return errType
			}
			mf, err := core.GetNumbersAsFloat(array.Elements())
			if err != nil {
				return err
			}
			if len(mf) != 6 {
				return errRange
			}
			m := transform.NewMatrix(mf[0], mf[1], mf[2], mf[3], mf[4], mf[5])
			ctx.SetMatrix(ctx.Matrix().Mult(m))
		}

		if xform.BBox != nil {
			array, ok := core.GetArray(xform.BBox)
			if !ok {
				return errType
			}
			bf, err := core.GetNumbersAsFloat(array.Elements())
			if err != nil {
				return err
			}
			if len(bf) != 4 {
				return errRange
			}
			ctx.DrawRectangle(bf[0], bf[1], bf[2]-bf[0], bf[3]-bf[1])
			ctx.ClipPreserve()
			ctx.ClearPath()
		} else {
			common.Log.Debug("ERROR: Required BBox missing on XObject Form")
		}

		return r.renderContentStream(ctx, string(formContent), formResources)
	}

	ctx.Push()
	defer ctx.Pop()

	if xform.Group == nil {
		return render()
	}

	groupDict, ok := core.GetDict(core.TraceToDirectObject(xform.Group))
	if !ok {
		return render()
	}
	group := transparency.Group{Kind: transparency.NonIsolated, BlendMode: gs.BlendMode, Alpha: gs.FillAlpha}
	if isolated, ok := core.GetBoolVal(groupDict.Get("I")); ok && isolated {
		group.Kind = transparency.Isolated
	}
	if knockout, ok := core.GetBoolVal(groupDict.Get("K")); ok && knockout {
		group.Kind = transparency.Knockout
	}
	return group.Render(ctx, render)
}

// drawShading paints sh's color field over the canvas's current clip
// region. Function-based and axial/radial shadings (types 1-3) use a
// context.Pattern adapter so the canvas samples the shading's pixel-domain
// evaluator once per covered pixel, exactly like any other fill pattern, so
// no separate rasterization pass is needed. Mesh-based shadings (types
// 4-7) are filled per-triangle/per-patch instead, since their color field
// is only defined where a mesh primitive actually covers the point:
// Mesh/Patches are tried first and Shader only as the fallback, matching
// model.PdfShading's own type-dispatch order.
func (r renderer) drawShading(ctx context.Context, sh *model.PdfShading) error {
	if mesh, err := sh.Mesh(); err == nil {
		return r.drawMesh(ctx, mesh)
	}
	if patches, err := sh.Patches(); err == nil {
		return r.drawPatches(ctx, patches)
	}

	shader, err := sh.Shader()
	if err != nil {
		return err
	}

	ctx.SetFillStyle(shaderPattern{shader: shader})
	ctx.Fill()
	return nil
}

// drawMesh fills each Gouraud triangle with its own barycentric-interpolated
// color pattern, one path+fill per triangle: the canvas has no native
// per-vertex color primitive, so smooth shading inside the triangle's
// interior is reproduced by sampling Triangle.ColorAt per covered pixel
// instead.
func (r renderer) drawMesh(ctx context.Context, triangles []shading.Triangle) error {
	for _, t := range triangles {
		ctx.NewSubPath()
		ctx.MoveTo(t[0].X, t[0].Y)
		ctx.LineTo(t[1].X, t[1].Y)
		ctx.LineTo(t[2].X, t[2].Y)
		ctx.ClosePath()
		ctx.SetFillStyle(trianglePattern{t})
		ctx.Fill()
	}
	return nil
}

// drawPatches fills each Coons/tensor patch's quadrilateral outline (the
// four corner control points PDF32000 Table 84 calls p1, p4, p7, p10) with
// its own bilinearly-interpolated corner-color pattern via Patch.ColorAt.
func (r renderer) drawPatches(ctx context.Context, patches []shading.Patch) error {
	for _, p := range patches {
		if len(p.ControlPoints) < 10 {
			continue
		}
		corners := [4]shading.Point{p.ControlPoints[0], p.ControlPoints[3], p.ControlPoints[6], p.ControlPoints[9]}
		ctx.NewSubPath()
		ctx.MoveTo(corners[0].X, corners[0].Y)
		for _, c := range corners[1:] {
			ctx.LineTo(c.X, c.Y)
		}
		ctx.ClosePath()
		ctx.SetFillStyle(patchPattern{p, corners})
		ctx.Fill()
	}
	return nil
}

// shaderPattern adapts a shading.Shader's pixel-domain evaluator, which
// works in the shading's own (possibly transformed) coordinate space, into
// the render canvas's context.Pattern interface, which samples by device
// pixel. device-to-shading-space mapping is the caller's responsibility:
// the shader itself already embeds whatever Matrix/Domain it needs.
type shaderPattern struct {
	shader shading.Shader
}

func (p shaderPattern) ColorAt(x, y int) gocolor.Color {
	rgb, ok := p.shader.ColorAt(float64(x), float64(y))
	if !ok || len(rgb) < 3 {
		return gocolor.RGBA{}
	}
	return rgbaColor(rgb)
}

// trianglePattern adapts one Gouraud Triangle's ColorAt into a
// context.Pattern; samples outside the triangle (possible near its edges
// due to path antialiasing) fall back to the nearest vertex's color rather
// than leaving the pixel untouched.
type trianglePattern struct {
	t shading.Triangle
}

func (p trianglePattern) ColorAt(x, y int) gocolor.Color {
	rgb, ok := p.t.ColorAt(float64(x), float64(y))
	if !ok {
		rgb = p.t[0].Color
	}
	return rgbaColor(rgb)
}

// patchPattern adapts one Coons/tensor Patch into a context.Pattern by
// mapping a device pixel back to the patch's parametric (u, v) unit square
// via inverse bilinear interpolation of its four corners, then delegating
// to Patch.ColorAt.
type patchPattern struct {
	p       shading.Patch
	corners [4]shading.Point
}

func (p patchPattern) ColorAt(x, y int) gocolor.Color {
	u, v := inverseBilinear(p.corners, float64(x), float64(y))
	return rgbaColor(p.p.ColorAt(u, v))
}

// inverseBilinear estimates the (u, v) parameter of point (x, y) within the
// quadrilateral corners[0..3] (p1, p4, p7, p10 in patch winding order) by
// solving for u along the top/bottom edges and v between them; patches are
// typically near-planar small quads, so this linear approximation is close
// enough for color sampling even though it isn't an exact projective
// inverse.
func inverseBilinear(c [4]shading.Point, x, y float64) (float64, float64) {
	e1x, e1y := c[1].X-c[0].X, c[1].Y-c[0].Y
	e2x, e2y := c[3].X-c[0].X, c[3].Y-c[0].Y
	denom := e1x*e1x + e1y*e1y
	u := 0.0
	if denom != 0 {
		u = ((x-c[0].X)*e1x + (y-c[0].Y)*e1y) / denom
	}
	denom2 := e2x*e2x + e2y*e2y
	v := 0.0
	if denom2 != 0 {
		v = ((x-c[0].X)*e2x + (y-c[0].Y)*e2y) / denom2
	}
	return clampUnit(u), clampUnit(v)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func rgbaColor(rgb []float64) gocolor.Color {
	if len(rgb) < 3 {
		return gocolor.RGBA{A: 255}
	}
	return gocolor.RGBA{
		R: clamp8(rgb[0]),
		G: clamp8(rgb[1]),
		B: clamp8(rgb[2]),
		A: 255,
	}
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
