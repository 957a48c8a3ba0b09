// Copyright (c) 2026, The gcanvas Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ebicanvas draws a scene graph through Ebitengine. It
// implements [paint.Surface] on top of an [ebiten.Image], turning
// polygon fills and strokes into triangle batches against a shared
// white texture, and bitmap blits into cached GPU textures keyed by
// bitmap version.
//
// The host game calls [Surface.Begin] with the frame's target image
// at the top of every Draw, then hands the surface to the stage.
package ebicanvas

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/guinetik/gcanvas-sub007/math32"
	"github.com/guinetik/gcanvas-sub007/paint"
)

// whiteImage is the 1x1 (padded to 3x3 against texture bleed) source
// for flat shaded triangles.
var whiteImage = ebiten.NewImage(3, 3)

var whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)

func init() {
	whiteImage.Fill(color.White)
}

// texture is a GPU copy of a [paint.Bitmap] at a known version.
type texture struct {
	img     *ebiten.Image
	version uint64
	w, h    int
}

// Surface implements [paint.Surface] on an [ebiten.Image] target.
// Create one per window with [New] and keep it across frames so
// bitmap textures stay cached.
type Surface struct {
	screen *ebiten.Image
	stack  []math32.Matrix2

	textures map[*paint.Bitmap]*texture

	// scratch buffers reused across draw calls
	verts  []ebiten.Vertex
	idxs   []uint16
	devPts []math32.Vector2
}

var _ paint.Surface = (*Surface)(nil)

// New returns a surface with an empty texture cache. Call
// [Surface.Begin] before drawing each frame.
func New() *Surface {
	return &Surface{
		stack:    []math32.Matrix2{math32.Identity2()},
		textures: map[*paint.Bitmap]*texture{},
	}
}

// Begin points the surface at the frame's target image and resets the
// transform stack.
func (sf *Surface) Begin(screen *ebiten.Image) {
	sf.screen = screen
	sf.stack = sf.stack[:1]
	sf.stack[0] = math32.Identity2()
}

// Size returns the target image size in pixels.
func (sf *Surface) Size() (w, h int) {
	if sf.screen == nil {
		return 0, 0
	}
	b := sf.screen.Bounds()
	return b.Dx(), b.Dy()
}

func (sf *Surface) ctm() math32.Matrix2 {
	return sf.stack[len(sf.stack)-1]
}

func (sf *Surface) setCTM(m math32.Matrix2) {
	sf.stack[len(sf.stack)-1] = m
}

// Save pushes a copy of the current transform.
func (sf *Surface) Save() {
	sf.stack = append(sf.stack, sf.ctm())
}

// Restore pops the transform stack. Restoring past the bottom is a
// no-op.
func (sf *Surface) Restore() {
	if len(sf.stack) > 1 {
		sf.stack = sf.stack[:len(sf.stack)-1]
	}
}

// Translate appends a translation to the current transform.
func (sf *Surface) Translate(x, y float32) {
	sf.setCTM(sf.ctm().Translate(x, y))
}

// Rotate appends a rotation in radians to the current transform.
func (sf *Surface) Rotate(angle float32) {
	sf.setCTM(sf.ctm().Rotate(angle))
}

// Scale appends a scale to the current transform.
func (sf *Surface) Scale(sx, sy float32) {
	sf.setCTM(sf.ctm().Scale(sx, sy))
}

// CurrentTransform returns the current affine transform.
func (sf *Surface) CurrentTransform() math32.Matrix2 {
	return sf.ctm()
}

// Clear fills the whole target with the given color, ignoring the
// current transform.
func (sf *Surface) Clear(c color.Color) {
	sf.screen.Fill(c)
}

func (sf *Surface) transformPoints(points []math32.Vector2) []math32.Vector2 {
	m := sf.ctm()
	sf.devPts = sf.devPts[:0]
	for _, p := range points {
		sf.devPts = append(sf.devPts, m.MulVector2AsPoint(p))
	}
	return sf.devPts
}

// rgbaF converts a color to premultiplied float components for vertex
// colors.
func rgbaF(c color.Color) (r, g, b, a float32) {
	r16, g16, b16, a16 := c.RGBA()
	return float32(r16) / 0xffff, float32(g16) / 0xffff,
		float32(b16) / 0xffff, float32(a16) / 0xffff
}

// appendVertices appends one vertex per device point, colored from
// src: a flat color for uniform sources, a per-vertex sample for
// gradients and other images. Gradient fills therefore interpolate
// linearly between the vertex samples across each polygon.
func (sf *Surface) appendVertices(dev []math32.Vector2, src image.Image) {
	var r, g, b, a float32
	uni, isUni := src.(*image.Uniform)
	if isUni {
		r, g, b, a = rgbaF(uni.C)
	}
	for _, p := range dev {
		if !isUni {
			r, g, b, a = rgbaF(src.At(int(p.X), int(p.Y)))
		}
		sf.verts = append(sf.verts, ebiten.Vertex{
			DstX: p.X, DstY: p.Y,
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		})
	}
}

func (sf *Surface) flushTriangles() {
	if len(sf.idxs) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.FillRule = ebiten.FillAll
	sf.screen.DrawTriangles(sf.verts, sf.idxs, whiteSubImage, op)
	sf.verts = sf.verts[:0]
	sf.idxs = sf.idxs[:0]
}

// FillPolygon fills the convex polygon given by points in local
// coordinates with a triangle fan.
func (sf *Surface) FillPolygon(points []math32.Vector2, src image.Image) {
	if len(points) < 3 || src == nil {
		return
	}
	dev := sf.transformPoints(points)
	paint.UpdateGradient(src, dev)
	base := uint16(len(sf.verts))
	sf.appendVertices(dev, src)
	for i := 2; i < len(dev); i++ {
		sf.idxs = append(sf.idxs, base, base+uint16(i-1), base+uint16(i))
	}
	sf.flushTriangles()
}

// StrokePolygon strokes the closed polygon outline given by points in
// local coordinates.
func (sf *Surface) StrokePolygon(points []math32.Vector2, src image.Image, width float32) {
	sf.stroke(points, src, width, true)
}

// StrokeLines strokes the open polyline given by points in local
// coordinates.
func (sf *Surface) StrokeLines(points []math32.Vector2, src image.Image, width float32) {
	sf.stroke(points, src, width, false)
}

// stroke draws each segment as a quad around the device-space edge,
// with the line width scaled by the current transform. The geometry
// matches [paint.ImageSurface] so both backends render alike.
func (sf *Surface) stroke(points []math32.Vector2, src image.Image, width float32, closed bool) {
	if len(points) < 2 || src == nil || width <= 0 {
		return
	}
	dev := sf.transformPoints(points)
	paint.UpdateGradient(src, dev)

	scx, scy := sf.ctm().ExtractScale()
	hw := width * (scx + scy) * 0.25
	if hw <= 0 {
		return
	}

	n := len(dev)
	last := n - 1
	if closed {
		last = n
	}
	quad := make([]math32.Vector2, 4)
	for i := 0; i < last; i++ {
		a := dev[i]
		b := dev[(i+1)%n]
		dir := b.Sub(a)
		if dir.Length() == 0 {
			continue
		}
		perp := math32.Vec2(-dir.Y, dir.X).Normal().MulScalar(hw)
		quad[0] = a.Add(perp)
		quad[1] = b.Add(perp)
		quad[2] = b.Sub(perp)
		quad[3] = a.Sub(perp)

		base := uint16(len(sf.verts))
		sf.appendVertices(quad, src)
		sf.idxs = append(sf.idxs,
			base, base+1, base+2,
			base, base+2, base+3)
	}
	sf.flushTriangles()
}

// DrawBitmap draws the bitmap with its top left at (x, y) scaled to
// (w, h) in local coordinates. The bitmap's pixels are uploaded to a
// cached GPU texture and re-uploaded only when its version changes.
func (sf *Surface) DrawBitmap(bm *paint.Bitmap, x, y, w, h float32) {
	if bm == nil || bm.Image == nil || w <= 0 || h <= 0 {
		return
	}
	bw := bm.Image.Rect.Dx()
	bh := bm.Image.Rect.Dy()
	if bw <= 0 || bh <= 0 {
		return
	}

	tex := sf.textures[bm]
	switch {
	case tex == nil:
		tex = &texture{img: ebiten.NewImageFromImage(bm.Image), version: bm.Version, w: bw, h: bh}
		sf.textures[bm] = tex
	case tex.w != bw || tex.h != bh:
		tex.img.Deallocate()
		tex.img = ebiten.NewImageFromImage(bm.Image)
		tex.version = bm.Version
		tex.w, tex.h = bw, bh
	case tex.version != bm.Version:
		tex.img.WritePixels(bm.Image.Pix)
		tex.version = bm.Version
	}

	m := sf.ctm().Translate(x, y).Scale(w/float32(bw), h/float32(bh))
	op := &ebiten.DrawImageOptions{}
	op.GeoM.SetElement(0, 0, float64(m.XX))
	op.GeoM.SetElement(0, 1, float64(m.XY))
	op.GeoM.SetElement(0, 2, float64(m.X0))
	op.GeoM.SetElement(1, 0, float64(m.YX))
	op.GeoM.SetElement(1, 1, float64(m.YY))
	op.GeoM.SetElement(1, 2, float64(m.Y0))
	sf.screen.DrawImage(tex.img, op)
}

// Release drops the cached texture for the given bitmap, if any. Call
// it when a cached bitmap is discarded for good, such as after
// destroying a caching group.
func (sf *Surface) Release(bm *paint.Bitmap) {
	if tex, ok := sf.textures[bm]; ok {
		tex.img.Deallocate()
		delete(sf.textures, bm)
	}
}

// ReleaseAll drops every cached texture.
func (sf *Surface) ReleaseAll() {
	for bm, tex := range sf.textures {
		tex.img.Deallocate()
		delete(sf.textures, bm)
	}
}
