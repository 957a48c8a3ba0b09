// Copyright (c) 2026, The gcanvas Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paint

import (
	"image"
	"image/color"
	"image/draw"
	"slices"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/guinetik/gcanvas-sub007/math32"
)

// ImageSurface is a software [Surface] drawing into an [image.RGBA].
// It rasterizes polygons with a non-antialiased scanline fill and
// applies the affine transform stack on the CPU. It backs the render
// cache of caching groups and serves as the reference surface for
// pixel-exact tests.
type ImageSurface struct {
	img   *image.RGBA
	stack []math32.Matrix2

	// scratch buffers reused across draw calls
	devPts []math32.Vector2
	xs     []float32
}

// NewImageSurface returns a new software surface with the given pixel
// dimensions, clamped to at least 1x1.
func NewImageSurface(w, h int) *ImageSurface {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return NewImageSurfaceFor(image.NewRGBA(image.Rect(0, 0, w, h)))
}

// NewImageSurfaceFor returns a new software surface drawing into the
// given existing image.
func NewImageSurfaceFor(img *image.RGBA) *ImageSurface {
	return &ImageSurface{
		img:   img,
		stack: []math32.Matrix2{math32.Identity2()},
	}
}

// Image returns the underlying image being drawn into.
func (sf *ImageSurface) Image() *image.RGBA {
	return sf.img
}

// Size returns the pixel dimensions of the surface.
func (sf *ImageSurface) Size() (w, h int) {
	sz := sf.img.Rect.Size()
	return sz.X, sz.Y
}

// Save pushes a copy of the current transform onto the state stack.
func (sf *ImageSurface) Save() {
	sf.stack = append(sf.stack, sf.ctm())
}

// Restore pops the state stack, restoring the previous transform.
// Restoring past the bottom of the stack is a no-op.
func (sf *ImageSurface) Restore() {
	if len(sf.stack) > 1 {
		sf.stack = sf.stack[:len(sf.stack)-1]
	}
}

func (sf *ImageSurface) ctm() math32.Matrix2 {
	return sf.stack[len(sf.stack)-1]
}

func (sf *ImageSurface) setCTM(m math32.Matrix2) {
	sf.stack[len(sf.stack)-1] = m
}

// Translate post-multiplies the current transform with a translation.
func (sf *ImageSurface) Translate(x, y float32) {
	sf.setCTM(sf.ctm().Translate(x, y))
}

// Rotate post-multiplies the current transform with a rotation, in radians.
func (sf *ImageSurface) Rotate(angle float32) {
	sf.setCTM(sf.ctm().Rotate(angle))
}

// Scale post-multiplies the current transform with a scale.
func (sf *ImageSurface) Scale(sx, sy float32) {
	sf.setCTM(sf.ctm().Scale(sx, sy))
}

// CurrentTransform returns the current affine transform.
func (sf *ImageSurface) CurrentTransform() math32.Matrix2 {
	return sf.ctm()
}

// Clear fills the entire surface with the given color, ignoring the
// current transform.
func (sf *ImageSurface) Clear(c color.Color) {
	draw.Draw(sf.img, sf.img.Rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// transformPoints maps the given local points into device space using
// the current transform, into the reusable scratch buffer.
func (sf *ImageSurface) transformPoints(points []math32.Vector2) []math32.Vector2 {
	m := sf.ctm()
	sf.devPts = sf.devPts[:0]
	for _, p := range points {
		sf.devPts = append(sf.devPts, m.MulVector2AsPoint(p))
	}
	return sf.devPts
}

// UpdateGradient gives gradient sources their device-space bounding
// box before sampling. Non-gradient sources pass through untouched.
// Surface implementations call it with the transformed points of each
// fill or stroke before reading colors from src.
func UpdateGradient(src image.Image, pts []math32.Vector2) {
	if g, ok := src.(Gradient); ok {
		var box math32.Box2
		box.SetFromPoints(pts)
		g.Update(box)
	}
}

// FillPolygon fills the polygon given by points in local coordinates
// with the given color source. Polygons with fewer than 3 points are
// ignored.
func (sf *ImageSurface) FillPolygon(points []math32.Vector2, src image.Image) {
	if len(points) < 3 || src == nil {
		return
	}
	dev := sf.transformPoints(points)
	UpdateGradient(src, dev)
	sf.fillScan(dev, src)
}

// StrokePolygon strokes the closed polygon outline given by points in
// local coordinates with the given color source and line width.
func (sf *ImageSurface) StrokePolygon(points []math32.Vector2, src image.Image, width float32) {
	sf.stroke(points, src, width, true)
}

// StrokeLines strokes the open polyline given by points in local
// coordinates with the given color source and line width.
func (sf *ImageSurface) StrokeLines(points []math32.Vector2, src image.Image, width float32) {
	sf.stroke(points, src, width, false)
}

func (sf *ImageSurface) stroke(points []math32.Vector2, src image.Image, width float32, closed bool) {
	if len(points) < 2 || src == nil || width <= 0 {
		return
	}
	dev := sf.transformPoints(points)
	UpdateGradient(src, dev)

	// line width scales with the current transform
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
	var quad [4]math32.Vector2
	for i := 0; i < last; i++ {
		a := dev[i]
		b := dev[(i+1)%n]
		d := b.Sub(a)
		if d.LengthSquared() == 0 {
			continue
		}
		// perpendicular offset of half the line width
		off := math32.Vec2(-d.Y, d.X).Normal().MulScalar(hw)
		quad[0] = a.Add(off)
		quad[1] = b.Add(off)
		quad[2] = b.Sub(off)
		quad[3] = a.Sub(off)
		sf.fillScan(quad[:], src)
	}
}

// fillScan rasterizes the device-space polygon with an even-odd
// scanline fill, compositing src over the existing pixels.
func (sf *ImageSurface) fillScan(pts []math32.Vector2, src image.Image) {
	n := len(pts)
	if n < 3 {
		return
	}
	var box math32.Box2
	box.SetFromPoints(pts)

	b := sf.img.Rect
	ymin := math32.ClampInt(int(math32.Floor(box.Min.Y)), b.Min.Y, b.Max.Y)
	ymax := math32.ClampInt(int(math32.Ceil(box.Max.Y)), b.Min.Y, b.Max.Y)

	uniform, _ := src.(*image.Uniform)

	for y := ymin; y < ymax; y++ {
		fy := float32(y) + 0.5
		xs := sf.xs[:0]
		j := n - 1
		for i := 0; i < n; i++ {
			y0, y1 := pts[j].Y, pts[i].Y
			if (y0 <= fy && fy < y1) || (y1 <= fy && fy < y0) {
				t := (fy - y0) / (y1 - y0)
				xs = append(xs, pts[j].X+t*(pts[i].X-pts[j].X))
			}
			j = i
		}
		sf.xs = xs
		if len(xs) < 2 {
			continue
		}
		slices.Sort(xs)
		for k := 0; k+1 < len(xs); k += 2 {
			x0 := math32.ClampInt(int(math32.Ceil(xs[k]-0.5)), b.Min.X, b.Max.X)
			x1 := math32.ClampInt(int(math32.Ceil(xs[k+1]-0.5)), b.Min.X, b.Max.X)
			for x := x0; x < x1; x++ {
				if uniform != nil {
					sf.blend(x, y, uniform.C)
				} else {
					sf.blend(x, y, src.At(x, y))
				}
			}
		}
	}
}

// blend composites the given color over the pixel at (x, y).
func (sf *ImageSurface) blend(x, y int, c color.Color) {
	sr, sg, sb, sa := c.RGBA()
	if sa == 0 {
		return
	}
	i := sf.img.PixOffset(x, y)
	pix := sf.img.Pix[i : i+4 : i+4]
	if sa == 0xffff {
		pix[0] = uint8(sr >> 8)
		pix[1] = uint8(sg >> 8)
		pix[2] = uint8(sb >> 8)
		pix[3] = uint8(sa >> 8)
		return
	}
	// src-over with premultiplied 16-bit source
	a := 0xffff - sa
	pix[0] = uint8((sr + uint32(pix[0])*0x101*a/0xffff) >> 8)
	pix[1] = uint8((sg + uint32(pix[1])*0x101*a/0xffff) >> 8)
	pix[2] = uint8((sb + uint32(pix[2])*0x101*a/0xffff) >> 8)
	pix[3] = uint8((sa + uint32(pix[3])*0x101*a/0xffff) >> 8)
}

// DrawBitmap blits the given bitmap with its top-left corner at (x, y)
// in local coordinates, scaled to w x h local units. Unit-scale integer
// translations take a fast path; anything else goes through a full
// affine transform with bilinear sampling.
func (sf *ImageSurface) DrawBitmap(bm *Bitmap, x, y, w, h float32) {
	if bm == nil || bm.Image == nil || w <= 0 || h <= 0 {
		return
	}
	bw, bh := bm.Size()
	m := sf.ctm().Translate(x, y).Scale(w/float32(bw), h/float32(bh))

	if isIntTranslation(m) {
		dp := image.Pt(int(m.X0), int(m.Y0))
		r := image.Rectangle{Min: dp, Max: dp.Add(image.Pt(bw, bh))}
		draw.Draw(sf.img, r, bm.Image, bm.Image.Rect.Min, draw.Over)
		return
	}
	aff := f64.Aff3{
		float64(m.XX), float64(m.XY), float64(m.X0),
		float64(m.YX), float64(m.YY), float64(m.Y0),
	}
	xdraw.ApproxBiLinear.Transform(sf.img, aff, bm.Image, bm.Image.Rect, xdraw.Over, nil)
}

// isIntTranslation reports whether m is a pure translation by whole pixels.
func isIntTranslation(m math32.Matrix2) bool {
	if m.XX != 1 || m.YY != 1 || m.XY != 0 || m.YX != 0 {
		return false
	}
	return m.X0 == math32.Floor(m.X0) && m.Y0 == math32.Floor(m.Y0)
}
