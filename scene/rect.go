// Copyright (c) 2026, The gcanvas Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"image"
	"image/color"

	"github.com/guinetik/gcanvas-sub007/math32"
	"github.com/guinetik/gcanvas-sub007/paint"
)

// Rect is a leaf node drawing its content box as a filled and
// optionally stroked rectangle. Fill and stroke sources are
// [image.Image] color sources: uniform colors via [paint.Uniform] or
// gradients from the paint package.
type Rect struct {
	NodeBase

	// Fill is the fill color source; nil draws no fill.
	Fill image.Image

	// Stroke is the outline color source; nil draws no outline.
	Stroke image.Image

	// StrokeWidth is the outline width in local units.
	StrokeWidth float32
}

var _ Node = (*Rect)(nil)

// NewRect returns a new rectangle of the given size with a white
// fill and no stroke.
func NewRect(w, h float32) *Rect {
	r := &Rect{}
	InitNode(r)
	r.SetSize(w, h)
	r.Fill = paint.Uniform(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	return r
}

// SetFill sets the fill source and returns the rect for chaining.
func (r *Rect) SetFill(src image.Image) *Rect {
	r.Fill = src
	return r
}

// SetStroke sets the outline source and width and returns the rect
// for chaining.
func (r *Rect) SetStroke(src image.Image, width float32) *Rect {
	r.Stroke = src
	r.StrokeWidth = width
	return r
}

// Draw fills and strokes the content box under the node's transform.
func (r *Rect) Draw(sf paint.Surface) {
	if !r.Visible {
		return
	}
	sz := r.Size()
	if sz.X <= 0 || sz.Y <= 0 {
		return
	}
	r.ApplyTransform(sf)
	pts := []math32.Vector2{
		math32.Vec2(0, 0),
		math32.Vec2(sz.X, 0),
		math32.Vec2(sz.X, sz.Y),
		math32.Vec2(0, sz.Y),
	}
	if r.Fill != nil {
		sf.FillPolygon(pts, r.Fill)
	}
	if r.Stroke != nil && r.StrokeWidth > 0 {
		sf.StrokePolygon(pts, r.Stroke, r.StrokeWidth)
	}
}
