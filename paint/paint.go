// Copyright (c) 2026, The gcanvas Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package paint defines the drawing surface consumed by the scene graph,
// along with a software implementation of it used for render caching
// and testing.
//
// A [Surface] is a retained 2D affine transform stack plus polygon fill,
// polygon stroke, and bitmap blit primitives. Fill and stroke sources are
// [image.Image] color sources: use [Uniform] for solid colors and the
// gradient types ([Linear], [Radial]) for gradients.
package paint

import (
	"image"
	"image/color"

	"github.com/guinetik/gcanvas-sub007/math32"
)

// Surface is the narrow drawing interface the scene graph renders through.
// Implementations must apply the current affine transform to all fill and
// stroke points, and maintain the Save/Restore stack so that a child's
// transform cannot leak to its siblings.
type Surface interface {

	// Size returns the pixel dimensions of the surface.
	Size() (w, h int)

	// Save pushes a copy of the current transform onto the state stack.
	Save()

	// Restore pops the state stack, restoring the previous transform.
	// Restore on an empty stack is a no-op.
	Restore()

	// Translate post-multiplies the current transform with a translation.
	Translate(x, y float32)

	// Rotate post-multiplies the current transform with a rotation,
	// in radians.
	Rotate(angle float32)

	// Scale post-multiplies the current transform with a scale.
	Scale(sx, sy float32)

	// CurrentTransform returns the current affine transform.
	CurrentTransform() math32.Matrix2

	// Clear fills the entire surface with the given color,
	// ignoring the current transform.
	Clear(c color.Color)

	// FillPolygon fills the polygon given by points in local coordinates
	// with the given color source.
	FillPolygon(points []math32.Vector2, src image.Image)

	// StrokePolygon strokes the closed polygon outline given by points in
	// local coordinates with the given color source and line width.
	StrokePolygon(points []math32.Vector2, src image.Image, width float32)

	// StrokeLines strokes the open polyline given by points in local
	// coordinates with the given color source and line width.
	StrokeLines(points []math32.Vector2, src image.Image, width float32)

	// DrawBitmap blits the given bitmap with its top-left corner at
	// (x, y) in local coordinates, scaled to w x h local units.
	DrawBitmap(bm *Bitmap, x, y, w, h float32)
}

// Uniform returns a uniform color source for the given color,
// for use with [Surface] fill and stroke calls.
func Uniform(c color.Color) *image.Uniform {
	return image.NewUniform(c)
}
