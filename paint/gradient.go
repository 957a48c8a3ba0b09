// Copyright (c) 2026, The gcanvas Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paint

import (
	"image"
	"image/color"

	"github.com/guinetik/gcanvas-sub007/math32"
)

// Gradient is the interface that all gradient color sources satisfy.
type Gradient interface {
	image.Image

	// AsBase returns the [Base] of the gradient.
	AsBase() *Base

	// Update updates the computed fields of the gradient for the given
	// device-space bounding box of the object being filled. Surfaces
	// call this before sampling; it should only be called then.
	Update(box math32.Box2)
}

// Base contains the data and logic common to all gradient types.
type Base struct {

	// Stops are the color stops of the gradient; use AddStop to add stops.
	Stops []Stop

	// Spread is the spread method used when the gradient ends before
	// the object is fully filled.
	Spread Spreads

	// Units are the coordinate units of the gradient's geometry.
	Units Units

	// Box is the bounding box of the object being filled, set by
	// [Gradient.Update] when Units is [ObjectBoundingBox].
	Box math32.Box2
}

// Stop represents a single color stop in a gradient.
type Stop struct {

	// Color is the color of the stop.
	Color color.RGBA

	// Pos is the position of the stop between 0 and 1.
	Pos float32
}

// Spreads are the spread methods used when a gradient reaches
// its end but the object isn't yet fully filled.
type Spreads int32

const (
	// Pad fills beyond the ends of the gradient with the end colors.
	Pad Spreads = iota

	// Reflect repeats the gradient in reverse order beyond its ends.
	Reflect

	// Repeat repeats the gradient in its original order beyond its ends.
	Repeat
)

func (s Spreads) String() string {
	switch s {
	case Pad:
		return "pad"
	case Reflect:
		return "reflect"
	case Repeat:
		return "repeat"
	}
	return "invalid"
}

// Units are the coordinate units used for gradient geometry.
type Units int32

const (
	// ObjectBoundingBox scales gradient coordinates relative to the
	// bounding box of the object being filled, in the normalized
	// range of 0 to 1.
	ObjectBoundingBox Units = iota

	// UserSpaceOnUse takes gradient coordinates as device coordinates.
	UserSpaceOnUse
)

// AddStop adds a new stop with the given color and position to the gradient.
func (b *Base) AddStop(c color.RGBA, pos float32) {
	b.Stops = append(b.Stops, Stop{Color: c, Pos: pos})
}

// AsBase returns the [Base] of the gradient.
func (b *Base) AsBase() *Base {
	return b
}

// ColorModel returns the color model used by the gradient, which is
// [color.RGBAModel].
func (b *Base) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds returns the bounds of the gradient, which are infinite.
func (b *Base) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

// spreadPos normalizes the given raw gradient position per the
// spread method, into [0, 1].
func (b *Base) spreadPos(pos float32) float32 {
	switch b.Spread {
	case Repeat:
		m := math32.Mod(pos, 1)
		if m < 0 {
			m++
		}
		return m
	case Reflect:
		m := math32.Mod(pos, 2)
		if m < 0 {
			m += 2
		}
		if m > 1 {
			m = 2 - m
		}
		return m
	default:
		return math32.Clamp01(pos)
	}
}

// GetColor returns the color at the given position along the
// gradient's stops, applying the spread method and linearly
// interpolating between adjacent stops.
func (b *Base) GetColor(pos float32) color.RGBA {
	n := len(b.Stops)
	if n == 0 {
		return color.RGBA{}
	}
	if n == 1 {
		return b.Stops[0].Color
	}
	pos = b.spreadPos(pos)
	if pos <= b.Stops[0].Pos {
		return b.Stops[0].Color
	}
	for i := 1; i < n; i++ {
		s0, s1 := b.Stops[i-1], b.Stops[i]
		if pos <= s1.Pos {
			if s1.Pos == s0.Pos {
				return s1.Color
			}
			return lerpColor(s0.Color, s1.Color, (pos-s0.Pos)/(s1.Pos-s0.Pos))
		}
	}
	return b.Stops[n-1].Color
}

// lerpColor linearly interpolates between two colors by t in [0, 1].
func lerpColor(c0, c1 color.RGBA, t float32) color.RGBA {
	return color.RGBA{
		R: uint8(math32.Round(math32.Lerp(float32(c0.R), float32(c1.R), t))),
		G: uint8(math32.Round(math32.Lerp(float32(c0.G), float32(c1.G), t))),
		B: uint8(math32.Round(math32.Lerp(float32(c0.B), float32(c1.B), t))),
		A: uint8(math32.Round(math32.Lerp(float32(c0.A), float32(c1.A), t))),
	}
}

// Linear is a linear gradient between a start and an end point.
type Linear struct {
	Base

	// Start is the starting point of the gradient.
	// With [ObjectBoundingBox] units, (0, 0) is the box top-left.
	Start math32.Vector2

	// End is the ending point of the gradient.
	// With [ObjectBoundingBox] units, (1, 1) is the box bottom-right.
	End math32.Vector2

	effStart math32.Vector2
	effEnd   math32.Vector2
}

// NewLinear returns a new top-to-bottom [Linear] gradient.
func NewLinear() *Linear {
	return &Linear{
		// default in standard coordinates is top to bottom
		End: math32.Vec2(0, 1),
	}
}

// Update sets the effective start and end points for the given
// device-space bounding box.
func (l *Linear) Update(box math32.Box2) {
	l.Box = box
	if l.Units == ObjectBoundingBox {
		sz := box.Size()
		l.effStart = box.Min.Add(l.Start.Mul(sz))
		l.effEnd = box.Min.Add(l.End.Mul(sz))
	} else {
		l.effStart = l.Start
		l.effEnd = l.End
	}
}

// At returns the gradient color at the given device pixel.
func (l *Linear) At(x, y int) color.Color {
	d := l.effEnd.Sub(l.effStart)
	dd := d.LengthSquared()
	if dd == 0 {
		return l.GetColor(0)
	}
	p := math32.Vec2(float32(x), float32(y)).Sub(l.effStart)
	return l.GetColor(p.Dot(d) / dd)
}

// Radial is a radial gradient centered on a point.
type Radial struct {
	Base

	// Center is the center point of the gradient.
	// With [ObjectBoundingBox] units, (0.5, 0.5) is the box center.
	Center math32.Vector2

	// Radius is the per-axis radius of the gradient.
	// With [ObjectBoundingBox] units, (0.5, 0.5) spans the box.
	Radius math32.Vector2

	effCenter math32.Vector2
	effRadius math32.Vector2
}

// NewRadial returns a new [Radial] gradient centered on and spanning
// the object bounding box.
func NewRadial() *Radial {
	return &Radial{
		Center: math32.Vec2(0.5, 0.5),
		Radius: math32.Vec2(0.5, 0.5),
	}
}

// Update sets the effective center and radius for the given
// device-space bounding box.
func (r *Radial) Update(box math32.Box2) {
	r.Box = box
	if r.Units == ObjectBoundingBox {
		sz := box.Size()
		r.effCenter = box.Min.Add(r.Center.Mul(sz))
		r.effRadius = r.Radius.Mul(sz)
	} else {
		r.effCenter = r.Center
		r.effRadius = r.Radius
	}
}

// At returns the gradient color at the given device pixel.
func (r *Radial) At(x, y int) color.Color {
	if r.effRadius.X == 0 || r.effRadius.Y == 0 {
		return r.GetColor(1)
	}
	d := math32.Vec2(float32(x), float32(y)).Sub(r.effCenter).Div(r.effRadius)
	return r.GetColor(d.Length())
}
