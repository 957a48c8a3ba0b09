// Copyright (c) 2026, The gcanvas Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"image"
	"image/color"

	"github.com/guinetik/gcanvas-sub007/math32"
)

// Lighting model weights: faces get a constant ambient floor plus a
// diffuse term scaled by the face angle to the light.
const (
	diffuseWeight = 0.7
	ambientFloor  = 0.3
)

// DefaultLightDir is the light direction solids start with: from the
// upper left, toward the scene.
var DefaultLightDir = math32.Vec3(-0.5, -0.7, -1).Normal()

// Material describes how a solid's faces are drawn.
type Material struct {

	// Color is the base face color, shaded per face by the lighting
	// model.
	Color color.RGBA

	// Fill, if non-nil, is used as the face color source instead of
	// Color. Gradient sources from the paint package go here. Faces
	// drawn from a Fill are not shaded.
	Fill image.Image

	// Wireframe strokes the face edges instead of filling them.
	Wireframe bool

	// StrokeWidth is the wireframe line width.
	StrokeWidth float32
}

// Lambert returns the light intensity in [ambientFloor, 1] for a face
// with the given unit normal under the given unit light direction.
func Lambert(normal, light math32.Vector3) float32 {
	return math32.Clamp01(normal.Dot(light))*diffuseWeight + ambientFloor
}

// Shade scales the color's RGB channels by the given intensity,
// leaving alpha unchanged.
func Shade(c color.RGBA, intensity float32) color.RGBA {
	i := math32.Clamp01(intensity)
	return color.RGBA{
		R: uint8(float32(c.R) * i),
		G: uint8(float32(c.G) * i),
		B: uint8(float32(c.B) * i),
		A: c.A,
	}
}
