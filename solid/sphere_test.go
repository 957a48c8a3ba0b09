// Copyright (c) 2026, The gcanvas Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guinetik/gcanvas-sub007/base/tolassert"
	"github.com/guinetik/gcanvas-sub007/math32"
	"github.com/guinetik/gcanvas-sub007/paint"
	"github.com/guinetik/gcanvas-sub007/scene"
)

func countOpaque(sf *paint.ImageSurface) int {
	img := sf.Image()
	n := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			n++
		}
	}
	return n
}

func TestSphereMesh(t *testing.T) {
	cam := NewCamera(400)

	sp := NewSphere(cam, 10, 2, 3)
	assert.Equal(t, 12, len(sp.verts))
	assert.Equal(t, 6, sp.NumFaces())

	sp = NewSphere(cam, 10, 8, 12)
	assert.Equal(t, 117, len(sp.verts))
	// pole bands contribute one triangle per quad instead of two
	assert.Equal(t, 2*12*(8-1), sp.NumFaces())
}

func TestSphereMeshDegenerate(t *testing.T) {
	cam := NewCamera(400)
	assert.Equal(t, 0, NewSphere(cam, 0, 8, 12).NumFaces())
	assert.Equal(t, 0, NewSphere(cam, 10, 1, 12).NumFaces())
	assert.Equal(t, 0, NewSphere(cam, 10, 8, 2).NumFaces())

	// drawing an empty mesh is a no-op
	sp := NewSphere(cam, 0, 8, 12)
	sf := paint.NewImageSurface(8, 8)
	sp.Draw(sf)
	assert.Equal(t, 0, countOpaque(sf))
}

func TestSphereNormals(t *testing.T) {
	sp := NewSphere(NewCamera(400), 10, 4, 6)
	for _, vt := range sp.verts {
		tolassert.EqualTol(t, 10, vt.Pos.Length(), 1.0e-3)
		tolassert.EqualTol(t, 1, vt.Normal.Length(), 1.0e-4)
		tolassert.EqualTol(t, 1, vt.Normal.Dot(vt.Pos.Normal()), 1.0e-4)
	}
}

func drawSphere(sp *Sphere) *paint.ImageSurface {
	sf := paint.NewImageSurface(64, 64)
	sf.Save()
	sp.Draw(sf)
	sf.Restore()
	return sf
}

func TestBackfaceCulling(t *testing.T) {
	sp := NewSphere(NewCamera(400), 20, 8, 12)
	sp.SetPos(32, 32)
	drawSphere(sp)

	require.NotEmpty(t, sp.vis)
	assert.Less(t, len(sp.vis), sp.NumFaces(),
		"faces pointing away must be culled")

	// at the default rotation about half the sphere faces the viewer
	ratio := float64(len(sp.vis)) / float64(sp.NumFaces())
	tolassert.EqualTol(t, 0.5, ratio, 0.1)

	for _, vf := range sp.vis {
		f := sp.faces[vf.face]
		n := sp.rotN[f.A].Add(sp.rotN[f.B]).Add(sp.rotN[f.C]).MulScalar(1.0 / 3)
		assert.LessOrEqual(t, n.Z, float32(backfaceEps))
	}
}

func TestPainterOrder(t *testing.T) {
	sp := NewSphere(NewCamera(400), 20, 8, 12)
	sp.Cam.RotationY = 0.7
	sp.Cam.RotationX = 0.3
	sp.SetPos(32, 32)
	drawSphere(sp)

	require.NotEmpty(t, sp.vis)
	for i := 1; i < len(sp.vis); i++ {
		assert.GreaterOrEqual(t, sp.vis[i-1].depth, sp.vis[i].depth,
			"faces must draw far to near")
	}
}

func TestBehindCameraFacesDropped(t *testing.T) {
	// a sphere bigger than the perspective distance reaches behind
	// the camera plane
	cam := NewCamera(15)
	sp := NewSphere(cam, 100, 8, 12)
	sp.SetPos(32, 32)
	drawSphere(sp)

	assert.Less(t, len(sp.vis), sp.NumFaces())
	for _, vf := range sp.vis {
		f := sp.faces[vf.face]
		for _, vi := range []int{f.A, f.B, f.C} {
			assert.False(t, cam.Behind(sp.proj[vi].Z))
		}
	}
}

func TestLambert(t *testing.T) {
	light := math32.Vec3(0, 0, -1)
	tolassert.EqualTol(t, 1, Lambert(math32.Vec3(0, 0, -1), light), 1.0e-5)
	tolassert.EqualTol(t, ambientFloor, Lambert(math32.Vec3(1, 0, 0), light), 1.0e-5)
	tolassert.EqualTol(t, ambientFloor, Lambert(math32.Vec3(0, 0, 1), light), 1.0e-5)
}

func TestShade(t *testing.T) {
	c := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	assert.Equal(t, color.RGBA{R: 100, G: 50, B: 25, A: 255}, Shade(c, 0.5))
	assert.Equal(t, c, Shade(c, 1))
	assert.Equal(t, c, Shade(c, 2))
	assert.Equal(t, color.RGBA{A: 255}, Shade(c, 0))
}

func TestSphereDrawsPixels(t *testing.T) {
	sp := NewSphere(NewCamera(400), 15, 8, 12)
	sp.SetPos(32, 32)
	sf := drawSphere(sp)

	assert.NotZero(t, sf.Image().RGBAAt(32, 32).A, "sphere center should be covered")
	assert.Zero(t, sf.Image().RGBAAt(1, 1).A, "corner should stay empty")
}

func TestWireframe(t *testing.T) {
	filled := NewSphere(NewCamera(400), 15, 8, 12)
	filled.SetPos(32, 32)
	nFilled := countOpaque(drawSphere(filled))

	wire := NewSphere(NewCamera(400), 15, 8, 12)
	wire.SetPos(32, 32)
	wire.Material.Wireframe = true
	nWire := countOpaque(drawSphere(wire))

	assert.Greater(t, nWire, 0)
	assert.Less(t, nWire, nFilled)
}

func TestGradientFill(t *testing.T) {
	sp := NewSphere(NewCamera(400), 15, 8, 12)
	sp.SetPos(32, 32)
	g := paint.NewLinear()
	g.AddStop(color.RGBA{R: 255, A: 255}, 0)
	g.AddStop(color.RGBA{B: 255, A: 255}, 1)
	sp.Material.Fill = g

	sf := drawSphere(sp)
	assert.NotZero(t, sf.Image().RGBAAt(32, 32).A)
}

func TestSetRadiusRegenThreshold(t *testing.T) {
	sp := NewSphere(NewCamera(400), 10, 4, 6)
	require.Equal(t, float32(10), sp.genRadius)

	// sub-pixel change: mesh kept
	sp.SetRadius(10.2)
	assert.Equal(t, float32(10.2), sp.Radius())
	assert.Equal(t, float32(10), sp.genRadius)
	assert.Equal(t, math32.Vec2(20.4, 20.4), sp.Size())

	// big change: mesh rebuilt at the new radius
	sp.SetRadius(12)
	assert.Equal(t, float32(12), sp.genRadius)
	tolassert.EqualTol(t, 12, sp.verts[0].Pos.Length(), 1.0e-3)
}

func TestSetRadiusValidation(t *testing.T) {
	sp := NewSphere(NewCamera(400), 10, 4, 6)
	assert.Panics(t, func() { sp.SetRadius(float32(math.NaN())) })

	sp.SetRadius(-5)
	assert.Equal(t, float32(0), sp.Radius())
	assert.Equal(t, 0, sp.NumFaces())
}

func TestSphereClone(t *testing.T) {
	cam := NewCamera(400)
	sp := NewSphere(cam, 10, 4, 6)
	sp.SetName("ball")
	sp.Material.Color = color.RGBA{R: 10, G: 20, B: 30, A: 255}

	cn, ok := scene.Clone(sp).(*Sphere)
	require.True(t, ok)
	assert.Equal(t, "ball", cn.Name)
	assert.Equal(t, float32(10), cn.Radius())
	assert.Equal(t, sp.NumFaces(), cn.NumFaces())
	assert.Equal(t, sp.Material.Color, cn.Material.Color)
	assert.Same(t, cam, cn.Cam)
}

func TestSphereInGroup(t *testing.T) {
	g := scene.NewGroup()
	sp := NewSphere(NewCamera(400), 15, 8, 12)
	sp.SetPos(32, 32)
	g.AddChild(sp)

	assertCenter := g.Bounds().Center()
	tolassert.EqualTol(t, 32, assertCenter.X, 1.0e-3)
	tolassert.EqualTol(t, 32, assertCenter.Y, 1.0e-3)

	sf := paint.NewImageSurface(64, 64)
	g.Draw(sf)
	assert.NotZero(t, sf.Image().RGBAAt(32, 32).A)
}
