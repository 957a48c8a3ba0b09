// Copyright (c) 2026, The gcanvas Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solid renders simple 3D solids into the 2D scene graph with
// a software pipeline: rotate, perspective project, cull, light, and
// painter sort, then fill or stroke the surviving triangles through
// a [paint.Surface]. There is no depth buffer; solids composite like
// any other scene node.
package solid

import (
	"github.com/guinetik/gcanvas-sub007/math32"
)

// CameraState is the interaction state of a [Camera].
type CameraState int32

const (
	// CameraIdle means no pointer interaction is in progress. Auto
	// rotation, if enabled, runs in this state only.
	CameraIdle CameraState = iota

	// CameraDragging means a pointer is down and moves rotate the
	// camera directly.
	CameraDragging

	// CameraSettling means the pointer was released with leftover
	// velocity that is still decaying.
	CameraSettling
)

func (cs CameraState) String() string {
	switch cs {
	case CameraIdle:
		return "Idle"
	case CameraDragging:
		return "Dragging"
	case CameraSettling:
		return "Settling"
	}
	return "Unknown"
}

const (
	// behindEps pads the behind-camera cull so faces straddling the
	// camera plane are dropped before their projection blows up.
	behindEps = 1.0e-3

	// settleEps is the angular velocity magnitude below which a
	// settling camera snaps to idle.
	settleEps = 1.0e-4

	// pitchMargin keeps the pitch shy of the poles so the view never
	// flips over the top.
	pitchMargin = 0.01
)

// Camera holds the view rotation and perspective for projecting 3D
// points to the 2D plane, plus the pointer interaction state driving
// it: drag to rotate, release to coast with inertia, and optionally
// auto rotate while idle.
//
// The host loop feeds pointer events through [Camera.PointerDown],
// [Camera.PointerMove], and [Camera.PointerUp], and calls
// [Camera.Update] once per tick.
type Camera struct {

	// RotationX, RotationY, and RotationZ are the view rotation in
	// radians around each axis: pitch, yaw, and roll.
	RotationX float32
	RotationY float32
	RotationZ float32

	// Perspective is the projection strength: the distance from the
	// viewer to the projection plane in scene units. Must be
	// positive; passing or setting a non-positive perspective is a
	// programming error.
	Perspective float32

	// AutoRotate spins the camera around the Y axis while idle.
	AutoRotate bool

	// AutoRotateSpeed is the idle spin rate in radians per second.
	AutoRotateSpeed float32

	// Inertia keeps the camera rotating after a drag release, with
	// the velocity decaying by Friction each tick.
	Inertia bool

	// Friction is the per-tick velocity retention factor in (0,1).
	Friction float32

	// VelocityScale converts pointer deltas in pixels to rotation in
	// radians, both while dragging and for the release velocity.
	VelocityScale float32

	state CameraState

	// angular velocity in radians per tick, around X and Y
	velX, velY float32

	// last pointer sample and the scaled delta of the last move
	lastX, lastY   float32
	lastDX, lastDY float32
}

// NewCamera returns a camera with the given perspective distance and
// the default interaction tuning.
func NewCamera(perspective float32) *Camera {
	return &Camera{
		Perspective:     perspective,
		AutoRotateSpeed: 0.5,
		Inertia:         true,
		Friction:        0.93,
		VelocityScale:   0.005,
	}
}

// State returns the camera's interaction state.
func (c *Camera) State() CameraState { return c.state }

// RotateVec applies the camera rotation to the given vector: roll
// around Z, then yaw around Y, then pitch around X.
func (c *Camera) RotateVec(v math32.Vector3) math32.Vector3 {
	return v.RotateZ(c.RotationZ).RotateY(c.RotationY).RotateX(c.RotationX)
}

// Projection is a camera-space point projected to the 2D plane.
type Projection struct {

	// X and Y are the projected plane coordinates.
	X, Y float32

	// Z is the rotated depth before projection. Greater is farther
	// from the viewer.
	Z float32

	// Scale is the perspective factor applied to X and Y.
	Scale float32
}

// Project rotates the given point by the camera rotation and projects
// it onto the plane. Points at or behind the camera plane produce
// non-finite or inverted coordinates; callers cull them with
// [Camera.Behind] first.
func (c *Camera) Project(v math32.Vector3) Projection {
	r := c.RotateVec(v)
	s := c.Perspective / (c.Perspective + r.Z)
	return Projection{X: r.X * s, Y: r.Y * s, Z: r.Z, Scale: s}
}

// Behind reports whether a rotated depth lies at or behind the camera
// plane and must be culled.
func (c *Camera) Behind(rotatedZ float32) bool {
	return rotatedZ < -c.Perspective+behindEps
}

// pitchLimit is the maximum magnitude of RotationX.
func (c *Camera) pitchLimit() float32 {
	return math32.Pi/2 - pitchMargin
}

// PointerDown begins a drag at the given pointer position. Any
// settling motion stops.
func (c *Camera) PointerDown(x, y float32) {
	c.state = CameraDragging
	c.lastX, c.lastY = x, y
	c.lastDX, c.lastDY = 0, 0
	c.velX, c.velY = 0, 0
}

// PointerMove rotates the camera by the pointer delta while dragging.
// Horizontal motion yaws around Y, vertical motion pitches around X,
// with the pitch clamped short of the poles. Moves outside a drag are
// ignored.
func (c *Camera) PointerMove(x, y float32) {
	if c.state != CameraDragging {
		return
	}
	dx := (x - c.lastX) * c.VelocityScale
	dy := (y - c.lastY) * c.VelocityScale
	c.lastX, c.lastY = x, y
	c.RotationY += dx
	lim := c.pitchLimit()
	c.RotationX = math32.Clamp(c.RotationX+dy, -lim, lim)
	c.lastDX, c.lastDY = dx, dy
}

// PointerUp ends the drag. With inertia enabled and a non-negligible
// last move, the camera keeps rotating at the last move's rate and
// settles under friction; otherwise it goes idle immediately.
func (c *Camera) PointerUp() {
	if c.state != CameraDragging {
		return
	}
	if c.Inertia && math32.Hypot(c.lastDX, c.lastDY) > settleEps {
		c.velX, c.velY = c.lastDY, c.lastDX
		c.state = CameraSettling
		return
	}
	c.state = CameraIdle
}

// Update advances the camera by dt seconds: settling cameras coast
// and decay, idle cameras auto rotate if enabled, dragging cameras
// are driven by pointer moves alone.
func (c *Camera) Update(dt float32) {
	switch c.state {
	case CameraDragging:
		// rotation applied directly in PointerMove
	case CameraSettling:
		c.RotationY += c.velY
		lim := c.pitchLimit()
		c.RotationX = math32.Clamp(c.RotationX+c.velX, -lim, lim)
		c.velX *= c.Friction
		c.velY *= c.Friction
		if math32.Hypot(c.velX, c.velY) < settleEps {
			c.velX, c.velY = 0, 0
			c.state = CameraIdle
		}
	case CameraIdle:
		if c.AutoRotate {
			c.RotationY += c.AutoRotateSpeed * dt
		}
	}
}
