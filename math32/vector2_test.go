// Copyright (c) 2026, The gcanvas Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"image"
	"testing"

	"github.com/guinetik/gcanvas-sub007/base/tolassert"
	"github.com/stretchr/testify/assert"
)

func TestVector2(t *testing.T) {
	assert.Equal(t, Vector2{5, 10}, Vec2(5, 10))
	assert.Equal(t, Vector2{20, 20}, Vector2Scalar(20))
	assert.Equal(t, Vector2{15, -5}, Vector2FromPoint(image.Pt(15, -5)))

	v := Vector2{}
	v.Set(-1, 7)
	assert.Equal(t, Vector2{-1, 7}, v)

	v.SetScalar(8.12)
	assert.Equal(t, Vector2{8.12, 8.12}, v)

	assert.Equal(t, Vector2{3, 4}, Vec2(1, 1).Add(Vec2(2, 3)))
	assert.Equal(t, Vector2{-1, -2}, Vec2(1, 1).Sub(Vec2(2, 3)))
	assert.Equal(t, Vector2{2, 3}, Vec2(1, 1).Mul(Vec2(2, 3)))
	assert.Equal(t, Vector2{2, 2}, Vec2(1, 1).MulScalar(2))
	assert.Equal(t, Vector2{2, 4}, Vec2(4, 8).DivScalar(2))
	assert.Equal(t, Vector2{}, Vec2(4, 8).DivScalar(0))
	assert.Equal(t, Vector2{-4, 8}, Vec2(4, -8).Negate())
}

func TestVector2LengthDot(t *testing.T) {
	assert.Equal(t, float32(5), Vec2(3, 4).Length())
	assert.Equal(t, float32(25), Vec2(3, 4).LengthSquared())
	assert.Equal(t, float32(11), Vec2(1, 2).Dot(Vec2(3, 4)))
	assert.Equal(t, float32(5), Vec2(0, 0).DistanceTo(Vec2(3, 4)))

	n := Vec2(0, 10).Normal()
	assert.Equal(t, Vector2{0, 1}, n)
	assert.Equal(t, Vector2{}, Vector2{}.Normal())
}

func TestVector2Rotate(t *testing.T) {
	r := Vec2(1, 0).Rotate(DegToRad(90))
	tolassert.Equal(t, 0, r.X)
	tolassert.Equal(t, 1, r.Y)

	r = Vec2(1, 0).Rotate(DegToRad(-90))
	tolassert.Equal(t, 0, r.X)
	tolassert.Equal(t, -1, r.Y)
}

func TestVector2MinMaxClamp(t *testing.T) {
	v := Vec2(5, -2)
	v.SetMin(Vec2(3, 0))
	assert.Equal(t, Vector2{3, -2}, v)

	v.SetMax(Vec2(4, -1))
	assert.Equal(t, Vector2{4, -1}, v)

	v.Clamp(Vec2(0, 0), Vec2(2, 2))
	assert.Equal(t, Vector2{2, 0}, v)
}

func TestVector2Points(t *testing.T) {
	assert.Equal(t, image.Pt(1, 2), Vec2(1.7, 2.9).ToPointFloor())
	assert.Equal(t, image.Pt(2, 3), Vec2(1.2, 2.1).ToPointCeil())
	assert.Equal(t, image.Pt(2, 3), Vec2(1.7, 2.9).ToPointRound())
	assert.Equal(t, image.Pt(1, 2), Vec2(1.7, 2.9).ToPoint())
}
