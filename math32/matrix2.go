// Copyright (c) 2026, The gcanvas Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Matrix2 is a 2D affine transformation matrix in column-major,
// tight-packed form:
//
//	| XX XY X0 |
//	| YX YY Y0 |
//
// A point (x, y) transforms to (XX*x + XY*y + X0, YX*x + YY*y + Y0).
type Matrix2 struct {
	XX, YX, XY, YY, X0, Y0 float32
}

// Identity2 returns a new identity [Matrix2].
func Identity2() Matrix2 {
	return Matrix2{XX: 1, YY: 1}
}

// Translate2D returns a [Matrix2] that translates by the given offsets.
func Translate2D(x, y float32) Matrix2 {
	return Matrix2{XX: 1, YY: 1, X0: x, Y0: y}
}

// Scale2D returns a [Matrix2] that scales by the given factors.
func Scale2D(x, y float32) Matrix2 {
	return Matrix2{XX: x, YY: y}
}

// Rotate2D returns a [Matrix2] that rotates by the given angle in radians.
// Positive angles rotate from the +X axis toward the +Y axis, which is
// counterclockwise in standard orientation and clockwise in y-down
// screen coordinates.
func Rotate2D(angle float32) Matrix2 {
	sin, cos := Sincos(angle)
	return Matrix2{XX: cos, YX: sin, XY: -sin, YY: cos}
}

// Mul returns a times b: the combined transform that applies b first,
// then a. Multiplication order is the reverse of "logical" order.
func (a Matrix2) Mul(b Matrix2) Matrix2 {
	return Matrix2{
		XX: a.XX*b.XX + a.XY*b.YX,
		YX: a.YX*b.XX + a.YY*b.YX,
		XY: a.XX*b.XY + a.XY*b.YY,
		YY: a.YX*b.XY + a.YY*b.YY,
		X0: a.XX*b.X0 + a.XY*b.Y0 + a.X0,
		Y0: a.YX*b.X0 + a.YY*b.Y0 + a.Y0,
	}
}

// MulVector2AsPoint returns the given point transformed by this matrix,
// including translation.
func (a Matrix2) MulVector2AsPoint(v Vector2) Vector2 {
	return Vector2{
		X: a.XX*v.X + a.XY*v.Y + a.X0,
		Y: a.YX*v.X + a.YY*v.Y + a.Y0,
	}
}

// MulVector2AsVector returns the given vector transformed by this matrix,
// without translation.
func (a Matrix2) MulVector2AsVector(v Vector2) Vector2 {
	return Vector2{
		X: a.XX*v.X + a.XY*v.Y,
		Y: a.YX*v.X + a.YY*v.Y,
	}
}

// Translate returns this matrix with a translation by x, y applied
// before the existing transform.
func (a Matrix2) Translate(x, y float32) Matrix2 {
	return a.Mul(Translate2D(x, y))
}

// Scale returns this matrix with a scale by x, y applied before the
// existing transform.
func (a Matrix2) Scale(x, y float32) Matrix2 {
	return a.Mul(Scale2D(x, y))
}

// Rotate returns this matrix with a rotation by the given angle in
// radians applied before the existing transform.
func (a Matrix2) Rotate(angle float32) Matrix2 {
	return a.Mul(Rotate2D(angle))
}

// Determinant returns the determinant of the linear part of this matrix.
func (a Matrix2) Determinant() float32 {
	return a.XX*a.YY - a.XY*a.YX
}

// Inverse returns the inverse of this matrix. If the matrix is
// singular, the identity is returned.
func (a Matrix2) Inverse() Matrix2 {
	det := a.Determinant()
	if det == 0 {
		return Identity2()
	}
	inv := 1 / det
	return Matrix2{
		XX: a.YY * inv,
		YX: -a.YX * inv,
		XY: -a.XY * inv,
		YY: a.XX * inv,
		X0: (a.XY*a.Y0 - a.YY*a.X0) * inv,
		Y0: (a.YX*a.X0 - a.XX*a.Y0) * inv,
	}
}

// ExtractRot extracts the rotation component of this matrix, in radians.
func (a Matrix2) ExtractRot() float32 {
	return Atan2(-a.XY, a.XX)
}

// ExtractScale extracts the X and Y scale factors of this matrix.
func (a Matrix2) ExtractScale() (scx, scy float32) {
	scx = Sqrt(a.XX*a.XX + a.YX*a.YX)
	scy = Sqrt(a.XY*a.XY + a.YY*a.YY)
	return
}

// IsIdentity returns whether this matrix is the identity transform.
func (a Matrix2) IsIdentity() bool {
	return a == Identity2()
}
