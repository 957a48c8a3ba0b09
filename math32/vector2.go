// Copyright (c) 2026, The gcanvas Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"fmt"
	"image"
)

// Vector2 is a 2D vector/point with X and Y components.
type Vector2 struct {
	X float32
	Y float32
}

// Vec2 returns a new [Vector2] with the given x and y components.
func Vec2(x, y float32) Vector2 {
	return Vector2{X: x, Y: y}
}

// Vector2Scalar returns a new [Vector2] with all components set to the given scalar value.
func Vector2Scalar(scalar float32) Vector2 {
	return Vector2{X: scalar, Y: scalar}
}

// Vector2FromPoint returns a new [Vector2] from the given [image.Point].
func Vector2FromPoint(pt image.Point) Vector2 {
	return Vector2{X: float32(pt.X), Y: float32(pt.Y)}
}

// Set sets this vector's X and Y components.
func (v *Vector2) Set(x, y float32) {
	v.X = x
	v.Y = y
}

// SetScalar sets all components of this vector to the given scalar value.
func (v *Vector2) SetScalar(scalar float32) {
	v.X = scalar
	v.Y = scalar
}

// String returns the vector as a coordinate string.
func (v Vector2) String() string {
	return fmt.Sprintf("(%v, %v)", v.X, v.Y)
}

// ToPoint returns this vector as an [image.Point] with components truncated to ints.
func (v Vector2) ToPoint() image.Point {
	return image.Point{X: int(v.X), Y: int(v.Y)}
}

// ToPointFloor returns this vector as an [image.Point] with components
// rounded down.
func (v Vector2) ToPointFloor() image.Point {
	return image.Point{X: int(Floor(v.X)), Y: int(Floor(v.Y))}
}

// ToPointCeil returns this vector as an [image.Point] with components
// rounded up.
func (v Vector2) ToPointCeil() image.Point {
	return image.Point{X: int(Ceil(v.X)), Y: int(Ceil(v.Y))}
}

// ToPointRound returns this vector as an [image.Point] with components
// rounded to the nearest int.
func (v Vector2) ToPointRound() image.Point {
	return image.Point{X: int(Round(v.X)), Y: int(Round(v.Y))}
}

// Add returns the vector sum of this vector and other.
func (v Vector2) Add(other Vector2) Vector2 {
	return Vector2{X: v.X + other.X, Y: v.Y + other.Y}
}

// AddScalar adds the scalar s to each component of this vector, returning the result.
func (v Vector2) AddScalar(s float32) Vector2 {
	return Vector2{X: v.X + s, Y: v.Y + s}
}

// SetAdd adds other to this vector in place.
func (v *Vector2) SetAdd(other Vector2) {
	v.X += other.X
	v.Y += other.Y
}

// SetAddScalar adds the scalar s to each component of this vector in place.
func (v *Vector2) SetAddScalar(s float32) {
	v.X += s
	v.Y += s
}

// Sub returns this vector minus other.
func (v Vector2) Sub(other Vector2) Vector2 {
	return Vector2{X: v.X - other.X, Y: v.Y - other.Y}
}

// SubScalar subtracts the scalar s from each component of this vector, returning the result.
func (v Vector2) SubScalar(s float32) Vector2 {
	return Vector2{X: v.X - s, Y: v.Y - s}
}

// SetSub subtracts other from this vector in place.
func (v *Vector2) SetSub(other Vector2) {
	v.X -= other.X
	v.Y -= other.Y
}

// SetSubScalar subtracts the scalar s from each component of this vector in place.
func (v *Vector2) SetSubScalar(s float32) {
	v.X -= s
	v.Y -= s
}

// Mul returns the componentwise product of this vector and other.
func (v Vector2) Mul(other Vector2) Vector2 {
	return Vector2{X: v.X * other.X, Y: v.Y * other.Y}
}

// MulScalar multiplies each component of this vector by the scalar s, returning the result.
func (v Vector2) MulScalar(s float32) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

// SetMul multiplies this vector by other componentwise in place.
func (v *Vector2) SetMul(other Vector2) {
	v.X *= other.X
	v.Y *= other.Y
}

// Div returns the componentwise division of this vector by other.
func (v Vector2) Div(other Vector2) Vector2 {
	return Vector2{X: v.X / other.X, Y: v.Y / other.Y}
}

// DivScalar divides each component of this vector by the scalar s, returning
// the result. It returns the zero vector if s is 0.
func (v Vector2) DivScalar(s float32) Vector2 {
	if s == 0 {
		return Vector2{}
	}
	return v.MulScalar(1 / s)
}

// Negate returns the vector with each component negated.
func (v Vector2) Negate() Vector2 {
	return Vector2{X: -v.X, Y: -v.Y}
}

// SetMin sets each component of this vector to the minimum of
// that component and the corresponding component of other.
func (v *Vector2) SetMin(other Vector2) {
	v.X = Min(v.X, other.X)
	v.Y = Min(v.Y, other.Y)
}

// SetMax sets each component of this vector to the maximum of
// that component and the corresponding component of other.
func (v *Vector2) SetMax(other Vector2) {
	v.X = Max(v.X, other.X)
	v.Y = Max(v.Y, other.Y)
}

// Clamp clamps each component of this vector in place between the
// corresponding components of min and max.
func (v *Vector2) Clamp(min, max Vector2) {
	v.X = Clamp(v.X, min.X, max.X)
	v.Y = Clamp(v.Y, min.Y, max.Y)
}

// Dot returns the dot product of this vector with other.
func (v Vector2) Dot(other Vector2) float32 {
	return v.X*other.X + v.Y*other.Y
}

// Cross returns the 2D cross product (Z component of the 3D cross)
// of this vector with other.
func (v Vector2) Cross(other Vector2) float32 {
	return v.X*other.Y - v.Y*other.X
}

// LengthSquared returns the length squared of this vector.
func (v Vector2) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Length returns the length of this vector.
func (v Vector2) Length() float32 {
	return Sqrt(v.LengthSquared())
}

// Normal returns this vector divided by its length (its unit vector),
// or the zero vector if it has zero length.
func (v Vector2) Normal() Vector2 {
	return v.DivScalar(v.Length())
}

// DistanceTo returns the distance between this vector and other.
func (v Vector2) DistanceTo(other Vector2) float32 {
	return v.Sub(other).Length()
}

// Lerp returns a vector linearly interpolated between this vector
// and other by the amount t (0 = this, 1 = other).
func (v Vector2) Lerp(other Vector2, t float32) Vector2 {
	return Vector2{X: Lerp(v.X, other.X, t), Y: Lerp(v.Y, other.Y, t)}
}

// Rotate returns this vector rotated counterclockwise by the given
// angle in radians around the origin.
func (v Vector2) Rotate(angle float32) Vector2 {
	sin, cos := Sincos(angle)
	return Vector2{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}
