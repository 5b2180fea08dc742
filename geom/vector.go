// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom provides the value types used to describe mesh
// attributes for export: float32 texture coordinates, float64 positions
// and normals, combined vertices, and column-major 4x4 matrices.
//
// All vector types are comparable, so they can be used directly as map
// keys. Equality is exact numeric equality without any tolerance;
// the ordering given by the Compare methods is lexicographic over the
// components and exists for deduplication, not for geometry.
package geom

import (
	"cmp"
	"math"

	"github.com/chewxy/math32"
)

// Vector2 is a 2D texture coordinate with X (u) and Y (v) components.
type Vector2 struct {
	X float32
	Y float32
}

// Vec2 returns a new [Vector2] with the given x and y components.
func Vec2(x, y float32) Vector2 {
	return Vector2{X: x, Y: y}
}

// Set sets this vector X and Y components.
func (v *Vector2) Set(x, y float32) {
	v.X = x
	v.Y = y
}

// IsFinite returns whether neither component is NaN or infinite.
func (v Vector2) IsFinite() bool {
	return !math32.IsNaN(v.X) && !math32.IsInf(v.X, 0) &&
		!math32.IsNaN(v.Y) && !math32.IsInf(v.Y, 0)
}

// Compare returns -1, 0 or +1 depending on whether v sorts before,
// equal to, or after o, comparing X first and then Y.
func (v Vector2) Compare(o Vector2) int {
	if c := cmp.Compare(v.X, o.X); c != 0 {
		return c
	}
	return cmp.Compare(v.Y, o.Y)
}

// Vector3 is a 3D vector/point with X, Y and Z components.
type Vector3 struct {
	X float64
	Y float64
	Z float64
}

// Vec3 returns a new [Vector3] with the given x, y and z components.
func Vec3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Vector3FromSlice returns a new [Vector3] from the first three values
// of the given slice, which must have at least three elements.
func Vector3FromSlice(s []float64) Vector3 {
	return Vector3{X: s[0], Y: s[1], Z: s[2]}
}

// UnitX is the arbitrary unit normal used when no normal is known.
var UnitX = Vector3{X: 1}

// Set sets this vector X, Y and Z components.
func (v *Vector3) Set(x, y, z float64) {
	v.X = x
	v.Y = y
	v.Z = z
}

// Add returns the vector sum of v and o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns the vector difference v - o.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// MulScalar returns v scaled by s.
func (v Vector3) MulScalar(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vector3) Dot(o Vector3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product of v and o.
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the length of the vector.
func (v Vector3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normal returns v scaled to unit length,
// or the zero vector if v has zero length.
func (v Vector3) Normal() Vector3 {
	l := v.Length()
	if l == 0 {
		return Vector3{}
	}
	return v.MulScalar(1 / l)
}

// IsFinite returns whether no component is NaN or infinite.
func (v Vector3) IsFinite() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Compare returns -1, 0 or +1 depending on whether v sorts before,
// equal to, or after o, comparing X, then Y, then Z.
func (v Vector3) Compare(o Vector3) int {
	if c := cmp.Compare(v.X, o.X); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Y, o.Y); c != 0 {
		return c
	}
	return cmp.Compare(v.Z, o.Z)
}
