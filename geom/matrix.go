// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"fmt"
	"math"
	"strings"
)

// Matrix4 is a 4x4 transform matrix stored in column-major order,
// i.e., element (row r, column c) is at index c*4+r.
// This is the element order of the "matrix" array of exported objects.
type Matrix4 [16]float64

// Identity4 returns a new identity [Matrix4].
func Identity4() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at the given row and column.
func (m Matrix4) At(row, col int) float64 {
	return m[col*4+row]
}

// Mul returns the matrix product m * o.
func (m Matrix4) Mul(o Matrix4) Matrix4 {
	var r Matrix4
	for c := range 4 {
		for rw := range 4 {
			var s float64
			for k := range 4 {
				s += m[k*4+rw] * o[c*4+k]
			}
			r[c*4+rw] = s
		}
	}
	return r
}

// IsFinite returns whether no element is NaN or infinite.
func (m Matrix4) IsFinite() bool {
	for _, e := range m {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return false
		}
	}
	return true
}

// Translation returns a translation matrix by the given vector.
func Translation(v Vector3) Matrix4 {
	m := Identity4()
	m[12] = v.X
	m[13] = v.Y
	m[14] = v.Z
	return m
}

// Scaling returns a scale matrix by the given per-axis factors.
func Scaling(v Vector3) Matrix4 {
	m := Identity4()
	m[0] = v.X
	m[5] = v.Y
	m[10] = v.Z
	return m
}

// Rotation returns a rotation matrix of the given angle in radians
// around the given axis (0 = X, 1 = Y, 2 = Z).
func Rotation(axis int, rad float64) Matrix4 {
	s, c := math.Sincos(rad)
	m := Identity4()
	switch axis {
	case 0:
		m[5], m[6], m[9], m[10] = c, s, -s, c
	case 1:
		m[0], m[2], m[8], m[10] = c, -s, s, c
	case 2:
		m[0], m[1], m[4], m[5] = c, s, -s, c
	}
	return m
}

// RotationOrder is the order in which per-axis rotations are applied.
type RotationOrder int32

const (
	RotationXYZ RotationOrder = iota
	RotationXZY
	RotationYXZ
	RotationYZX
	RotationZXY
	RotationZYX
)

var rotationOrderNames = [...]string{"xyz", "xzy", "yxz", "yzx", "zxy", "zyx"}

// String returns the lower-case axis order, e.g., "xyz".
func (ro RotationOrder) String() string {
	if ro < 0 || int(ro) >= len(rotationOrderNames) {
		return fmt.Sprintf("RotationOrder(%d)", int32(ro))
	}
	return rotationOrderNames[ro]
}

// ParseRotationOrder parses an axis order string such as "XYZ" or "zyx".
// The empty string is [RotationXYZ].
func ParseRotationOrder(s string) (RotationOrder, error) {
	if s == "" {
		return RotationXYZ, nil
	}
	ls := strings.ToLower(s)
	for i, nm := range rotationOrderNames {
		if nm == ls {
			return RotationOrder(i), nil
		}
	}
	return RotationXYZ, fmt.Errorf("geom.ParseRotationOrder: invalid rotation order %q", s)
}

// Axes returns the axis indexes in application order.
func (ro RotationOrder) Axes() [3]int {
	switch ro {
	case RotationXZY:
		return [3]int{0, 2, 1}
	case RotationYXZ:
		return [3]int{1, 0, 2}
	case RotationYZX:
		return [3]int{1, 2, 0}
	case RotationZXY:
		return [3]int{2, 0, 1}
	case RotationZYX:
		return [3]int{2, 1, 0}
	default:
		return [3]int{0, 1, 2}
	}
}

// Compose returns the local transform that scales by scale, then
// rotates by the given Euler angles in degrees in the given order,
// then translates by pos.
func Compose(pos, rotDeg Vector3, order RotationOrder, scale Vector3) Matrix4 {
	angles := [3]float64{rotDeg.X, rotDeg.Y, rotDeg.Z}
	rot := Identity4()
	for _, ax := range order.Axes() {
		if angles[ax] == 0 {
			continue
		}
		rot = Rotation(ax, angles[ax]*math.Pi/180).Mul(rot)
	}
	return Translation(pos).Mul(rot).Mul(Scaling(scale))
}
