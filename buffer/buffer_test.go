// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package buffer

import (
	"math"
	"testing"

	"cogentcore.org/threeio/geom"
	"github.com/stretchr/testify/assert"
)

func TestInsertIdempotent(t *testing.T) {
	var b Builder[geom.Vector3]
	assert.Equal(t, 0, b.Insert(geom.Vec3(0, 0, 0)))
	assert.Equal(t, 1, b.Insert(geom.Vec3(1, 0, 0)))
	assert.Equal(t, 0, b.Insert(geom.Vec3(0, 0, 0)))
	assert.Equal(t, 1, b.Insert(geom.Vec3(1, 0, 0)))
	assert.Equal(t, 2, b.Insert(geom.Vec3(1, 1, 0)))
	assert.Equal(t, 3, b.Len())

	idx, ok := b.Index(geom.Vec3(1, 1, 0))
	assert.True(t, ok)
	assert.Equal(t, 2, idx)
	_, ok = b.Index(geom.Vec3(5, 5, 5))
	assert.False(t, ok)
}

func TestFirstSeenOrder(t *testing.T) {
	b := New[geom.Vector2]()
	in := []geom.Vector2{{3, 3}, {1, 1}, {3, 3}, {2, 2}, {1, 1}, {0, 0}, {2, 2}}
	for _, v := range in {
		b.Insert(v)
	}
	want := []geom.Vector2{{3, 3}, {1, 1}, {2, 2}, {0, 0}}
	assert.Equal(t, want, b.Values())
	assert.Equal(t, geom.Vec2(2, 2), b.At(2))

	var got []geom.Vector2
	for i, v := range b.All() {
		assert.Equal(t, want[i], v)
		got = append(got, v)
	}
	assert.Equal(t, want, got)

	n := 0
	for range b.All() {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestExactEquality(t *testing.T) {
	var b Builder[geom.Vector3]
	i0 := b.Insert(geom.Vec3(0.1, 0, 0))
	i1 := b.Insert(geom.Vec3(math.Nextafter(0.1, 1), 0, 0))
	assert.NotEqual(t, i0, i1)
	assert.Equal(t, 2, b.Len())
}

func TestClear(t *testing.T) {
	var b Builder[geom.Vertex]
	v := geom.NewVertex(geom.Vec3(1, 2, 3), geom.UnitX, geom.Vec2(0.5, 0.5))
	b.Insert(geom.NewVertex(geom.Vector3{}, geom.UnitX, geom.Vector2{}))
	assert.Equal(t, 1, b.Insert(v))

	b.Clear()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Insert(v))
	assert.Equal(t, []geom.Vertex{v}, b.Values())
}
