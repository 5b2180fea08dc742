// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meshenc

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"cogentcore.org/threeio/geom"
	"cogentcore.org/threeio/jsonw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPoly struct {
	pos     []geom.Vector3
	normals []geom.Vector3
	face    *geom.Vector3
	uvs     []geom.Vector2
}

func (p *testPoly) NumVertices() int { return len(p.pos) }

func (p *testPoly) Position(i int) geom.Vector3 { return p.pos[i] }

func (p *testPoly) FaceNormal() (geom.Vector3, bool) {
	if p.face == nil {
		return geom.Vector3{}, false
	}
	return *p.face, true
}

func (p *testPoly) Normal(i int) (geom.Vector3, bool) {
	if i >= len(p.normals) {
		return geom.Vector3{}, false
	}
	return p.normals[i], true
}

func (p *testPoly) UV(i int) (geom.Vector2, bool) {
	if i >= len(p.uvs) {
		return geom.Vector2{}, false
	}
	return p.uvs[i], true
}

var (
	p0 = geom.Vec3(0, 0, 0)
	p1 = geom.Vec3(1, 0, 0)
	p2 = geom.Vec3(1, 1, 0)
	p3 = geom.Vec3(0, 1, 0)
	up = geom.Vec3(0, 0, 1)
)

func encode(t *testing.T, e *Encoder, polys ...Polygon) string {
	t.Helper()
	var b bytes.Buffer
	w := jsonw.NewWriter(&b).SetPretty(false)
	w.StartObject()
	require.NoError(t, e.WriteData(w, slices.Values(polys)))
	w.EndObject()
	require.NoError(t, w.Flush())
	return b.String()
}

func TestFaceListQuad(t *testing.T) {
	e := New(FaceList, false, false)
	quad := &testPoly{pos: []geom.Vector3{p0, p1, p2, p3}}
	got := encode(t, e, quad)
	assert.Equal(t, `{"data":{"faces":[1,0,1,2,3],"vertices":[0.0,0.0,0.0,1.0,0.0,0.0,1.0,1.0,0.0,0.0,1.0,0.0]}}`, got)
	assert.Equal(t, 4, e.NumPositions())
}

func TestFaceBits(t *testing.T) {
	assert.Equal(t, 1, FaceQuad)
	assert.Equal(t, 57, FaceQuad|FaceVertexUV|FaceNormal|FaceVertexNormal)
}

func TestFaceListSharedPositions(t *testing.T) {
	e := New(FaceList, false, false)
	a := &testPoly{pos: []geom.Vector3{p0, p1, p2}}
	b := &testPoly{pos: []geom.Vector3{p0, p2, p3}}
	got := encode(t, e, a, b)
	assert.Contains(t, got, `"faces":[0,0,1,2,0,0,2,3]`)
	assert.Equal(t, 4, e.NumPositions())
}

func TestFaceListNormals(t *testing.T) {
	e := New(FaceList, true, false)
	tri := &testPoly{
		pos:     []geom.Vector3{p0, p1, p2},
		normals: []geom.Vector3{up, up, up},
		face:    &up,
	}
	got := encode(t, e, tri)
	assert.Equal(t, `{"data":{"faces":[48,0,1,2,0,0,0,0],"vertices":[0.0,0.0,0.0,1.0,0.0,0.0,1.0,1.0,0.0],"normals":[0.0,0.0,1.0]}}`, got)
}

func TestFaceListNormalsEnabledButAbsent(t *testing.T) {
	e := New(FaceList, true, false)
	tri := &testPoly{pos: []geom.Vector3{p0, p1, p2}}
	got := encode(t, e, tri)
	assert.Contains(t, got, `"faces":[0,0,1,2]`)
	assert.Contains(t, got, `"normals":[]`)
}

func TestFaceListUVs(t *testing.T) {
	e := New(FaceList, false, true)
	tri := &testPoly{
		pos: []geom.Vector3{p0, p1, p2},
		uvs: []geom.Vector2{geom.Vec2(0, 0), geom.Vec2(1, 0), geom.Vec2(1, 1)},
	}
	tri2 := &testPoly{
		pos: []geom.Vector3{p0, p2, p3},
		uvs: []geom.Vector2{geom.Vec2(0, 0), geom.Vec2(1, 1), geom.Vec2(0, 1)},
	}
	got := encode(t, e, tri, tri2)
	assert.Contains(t, got, `"faces":[8,0,1,2,0,1,2,8,0,2,3,0,2,3]`)
	assert.Contains(t, got, `"uvs":[[0.0,0.0,1.0,0.0,1.0,1.0,0.0,1.0]]`)
}

func TestIndexedTriangles(t *testing.T) {
	e := New(IndexedTriangles, false, false)
	a := &testPoly{pos: []geom.Vector3{p0, p1, p2}}
	b := &testPoly{pos: []geom.Vector3{p0, p2, p3}}
	got := encode(t, e, a, b)
	want := `{"data":{"attributes":{"index":{"itemSize":1,"type":"Uint32Array","array":[0,1,2,0,2,3]},` +
		`"position":{"itemSize":3,"type":"Float32Array","array":[0.0,0.0,0.0,1.0,0.0,0.0,1.0,1.0,0.0,0.0,1.0,0.0]}}}}`
	assert.Equal(t, want, got)
	assert.Equal(t, 4, e.NumVertices())
}

func TestIndexedNormalFallback(t *testing.T) {
	e := New(IndexedTriangles, true, false)
	withFace := &testPoly{pos: []geom.Vector3{p0, p1, p2}, face: &up}
	got := encode(t, e, withFace)
	assert.Contains(t, got, `"normal":{"itemSize":3,"type":"Float32Array","array":[0.0,0.0,1.0,0.0,0.0,1.0,0.0,0.0,1.0]}`)

	bare := &testPoly{pos: []geom.Vector3{p0, p1, p2}}
	got = encode(t, e, bare)
	assert.Contains(t, got, `"normal":{"itemSize":3,"type":"Float32Array","array":[1.0,0.0,0.0,1.0,0.0,0.0,1.0,0.0,0.0]}`)
}

func TestIndexedSplitsOnNormal(t *testing.T) {
	e := New(IndexedTriangles, true, false)
	down := geom.Vec3(0, 0, -1)
	a := &testPoly{pos: []geom.Vector3{p0, p1, p2}, normals: []geom.Vector3{up, up, up}}
	b := &testPoly{pos: []geom.Vector3{p0, p2, p3}, normals: []geom.Vector3{down, down, down}}
	got := encode(t, e, a, b)
	assert.Contains(t, got, `"array":[0,1,2,3,4,5]`)
	assert.Equal(t, 6, e.NumVertices())
}

func TestIndexedUVs(t *testing.T) {
	e := New(IndexedTriangles, false, true)
	tri := &testPoly{
		pos: []geom.Vector3{p0, p1, p2},
		uvs: []geom.Vector2{geom.Vec2(0, 0), geom.Vec2(0.5, 0)},
	}
	got := encode(t, e, tri)
	assert.Contains(t, got, `"uv":{"itemSize":2,"type":"Float32Array","array":[0.0,0.0,0.5,0.0,0.0,0.0]}`)
}

func TestTopology(t *testing.T) {
	pent := &testPoly{pos: []geom.Vector3{p0, p1, p2, p3, up}}
	quad := &testPoly{pos: []geom.Vector3{p0, p1, p2, p3}}
	tests := []struct {
		mode    Mode
		poly    *testPoly
		corners int
	}{
		{FaceList, pent, 5},
		{IndexedTriangles, quad, 4},
		{IndexedTriangles, pent, 5},
	}
	for _, test := range tests {
		t.Run(test.mode.String(), func(t *testing.T) {
			var b bytes.Buffer
			w := jsonw.NewWriter(&b).SetPretty(false)
			e := New(test.mode, true, true)
			w.StartArray()
			err := e.Encode(w, test.poly)
			w.EndArray()
			require.NoError(t, w.Flush())

			assert.True(t, errors.Is(err, ErrUnsupportedTopology))
			var te *TopologyError
			require.True(t, errors.As(err, &te))
			assert.Equal(t, test.corners, te.Corners)
			assert.Equal(t, "[]", b.String())
			assert.Equal(t, 0, e.NumPositions())
		})
	}
}

func TestWriteDataResets(t *testing.T) {
	e := New(FaceList, false, false)
	encode(t, e, &testPoly{pos: []geom.Vector3{p1, p2, p3}})
	got := encode(t, e, &testPoly{pos: []geom.Vector3{p0, p1, p2}})
	assert.Contains(t, got, `"faces":[0,0,1,2]`)
	assert.Equal(t, 3, e.NumPositions())
}

func TestModeText(t *testing.T) {
	var m Mode
	require.NoError(t, m.UnmarshalText([]byte("BufferGeometry")))
	assert.Equal(t, IndexedTriangles, m)
	require.NoError(t, m.Set("geometry"))
	assert.Equal(t, FaceList, m)
	assert.Error(t, m.Set("points"))

	text, err := IndexedTriangles.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "buffergeometry", string(text))
}
