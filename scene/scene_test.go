// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cogentcore.org/threeio/geom"
	"cogentcore.org/threeio/shadertree"
	"cogentcore.org/threeio/threejs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoYAML = `
name: demo
items:
  - id: grp
    name: Group
    kind: group
    position: [1, 2, 3]
  - id: cube
    name: Cube
    parent: grp
    mesh: quad
  - name: Instance
    source: Cube
    hidden: true
meshes:
  quad:
    points: [[0, 0, 0], [1, 0, 0], [1, 1, 0], [0, 1, 0]]
    uvs: [[0, 0], [1, 0], [1, 1], [0, 1]]
    polygons:
      - verts: [0, 1, 2, 3]
        tag: red
      - verts: [0, 1, 2]
        normals: [[0, 0, 1], [0, 0, 1], [0, 0, 1]]
        normal: [0, 0, -1]
shader:
  - material: {name: Base, diffuse: [0.5, 0.5, 0.5]}
  - mask: true
    tag: red
    layers:
      - material: {name: Red, diffuse: [1, 0, 0], roughness: 0.25}
      - effect: diffuse
        image: {id: tex, file: tex.png}
`

func TestReadYAML(t *testing.T) {
	sc, err := Read("demo.yaml", strings.NewReader(demoYAML))
	require.NoError(t, err)
	assert.Equal(t, "demo", sc.Name())
	assert.Equal(t, 3, sc.NumItems())

	grp := sc.ItemByID("grp")
	require.NotNil(t, grp)
	assert.Equal(t, threejs.GroupLocator, grp.Kind())
	xf := grp.Transform()
	assert.Equal(t, []float64{1, 2, 3}, xf[12:15])

	cube := sc.ItemByID("cube")
	require.NotNil(t, cube)
	assert.Equal(t, threejs.MeshItem, cube.Kind())
	assert.Equal(t, threejs.Item(grp), cube.Parent())
	assert.Len(t, grp.Children(), 1)

	inst := sc.ItemByName("Instance")
	require.NotNil(t, inst)
	assert.Equal(t, threejs.MeshInstance, inst.Kind())
	assert.False(t, inst.Visible())
	assert.Equal(t, threejs.Item(cube), inst.Source())
	assert.Nil(t, inst.Parent())
	assert.Len(t, inst.Identity(), 36)

	m := cube.Mesh()
	require.NotNil(t, m)
	assert.Equal(t, 4, m.NumPoints())
	assert.True(t, m.HasUVs())
	var polys []threejs.Polygon
	for p := range m.Polygons() {
		polys = append(polys, p)
	}
	require.Len(t, polys, 2)
	assert.Equal(t, "red", polys[0].Tag())
	assert.Equal(t, 4, polys[0].NumVertices())
	fn, ok := polys[0].FaceNormal()
	require.True(t, ok)
	assert.Equal(t, geom.Vec3(0, 0, 1), fn)
	uv, ok := polys[0].UV(2)
	require.True(t, ok)
	assert.Equal(t, geom.Vec2(1, 1), uv)
	_, ok = polys[0].Normal(0)
	assert.False(t, ok)

	fn, _ = polys[1].FaceNormal()
	assert.Equal(t, geom.Vec3(0, 0, -1), fn)
	vn, ok := polys[1].Normal(1)
	require.True(t, ok)
	assert.Equal(t, geom.Vec3(0, 0, 1), vn)

	root := sc.ShaderRoot()
	require.NotNil(t, root)
	sel := shadertree.Select(shadertree.Resolve(root, shadertree.Query{PolyTag: "red"}))
	l, ok := sel.Get(shadertree.Material)
	require.True(t, ok)
	mat := l.Item.(threejs.MaterialLayer).Material()
	assert.Equal(t, "Red", mat.Name)
	assert.Equal(t, 1.0, mat.DiffuseAmount)
	assert.Equal(t, 0.25, mat.Roughness)
	l, ok = sel.Get(shadertree.DiffuseMap)
	require.True(t, ok)
	img, ok := l.Item.(threejs.ImageLayer).Image()
	require.True(t, ok)
	assert.Equal(t, threejs.Image{Identity: "tex", File: "tex.png"}, img)
}

func TestReadYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"unknown field", "name: x\ncolour: red\n", "colour"},
		{"missing parent", "items:\n  - name: a\n    parent: b\n", `parent "b" not found`},
		{"missing mesh", "items:\n  - name: a\n    mesh: m\n", `mesh "m" not found`},
		{"missing source", "items:\n  - name: a\n    source: b\n", `source "b" not found`},
		{"bad kind", "items:\n  - name: a\n    kind: camera\n", "invalid item kind"},
		{"bad point", "meshes:\n  m:\n    points: [[0, 1]]\n", "points"},
		{"bad index", "meshes:\n  m:\n    points: [[0, 0, 0]]\n    polygons:\n      - verts: [0, 1, 2]\n", "out of range"},
		{"duplicate id", "items:\n  - id: a\n  - id: a\n", "duplicate item id"},
		{"bad matrix", "items:\n  - name: a\n    matrix: [1, 0]\n", "not 16"},
		{"nan point", "meshes:\n  m:\n    points: [[0, 0, 0], [.nan, 0, 0]]\n", "points: vector 1: NaN or infinite"},
		{"nan uv", "meshes:\n  m:\n    points: [[0, 0, 0]]\n    uvs: [[0, .nan]]\n", "uv 0: NaN or infinite"},
		{"inf normal", "meshes:\n  m:\n    points: [[0, 0, 0]]\n    polygons:\n      - verts: [0, 0, 0]\n        normal: [0, .inf, 0]\n", "polygon 0 normal: NaN or infinite"},
		{"inf position", "items:\n  - name: a\n    position: [0, -.inf, 0]\n", "position: NaN or infinite"},
		{"nan matrix", "items:\n  - name: a\n    matrix: [1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, .nan, 0, 1]\n", "non-finite"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ReadYAML(strings.NewReader(test.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.msg)
		})
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "demo.yml")
	require.NoError(t, os.WriteFile(fn, []byte(demoYAML), 0o644))
	sc, err := Open(fn)
	require.NoError(t, err)

	sel := shadertree.Select(shadertree.Resolve(sc.ShaderRoot(), shadertree.Query{PolyTag: "red"}))
	l, ok := sel.Get(shadertree.DiffuseMap)
	require.True(t, ok)
	img, _ := l.Item.(threejs.ImageLayer).Image()
	assert.Equal(t, filepath.Join(dir, "tex.png"), img.File)

	_, err = Open(filepath.Join(dir, "demo.fbx"))
	assert.ErrorContains(t, err, "not found in Decoders")
	_, err = Open(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestBuildScene(t *testing.T) {
	sc := New("built")
	assert.Nil(t, sc.ShaderRoot())
	assert.Equal(t, NameIdentity("scene", "built"), sc.Identity())

	m := sc.AddMesh("tri")
	a := m.AddPoint(geom.Vec3(0, 0, 0))
	b := m.AddPoint(geom.Vec3(1, 0, 0))
	c := m.AddPoint(geom.Vec3(0, 1, 0))
	m.AddPoly("", a, b, c)
	assert.False(t, m.HasUVs())
	assert.Same(t, m, sc.MeshByName("tri"))

	it, err := sc.AddItem(nil, "", "Tri", threejs.MeshItem)
	require.NoError(t, err)
	it.SetMesh(m)
	again := New("built")
	it2, err := again.AddItem(nil, "", "Tri", threejs.MeshItem)
	require.NoError(t, err)
	assert.Equal(t, it.Identity(), it2.Identity())

	kid, err := sc.AddItem(it, "", "Tri", threejs.Locator)
	require.NoError(t, err)
	assert.NotEqual(t, it.Identity(), kid.Identity())

	var n int
	for range sc.Items() {
		n++
	}
	assert.Equal(t, 2, n)
	assert.Nil(t, kid.Mesh())
	assert.Nil(t, kid.Source())
}

func TestExtensions(t *testing.T) {
	assert.Subset(t, Extensions(), []string{".yaml", ".yml"})
}
