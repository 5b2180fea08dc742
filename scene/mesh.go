// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"iter"

	"cogentcore.org/threeio/geom"
	"cogentcore.org/threeio/threejs"
)

// Mesh is a polygon mesh. It implements [threejs.Mesh].
type Mesh struct {

	// Name is the name of the mesh in the scene.
	Name string

	// Points are the point positions.
	Points []geom.Vector3

	// Normals are optional per point vertex normals.
	Normals []geom.Vector3

	// UVs are optional per point texture coordinates.
	UVs []geom.Vector2

	// Polys are the polygons.
	Polys []*Poly
}

// Poly is a polygon of a [Mesh]. Per corner normals and texture
// coordinates take precedence over the per point ones of the mesh.
type Poly struct {

	// Verts are the point indexes of the corners.
	Verts []int

	// Tag is the material tag.
	Tag string

	// Normals are optional per corner vertex normals.
	Normals []geom.Vector3

	// UVs are optional per corner texture coordinates.
	UVs []geom.Vector2

	// FaceNormal is the polygon normal; it is computed
	// from the positions if nil.
	FaceNormal *geom.Vector3
}

// AddPoint adds a point at the given position, returning its index.
func (m *Mesh) AddPoint(pos geom.Vector3) int {
	m.Points = append(m.Points, pos)
	return len(m.Points) - 1
}

// AddPoly adds a polygon with the given tag and corners.
func (m *Mesh) AddPoly(tag string, verts ...int) *Poly {
	p := &Poly{Tag: tag, Verts: verts}
	m.Polys = append(m.Polys, p)
	return p
}

// NumPoints implements [threejs.Mesh].
func (m *Mesh) NumPoints() int {
	return len(m.Points)
}

// HasUVs implements [threejs.Mesh].
func (m *Mesh) HasUVs() bool {
	if len(m.UVs) > 0 {
		return true
	}
	for _, p := range m.Polys {
		if len(p.UVs) > 0 {
			return true
		}
	}
	return false
}

// Polygons implements [threejs.Mesh].
func (m *Mesh) Polygons() iter.Seq[threejs.Polygon] {
	return func(yield func(threejs.Polygon) bool) {
		for _, p := range m.Polys {
			if !yield(&polygon{mesh: m, poly: p}) {
				return
			}
		}
	}
}

// polygon is the [threejs.Polygon] view of a [Poly].
type polygon struct {
	mesh *Mesh
	poly *Poly
}

func (p *polygon) NumVertices() int {
	return len(p.poly.Verts)
}

func (p *polygon) Tag() string {
	return p.poly.Tag
}

func (p *polygon) Position(i int) geom.Vector3 {
	return p.mesh.Points[p.poly.Verts[i]]
}

func (p *polygon) Normal(i int) (geom.Vector3, bool) {
	if i < len(p.poly.Normals) {
		return p.poly.Normals[i], true
	}
	if pt := p.poly.Verts[i]; pt < len(p.mesh.Normals) {
		return p.mesh.Normals[pt], true
	}
	return geom.Vector3{}, false
}

func (p *polygon) FaceNormal() (geom.Vector3, bool) {
	if p.poly.FaceNormal != nil {
		return *p.poly.FaceNormal, true
	}
	pts := make([]geom.Vector3, len(p.poly.Verts))
	for i, v := range p.poly.Verts {
		pts[i] = p.mesh.Points[v]
	}
	return geom.PolygonNormal(pts)
}

func (p *polygon) UV(i int) (geom.Vector2, bool) {
	if i < len(p.poly.UVs) {
		return p.poly.UVs[i], true
	}
	if pt := p.poly.Verts[i]; pt < len(p.mesh.UVs) {
		return p.mesh.UVs[pt], true
	}
	return geom.Vector2{}, false
}
