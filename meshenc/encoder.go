// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package meshenc encodes polygons into the geometry data of a
// three.js JSON document, either as a legacy face list or as indexed
// triangles with flat attribute arrays.
//
// An [Encoder] is used for one geometry at a time: polygons are written
// to the open faces or index array as they are encoded, while the
// deduplicated attribute values accumulate in [buffer.Builder] tables
// that are written once the polygons are done.
package meshenc

import (
	"iter"

	"cogentcore.org/threeio/buffer"
	"cogentcore.org/threeio/geom"
	"cogentcore.org/threeio/jsonw"
)

// Polygon is the read-only view of one polygon of a host mesh.
type Polygon interface {
	// NumVertices returns the number of corners.
	NumVertices() int

	// Position returns the position of corner i.
	Position(i int) geom.Vector3

	// Normal returns the normal of corner i, if the host has one.
	Normal(i int) (geom.Vector3, bool)

	// FaceNormal returns the normal of the polygon, if the host has one.
	FaceNormal() (geom.Vector3, bool)

	// UV returns the texture coordinate of corner i, if the host has one.
	UV(i int) (geom.Vector2, bool)
}

// Face record bits of the [FaceList] encoding. The bits for a face
// material, face uv and colors are never set.
const (
	FaceQuad         = 1
	FaceVertexUV     = 8
	FaceNormal       = 16
	FaceVertexNormal = 32
)

// IndexType is the typed array name written for the index attribute.
const IndexType = "Uint32Array"

// AttributeType is the typed array name written for vertex attributes.
const AttributeType = "Float32Array"

// Encoder encodes the polygons of one geometry.
type Encoder struct {
	// Mode is the encoding.
	Mode Mode

	// Normals enables normal output.
	Normals bool

	// UVs enables texture coordinate output. It should only be set
	// if the mesh actually carries texture coordinates.
	UVs bool

	positions buffer.Builder[geom.Vector3]
	normals   buffer.Builder[geom.Vector3]
	uvs       buffer.Builder[geom.Vector2]
	vertices  buffer.Builder[geom.Vertex]

	indices []int
}

// New returns a new [Encoder] for the given mode and attribute options.
func New(mode Mode, normals, uvs bool) *Encoder {
	return &Encoder{Mode: mode, Normals: normals, UVs: uvs}
}

// Reset clears all accumulated attribute tables,
// readying the encoder for the next geometry.
func (e *Encoder) Reset() {
	e.positions.Clear()
	e.normals.Clear()
	e.uvs.Clear()
	e.vertices.Clear()
	e.indices = e.indices[:0]
}

// NumPositions returns the number of distinct positions ([FaceList]).
func (e *Encoder) NumPositions() int { return e.positions.Len() }

// NumVertices returns the number of distinct vertices ([IndexedTriangles]).
func (e *Encoder) NumVertices() int { return e.vertices.Len() }

// Encode writes the face record or the triangle indices of p as
// elements of the currently open array, registering its attribute
// values. A polygon with a corner count the mode cannot represent
// yields a [*TopologyError] and writes nothing.
func (e *Encoder) Encode(w *jsonw.Writer, p Polygon) error {
	if e.Mode == IndexedTriangles {
		return e.encodeTriangle(w, p)
	}
	return e.encodeFace(w, p)
}

func (e *Encoder) encodeFace(w *jsonw.Writer, p Polygon) error {
	n := p.NumVertices()
	if n != 3 && n != 4 {
		return &TopologyError{Mode: e.Mode, Corners: n}
	}
	mask := 0
	if n == 4 {
		mask |= FaceQuad
	}
	idx := e.indices[:0]
	for i := range n {
		idx = append(idx, e.positions.Insert(p.Position(i)))
	}
	if e.UVs {
		mask |= FaceVertexUV
		for i := range n {
			uv, _ := p.UV(i)
			idx = append(idx, e.uvs.Insert(uv))
		}
	}
	if e.Normals {
		if fn, ok := p.FaceNormal(); ok {
			mask |= FaceNormal
			idx = append(idx, e.normals.Insert(fn))
		}
		// corner 0 decides whether the polygon has vertex normals
		if _, ok := p.Normal(0); ok {
			mask |= FaceVertexNormal
			for i := range n {
				vn, ok := p.Normal(i)
				if !ok {
					vn = geom.UnitX
				}
				idx = append(idx, e.normals.Insert(vn))
			}
		}
	}
	e.indices = idx
	w.Int(mask)
	for _, v := range idx {
		w.Int(v)
	}
	return nil
}

func (e *Encoder) encodeTriangle(w *jsonw.Writer, p Polygon) error {
	n := p.NumVertices()
	if n != 3 {
		return &TopologyError{Mode: e.Mode, Corners: n}
	}
	for i := range n {
		v := geom.Vertex{Position: p.Position(i)}
		if e.Normals {
			v.Normal = e.cornerNormal(p, i)
		}
		if e.UVs {
			v.UV, _ = p.UV(i)
		}
		w.Int(e.vertices.Insert(v))
	}
	return nil
}

// cornerNormal returns the normal of corner i, falling back on the
// face normal and then on the +X axis.
func (e *Encoder) cornerNormal(p Polygon, i int) geom.Vector3 {
	if vn, ok := p.Normal(i); ok {
		return vn
	}
	if fn, ok := p.FaceNormal(); ok {
		return fn
	}
	return geom.UnitX
}

// WriteData writes the "data" member of a geometry object holding
// the given polygons, in the encoder mode. It resets the encoder first
// and stops at the first polygon that cannot be encoded.
func (e *Encoder) WriteData(w *jsonw.Writer, polys iter.Seq[Polygon]) error {
	e.Reset()
	w.StartObjectKey("data")
	if e.Mode == IndexedTriangles {
		w.StartObjectKey("attributes")
		w.StartObjectKey("index")
		w.IntProperty("itemSize", 1)
		w.Property("type", IndexType)
		w.StartArrayKey("array")
		if err := e.encodeAll(w, polys); err != nil {
			return err
		}
		w.EndArray()
		w.EndObject()
		e.WriteAttributes(w)
		w.EndObject()
	} else {
		w.StartArrayKey("faces")
		if err := e.encodeAll(w, polys); err != nil {
			return err
		}
		w.EndArray()
		e.WriteFaceData(w)
	}
	w.EndObject()
	return nil
}

func (e *Encoder) encodeAll(w *jsonw.Writer, polys iter.Seq[Polygon]) error {
	for p := range polys {
		if err := e.Encode(w, p); err != nil {
			return err
		}
	}
	return nil
}

// WriteFaceData writes the "vertices", "normals" and "uvs" members of
// the [FaceList] encoding from the accumulated tables. The normals
// and uvs members are only written when enabled.
func (e *Encoder) WriteFaceData(w *jsonw.Writer) {
	w.StartArrayKey("vertices")
	for _, p := range e.positions.All() {
		w.Floats(p.X, p.Y, p.Z)
	}
	w.EndArray()
	if e.Normals {
		w.StartArrayKey("normals")
		for _, n := range e.normals.All() {
			w.Floats(n.X, n.Y, n.Z)
		}
		w.EndArray()
	}
	if e.UVs {
		w.StartArrayKey("uvs")
		w.StartArray()
		for _, uv := range e.uvs.All() {
			w.Floats(float64(uv.X), float64(uv.Y))
		}
		w.EndArray()
		w.EndArray()
	}
}

// WriteAttributes writes the "position", "normal" and "uv" attribute
// members of the [IndexedTriangles] encoding from the accumulated
// vertices. The normal and uv members are only written when enabled.
func (e *Encoder) WriteAttributes(w *jsonw.Writer) {
	e.writeAttribute(w, "position", 3, func(v geom.Vertex) {
		w.Floats(v.Position.X, v.Position.Y, v.Position.Z)
	})
	if e.Normals {
		e.writeAttribute(w, "normal", 3, func(v geom.Vertex) {
			w.Floats(v.Normal.X, v.Normal.Y, v.Normal.Z)
		})
	}
	if e.UVs {
		e.writeAttribute(w, "uv", 2, func(v geom.Vertex) {
			w.Floats(float64(v.UV.X), float64(v.UV.Y))
		})
	}
}

func (e *Encoder) writeAttribute(w *jsonw.Writer, name string, size int, fun func(v geom.Vertex)) {
	w.StartObjectKey(name)
	w.IntProperty("itemSize", size)
	w.Property("type", AttributeType)
	w.StartArrayKey("array")
	for _, v := range e.vertices.All() {
		fun(v)
	}
	w.EndArray()
	w.EndObject()
}
