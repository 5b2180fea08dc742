// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

// Vertex is the combined attribute tuple of one indexed-triangle corner.
type Vertex struct {
	Position Vector3
	Normal   Vector3
	UV       Vector2
}

// NewVertex returns a new [Vertex] from the given attributes.
func NewVertex(pos, norm Vector3, uv Vector2) Vertex {
	return Vertex{Position: pos, Normal: norm, UV: uv}
}

// Compare orders vertices by position, then normal, then uv.
func (vt Vertex) Compare(o Vertex) int {
	if c := vt.Position.Compare(o.Position); c != 0 {
		return c
	}
	if c := vt.Normal.Compare(o.Normal); c != 0 {
		return c
	}
	return vt.UV.Compare(o.UV)
}
