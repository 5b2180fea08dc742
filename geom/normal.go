// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

// Normal returns the unit normal of the triangle a, b, c with
// counter-clockwise winding, or the zero vector for a degenerate triangle.
func Normal(a, b, c Vector3) Vector3 {
	return b.Sub(a).Cross(c.Sub(a)).Normal()
}

// PolygonNormal returns the unit normal of the given planar polygon using
// Newell's method, which is robust for concave polygons and quads that are
// slightly non-planar. It returns false if the polygon is degenerate.
func PolygonNormal(pts []Vector3) (Vector3, bool) {
	if len(pts) < 3 {
		return Vector3{}, false
	}
	if len(pts) == 3 {
		n := Normal(pts[0], pts[1], pts[2])
		return n, n != (Vector3{})
	}
	var n Vector3
	for i, cur := range pts {
		nxt := pts[(i+1)%len(pts)]
		n.X += (cur.Y - nxt.Y) * (cur.Z + nxt.Z)
		n.Y += (cur.Z - nxt.Z) * (cur.X + nxt.X)
		n.Z += (cur.X - nxt.X) * (cur.Y + nxt.Y)
	}
	n = n.Normal()
	return n, n != (Vector3{})
}
