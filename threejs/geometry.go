// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package threejs

import (
	"fmt"
	"iter"
	"log/slog"

	"cogentcore.org/threeio/meshenc"
)

// geometryOwners returns the items whose geometry is exported, in scene
// order: every exported mesh, and the source of every exported instance.
// Meshes with no points are skipped.
func (ex *exporter) geometryOwners() []Item {
	var owners []Item
	seen := map[string]bool{}
	for it := range ex.scene.Items() {
		if !ex.visibleForSave(it) || !it.Kind().HasGeometry() {
			continue
		}
		owner, mesh := geometryOf(it)
		if mesh == nil || mesh.NumPoints() == 0 || seen[owner.Identity()] {
			continue
		}
		seen[owner.Identity()] = true
		owners = append(owners, owner)
	}
	return owners
}

// writeGeometries writes one geometry per exported mesh and polygon tag,
// stopping at the first polygon that cannot be encoded.
func (ex *exporter) writeGeometries() error {
	for _, owner := range ex.geometryOwners() {
		mesh := owner.Mesh()
		ex.enc.UVs = ex.opts.SaveUVs && mesh.HasUVs()
		for _, tag := range ex.polyTags(owner, mesh) {
			if err := ex.writeGeometry(owner, mesh, tag); err != nil {
				return fmt.Errorf("geometry %q of mesh %q: %w", tag, owner.Name(), err)
			}
		}
	}
	return nil
}

func (ex *exporter) writeGeometry(owner Item, mesh Mesh, tag string) error {
	w := ex.w
	w.StartObject()
	w.Property("uuid", owner.Identity()+tag)
	w.Property("type", ex.enc.Mode.String())
	if err := ex.enc.WriteData(w, taggedPolygons(mesh, tag)); err != nil {
		return err
	}
	w.EndObject()
	if ex.enc.Mode == meshenc.IndexedTriangles {
		slog.Debug("wrote geometry", "uuid", owner.Identity()+tag, "vertices", ex.enc.NumVertices())
	} else {
		slog.Debug("wrote geometry", "uuid", owner.Identity()+tag, "positions", ex.enc.NumPositions())
	}
	ex.enc.Reset()
	return nil
}

// taggedPolygons returns the polygons of m with the given tag.
func taggedPolygons(m Mesh, tag string) iter.Seq[meshenc.Polygon] {
	return func(yield func(meshenc.Polygon) bool) {
		for p := range m.Polygons() {
			if p.Tag() != tag {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}
