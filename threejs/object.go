// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package threejs

import (
	"cogentcore.org/threeio/geom"
)

// exported returns whether the item is written to the object tree.
func (ex *exporter) exported(it Item) bool {
	return ex.visibleForSave(it) && it.Kind().Supported()
}

// writeScene writes the object tree, rooted at a scene object
// holding the exported root items.
func (ex *exporter) writeScene() {
	w := ex.w
	w.StartObjectKey("object")
	w.Property("uuid", ex.scene.Identity())
	if name := ex.scene.Name(); name != "" {
		w.Property("name", name)
	}
	ex.writeMatrix(geom.Identity4())
	w.Property("type", "Scene")
	w.StartArrayKey("children")
	for it := range ex.scene.Items() {
		if !ex.exported(it) || it.Parent() != nil {
			continue
		}
		w.StartObject()
		ex.writeObject(it)
		w.EndObject()
	}
	w.EndArray()
	w.EndObject()
}

func (ex *exporter) writeMatrix(m geom.Matrix4) {
	ex.w.StartArrayKey("matrix")
	ex.w.Floats(m[:]...)
	ex.w.EndArray()
}

// writeMaterialRef writes the material member for the polygons of
// the item with the given tag, if a material was written for them.
func (ex *exporter) writeMaterialRef(it Item, tag string) {
	mask, ok := ex.assigned[it.Identity()][tag]
	if ok && ex.written[mask] {
		ex.w.Property("material", mask.ID())
	}
}

// writeObject writes the members of the object of the given item,
// recursing into its exported children. A mesh with a single polygon
// tag is a Mesh object; a mesh with several tags gets one child Mesh
// object per tag.
func (ex *exporter) writeObject(it Item) {
	w := ex.w
	w.Property("uuid", it.Identity())
	if name := it.Name(); name != "" {
		w.Property("name", name)
	}
	ex.writeMatrix(it.Transform())

	var owner Item
	var tags []string
	switch it.Kind() {
	case MeshItem, MeshInstance:
		var mesh Mesh
		owner, mesh = geometryOf(it)
		if mesh != nil && mesh.NumPoints() > 0 {
			tags = ex.polyTags(owner, mesh)
		}
		if len(tags) == 1 {
			w.Property("type", "Mesh")
			w.Property("geometry", owner.Identity()+tags[0])
			ex.writeMaterialRef(it, tags[0])
		}
	case GroupLocator:
		w.Property("type", "Group")
	}
	if !it.Visible() {
		w.BoolProperty("visible", false)
	}

	var kids []Item
	for _, kid := range it.Children() {
		if ex.exported(kid) {
			kids = append(kids, kid)
		}
	}
	if len(kids) == 0 && len(tags) <= 1 {
		return
	}
	w.StartArrayKey("children")
	if len(tags) > 1 {
		for _, tag := range tags {
			w.StartObject()
			w.Property("uuid", it.Identity()+tag)
			w.Property("type", "Mesh")
			w.Property("geometry", owner.Identity()+tag)
			ex.writeMaterialRef(it, tag)
			ex.writeMatrix(geom.Identity4())
			if !it.Visible() {
				w.BoolProperty("visible", false)
			}
			w.EndObject()
		}
	}
	for _, kid := range kids {
		w.StartObject()
		ex.writeObject(kid)
		w.EndObject()
	}
	w.EndArray()
}
