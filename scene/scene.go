// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene provides an in-memory scene graph that can be exported
// with [threejs.Export]: items with local transforms, polygon meshes with
// tagged polygons, and a masked shader tree. Scenes are built in code or
// decoded from files using the [Decoders] registered by file extension.
package scene

import (
	"fmt"
	"iter"
	"strings"

	"cogentcore.org/threeio/base/errors"
	"cogentcore.org/threeio/geom"
	"cogentcore.org/threeio/shadertree"
	"cogentcore.org/threeio/threejs"
	"github.com/google/uuid"
)

// Namespace is the namespace of the name-based identities
// generated for items without an explicit id.
var Namespace = errors.Must1(uuid.Parse("6b0c1d2e-3f4a-5b6c-8d7e-9f0a1b2c3d4e"))

// Scene is an in-memory scene. It implements [threejs.Scene].
type Scene struct {

	// ID is the identity of the scene item; it is generated
	// from the name if empty.
	ID string

	// Name of the scene.
	Nm string

	// Shader is the root of the shader tree, or nil.
	Shader *ShaderNode

	// items are all items in insertion order.
	items []*Item

	// byID indexes items by identity.
	byID map[string]*Item

	// meshes are the named meshes.
	meshes map[string]*Mesh
}

// New returns a new empty [Scene] with the given name.
func New(name string) *Scene {
	return &Scene{Nm: name, byID: map[string]*Item{}, meshes: map[string]*Mesh{}}
}

// Identity implements [threejs.Scene].
func (sc *Scene) Identity() string {
	if sc.ID == "" {
		sc.ID = NameIdentity("scene", sc.Nm)
	}
	return sc.ID
}

// Name implements [threejs.Scene].
func (sc *Scene) Name() string {
	return sc.Nm
}

// Items implements [threejs.Scene].
func (sc *Scene) Items() iter.Seq[threejs.Item] {
	return func(yield func(threejs.Item) bool) {
		for _, it := range sc.items {
			if !yield(it) {
				return
			}
		}
	}
}

// ShaderRoot implements [threejs.Scene].
func (sc *Scene) ShaderRoot() shadertree.Item {
	if sc.Shader == nil {
		return nil
	}
	return sc.Shader
}

// NumItems returns the number of items.
func (sc *Scene) NumItems() int {
	return len(sc.items)
}

// ItemByID returns the item with the given identity, or nil.
func (sc *Scene) ItemByID(id string) *Item {
	return sc.byID[id]
}

// ItemByName returns the first item with the given name, or nil.
func (sc *Scene) ItemByName(name string) *Item {
	for _, it := range sc.items {
		if it.name == name {
			return it
		}
	}
	return nil
}

// NameIdentity returns a deterministic identity for the given
// name path, e.g., NameIdentity("Cube", "Mesh").
func NameIdentity(path ...string) string {
	return strings.ToUpper(uuid.NewSHA1(Namespace, []byte(strings.Join(path, "/"))).String())
}

// AddItem adds a new item of the given kind and name under the given
// parent, or as a root item if parent is nil. If id is empty, a
// deterministic identity is generated from the parent path and name.
// Identities must be unique.
func (sc *Scene) AddItem(parent *Item, id, name string, kind threejs.Kind) (*Item, error) {
	if id == "" {
		id = NameIdentity(sc.path(parent, name, len(sc.items))...)
	}
	if _, has := sc.byID[id]; has {
		return nil, fmt.Errorf("scene.AddItem: duplicate item id %q", id)
	}
	it := &Item{
		id:        id,
		name:      name,
		kind:      kind,
		visible:   true,
		transform: geom.Identity4(),
		parent:    parent,
	}
	if parent != nil {
		parent.children = append(parent.children, it)
	}
	sc.items = append(sc.items, it)
	sc.byID[id] = it
	return it, nil
}

func (sc *Scene) path(parent *Item, name string, idx int) []string {
	path := []string{sc.Nm}
	for p := parent; p != nil; p = p.parent {
		path = append(path, p.id)
	}
	return append(path, name, fmt.Sprint(idx))
}

// AddMesh adds a new empty mesh with the given name,
// replacing any mesh with the same name.
func (sc *Scene) AddMesh(name string) *Mesh {
	m := &Mesh{Name: name}
	sc.meshes[name] = m
	return m
}

// MeshByName returns the mesh with the given name, or nil.
func (sc *Scene) MeshByName(name string) *Mesh {
	return sc.meshes[name]
}

// Item is an item of a [Scene]. It implements [threejs.Item].
type Item struct {
	id        string
	name      string
	kind      threejs.Kind
	visible   bool
	transform geom.Matrix4
	parent    *Item
	children  []*Item
	mesh      *Mesh
	source    *Item
}

// Identity implements [threejs.Item].
func (it *Item) Identity() string { return it.id }

// Name implements [threejs.Item].
func (it *Item) Name() string { return it.name }

// Kind implements [threejs.Item].
func (it *Item) Kind() threejs.Kind { return it.kind }

// Visible implements [threejs.Item].
func (it *Item) Visible() bool { return it.visible }

// Transform implements [threejs.Item].
func (it *Item) Transform() geom.Matrix4 { return it.transform }

// Parent implements [threejs.Item].
func (it *Item) Parent() threejs.Item {
	if it.parent == nil {
		return nil
	}
	return it.parent
}

// Children implements [threejs.Item].
func (it *Item) Children() []threejs.Item {
	kids := make([]threejs.Item, len(it.children))
	for i, k := range it.children {
		kids[i] = k
	}
	return kids
}

// Mesh implements [threejs.Item].
func (it *Item) Mesh() threejs.Mesh {
	if it.mesh == nil {
		return nil
	}
	return it.mesh
}

// Source implements [threejs.Item].
func (it *Item) Source() threejs.Item {
	if it.source == nil {
		return nil
	}
	return it.source
}

// SetVisible sets whether the item is visible.
func (it *Item) SetVisible(visible bool) *Item {
	it.visible = visible
	return it
}

// SetTransform sets the local transform.
func (it *Item) SetTransform(m geom.Matrix4) *Item {
	it.transform = m
	return it
}

// SetMesh sets the mesh of a mesh item.
func (it *Item) SetMesh(m *Mesh) *Item {
	it.mesh = m
	return it
}

// SetSource sets the source item of a mesh instance.
func (it *Item) SetSource(src *Item) *Item {
	it.source = src
	return it
}
