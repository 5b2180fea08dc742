// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package threejs

import (
	"fmt"
	"iter"
	"strings"

	"cogentcore.org/threeio/geom"
	"cogentcore.org/threeio/meshenc"
	"cogentcore.org/threeio/shadertree"
)

// Scene is the scene to export, as provided by the host.
type Scene interface {
	// Identity returns the unique identifier of the scene item.
	Identity() string

	// Name returns the name of the scene, or "".
	Name() string

	// Items returns all items of the scene in host order,
	// including children of other items.
	Items() iter.Seq[Item]

	// ShaderRoot returns the root of the shader tree,
	// or nil if the scene has none.
	ShaderRoot() shadertree.Item
}

// Item is an item of the scene graph.
type Item interface {
	// Identity returns the unique identifier of the item.
	Identity() string

	// Name returns the unique name of the item, used for item masks
	// of the shader tree.
	Name() string

	// Kind returns the kind of item.
	Kind() Kind

	// Visible returns whether the item is visible.
	Visible() bool

	// Parent returns the parent item, or nil for a root item.
	Parent() Item

	// Children returns the child items in order.
	Children() []Item

	// Transform returns the local transform of the item
	// relative to its parent.
	Transform() geom.Matrix4

	// Mesh returns the mesh of a [Mesh] item, or nil.
	Mesh() Mesh

	// Source returns the source item of a [MeshInstance] item, or nil.
	Source() Item
}

// Mesh is the geometry of a mesh item.
type Mesh interface {
	// NumPoints returns the number of points.
	NumPoints() int

	// Polygons returns the polygons in host order.
	Polygons() iter.Seq[Polygon]

	// HasUVs returns whether the mesh has a texture coordinate map.
	HasUVs() bool
}

// Polygon is a polygon of a [Mesh].
type Polygon interface {
	meshenc.Polygon

	// Tag returns the material tag of the polygon.
	Tag() string
}

// Kind is the type of a scene [Item].
type Kind int32

const (
	// Unsupported items are not exported.
	Unsupported Kind = iota

	// MeshItem is a polygon mesh.
	MeshItem

	// MeshInstance is an instance of a [MeshItem], sharing its geometry.
	MeshInstance

	// GroupLocator is a transform grouping other items.
	GroupLocator

	// Locator is a transform with no contents of its own.
	Locator

	numKinds
)

var kindNames = [numKinds]string{"unsupported", "mesh", "meshinst", "group", "locator"}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("Kind(%d)", int32(k))
	}
	return kindNames[k]
}

// MarshalText implements [encoding.TextMarshaler].
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
// "instance" and "null" are accepted as aliases.
func (k *Kind) UnmarshalText(text []byte) error {
	s := strings.ToLower(string(text))
	switch s {
	case "instance":
		s = "meshinst"
	case "null":
		s = "locator"
	}
	for i, nm := range kindNames {
		if s == nm {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("threejs.Kind: invalid item kind %q", text)
}

// Supported returns whether items of this kind are exported.
func (k Kind) Supported() bool {
	return k > Unsupported && k < numKinds
}

// HasGeometry returns whether items of this kind have a mesh.
func (k Kind) HasGeometry() bool {
	return k == MeshItem || k == MeshInstance
}

// Material holds the channels of a base material layer.
type Material struct {
	// Name is the display name of the material.
	Name string

	DiffuseColor  geom.Vector3
	DiffuseAmount float64

	SpecularColor  geom.Vector3
	SpecularAmount float64

	// Roughness in [0, 1] determines the shininess.
	Roughness float64

	LuminousColor geom.Vector3
	Radiance      float64

	DoubleSided bool

	// Transparency in [0, 1]; the opacity is 1 - Transparency.
	Transparency float64
}

// MaterialLayer is implemented by shader tree layers
// of the [shadertree.Material] effect.
type MaterialLayer interface {
	Material() *Material
}

// Image is the image clip used by an image map layer.
type Image struct {
	// Identity is the unique identifier of the image, used as the
	// image and texture uuid.
	Identity string

	// File is the path of the image file.
	File string

	// Format is the image file format, e.g., "PNG" or "jpg".
	// If empty, it is detected from the file contents.
	Format string
}

// ImageLayer is implemented by image map layers of the shader tree.
type ImageLayer interface {
	// Image returns the image of the layer, or false if the layer has none.
	Image() (Image, bool)
}
