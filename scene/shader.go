// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cogentcore.org/threeio/shadertree"
	"cogentcore.org/threeio/threejs"
)

// ShaderNode is a node of the shader tree of a [Scene]: either a mask
// node gating its layers, or a layer. It implements [shadertree.Item],
// [threejs.MaterialLayer] and [threejs.ImageLayer].
type ShaderNode struct {

	// Name of the node.
	Name string

	// Mask makes this a mask node.
	Mask bool

	// Disabled turns the node off, and for a mask its whole subtree.
	Disabled bool

	// Tag is the polygon tag filter of a mask node.
	Tag string

	// Item is the item name filter of a mask node.
	Item string

	// Class is the effect class of a layer.
	Class shadertree.Effect

	// Mat is the material of a material layer.
	Mat *threejs.Material

	// Img is the image of an image map layer.
	Img *threejs.Image

	// Layers are the child nodes, bottom of the stack first.
	Layers []*ShaderNode
}

// NewShaderRoot returns a new empty shader tree root.
func NewShaderRoot() *ShaderNode {
	return &ShaderNode{Name: "Render", Mask: true}
}

// AddMask adds a new mask node filtering by the given
// polygon tag and item name, either of which may be "".
func (sn *ShaderNode) AddMask(name, tag, item string) *ShaderNode {
	m := &ShaderNode{Name: name, Mask: true, Tag: tag, Item: item}
	sn.Layers = append(sn.Layers, m)
	return m
}

// AddMaterial adds a new material layer.
func (sn *ShaderNode) AddMaterial(mat *threejs.Material) *ShaderNode {
	l := &ShaderNode{Name: mat.Name, Class: shadertree.Material, Mat: mat}
	sn.Layers = append(sn.Layers, l)
	return l
}

// AddImageMap adds a new image map layer with the given effect.
func (sn *ShaderNode) AddImageMap(effect shadertree.Effect, img threejs.Image) *ShaderNode {
	l := &ShaderNode{Name: img.Identity, Class: effect, Img: &img}
	sn.Layers = append(sn.Layers, l)
	return l
}

// Children implements [shadertree.Item].
func (sn *ShaderNode) Children() []shadertree.Item {
	items := make([]shadertree.Item, len(sn.Layers))
	for i, l := range sn.Layers {
		items[i] = l
	}
	return items
}

// IsMask implements [shadertree.Item].
func (sn *ShaderNode) IsMask() bool { return sn.Mask }

// Enabled implements [shadertree.Item].
func (sn *ShaderNode) Enabled() bool { return !sn.Disabled }

// PolyTag implements [shadertree.Item].
func (sn *ShaderNode) PolyTag() string { return sn.Tag }

// ItemMask implements [shadertree.Item].
func (sn *ShaderNode) ItemMask() string { return sn.Item }

// Effect implements [shadertree.Item].
func (sn *ShaderNode) Effect() shadertree.Effect { return sn.Class }

// Material implements [threejs.MaterialLayer].
func (sn *ShaderNode) Material() *threejs.Material { return sn.Mat }

// Image implements [threejs.ImageLayer].
func (sn *ShaderNode) Image() (threejs.Image, bool) {
	if sn.Img == nil {
		return threejs.Image{}, false
	}
	return *sn.Img, true
}
