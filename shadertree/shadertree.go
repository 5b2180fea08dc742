// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shadertree resolves which layers of a masked shader tree apply
// to a given polygon tag and item, and selects the winning layer of each
// effect class.
//
// A shader tree is a stack of layers in document order, where mask nodes
// group layers and gate them by polygon tag and item name. Later layers
// are higher in the stack and override earlier ones.
package shadertree

import (
	"cmp"
	"fmt"
	"strings"
)

// Item is a node of a shader tree, as provided by the host.
type Item interface {
	// Children returns the child nodes in document order.
	Children() []Item

	// IsMask returns whether the node is a mask node gating its children.
	// Other nodes are layers, whose children are never visited.
	IsMask() bool

	// Enabled returns the enable flag of the node.
	Enabled() bool

	// PolyTag returns the polygon tag filter of a mask node,
	// or "" if it does not filter by polygon tag.
	PolyTag() string

	// ItemMask returns the name of the item a mask node is linked to,
	// or "" if it does not filter by item.
	ItemMask() string

	// Effect returns the effect class of a layer.
	Effect() Effect
}

// Mask identifies one resolved material variant: the item name and
// polygon tag a layer was matched with. "" in either field means that
// nothing constrained it.
type Mask struct {
	Item string
	Poly string
}

// ID returns the "item.poly" identifier of the mask.
func (m Mask) ID() string {
	return m.Item + "." + m.Poly
}

func (m Mask) String() string {
	return m.ID()
}

// Compare orders masks by item, then polygon tag.
func (m Mask) Compare(o Mask) int {
	if c := cmp.Compare(m.Item, o.Item); c != 0 {
		return c
	}
	return cmp.Compare(m.Poly, o.Poly)
}

// Layer is a layer of the tree together with the mask it was reached with.
type Layer struct {
	Mask Mask
	Item Item
}

// Query selects the layers that apply to polygons with the given tag
// on the given item. SourceMask is the name of the source mesh when the
// item is an instance; masks linked to either name match.
type Query struct {
	PolyTag    string
	ItemMask   string
	SourceMask string
}

// Resolve returns the layers of the tree below root that apply to the
// query, in document order. Each mask node on the way must be enabled,
// and its polygon tag and item filters, if set, must match; otherwise its
// whole subtree is skipped. A matching mask node overwrites the fields it
// filters on in the mask passed down to its subtree. A nil root has no
// layers.
func Resolve(root Item, q Query) []Layer {
	if root == nil {
		return nil
	}
	return q.resolve(root, Mask{}, nil)
}

func (q Query) resolve(node Item, mask Mask, layers []Layer) []Layer {
	for _, child := range node.Children() {
		if !child.IsMask() {
			layers = append(layers, Layer{Mask: mask, Item: child})
			continue
		}
		cm, ok := q.match(child, mask)
		if !ok {
			continue
		}
		layers = q.resolve(child, cm, layers)
	}
	return layers
}

// match returns the mask for the subtree of the given mask node,
// and whether the subtree applies at all.
func (q Query) match(node Item, mask Mask) (Mask, bool) {
	if !node.Enabled() {
		return mask, false
	}
	if tag := node.PolyTag(); tag != "" {
		if tag != q.PolyTag {
			return mask, false
		}
		mask.Poly = tag
	}
	if name := node.ItemMask(); name != "" {
		if name != q.ItemMask && name != q.SourceMask {
			return mask, false
		}
		mask.Item = name
	}
	return mask, true
}

// Effect is the semantic class of a layer.
type Effect int32

const (
	// NoEffect is a layer that does not take part in material selection.
	NoEffect Effect = iota

	// Material is a base material layer.
	Material

	// DiffuseMap is an image map driving the diffuse color.
	DiffuseMap

	// SpecularMap is an image map driving the specular color.
	SpecularMap

	// EmissiveMap is an image map driving the luminous color.
	EmissiveMap

	// BumpMap is an image map driving the surface bump.
	BumpMap

	numEffects
)

var effectNames = [numEffects]string{"none", "material", "diffuse", "specular", "emissive", "bump"}

func (e Effect) String() string {
	if e < 0 || e >= numEffects {
		return fmt.Sprintf("Effect(%d)", int32(e))
	}
	return effectNames[e]
}

// IsMap returns whether the effect is one of the image map classes.
func (e Effect) IsMap() bool {
	return e >= DiffuseMap && e < numEffects
}

// MarshalText implements [encoding.TextMarshaler].
func (e Effect) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler]. It accepts the
// effect names, with "luminous" as an alias of "emissive".
func (e *Effect) UnmarshalText(text []byte) error {
	s := strings.ToLower(string(text))
	if s == "luminous" {
		s = "emissive"
	}
	for i, nm := range effectNames {
		if s == nm {
			*e = Effect(i)
			return nil
		}
	}
	return fmt.Errorf("shadertree.Effect: invalid effect %q", text)
}

// Selection is the winning layer of each effect class.
type Selection struct {
	layers [numEffects]Layer
	found  [numEffects]bool
}

// Select scans the given layers in order, skipping disabled ones, and
// keeps the last layer of each effect class: higher layers in the stack
// override lower ones.
func Select(layers []Layer) Selection {
	var s Selection
	for _, l := range layers {
		if !l.Item.Enabled() {
			continue
		}
		e := l.Item.Effect()
		if e <= NoEffect || e >= numEffects {
			continue
		}
		s.layers[e] = l
		s.found[e] = true
	}
	return s
}

// Get returns the winning layer of the given effect class, if any.
func (s *Selection) Get(e Effect) (Layer, bool) {
	if e <= NoEffect || e >= numEffects {
		return Layer{}, false
	}
	return s.layers[e], s.found[e]
}

// Mask returns the mask of the winning material layer,
// or the unconstrained mask if there is none.
func (s *Selection) Mask() Mask {
	return s.layers[Material].Mask
}
