// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shadertree

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type node struct {
	name     string
	mask     bool
	disabled bool
	tag      string
	item     string
	effect   Effect
	kids     []*node
}

func (n *node) Children() []Item {
	items := make([]Item, len(n.kids))
	for i, k := range n.kids {
		items[i] = k
	}
	return items
}

func (n *node) IsMask() bool { return n.mask }
func (n *node) Enabled() bool { return !n.disabled }
func (n *node) PolyTag() string { return n.tag }
func (n *node) ItemMask() string { return n.item }
func (n *node) Effect() Effect { return n.effect }

func names(layers []Layer) []string {
	var nms []string
	for _, l := range layers {
		nms = append(nms, l.Item.(*node).name)
	}
	return nms
}

func TestResolveDisabledSubtree(t *testing.T) {
	l1 := &node{name: "L1", effect: Material}
	l2 := &node{name: "L2", effect: Material}
	root := &node{kids: []*node{
		{mask: true, disabled: true, tag: "A", kids: []*node{l1}},
		{mask: true, tag: "B", kids: []*node{l2}},
	}}

	layers := Resolve(root, Query{PolyTag: "B"})
	assert.Equal(t, []string{"L2"}, names(layers))
	assert.Equal(t, Mask{Poly: "B"}, layers[0].Mask)

	assert.Empty(t, Resolve(root, Query{PolyTag: "A"}))
}

func TestResolveNilRoot(t *testing.T) {
	assert.Empty(t, Resolve(nil, Query{PolyTag: "A"}))
}

func TestResolveItemMask(t *testing.T) {
	base := &node{name: "base", effect: Material}
	cube := &node{name: "cube", effect: Material}
	src := &node{name: "src", effect: Material}
	root := &node{kids: []*node{
		base,
		{mask: true, item: "Cube", kids: []*node{cube}},
		{mask: true, item: "Source", kids: []*node{src}},
	}}

	layers := Resolve(root, Query{ItemMask: "Cube"})
	assert.Equal(t, []string{"base", "cube"}, names(layers))
	assert.Equal(t, Mask{}, layers[0].Mask)
	assert.Equal(t, Mask{Item: "Cube"}, layers[1].Mask)

	layers = Resolve(root, Query{ItemMask: "Instance", SourceMask: "Source"})
	assert.Equal(t, []string{"base", "src"}, names(layers))
	assert.Equal(t, Mask{Item: "Source"}, layers[1].Mask)
}

func TestResolveCarriesMaskDown(t *testing.T) {
	leaf := &node{name: "leaf", effect: DiffuseMap}
	inner := &node{name: "inner", effect: Material}
	root := &node{kids: []*node{
		{mask: true, item: "Cube", kids: []*node{
			{mask: true, kids: []*node{leaf}},
			{mask: true, tag: "red", kids: []*node{inner}},
		}},
	}}

	layers := Resolve(root, Query{PolyTag: "red", ItemMask: "Cube"})
	require.Len(t, layers, 2)
	assert.Equal(t, Mask{Item: "Cube"}, layers[0].Mask)
	assert.Equal(t, Mask{Item: "Cube", Poly: "red"}, layers[1].Mask)

	layers = Resolve(root, Query{PolyTag: "blue", ItemMask: "Cube"})
	assert.Equal(t, []string{"leaf"}, names(layers))
}

func TestResolveLayersAreLeaves(t *testing.T) {
	hidden := &node{name: "hidden", effect: Material}
	root := &node{kids: []*node{
		{name: "group", kids: []*node{hidden}},
	}}
	assert.Equal(t, []string{"group"}, names(Resolve(root, Query{})))
}

func TestSelectLastWins(t *testing.T) {
	m1 := &node{name: "m1", effect: Material}
	m2 := &node{name: "m2", effect: Material}
	m3 := &node{name: "m3", effect: Material, disabled: true}
	d1 := &node{name: "d1", effect: DiffuseMap}
	b1 := &node{name: "b1", effect: BumpMap}
	other := &node{name: "other"}
	root := &node{kids: []*node{
		m1, d1,
		{mask: true, tag: "A", kids: []*node{m2, other}},
		b1, m3,
	}}

	sel := Select(Resolve(root, Query{PolyTag: "A"}))
	l, ok := sel.Get(Material)
	require.True(t, ok)
	assert.Equal(t, "m2", l.Item.(*node).name)
	assert.Equal(t, Mask{Poly: "A"}, sel.Mask())

	l, ok = sel.Get(DiffuseMap)
	require.True(t, ok)
	assert.Equal(t, "d1", l.Item.(*node).name)
	_, ok = sel.Get(SpecularMap)
	assert.False(t, ok)
	_, ok = sel.Get(NoEffect)
	assert.False(t, ok)

	sel = Select(Resolve(root, Query{PolyTag: "B"}))
	l, ok = sel.Get(Material)
	require.True(t, ok)
	assert.Equal(t, "m1", l.Item.(*node).name)
	assert.Equal(t, Mask{}, sel.Mask())
}

func TestMaskOrder(t *testing.T) {
	masks := []Mask{{"b", ""}, {"", "z"}, {"a", "y"}, {"a", "x"}}
	slices.SortFunc(masks, Mask.Compare)
	assert.Equal(t, []Mask{{"", "z"}, {"a", "x"}, {"a", "y"}, {"b", ""}}, masks)
	assert.Equal(t, "a.x", masks[1].ID())
}

func TestEffectText(t *testing.T) {
	var e Effect
	require.NoError(t, e.UnmarshalText([]byte("Luminous")))
	assert.Equal(t, EmissiveMap, e)
	require.NoError(t, e.UnmarshalText([]byte("bump")))
	assert.Equal(t, BumpMap, e)
	assert.True(t, e.IsMap())
	assert.False(t, Material.IsMap())
	assert.Error(t, e.UnmarshalText([]byte("gradient")))
}
