// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ordmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	var om Map[string, int]
	for i, k := range []string{"key0", "key1", "key2"} {
		idx, added := om.AddUnique(k, i)
		assert.Equal(t, i, idx)
		assert.True(t, added)
	}
	assert.Equal(t, 3, om.Len())
	assert.Equal(t, []string{"key0", "key1", "key2"}, om.Keys())

	idx, ok := om.IndexByKeyTry("key1")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "key2", om.KeyByIndex(2))
	_, ok = om.IndexByKeyTry("nope")
	assert.False(t, ok)

	om.Reset()
	assert.Equal(t, 0, om.Len())
	_, ok = om.IndexByKeyTry("key0")
	assert.False(t, ok)
	idx, added := om.AddUnique("key2", 5)
	assert.Equal(t, 0, idx)
	assert.True(t, added)
}

func TestAddUnique(t *testing.T) {
	var om Map[string, string]
	idx, added := om.AddUnique("a", "first")
	assert.Equal(t, 0, idx)
	assert.True(t, added)

	idx, added = om.AddUnique("b", "second")
	assert.Equal(t, 1, idx)
	assert.True(t, added)

	idx, added = om.AddUnique("a", "replaced?")
	assert.Equal(t, 0, idx)
	assert.False(t, added)
	assert.Equal(t, "first", om.Order[0].Value)

	var nilMap *Map[int, int]
	assert.Equal(t, 0, nilMap.Len())
}
