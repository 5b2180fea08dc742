// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package ordmap implements an ordered map that retains the order of items
added to a slice, while also providing fast key-based map lookup of items,
using the Go generics system.

The slice structure holds the Key and Value for items as they are added,
and the map holds the index into the slice. Only adding is supported:
the exporter builds these maps once per pass and then resets them,
so indexes handed out for a key stay valid until [Map.Reset].
*/
package ordmap

// KeyValue represents a key-value pair.
type KeyValue[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is a generic ordered map that combines the order of a slice
// and the fast key lookup of a map. A map stores an index
// into a slice that has the value and key associated with the value.
type Map[K comparable, V any] struct {

	// Order is an ordered list of values and associated keys, in the order added.
	Order []KeyValue[K, V]

	// Map is the key to index mapping.
	Map map[K]int
}

// initMap makes the index map if it is nil.
func (om *Map[K, V]) initMap() {
	if om.Map == nil {
		om.Map = make(map[K]int)
	}
}

// Reset resets the map, removing any existing elements.
// The order slice keeps its capacity for reuse.
func (om *Map[K, V]) Reset() {
	om.Map = nil
	om.Order = om.Order[:0]
}

// AddUnique adds the given value for the given key only if the key
// is not yet present. It returns the index of the key and whether
// it was added by this call. An existing value is never replaced.
func (om *Map[K, V]) AddUnique(key K, val V) (int, bool) {
	om.initMap()
	if idx, has := om.Map[key]; has {
		return idx, false
	}
	idx := len(om.Order)
	om.Map[key] = idx
	om.Order = append(om.Order, KeyValue[K, V]{Key: key, Value: val})
	return idx, true
}

// IndexByKeyTry returns the index of the given key, with false for a missing key.
func (om *Map[K, V]) IndexByKeyTry(key K) (int, bool) {
	idx, ok := om.Map[key]
	return idx, ok
}

// KeyByIndex returns the key for the given index in the ordered slice.
func (om *Map[K, V]) KeyByIndex(idx int) K {
	return om.Order[idx].Key
}

// Len returns the number of items in the map.
func (om *Map[K, V]) Len() int {
	if om == nil {
		return 0
	}
	return len(om.Order)
}

// Keys returns a slice of the keys in order.
func (om *Map[K, V]) Keys() []K {
	kl := make([]K, om.Len())
	for i, kv := range om.Order {
		kl[i] = kv.Key
	}
	return kl
}
