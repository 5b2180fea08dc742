// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package buffer provides [Builder], a content-addressed attribute buffer
// that assigns dense, stable indexes to distinct values. It is the classic
// vertex cache: a mesh traversal visits polygon corners with heavy
// repetition of shared vertices, and the builder turns that stream into a
// compact list of unique values plus small integer indexes into it.
package buffer

import (
	"iter"

	"cogentcore.org/threeio/base/ordmap"
)

// Builder assigns a 0-based index to each distinct value inserted into it,
// in first-insertion order. Values are compared with ==, so floating point
// tuples are matched exactly, with no tolerance. A value containing NaN is
// never equal to itself and always gets a new index.
//
// The zero value is an empty builder ready to use.
// A Builder is not safe for concurrent use.
type Builder[T comparable] struct {
	items ordmap.Map[T, struct{}]
}

// New returns a new empty [Builder].
func New[T comparable]() *Builder[T] {
	return &Builder[T]{}
}

// Insert returns the index of the given value, adding it at the end
// if it has not been seen since the last [Builder.Clear].
// Repeated insertion of an equal value returns the same index.
func (b *Builder[T]) Insert(v T) int {
	idx, _ := b.items.AddUnique(v, struct{}{})
	return idx
}

// Index returns the index of the given value, or false if it
// has not been inserted.
func (b *Builder[T]) Index(v T) (int, bool) {
	return b.items.IndexByKeyTry(v)
}

// Len returns the number of distinct values.
func (b *Builder[T]) Len() int {
	return b.items.Len()
}

// At returns the value with the given index.
func (b *Builder[T]) At(idx int) T {
	return b.items.KeyByIndex(idx)
}

// Values returns the distinct values in index order.
func (b *Builder[T]) Values() []T {
	return b.items.Keys()
}

// All returns an iterator over index, value pairs in index order.
func (b *Builder[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, kv := range b.items.Order {
			if !yield(i, kv.Key) {
				return
			}
		}
	}
}

// Clear resets the builder to the empty state;
// the next inserted value gets index 0.
func (b *Builder[T]) Clear() {
	b.items.Reset()
}
