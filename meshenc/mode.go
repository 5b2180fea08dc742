// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meshenc

import (
	"fmt"
	"strings"

	"cogentcore.org/threeio/base/errors"
)

// Mode is the wire encoding used for the polygons of a geometry.
type Mode int32

const (
	// FaceList is the legacy "Geometry" encoding: each polygon is a
	// variable-length record in a flat faces array, prefixed by a
	// bitmask that tells which index fields follow. Triangles and
	// quads are supported.
	FaceList Mode = iota

	// IndexedTriangles is the "BufferGeometry" encoding: every corner
	// is a combined vertex in flat attribute arrays, referenced by a
	// flat index array. Only triangles are supported.
	IndexedTriangles
)

// String returns the geometry type name written to the document,
// "Geometry" or "BufferGeometry".
func (m Mode) String() string {
	switch m {
	case FaceList:
		return "Geometry"
	case IndexedTriangles:
		return "BufferGeometry"
	}
	return fmt.Sprintf("Mode(%d)", int32(m))
}

// MarshalText implements [encoding.TextMarshaler].
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(m.String())), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler]. It accepts the
// type names in any case, plus "faces" and "buffer" as short forms.
func (m *Mode) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "geometry", "faces", "facelist":
		*m = FaceList
	case "buffergeometry", "buffer", "triangles":
		*m = IndexedTriangles
	default:
		return fmt.Errorf("meshenc.Mode: invalid geometry type %q", text)
	}
	return nil
}

// Set implements the pflag.Value interface so a Mode can be a flag.
func (m *Mode) Set(s string) error {
	return m.UnmarshalText([]byte(s))
}

// Type implements the pflag.Value interface.
func (m *Mode) Type() string {
	return "geometry"
}

// ErrUnsupportedTopology is the base error for a polygon whose corner
// count cannot be represented in the selected [Mode]. It aborts the export.
var ErrUnsupportedTopology = errors.New("unsupported polygon topology")

// TopologyError reports the offending corner count; it unwraps
// to [ErrUnsupportedTopology].
type TopologyError struct {
	Mode    Mode
	Corners int
}

func (e *TopologyError) Error() string {
	switch e.Mode {
	case IndexedTriangles:
		return fmt.Sprintf("%v: %s only supports triangles, got a polygon with %d corners", ErrUnsupportedTopology, e.Mode, e.Corners)
	default:
		return fmt.Sprintf("%v: %s only supports triangles and quads, got a polygon with %d corners", ErrUnsupportedTopology, e.Mode, e.Corners)
	}
}

func (e *TopologyError) Unwrap() error {
	return ErrUnsupportedTopology
}
