// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package threejs

import (
	"cogentcore.org/threeio/base/indent"
	"cogentcore.org/threeio/jsonw"
	"cogentcore.org/threeio/meshenc"
)

// FormatVersion is the version of the document format written.
const FormatVersion = "4.3"

// DefaultGenerator is the default generator name written to the metadata.
const DefaultGenerator = "threeio"

// Options are the user options of an export.
type Options struct {

	// SaveHidden exports hidden items, marked as not visible.
	SaveHidden bool

	// SaveNormals exports face and vertex normals.
	SaveNormals bool

	// SaveUVs exports texture coordinates of meshes that have them.
	SaveUVs bool

	// EmbedImages embeds image files as data URIs
	// instead of referring to them by file name.
	EmbedImages bool

	// Geometry is the geometry encoding.
	Geometry meshenc.Mode

	// Precision is the number of fractional digits of floating point numbers.
	Precision int

	// Pretty enables newlines and indentation.
	Pretty bool

	// Indent is the indentation character for pretty output.
	Indent indent.Character

	// IndentWidth is the number of spaces per level when indenting with spaces.
	IndentWidth int

	// Generator is the generator name written to the metadata.
	Generator string
}

// Defaults sets the default options.
func (o *Options) Defaults() {
	*o = Options{
		SaveUVs:     true,
		Geometry:    meshenc.FaceList,
		Precision:   jsonw.MaxPrecision,
		Pretty:      true,
		Indent:      indent.Tab,
		IndentWidth: 2,
		Generator:   DefaultGenerator,
	}
}

// DefaultOptions returns new default [Options].
func DefaultOptions() *Options {
	o := &Options{}
	o.Defaults()
	return o
}
