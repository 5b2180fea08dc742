// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package threejs exports a host scene as a three.js JSON object
// document (format 4.3): metadata, images and textures, materials
// resolved from the shader tree, one geometry per mesh and material tag,
// and the object tree.
//
// The document is streamed to the output as it is generated. An export
// either completes or fails as a whole; a failed export leaves a partial
// document that must be discarded.
package threejs

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"cogentcore.org/threeio/base/errors"
	"cogentcore.org/threeio/jsonw"
	"cogentcore.org/threeio/meshenc"
	"cogentcore.org/threeio/shadertree"
)

var (
	// ErrUnsupportedTopology is returned when a polygon cannot be
	// represented in the selected geometry encoding.
	ErrUnsupportedTopology = meshenc.ErrUnsupportedTopology

	// ErrOutput is returned when the output could not be written.
	ErrOutput = errors.New("output could not be written")

	// ErrInternal is returned when the document could not be generated
	// for any other reason.
	ErrInternal = errors.New("export failed with unknown error")
)

// Export writes the given scene to w as a JSON document with the given
// options, which are the [DefaultOptions] if nil. It logs the outcome
// and returns an error wrapping [ErrUnsupportedTopology], [ErrOutput]
// or [ErrInternal] on failure.
func Export(w io.Writer, sc Scene, opts *Options) (err error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	ex := newExporter(w, sc, opts)
	defer func() {
		if r := recover(); r != nil {
			ge, ok := r.(*jsonw.GrammarError)
			if !ok {
				panic(r)
			}
			err = fmt.Errorf("%w: %w", ErrInternal, ge)
		}
		ex.enc.Reset()
		if err != nil {
			slog.Error(FailureMessage(err), "err", err)
			return
		}
		slog.Info("scene saved successfully")
	}()
	if err := ex.write(); err != nil {
		return err
	}
	if err := ex.w.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}
	return nil
}

// FailureMessage returns the user message for the category
// of the given export error.
func FailureMessage(err error) string {
	var te *meshenc.TopologyError
	switch {
	case errors.As(err, &te) && te.Mode == meshenc.IndexedTriangles:
		return "when exporting as BufferGeometry, only triangles are supported"
	case errors.Is(err, ErrUnsupportedTopology):
		return "ngons are not supported"
	case errors.Is(err, ErrOutput):
		return ErrOutput.Error()
	}
	return ErrInternal.Error()
}

// exporter holds the state of one export.
type exporter struct {
	w     *jsonw.Writer
	scene Scene
	opts  *Options
	enc   *meshenc.Encoder

	// shader is the root of the shader tree.
	shader shadertree.Item

	// tags are the sorted polygon tags by mesh item identity.
	tags map[string][]string

	// assigned are the material masks by item identity and polygon tag.
	assigned map[string]map[string]shadertree.Mask

	// written are the masks for which a material has been written.
	written map[shadertree.Mask]bool
}

func newExporter(w io.Writer, sc Scene, opts *Options) *exporter {
	jw := jsonw.NewWriter(w).
		SetPretty(opts.Pretty).
		SetPrecision(opts.Precision).
		SetIndent(opts.Indent, opts.IndentWidth)
	return &exporter{
		w:        jw,
		scene:    sc,
		opts:     opts,
		enc:      meshenc.New(opts.Geometry, opts.SaveNormals, false),
		shader:   sc.ShaderRoot(),
		tags:     map[string][]string{},
		assigned: map[string]map[string]shadertree.Mask{},
		written:  map[shadertree.Mask]bool{},
	}
}

func (ex *exporter) write() error {
	w := ex.w
	w.StartObject()

	w.StartObjectKey("metadata")
	w.Property("version", FormatVersion)
	w.Property("type", "Object")
	w.Property("generator", ex.opts.Generator)
	w.EndObject()

	ex.writeMaterials()

	w.StartArrayKey("geometries")
	if err := ex.writeGeometries(); err != nil {
		return err
	}
	w.EndArray()

	ex.writeScene()

	w.EndObject()
	return nil
}

// visibleForSave returns whether the item is exported at all.
func (ex *exporter) visibleForSave(it Item) bool {
	return ex.opts.SaveHidden || it.Visible()
}

// geometryOf returns the item owning the geometry of the given item
// and its mesh: the item itself for a mesh, and the source item for
// an instance.
func geometryOf(it Item) (Item, Mesh) {
	switch it.Kind() {
	case MeshItem:
		return it, it.Mesh()
	case MeshInstance:
		src := it.Source()
		if src == nil {
			return nil, nil
		}
		return src, src.Mesh()
	}
	return nil, nil
}

// polyTags returns the sorted distinct polygon tags of the mesh
// of the given owner item.
func (ex *exporter) polyTags(owner Item, m Mesh) []string {
	id := owner.Identity()
	if tags, ok := ex.tags[id]; ok {
		return tags
	}
	var tags []string
	for p := range m.Polygons() {
		tags = append(tags, p.Tag())
	}
	slices.Sort(tags)
	tags = slices.Compact(tags)
	ex.tags[id] = tags
	return tags
}
