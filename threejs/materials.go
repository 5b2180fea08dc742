// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package threejs

import (
	"bytes"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"cogentcore.org/threeio/geom"
	"cogentcore.org/threeio/shadertree"
	"github.com/h2non/filetype"
)

// PackColor packs the given RGB intensities in [0, 1] into a 0xRRGGBB
// integer. Each channel is clamped to [0, 1], scaled by 255 and truncated.
func PackColor(c geom.Vector3) int {
	return channel(c.X)<<16 | channel(c.Y)<<8 | channel(c.Z)
}

func channel(v float64) int {
	if !(v > 0) {
		return 0
	}
	return int(min(v, 1)*255) & 0xff
}

// discoverMaterials resolves the material mask of every polygon tag of
// every exported mesh and instance, recording it for the object tree,
// and returns the distinct masks and the images of all enabled image
// layers, sorted.
func (ex *exporter) discoverMaterials() ([]shadertree.Mask, []Image) {
	masks := map[shadertree.Mask]struct{}{}
	images := map[string]Image{}
	for it := range ex.scene.Items() {
		if !ex.visibleForSave(it) || !it.Kind().HasGeometry() {
			continue
		}
		owner, mesh := geometryOf(it)
		if mesh == nil {
			continue
		}
		q := shadertree.Query{ItemMask: it.Name()}
		if it.Kind() == MeshInstance {
			q.SourceMask = owner.Name()
		}
		byTag := map[string]shadertree.Mask{}
		for _, tag := range ex.polyTags(owner, mesh) {
			q.PolyTag = tag
			layers := shadertree.Resolve(ex.shader, q)
			for _, l := range layers {
				if !l.Item.Enabled() {
					continue
				}
				if img, ok := imageOf(l.Item); ok {
					images[img.Identity] = img
				}
			}
			sel := shadertree.Select(layers)
			mask := sel.Mask()
			masks[mask] = struct{}{}
			byTag[tag] = mask
		}
		ex.assigned[it.Identity()] = byTag
	}
	ms := slices.SortedFunc(maps.Keys(masks), shadertree.Mask.Compare)
	imgs := slices.SortedFunc(maps.Values(images), func(a, b Image) int {
		return strings.Compare(a.Identity, b.Identity)
	})
	return ms, imgs
}

func imageOf(it shadertree.Item) (Image, bool) {
	il, ok := it.(ImageLayer)
	if !ok {
		return Image{}, false
	}
	return il.Image()
}

// writeMaterials writes the images, textures and materials arrays.
func (ex *exporter) writeMaterials() {
	masks, images := ex.discoverMaterials()
	ex.writeImages(images)

	w := ex.w
	w.StartArrayKey("materials")
	for _, mask := range masks {
		if ex.writeMaterial(mask) {
			ex.written[mask] = true
		}
	}
	w.EndArray()
}

func (ex *exporter) writeImages(images []Image) {
	w := ex.w
	w.StartArrayKey("images")
	for _, img := range images {
		w.StartObject()
		w.Property("uuid", img.Identity)
		w.Key("url")
		ex.writeImageURL(img)
		w.EndObject()
	}
	w.EndArray()

	w.StartArrayKey("textures")
	for _, img := range images {
		w.StartObject()
		w.Property("uuid", img.Identity)
		w.Property("image", img.Identity)
		w.EndObject()
	}
	w.EndArray()
}

// writeImageURL writes the url of the given image: a data URI if
// embedding, else the base name of the file. An image file that
// cannot be opened is referred to by name.
func (ex *exporter) writeImageURL(img Image) {
	if !ex.opts.EmbedImages {
		ex.w.String(filepath.Base(img.File))
		return
	}
	f, err := os.Open(img.File)
	if err != nil {
		slog.Warn("image could not be embedded", "image", img.Identity, "err", err)
		ex.w.String(filepath.Base(img.File))
		return
	}
	defer f.Close()
	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		slog.Warn("image could not be read", "image", img.Identity, "err", err)
	}
	head = head[:n]
	mime := ImageMIME(img.Format, img.File, head)
	if err := ex.w.DataURI(io.MultiReader(bytes.NewReader(head), f), mime); err != nil {
		slog.Warn("image could not be read", "image", img.Identity, "err", err)
	}
}

// ImageMIME returns the MIME type of an image with the given format
// name, e.g., "JPG" gives "image/jpeg". If format is empty, the type is
// detected from the leading bytes of the file, and failing that from
// the file name extension.
func ImageMIME(format, file string, head []byte) string {
	if format == "" {
		if kind, err := filetype.Image(head); err == nil && kind != filetype.Unknown {
			return kind.MIME.Value
		}
		format = strings.TrimPrefix(filepath.Ext(file), ".")
	}
	format = strings.ToLower(format)
	if format == "jpg" {
		format = "jpeg"
	}
	return "image/" + format
}

// writeMaterial writes the material of the given mask: the last enabled
// base material of the layers it resolves to, with the last enabled
// image map of each map effect. It returns false and writes nothing if
// there is no material.
func (ex *exporter) writeMaterial(mask shadertree.Mask) bool {
	sel := shadertree.Select(shadertree.Resolve(ex.shader, shadertree.Query{PolyTag: mask.Poly, ItemMask: mask.Item}))
	ml, ok := sel.Get(shadertree.Material)
	if !ok {
		return false
	}
	mtl, ok := ml.Item.(MaterialLayer)
	if !ok || mtl.Material() == nil {
		return false
	}
	m := mtl.Material()
	slog.Debug("writing material", "mask", mask, "name", m.Name)

	w := ex.w
	w.StartObject()
	w.Property("uuid", mask.ID())
	w.Property("type", "MeshPhongMaterial")
	w.Property("name", m.Name)
	if m.DiffuseAmount > 0 {
		w.IntProperty("color", PackColor(m.DiffuseColor.MulScalar(m.DiffuseAmount)))
	}
	if m.SpecularAmount > 0 {
		w.IntProperty("specular", PackColor(m.SpecularColor.MulScalar(m.SpecularAmount)))
	}
	w.IntProperty("shininess", int((1-m.Roughness)*100))
	if m.Radiance > 0 {
		w.IntProperty("emissive", PackColor(m.LuminousColor.MulScalar(m.Radiance)))
	}
	if m.DoubleSided {
		w.IntProperty("side", 2)
	}
	if m.Transparency > 0 {
		w.FloatProperty("opacity", 1-m.Transparency)
		w.BoolProperty("transparent", true)
	}
	texMaps := []struct {
		key    string
		effect shadertree.Effect
	}{
		{"map", shadertree.DiffuseMap},
		{"specularMap", shadertree.SpecularMap},
		{"envMap", shadertree.EmissiveMap},
		{"bumpMap", shadertree.BumpMap},
	}
	for _, mp := range texMaps {
		l, ok := sel.Get(mp.effect)
		if !ok {
			continue
		}
		if img, ok := imageOf(l.Item); ok {
			w.Property(mp.key, img.Identity)
		}
	}
	w.EndObject()
	return true
}
