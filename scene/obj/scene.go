// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obj

import (
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"cogentcore.org/threeio/geom"
	"cogentcore.org/threeio/scene"
	"cogentcore.org/threeio/shadertree"
	"cogentcore.org/threeio/threejs"
)

// Scene returns a new scene with a group named after the file,
// holding one mesh item per object with faces.
func (dec *Decoder) Scene() (*scene.Scene, error) {
	name := strings.TrimSuffix(dec.File, filepath.Ext(dec.File))
	sc := scene.New(name)
	gp, err := sc.AddItem(nil, "", name, threejs.GroupLocator)
	if err != nil {
		return nil, err
	}
	used := map[string]bool{}
	for _, ob := range dec.Objects {
		if len(ob.Faces) == 0 {
			continue
		}
		it, err := sc.AddItem(gp, "", ob.Name, threejs.MeshItem)
		if err != nil {
			return nil, err
		}
		it.SetMesh(dec.mesh(sc, ob, used))
	}
	dec.setShader(sc, slices.Sorted(maps.Keys(used)))
	return sc, nil
}

// mesh returns a new mesh of the given object, with the points it
// uses renumbered in order of first use, recording the used materials.
func (dec *Decoder) mesh(sc *scene.Scene, ob *Object, used map[string]bool) *scene.Mesh {
	m := sc.AddMesh(ob.Name)
	local := map[int]int{}
	for fi := range ob.Faces {
		face := &ob.Faces[fi]
		verts := make([]int, len(face.Vertices))
		for i, v := range face.Vertices {
			lv, ok := local[v]
			if !ok {
				lv = m.AddPoint(dec.Points[v])
				local[v] = lv
			}
			verts[i] = lv
		}
		p := m.AddPoly(face.Material, verts...)
		if !slices.Contains(face.Normals, -1) {
			p.Normals = make([]geom.Vector3, len(face.Normals))
			for i, n := range face.Normals {
				p.Normals[i] = dec.Normals[n]
			}
		}
		if !slices.Contains(face.Uvs, -1) {
			p.UVs = make([]geom.Vector2, len(face.Uvs))
			for i, uv := range face.Uvs {
				p.UVs[i] = dec.UVs[uv]
			}
		}
		if face.Material != "" {
			used[face.Material] = true
		}
	}
	return m
}

// setShader sets the shader tree of the scene: the default material
// at the base, and a mask per used material.
func (dec *Decoder) setShader(sc *scene.Scene, used []string) {
	root := scene.NewShaderRoot()
	root.AddMaterial(defaultMat.material())
	for _, name := range used {
		mat := dec.Materials[name]
		if mat == nil {
			slog.Warn("obj.Decoder: material not found, using default", "material", name, "file", dec.File)
			def := defaultMat
			def.Name = name
			mat = &def
		}
		mask := root.AddMask(name, name, "")
		mask.AddMaterial(mat.material())
		for _, tm := range []struct {
			effect shadertree.Effect
			file   string
		}{
			{shadertree.DiffuseMap, mat.MapKd},
			{shadertree.SpecularMap, mat.MapKs},
			{shadertree.EmissiveMap, mat.MapKe},
			{shadertree.BumpMap, mat.MapBump},
		} {
			if tm.file == "" {
				continue
			}
			mask.AddImageMap(tm.effect, dec.image(tm.file))
		}
	}
	sc.Shader = root
}

// image returns the image of the given texture file,
// which is relative to the .obj file if not absolute.
func (dec *Decoder) image(file string) threejs.Image {
	path := file
	if !filepath.IsAbs(path) {
		path = filepath.Join(dec.Dir, file)
	}
	return threejs.Image{Identity: scene.NameIdentity("image", path), File: path}
}

// material returns the exported material: shininess is the specular
// exponent in [0, 1000], opacity is one minus the transparency, and
// faces are double sided as obj files do not reliably wind them.
func (mat *Material) material() *threejs.Material {
	m := &threejs.Material{
		Name:          mat.Name,
		DiffuseColor:  mat.Diffuse,
		DiffuseAmount: 1,
		Roughness:     min(max(1-mat.Shininess/1000, 0), 1),
		DoubleSided:   true,
		Transparency:  min(max(1-mat.Opacity, 0), 1),
	}
	if mat.Specular != (geom.Vector3{}) {
		m.SpecularColor = mat.Specular
		m.SpecularAmount = 1
	}
	if mat.Emissive != (geom.Vector3{}) {
		m.LuminousColor = mat.Emissive
		m.Radiance = 1
	}
	return m
}
