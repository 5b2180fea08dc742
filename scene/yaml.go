// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"io"
	"path/filepath"

	"cogentcore.org/threeio/base/errors"
	"cogentcore.org/threeio/geom"
	"cogentcore.org/threeio/shadertree"
	"cogentcore.org/threeio/threejs"
	"gopkg.in/yaml.v3"
)

func init() {
	Decoders[".yaml"] = &YAMLDecoder{}
	Decoders[".yml"] = &YAMLDecoder{}
}

// File is the YAML description of a scene.
type File struct {
	ID     string              `yaml:"id"`
	Name   string              `yaml:"name"`
	Items  []FileItem          `yaml:"items"`
	Meshes map[string]FileMesh `yaml:"meshes"`

	// Shader are the layers of the shader tree root.
	Shader []FileShader `yaml:"shader"`
}

// FileItem describes an item. The kind defaults to a mesh instance if a
// source is given, and to a mesh if a mesh is given. Parents are referred to by id or name and
// must be listed before their children. The transform is either a full
// column-major matrix, or is composed from position, rotation in degrees
// applied in the given axis order, and scale.
type FileItem struct {
	ID       string       `yaml:"id"`
	Name     string       `yaml:"name"`
	Kind     threejs.Kind `yaml:"kind"`
	Hidden   bool         `yaml:"hidden"`
	Parent   string       `yaml:"parent"`
	Mesh     string       `yaml:"mesh"`
	Source   string       `yaml:"source"`
	Position []float64    `yaml:"position"`
	Rotation []float64    `yaml:"rotation"`
	Order    string       `yaml:"order"`
	Scale    []float64    `yaml:"scale"`
	Matrix   []float64    `yaml:"matrix"`
}

// FileMesh describes a mesh.
type FileMesh struct {
	Points   [][]float64 `yaml:"points"`
	Normals  [][]float64 `yaml:"normals"`
	UVs      [][]float32 `yaml:"uvs"`
	Polygons []FilePoly  `yaml:"polygons"`
}

// FilePoly describes a polygon.
type FilePoly struct {
	Verts   []int       `yaml:"verts"`
	Tag     string      `yaml:"tag"`
	Normals [][]float64 `yaml:"normals"`
	UVs     [][]float32 `yaml:"uvs"`
	Normal  []float64   `yaml:"normal"`
}

// FileShader describes a node of the shader tree. A node with a
// material is a material layer unless another effect is given.
type FileShader struct {
	Name     string            `yaml:"name"`
	Mask     bool              `yaml:"mask"`
	Disabled bool              `yaml:"disabled"`
	Tag      string            `yaml:"tag"`
	Item     string            `yaml:"item"`
	Effect   shadertree.Effect `yaml:"effect"`
	Material *FileMaterial     `yaml:"material"`
	Image    *FileImage        `yaml:"image"`
	Layers   []FileShader      `yaml:"layers"`
}

// FileMaterial describes the channels of a material. Amounts default to 1.
type FileMaterial struct {
	Name           string    `yaml:"name"`
	Diffuse        []float64 `yaml:"diffuse"`
	DiffuseAmount  *float64  `yaml:"diffuseAmount"`
	Specular       []float64 `yaml:"specular"`
	SpecularAmount *float64  `yaml:"specularAmount"`
	Roughness      float64   `yaml:"roughness"`
	Luminous       []float64 `yaml:"luminous"`
	Radiance       *float64  `yaml:"radiance"`
	DoubleSided    bool      `yaml:"doubleSided"`
	Transparency   float64   `yaml:"transparency"`
}

// FileImage describes an image clip. A relative file name
// is relative to the directory of the scene file.
type FileImage struct {
	ID     string `yaml:"id"`
	File   string `yaml:"file"`
	Format string `yaml:"format"`
}

// YAMLDecoder decodes YAML scene files described by [File].
type YAMLDecoder struct {
	// Dir is the directory of the scene file.
	Dir string

	// File is the decoded scene description.
	File File
}

func (dec *YAMLDecoder) New() Decoder {
	return &YAMLDecoder{}
}

func (dec *YAMLDecoder) Desc() string {
	return ".yaml, .yml = YAML scene description with items, meshes and the shader tree."
}

func (dec *YAMLDecoder) SetFile(fname string) []string {
	dec.Dir = filepath.Dir(fname)
	return []string{fname}
}

func (dec *YAMLDecoder) Decode(rs []io.Reader) error {
	if len(rs) == 0 {
		return errors.New("scene.YAMLDecoder: no readers passed")
	}
	yd := yaml.NewDecoder(rs[0])
	yd.KnownFields(true)
	if err := yd.Decode(&dec.File); err != nil && err != io.EOF {
		return fmt.Errorf("scene.YAMLDecoder: %w", err)
	}
	return nil
}

// ReadYAML reads a YAML scene description from r. Relative image
// file names are left as is.
func ReadYAML(r io.Reader) (*Scene, error) {
	dec := &YAMLDecoder{}
	if err := dec.Decode([]io.Reader{r}); err != nil {
		return nil, err
	}
	return dec.Scene()
}

func (dec *YAMLDecoder) Scene() (*Scene, error) {
	f := &dec.File
	sc := New(f.Name)
	sc.ID = f.ID
	for name, fm := range f.Meshes {
		if err := dec.setMesh(sc.AddMesh(name), &fm); err != nil {
			return nil, fmt.Errorf("mesh %q: %w", name, err)
		}
	}
	for i := range f.Items {
		if err := dec.addItem(sc, &f.Items[i]); err != nil {
			return nil, fmt.Errorf("item %d (%q): %w", i, f.Items[i].Name, err)
		}
	}
	for i := range f.Items {
		fi := &f.Items[i]
		if fi.Source == "" {
			continue
		}
		src := sc.lookup(fi.Source)
		if src == nil {
			return nil, fmt.Errorf("item %d (%q): source %q not found", i, fi.Name, fi.Source)
		}
		sc.items[i].SetSource(src)
	}
	if len(f.Shader) > 0 {
		sc.Shader = NewShaderRoot()
		for i := range f.Shader {
			sn, err := dec.shaderNode(&f.Shader[i])
			if err != nil {
				return nil, err
			}
			sc.Shader.Layers = append(sc.Shader.Layers, sn)
		}
	}
	return sc, nil
}

// lookup returns the item with the given id or, failing that, name.
func (sc *Scene) lookup(ref string) *Item {
	if it := sc.ItemByID(ref); it != nil {
		return it
	}
	return sc.ItemByName(ref)
}

func (dec *YAMLDecoder) addItem(sc *Scene, fi *FileItem) error {
	var parent *Item
	if fi.Parent != "" {
		parent = sc.lookup(fi.Parent)
		if parent == nil {
			return fmt.Errorf("parent %q not found", fi.Parent)
		}
	}
	kind := fi.Kind
	if kind == threejs.Unsupported {
		switch {
		case fi.Source != "":
			kind = threejs.MeshInstance
		case fi.Mesh != "":
			kind = threejs.MeshItem
		}
	}
	it, err := sc.AddItem(parent, fi.ID, fi.Name, kind)
	if err != nil {
		return err
	}
	it.SetVisible(!fi.Hidden)
	if fi.Mesh != "" {
		m := sc.MeshByName(fi.Mesh)
		if m == nil {
			return fmt.Errorf("mesh %q not found", fi.Mesh)
		}
		it.SetMesh(m)
	}
	xf, err := fi.transform()
	if err != nil {
		return err
	}
	it.SetTransform(xf)
	return nil
}

func (fi *FileItem) transform() (geom.Matrix4, error) {
	if len(fi.Matrix) > 0 {
		if len(fi.Matrix) != 16 {
			return geom.Matrix4{}, fmt.Errorf("matrix has %d elements, not 16", len(fi.Matrix))
		}
		var m geom.Matrix4
		copy(m[:], fi.Matrix)
		if !m.IsFinite() {
			return geom.Matrix4{}, errors.New("matrix has a non-finite element")
		}
		return m, nil
	}
	pos, err := vec3(fi.Position, geom.Vector3{})
	if err != nil {
		return geom.Matrix4{}, fmt.Errorf("position: %w", err)
	}
	rot, err := vec3(fi.Rotation, geom.Vector3{})
	if err != nil {
		return geom.Matrix4{}, fmt.Errorf("rotation: %w", err)
	}
	scl, err := vec3(fi.Scale, geom.Vec3(1, 1, 1))
	if err != nil {
		return geom.Matrix4{}, fmt.Errorf("scale: %w", err)
	}
	order, err := geom.ParseRotationOrder(fi.Order)
	if err != nil {
		return geom.Matrix4{}, err
	}
	return geom.Compose(pos, rot, order, scl), nil
}

// errNonFinite is returned for vectors with a NaN or infinite component,
// which cannot be written as JSON numbers.
var errNonFinite = errors.New("NaN or infinite component")

func vec3(v []float64, def geom.Vector3) (geom.Vector3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		r := geom.Vector3FromSlice(v)
		if !r.IsFinite() {
			return def, errNonFinite
		}
		return r, nil
	}
	return def, fmt.Errorf("%d components, not 3", len(v))
}

func vec3s(vs [][]float64) ([]geom.Vector3, error) {
	if len(vs) == 0 {
		return nil, nil
	}
	out := make([]geom.Vector3, len(vs))
	for i, v := range vs {
		if len(v) != 3 {
			return nil, fmt.Errorf("vector %d has %d components, not 3", i, len(v))
		}
		out[i] = geom.Vector3FromSlice(v)
		if !out[i].IsFinite() {
			return nil, fmt.Errorf("vector %d: %w", i, errNonFinite)
		}
	}
	return out, nil
}

func vec2s(vs [][]float32) ([]geom.Vector2, error) {
	if len(vs) == 0 {
		return nil, nil
	}
	out := make([]geom.Vector2, len(vs))
	for i, v := range vs {
		if len(v) != 2 {
			return nil, fmt.Errorf("uv %d has %d components, not 2", i, len(v))
		}
		out[i] = geom.Vec2(v[0], v[1])
		if !out[i].IsFinite() {
			return nil, fmt.Errorf("uv %d: %w", i, errNonFinite)
		}
	}
	return out, nil
}

func (dec *YAMLDecoder) setMesh(m *Mesh, fm *FileMesh) error {
	var err error
	if m.Points, err = vec3s(fm.Points); err != nil {
		return fmt.Errorf("points: %w", err)
	}
	if m.Normals, err = vec3s(fm.Normals); err != nil {
		return fmt.Errorf("normals: %w", err)
	}
	if m.UVs, err = vec2s(fm.UVs); err != nil {
		return err
	}
	for i := range fm.Polygons {
		fp := &fm.Polygons[i]
		for _, v := range fp.Verts {
			if v < 0 || v >= len(m.Points) {
				return fmt.Errorf("polygon %d: point index %d out of range", i, v)
			}
		}
		p := m.AddPoly(fp.Tag, fp.Verts...)
		if p.Normals, err = vec3s(fp.Normals); err != nil {
			return fmt.Errorf("polygon %d normals: %w", i, err)
		}
		if p.UVs, err = vec2s(fp.UVs); err != nil {
			return fmt.Errorf("polygon %d: %w", i, err)
		}
		if len(fp.Normal) > 0 {
			n, err := vec3(fp.Normal, geom.Vector3{})
			if err != nil {
				return fmt.Errorf("polygon %d normal: %w", i, err)
			}
			p.FaceNormal = &n
		}
	}
	return nil
}

func (dec *YAMLDecoder) shaderNode(fs *FileShader) (*ShaderNode, error) {
	sn := &ShaderNode{
		Name:     fs.Name,
		Mask:     fs.Mask,
		Disabled: fs.Disabled,
		Tag:      fs.Tag,
		Item:     fs.Item,
		Class:    fs.Effect,
	}
	if fm := fs.Material; fm != nil {
		mat, err := fm.material()
		if err != nil {
			return nil, fmt.Errorf("shader layer %q: %w", fs.Name, err)
		}
		sn.Mat = mat
		if sn.Class == shadertree.NoEffect {
			sn.Class = shadertree.Material
		}
		if sn.Name == "" {
			sn.Name = mat.Name
		}
	}
	if fi := fs.Image; fi != nil {
		img := threejs.Image{Identity: fi.ID, File: fi.File, Format: fi.Format}
		if img.File != "" && !filepath.IsAbs(img.File) && dec.Dir != "" {
			img.File = filepath.Join(dec.Dir, img.File)
		}
		if img.Identity == "" {
			img.Identity = NameIdentity("image", fi.File)
		}
		sn.Img = &img
	}
	for i := range fs.Layers {
		l, err := dec.shaderNode(&fs.Layers[i])
		if err != nil {
			return nil, err
		}
		sn.Layers = append(sn.Layers, l)
	}
	return sn, nil
}

func amount(a *float64) float64 {
	if a == nil {
		return 1
	}
	return *a
}

func (fm *FileMaterial) material() (*threejs.Material, error) {
	m := &threejs.Material{
		Name:         fm.Name,
		Roughness:    fm.Roughness,
		DoubleSided:  fm.DoubleSided,
		Transparency: fm.Transparency,
	}
	var err error
	if len(fm.Diffuse) > 0 {
		if m.DiffuseColor, err = vec3(fm.Diffuse, geom.Vector3{}); err != nil {
			return nil, fmt.Errorf("diffuse: %w", err)
		}
		m.DiffuseAmount = amount(fm.DiffuseAmount)
	}
	if len(fm.Specular) > 0 {
		if m.SpecularColor, err = vec3(fm.Specular, geom.Vector3{}); err != nil {
			return nil, fmt.Errorf("specular: %w", err)
		}
		m.SpecularAmount = amount(fm.SpecularAmount)
	}
	if len(fm.Luminous) > 0 {
		if m.LuminousColor, err = vec3(fm.Luminous, geom.Vector3{}); err != nil {
			return nil, fmt.Errorf("luminous: %w", err)
		}
		m.Radiance = amount(fm.Radiance)
	}
	return m, nil
}
