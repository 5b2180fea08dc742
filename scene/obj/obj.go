// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package obj decodes the Wavefront OBJ file format (*.obj), including
// the associated materials (*.mtl), into a [scene.Scene]. Not all
// features of the format are supported. Basic format info:
// https://en.wikipedia.org/wiki/Wavefront_.obj_file
//
// Each object (o) or group (g) becomes a mesh item under a group named
// after the file, and the material (usemtl) of each face becomes its
// polygon tag. The shader tree has a light gray base material and one
// mask per material, holding the material and its texture maps.
package obj

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"cogentcore.org/threeio/base/errors"
	"cogentcore.org/threeio/geom"
	"cogentcore.org/threeio/scene"
)

func init() {
	scene.Decoders[".obj"] = &Decoder{}
}

// Decoder contains all decoded data from the obj and mtl files.
// It implements [scene.Decoder].
type Decoder struct {

	// File is the .obj file name, without the directory.
	File string

	// Dir is the directory of the .obj file.
	Dir string

	// Objects are the decoded objects.
	Objects []*Object

	// Matlib is the name of the material library.
	Matlib string

	// Materials are the decoded materials by name.
	Materials map[string]*Material

	// Points are the vertex positions.
	Points []geom.Vector3

	// Normals are the vertex normals.
	Normals []geom.Vector3

	// UVs are the vertex texture coordinates.
	UVs []geom.Vector2

	// Warnings are messages about unsupported content.
	Warnings []string

	line   int
	objCur *Object
	mtlCur string
	matCur *Material
}

// Object is one decoded object or group.
type Object struct {
	Name  string
	Faces []Face
}

// Face is a face of an [Object]. Uvs and Normals hold -1
// for corners without them.
type Face struct {
	Vertices []int
	Uvs      []int
	Normals  []int
	Material string
}

// Material is a decoded material. Texture maps are file names.
type Material struct {
	Name      string
	Diffuse   geom.Vector3
	Specular  geom.Vector3
	Emissive  geom.Vector3
	Shininess float64
	Opacity   float64
	MapKd     string
	MapKs     string
	MapKe     string
	MapBump   string
}

// defaultMat is the light gray material of faces without a material,
// and of materials that are not defined.
var defaultMat = Material{
	Name:      "Default",
	Diffuse:   geom.Vec3(0.627, 0.627, 0.627),
	Specular:  geom.Vec3(0.5, 0.5, 0.5),
	Shininess: 30,
	Opacity:   1,
}

// fields that are known but have no counterpart in the exported scene.
var ignoredObj = []string{"s", "l", "p", "vp", "cstype", "deg", "curv", "curv2", "surf", "mg"}
var ignoredMtl = []string{"Ka", "Ni", "illum", "Tf", "sharpness", "map_Ka", "map_d", "disp", "decal", "refl"}

const (
	objType = "obj"
	mtlType = "mtl"
)

func (dec *Decoder) New() scene.Decoder {
	return &Decoder{Materials: map[string]*Material{}}
}

func (dec *Decoder) Desc() string {
	return ".obj = Wavefront OBJ format, including associated materials (.mtl) from the file of the same name, if present."
}

func (dec *Decoder) SetFile(fname string) []string {
	dec.Dir, dec.File = filepath.Split(fname)
	mtlf := strings.TrimSuffix(fname, filepath.Ext(fname)) + ".mtl"
	if _, err := os.Stat(mtlf); err == nil {
		return []string{fname, mtlf}
	}
	return []string{fname}
}

// Decode reads the given data and decodes it into the decoder state.
// If two readers are passed, the first is the .obj and the second the .mtl.
// Materials are light gray if they are not defined in the .mtl, or it
// cannot be decoded.
func (dec *Decoder) Decode(rs []io.Reader) error {
	if len(rs) == 0 {
		return errors.New("obj.Decoder: no readers passed")
	}
	if dec.Materials == nil {
		dec.Materials = map[string]*Material{}
	}
	if err := dec.parse(rs[0], dec.parseObjLine); err != nil {
		return fmt.Errorf("obj.Decoder: %s: %w", objType, err)
	}
	if len(rs) > 1 {
		if err := dec.parse(rs[1], dec.parseMtlLine); err != nil {
			dec.appendWarn(mtlType, "using default materials: "+err.Error())
			clear(dec.Materials)
		}
	}
	for _, w := range dec.Warnings {
		slog.Warn("obj.Decoder: "+w, "file", dec.File)
	}
	return nil
}

// parse reads the lines from the given reader and dispatches
// them to the given line parser.
func (dec *Decoder) parse(r io.Reader, parseLine func(fields []string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	dec.line = 0
	for sc.Scan() {
		dec.line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if err := parseLine(fields); err != nil {
			return err
		}
	}
	return sc.Err()
}

func (dec *Decoder) parseObjLine(fields []string) error {
	args := fields[1:]
	switch fields[0] {
	case "mtllib":
		if len(args) < 1 {
			return dec.formatError("mtllib with no fields")
		}
		dec.Matlib = args[0]
	case "o", "g":
		// groups are considered the same as objects
		name := strings.Join(args, " ")
		if name == "" {
			name = fmt.Sprintf("unnamed%d", dec.line)
		}
		dec.newObject(name)
	case "v":
		v, err := dec.parseFloats(fields[0], args, 3)
		if err != nil {
			return err
		}
		p := geom.Vec3(v[0], v[1], v[2])
		if !p.IsFinite() {
			return dec.formatError("'v' with a NaN or infinite value")
		}
		dec.Points = append(dec.Points, p)
	case "vn":
		v, err := dec.parseFloats(fields[0], args, 3)
		if err != nil {
			return err
		}
		n := geom.Vec3(v[0], v[1], v[2])
		if !n.IsFinite() {
			return dec.formatError("'vn' with a NaN or infinite value")
		}
		dec.Normals = append(dec.Normals, n)
	case "vt":
		v, err := dec.parseFloats(fields[0], args, 2)
		if err != nil {
			return err
		}
		// values beyond the float32 range become infinite here
		uv := geom.Vec2(float32(v[0]), float32(v[1]))
		if !uv.IsFinite() {
			return dec.formatError("'vt' with a NaN or infinite value")
		}
		dec.UVs = append(dec.UVs, uv)
	case "f":
		return dec.parseFace(args)
	case "usemtl":
		if len(args) < 1 {
			return dec.formatError("usemtl with no fields")
		}
		if dec.objCur == nil {
			dec.newObject(fmt.Sprintf("unnamed%d", dec.line))
		}
		dec.mtlCur = args[0]
	default:
		if !slices.Contains(ignoredObj, fields[0]) {
			dec.appendWarn(objType, "field not supported: "+fields[0])
		}
	}
	return nil
}

func (dec *Decoder) newObject(name string) {
	dec.objCur = &Object{Name: name}
	dec.Objects = append(dec.Objects, dec.objCur)
}

// material returns the material with the given name, adding it if new.
func (dec *Decoder) material(name string) *Material {
	mat := dec.Materials[name]
	if mat == nil {
		mat = &Material{Name: name, Opacity: 1}
		dec.Materials[name] = mat
	}
	return mat
}

func (dec *Decoder) parseFloats(ltype string, fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, dec.formatError(fmt.Sprintf("'%s' with less than %d fields", ltype, n))
	}
	vals := make([]float64, n)
	for i, f := range fields[:n] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, dec.formatError(fmt.Sprintf("'%s' parse float error: %v", ltype, err))
		}
		vals[i] = v
	}
	return vals, nil
}

// parseIndex parses a 1-based index into a list of the given length;
// negative indexes are relative to the end of the list.
func (dec *Decoder) parseIndex(s, what string, n int) (int, error) {
	val, err := strconv.Atoi(s)
	if err != nil {
		return 0, dec.formatError(fmt.Sprintf("face %s index: %v", what, err))
	}
	switch {
	case val > 0:
		val--
	case val < 0:
		val += n
	default:
		return 0, dec.formatError(fmt.Sprintf("face %s index value equal to 0", what))
	}
	if val < 0 || val >= n {
		return 0, dec.formatError(fmt.Sprintf("face %s index %s out of range", what, s))
	}
	return val, nil
}

// parseFace parses a face description line:
// f v1[/vt1][/vn1] v2[/vt2][/vn2] v3[/vt3][/vn3] ...
func (dec *Decoder) parseFace(fields []string) error {
	if dec.objCur == nil {
		// faces are allowed before any o or g line
		dec.newObject(fmt.Sprintf("unnamed%d", dec.line))
	}
	if len(fields) < 3 {
		return dec.formatError("face line with less than 3 fields")
	}
	n := len(fields)
	face := Face{Vertices: make([]int, n), Uvs: make([]int, n), Normals: make([]int, n), Material: dec.mtlCur}
	for pos, f := range fields {
		parts := strings.Split(f, "/")
		var err error
		if face.Vertices[pos], err = dec.parseIndex(parts[0], "vertex", len(dec.Points)); err != nil {
			return err
		}
		face.Uvs[pos] = -1
		if len(parts) > 1 && parts[1] != "" {
			if face.Uvs[pos], err = dec.parseIndex(parts[1], "uv", len(dec.UVs)); err != nil {
				return err
			}
		}
		face.Normals[pos] = -1
		if len(parts) > 2 && parts[2] != "" {
			if face.Normals[pos], err = dec.parseIndex(parts[2], "normal", len(dec.Normals)); err != nil {
				return err
			}
		}
	}
	dec.objCur.Faces = append(dec.objCur.Faces, face)
	return nil
}

func (dec *Decoder) parseMtlLine(fields []string) error {
	ltype := fields[0]
	args := fields[1:]
	if ltype == "newmtl" {
		if len(args) < 1 {
			return dec.formatError("newmtl with no fields")
		}
		dec.matCur = dec.material(args[0])
		return nil
	}
	if slices.Contains(ignoredMtl, ltype) {
		return nil
	}
	mat := dec.matCur
	if mat == nil {
		return dec.formatError(fmt.Sprintf("'%s' before newmtl", ltype))
	}
	switch ltype {
	case "Kd", "Ks", "Ke":
		v, err := dec.parseFloats(ltype, args, 3)
		if err != nil {
			return err
		}
		c := geom.Vec3(v[0], v[1], v[2])
		if !c.IsFinite() {
			return dec.formatError(fmt.Sprintf("'%s' with a NaN or infinite value", ltype))
		}
		switch ltype {
		case "Kd":
			mat.Diffuse = c
		case "Ks":
			mat.Specular = c
		default:
			mat.Emissive = c
		}
	case "Ns", "d", "Tr":
		v, err := dec.parseFloats(ltype, args, 1)
		if err != nil {
			return err
		}
		if math.IsNaN(v[0]) || math.IsInf(v[0], 0) {
			return dec.formatError(fmt.Sprintf("'%s' with a NaN or infinite value", ltype))
		}
		switch ltype {
		case "Ns":
			mat.Shininess = v[0]
		case "d":
			mat.Opacity = v[0]
		default:
			mat.Opacity = 1 - v[0]
		}
	case "map_Kd", "map_Ks", "map_Ke", "map_Bump", "map_bump", "bump":
		// options come first: map_Kd [-options] <filename>
		if len(args) < 1 {
			return dec.formatError(fmt.Sprintf("'%s' with no fields", ltype))
		}
		file := args[len(args)-1]
		switch ltype {
		case "map_Kd":
			mat.MapKd = file
		case "map_Ks":
			mat.MapKs = file
		case "map_Ke":
			mat.MapKe = file
		default:
			mat.MapBump = file
		}
	default:
		dec.appendWarn(mtlType, "field not supported: "+ltype)
	}
	return nil
}

func (dec *Decoder) formatError(msg string) error {
	return fmt.Errorf("%s in line %d", msg, dec.line)
}

func (dec *Decoder) appendWarn(ftype string, msg string) {
	dec.Warnings = append(dec.Warnings, fmt.Sprintf("%s(%d): %s", ftype, dec.line, msg))
}
