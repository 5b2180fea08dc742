// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"cogentcore.org/threeio/base/errors"
)

// Decoder parses 3D scene file(s) into a [Scene].
// This interface is implemented by the different format-specific decoders.
type Decoder interface {
	// New returns a new instance of the decoder used for a specific decoding.
	New() Decoder

	// Desc returns the description of this decoder.
	Desc() string

	// SetFile sets the file name being used for decoding, needed in case
	// of loading other files such as textures or materials from the same
	// directory. Returns a list of files that should be loaded along with
	// the main one, if needed. For example, .obj decoder adds a
	// corresponding .mtl file.
	SetFile(fname string) []string

	// Decode reads the given data and decodes it into the decoder state.
	// Some formats (e.g., Wavefront .obj) have separate .obj and .mtl
	// files which are passed as two reader args.
	Decode(rs []io.Reader) error

	// Scene returns a new scene built from the decoded data.
	Scene() (*Scene, error)
}

// Decoders is the master list of decoders, indexed by the primary extension.
var Decoders = map[string]Decoder{}

// Extensions returns the sorted file extensions of the registered decoders.
func Extensions() []string {
	exts := make([]string, 0, len(Decoders))
	for ext := range Decoders {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

func decoderFor(fname string) (Decoder, error) {
	ext := strings.ToLower(filepath.Ext(fname))
	dt, has := Decoders[ext]
	if !has {
		return nil, fmt.Errorf("scene: file extension %q not found in Decoders list for file %q", ext, fname)
	}
	return dt.New(), nil
}

// DecodeFile decodes the given file using a decoder based on the file
// extension. Returns decoder instance with full decoded state.
func DecodeFile(fname string) (Decoder, error) {
	dec, err := decoderFor(fname)
	if err != nil {
		return nil, err
	}
	files := dec.SetFile(fname)
	nf := len(files)

	fs := make([]*os.File, nf)
	rs := make([]io.Reader, nf)
	defer func() {
		for _, fi := range fs {
			if fi != nil {
				errors.Log(fi.Close())
			}
		}
	}()

	for i, f := range files {
		fs[i], err = os.Open(f)
		if err != nil {
			return nil, err
		}
		rs[i] = fs[i]
	}
	err = dec.Decode(rs)
	if err != nil {
		return nil, err
	}
	return dec, nil
}

// Open opens a scene from the given file, using a decoder based on
// the file extension.
func Open(fname string) (*Scene, error) {
	dec, err := DecodeFile(fname)
	if err != nil {
		return nil, err
	}
	return dec.Scene()
}

// Read reads a scene from the given reader(s), using a decoder based on
// the file name extension; even though the file name is not directly
// used to read the file, it is required for naming and decoding selection.
// This can be used for loading data embedded in an executable for example.
func Read(fname string, rs ...io.Reader) (*Scene, error) {
	dec, err := decoderFor(fname)
	if err != nil {
		return nil, err
	}
	dec.SetFile(fname)
	if err := dec.Decode(rs); err != nil {
		return nil, err
	}
	return dec.Scene()
}
