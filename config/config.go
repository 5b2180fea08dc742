// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration struct of the threeio
// tool, which is loaded from TOML files and command line flags.
package config

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"reflect"

	"cogentcore.org/threeio/base/errors"
	"cogentcore.org/threeio/base/indent"
	"cogentcore.org/threeio/jsonw"
	"cogentcore.org/threeio/meshenc"
	"cogentcore.org/threeio/threejs"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

// DefaultFile is the user config file loaded by [Default].
const DefaultFile = "~/.threeio.toml"

// Config is the main config struct that contains
// all of the configuration options of the threeio tool.
type Config struct {

	// whether to export hidden items, marked with visible false
	SaveHidden bool `toml:"save-hidden" desc:"whether to export hidden items, marked with visible false"`

	// whether to export vertex normals
	SaveNormals bool `toml:"save-normals" desc:"whether to export vertex normals"`

	// [def: true] whether to export texture coordinates of meshes that have them
	SaveUVs bool `toml:"save-uvs" def:"true" desc:"whether to export texture coordinates of meshes that have them"`

	// whether to embed images as data URIs instead of referring to their file names
	EmbedImages bool `toml:"embed-images" desc:"whether to embed images as data URIs instead of referring to their file names"`

	// [def: geometry] the geometry encoding: geometry (face list) or buffergeometry (indexed triangles)
	Geometry meshenc.Mode `toml:"geometry" def:"geometry" desc:"the geometry encoding: geometry (face list) or buffergeometry (indexed triangles)"`

	// whether to limit the number of fractional digits to Precision
	UsePrecision bool `toml:"use-precision" desc:"whether to limit the number of fractional digits to precision"`

	// [def: 6] [min: 0] [max: 13] the number of fractional digits of numbers, if UsePrecision
	Precision int `toml:"precision" def:"6" min:"0" max:"13" desc:"the number of fractional digits of numbers"`

	// [def: true] whether to write the document with newlines and indentation
	Pretty bool `toml:"pretty" def:"true" desc:"whether to write the document with newlines and indentation"`

	// [def: tab] the indentation character of pretty documents: tab or space
	Indent indent.Character `toml:"indent" def:"tab" desc:"the indentation character of pretty documents: tab or space"`

	// [def: 2] the number of spaces per level when indenting with spaces
	IndentWidth int `toml:"indent-width" def:"2" desc:"the number of spaces per level when indenting with spaces"`

	// [def: threeio] the generator name written to the document metadata
	Generator string `toml:"generator" def:"threeio" desc:"the generator name written to the document metadata"`

	// whether to compress the output with gzip
	Gzip bool `toml:"gzip" desc:"whether to compress the output with gzip"`
}

// Defaults sets the default values of all fields.
func (c *Config) Defaults() {
	*c = Config{
		SaveUVs:     true,
		Geometry:    meshenc.FaceList,
		Precision:   6,
		Pretty:      true,
		Indent:      indent.Tab,
		IndentWidth: 2,
		Generator:   threejs.DefaultGenerator,
	}
}

// New returns a new [Config] with default values.
func New() *Config {
	c := &Config{}
	c.Defaults()
	return c
}

// Validate returns an error for option values that cannot be exported.
func (c *Config) Validate() error {
	var errs []error
	switch c.Geometry {
	case meshenc.FaceList, meshenc.IndexedTriangles:
	default:
		errs = append(errs, fmt.Errorf("invalid geometry type %v", c.Geometry))
	}
	if c.Precision < 0 {
		errs = append(errs, fmt.Errorf("precision %d is negative", c.Precision))
	}
	if c.IndentWidth < 0 {
		errs = append(errs, fmt.Errorf("indent width %d is negative", c.IndentWidth))
	}
	if c.Generator == "" {
		errs = append(errs, errors.New("generator is empty"))
	}
	return errors.Join(errs...)
}

// ExportOptions returns the export options of the config. Precision
// above [jsonw.MaxPrecision] is clamped by the document writer.
func (c *Config) ExportOptions() *threejs.Options {
	prec := jsonw.MaxPrecision
	if c.UsePrecision {
		prec = c.Precision
	}
	return &threejs.Options{
		SaveHidden:  c.SaveHidden,
		SaveNormals: c.SaveNormals,
		SaveUVs:     c.SaveUVs,
		EmbedImages: c.EmbedImages,
		Geometry:    c.Geometry,
		Precision:   prec,
		Pretty:      c.Pretty,
		Indent:      c.Indent,
		IndentWidth: c.IndentWidth,
		Generator:   c.Generator,
	}
}

// Read decodes TOML from r on top of the current values.
// Unknown keys are an error.
func (c *Config) Read(r io.Reader) error {
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var sme *toml.StrictMissingError
		if errors.As(err, &sme) {
			return fmt.Errorf("config: %s", sme.String())
		}
		return fmt.Errorf("config: %w", err)
	}
	return c.Validate()
}

// Open decodes the given TOML file on top of the current values.
// A leading ~ in the file name is the home directory.
func (c *Config) Open(file string) error {
	fn, err := homedir.Expand(file)
	if err != nil {
		return err
	}
	f, err := os.Open(fn)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := c.Read(f); err != nil {
		return fmt.Errorf("%s: %w", fn, err)
	}
	return nil
}

// Open returns a new config with default values
// overridden by those of the given TOML file.
func Open(file string) (*Config, error) {
	c := New()
	if err := c.Open(file); err != nil {
		return nil, err
	}
	return c, nil
}

// Default returns the config of [DefaultFile], or the
// default values if that file does not exist.
func Default() (*Config, error) {
	c := New()
	err := c.Open(DefaultFile)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Write writes the config to w as TOML.
func (c *Config) Write(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(c)
}

// Desc returns the description of the given field, for command line help.
func Desc(field string) string {
	f, ok := reflect.TypeFor[Config]().FieldByName(field)
	if !ok {
		return ""
	}
	return f.Tag.Get("desc")
}
