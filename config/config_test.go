// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cogentcore.org/threeio/base/indent"
	"cogentcore.org/threeio/jsonw"
	"cogentcore.org/threeio/meshenc"
	"cogentcore.org/threeio/threejs"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := New()
	require.NoError(t, c.Validate())
	opts := c.ExportOptions()
	assert.Equal(t, threejs.DefaultOptions(), opts)
	assert.Equal(t, jsonw.MaxPrecision, opts.Precision)

	c.UsePrecision = true
	assert.Equal(t, 6, c.ExportOptions().Precision)
}

func TestRead(t *testing.T) {
	c := New()
	src := `
save-hidden = true
save-uvs = false
geometry = "buffergeometry"
use-precision = true
precision = 3
indent = "space"
indent-width = 4
`
	require.NoError(t, c.Read(strings.NewReader(src)))
	assert.True(t, c.SaveHidden)
	assert.False(t, c.SaveUVs)
	assert.Equal(t, meshenc.IndexedTriangles, c.Geometry)
	assert.Equal(t, indent.Space, c.Indent)
	assert.Equal(t, 4, c.IndentWidth)
	assert.True(t, c.Pretty)
	assert.Equal(t, "threeio", c.Generator)

	opts := c.ExportOptions()
	assert.Equal(t, 3, opts.Precision)
	assert.Equal(t, meshenc.IndexedTriangles, opts.Geometry)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"unknown key", "colour = 1\n", "colour"},
		{"bad geometry", "geometry = \"points\"\n", "points"},
		{"negative precision", "precision = -1\n", "negative"},
		{"empty generator", "generator = \"\"\n", "generator is empty"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := New().Read(strings.NewReader(test.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.msg)
		})
	}
}

func TestOpenWrite(t *testing.T) {
	c := New()
	c.EmbedImages = true
	c.Geometry = meshenc.IndexedTriangles
	var b bytes.Buffer
	require.NoError(t, c.Write(&b))
	assert.Contains(t, b.String(), "buffergeometry")

	fn := filepath.Join(t.TempDir(), "threeio.toml")
	require.NoError(t, os.WriteFile(fn, b.Bytes(), 0o644))
	got, err := Open(fn)
	require.NoError(t, err)
	assert.Equal(t, c, got)

	_, err = Open(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	homedir.DisableCache = true
	t.Setenv("HOME", t.TempDir())
	c, err := Default()
	require.NoError(t, err)
	assert.Equal(t, New(), c)
}

func TestDesc(t *testing.T) {
	assert.Equal(t, "whether to compress the output with gzip", Desc("Gzip"))
	assert.Empty(t, Desc("Missing"))
}
