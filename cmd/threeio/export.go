// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/threeio/base/errors"
	"cogentcore.org/threeio/config"
	"cogentcore.org/threeio/scene"
	"cogentcore.org/threeio/threejs"
	"github.com/klauspost/compress/gzip"
)

// OutputName returns the default output file of the given input:
// the input with its extension replaced by .json, or .json.gz if gzip.
func OutputName(input string, gz bool) string {
	out := strings.TrimSuffix(input, filepath.Ext(input)) + ".json"
	if gz {
		out += ".gz"
	}
	return out
}

// Export exports the scene of the given input file to the given output
// file, or to [OutputName] if it is empty. The output is written to a
// temporary file that replaces the output only on success, so that a
// failed export never leaves a partial document behind.
func Export(c *config.Config, input, output string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	sc, err := scene.Open(input)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if output == "" {
		output = OutputName(input, c.Gzip)
	}
	f, err := os.CreateTemp(filepath.Dir(output), "."+filepath.Base(output)+".*")
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	errors.Log(f.Chmod(0o644))
	err = write(f, sc, c)
	err = errors.Join(err, f.Close())
	if err != nil {
		errors.Log(os.Remove(f.Name()))
		return fmt.Errorf("export %s: %w", input, err)
	}
	if err := os.Rename(f.Name(), output); err != nil {
		errors.Log(os.Remove(f.Name()))
		return fmt.Errorf("export: %w", err)
	}
	slog.Info("exported", "input", input, "output", output)
	return nil
}

// write writes the scene document to w, compressed if configured.
func write(w io.Writer, sc *scene.Scene, c *config.Config) error {
	if !c.Gzip {
		return threejs.Export(w, sc, c.ExportOptions())
	}
	zw := gzip.NewWriter(w)
	err := threejs.Export(zw, sc, c.ExportOptions())
	return errors.Join(err, zw.Close())
}
