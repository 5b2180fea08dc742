// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"cogentcore.org/threeio/base/errors"
	"cogentcore.org/threeio/config"
	"github.com/fsnotify/fsnotify"
)

// debounce is how long changes must settle before exporting again.
const debounce = 200 * time.Millisecond

// WatchedFiles returns the absolute names of the files whose changes
// trigger a new export of the given input: the input itself, and the
// material library of an .obj file.
func WatchedFiles(input string) ([]string, error) {
	abs, err := filepath.Abs(input)
	if err != nil {
		return nil, err
	}
	files := []string{abs}
	if strings.EqualFold(filepath.Ext(abs), ".obj") {
		files = append(files, strings.TrimSuffix(abs, filepath.Ext(abs))+".mtl")
	}
	return files, nil
}

// Watch exports the given input, and exports it again whenever it
// changes, until the context is canceled. Failed exports are logged
// and do not stop watching.
func Watch(ctx context.Context, c *config.Config, input, output string) error {
	files, err := WatchedFiles(input)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	// watch the directory, so that files replaced by editors are seen
	if err := w.Add(filepath.Dir(files[0])); err != nil {
		return err
	}

	export := func() {
		if err := Export(c, input, output); err != nil {
			slog.Error("export failed", "err", err)
		}
	}
	export()
	slog.Info("watching for changes", "files", files)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(ev, files) {
				continue
			}
			slog.Debug("file changed", "event", ev)
			pending = time.After(debounce)
		case <-pending:
			pending = nil
			export()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

// relevant returns whether the event changes one of the given files.
func relevant(ev fsnotify.Event, files []string) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name := errors.Log1(filepath.Abs(ev.Name))
	for _, f := range files {
		if name == f {
			return true
		}
	}
	return false
}
