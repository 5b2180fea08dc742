// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, true, true))
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, true, true))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, false, true))
	assert.Equal(t, defaultUserLevel, LevelFromFlags(false, false, false))
}

func TestHandler(t *testing.T) {
	t.Setenv("CLICOLOR_FORCE", "0")
	var b bytes.Buffer
	logger := slog.New(NewHandler(&b, slog.LevelInfo))
	logger.Debug("hidden")
	logger.Info("scene saved successfully")
	logger.Warn("image could not be embedded", "image", "tex")
	assert.Equal(t, "level=INFO msg=\"scene saved successfully\"\n"+
		"level=WARN msg=\"image could not be embedded\" image=tex\n", b.String())
}

func TestHandlerColor(t *testing.T) {
	t.Setenv("CLICOLOR_FORCE", "1")
	t.Setenv("NO_COLOR", "")
	var b bytes.Buffer
	logger := slog.New(NewHandler(&b, slog.LevelInfo)).With("file", "scene.obj")
	logger.Info("hello")
	out := b.String()
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "INFO")
	assert.NotContains(t, out, "\"\x1b")
	assert.NotContains(t, out, `\x1b`)
	assert.True(t, strings.HasSuffix(out, " msg=hello file=scene.obj\n"), out)
}

func TestLevelTag(t *testing.T) {
	var b bytes.Buffer
	out := termenv.NewOutput(&b, termenv.WithProfile(termenv.ANSI))
	tag := levelTag(out, slog.LevelError)
	assert.Contains(t, tag, "ERROR")
	assert.NotEqual(t, "ERROR", tag)

	plain := termenv.NewOutput(&b, termenv.WithProfile(termenv.Ascii))
	assert.Equal(t, "WARN", levelTag(plain, slog.LevelWarn))
}

func TestDefaultLogger(t *testing.T) {
	UserLevel = slog.LevelDebug
	SetDefaultLogger()

	slog.Debug("this is debug")
	slog.Info("this is info")
	slog.Warn("this is warn")
}
