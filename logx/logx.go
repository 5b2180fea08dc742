// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides the user log level and a default
// [slog] logger with colored level tags.
package logx

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/muesli/termenv"
)

// UserLevel is the verbosity [slog.Level] that the user has selected for
// what logging and printing messages should be shown. Messages at
// levels at or above this level will be shown. The default user
// verbosity level is [slog.LevelInfo], or [slog.LevelWarn] with the
// release build tag and [slog.LevelDebug] with the debug build tag.
var UserLevel = defaultUserLevel

// LevelFromFlags returns the [slog.Level] object corresponding to the given
// user flag options. The flags correspond to the following values:
//   - vv: [slog.LevelDebug]
//   - v: [slog.LevelInfo]
//   - q: [slog.LevelError]
//   - (default: the build default of [UserLevel])
//
// The flags are evaluated in that order, so, for example, if both
// vv and q are specified, it will still return [slog.LevelDebug].
func LevelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return defaultUserLevel
	}
}

// SetDefaultLogger sets the default logger to one
// writing to stderr at the [UserLevel].
func SetDefaultLogger() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, UserLevel)))
}

// NewHandler returns a handler writing text lines to w at the given
// level, without time stamps. Each line starts with the level tag, which
// is colored if w is a terminal supporting colors, followed by the
// text handler output of the record.
func NewHandler(w io.Writer, level slog.Leveler) slog.Handler {
	return &handler{
		w:   w,
		out: termenv.NewOutput(w),
		mu:  &sync.Mutex{},
		text: slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if len(groups) == 0 && (a.Key == slog.TimeKey || a.Key == slog.LevelKey) {
					return slog.Attr{}
				}
				return a
			},
		}),
	}
}

// handler writes the level tag unquoted ahead of the output
// of a text handler that omits the level.
type handler struct {
	w    io.Writer
	out  *termenv.Output
	mu   *sync.Mutex
	text slog.Handler
}

func (h *handler) Enabled(ctx context.Context, lv slog.Level) bool {
	return h.text.Enabled(ctx, lv)
}

func (h *handler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, err := io.WriteString(h.w, "level="+levelTag(h.out, r.Level)+" "); err != nil {
		return err
	}
	return h.text.Handle(ctx, r)
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &handler{w: h.w, out: h.out, mu: h.mu, text: h.text.WithAttrs(attrs)}
}

func (h *handler) WithGroup(name string) slog.Handler {
	return &handler{w: h.w, out: h.out, mu: h.mu, text: h.text.WithGroup(name)}
}

// levelTag returns the name of the level, colored
// for the color profile of the given output.
func levelTag(out *termenv.Output, lv slog.Level) string {
	name := lv.String()
	if out.Profile == termenv.Ascii {
		return name
	}
	var color string
	switch {
	case lv >= slog.LevelError:
		color = "1"
	case lv >= slog.LevelWarn:
		color = "3"
	case lv >= slog.LevelInfo:
		color = "4"
	default:
		color = "8"
	}
	return out.String(name).Foreground(out.Color(color)).Bold().String()
}
