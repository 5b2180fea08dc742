// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package indent provides indentation generation methods.
package indent

import (
	"fmt"
	"strings"
)

// Character is the type of indentation character to use.
type Character int32

const (
	// Tab indicates to use tabs for indentation.
	Tab Character = iota

	// Space indicates to use spaces for indentation.
	Space
)

// String returns "tab" or "space".
func (ich Character) String() string {
	switch ich {
	case Tab:
		return "tab"
	case Space:
		return "space"
	}
	return fmt.Sprintf("Character(%d)", int32(ich))
}

// MarshalText implements [encoding.TextMarshaler].
func (ich Character) MarshalText() ([]byte, error) {
	return []byte(ich.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler],
// accepting "tab", "tabs", "space" and "spaces" in any case.
func (ich *Character) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "tab", "tabs", "":
		*ich = Tab
	case "space", "spaces":
		*ich = Space
	default:
		return fmt.Errorf("indent.Character: invalid value %q", text)
	}
	return nil
}

// Tabs returns a string of n tabs.
func Tabs(n int) string {
	return strings.Repeat("\t", n)
}

// Spaces returns a string of n*width spaces.
func Spaces(n, width int) string {
	return strings.Repeat(" ", n*width)
}

// String returns a string of n tabs or n*width spaces depending on the indent character.
func String(ich Character, n, width int) string {
	if ich == Tab {
		return Tabs(n)
	}
	return Spaces(n, width)
}
