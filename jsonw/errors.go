// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonw

import "fmt"

// GrammarError is the panic value of a [Writer] call that is illegal
// in the current nesting state, e.g., [Writer.EndArray] while an object
// is open. It indicates a bug in the caller, not a runtime condition.
type GrammarError struct {
	// Op is the name of the offending call.
	Op string

	// Context is the grammar state on top of the stack: Array, Object or Value.
	Context string

	// Empty is set if the stack was empty.
	Empty bool

	// Complete is set if the top-level value was already written.
	Complete bool
}

func (e *GrammarError) Error() string {
	if e.Complete {
		return fmt.Sprintf("jsonw: %s called after the top-level value", e.Op)
	}
	if e.Empty {
		return fmt.Sprintf("jsonw: %s called with no open container", e.Op)
	}
	return fmt.Sprintf("jsonw: %s called in %s context", e.Op, e.Context)
}
