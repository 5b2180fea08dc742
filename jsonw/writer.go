// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonw provides a streaming JSON writer that emits a document
// incrementally, without building it in memory first.
//
// The [Writer] tracks container nesting with an explicit stack of grammar
// states, so that separators, keys and values always land in legal
// positions. Calls that would produce invalid JSON are programmer errors
// and panic with a [*GrammarError]. Output errors are sticky: they are
// recorded once and reported by [Writer.Err] and [Writer.Flush], so a long
// write sequence can be checked once at the end.
//
// Strings are escaped so that the output is also safe to evaluate as
// JavaScript source, and floating point numbers are written in fixed
// decimal notation with a configurable number of fractional digits.
package jsonw

import (
	"bufio"
	"io"

	"cogentcore.org/threeio/base/indent"
)

// context is one grammar state on the [Writer] stack.
type context int8

const (
	// inArray is an open array.
	inArray context = iota

	// inObject is an open object waiting for a key or its end.
	inObject

	// inValue is an object member whose key has been written
	// and whose value is pending.
	inValue
)

func (c context) String() string {
	switch c {
	case inArray:
		return "Array"
	case inObject:
		return "Object"
	case inValue:
		return "Value"
	}
	return "Unknown"
}

// MaxPrecision is the largest supported number of fractional digits.
const MaxPrecision = 13

// Writer writes a JSON document to an underlying [io.Writer].
// It is not safe for concurrent use.
type Writer struct {
	out *bufio.Writer
	err error

	stack    []context
	hasValue bool
	depth    int

	// started is set once the top-level value is begun.
	// A document holds exactly one top-level value.
	started bool

	pretty      bool
	precision   int
	indentChar  indent.Character
	indentWidth int
}

// NewWriter returns a new [Writer] writing to w, with pretty printing
// using tabs and [MaxPrecision] fractional digits.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		out:         bufio.NewWriter(w),
		pretty:      true,
		precision:   MaxPrecision,
		indentChar:  indent.Tab,
		indentWidth: 2,
	}
}

// SetPretty sets whether newlines, indentation and extra spaces are written.
// It only affects presentation, never which calls are legal.
func (w *Writer) SetPretty(pretty bool) *Writer {
	w.pretty = pretty
	return w
}

// Pretty returns whether pretty printing is enabled.
func (w *Writer) Pretty() bool {
	return w.pretty
}

// SetIndent sets the indentation character and, for spaces,
// the number of spaces per level.
func (w *Writer) SetIndent(ich indent.Character, width int) *Writer {
	w.indentChar = ich
	w.indentWidth = max(width, 0)
	return w
}

// SetPrecision sets the number of fractional digits used for floating
// point values, clamped to the range [0, MaxPrecision].
func (w *Writer) SetPrecision(p int) *Writer {
	w.precision = min(max(p, 0), MaxPrecision)
	return w
}

// Precision returns the number of fractional digits used for floats.
func (w *Writer) Precision() int {
	return w.precision
}

// Depth returns the number of open containers and pending values.
func (w *Writer) Depth() int {
	return len(w.stack)
}

// Err returns the first error encountered writing to the underlying
// writer, if any. Buffered output is only written on [Writer.Flush].
func (w *Writer) Err() error {
	return w.err
}

// Flush writes any buffered output to the underlying writer
// and returns the sticky error, if any.
func (w *Writer) Flush() error {
	w.setErr(w.out.Flush())
	return w.err
}

func (w *Writer) setErr(err error) {
	if err != nil && w.err == nil {
		w.err = err
	}
}

func (w *Writer) put(s string) {
	_, err := w.out.WriteString(s)
	w.setErr(err)
}

func (w *Writer) putByte(b byte) {
	w.setErr(w.out.WriteByte(b))
}

func (w *Writer) top() (context, bool) {
	if len(w.stack) == 0 {
		return 0, false
	}
	return w.stack[len(w.stack)-1], true
}

func (w *Writer) push(c context) {
	w.stack = append(w.stack, c)
}

func (w *Writer) pop() {
	w.stack = w.stack[:len(w.stack)-1]
}

// require panics with a [GrammarError] unless the top of the stack is
// one of the given contexts. empty allows an empty stack.
func (w *Writer) require(op string, empty bool, allowed ...context) {
	c, ok := w.top()
	if !ok {
		if empty {
			return
		}
		panic(&GrammarError{Op: op, Empty: true})
	}
	for _, a := range allowed {
		if c == a {
			return
		}
	}
	panic(&GrammarError{Op: op, Context: c.String()})
}

// beforeValue consumes a pending object value, or writes the separator
// before a non-first array element, and marks the container non-empty.
func (w *Writer) beforeValue(op string) {
	w.require(op, true, inValue, inArray)
	c, ok := w.top()
	if !ok {
		if w.started {
			panic(&GrammarError{Op: op, Empty: true, Complete: true})
		}
		w.started = true
	}
	switch {
	case ok && c == inValue:
		w.pop()
	case ok && c == inArray && w.hasValue:
		if w.pretty {
			w.put(", ")
		} else {
			w.putByte(',')
		}
	}
	w.hasValue = true
}

func (w *Writer) newline() {
	if !w.pretty {
		return
	}
	w.putByte('\n')
	w.put(indent.String(w.indentChar, w.depth, w.indentWidth))
}

// Key writes the key of the next object member. It is only legal
// directly inside an object, and must be followed by exactly one value.
func (w *Writer) Key(name string) {
	w.require("Key", false, inObject)
	if w.hasValue {
		w.putByte(',')
	}
	w.newline()
	w.writeString(name)
	if w.pretty {
		w.put(": ")
	} else {
		w.putByte(':')
	}
	w.hasValue = true
	w.push(inValue)
}

// StartObject opens an object as the next value.
func (w *Writer) StartObject() {
	w.beforeValue("StartObject")
	w.push(inObject)
	w.hasValue = false
	w.depth++
	w.putByte('{')
}

// StartObjectKey writes the given key and opens an object as its value.
func (w *Writer) StartObjectKey(key string) {
	w.Key(key)
	w.StartObject()
}

// EndObject closes the innermost container, which must be an object
// with no pending value.
func (w *Writer) EndObject() {
	w.require("EndObject", false, inObject)
	w.pop()
	w.depth--
	if w.hasValue {
		w.newline()
	}
	w.hasValue = true
	w.putByte('}')
}

// StartArray opens an array as the next value.
func (w *Writer) StartArray() {
	w.beforeValue("StartArray")
	w.push(inArray)
	w.hasValue = false
	w.putByte('[')
}

// StartArrayKey writes the given key and opens an array as its value.
func (w *Writer) StartArrayKey(key string) {
	w.Key(key)
	w.StartArray()
}

// EndArray closes the innermost container, which must be an array.
func (w *Writer) EndArray() {
	w.require("EndArray", false, inArray)
	w.pop()
	w.hasValue = true
	w.putByte(']')
}
