// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonw

import (
	"encoding/base64"
	"io"
	"strconv"
)

// Null writes a null value.
func (w *Writer) Null() {
	w.beforeValue("Null")
	w.put("null")
}

// Bool writes a boolean value.
func (w *Writer) Bool(v bool) {
	w.beforeValue("Bool")
	if v {
		w.put("true")
	} else {
		w.put("false")
	}
}

// Int writes an integer value in decimal.
func (w *Writer) Int(v int) {
	w.beforeValue("Int")
	var buf [24]byte
	_, err := w.out.Write(strconv.AppendInt(buf[:0], int64(v), 10))
	w.setErr(err)
}

// Float writes a floating point value with the writer precision;
// see [FormatFloat].
func (w *Writer) Float(v float64) {
	w.beforeValue("Float")
	var buf [64]byte
	_, err := w.out.Write(AppendFloat(buf[:0], v, w.precision))
	w.setErr(err)
}

// Floats writes each of the given values as consecutive array elements.
func (w *Writer) Floats(vs ...float64) {
	for _, v := range vs {
		w.Float(v)
	}
}

// String writes a string value; see [AppendString] for the escaping rules.
func (w *Writer) String(v string) {
	w.beforeValue("String")
	w.writeString(v)
}

func (w *Writer) writeString(v string) {
	_, err := w.out.Write(AppendString(make([]byte, 0, len(v)+2), v))
	w.setErr(err)
}

// DataURI writes a string value holding the contents of r as a
// data URI of the given MIME type, "data:<mimeType>;base64,<payload>",
// with standard base64 encoding and padding. It reads r to the end.
// A read error is returned, after closing the string so that the
// document stays well formed; output errors are sticky as for all writes.
func (w *Writer) DataURI(r io.Reader, mimeType string) error {
	w.beforeValue("DataURI")
	w.putByte('"')
	w.put("data:")
	w.put(mimeType)
	w.put(";base64,")
	enc := base64.NewEncoder(base64.StdEncoding, w.out)
	src := &errReader{r: r}
	_, err := io.Copy(enc, src)
	if src.err == nil {
		w.setErr(err)
	}
	w.setErr(enc.Close())
	w.putByte('"')
	return src.err
}

// errReader records the first non-EOF read error,
// so that it can be told apart from output errors.
type errReader struct {
	r   io.Reader
	err error
}

func (er *errReader) Read(p []byte) (int, error) {
	n, err := er.r.Read(p)
	if err != nil && err != io.EOF && er.err == nil {
		er.err = err
	}
	return n, err
}

// Property writes a string member: the key followed by the value.
func (w *Writer) Property(key, value string) {
	w.Key(key)
	w.String(value)
}

// IntProperty writes an integer member.
func (w *Writer) IntProperty(key string, value int) {
	w.Key(key)
	w.Int(value)
}

// FloatProperty writes a floating point member.
func (w *Writer) FloatProperty(key string, value float64) {
	w.Key(key)
	w.Float(value)
}

// BoolProperty writes a boolean member.
func (w *Writer) BoolProperty(key string, value bool) {
	w.Key(key)
	w.Bool(value)
}
