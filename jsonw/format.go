// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonw

import (
	"math"
	"strconv"
)

// FormatFloat formats x in fixed decimal notation with the given number
// of fractional digits (clamped to [0, MaxPrecision]), then strips
// trailing zeros while keeping at least one fractional digit, e.g.,
// 1.500000 becomes 1.5 and 2.000000 becomes 2.0. Rounding to the
// precision is round-half-to-even on the exact binary value, as done by
// [strconv.FormatFloat], so 1.25 at precision 1 is 1.2.
// NaN and infinities have no JSON representation and format as null.
func FormatFloat(x float64, precision int) string {
	return string(AppendFloat(nil, x, precision))
}

// AppendFloat appends the [FormatFloat] form of x to dst.
func AppendFloat(dst []byte, x float64, precision int) []byte {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return append(dst, "null"...)
	}
	precision = min(max(precision, 0), MaxPrecision)
	start := len(dst)
	dst = strconv.AppendFloat(dst, x, 'f', precision, 64)
	if precision == 0 {
		return append(dst, ".0"...)
	}
	end := len(dst)
	for end > start+1 && dst[end-1] == '0' && dst[end-2] != '.' {
		end--
	}
	return dst[:end]
}

const hexDigits = "0123456789abcdef"

// AppendString appends s to dst as a quoted JSON string. Besides the
// escapes JSON requires, U+2028 and U+2029 are written as \u2028 and
// \u2029: they are legal in JSON strings but terminate statements when
// the document is evaluated as JavaScript. Other bytes, including
// invalid UTF-8, are copied through unchanged.
func AppendString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == '\\':
			dst = append(dst, `\\`...)
		case ch == '"':
			dst = append(dst, `\"`...)
		case ch == '\b':
			dst = append(dst, `\b`...)
		case ch == '\f':
			dst = append(dst, `\f`...)
		case ch == '\n':
			dst = append(dst, `\n`...)
		case ch == '\r':
			dst = append(dst, `\r`...)
		case ch == '\t':
			dst = append(dst, `\t`...)
		case ch <= 0x1f:
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[ch>>4], hexDigits[ch&0xf])
		case ch == 0xe2 && i+2 < len(s) && s[i+1] == 0x80 && s[i+2] == 0xa8:
			dst = append(dst, `\u2028`...)
			i += 2
		case ch == 0xe2 && i+2 < len(s) && s[i+1] == 0x80 && s[i+2] == 0xa9:
			dst = append(dst, `\u2029`...)
			i += 2
		default:
			dst = append(dst, ch)
		}
	}
	return append(dst, '"')
}
