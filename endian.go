// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package arsc

import (
	"encoding/binary"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// leU8 reads an 8-bit little-endian (i.e. endian-agnostic) integer at
// offset. The caller is responsible for bounds-checking offset against b;
// this is pure byte math and never fails, mirroring the split between
// binary.LittleEndian's bare accessors and the bounds-checked
// readU8/readU16/readU32 wrappers in helper.go.
func leU8(b []byte, offset int) uint8 {
	return b[offset]
}

// leU16 reads a 16-bit little-endian integer at offset.
func leU16(b []byte, offset int) uint16 {
	return binary.LittleEndian.Uint16(b[offset:])
}

// leU32 reads a 32-bit little-endian integer at offset.
func leU32(b []byte, offset int) uint32 {
	return binary.LittleEndian.Uint32(b[offset:])
}

// decodeUTF16Z decodes up to n little-endian UTF-16 code units starting at
// b, stopping at the first zero unit (or at n units if none is found). Used
// to decode the Package header's 128-unit name field.
func decodeUTF16Z(b []byte, n int) string {
	units := make([]uint16, 0, n)
	for i := 0; i < n; i++ {
		off := i * 2
		if off+2 > len(b) {
			break
		}
		u := leU16(b, off)
		if u == 0 {
			break
		}
		units = append(units, u)
	}
	return string(utf16.Decode(units))
}

// toUTF8Lossy decodes b as UTF-8, substituting the replacement character for
// any ill-formed byte sequence, one replacement per malformed byte (so a
// truncated multi-byte sequence yields one replacement per byte it holds).
func toUTF8Lossy(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		sb.WriteRune(r)
		b = b[size:]
	}
	return sb.String()
}
