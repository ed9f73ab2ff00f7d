// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package arsc

import "unicode/utf16"

// StringEncoding is the in-file character encoding of a string pool's
// payload.
type StringEncoding int

const (
	// EncodingUTF16 stores each string as a run of 16-bit code units.
	EncodingUTF16 StringEncoding = iota
	// EncodingUTF8 stores each string as a run of UTF-8 bytes.
	EncodingUTF8
)

// stringPoolUTF8Flag is bit 8 of a StringPool chunk's flags field; when set
// the pool is UTF-8 encoded, otherwise it is UTF-16.
const stringPoolUTF8Flag = 1 << 8

// StringPoolSpan is one style run: the sentinel-terminated (name, begin,
// end) record format used by style entries.
type StringPoolSpan struct {
	Name  uint32
	Begin uint32
	End   uint32
}

// styleSpanSentinel terminates a style entry's span list.
const styleSpanSentinel = 0xFFFFFFFF

// StringPool is an indexable, read-only view over a StringPool chunk. All
// strings are decoded lazily on StringAt, matching the "value payloads
// remain by reference" design note. The table loader decodes package and
// type names eagerly; entry names are not stored and are decoded from the
// key-name pool on each lookup.
type StringPool struct {
	encoding StringEncoding

	stringCount   int
	stringOffsets []uint32
	stringsStart  uint32

	styleCount   int
	styleOffsets []uint32
	stylesStart  uint32

	bytes []byte
}

// newStringPool parses a StringPool chunk into a StringPool view.
func newStringPool(c Chunk) (*StringPool, error) {
	h, err := c.AsStringPool()
	if err != nil {
		return nil, err
	}
	if c.TotalSize < 28 {
		return nil, corruptf("string pool size %#x too small", c.TotalSize)
	}
	if c.TotalSize < uint32(c.HeaderSize) {
		return nil, corruptf("string pool size %#x smaller than header size %#x", c.TotalSize, c.HeaderSize)
	}
	if (uint32(c.HeaderSize)|c.TotalSize)&0x3 != 0 {
		return nil, corruptf("string pool header size %#x / total size %#x not 4-byte aligned", c.HeaderSize, c.TotalSize)
	}

	base := uint32(c.HeaderSize)
	stringOffsets := make([]uint32, h.StringCount)
	for i := range stringOffsets {
		v, err := readU32(c.bytes, base+uint32(i)*4)
		if err != nil {
			return nil, err
		}
		stringOffsets[i] = v
	}

	var styleOffsets []uint32
	if h.StyleCount > 0 {
		styleBase := base + h.StringCount*4
		styleOffsets = make([]uint32, h.StyleCount)
		for i := range styleOffsets {
			v, err := readU32(c.bytes, styleBase+uint32(i)*4)
			if err != nil {
				return nil, err
			}
			styleOffsets[i] = v
		}
	}

	encoding := EncodingUTF16
	if h.Flags&stringPoolUTF8Flag != 0 {
		encoding = EncodingUTF8
	}

	return &StringPool{
		encoding:      encoding,
		stringCount:   int(h.StringCount),
		stringOffsets: stringOffsets,
		stringsStart:  h.StringsOffset,
		styleCount:    int(h.StyleCount),
		styleOffsets:  styleOffsets,
		stylesStart:   h.StylesOffset,
		bytes:         c.bytes,
	}, nil
}

// Count returns the number of strings in the pool.
func (sp *StringPool) Count() int {
	return sp.stringCount
}

// StyleCount returns the number of style entries in the pool.
func (sp *StringPool) StyleCount() int {
	return sp.styleCount
}

// Encoding reports whether the pool is UTF-8 or UTF-16 encoded.
func (sp *StringPool) Encoding() StringEncoding {
	return sp.encoding
}

// StringAt decodes and returns the string at index i. Ill-formed byte
// sequences are replaced with the Unicode replacement character; decoding
// never fails on content, only on an out-of-range index or a corrupt offset.
func (sp *StringPool) StringAt(i int) (string, error) {
	if i < 0 || i >= sp.stringCount {
		return "", badIndexf("string index %d out of range (count %d)", i, sp.stringCount)
	}
	if sp.encoding == EncodingUTF8 {
		return sp.stringAtUTF8(i)
	}
	return sp.stringAtUTF16(i)
}

func (sp *StringPool) stringAtUTF8(i int) (string, error) {
	offset := sp.stringsStart + sp.stringOffsets[i]

	// The length is encoded twice (character count, then byte count); the
	// first instance is skipped.
	_, consumed, err := decode8BitLength(sp.bytes, offset)
	if err != nil {
		return "", err
	}
	offset += consumed

	byteLen, consumed, err := decode8BitLength(sp.bytes, offset)
	if err != nil {
		return "", err
	}
	offset += consumed

	raw, err := readBytes(sp.bytes, offset, byteLen)
	if err != nil {
		return "", err
	}
	return toUTF8Lossy(raw), nil
}

func (sp *StringPool) stringAtUTF16(i int) (string, error) {
	offset := sp.stringsStart + sp.stringOffsets[i]

	length, consumed, err := decode16BitLength(sp.bytes, offset)
	if err != nil {
		return "", err
	}
	offset += consumed

	raw, err := readBytes(sp.bytes, offset, length*2)
	if err != nil {
		return "", err
	}
	units := make([]uint16, length)
	for j := uint32(0); j < length; j++ {
		units[j] = leU16(raw, int(j*2))
	}
	return string(utf16.Decode(units)), nil
}

// decode8BitLength decodes the UTF-8 pool's two-stage length prefix: a
// prefix byte with the high bit set extends into a second byte, encoding
// (hi&0x7F)<<8 | lo.
func decode8BitLength(b []byte, offset uint32) (length uint32, consumed uint32, err error) {
	first, err := readU8(b, offset)
	if err != nil {
		return 0, 0, err
	}
	if first&0x80 != 0 {
		second, err := readU8(b, offset+1)
		if err != nil {
			return 0, 0, err
		}
		return uint32(first&0x7f)<<8 | uint32(second), 2, nil
	}
	return uint32(first), 1, nil
}

// decode16BitLength decodes the UTF-16 pool's two-stage length prefix: a
// prefix unit with the high bit set extends into a second unit, encoding
// (hi&0x7FFF)<<16 | lo. The returned consumed count is in bytes.
func decode16BitLength(b []byte, offset uint32) (length uint32, consumed uint32, err error) {
	first, err := readU16(b, offset)
	if err != nil {
		return 0, 0, err
	}
	if first&0x8000 != 0 {
		second, err := readU16(b, offset+2)
		if err != nil {
			return 0, 0, err
		}
		return uint32(first&0x7fff)<<16 | uint32(second), 4, nil
	}
	return uint32(first), 2, nil
}

// StyleAt decodes and returns the style spans for the string at index i.
func (sp *StringPool) StyleAt(i int) ([]StringPoolSpan, error) {
	if i < 0 || i >= sp.styleCount {
		return nil, badIndexf("style index %d out of range (count %d)", i, sp.styleCount)
	}

	offset := sp.stylesStart + sp.styleOffsets[i]
	var spans []StringPoolSpan
	for {
		name, err := readU32(sp.bytes, offset)
		if err != nil {
			return nil, err
		}
		if name == styleSpanSentinel {
			break
		}
		begin, err := readU32(sp.bytes, offset+4)
		if err != nil {
			return nil, err
		}
		end, err := readU32(sp.bytes, offset+8)
		if err != nil {
			return nil, err
		}
		spans = append(spans, StringPoolSpan{Name: name, Begin: begin, End: end})
		offset += 12
	}
	return spans, nil
}
