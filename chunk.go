// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package arsc

import (
	"fmt"
	"io"
)

// ChunkType identifies the 16-bit type code carried by every chunk header.
type ChunkType uint16

// Chunk type vocabulary. Null, the Xml family, and Library are recognized
// values but are not ingested by the table loader; see ChunkIter.Next.
const (
	ChunkKindNull              ChunkType = 0x0000
	ChunkKindStringPool        ChunkType = 0x0001
	ChunkKindTable             ChunkType = 0x0002
	ChunkKindXML               ChunkType = 0x0003
	ChunkKindXMLStartNamespace ChunkType = 0x0100
	ChunkKindXMLEndNamespace   ChunkType = 0x0101
	ChunkKindXMLStartElement   ChunkType = 0x0102
	ChunkKindXMLEndElement     ChunkType = 0x0103
	ChunkKindXMLCData          ChunkType = 0x0104
	ChunkKindXMLResourceMap    ChunkType = 0x0180
	ChunkKindPackage           ChunkType = 0x0200
	ChunkKindType              ChunkType = 0x0201
	ChunkKindSpec              ChunkType = 0x0202
	ChunkKindLibrary           ChunkType = 0x0203
)

// String stringifies the chunk type for log messages and error text.
func (k ChunkType) String() string {
	names := map[ChunkType]string{
		ChunkKindNull:              "Null",
		ChunkKindStringPool:        "StringPool",
		ChunkKindTable:             "Table",
		ChunkKindXML:               "Xml",
		ChunkKindXMLStartNamespace: "XmlStartNamespace",
		ChunkKindXMLEndNamespace:   "XmlEndNamespace",
		ChunkKindXMLStartElement:   "XmlStartElement",
		ChunkKindXMLEndElement:     "XmlEndElement",
		ChunkKindXMLCData:          "XmlCdata",
		ChunkKindXMLResourceMap:    "XmlResourceMap",
		ChunkKindPackage:           "Package",
		ChunkKindType:              "Type",
		ChunkKindSpec:              "Spec",
		ChunkKindLibrary:           "Library",
	}
	if n, ok := names[k]; ok {
		return n
	}
	return fmt.Sprintf("Unknown(%#04x)", uint16(k))
}

// Chunk is a tagged view over a bounded byte range: [0, TotalSize) of bytes,
// relative to the chunk's own start. It never copies the underlying buffer.
type Chunk struct {
	Kind       ChunkType
	HeaderSize uint16
	TotalSize  uint32

	// Offset is the byte offset of this chunk within the slice given to the
	// ChunkIter that produced it (not necessarily the whole input file).
	Offset uint32

	bytes []byte
}

// Children returns a walker over this chunk's nested chunks, positioned
// HeaderSize bytes past the chunk start and bounded by TotalSize. Only
// Table and Package chunks have children; leaf chunks (StringPool, Spec,
// Type) return ok == false.
func (c Chunk) Children() (iter *ChunkIter, ok bool) {
	switch c.Kind {
	case ChunkKindTable, ChunkKindPackage:
		return NewChunkIter(c.bytes[c.HeaderSize:]), true
	default:
		return nil, false
	}
}

// ChunkIter is a lazy, forward-only, single-pass sequence of chunks over a
// byte slice. Once Next returns a non-nil error the iterator is exhausted:
// every subsequent call returns (Chunk{}, io.EOF).
type ChunkIter struct {
	buf  []byte
	pos  uint32
	done bool
}

// NewChunkIter returns a walker over buf, starting at offset 0.
func NewChunkIter(buf []byte) *ChunkIter {
	return &ChunkIter{buf: buf}
}

// Next reads one chunk header from the current cursor position and advances
// past it. It returns io.EOF once the buffer is exhausted, or a wrapped
// ErrCorruptData the first time a structural problem is found, after which
// it always returns io.EOF.
func (it *ChunkIter) Next() (Chunk, error) {
	if it.done {
		return Chunk{}, io.EOF
	}
	if it.pos == uint32(len(it.buf)) {
		it.done = true
		return Chunk{}, io.EOF
	}

	remaining := it.buf[it.pos:]
	if len(remaining) < 8 {
		it.done = true
		return Chunk{}, corruptf("bytes left cannot contain header (%d remaining)", len(remaining))
	}

	kind := ChunkType(leU16(remaining, 0))
	headerSize := leU16(remaining, 2)
	totalSize := leU32(remaining, 4)

	if totalSize < uint32(headerSize) {
		it.done = true
		return Chunk{}, corruptf("chunk total size %#x smaller than header size %#x", totalSize, headerSize)
	}
	if totalSize > uint32(len(remaining)) {
		it.done = true
		return Chunk{}, corruptf("chunk total size %#x exceeds %d remaining bytes", totalSize, len(remaining))
	}

	switch kind {
	case ChunkKindTable, ChunkKindPackage, ChunkKindStringPool, ChunkKindSpec, ChunkKindType:
		// recognized and ingestible.
	case ChunkKindNull, ChunkKindXML, ChunkKindXMLStartNamespace, ChunkKindXMLEndNamespace,
		ChunkKindXMLStartElement, ChunkKindXMLEndElement, ChunkKindXMLCData, ChunkKindXMLResourceMap,
		ChunkKindLibrary:
		it.done = true
		return Chunk{}, corruptf("chunk type %s is a recognized but unsupported vocabulary member", kind)
	default:
		it.done = true
		return Chunk{}, corruptf("unrecognized chunk type %#04x", uint16(kind))
	}

	c := Chunk{
		Kind:       kind,
		HeaderSize: headerSize,
		TotalSize:  totalSize,
		Offset:     it.pos,
		bytes:      remaining[:totalSize],
	}
	it.pos += totalSize
	return c, nil
}

func wrongKind(c Chunk, want ChunkType) error {
	return fmt.Errorf("chunk is %s, expected %s: %w", c.Kind, want, ErrUnexpectedChunk)
}

// tableHeader is the Table chunk's own fields, beyond the common header.
type tableHeader struct {
	PackageCount uint32
}

// AsTable reads the Table-specific header fields.
func (c Chunk) AsTable() (tableHeader, error) {
	if c.Kind != ChunkKindTable {
		return tableHeader{}, wrongKind(c, ChunkKindTable)
	}
	packageCount, err := readU32(c.bytes, 8)
	if err != nil {
		return tableHeader{}, err
	}
	return tableHeader{PackageCount: packageCount}, nil
}

// stringPoolHeader is the StringPool chunk's own fields.
type stringPoolHeader struct {
	StringCount   uint32
	StyleCount    uint32
	Flags         uint32
	StringsOffset uint32
	StylesOffset  uint32
}

// AsStringPool reads the StringPool-specific header fields.
func (c Chunk) AsStringPool() (stringPoolHeader, error) {
	if c.Kind != ChunkKindStringPool {
		return stringPoolHeader{}, wrongKind(c, ChunkKindStringPool)
	}
	var h stringPoolHeader
	var err error
	if h.StringCount, err = readU32(c.bytes, 8); err != nil {
		return stringPoolHeader{}, err
	}
	if h.StyleCount, err = readU32(c.bytes, 12); err != nil {
		return stringPoolHeader{}, err
	}
	if h.Flags, err = readU32(c.bytes, 16); err != nil {
		return stringPoolHeader{}, err
	}
	if h.StringsOffset, err = readU32(c.bytes, 20); err != nil {
		return stringPoolHeader{}, err
	}
	if h.StylesOffset, err = readU32(c.bytes, 24); err != nil {
		return stringPoolHeader{}, err
	}
	return h, nil
}

// packageHeader is the Package chunk's own fields.
type packageHeader struct {
	ID                      uint32
	Name                    []byte // 128 little-endian u16 code units, zero-terminated
	TypesStringBufferOffset uint32
	NamesStringBufferOffset uint32
}

// AsPackage reads the Package-specific header fields.
func (c Chunk) AsPackage() (packageHeader, error) {
	if c.Kind != ChunkKindPackage {
		return packageHeader{}, wrongKind(c, ChunkKindPackage)
	}
	var h packageHeader
	var err error
	if h.ID, err = readU32(c.bytes, 8); err != nil {
		return packageHeader{}, err
	}
	if h.Name, err = readBytes(c.bytes, 12, 256); err != nil {
		return packageHeader{}, err
	}
	if h.TypesStringBufferOffset, err = readU32(c.bytes, 268); err != nil {
		return packageHeader{}, err
	}
	if h.NamesStringBufferOffset, err = readU32(c.bytes, 276); err != nil {
		return packageHeader{}, err
	}
	return h, nil
}

// specHeader is the Spec chunk's own fields.
type specHeader struct {
	ID         uint8
	EntryCount uint32
}

// AsSpec reads the Spec-specific header fields.
func (c Chunk) AsSpec() (specHeader, error) {
	if c.Kind != ChunkKindSpec {
		return specHeader{}, wrongKind(c, ChunkKindSpec)
	}
	var h specHeader
	var err error
	if h.ID, err = readU8(c.bytes, 8); err != nil {
		return specHeader{}, err
	}
	if h.EntryCount, err = readU32(c.bytes, 12); err != nil {
		return specHeader{}, err
	}
	return h, nil
}

// SpecFlags returns the per-entry configuration-flag bitmask array that
// follows the Spec header, one u32 per entry.
func (c Chunk) SpecFlags() ([]uint32, error) {
	h, err := c.AsSpec()
	if err != nil {
		return nil, err
	}
	flags := make([]uint32, h.EntryCount)
	base := uint32(c.HeaderSize)
	for i := range flags {
		v, err := readU32(c.bytes, base+uint32(i)*4)
		if err != nil {
			return nil, err
		}
		flags[i] = v
	}
	return flags, nil
}

// typeHeader is the Type chunk's own fields.
type typeHeader struct {
	ID            uint8
	Flags         uint8
	EntryCount    uint32
	EntriesOffset uint32
	Config        [64]byte
}

// AsType reads the Type-specific header fields.
func (c Chunk) AsType() (typeHeader, error) {
	if c.Kind != ChunkKindType {
		return typeHeader{}, wrongKind(c, ChunkKindType)
	}
	var h typeHeader
	var err error
	if h.ID, err = readU8(c.bytes, 8); err != nil {
		return typeHeader{}, err
	}
	if h.Flags, err = readU8(c.bytes, 9); err != nil {
		return typeHeader{}, err
	}
	if h.EntryCount, err = readU32(c.bytes, 12); err != nil {
		return typeHeader{}, err
	}
	if h.EntriesOffset, err = readU32(c.bytes, 16); err != nil {
		return typeHeader{}, err
	}
	cfg, err := readBytes(c.bytes, 20, 64)
	if err != nil {
		return typeHeader{}, err
	}
	copy(h.Config[:], cfg)
	return h, nil
}

// TypeEntryOffsets returns the entry-count 32-bit offsets into the entries
// payload that follow the Type header. An offset of 0xFFFFFFFF marks an
// absent slot.
func (c Chunk) TypeEntryOffsets() ([]uint32, error) {
	h, err := c.AsType()
	if err != nil {
		return nil, err
	}
	offsets := make([]uint32, h.EntryCount)
	base := uint32(c.HeaderSize)
	for i := range offsets {
		v, err := readU32(c.bytes, base+uint32(i)*4)
		if err != nil {
			return nil, err
		}
		offsets[i] = v
	}
	return offsets, nil
}
