// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package arsctest builds small, hand-assembled resources.arsc byte buffers
// for use by the package's table-driven tests, in place of committing
// binary fixture files.
package arsctest

import (
	"bytes"
	"encoding/binary"
	"unicode/utf16"
)

// Canonical fixture identifiers, exported so tests can assert against them
// without re-deriving the layout Build constructs.
const (
	PackageName = "test.app"
	PackageID   = 0x7f

	TypeBool   = "bool"
	TypeString = "string"

	EntryFoo     = "foo"
	EntryAppName = "app_name"

	ValueAppName = "Test app"
	ValueFoo     = "Bar"
)

func le16(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

func le32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func pad4(b []byte) []byte {
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	return b
}

func patchTotalSize(b []byte) []byte {
	binary.LittleEndian.PutUint32(b[4:8], uint32(len(b)))
	return b
}

// buildStringPoolUTF8 assembles a UTF-8-flagged StringPool chunk with no
// style spans, suitable for ASCII fixture strings.
func buildStringPoolUTF8(strings []string) []byte {
	entries := make([][]byte, len(strings))
	offsets := make([]uint32, len(strings))
	var cur uint32
	for i, s := range strings {
		e := []byte{byte(len(s)), byte(len(s))}
		e = append(e, s...)
		entries[i] = e
		offsets[i] = cur
		cur += uint32(len(e))
	}
	stringsStart := uint32(28 + len(strings)*4)

	var buf bytes.Buffer
	buf.Write(le16(0x0001)) // ChunkKindStringPool
	buf.Write(le16(28))     // header size
	buf.Write(le32(0))      // total size, patched below
	buf.Write(le32(uint32(len(strings))))
	buf.Write(le32(0))          // style count
	buf.Write(le32(0x100))      // flags: UTF-8
	buf.Write(le32(stringsStart))
	buf.Write(le32(0)) // styles start
	for _, o := range offsets {
		buf.Write(le32(o))
	}
	for _, e := range entries {
		buf.Write(e)
	}

	return patchTotalSize(pad4(buf.Bytes()))
}

// buildSpec assembles a Spec chunk for the given type id with every entry's
// configuration-flag mask set to 0 (no configuration axes vary).
func buildSpec(typeID uint8, entryCount int) []byte {
	var buf bytes.Buffer
	buf.Write(le16(0x0202)) // ChunkKindSpec
	buf.Write(le16(16))
	buf.Write(le32(0))
	buf.WriteByte(typeID)
	buf.Write([]byte{0, 0, 0}) // padding
	buf.Write(le32(uint32(entryCount)))
	for i := 0; i < entryCount; i++ {
		buf.Write(le32(0))
	}
	return patchTotalSize(buf.Bytes())
}

type fixtureEntry struct {
	key      uint32
	valType  uint8
	valData  uint32
}

// buildType assembles a single Type chunk (the default, empty
// configuration) holding the given entries, one per entry id in order.
func buildType(typeID uint8, entries []fixtureEntry) []byte {
	const headerSize = 84
	entryCount := len(entries)
	offsetsLen := entryCount * 4
	entriesOffset := uint32(headerSize + offsetsLen)

	var entryBuf bytes.Buffer
	offsets := make([]uint32, entryCount)
	var cur uint32
	for i, e := range entries {
		offsets[i] = cur
		entryBuf.Write(le16(8)) // entry header size
		entryBuf.Write(le16(0)) // flags: simple
		entryBuf.Write(le32(e.key))
		entryBuf.Write(le16(8)) // value size
		entryBuf.WriteByte(0) // padding
		entryBuf.WriteByte(e.valType)
		entryBuf.Write(le32(e.valData))
		cur += 16
	}

	var buf bytes.Buffer
	buf.Write(le16(0x0201)) // ChunkKindType
	buf.Write(le16(headerSize))
	buf.Write(le32(0))
	buf.WriteByte(typeID)
	buf.WriteByte(0) // flags: dense layout
	buf.Write([]byte{0, 0})
	buf.Write(le32(uint32(entryCount)))
	buf.Write(le32(entriesOffset))
	buf.Write(make([]byte, 64)) // default (all-zero) configuration
	for _, o := range offsets {
		buf.Write(le32(o))
	}
	buf.Write(entryBuf.Bytes())

	return patchTotalSize(buf.Bytes())
}

func encodeUTF16Z(s string, fieldLen int) []byte {
	units := utf16.Encode([]rune(s))
	b := make([]byte, fieldLen*2)
	for i, u := range units {
		binary.LittleEndian.PutUint16(b[i*2:], u)
	}
	return b
}

// buildPackage assembles a Package chunk declaring two types: "bool" with a
// single entry ("foo"), and "string" with two entries ("app_name" at slot 0,
// "foo" at slot 1, reusing the same key-pool index as bool/foo since the
// key-name pool is shared across every type in a package).
func buildPackage() []byte {
	typeStrings := buildStringPoolUTF8([]string{TypeBool, TypeString})
	keyStrings := buildStringPoolUTF8([]string{EntryFoo, EntryAppName})

	// value type-tags, mirroring the vocabulary in value.go.
	const valueIntBoolean = 0x12
	const valueString = 0x03

	boolSpec := buildSpec(1, 1)
	boolType := buildType(1, []fixtureEntry{{key: 0, valType: valueIntBoolean, valData: 1}})

	stringSpec := buildSpec(2, 2)
	stringType := buildType(2, []fixtureEntry{
		{key: 1, valType: valueString, valData: 0},
		{key: 0, valType: valueString, valData: 1},
	})

	const headerSize = 288
	var buf bytes.Buffer
	buf.Write(le16(0x0200)) // ChunkKindPackage
	buf.Write(le16(headerSize))
	buf.Write(le32(0))
	buf.Write(le32(PackageID))
	buf.Write(encodeUTF16Z(PackageName, 128))
	buf.Write(le32(0)) // typeStringsOffset, unused by the loader
	buf.Write(le32(0)) // reserved
	buf.Write(le32(0)) // keyStringsOffset, unused by the loader
	buf.Write(make([]byte, 8)) // reserved padding up to headerSize

	buf.Write(typeStrings)
	buf.Write(keyStrings)
	buf.Write(boolSpec)
	buf.Write(boolType)
	buf.Write(stringSpec)
	buf.Write(stringType)

	return patchTotalSize(buf.Bytes())
}

// Build assembles a complete, minimal but structurally valid resources.arsc
// buffer: one package ("test.app", id 0x7f) declaring a boolean resource
// ("bool/foo" = true) and two string resources ("string/app_name" = "Test
// app", "string/foo" = "Bar"), matching the canonical constants exported
// above. This yields resid-iter order [0x7f010000, 0x7f020000, 0x7f020001].
func Build() []byte {
	values := buildStringPoolUTF8([]string{ValueAppName, ValueFoo})
	pkg := buildPackage()

	var buf bytes.Buffer
	buf.Write(le16(0x0002)) // ChunkKindTable
	buf.Write(le16(12))
	buf.Write(le32(0))
	buf.Write(le32(1)) // package count
	buf.Write(values)
	buf.Write(pkg)

	return patchTotalSize(buf.Bytes())
}
