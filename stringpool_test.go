// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package arsc

import (
	"encoding/binary"
	"testing"
	"unicode/utf16"
)

func buildUTF8StringPoolChunk(strings []string) Chunk {
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

	buf := header(ChunkKindStringPool, 28, 0)
	buf = append(buf, le(uint32(len(strings)))...)
	buf = append(buf, le(uint32(0))...)
	buf = append(buf, le(uint32(0x100))...)
	buf = append(buf, le(stringsStart)...)
	buf = append(buf, le(uint32(0))...)
	for _, o := range offsets {
		buf = append(buf, le(o)...)
	}
	for _, e := range entries {
		buf = append(buf, e...)
	}
	for len(buf)%4 != 0 {
		buf = append(buf, 0)
	}
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(buf)))

	return Chunk{Kind: ChunkKindStringPool, HeaderSize: 28, TotalSize: uint32(len(buf)), bytes: buf}
}

func buildUTF16StringPoolChunk(strings []string) Chunk {
	entries := make([][]byte, len(strings))
	offsets := make([]uint32, len(strings))
	var cur uint32
	for i, s := range strings {
		units := utf16.Encode([]rune(s))
		e := le(uint32(len(units)))[:2] // single-unit length prefix
		for _, u := range units {
			b := make([]byte, 2)
			binary.LittleEndian.PutUint16(b, u)
			e = append(e, b...)
		}
		entries[i] = e
		offsets[i] = cur
		cur += uint32(len(e))
	}
	stringsStart := uint32(28 + len(strings)*4)

	buf := header(ChunkKindStringPool, 28, 0)
	buf = append(buf, le(uint32(len(strings)))...)
	buf = append(buf, le(uint32(0))...)
	buf = append(buf, le(uint32(0))...) // flags: UTF-16
	buf = append(buf, le(stringsStart)...)
	buf = append(buf, le(uint32(0))...)
	for _, o := range offsets {
		buf = append(buf, le(o)...)
	}
	for _, e := range entries {
		buf = append(buf, e...)
	}
	for len(buf)%4 != 0 {
		buf = append(buf, 0)
	}
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(buf)))

	return Chunk{Kind: ChunkKindStringPool, HeaderSize: 28, TotalSize: uint32(len(buf)), bytes: buf}
}

func le(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func TestStringPoolUTF8(t *testing.T) {
	c := buildUTF8StringPoolChunk([]string{"Foo", "Test app", "Bar"})
	sp, err := newStringPool(c)
	if err != nil {
		t.Fatalf("newStringPool() error = %v", err)
	}
	if sp.Encoding() != EncodingUTF8 {
		t.Errorf("Encoding() = %v, want EncodingUTF8", sp.Encoding())
	}
	if sp.Count() != 3 {
		t.Errorf("Count() = %d, want 3", sp.Count())
	}
	for i, want := range []string{"Foo", "Test app", "Bar"} {
		got, err := sp.StringAt(i)
		if err != nil {
			t.Errorf("StringAt(%d) error = %v", i, err)
		}
		if got != want {
			t.Errorf("StringAt(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestStringPoolUTF16(t *testing.T) {
	c := buildUTF16StringPoolChunk([]string{"bool", "string"})
	sp, err := newStringPool(c)
	if err != nil {
		t.Fatalf("newStringPool() error = %v", err)
	}
	if sp.Encoding() != EncodingUTF16 {
		t.Errorf("Encoding() = %v, want EncodingUTF16", sp.Encoding())
	}
	for i, want := range []string{"bool", "string"} {
		got, err := sp.StringAt(i)
		if err != nil {
			t.Errorf("StringAt(%d) error = %v", i, err)
		}
		if got != want {
			t.Errorf("StringAt(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestStringPoolOutOfRange(t *testing.T) {
	c := buildUTF8StringPoolChunk([]string{"Foo"})
	sp, err := newStringPool(c)
	if err != nil {
		t.Fatalf("newStringPool() error = %v", err)
	}
	if _, err := sp.StringAt(1); err == nil {
		t.Errorf("StringAt(1) on a 1-string pool should fail")
	}
	if _, err := sp.StringAt(-1); err == nil {
		t.Errorf("StringAt(-1) should fail")
	}
}

func TestStringPoolTooSmall(t *testing.T) {
	c := Chunk{Kind: ChunkKindStringPool, HeaderSize: 28, TotalSize: 8, bytes: make([]byte, 8)}
	if _, err := newStringPool(c); err == nil {
		t.Errorf("newStringPool() on an undersized chunk should fail")
	}
}
