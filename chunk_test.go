// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package arsc

import (
	"encoding/binary"
	"io"
	"testing"
)

func header(kind ChunkType, headerSize uint16, totalSize uint32) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint16(b[0:], uint16(kind))
	binary.LittleEndian.PutUint16(b[2:], headerSize)
	binary.LittleEndian.PutUint32(b[4:], totalSize)
	return b
}

func TestChunkIterEmpty(t *testing.T) {
	it := NewChunkIter(nil)
	if _, err := it.Next(); err != io.EOF {
		t.Errorf("Next() on empty buffer = %v, want io.EOF", err)
	}
}

func TestChunkIterSingleChunk(t *testing.T) {
	buf := header(ChunkKindSpec, 16, 20)
	buf = append(buf, make([]byte, 12)...)

	it := NewChunkIter(buf)
	c, err := it.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if c.Kind != ChunkKindSpec || c.HeaderSize != 16 || c.TotalSize != 20 {
		t.Errorf("Next() = %+v, want Kind=Spec HeaderSize=16 TotalSize=20", c)
	}

	if _, err := it.Next(); err != io.EOF {
		t.Errorf("second Next() = %v, want io.EOF", err)
	}
}

func TestChunkIterTruncatedHeader(t *testing.T) {
	it := NewChunkIter([]byte{1, 2, 3})
	if _, err := it.Next(); err == nil {
		t.Errorf("Next() on truncated header should fail")
	}
	if _, err := it.Next(); err != io.EOF {
		t.Errorf("Next() after a failure should report io.EOF, got %v", err)
	}
}

func TestChunkIterTotalSizeSmallerThanHeader(t *testing.T) {
	buf := header(ChunkKindSpec, 16, 8)
	buf = append(buf, make([]byte, 8)...)
	it := NewChunkIter(buf)
	if _, err := it.Next(); err == nil {
		t.Errorf("Next() with total size < header size should fail")
	}
}

func TestChunkIterTotalSizeExceedsRemaining(t *testing.T) {
	buf := header(ChunkKindSpec, 16, 1000)
	it := NewChunkIter(buf)
	if _, err := it.Next(); err == nil {
		t.Errorf("Next() with total size exceeding the remaining buffer should fail")
	}
}

func TestChunkIterUnrecognizedKind(t *testing.T) {
	buf := header(ChunkType(0xbeef), 8, 8)
	it := NewChunkIter(buf)
	if _, err := it.Next(); err == nil {
		t.Errorf("Next() with an unrecognized chunk type should fail")
	}
}

func TestChunkIterRecognizedButUnsupportedKind(t *testing.T) {
	buf := header(ChunkKindXML, 8, 8)
	it := NewChunkIter(buf)
	if _, err := it.Next(); err == nil {
		t.Errorf("Next() with a recognized but unsupported chunk type should fail")
	}
}

func TestChunkTypeString(t *testing.T) {
	tests := []struct {
		k    ChunkType
		want string
	}{
		{ChunkKindTable, "Table"},
		{ChunkKindType, "Type"},
		{ChunkType(0xdead), "Unknown(0xdead)"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("%#04x.String() = %s, want %s", uint16(tt.k), got, tt.want)
		}
	}
}
