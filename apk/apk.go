// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package apk opens an Android APK (a ZIP archive) and exposes its
// resources.arsc entry, the external collaborator arsc.Parse needs before
// it can do anything.
package apk

import (
	"archive/zip"
	"fmt"
	"io"
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// arscEntryName is the conventional path of the compiled resource table
// inside an APK.
const arscEntryName = "resources.arsc"

// Apk is an open APK archive. Close releases the memory mapping (or,
// for an in-memory-backed Apk, is a no-op).
type Apk struct {
	zr   *zip.Reader
	data mmap.MMap
	f    *os.File
}

// Open memory-maps the named APK file and opens it as a ZIP archive.
func Open(name string) (*Apk, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening apk: %w", err)
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mapping apk: %w", err)
	}

	zr, err := zip.NewReader(bytesReaderAt(data), int64(len(data)))
	if err != nil {
		data.Unmap()
		f.Close()
		return nil, fmt.Errorf("opening apk as zip: %w", err)
	}

	return &Apk{zr: zr, data: data, f: f}, nil
}

// OpenBytes opens an APK already held in memory, without mapping a file.
func OpenBytes(data []byte) (*Apk, error) {
	zr, err := zip.NewReader(bytesReaderAt(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening apk as zip: %w", err)
	}
	return &Apk{zr: zr}, nil
}

// Close releases any memory mapping and open file descriptor held by the
// Apk. It is a no-op for an OpenBytes-backed Apk.
func (a *Apk) Close() error {
	if a.data != nil {
		if err := a.data.Unmap(); err != nil {
			return err
		}
	}
	if a.f != nil {
		return a.f.Close()
	}
	return nil
}

// OpenArsc locates and reads the APK's resources.arsc entry in full.
func (a *Apk) OpenArsc() ([]byte, error) {
	for _, f := range a.zr.File {
		if f.Name != arscEntryName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", arscEntryName, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", arscEntryName, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("apk does not contain %s", arscEntryName)
}

// Entries lists every file path in the archive, for callers wanting a
// quick structural overview alongside the resource table.
func (a *Apk) Entries() []string {
	names := make([]string, len(a.zr.File))
	for i, f := range a.zr.File {
		names[i] = f.Name
	}
	return names
}

// bytesReaderAt adapts a byte slice to io.ReaderAt, as zip.NewReader
// requires, without an extra copy.
type bytesReaderAt []byte

func (b bytesReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(b)) {
		return 0, io.EOF
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
