// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package apk

import (
	"archive/zip"
	"bytes"
	"testing"
)

func buildTestApk(t *testing.T, entries map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Create(%s) error = %v", name, err)
		}
		if _, err := w.Write(content); err != nil {
			t.Fatalf("Write(%s) error = %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip Close() error = %v", err)
	}
	return buf.Bytes()
}

func TestOpenArsc(t *testing.T) {
	want := []byte{0x02, 0x00, 0x0c, 0x00, 0xde, 0xad, 0xbe, 0xef}
	data := buildTestApk(t, map[string][]byte{
		"AndroidManifest.xml": {1, 2, 3},
		arscEntryName:         want,
	})

	a, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("OpenBytes() error = %v", err)
	}
	got, err := a.OpenArsc()
	if err != nil {
		t.Fatalf("OpenArsc() error = %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("OpenArsc() = %v, want %v", got, want)
	}
}

func TestOpenArscMissing(t *testing.T) {
	data := buildTestApk(t, map[string][]byte{"AndroidManifest.xml": {1}})
	a, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("OpenBytes() error = %v", err)
	}
	if _, err := a.OpenArsc(); err == nil {
		t.Errorf("OpenArsc() on an apk without resources.arsc should fail")
	}
}

func TestEntries(t *testing.T) {
	data := buildTestApk(t, map[string][]byte{"a.txt": {1}, "b.txt": {2}})
	a, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("OpenBytes() error = %v", err)
	}
	entries := a.Entries()
	if len(entries) != 2 {
		t.Errorf("len(Entries()) = %d, want 2", len(entries))
	}
}
