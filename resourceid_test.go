// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package arsc

import "testing"

func TestIDPackUnpack(t *testing.T) {
	tests := []struct {
		pkg, typ uint8
		entry    uint16
		want     uint32
	}{
		{0x7f, 0x01, 0x0000, 0x7f010000},
		{0x01, 0x02, 0x1234, 0x01021234},
		{0x00, 0x00, 0x0000, 0x00000000},
	}
	for _, tt := range tests {
		id := NewID(tt.pkg, tt.typ, tt.entry)
		if id.Uint32() != tt.want {
			t.Errorf("NewID(%#x, %#x, %#x) = %#x, want %#x", tt.pkg, tt.typ, tt.entry, id.Uint32(), tt.want)
		}
		if id.PackageID() != tt.pkg {
			t.Errorf("PackageID() = %#x, want %#x", id.PackageID(), tt.pkg)
		}
		if id.TypeID() != tt.typ {
			t.Errorf("TypeID() = %#x, want %#x", id.TypeID(), tt.typ)
		}
		if id.EntryID() != tt.entry {
			t.Errorf("EntryID() = %#x, want %#x", id.EntryID(), tt.entry)
		}
	}
}

func TestIDFromUint32RoundTrip(t *testing.T) {
	raw := uint32(0x7f0a00b1)
	id := IDFromUint32(raw)
	if id.Uint32() != raw {
		t.Errorf("round trip failed: got %#x, want %#x", id.Uint32(), raw)
	}
}

func TestIDString(t *testing.T) {
	id := NewID(0x7f, 0x01, 0x0000)
	want := "0x7f010000"
	if got := id.String(); got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}
