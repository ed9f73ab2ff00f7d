// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package arsc

import "fmt"

// ID is a packed 32-bit resource identifier: (package-id << 24) |
// (type-id << 16) | entry-id. Any triple is accepted; there is no
// validation.
type ID uint32

// NewID packs a (package, type, entry) triple into a ResourceId.
func NewID(packageID, typeID uint8, entryID uint16) ID {
	return ID(uint32(packageID)<<24 | uint32(typeID)<<16 | uint32(entryID))
}

// IDFromUint32 performs a lossless conversion from the raw 32-bit
// representation.
func IDFromUint32(v uint32) ID {
	return ID(v)
}

// PackageID returns the 8-bit package component.
func (id ID) PackageID() uint8 {
	return uint8(id >> 24)
}

// TypeID returns the 8-bit type component.
func (id ID) TypeID() uint8 {
	return uint8(id >> 16)
}

// EntryID returns the 16-bit entry component.
func (id ID) EntryID() uint16 {
	return uint16(id)
}

// Uint32 performs a lossless conversion to the raw 32-bit representation.
func (id ID) Uint32() uint32 {
	return uint32(id)
}

// String renders the id the way Android tooling conventionally does:
// 0xPPTTEEEE.
func (id ID) String() string {
	return fmt.Sprintf("%#08x", uint32(id))
}
