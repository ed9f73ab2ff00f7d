// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package arsc

// boundsCheck reports whether [offset, offset+size) lies entirely within a
// slice of length blen, guarding against both overflow and truncation.
func boundsCheck(blen int, offset, size uint32) error {
	end := offset + size
	if end < offset || end > uint32(blen) {
		return corruptf("offset %#x size %#x exceeds bounds (len %#x)", offset, size, blen)
	}
	return nil
}

// readU8 reads a bounds-checked 8-bit value from b at offset.
func readU8(b []byte, offset uint32) (uint8, error) {
	if err := boundsCheck(len(b), offset, 1); err != nil {
		return 0, err
	}
	return leU8(b, int(offset)), nil
}

// readU16 reads a bounds-checked 16-bit little-endian value from b at offset.
func readU16(b []byte, offset uint32) (uint16, error) {
	if err := boundsCheck(len(b), offset, 2); err != nil {
		return 0, err
	}
	return leU16(b, int(offset)), nil
}

// readU32 reads a bounds-checked 32-bit little-endian value from b at offset.
func readU32(b []byte, offset uint32) (uint32, error) {
	if err := boundsCheck(len(b), offset, 4); err != nil {
		return 0, err
	}
	return leU32(b, int(offset)), nil
}

// readBytes returns a bounds-checked sub-slice of b.
func readBytes(b []byte, offset, size uint32) ([]byte, error) {
	if err := boundsCheck(len(b), offset, size); err != nil {
		return nil, err
	}
	return b[offset : offset+size], nil
}

// minU32 returns the smaller of x or y.
func minU32(x, y uint32) uint32 {
	if x < y {
		return x
	}
	return y
}
