// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package arsc

import "fmt"

// Configuration is the opaque 64-byte device-configuration qualifier record
// attached to every Type chunk. The wire format only guarantees the overall
// size; fields beyond the ones named below vary across the Android
// versions that have extended this record, so the raw bytes are kept in
// full and the named fields are a convenience projection over the prefix
// every version agrees on.
type Configuration struct {
	raw [64]byte
}

// NewConfiguration wraps a 64-byte record. Chunk.AsType always copies the 64
// bytes that follow the Type header's fixed fields; no shorter record is
// zero-padded.
func NewConfiguration(b [64]byte) Configuration {
	return Configuration{raw: b}
}

// Bytes returns the raw 64-byte record.
func (cfg Configuration) Bytes() [64]byte {
	return cfg.raw
}

// Size is the size field every Configuration begins with, letting readers
// distinguish how many of the named fields below are actually present.
func (cfg Configuration) Size() uint32 {
	return leU32(cfg.raw[:], 0)
}

// Imsi returns the (mcc, mnc) mobile network fields.
func (cfg Configuration) Imsi() (mcc, mnc uint16) {
	return leU16(cfg.raw[:], 4), leU16(cfg.raw[:], 6)
}

// Locale returns the raw 2-byte language and region fields. A 2-character
// code is stored one byte per character; no other packing is decoded.
func (cfg Configuration) Locale() (language, region [2]byte) {
	copy(language[:], cfg.raw[8:10])
	copy(region[:], cfg.raw[10:12])
	return
}

// ScreenType returns the orientation, touchscreen, and density qualifiers.
func (cfg Configuration) ScreenType() (orientation, touchscreen uint8, density uint16) {
	return cfg.raw[12], cfg.raw[13], leU16(cfg.raw[:], 14)
}

// Input returns the keyboard, navigation, and input-flag qualifiers.
func (cfg Configuration) Input() (keyboard, navigation, inputFlags uint8) {
	return cfg.raw[16], cfg.raw[17], cfg.raw[18]
}

// ScreenSize returns the width/height in density-independent pixel units.
func (cfg Configuration) ScreenSize() (width, height uint16) {
	return leU16(cfg.raw[:], 20), leU16(cfg.raw[:], 22)
}

// Version returns the SDK version and minor-version qualifiers.
func (cfg Configuration) Version() (sdkVersion, minorVersion uint16) {
	return leU16(cfg.raw[:], 24), leU16(cfg.raw[:], 26)
}

// ScreenConfig returns the screen-layout, UI-mode, and smallest-width
// qualifiers.
func (cfg Configuration) ScreenConfig() (screenLayout, uiMode uint8, smallestScreenWidthDp uint16) {
	return cfg.raw[28], cfg.raw[29], leU16(cfg.raw[:], 30)
}

// ScreenSizeDp returns the width/height qualifiers in dp, present on configs
// with Size() >= 36.
func (cfg Configuration) ScreenSizeDp() (widthDp, heightDp uint16) {
	return leU16(cfg.raw[:], 32), leU16(cfg.raw[:], 34)
}

// IsDefault reports whether every qualifier field is zero, i.e. this is the
// "no configuration" default entry.
func (cfg Configuration) IsDefault() bool {
	for i := 4; i < len(cfg.raw); i++ {
		if cfg.raw[i] != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether two configurations carry identical qualifier bytes.
func (cfg Configuration) Equal(other Configuration) bool {
	return cfg.raw == other.raw
}

func (cfg Configuration) String() string {
	if cfg.IsDefault() {
		return "default"
	}
	lang, region := cfg.Locale()
	_, _, density := cfg.ScreenType()
	return fmt.Sprintf("locale=%s-%s density=%d", trimZero(lang[:]), trimZero(region[:]), density)
}

func trimZero(b []byte) string {
	n := len(b)
	for n > 0 && b[n-1] == 0 {
		n--
	}
	return string(b[:n])
}
