// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package arsc

// Package is one ResTable_package: a named, 8-bit-identified namespace
// holding its own type-name pool, key-name pool, and the TypeSpecs that
// group its Type chunks by type id.
type Package struct {
	ID   uint8
	Name string

	typeStrings *StringPool
	keyStrings  *StringPool

	Types []*TypeSpec
}

// TypeName resolves the package-local type-name pool index carried by each
// TypeSpec.
func (p *Package) TypeName(index int) (string, error) {
	return p.typeStrings.StringAt(index)
}

// KeyName resolves the package-local key-name pool index carried by each
// Entry.
func (p *Package) KeyName(index int) (string, error) {
	return p.keyStrings.StringAt(index)
}

// TypeSpecByID returns the TypeSpec with the given 1-based type id, or nil.
func (p *Package) TypeSpecByID(id uint8) *TypeSpec {
	for _, t := range p.Types {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// TypeSpecByName returns the TypeSpec whose decoded name matches name, or
// nil.
func (p *Package) TypeSpecByName(name string) *TypeSpec {
	for _, t := range p.Types {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// TypeSpec groups every Type chunk sharing one type id: its entry arity
// (established by the first Type chunk observed for the id), the per-entry
// configuration-flag mask from a matching Spec chunk if one was present,
// and one TypeConfig per Type chunk (i.e. per device configuration the app
// ships resources for). A Spec chunk is descriptive only: its absence never
// prevents a TypeSpec from being assembled.
type TypeSpec struct {
	ID         uint8
	Name       string
	EntryCount uint32

	// EntryFlags is the per-entry configuration-variance bitmask from a
	// Spec chunk sharing this type id, or nil if no such Spec was present.
	// EntryFlags[i] tells which Configuration axes vary across Configs for
	// entry i.
	EntryFlags []uint32

	Configs []*TypeConfig
}

// TypeConfig is one Type chunk: the (entry-id -> Entry) slots materialized
// for a single device configuration.
type TypeConfig struct {
	Configuration Configuration

	// Entries is indexed by entry id, parallel to TypeSpec.EntryFlags; a nil
	// element means the entry is absent for this configuration (its offset
	// in the wire format was 0xFFFFFFFF).
	Entries []*Entry
}

// EntryAt returns the entry-id slot, or (nil, false) if absent.
func (tc *TypeConfig) EntryAt(entryID uint16) (*Entry, bool) {
	if int(entryID) >= len(tc.Entries) {
		return nil, false
	}
	e := tc.Entries[entryID]
	return e, e != nil
}
