// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package arsc

import "fmt"

// ResidEntry pairs a packed resource id with the fully-qualified name
// (package/type/entry) ResidIter resolves it to.
type ResidEntry struct {
	ID          ID
	Package     string
	Type        string
	Name        string
}

// ResidIter walks every (package, type, entry) slot declared by a Table,
// regardless of how many device configurations it has values for, yielding
// one ResidEntry per distinct id.
type ResidIter struct {
	table *Table

	pkgIdx  int
	typeIdx int
	entIdx  int
}

// ResidIter returns a walker over every resource id the table declares.
func (t *Table) ResidIter() *ResidIter {
	return &ResidIter{table: t}
}

// Next returns the next resource id, or (ResidEntry{}, false) once
// exhausted.
func (it *ResidIter) Next() (ResidEntry, bool) {
	for it.pkgIdx < len(it.table.Packages) {
		pkg := it.table.Packages[it.pkgIdx]
		if it.typeIdx >= len(pkg.Types) {
			it.pkgIdx++
			it.typeIdx = 0
			it.entIdx = 0
			continue
		}
		ts := pkg.Types[it.typeIdx]
		if it.entIdx >= int(ts.EntryCount) {
			it.typeIdx++
			it.entIdx = 0
			continue
		}

		entryID := it.entIdx
		it.entIdx++

		name, err := resolveEntryName(pkg, ts, entryID)
		if err != nil {
			// An entry absent from every configuration has no key to
			// resolve a name from; skip it rather than failing the walk.
			continue
		}

		id := NewID(pkg.ID, ts.ID, uint16(entryID))
		return ResidEntry{ID: id, Package: pkg.Name, Type: ts.Name, Name: name}, true
	}
	return ResidEntry{}, false
}

// resolveEntryName finds the first configuration carrying entryID and
// resolves its key-pool name.
func resolveEntryName(pkg *Package, ts *TypeSpec, entryID int) (string, error) {
	for _, cfg := range ts.Configs {
		if entryID >= len(cfg.Entries) {
			continue
		}
		e := cfg.Entries[entryID]
		if e == nil {
			continue
		}
		return pkg.KeyName(int(e.Key))
	}
	return "", fmt.Errorf("entry %d of type %s has no configuration defining it", entryID, ts.Name)
}

// ResidForName resolves a fully-qualified package/type/entry name to its
// packed resource id. It returns ErrBadIndex if no matching entry exists.
func (t *Table) ResidForName(packageName, typeName, entryName string) (ID, error) {
	for _, pkg := range t.Packages {
		if pkg.Name != packageName {
			continue
		}
		ts := pkg.TypeSpecByName(typeName)
		if ts == nil {
			continue
		}
		for entryID := 0; entryID < int(ts.EntryCount); entryID++ {
			name, err := resolveEntryName(pkg, ts, entryID)
			if err != nil {
				continue
			}
			if name == entryName {
				return NewID(pkg.ID, ts.ID, uint16(entryID)), nil
			}
		}
	}
	return 0, badIndexf("no resource named %s:%s/%s", packageName, typeName, entryName)
}

// NameForResid resolves a packed resource id back to its fully-qualified
// package/type/entry name.
func (t *Table) NameForResid(id ID) (packageName, typeName, entryName string, err error) {
	for _, pkg := range t.Packages {
		if pkg.ID != id.PackageID() {
			continue
		}
		ts := pkg.TypeSpecByID(id.TypeID())
		if ts == nil {
			continue
		}
		entryID := int(id.EntryID())
		if entryID >= int(ts.EntryCount) {
			continue
		}
		name, err := resolveEntryName(pkg, ts, entryID)
		if err != nil {
			return "", "", "", err
		}
		return pkg.Name, ts.Name, name, nil
	}
	return "", "", "", badIndexf("resource id %s not found in table", id)
}
