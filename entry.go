// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package arsc

// entryComplexFlag marks an entry as a complex/map entry (ResTable_map_entry)
// rather than a simple entry (ResTable_entry + a single Value).
const entryComplexFlag = 0x0001

// entryPublicFlag marks an entry as part of the package's public API.
const entryPublicFlag = 0x0002

// Entry is one (configuration, entry-id) slot materialized from a Type
// chunk's entries payload: either a single Value (simple) or a sequence of
// key/value pairs (complex/map, e.g. style and array resources).
type Entry struct {
	Key     uint32 // entry-name string pool index, within the package's key pool
	Public  bool
	Complex bool

	// Value is populated when Complex is false.
	Value Value

	// Parent and Pairs are populated when Complex is true.
	Parent ID
	Pairs  []EntryPair
}

// EntryPair is one key/value slot of a complex entry.
type EntryPair struct {
	Key   ID
	Value Value
}

// parseEntry reads one entry record (simple or complex) from b at offset.
// The payload (the Value, or the key/value pairs) is read starting at the
// entry's declared header size past offset.
func parseEntry(b []byte, offset uint32) (Entry, error) {
	size, err := readU16(b, offset)
	if err != nil {
		return Entry{}, err
	}
	flags, err := readU16(b, offset+2)
	if err != nil {
		return Entry{}, err
	}
	key, err := readU32(b, offset+4)
	if err != nil {
		return Entry{}, err
	}

	e := Entry{
		Key:     key,
		Public:  flags&entryPublicFlag != 0,
		Complex: flags&entryComplexFlag != 0,
	}

	if !e.Complex {
		v, err := parseValue(b, offset+uint32(size))
		if err != nil {
			return Entry{}, err
		}
		e.Value = v
		return e, nil
	}

	parent, err := readU32(b, offset+8)
	if err != nil {
		return Entry{}, err
	}
	count, err := readU32(b, offset+12)
	if err != nil {
		return Entry{}, err
	}
	e.Parent = IDFromUint32(parent)

	pairOffset := offset + uint32(size)
	pairs := make([]EntryPair, count)
	for i := range pairs {
		keyID, err := readU32(b, pairOffset)
		if err != nil {
			return Entry{}, err
		}
		v, err := parseValue(b, pairOffset+4)
		if err != nil {
			return Entry{}, err
		}
		pairs[i] = EntryPair{Key: IDFromUint32(keyID), Value: v}
		pairOffset += 4 + uint32(v.Size)
	}
	e.Pairs = pairs

	return e, nil
}

// Resolve projects a simple entry's Value, or a complex entry's pairs, into
// ResourceValue form. values is the value string pool consulted for String
// values.
func (e Entry) Resolve(values *StringPool) (ResourceValue, error) {
	if !e.Complex {
		return e.Value.Resolve(values)
	}
	items := make([]ArrayItem, len(e.Pairs))
	for i, p := range e.Pairs {
		rv, err := p.Value.Resolve(values)
		if err != nil {
			return nil, err
		}
		items[i] = ArrayItem{Key: p.Key, Value: rv}
	}
	return ArrayValue{Items: items}, nil
}
