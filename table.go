// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package arsc

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/go-kratos/kratos/v2/log"
)

// maxAllowedPackages and maxAllowedEntries bound the table loader against
// pathologically large declared counts in corrupt or adversarial input,
// mirroring the depth/count guards binary-format parsers need against
// hostile headers.
const (
	maxAllowedPackages = 256
	maxAllowedTypes    = 4096
	maxAllowedEntries  = 1 << 20
)

// Options configures table loading.
type Options struct {
	// Fast stops parsing after the header and top-level package count,
	// without walking any package's Type/Spec children. The returned
	// Table's Packages is empty but Values and the declared package count
	// (logged at Debug) are available. Mirrors the teacher's pe.Options.Fast
	// short-circuit for callers that only need a cheap validity check.
	Fast bool

	// Logger receives structured progress/diagnostic messages. A default
	// logger writing to standard error at WarnLevel is used when nil.
	Logger log.Logger
}

func defaultLogger() log.Logger {
	return log.NewFilter(log.NewStdLogger(os.Stderr), log.FilterLevel(log.LevelWarn))
}

// Table is the fully assembled resource table: the global value string
// pool and every Package it declares.
type Table struct {
	Values   *StringPool
	Packages []*Package

	logger *log.Helper
}

// Parse decodes a complete resources.arsc buffer into a Table.
func Parse(data []byte, opts *Options) (*Table, error) {
	if opts == nil {
		opts = &Options{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = defaultLogger()
	}
	h := log.NewHelper(logger)

	top := NewChunkIter(data)
	tableChunk, err := top.Next()
	if err == io.EOF {
		return nil, corruptf("no data to traverse")
	}
	if err != nil {
		return nil, fmt.Errorf("reading top-level chunk: %w", err)
	}
	if tableChunk.Kind != ChunkKindTable {
		return nil, wrongKind(tableChunk, ChunkKindTable)
	}
	if _, err := top.Next(); err != io.EOF {
		return nil, corruptf("unexpected trailing data after Table chunk")
	}

	th, err := tableChunk.AsTable()
	if err != nil {
		return nil, err
	}
	if th.PackageCount > maxAllowedPackages {
		return nil, corruptf("package count %d exceeds maximum %d", th.PackageCount, maxAllowedPackages)
	}
	h.Debugf("table: %d package(s)", th.PackageCount)

	children, ok := tableChunk.Children()
	if !ok {
		return nil, corruptf("table chunk unexpectedly has no children view")
	}

	valuesChunk, err := children.Next()
	if err == io.EOF {
		return nil, corruptf("table has no value string pool")
	}
	if err != nil {
		return nil, fmt.Errorf("reading value string pool: %w", err)
	}
	if valuesChunk.Kind != ChunkKindStringPool {
		return nil, wrongKind(valuesChunk, ChunkKindStringPool)
	}
	values, err := newStringPool(valuesChunk)
	if err != nil {
		return nil, fmt.Errorf("parsing value string pool: %w", err)
	}

	if opts.Fast {
		h.Debugf("table: Fast set, stopping after %d declared package(s)", th.PackageCount)
		return &Table{Values: values, logger: h}, nil
	}

	packages := make([]*Package, 0, th.PackageCount)
	for i := uint32(0); i < th.PackageCount; i++ {
		pkgChunk, err := children.Next()
		if err == io.EOF {
			return nil, corruptf("table declares %d package(s) but holds %d", th.PackageCount, i)
		}
		if err != nil {
			return nil, fmt.Errorf("reading package %d: %w", i, err)
		}
		if pkgChunk.Kind != ChunkKindPackage {
			return nil, wrongKind(pkgChunk, ChunkKindPackage)
		}
		pkg, err := parsePackage(pkgChunk, h)
		if err != nil {
			return nil, fmt.Errorf("parsing package %d: %w", i, err)
		}
		packages = append(packages, pkg)
	}
	if _, err := children.Next(); err != io.EOF {
		return nil, corruptf("unexpected trailing data after declared %d package(s)", th.PackageCount)
	}

	return &Table{Values: values, Packages: packages, logger: h}, nil
}

// parsePackage assembles one Package from its Package chunk: the package
// name and id, the type-name and key-name string pools, and every
// Spec/Type chunk grouped and transposed into TypeSpecs.
func parsePackage(c Chunk, h *log.Helper) (*Package, error) {
	ph, err := c.AsPackage()
	if err != nil {
		return nil, err
	}
	if ph.ID > 0xff {
		return nil, corruptf("package id %#x does not fit in 8 bits", ph.ID)
	}

	children, ok := c.Children()
	if !ok {
		return nil, corruptf("package chunk unexpectedly has no children view")
	}

	pkg := &Package{
		ID:   uint8(ph.ID),
		Name: decodeUTF16Z(ph.Name, 128),
	}

	// typeGroup accumulates the Type chunks sharing one type id. A type id's
	// arity is established by the first Type chunk observed for it; a Spec
	// chunk for the same id is descriptive only (validated, never required)
	// per the data model, which permits zero or more Specs and one or more
	// Types per package.
	type typeGroup struct {
		entryCount uint32
		configs    []*TypeConfig
	}
	groups := make(map[uint8]*typeGroup)
	specFlags := make(map[uint8][]uint32)

	for {
		child, err := children.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("walking package %s children: %w", pkg.Name, err)
		}

		switch child.Kind {
		case ChunkKindStringPool:
			sp, err := newStringPool(child)
			if err != nil {
				return nil, fmt.Errorf("parsing package %s string pool: %w", pkg.Name, err)
			}
			if pkg.typeStrings == nil {
				pkg.typeStrings = sp
			} else if pkg.keyStrings == nil {
				pkg.keyStrings = sp
			} else {
				return nil, corruptf("package %s has more than two string pools", pkg.Name)
			}

		case ChunkKindSpec:
			sh, err := child.AsSpec()
			if err != nil {
				return nil, err
			}
			if sh.EntryCount > maxAllowedEntries {
				return nil, corruptf("type spec entry count %d exceeds maximum %d", sh.EntryCount, maxAllowedEntries)
			}
			flags, err := child.SpecFlags()
			if err != nil {
				return nil, err
			}
			if err := validateSpecFlags(flags); err != nil {
				return nil, fmt.Errorf("type id %#x: %w", sh.ID, err)
			}
			specFlags[sh.ID] = flags

		case ChunkKindType:
			th, err := child.AsType()
			if err != nil {
				return nil, err
			}
			g, ok := groups[th.ID]
			if !ok {
				if th.EntryCount > maxAllowedEntries {
					return nil, corruptf("type id %#x: entry count %d exceeds maximum %d", th.ID, th.EntryCount, maxAllowedEntries)
				}
				g = &typeGroup{entryCount: th.EntryCount}
				groups[th.ID] = g
			} else if th.EntryCount != g.entryCount {
				return nil, corruptf("type id %#x: Type entry count %d disagrees with established arity %d", th.ID, th.EntryCount, g.entryCount)
			}
			tc, err := parseTypeConfig(child, th)
			if err != nil {
				return nil, fmt.Errorf("parsing type id %#x config: %w", th.ID, err)
			}
			if len(g.configs) >= maxAllowedTypes {
				return nil, corruptf("type id %#x: configuration count exceeds maximum %d", th.ID, maxAllowedTypes)
			}
			g.configs = append(g.configs, tc)

		default:
			return nil, corruptf("unexpected chunk %s inside package %s", child.Kind, pkg.Name)
		}
	}

	if pkg.typeStrings == nil || pkg.keyStrings == nil {
		return nil, corruptf("package %s is missing its type-name or key-name string pool", pkg.Name)
	}

	ids := make([]uint8, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	pkg.Types = make([]*TypeSpec, 0, len(ids))
	for _, id := range ids {
		g := groups[id]
		name, err := pkg.typeStrings.StringAt(int(id) - 1)
		if err != nil {
			return nil, fmt.Errorf("resolving type name for id %#x: %w", id, err)
		}
		pkg.Types = append(pkg.Types, &TypeSpec{
			ID:         id,
			Name:       name,
			EntryCount: g.entryCount,
			EntryFlags: specFlags[id],
			Configs:    g.configs,
		})
	}

	h.Debugf("package %s (id %#x): %d type(s)", pkg.Name, pkg.ID, len(pkg.Types))
	return pkg, nil
}

// specFlagKnownMask is the union of every Spec flag-mask bit this decoder
// recognizes: MCC, MNC, LOCALE, TOUCHSCREEN, KEYBOARD, KEYBOARD_HIDDEN,
// NAVIGATION, ORIENTATION, DENSITY, SCREEN_SIZE, VERSION, SCREEN_LAYOUT,
// UI_MODE, SMALLEST_SCREEN_SIZE, LAYOUTDIR, SCREEN_ROUND, COLOR_MODE
// (bits 0x1 through 0x10000), and PUBLIC (0x40000000).
const specFlagKnownMask = 0x1FFFF | 0x40000000

// validateSpecFlags rejects any Spec entry flag carrying a bit outside the
// recognized configuration-axis vocabulary.
func validateSpecFlags(flags []uint32) error {
	for i, f := range flags {
		if f&^uint32(specFlagKnownMask) != 0 {
			return corruptf("spec flag entry %d value %#x has unrecognized bits (known mask %#x)", i, f, specFlagKnownMask)
		}
	}
	return nil
}

// typeFlagSparse marks a Type chunk as using the sparse (offset,count)
// entry-offset encoding introduced for resource-constrained builds, which
// this decoder does not implement.
const typeFlagSparse = 0x01

// parseTypeConfig materializes one Type chunk's (entry-id -> Entry) slots.
func parseTypeConfig(c Chunk, th typeHeader) (*TypeConfig, error) {
	if th.Flags&typeFlagSparse != 0 {
		return nil, fmt.Errorf("type id %#x uses sparse entry offsets: %w", th.ID, ErrUnsupportedLayout)
	}
	offsets, err := c.TypeEntryOffsets()
	if err != nil {
		return nil, err
	}
	entries := make([]*Entry, len(offsets))
	for i, off := range offsets {
		if off == 0xFFFFFFFF {
			continue
		}
		e, err := parseEntry(c.bytes, th.EntriesOffset+off)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		entries[i] = &e
	}
	return &TypeConfig{
		Configuration: NewConfiguration(th.Config),
		Entries:       entries,
	}, nil
}
