// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"strings"

	arsc "github.com/amhk/arsc-cli"
	"github.com/amhk/arsc-cli/apk"
	"github.com/spf13/cobra"
)

var (
	dumpJSON   bool
	dumpValues bool
)

// zipMagic is the ZIP local-file-header signature ("PK\x03\x04"), used to
// tell an .apk archive apart from a standalone .arsc buffer regardless of
// file extension.
var zipMagic = []byte{'P', 'K', 0x03, 0x04}

// loadArsc reads a resources.arsc buffer from either a standalone .arsc
// file or the resources.arsc entry of an .apk archive, auto-detecting
// which by sniffing the file's leading bytes rather than trusting its
// extension.
func loadArsc(path string) ([]byte, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(data, zipMagic) {
		return data, nil
	}
	a, err := apk.OpenBytes(data)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer a.Close()
	return a.OpenArsc()
}

func prettyJSON(v interface{}) string {
	buf, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return fmt.Sprintf("<json error: %v>", err)
	}
	return string(buf)
}

func runDump(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := loadArsc(path)
	if err != nil {
		return err
	}

	if dumpJSON {
		table, err := arsc.Parse(data, nil)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		return dumpTableJSON(table)
	}

	return printChunkTree(data)
}

// dumpTableJSON prints a JSON projection of the table: every resource id
// alongside its fully-qualified name and, if requested, its resolved value.
func dumpTableJSON(table *arsc.Table) error {
	type resource struct {
		ID      string      `json:"id"`
		Package string      `json:"package"`
		Type    string      `json:"type"`
		Name    string      `json:"name"`
		Value   interface{} `json:"value,omitempty"`
	}

	var out []resource
	it := table.ResidIter()
	for {
		e, ok := it.Next()
		if !ok {
			break
		}
		r := resource{ID: e.ID.String(), Package: e.Package, Type: e.Type, Name: e.Name}
		if dumpValues {
			typeSpec := packageTypeSpec(table, e.ID)
			if typeSpec != nil && len(typeSpec.Configs) > 0 {
				if entry, ok := typeSpec.Configs[0].EntryAt(e.ID.EntryID()); ok {
					if rv, err := entry.Resolve(table.Values); err == nil {
						r.Value = fmt.Sprintf("%#v", rv)
					}
				}
			}
		}
		out = append(out, r)
	}

	fmt.Println(prettyJSON(out))
	return nil
}

func packageTypeSpec(table *arsc.Table, id arsc.ID) *arsc.TypeSpec {
	for _, pkg := range table.Packages {
		if pkg.ID != id.PackageID() {
			continue
		}
		return pkg.TypeSpecByID(id.TypeID())
	}
	return nil
}

// printChunkTree walks the chunk structure depth-first, printing a
// depth-indented summary of every chunk it encounters.
func printChunkTree(data []byte) error {
	var buf bytes.Buffer
	if err := walkChunks(&buf, arsc.NewChunkIter(data), 0); err != nil {
		return err
	}
	fmt.Print(buf.String())
	return nil
}

func walkChunks(w io.Writer, it *arsc.ChunkIter, depth int) error {
	for {
		c, err := it.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s%s (size=%#x)\n", strings.Repeat("  ", depth), c.Kind, c.TotalSize)
		if children, ok := c.Children(); ok {
			if err := walkChunks(w, children, depth+1); err != nil {
				return err
			}
		}
	}
}
