// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"
	"strings"

	arsc "github.com/amhk/arsc-cli"
	"github.com/spf13/cobra"
)

// runResolve implements `arscdump resolve <file> <query>`, where query is
// either "package:type/entry" or a hex/decimal packed resource id.
func runResolve(cmd *cobra.Command, args []string) error {
	path, query := args[0], args[1]

	data, err := loadArsc(path)
	if err != nil {
		return err
	}
	table, err := arsc.Parse(data, nil)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if id, err := parseResid(query); err == nil {
		pkgName, typeName, entryName, err := table.NameForResid(id)
		if err != nil {
			return err
		}
		fmt.Printf("%s -> %s:%s/%s\n", id, pkgName, typeName, entryName)
		return nil
	}

	pkgName, typeEntry, ok := strings.Cut(query, ":")
	if !ok {
		return fmt.Errorf("query %q is neither a resource id nor package:type/entry", query)
	}
	typeName, entryName, ok := strings.Cut(typeEntry, "/")
	if !ok {
		return fmt.Errorf("query %q is missing a /entry component", query)
	}
	id, err := table.ResidForName(pkgName, typeName, entryName)
	if err != nil {
		return err
	}
	fmt.Printf("%s:%s/%s -> %s\n", pkgName, typeName, entryName, id)
	return nil
}

func parseResid(s string) (arsc.ID, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, err
	}
	return arsc.IDFromUint32(uint32(v)), nil
}
