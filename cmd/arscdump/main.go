// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Command arscdump parses compiled Android resource tables
// (resources.arsc, standalone or inside an APK) and prints them.
package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "arscdump",
		Short: "An Android compiled resource table parser",
		Long:  "arscdump parses resources.arsc files, standalone or inside an APK",
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("arscdump version 0.1.0")
		},
	}

	dumpCmd := &cobra.Command{
		Use:   "dump <resources.arsc | *.apk>",
		Short: "Dump a resource table",
		Args:  cobra.ExactArgs(1),
		RunE:  runDump,
	}
	dumpCmd.Flags().BoolVarP(&dumpJSON, "json", "j", false, "print as JSON instead of a chunk tree")
	dumpCmd.Flags().BoolVarP(&dumpValues, "values", "", false, "with --json, include each entry's resolved value from its first configuration")

	resolveCmd := &cobra.Command{
		Use:   "resolve <resources.arsc | *.apk> <package:type/entry | 0x7f010000>",
		Short: "Resolve a resource name to its id, or an id to its name",
		Args:  cobra.ExactArgs(2),
		RunE:  runResolve,
	}

	rootCmd.AddCommand(versionCmd, dumpCmd, resolveCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
