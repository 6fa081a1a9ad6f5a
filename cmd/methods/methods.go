// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package methods exposes `diskwipe methods`: lists the method
// registry (C4).
package methods

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/wipecore/diskwipe/method"
)

// NewMethodsCommand builds the `methods` subcommand.
func NewMethodsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List available wipe methods",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := method.Names()
			sort.Strings(names)
			out := cmd.OutOrStdout()
			for _, name := range names {
				m, err := method.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-14s %s\n", m.Name, m.Label)
			}
			return nil
		},
	}
}
