// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package prngs exposes `diskwipe prngs`: lists the PRNG registry (C1).
package prngs

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/wipecore/diskwipe/prng"
)

// NewPRNGsCommand builds the `prngs` subcommand.
func NewPRNGsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prngs",
		Short: "List available pseudo-random generators",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := prng.Names()
			sort.Strings(names)
			out := cmd.OutOrStdout()
			for _, name := range names {
				d, err := prng.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-14s %s\n", d.Name, d.Label)
			}
			return nil
		},
	}
}
