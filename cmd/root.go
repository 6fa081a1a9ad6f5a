// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "diskwipe",
	Short: "A concurrent secure-erasure engine for block devices",
	Long:  `diskwipe overwrites block devices with one or more patterns, optionally verifying each pass, across multiple devices concurrently.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing diskwipe: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Here you can define persistent flags and configuration settings if needed.
	// Example:
	// RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.diskwipe.yaml)")
}
