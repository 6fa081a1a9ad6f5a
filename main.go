// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package main

import (
	"github.com/wipecore/diskwipe/cmd"
	"github.com/wipecore/diskwipe/cmd/methods"
	"github.com/wipecore/diskwipe/cmd/prngs"
	"github.com/wipecore/diskwipe/cmd/version"
	wipecmd "github.com/wipecore/diskwipe/cmd/wipe"
)

func main() {
	cmd.RootCmd.AddCommand(version.NewVersionCommand())
	cmd.RootCmd.AddCommand(methods.NewMethodsCommand())
	cmd.RootCmd.AddCommand(prngs.NewPRNGsCommand())
	cmd.RootCmd.AddCommand(wipecmd.NewWipeCommand())
	cmd.Execute()
}
