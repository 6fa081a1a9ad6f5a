// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package wipe wires the wipe engine (config, device, supervisor) to a
// cobra command: `diskwipe wipe <device>...`.
package wipe

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/wipecore/diskwipe/config"
	"github.com/wipecore/diskwipe/devctx"
	"github.com/wipecore/diskwipe/device"
	"github.com/wipecore/diskwipe/entropy"
	"github.com/wipecore/diskwipe/supervisor"
)

var (
	methodName string
	prngName   string
	verifyName string
	rounds     int
	blankAfter bool
	syncRate   int
	direct     bool
)

// NewWipeCommand builds the `wipe` subcommand.
func NewWipeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wipe <device> [device...]",
		Short: "Securely erase one or more block devices",
		Long:  `Overwrite one or more block devices with the selected method, verifying per the chosen policy.`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  runWipe,
	}

	cmd.Flags().StringVar(&methodName, "method", "zero", "wipe method (zero, one, prng, dodshort, dod522022m, ops2, gutmann, is5enh, verify_zero, verify_one)")
	cmd.Flags().StringVar(&prngName, "prng", "chacha20", "PRNG for random passes")
	cmd.Flags().StringVar(&verifyName, "verify", "last", "verification policy: none, last, all")
	cmd.Flags().IntVar(&rounds, "rounds", 1, "number of rounds")
	cmd.Flags().BoolVar(&blankAfter, "blank-after", false, "append a zero-fill pass after the method finishes")
	cmd.Flags().IntVar(&syncRate, "sync-rate", 16, "sync every N device blocks for cached I/O; 0 disables periodic sync")
	cmd.Flags().BoolVar(&direct, "direct", false, "use direct I/O instead of cached I/O")

	return cmd
}

func parseVerify(s string) (config.Verify, error) {
	switch s {
	case "none":
		return config.VerifyNone, nil
	case "last":
		return config.VerifyLast, nil
	case "all":
		return config.VerifyAll, nil
	default:
		return 0, fmt.Errorf("unknown verify policy %q", s)
	}
}

func runWipe(cmd *cobra.Command, args []string) error {
	verify, err := parseVerify(verifyName)
	if err != nil {
		return err
	}

	ioMode := config.Cached
	if direct {
		ioMode = config.Direct
	}

	opts, err := config.New(
		config.WithMethod(methodName),
		config.WithPRNG(prngName),
		config.WithVerify(verify),
		config.WithRounds(rounds),
		config.WithBlankAfter(blankAfter),
		config.WithSyncRate(syncRate),
		config.WithIOMode(ioMode),
	)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	var contexts []*devctx.Context
	for _, path := range args {
		info, err := device.Open(path, opts.IOMode)
		if err != nil {
			return err
		}
		contexts = append(contexts, devctx.New(path, info.Handle, info.BlockSize, info.HardSectorSize, info.Size, opts))
	}

	src := entropy.NewOS()
	sup := supervisor.New(contexts, src)

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sup.Start(ctx)

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	out := cmd.OutOrStdout()
	for {
		select {
		case <-ctx.Done():
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
			err := sup.Shutdown(shutdownCtx)
			shutdownCancel()
			return err
		case <-sup.Done():
			printFinal(out, sup.Poll())
			return nil
		case <-ticker.C:
			printProgress(out, sup.Poll())
		}
	}
}

func printProgress(out io.Writer, snap supervisor.Snapshot) {
	for _, d := range snap.Devices {
		fmt.Fprintf(out, "%s: round %d/%d pass %d/%d %.1f%% (%s/s)\n",
			d.DevicePath, d.RoundWorking, d.RoundCount, d.PassWorking, d.PassCount,
			d.RoundPercent, humanize.Bytes(uint64(d.Throughput)))
	}
}

func printFinal(out io.Writer, snap supervisor.Snapshot) {
	for _, d := range snap.Devices {
		status := "SUCCESS"
		if d.Result != devctx.ResultSuccess {
			status = fmt.Sprintf("FAILURE (result=%d, pass_errors=%d, verify_errors=%d, fsyncdata_errors=%d)",
				d.Result, d.PassErrors, d.VerifyErrors, d.FsyncdataErrors)
		}
		fmt.Fprintf(out, "%s: %s\n", d.DevicePath, status)
	}
}
