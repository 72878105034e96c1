// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build unix

package commands

import (
	"fmt"
	"log/slog"

	"code.hybscloud.com/pubsub"
	"code.hybscloud.com/pubsub/internal/scenario"
	"github.com/spf13/cobra"
)

var (
	runVerbose     bool
	runNoColor     bool
	runDebug       bool
	runCapacity    int
	runBufferLimit int
)

var runCmd = &cobra.Command{
	Use:   "run SCENARIO.yaml...",
	Short: "Replay scenario files and report mismatching steps",
	Long: `Replay each scenario file against a fresh registry.

Every step is checked against its expected errno name (OK, EAGAIN, EPERM,
EINVAL, ENOTTY, ENOMEM, EBADF) and, when given, the expected byte count,
data or role. The command fails if any scenario fails or cannot be loaded.

Examples:
  # Replay all scenarios and show only failures
  pubsubsim run scenarios/*.yaml

  # Show every step and the registry counters
  pubsubsim run -v scenarios/fanout.yaml

  # Override the buffer capacity of every scenario
  pubsubsim run --capacity=4096 scenarios/*.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print every step and the registry counters")
	runCmd.Flags().BoolVar(&runNoColor, "no-color", false, "Disable colored output")
	runCmd.Flags().BoolVar(&runDebug, "debug", false, "Write registry debug records to stderr")
	runCmd.Flags().IntVar(&runCapacity, "capacity", 0, "Override the channel buffer capacity (0 = scenario setting)")
	runCmd.Flags().IntVar(&runBufferLimit, "buffer-limit", 0, "Override the allocated buffer limit (0 = scenario setting)")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	if runCapacity < 0 || runBufferLimit < 0 {
		return fmt.Errorf("--capacity and --buffer-limit must be >= 0")
	}

	out := newPrinter(cmd.OutOrStdout(), runVerbose, runNoColor)
	rn := scenario.Runner{}
	if runDebug {
		rn.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	var overrides []pubsub.Option
	if runCapacity > 0 {
		overrides = append(overrides, pubsub.WithCapacity(runCapacity))
	}
	if runBufferLimit > 0 {
		overrides = append(overrides, pubsub.WithBufferLimit(runBufferLimit))
	}

	failed := 0
	for _, path := range args {
		sc, err := scenario.LoadFile(path)
		if err != nil {
			out.loadError(path, err)
			failed++
			continue
		}
		rep := rn.Run(sc, overrides...)
		out.report(rep)
		if !rep.Passed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(args))
	}
	return nil
}
