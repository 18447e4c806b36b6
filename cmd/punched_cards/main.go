package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/klauspost/cpuid/v2"
	"github.com/spf13/cobra"

	"github.com/neurlang/punchedcards/config"
	"github.com/neurlang/punchedcards/datasets/mnist"
	"github.com/neurlang/punchedcards/errors"
	"github.com/neurlang/punchedcards/logger"
	"github.com/neurlang/punchedcards/trainer"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "punched_cards",
		Short: "Punched cards digit recognition experiment",
		Long: `Punched cards digit recognition experiment.

Every MNIST digit is binarized and punched into random key spaces of a
fixed bit length. For each digit the card with the most distinct inputs is
memorized, then the training and test sets are recognized by nearest
memorized input. The run sweeps the configured bit lengths (32 to 512 by
default) and needs no flags.

Configuration is read from an optional TOML file and PUNCHEDCARDS_*
environment variables.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         run,
	}
	cmd.Flags().String("config", "", "TOML configuration file")
	cmd.Flags().String("data-dir", "", "directory holding the MNIST gzip files")
	cmd.Flags().Bool("json", false, "JSON structured logs")
	cmd.Flags().BoolP("verbose", "v", false, "debug logs")
	cmd.Flags().Bool("no-wait", false, "exit without waiting for Enter")
	cmd.Flags().String("cpuprofile", "", "write a CPU profile to this file")
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	v, err := config.New(path)
	if err != nil {
		return err
	}
	if err := v.BindPFlag("data.directory", cmd.Flags().Lookup("data-dir")); err != nil {
		return err
	}
	if err := v.BindPFlag("log.json", cmd.Flags().Lookup("json")); err != nil {
		return err
	}
	if err := v.BindPFlag("log.verbose", cmd.Flags().Lookup("verbose")); err != nil {
		return err
	}
	cfg, err := config.LoadWithViper(v)
	if err != nil {
		return err
	}

	if err := logger.Initialize(cfg.Log.JSON, cfg.Log.Verbose); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	defer logger.Sync()

	if profile, _ := cmd.Flags().GetString("cpuprofile"); profile != "" {
		stop, err := startCPUProfile(profile)
		if err != nil {
			return err
		}
		defer stop()
	}

	logger.Logger.Infow("Starting punched cards",
		logger.FieldCPU, cpuid.CPU.BrandName,
		"logical_cores", cpuid.CPU.LogicalCores,
		logger.FieldWorkers, cfg.Workers,
		"bit_lengths", cfg.Sweep.BitLengths)

	src := mnist.New(cfg.Data.Directory)
	src.Threshold = byte(cfg.Data.Threshold)
	if !cfg.Data.VerifyChecksums {
		src.Checksums = nil
	}

	data, err := trainer.Load(src)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	reports, err := trainer.Sweep(ctx, data, cfg.Options())
	for _, r := range reports {
		printReport(cmd.OutOrStdout(), r)
	}
	if err != nil {
		return err
	}

	if noWait, _ := cmd.Flags().GetBool("no-wait"); !noWait {
		fmt.Fprintln(cmd.OutOrStdout(), `Press "Enter" to exit the program...`)
		_, _ = bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	}
	return nil
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
