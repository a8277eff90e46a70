package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pdfsyntax/internal/prof"
)

var profiling *prof.Session

func setupProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpuprofile"); err != nil {
		return fmt.Errorf("failed to get cpuprofile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("memprofile"); err != nil {
		return fmt.Errorf("failed to get memprofile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !opts.Enabled() {
		return nil
	}
	profiling, err = prof.Start(opts)
	return err
}

func stopProfiling(cmd *cobra.Command) {
	if err := profiling.Stop(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
	}
	profiling = nil
}

// prepare runs before every command: config, tracer and profilers.
func prepare(cmd *cobra.Command, args []string) error {
	if err := setupTracing(cmd, args); err != nil {
		return err
	}
	return setupProfiling(cmd)
}

// finish undoes prepare; main calls it as well when the command failed.
func finish(cmd *cobra.Command, _ []string) error {
	stopProfiling(cmd)
	closeTracer(cmd)
	return nil
}
