package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"pdfsyntax/internal/config"
	"pdfsyntax/internal/trace"
)

// tracing is the tracer state of the running command.
var tracing struct {
	tracer    trace.Tracer
	heartbeat *trace.Heartbeat
	ring      *trace.RingTracer
	ringOut   string
	format    trace.Format
}

// flagOr returns the string flag when it was set, else fallback.
func flagOr(cmd *cobra.Command, name, fallback string) (string, error) {
	flags := cmd.Root().PersistentFlags()
	if !flags.Changed(name) && fallback != "" {
		return fallback, nil
	}
	v, err := flags.GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	return v, nil
}

// setupTracing loads the config, builds the tracer from trace flags (falling
// back to the [trace] table) and attaches both to the command context.
func setupTracing(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := withConfig(cmd.Context(), cfg)

	tcfg, err := traceConfig(cmd, cfg)
	if err != nil {
		return err
	}
	if tcfg.Level == trace.LevelOff {
		ctx = trace.WithTracer(ctx, trace.Nop)
		cmd.SetContext(ctx)
		return nil
	}

	tracer, err := trace.New(tcfg)
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	tracing.tracer = tracer
	tracing.heartbeat = trace.StartHeartbeat(tracer, tcfg.Heartbeat)
	if tcfg.Mode == trace.ModeRing {
		tracing.ring = trace.RingOf(tracer)
		tracing.ringOut = tcfg.OutputPath
		tracing.format = tcfg.Format
	}

	ctx = trace.WithTracer(ctx, tracer)
	cmd.SetContext(ctx)
	return nil
}

func traceConfig(cmd *cobra.Command, cfg config.Config) (trace.Config, error) {
	root := cmd.Root()

	output, err := flagOr(cmd, "trace", cfg.Trace.Output)
	if err != nil {
		return trace.Config{}, err
	}
	levelStr, err := flagOr(cmd, "trace-level", cfg.Trace.Level)
	if err != nil {
		return trace.Config{}, err
	}
	modeStr, err := flagOr(cmd, "trace-mode", cfg.Trace.Mode)
	if err != nil {
		return trace.Config{}, err
	}
	formatStr, err := flagOr(cmd, "trace-format", cfg.Trace.Format)
	if err != nil {
		return trace.Config{}, err
	}
	ringSize, err := root.PersistentFlags().GetInt("trace-ring-size")
	if err != nil {
		return trace.Config{}, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	heartbeat, err := root.PersistentFlags().GetDuration("trace-heartbeat")
	if err != nil {
		return trace.Config{}, fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return trace.Config{}, fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace без уровня включает фазы
	if level == trace.LevelOff && output != "" && !root.PersistentFlags().Changed("trace-level") {
		level = trace.LevelPhase
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return trace.Config{}, fmt.Errorf("invalid trace mode: %w", err)
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return trace.Config{}, err
	}
	return trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: output,
		RingSize:   ringSize,
		Heartbeat:  heartbeat,
	}, nil
}

// closeTracer stops the heartbeat, dumps the ring buffer when one is used
// and closes the tracer. Safe to call more than once.
func closeTracer(cmd *cobra.Command) {
	tracer, heartbeat, ring := tracing.tracer, tracing.heartbeat, tracing.ring
	tracing.tracer, tracing.heartbeat, tracing.ring = nil, nil, nil
	if tracer == nil {
		return
	}
	if heartbeat != nil {
		heartbeat.Stop()
	}
	errOut := cmd.ErrOrStderr()
	if ring != nil {
		if err := dumpRing(ring, errOut); err != nil {
			fmt.Fprintf(errOut, "trace: dump error: %v\n", err)
		}
	}
	if err := tracer.Flush(); err != nil {
		fmt.Fprintf(errOut, "trace: flush error: %v\n", err)
	}
	if err := tracer.Close(); err != nil {
		fmt.Fprintf(errOut, "trace: close error: %v\n", err)
	}
}

func dumpRing(ring *trace.RingTracer, stderr io.Writer) error {
	format := tracing.format
	if format == trace.FormatAuto {
		format = trace.FormatText
	}
	if tracing.ringOut == "" || tracing.ringOut == "-" {
		return ring.Dump(stderr, format)
	}
	f, err := os.Create(tracing.ringOut)
	if err != nil {
		return fmt.Errorf("failed to open trace output: %w", err)
	}
	if err := ring.Dump(f, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
