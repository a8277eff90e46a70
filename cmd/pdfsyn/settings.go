package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pdfsyntax/internal/config"
	"pdfsyntax/internal/diagfmt"
	"pdfsyntax/internal/driver"
	"pdfsyntax/internal/msgs"
	"pdfsyntax/internal/observ"
)

type configKey struct{}

// skipConfig marks commands that must work without a readable pdfsyn.toml.
const skipConfig = "skip-config"

// loadConfig resolves pdfsyn.toml (--config or the nearest one above the
// working directory) and applies global flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	root := cmd.Root()
	explicit, err := root.PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if _, skip := cmd.Annotations[skipConfig]; skip {
		return config.Default(), nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Resolve(explicit, wd)
	if err != nil {
		return config.Config{}, err
	}

	if root.PersistentFlags().Changed("max-diagnostics") {
		if cfg.Diagnostics.Max, err = root.PersistentFlags().GetInt("max-diagnostics"); err != nil {
			return config.Config{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if root.PersistentFlags().Changed("lang") {
		if cfg.Diagnostics.Language, err = root.PersistentFlags().GetString("lang"); err != nil {
			return config.Config{}, fmt.Errorf("failed to get lang flag: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func withConfig(ctx context.Context, cfg config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFrom returns the config stored by setupTracing, loading it when the
// command runs without the root pre-run hook (tests).
func configFrom(cmd *cobra.Command) (config.Config, error) {
	if ctx := cmd.Context(); ctx != nil {
		if cfg, ok := ctx.Value(configKey{}).(config.Config); ok {
			return cfg, nil
		}
	}
	return loadConfig(cmd)
}

// driverOptions builds driver options from the config plus --timings.
func driverOptions(cmd *cobra.Command, cfg config.Config) (driver.Options, error) {
	opts, err := driver.OptionsFromConfig(cfg)
	if err != nil {
		return driver.Options{}, err
	}
	opts.Messages = msgs.Default()
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if showTimings {
		opts.Timer = observ.NewTimer()
	}
	return opts, nil
}

// useColor resolves --color for the given stream.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "auto", "":
		return isTerminal(f) && os.Getenv("NO_COLOR") == "", nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
}

func prettyOptions(cmd *cobra.Command, opts driver.Options) (diagfmt.PrettyOpts, error) {
	color, err := useColor(cmd, os.Stderr)
	if err != nil {
		return diagfmt.PrettyOpts{}, err
	}
	wd, _ := os.Getwd()
	return diagfmt.PrettyOpts{
		Color:    color,
		PathMode: diagfmt.PathModeAuto,
		BaseDir:  wd,
		Language: opts.Language,
	}, nil
}

// printTimings пишет сводку таймера в stderr, если она собиралась.
func printTimings(cmd *cobra.Command, timer *observ.Timer) {
	if timer == nil {
		return
	}
	fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
}
