package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/diagfmt"
	"pdfsyntax/internal/driver"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file.pdf|directory>...",
	Short: "Run diagnostics on PDF files or directories",
	Long: `Run diagnostics to find lexical and syntax problems in PDF files, or in all
matching files within the given directories`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDiagnose,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	diagCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	diagCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	diagCmd.Flags().StringSlice("suppress", nil, "warning codes to suppress (e.g. PDF1001)")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	diagCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	diagCmd.Flags().Bool("disk-cache", false, "reuse diagnostics of unchanged files from the disk cache")
	diagCmd.Flags().String("ui", "off", "progress UI (auto|on|off)")
}

// runDiagnose diagnoses every given file or directory, prints the result in
// the chosen format and fails with errProblems when any error was found.
func runDiagnose(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "short":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if noWarnings && warningsAsErrors {
		return fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	suppress, err := cmd.Flags().GetStringSlice("suppress")
	if err != nil {
		return fmt.Errorf("failed to get suppress flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	cfg, err := configFrom(cmd)
	if err != nil {
		return err
	}
	if warningsAsErrors {
		cfg.Diagnostics.WarningsAsErrors = append(cfg.Diagnostics.WarningsAsErrors, "all")
	}
	cfg.Diagnostics.Suppress = append(cfg.Diagnostics.Suppress, suppress...)
	if cmd.Flags().Changed("jobs") {
		cfg.Driver.Jobs = jobs
	}
	if cmd.Flags().Changed("disk-cache") {
		if cfg.Driver.Cache, err = cmd.Flags().GetBool("disk-cache"); err != nil {
			return fmt.Errorf("failed to get disk-cache flag: %w", err)
		}
	}

	opts, err := driverOptions(cmd, cfg)
	if err != nil {
		return err
	}
	if cfg.Driver.Cache {
		disk, derr := openDiskCache(cfg.Driver.CacheDir)
		if derr != nil {
			// без кэша работаем как обычно
			if !quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "disk cache disabled: %v\n", derr)
			}
		} else {
			opts.Disk = disk
		}
	}

	files, err := driver.ExpandPaths(args, opts.Extensions)
	if err != nil {
		return err
	}

	var res *driver.DiagnoseResult
	if shouldUseTUI(mode) && len(files) > 0 {
		res, err = runDiagnoseWithUI(cmd.Context(), "diagnose", files, opts)
	} else {
		res, err = driver.DiagnoseFiles(cmd.Context(), files, opts)
	}
	if err != nil {
		return fmt.Errorf("diagnosis failed: %w", err)
	}

	diags := res.Diagnostics()
	if noWarnings {
		diags = onlyErrors(diags)
	}

	popts, err := prettyOptions(cmd, opts)
	if err != nil {
		return err
	}
	if fullPath {
		popts.PathMode = diagfmt.PathModeAbsolute
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		outColor, cerr := useColor(cmd, os.Stdout)
		if cerr != nil {
			return cerr
		}
		popts.Color = outColor
		if err := diagfmt.Pretty(out, diags, res.FileSet, popts); err != nil {
			return err
		}
		if !quiet {
			if err := diagfmt.Summary(out, res.Count(diag.SevError), countSeverity(diags, diag.SevWarning), popts); err != nil {
				return err
			}
		}
	case "json":
		jopts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         popts.PathMode,
			BaseDir:          popts.BaseDir,
			Language:         opts.Language,
			Timer:            opts.Timer,
		}
		if err := diagfmt.JSON(out, diags, jopts); err != nil {
			return err
		}
	case "short":
		if err := diagfmt.Short(out, diags, popts); err != nil {
			return err
		}
	}

	if format != "json" {
		printTimings(cmd, opts.Timer)
	}
	if opts.Timer != nil && !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "files: %d, node cache: %d hits / %d misses, interned: %d, disk errors: %d\n",
			len(res.Files), res.Cache.Hits, res.Cache.Misses, res.Interned, res.DiskErrors)
	}
	if res.HasErrors() {
		return errProblems
	}
	return nil
}

func onlyErrors(ds []diag.Diagnostic) []diag.Diagnostic {
	out := ds[:0:0]
	for _, d := range ds {
		if d.Severity() >= diag.SevError {
			out = append(out, d)
		}
	}
	return out
}

func countSeverity(ds []diag.Diagnostic, s diag.Severity) int {
	n := 0
	for _, d := range ds {
		if d.Severity() == s {
			n++
		}
	}
	return n
}

func openDiskCache(dir string) (*driver.DiskCache, error) {
	if dir != "" {
		return driver.OpenDiskCacheAt(dir)
	}
	return driver.OpenDiskCache("pdfsyn")
}
