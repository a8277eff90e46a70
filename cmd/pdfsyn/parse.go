package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"pdfsyntax/internal/diagfmt"
	"pdfsyntax/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.pdf",
	Short: "Parse a PDF file and print its syntax tree",
	Long: `Parse builds the lossless syntax tree of a PDF file and prints it as an
outline (tree) or as the reconstructed source text (text)`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|text|none)")
	parseCmd.Flags().Bool("trivia", false, "show leading and trailing trivia in the tree")
	parseCmd.Flags().Bool("full-spans", false, "print full spans (with trivia) instead of trimmed ones")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	showTrivia, err := cmd.Flags().GetBool("trivia")
	if err != nil {
		return fmt.Errorf("failed to get trivia flag: %w", err)
	}
	fullSpans, err := cmd.Flags().GetBool("full-spans")
	if err != nil {
		return fmt.Errorf("failed to get full-spans flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	cfg, err := configFrom(cmd)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, cfg)
	if err != nil {
		return err
	}

	result, err := driver.Parse(cmd.Context(), filePath, opts)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if result.Bag.Len() > 0 && !quiet {
		popts, perr := prettyOptions(cmd, opts)
		if perr != nil {
			return perr
		}
		if perr := diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag.Items(), result.FileSet, popts); perr != nil {
			return perr
		}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "tree":
		err = diagfmt.FormatTree(out, result.Tree, diagfmt.TreeOpts{ShowTrivia: showTrivia, FullSpans: fullSpans})
	case "text":
		_, err = io.WriteString(out, result.Tree.Text())
	case "none":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}

	printTimings(cmd, opts.Timer)
	if !quiet && opts.Timer != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "tokens: %d, node cache: %d hits / %d misses\n",
			result.Tokens, result.Cache.Hits, result.Cache.Misses)
	}
	if result.Bag.HasErrors() {
		return errProblems
	}
	return nil
}
