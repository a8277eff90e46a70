package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pdfsyntax/internal/diagfmt"
	"pdfsyntax/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.pdf",
	Short: "Tokenize a PDF file",
	Long:  `Tokenize breaks a PDF file down into tokens with their trivia, values and positions`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	cfg, err := configFrom(cmd)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, cfg)
	if err != nil {
		return err
	}

	// Выполняем токенизацию
	result, err := driver.Tokenize(cmd.Context(), filePath, opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.Len() > 0 {
		popts, err := prettyOptions(cmd, opts)
		if err != nil {
			return err
		}
		if err := diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag.Items(), result.FileSet, popts); err != nil {
			return err
		}
	}

	// Выводим токены в выбранном формате
	out := cmd.OutOrStdout()
	if format == "json" {
		err = diagfmt.FormatTokensJSON(out, result.Tokens, result.Offsets, result.File)
	} else {
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.Offsets, result.File)
	}
	if err != nil {
		return err
	}
	printTimings(cmd, opts.Timer)
	if result.Bag.HasErrors() {
		return errProblems
	}
	return nil
}
