package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pdfsyntax/internal/version"
)

// errProblems makes the process exit with status 1 without printing anything
// more: the diagnostics are already on screen.
var errProblems = errors.New("errors reported")

var rootCmd = &cobra.Command{
	Use:   "pdfsyn",
	Short: "PDF object syntax lexer, parser and diagnostics",
	Long: `pdfsyn tokenizes and parses the object syntax of PDF files into a lossless
syntax tree and reports lexical and syntactic problems with exact positions.`,
	SilenceUsage:       true,
	PersistentPreRunE:  prepare,
	PersistentPostRunE: finish,
}

// init registers subcommands and persistent flags.
func init() {
	rootCmd.SilenceErrors = true
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per file (0 = unbounded)")
	rootCmd.PersistentFlags().String("config", "", "path to pdfsyn.toml (default: nearest one above the working directory)")
	rootCmd.PersistentFlags().String("lang", "", "language of diagnostic messages (BCP 47 tag)")

	rootCmd.PersistentFlags().String("trace", "", "trace output file (\"-\" for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson|chrome)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring tracer")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "heartbeat interval for long runs (0 = off)")

	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("memprofile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")
}

// main runs the root command. Exit status: 1 when errors were reported,
// 2 when the command itself failed.
func main() {
	err := rootCmd.Execute()
	if errors.Is(err, errProblems) {
		_ = finish(rootCmd, nil)
		os.Exit(1)
	}
	if err != nil {
		_ = finish(rootCmd, nil)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
