package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"kind/internal/version"
)

// errDiagnostics — команда отработала, но в исходниках есть ошибки.
// Диагностики уже напечатаны, main только выставляет код выхода.
var errDiagnostics = errors.New("source has errors")

var rootCmd = &cobra.Command{
	Use:   "kind",
	Short: "Kind lexer and parser toolkit",
	Long:  `kind tokenizes and parses Kind sources and prints tokens, syntax trees and diagnostics`,

	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: prepareCommand,
}

// main initializes the CLI by registering subcommands and persistent flags,
// then executes the root command. Any error, including error diagnostics in
// the processed sources, exits with status 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(versionCmd)

	registerPersistentFlags(rootCmd)

	err := rootCmd.Execute()
	finishSession(err != nil)

	if err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// registerPersistentFlags объявляет глобальные флаги; их значения
// перекрывают kind.toml.
func registerPersistentFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics per file (0 = unlimited)")
	flags.String("diagnostics", "pretty", "diagnostics format (pretty|short|json)")
	flags.String("path-mode", "auto", "how paths are shown (auto|absolute|relative|basename)")
	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "auto", "trace storage (auto|stream|ring|both); auto keeps level error in a ring")
	flags.String("trace-format", "auto", "trace output format (auto|text|ndjson); auto picks by file extension")
	flags.String("config", "", "path to kind.toml (default: search upwards from the working directory)")
	flags.String("cpu-profile", "", "write a CPU profile to file")
	flags.String("mem-profile", "", "write a heap profile to file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to file")
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
