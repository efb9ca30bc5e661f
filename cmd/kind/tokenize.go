package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"kind/internal/diagfmt"
	"kind/internal/driver"
	"kind/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.kind|dir|->",
	Short: "Tokenize Kind source files",
	Long: `Tokenize breaks Kind sources into tokens. A directory is walked
recursively and its files are tokenized in parallel; "-" reads stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Int("jobs", 0, "parallel workers for directories (0 = GOMAXPROCS)")
}

// tokenizeFileOutput — элемент JSON-вывода для директории.
type tokenizeFileOutput struct {
	Path   string                 `json:"path"`
	Tokens []diagfmt.TokenOutput `json:"tokens"`
}

func runTokenize(cmd *cobra.Command, args []string) error {
	s := current
	if err := checkFormat(s.settings.format, "pretty", "json"); err != nil {
		return err
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	target := args[0]

	switch {
	case target == "-":
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		res := driver.TokenizeSource(ctx, source.StdinName, content, s.driverOptions())
		if err := writeTokens(out, s.settings.format, res); err != nil {
			return err
		}
		return s.report(res.Bag, res.FileSet)

	case driver.IsDir(target):
		fs, results, err := driver.TokenizeDir(ctx, target, s.driverOptions())
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
		if s.settings.format == "json" {
			files := make([]tokenizeFileOutput, 0, len(results))
			for _, r := range results {
				files = append(files, tokenizeFileOutput{
					Path:   r.Path,
					Tokens: diagfmt.BuildTokensOutput(r.Tokens, fs),
				})
			}
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(files); err != nil {
				return fmt.Errorf("failed to encode tokens: %w", err)
			}
		} else {
			for i, r := range results {
				if !s.settings.quiet {
					if i > 0 {
						fmt.Fprintln(out)
					}
					fmt.Fprintf(out, "== %s ==\n", r.Path)
				}
				if err := diagfmt.FormatTokensPretty(out, r.Tokens, fs); err != nil {
					return err
				}
			}
		}
		return s.report(driver.MergeTokenizeBags(results), fs)

	default:
		res := driver.Tokenize(ctx, target, s.driverOptions())
		if err := writeTokens(out, s.settings.format, res); err != nil {
			return err
		}
		return s.report(res.Bag, res.FileSet)
	}
}

func writeTokens(w io.Writer, format string, res *driver.TokenizeResult) error {
	if format == "json" {
		return diagfmt.FormatTokensJSON(w, res.Tokens, res.FileSet)
	}
	return diagfmt.FormatTokensPretty(w, res.Tokens, res.FileSet)
}
