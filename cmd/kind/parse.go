package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"kind/internal/ast"
	"kind/internal/diagfmt"
	"kind/internal/driver"
	"kind/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.kind|directory|->",
	Short: "Parse Kind sources and output syntax trees",
	Long: `Parse analyzes a Kind source file, stdin ("-") or every source file in a
directory and outputs their syntax trees`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|tree|json|msgpack)")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	parseCmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
}

// parsedFile — разобранный файл, готовый к выводу. builder == nil, если
// файл не удалось прочитать.
type parsedFile struct {
	path    string
	builder *ast.Builder
	id      ast.FileID
}

func runParse(cmd *cobra.Command, args []string) error {
	s := current
	format := s.settings.format
	if err := checkFormat(format, "pretty", "tree", "json", "msgpack"); err != nil {
		return err
	}
	mode, err := progressModeFlag(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	target := args[0]

	if target != "-" && driver.IsDir(target) {
		opts := s.driverOptions()
		var (
			fs      *source.FileSet
			results []driver.ParseDirResult
		)
		if showProgress(mode, s.settings.quiet) {
			fs, results, err = runParseDirWithUI(ctx, target, opts)
		} else {
			fs, results, err = driver.ParseDir(ctx, target, opts)
		}
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		files := make([]parsedFile, 0, len(results))
		for _, r := range results {
			files = append(files, parsedFile{path: r.Path, builder: r.Builder, id: r.ASTFile})
		}
		if err := writeSyntaxTrees(cmd.OutOrStdout(), format, fs, files, !s.settings.quiet); err != nil {
			return err
		}
		return s.report(driver.MergeParseBags(results), fs)
	}

	var res *driver.ParseResult
	if target == "-" {
		content, readErr := io.ReadAll(os.Stdin)
		if readErr != nil {
			return fmt.Errorf("failed to read stdin: %w", readErr)
		}
		res, err = driver.ParseSource(ctx, source.StdinName, content, s.driverOptions())
	} else {
		res, err = driver.Parse(ctx, target, s.driverOptions())
	}
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	files := []parsedFile{{path: res.File.Path, builder: res.Builder, id: res.FileID}}
	if err := writeSyntaxTrees(cmd.OutOrStdout(), format, res.FileSet, files, false); err != nil {
		return err
	}
	return s.report(res.Bag, res.FileSet)
}

// writeSyntaxTrees печатает деревья в нужном формате. json и msgpack
// выдают один документ на все файлы.
func writeSyntaxTrees(w io.Writer, format string, fs *source.FileSet, files []parsedFile, headers bool) error {
	switch format {
	case "json", "msgpack":
		out := diagfmt.ASTOutput{Files: make([]*diagfmt.FileNode, 0, len(files))}
		for _, f := range files {
			if f.builder == nil {
				continue
			}
			if node := diagfmt.BuildFileNode(f.builder, f.id, fs); node != nil {
				out.Files = append(out.Files, node)
			}
		}
		if format == "json" {
			return diagfmt.FormatASTJSON(w, out)
		}
		return diagfmt.FormatASTMsgpack(w, out)
	}

	for i, f := range files {
		if f.builder == nil {
			continue
		}
		if headers {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "== %s ==\n", f.path)
		}
		var err error
		if format == "tree" {
			err = diagfmt.FormatASTTree(w, f.builder, f.id, fs)
		} else {
			err = diagfmt.FormatASTSExpr(w, f.builder, f.id)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
