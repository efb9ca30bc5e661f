package parser

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"kind/internal/ast"
	"kind/internal/diag"
	"kind/internal/lexer"
	"kind/internal/source"
)

// parseSourceWith — хелпер: разбирает строку как файл test.kind.
func parseSourceWith(ctx context.Context, src string, opts Options) (*ast.Builder, ast.FileID, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.kind", []byte(src))

	bag := diag.NewBag(100)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter})

	arenas := ast.NewBuilder(ast.Hints{})
	opts.Reporter = reporter
	res := ParseFile(ctx, fs, lx, arenas, opts)
	return arenas, res.File, bag
}

func parseSource(t *testing.T, src string) (*ast.Builder, ast.FileID, *diag.Bag) {
	t.Helper()
	return parseSourceWith(context.Background(), src, Options{MaxErrors: 100})
}

// mustParse разбирает src, требует отсутствия диагностик и возвращает S-выражения деклараций.
func mustParse(t *testing.T, src string) string {
	t.Helper()
	arenas, file, bag := parseSource(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics for %q: %s", src, diagnosticsSummary(bag))
	}
	return arenas.SExprFile(file)
}

// onlyDecl возвращает единственную декларацию файла.
func onlyDecl(t *testing.T, arenas *ast.Builder, file ast.FileID) ast.DeclID {
	t.Helper()
	decls := arenas.Files.Get(file).Decls
	if len(decls) != 1 {
		t.Fatalf("expected 1 declaration, got %d: %s", len(decls), arenas.SExprFile(file))
	}
	return decls[0]
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}
