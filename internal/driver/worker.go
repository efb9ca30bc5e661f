package driver

import (
	"context"

	"fortio.org/safecast"

	"kind/internal/ast"
	"kind/internal/diag"
	"kind/internal/lexer"
	"kind/internal/observ"
	"kind/internal/parser"
	"kind/internal/source"
	"kind/internal/token"
	"kind/internal/trace"
)

// phase — фаза таймера вместе с её trace-спаном.
type phase struct {
	timer *observ.Timer
	idx   int
	name  string
}

func beginPhase(t *observ.Timer, name string) phase {
	return phase{timer: t, idx: t.Begin(name), name: name}
}

// context возвращает ctx, в котором спан фазы является родителем.
func (p phase) context(ctx context.Context) context.Context {
	return trace.WithParent(ctx, p.timer.Span(p.idx))
}

func (p phase) end(note string) {
	p.timer.End(p.idx, note)
}

func timerFor(ctx context.Context, opts Options) *observ.Timer {
	if opts.Timer != nil {
		return opts.Timer
	}
	return observ.NewTimer(ctx)
}

// loadInto читает файл в fs. При ошибке чтения путь всё равно получает
// пустой виртуальный файл, чтобы диагностике было на что указать.
func loadInto(fs *source.FileSet, path string, bag *diag.Bag) (source.FileID, bool) {
	id, err := fs.Load(path)
	if err == nil {
		return id, true
	}
	id = fs.AddVirtual(path, nil)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.IOLoadFileError,
		Message:  "failed to load file: " + err.Error(),
		Primary:  source.Span{File: id},
	})
	return id, false
}

func outcome(bag *diag.Bag) string {
	if bag.HasErrors() {
		return "error"
	}
	return "ok"
}

func statusOf(bag *diag.Bag) Status {
	if bag.HasErrors() {
		return StatusError
	}
	return StatusDone
}

// laneCtx помечает события i-го файла пакета номером i+1.
func laneCtx(ctx context.Context, i int) context.Context {
	lane, err := safecast.Conv[uint32](i + 1)
	if err != nil {
		return ctx
	}
	return trace.WithLane(ctx, lane)
}

// lexOne вычитывает все токены файла в буфер, под file-спаном.
func lexOne(ctx context.Context, file *source.File, bag *diag.Bag) []token.Token {
	span := trace.Open(ctx, trace.ScopeFile, "file:"+file.Path)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	toks := lx.All()
	span.Count("tokens", len(toks)).End(outcome(bag))
	return toks
}

// parseOne разбирает файл в собственный Builder: парсеры разных файлов
// не делят состояние.
func parseOne(ctx context.Context, fs *source.FileSet, file *source.File, bag *diag.Bag, maxErrors uint) (*ast.Builder, ast.FileID) {
	span := trace.Open(ctx, trace.ScopeFile, "file:"+file.Path)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{})

	res := parser.ParseFile(trace.WithParent(ctx, span), fs, lx, builder, parser.Options{
		MaxErrors: maxErrors,
		Reporter:  reporter,
	})
	decls := len(builder.Files.Get(res.File).Decls)
	span.Count("decls", decls).End(outcome(bag))
	return builder, res.File
}
