package driver

import (
	"context"
	"time"

	"kind/internal/ast"
	"kind/internal/diag"
	"kind/internal/observ"
	"kind/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
}

// Parse загружает и разбирает один файл. error возвращается только для
// некорректных опций; проблемы чтения и разбора уходят в Bag.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	maxErrors, err := opts.maxErrors()
	if err != nil {
		return nil, err
	}
	fs := source.NewFileSet()
	bag := diag.NewBag(opts.MaxDiagnostics)
	timer := timerFor(ctx, opts)

	load := beginPhase(timer, "load")
	fileID, ok := loadInto(fs, path, bag)
	load.end(path)

	res := &ParseResult{FileSet: fs, File: fs.Get(fileID), Bag: bag}
	if !ok {
		return res, nil
	}
	res.Builder, res.FileID = parseLoaded(ctx, timer, fs, res.File, bag, maxErrors)
	return res, nil
}

// ParseSource разбирает содержимое из памяти под именем name.
func ParseSource(ctx context.Context, name string, content []byte, opts Options) (*ParseResult, error) {
	maxErrors, err := opts.maxErrors()
	if err != nil {
		return nil, err
	}
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, content))
	bag := diag.NewBag(opts.MaxDiagnostics)

	builder, fileID := parseLoaded(ctx, timerFor(ctx, opts), fs, file, bag, maxErrors)
	return &ParseResult{FileSet: fs, File: file, Builder: builder, FileID: fileID, Bag: bag}, nil
}

func parseLoaded(ctx context.Context, timer *observ.Timer, fs *source.FileSet, file *source.File, bag *diag.Bag, maxErrors uint) (*ast.Builder, ast.FileID) {
	parse := beginPhase(timer, "parse")
	start := time.Now()
	builder, fileID := parseOne(parse.context(ctx), fs, file, bag, maxErrors)
	timer.Add(parse.name, time.Since(start))
	parse.end("")
	return builder, fileID
}
