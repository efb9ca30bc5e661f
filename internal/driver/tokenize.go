package driver

import (
	"context"
	"time"

	"kind/internal/diag"
	"kind/internal/observ"
	"kind/internal/source"
	"kind/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize загружает файл с диска и вычитывает его токены до EOF включительно.
// Ошибка чтения не возвращается как error: она попадает в Bag как IO4001.
func Tokenize(ctx context.Context, path string, opts Options) *TokenizeResult {
	fs := source.NewFileSet()
	bag := diag.NewBag(opts.MaxDiagnostics)
	timer := timerFor(ctx, opts)

	load := beginPhase(timer, "load")
	fileID, ok := loadInto(fs, path, bag)
	load.end(path)

	res := &TokenizeResult{FileSet: fs, File: fs.Get(fileID), Bag: bag}
	if !ok {
		return res
	}
	res.Tokens = tokenizeLoaded(ctx, timer, res.File, bag)
	return res
}

// TokenizeSource токенизирует содержимое из памяти (stdin, тесты).
func TokenizeSource(ctx context.Context, name string, content []byte, opts Options) *TokenizeResult {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, content))
	bag := diag.NewBag(opts.MaxDiagnostics)
	toks := tokenizeLoaded(ctx, timerFor(ctx, opts), file, bag)
	return &TokenizeResult{FileSet: fs, File: file, Tokens: toks, Bag: bag}
}

func tokenizeLoaded(ctx context.Context, timer *observ.Timer, file *source.File, bag *diag.Bag) []token.Token {
	lex := beginPhase(timer, "lex")
	start := time.Now()
	toks := lexOne(lex.context(ctx), file, bag)
	timer.Add(lex.name, time.Since(start))
	lex.end("")
	return toks
}
