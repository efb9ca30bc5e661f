package driver

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"kind/internal/ast"
	"kind/internal/diag"
	"kind/internal/source"
	"kind/internal/token"
)

// TokenizeDirResult содержит результат токенизации одного файла
type TokenizeDirResult struct {
	Path   string        // Путь, как его вернул обход директории
	FileID source.FileID // ID файла в общем FileSet
	Tokens []token.Token // nil, если файл не загрузился
	Bag    *diag.Bag
}

// ParseDirResult содержит результат парсинга одного файла
type ParseDirResult struct {
	Path    string
	FileID  source.FileID
	Builder *ast.Builder // собственный Builder на каждый файл; nil при ошибке чтения
	ASTFile ast.FileID
	Bag     *diag.Bag
}

// loadedFile — файл после фазы load. ok=false: диагностика IO уже в bag.
type loadedFile struct {
	path string
	id   source.FileID
	ok   bool
	bag  *diag.Bag
}

// preload обходит dir и загружает все исходники в один FileSet до старта
// воркеров: после этого FileSet только читается и делится между горутинами.
func preload(dir string, opts Options, load phase) (*source.FileSet, []loadedFile, error) {
	opts.emit(Event{Stage: StageLoad, Status: StatusWorking})
	files, unreadable, err := walkSourceFiles(dir, opts.extensions())
	if err != nil {
		return nil, nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	fileSet := source.NewFileSetWithBase(dir)
	out := make([]loadedFile, 0, len(files)+len(unreadable))

	for _, path := range files {
		opts.emit(Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}
	for _, path := range files {
		bag := diag.NewBag(opts.MaxDiagnostics)
		id, ok := loadInto(fileSet, path, bag)
		out = append(out, loadedFile{path: path, id: id, ok: ok, bag: bag})
		if !ok {
			opts.emit(Event{File: path, Stage: StageLoad, Status: StatusError})
		}
	}
	for path, readErr := range unreadable {
		bag := diag.NewBag(opts.MaxDiagnostics)
		id := fileSet.AddVirtual(path, nil)
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.IOReadDirError,
			Message:  "failed to read directory: " + readErr.Error(),
			Primary:  source.Span{File: id},
		})
		out = append(out, loadedFile{path: path, id: id, bag: bag})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].path < out[j].path })

	load.end(fmt.Sprintf("%d files", len(files)))
	return fileSet, out, nil
}

// TokenizeDir токенизирует все исходники в директории параллельно
func TokenizeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []TokenizeDirResult, error) {
	timer := timerFor(ctx, opts)
	fileSet, files, err := preload(dir, opts, beginPhase(timer, "load"))
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	opts.emit(Event{Stage: StageLex, Status: StatusWorking})
	lex := beginPhase(timer, "lex")
	lexCtx := lex.context(ctx)
	defer lex.end("")

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]TokenizeDirResult, len(files))

	g, gctx := errgroup.WithContext(lexCtx)
	g.SetLimit(opts.jobs(len(files)))

	for i, lf := range files {
		i, lf := i, lf // go 1.21: per-iteration copy for the goroutine
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = TokenizeDirResult{Path: lf.path, FileID: lf.id, Bag: lf.bag}
			if !lf.ok {
				return nil
			}

			opts.emit(Event{File: lf.path, Stage: StageLex, Status: StatusWorking})
			start := time.Now()
			results[i].Tokens = lexOne(laneCtx(gctx, i), fileSet.Get(lf.id), lf.bag)
			elapsed := time.Since(start)
			timer.Add(lex.name, elapsed)
			opts.emit(Event{File: lf.path, Stage: StageLex, Status: statusOf(lf.bag), Elapsed: elapsed})
			return nil
		})
	}

	// Ждём завершения всех горутин
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// ParseDir парсит все исходники в директории параллельно, по парсеру на файл
func ParseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []ParseDirResult, error) {
	maxErrors, err := opts.maxErrors()
	if err != nil {
		return nil, nil, err
	}
	timer := timerFor(ctx, opts)
	fileSet, files, err := preload(dir, opts, beginPhase(timer, "load"))
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	opts.emit(Event{Stage: StageParse, Status: StatusWorking})
	parse := beginPhase(timer, "parse")
	parseCtx := parse.context(ctx)
	defer parse.end("")

	results := make([]ParseDirResult, len(files))

	g, gctx := errgroup.WithContext(parseCtx)
	g.SetLimit(opts.jobs(len(files)))

	for i, lf := range files {
		i, lf := i, lf // go 1.21: per-iteration copy for the goroutine
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = ParseDirResult{Path: lf.path, FileID: lf.id, Bag: lf.bag}
			if !lf.ok {
				return nil
			}

			opts.emit(Event{File: lf.path, Stage: StageParse, Status: StatusWorking})
			start := time.Now()
			results[i].Builder, results[i].ASTFile = parseOne(laneCtx(gctx, i), fileSet, fileSet.Get(lf.id), lf.bag, maxErrors)
			elapsed := time.Since(start)
			timer.Add(parse.name, elapsed)
			opts.emit(Event{File: lf.path, Stage: StageParse, Status: statusOf(lf.bag), Elapsed: elapsed})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// MergeTokenizeBags собирает диагностики всех файлов в один Bag в порядке путей.
func MergeTokenizeBags(results []TokenizeDirResult) *diag.Bag {
	merged := diag.NewBag(0)
	for _, r := range results {
		merged.Merge(r.Bag)
	}
	return merged
}

// MergeParseBags — то же для результатов ParseDir.
func MergeParseBags(results []ParseDirResult) *diag.Bag {
	merged := diag.NewBag(0)
	for _, r := range results {
		merged.Merge(r.Bag)
	}
	return merged
}
