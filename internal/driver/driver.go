// Package driver wires the source, lexer and parser packages into the
// operations the command line exposes: tokenize or parse one file, or a
// whole directory in parallel.
package driver

import (
	"fmt"
	"runtime"

	"fortio.org/safecast"

	"kind/internal/observ"
)

// DefaultExtensions — расширения исходников, которые ищутся в директории.
var DefaultExtensions = []string{".kind", ".kind2"}

// Options configures every driver entry point.
type Options struct {
	// MaxDiagnostics caps diagnostics per file; 0 means unlimited.
	MaxDiagnostics int
	// Jobs bounds parallel workers for directory runs; <= 0 means GOMAXPROCS.
	Jobs int
	// Extensions filters directory walks; empty means DefaultExtensions.
	Extensions []string

	// Timer, если задан, получает фазы load/lex/parse.
	Timer *observ.Timer
	// Progress receives per-file events; nil discards them.
	Progress ProgressSink
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions
	}
	return o.Extensions
}

func (o Options) jobs(files int) int {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, files))
}

// maxErrors переводит лимит диагностик в лимит ошибок парсера.
func (o Options) maxErrors() (uint, error) {
	n, err := safecast.Conv[uint](o.MaxDiagnostics)
	if err != nil {
		return 0, fmt.Errorf("max diagnostics %d: %w", o.MaxDiagnostics, err)
	}
	return n, nil
}

func (o Options) emit(ev Event) {
	if o.Progress != nil {
		o.Progress.OnEvent(ev)
	}
}
