package main

import (
	"fmt"
	"io"
	"os"

	"kind/internal/diag"
	"kind/internal/diagfmt"
	"kind/internal/driver"
	"kind/internal/source"
)

// driverOptions собирает опции драйвера из настроек текущего запуска.
func (s *session) driverOptions() driver.Options {
	return driver.Options{
		MaxDiagnostics: s.settings.maxDiagnostics,
		Jobs:           s.settings.jobs,
		Extensions:     s.settings.extensions,
		Timer:          s.timer,
	}
}

// report prints the diagnostics of bag to stderr, then timings if asked.
// It returns errDiagnostics when bag holds at least one error.
func (s *session) report(bag *diag.Bag, fs *source.FileSet) error {
	if err := writeDiagnostics(os.Stderr, bag, fs, s.settings); err != nil {
		return err
	}
	if s.settings.timings {
		fmt.Fprint(os.Stderr, s.timer.Summary())
	}
	if bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}

func writeDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, s settings) error {
	if bag == nil {
		return nil
	}
	bag.Sort()
	bag.Dedup()

	switch s.diagnostics {
	case "short":
		if bag.Len() > 0 {
			fmt.Fprintln(w, diag.FormatSummary(bag.Items(), fs, false))
		}
		return nil
	case "json":
		// Пустой список тоже печатается: потребителю проще разбирать.
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         s.pathMode,
			IncludeNotes:     true,
			IncludeFixes:     true,
			IncludePreviews:  true,
		})
	default:
		if bag.Len() == 0 {
			return nil
		}
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:       s.useColor,
			Context:     2,
			PathMode:    s.pathMode,
			ShowNotes:   true,
			ShowFixes:   true,
			ShowPreview: true,
		})
		if dropped := bag.Dropped(); dropped > 0 && !s.quiet {
			fmt.Fprintf(w, "... %d more diagnostics not shown (--max-diagnostics)\n", dropped)
		}
		return nil
	}
}
