package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"kind/internal/diag"
	"kind/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	code, gutter    *color.Color
	caret, note     *color.Color
	added, removed  *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:     mk(color.FgRed, color.Bold),
		warn:    mk(color.FgYellow, color.Bold),
		info:    mk(color.FgCyan, color.Bold),
		code:    mk(color.Bold),
		gutter:  mk(color.FgBlue),
		caret:   mk(color.FgGreen, color.Bold),
		note:    mk(color.FgCyan),
		added:   mk(color.FgGreen),
		removed: mk(color.FgRed),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
// Ширина символов считается по runewidth, табы раскрываются в пробелы.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeDiagnostic(w, &d, fs, opts, pal)
	}
}

func writeDiagnostic(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		location(fs, d.Primary, opts.PathMode),
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		pal.code.Sprint(d.Code.ID()),
		d.Message)
	writeSnippet(w, fs, d.Primary, opts, pal)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			fmt.Fprintf(w, "  %s %s (%s)\n", pal.note.Sprint("= note:"), note.Msg, location(fs, note.Span, opts.PathMode))
			writeSnippet(w, fs, note.Span, opts, pal)
		}
	}
	if !opts.ShowFixes {
		return
	}
	for _, fix := range d.Fixes {
		fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("= fix:"), fix.Title)
		if !opts.ShowPreview {
			continue
		}
		for _, edit := range fix.Edits {
			preview, err := buildFixPreview(fs, edit)
			if err != nil {
				continue
			}
			for _, line := range preview.before {
				fmt.Fprintf(w, "    %s\n", pal.removed.Sprint("- "+expandTabs(line, opts.TabWidth)))
			}
			for _, line := range preview.after {
				fmt.Fprintf(w, "    %s\n", pal.added.Sprint("+ "+expandTabs(line, opts.TabWidth)))
			}
		}
	}
}

func location(fs *source.FileSet, sp source.Span, mode PathMode) string {
	f := fs.Get(sp.File)
	if f == nil {
		return "<unknown>"
	}
	start, _ := fs.Resolve(sp)
	return formatPath(f, fs, mode) + ":" + start.String()
}

// writeSnippet печатает строку span'а (и Context строк до неё) с подчёркиванием.
// Многострочный span подчёркивается до конца первой строки.
func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts, pal palette) {
	f := fs.Get(sp.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(sp)
	gutterWidth := len(fmt.Sprint(start.Line))

	first := uint32(1)
	if start.Line > uint32(opts.Context) {
		first = start.Line - uint32(opts.Context)
	}
	for n := first; n <= start.Line; n++ {
		text := expandTabs(f.GetLine(n), opts.TabWidth)
		if opts.Width > 0 {
			text = runewidth.Truncate(text, int(opts.Width), "…")
		}
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth+1, n), text)
	}

	line := f.GetLine(start.Line)
	from := clampCol(start.Col, line)
	to := len(line)
	if end.Line == start.Line {
		to = clampCol(end.Col, line)
	}
	pad := runewidth.StringWidth(expandTabs(line[:from], opts.TabWidth))
	mark := max(runewidth.StringWidth(expandTabs(line[from:max(from, to)], opts.TabWidth)), 1)

	underline := "^" + strings.Repeat("~", mark-1)
	fmt.Fprintf(w, "%s %s%s\n",
		pal.gutter.Sprintf("%*s |", gutterWidth+1, ""),
		strings.Repeat(" ", pad),
		pal.caret.Sprint(underline))
}

// clampCol переводит 1-based байтовую колонку в индекс строки.
func clampCol(col uint32, line string) int {
	if col == 0 {
		return 0
	}
	return min(int(col-1), len(line))
}

func expandTabs(s string, width uint8) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	if width == 0 {
		width = 4
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", int(width)))
}
