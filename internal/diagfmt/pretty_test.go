package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"kind/internal/diag"
	"kind/internal/source"
)

func singleDiag(t *testing.T, path, content string, d func(source.FileID) diag.Diagnostic) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual(path, []byte(content))
	bag := diag.NewBag(10)
	bag.Add(d(id))
	return bag, fs
}

func TestPrettyLayout(t *testing.T) {
	bag, fs := singleDiag(t, "test.kind", "f = (g x", func(id source.FileID) diag.Diagnostic {
		return diag.NewError(diag.SynUnclosedDelimiter, source.Span{File: id, Start: 8, End: 8},
			`unclosed "(": expected ")", got end of file`).
			WithNote(source.Span{File: id, Start: 4, End: 5}, "opened here")
	})

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true})

	want := strings.Join([]string{
		`test.kind:1:9: ERROR SYN2002: unclosed "(": expected ")", got end of file`,
		" 1 | f = (g x",
		"   |         ^",
		"  = note: opened here (test.kind:1:5)",
		" 1 | f = (g x",
		"   |     ^",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyNotesHidden(t *testing.T) {
	bag, fs := singleDiag(t, "a.kind", "x", func(id source.FileID) diag.Diagnostic {
		return diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: 0, End: 1}, "boom").
			WithNote(source.Span{File: id, Start: 0, End: 1}, "secret")
	})
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if strings.Contains(buf.String(), "secret") {
		t.Fatalf("note printed without ShowNotes:\n%s", buf.String())
	}
}

func TestPrettyCaretAlignment(t *testing.T) {
	tests := []struct {
		name    string
		content string
		start   uint32
		end     uint32
		pad     int
		mark    string
	}{
		{"ascii", "abc def", 4, 7, 4, "^~~"},
		{"tab expands", "\tfoo bar", 5, 8, 8, "^~~"},
		{"wide runes", "日本 = x", 9, 10, 7, "^"},
		{"empty span", "abc", 3, 3, 3, "^"},
		{"multi-line span", "ab\ncd", 1, 4, 1, "^"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag, fs := singleDiag(t, "w.kind", tt.content, func(id source.FileID) diag.Diagnostic {
				return diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: tt.start, End: tt.end}, "m")
			})
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{})
			want := "   | " + strings.Repeat(" ", tt.pad) + tt.mark + "\n"
			if !strings.Contains(buf.String(), want) {
				t.Fatalf("caret line %q not found in:\n%s", want, buf.String())
			}
		})
	}
}

func TestPrettyContextLines(t *testing.T) {
	bag, fs := singleDiag(t, "c.kind", "one\ntwo\nthree", func(id source.FileID) diag.Diagnostic {
		return diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: 8, End: 13}, "m")
	})
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1})
	out := buf.String()
	if strings.Contains(out, "one") || !strings.Contains(out, " 2 | two") || !strings.Contains(out, " 3 | three") {
		t.Fatalf("context:\n%s", out)
	}
}

func TestPrettyFixPreview(t *testing.T) {
	bag, fs := singleDiag(t, "r.kind", "record P { x : Nat }", func(id source.FileID) diag.Diagnostic {
		return diag.NewError(diag.SynMissingSeparator, source.Span{File: id, Start: 19, End: 20}, "m").
			WithFix("insert line break", diag.FixEdit{Span: source.Span{File: id, Start: 18, End: 18}, NewText: "\n"})
	})
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowFixes: true, ShowPreview: true})
	out := buf.String()
	for _, want := range []string{
		"  = fix: insert line break\n",
		"    - record P { x : Nat }\n",
		"    + record P { x : Nat\n",
		"    +  }\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestPrettyColor(t *testing.T) {
	bag, fs := singleDiag(t, "a.kind", "x", func(id source.FileID) diag.Diagnostic {
		return diag.New(diag.SevWarning, diag.SynEmptyBlock, source.Span{File: id, Start: 0, End: 1}, "m")
	})
	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("escape codes without Color: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("no escape codes with Color: %q", colored.String())
	}
}

func TestPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/home/user/project")
	id := fs.AddVirtual("/home/user/project/src/nat.kind", []byte("x"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: id, Start: 0, End: 1}, "m"))

	tests := []struct {
		mode PathMode
		want string
	}{
		{PathModeAbsolute, "/home/user/project/src/nat.kind:1:1"},
		{PathModeRelative, "src/nat.kind:1:1"},
		{PathModeBasename, "nat.kind:1:1"},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			if !strings.HasPrefix(buf.String(), tt.want) {
				t.Fatalf("got %q, want prefix %q", buf.String(), tt.want)
			}
		})
	}
}

func TestParsePathMode(t *testing.T) {
	for _, s := range []string{"auto", "ABS", "relative", "base"} {
		if _, err := ParsePathMode(s); err != nil {
			t.Fatalf("%q: %v", s, err)
		}
	}
	if _, err := ParsePathMode("nowhere"); err == nil {
		t.Fatal("expected error")
	}
}
