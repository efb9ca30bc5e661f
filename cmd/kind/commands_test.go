package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"kind/internal/diag"
	"kind/internal/diagfmt"
	"kind/internal/observ"
	"kind/internal/source"
	"kind/internal/trace"
)

// withSession подменяет current на время теста.
func withSession(t *testing.T, s settings) *session {
	t.Helper()
	prev := current
	current = &session{settings: s, timer: observ.NewTimer(context.Background())}
	t.Cleanup(func() { current = prev })
	return current
}

func quietSettings(format string) settings {
	return settings{
		color:       "off",
		quiet:       true,
		format:      format,
		diagnostics: "json",
	}
}

func newRunCommand(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{Use: "run"}
	cmd.Flags().String("ui", "off", "")
	cmd.SetOut(out)
	cmd.SetContext(context.Background())
	return cmd
}

func TestRunParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.kind")
	writeFile(t, path, "type Nat {\n  zero : Nat\n  succ (pred : Nat) : Nat\n}\n")

	tests := []struct {
		format string
		check  func(t *testing.T, out string)
	}{
		{"pretty", func(t *testing.T, out string) {
			if strings.TrimSpace(out) == "" || strings.Contains(out, "==") {
				t.Errorf("unexpected S-expression output %q", out)
			}
		}},
		{"tree", func(t *testing.T, out string) {
			if !strings.Contains(out, "main.kind") || !strings.Contains(out, "└── ") {
				t.Errorf("unexpected tree output:\n%s", out)
			}
		}},
		{"json", func(t *testing.T, out string) {
			var got diagfmt.ASTOutput
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if len(got.Files) != 1 || len(got.Files[0].Decls) != 1 {
				t.Errorf("unexpected files: %+v", got.Files)
			}
		}},
		{"msgpack", func(t *testing.T, out string) {
			got, err := diagfmt.DecodeASTMsgpack(strings.NewReader(out))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(got.Files) != 1 || got.Files[0].Decls[0].Kind == "" {
				t.Errorf("unexpected files: %+v", got.Files)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			withSession(t, quietSettings(tt.format))
			var out bytes.Buffer
			if err := runParse(newRunCommand(&out), []string{path}); err != nil {
				t.Fatalf("runParse: %v", err)
			}
			tt.check(t, out.String())
		})
	}
}

func TestRunParseDirectoryReportsErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.kind"), "a = 1\n")
	writeFile(t, filepath.Join(dir, "sub", "b.kind"), "b = (c d\n")

	s := quietSettings("pretty")
	s.quiet = false
	withSession(t, s)

	var out bytes.Buffer
	err := runParse(newRunCommand(&out), []string{dir})
	if !errors.Is(err, errDiagnostics) {
		t.Fatalf("runParse error = %v, want errDiagnostics", err)
	}
	headers := 0
	for _, line := range strings.Split(out.String(), "\n") {
		if strings.HasPrefix(line, "== ") && strings.HasSuffix(line, " ==") {
			headers++
		}
	}
	if headers != 2 {
		t.Errorf("expected a header per file, got %d:\n%s", headers, out.String())
	}
}

func TestRunParseRejectsUnknownFormat(t *testing.T) {
	withSession(t, quietSettings("yaml"))
	var out bytes.Buffer
	if err := runParse(newRunCommand(&out), []string{"x.kind"}); err == nil {
		t.Fatal("expected format error")
	}
}

func TestRunTokenizeDirectoryJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "one.kind"), "one = 1\n")
	writeFile(t, filepath.Join(dir, "two.kind2"), "two = \"2\"\n")
	withSession(t, quietSettings("json"))

	var out bytes.Buffer
	if err := runTokenize(newRunCommand(&out), []string{dir}); err != nil {
		t.Fatalf("runTokenize: %v", err)
	}
	var files []tokenizeFileOutput
	if err := json.Unmarshal(out.Bytes(), &files); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out.String())
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}
	if !strings.HasSuffix(files[0].Path, "one.kind") || !strings.HasSuffix(files[1].Path, "two.kind2") {
		t.Errorf("paths out of order: %s, %s", files[0].Path, files[1].Path)
	}
	for _, f := range files {
		if len(f.Tokens) == 0 || f.Tokens[len(f.Tokens)-1].Kind != "EOF" {
			t.Errorf("%s: token stream must end with EOF", f.Path)
		}
	}
}

func TestWriteDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("mem.kind", []byte("a = (\n"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: 4, End: 5}, "unexpected token"))

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeDiagnostics(&buf, bag, fs, settings{diagnostics: "json"}); err != nil {
			t.Fatal(err)
		}
		var got diagfmt.DiagnosticsOutput
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if got.Count != 1 || got.Errors != 1 {
			t.Errorf("count=%d errors=%d, want 1/1", got.Count, got.Errors)
		}
	})

	t.Run("pretty", func(t *testing.T) {
		orig := color.NoColor
		color.NoColor = true
		defer func() { color.NoColor = orig }()

		var buf bytes.Buffer
		if err := writeDiagnostics(&buf, bag, fs, settings{diagnostics: "pretty"}); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "unexpected token") || !strings.Contains(buf.String(), "mem.kind") {
			t.Errorf("unexpected pretty output:\n%s", buf.String())
		}
	})

	t.Run("short", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeDiagnostics(&buf, bag, fs, settings{diagnostics: "short"}); err != nil {
			t.Fatal(err)
		}
		if got, want := buf.String(), "error SYN2001 mem.kind:1:5 unexpected token\n"; got != want {
			t.Errorf("short output = %q, want %q", got, want)
		}
	})

	t.Run("empty pretty", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeDiagnostics(&buf, diag.NewBag(0), fs, settings{diagnostics: "pretty"}); err != nil {
			t.Fatal(err)
		}
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})
}

func TestDriverOptionsFollowSettings(t *testing.T) {
	s := withSession(t, settings{maxDiagnostics: 9, jobs: 2, extensions: []string{".k"}})
	opts := s.driverOptions()
	if opts.MaxDiagnostics != 9 || opts.Jobs != 2 || opts.Extensions[0] != ".k" || opts.Timer != s.timer {
		t.Errorf("unexpected options: %+v", opts)
	}
}

func TestProgressMode(t *testing.T) {
	tests := []struct {
		in      string
		want    progressMode
		wantErr bool
	}{
		{"", progressAuto, false},
		{"AUTO", progressAuto, false},
		{" on ", progressOn, false},
		{"off", progressOff, false},
		{"sometimes", progressAuto, true},
	}
	for _, tt := range tests {
		got, err := parseProgressMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseProgressMode(%q) = %v, %v", tt.in, got, err)
		}
	}
	if !showProgress(progressOn, false) || showProgress(progressOff, false) {
		t.Error("explicit ui modes must not depend on the terminal")
	}
	if showProgress(progressOn, true) {
		t.Error("--quiet must hide the progress view")
	}
	t.Setenv("TERM", "dumb")
	if showProgress(progressAuto, false) {
		t.Error("auto mode must stay off on a dumb terminal")
	}
}

func TestVersionCommand(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = orig }()

	newCmd := func(args ...string) (*cobra.Command, *bytes.Buffer) {
		var out bytes.Buffer
		cmd := &cobra.Command{Use: "version", RunE: versionCmd.RunE}
		registerVersionFlags(cmd)
		cmd.SetOut(&out)
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatalf("parse flags: %v", err)
		}
		return cmd, &out
	}

	t.Run("pretty", func(t *testing.T) {
		cmd, out := newCmd("--hash")
		if err := cmd.RunE(cmd, nil); err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(out.String(), "kind ") || !strings.Contains(out.String(), "commit:") {
			t.Errorf("unexpected output %q", out.String())
		}
		if strings.Contains(out.String(), "built:") {
			t.Errorf("--hash must not print the build date: %q", out.String())
		}
	})

	t.Run("json full", func(t *testing.T) {
		info := collectVersionInfo()
		var out bytes.Buffer
		if err := renderVersionJSON(&out, info, versionOptions{format: "json", showHash: true, showMessage: true, showDate: true}); err != nil {
			t.Fatal(err)
		}
		var payload versionPayload
		if err := json.Unmarshal(out.Bytes(), &payload); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if payload.Tool != "kind" || payload.Version != info.Version {
			t.Errorf("payload = %+v", payload)
		}
		if payload.GitCommit == "" || payload.BuildDate == "" {
			t.Errorf("full payload misses metadata: %+v", payload)
		}
	})

	t.Run("bad format", func(t *testing.T) {
		cmd, _ := newCmd("--format", "xml")
		if err := cmd.RunE(cmd, nil); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestSessionLifecycle(t *testing.T) {
	chdir(t, t.TempDir())
	cmd := newTestCommand(t, "--color=off", "--trace-level", "phase", "--trace-mode", "ring")
	cmd.SetContext(context.Background())
	t.Cleanup(func() { current = nil })

	if err := prepareCommand(cmd, nil); err != nil {
		t.Fatalf("prepareCommand: %v", err)
	}
	s := current
	if s == nil || s.timer == nil {
		t.Fatal("session not initialised")
	}
	ring := trace.RingOf(s.tracer)
	if ring == nil {
		t.Fatalf("--trace-mode ring must keep a ring buffer, got %T", s.tracer)
	}
	if trace.ParentSpan(cmd.Context()) == 0 {
		t.Error("command context lacks the driver span")
	}

	finishSession(false)
	if current != nil {
		t.Error("finishSession must clear the session")
	}
	var names []string
	for _, ev := range ring.Snapshot() {
		names = append(names, ev.Kind.String()+" "+ev.Name)
	}
	got := strings.Join(names, ", ")
	if !strings.Contains(got, "kind test") || len(names) != 2 {
		t.Errorf("ring events = %s", got)
	}
}

// chdir меняет рабочий каталог на время теста (аналог t.Chdir из Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("chdir back: %v", err)
		}
	})
}
