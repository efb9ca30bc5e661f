package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"kind/internal/diag"
	"kind/internal/source"
)

func TestJSONDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("r.kind", []byte("record P { x : Nat }"))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynMissingSeparator, source.Span{File: id, Start: 19, End: 20}, "expected line break").
		WithNote(source.Span{File: id, Start: 9, End: 10}, "body starts here").
		WithFix("insert line break", diag.FixEdit{Span: source.Span{File: id, Start: 18, End: 18}, NewText: "\n"}))
	bag.Add(diag.New(diag.SevWarning, diag.SynEmptyBlock, source.Span{File: id, Start: 0, End: 6}, "w"))

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
		IncludeFixes:     true,
		IncludePreviews:  true,
	})
	if err != nil {
		t.Fatal(err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 2 || out.Errors != 1 {
		t.Fatalf("count=%d errors=%d", out.Count, out.Errors)
	}
	d := out.Diagnostics[0]
	if d.Severity != "error" || d.Code != "SYN2003" || d.Title != "Missing line break" {
		t.Fatalf("diagnostic = %+v", d)
	}
	if d.Location.File != "r.kind" || d.Location.StartCol != 20 || d.Location.StartByte != 19 {
		t.Fatalf("location = %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "body starts here" {
		t.Fatalf("notes = %+v", d.Notes)
	}
	if len(d.Fixes) != 1 || len(d.Fixes[0].Edits) != 1 {
		t.Fatalf("fixes = %+v", d.Fixes)
	}
	edit := d.Fixes[0].Edits[0]
	if edit.NewText != "\n" || len(edit.BeforeLines) != 1 || len(edit.AfterLines) != 2 {
		t.Fatalf("edit = %+v", edit)
	}
	if out.Diagnostics[1].Severity != "warning" {
		t.Fatalf("second = %+v", out.Diagnostics[1])
	}
}

func TestJSONMaxAndDefaults(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.kind", []byte("abc"))
	bag := diag.NewBag(10)
	for i := 0; i < 3; i++ {
		bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: 0, End: 1}, "m").
			WithNote(source.Span{File: id, Start: 1, End: 2}, "n"))
	}
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 || out.Errors != 3 {
		t.Fatalf("count=%d errors=%d", out.Count, out.Errors)
	}
	d := out.Diagnostics[0]
	if d.Notes != nil || d.Fixes != nil || d.Location.StartLine != 0 {
		t.Fatalf("optional parts present: %+v", d)
	}
}
