package diag

import (
	"testing"

	"kind/internal/source"
)

func TestBagLimitAndErrors(t *testing.T) {
	b := NewBag(2)
	rep := BagReporter{Bag: b}
	rep.Report(SynUnexpectedToken, SevWarning, source.Span{Start: 5, End: 6}, "w", nil, nil)
	if b.HasErrors() {
		t.Fatalf("warning must not count as error")
	}
	rep.Report(SynUnexpectedToken, SevError, source.Span{Start: 1, End: 2}, "e1", nil, nil)
	rep.Report(SynMissingSeparator, SevError, source.Span{Start: 3, End: 3}, "e2", nil, nil)

	if b.Len() != 2 {
		t.Fatalf("expected 2 stored diagnostics, got %d", b.Len())
	}
	if b.Dropped() != 1 {
		t.Fatalf("expected 1 dropped diagnostic, got %d", b.Dropped())
	}
	if !b.HasErrors() {
		t.Fatalf("expected errors")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(0)
	b.Add(NewError(SynMissingSeparator, source.Span{Start: 9, End: 9}, "b"))
	b.Add(NewError(SynUnexpectedToken, source.Span{Start: 1, End: 2}, "a"))
	b.Add(NewError(SynUnexpectedToken, source.Span{Start: 1, End: 2}, "a again"))
	b.Add(New(SevWarning, LexBadNumber, source.Span{Start: 1, End: 2}, "w"))

	b.Sort()
	b.Dedup()

	items := b.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items after dedup, got %d", len(items))
	}
	wantCodes := []Code{SynUnexpectedToken, LexBadNumber, SynMissingSeparator}
	for i, want := range wantCodes {
		if items[i].Code != want {
			t.Errorf("item %d: code %s, want %s", i, items[i].Code.ID(), want.ID())
		}
	}
	if b.ErrorCount() != 2 {
		t.Errorf("ErrorCount = %d, want 2", b.ErrorCount())
	}
}

func TestBagMerge(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(SynUnexpectedToken, source.Span{}, "x"))
	other := NewBag(0)
	other.Add(NewError(SynUnexpectedToken, source.Span{}, "y"))
	other.Add(NewError(SynUnexpectedToken, source.Span{}, "z"))
	a.Merge(other)
	if a.Len() != 3 {
		t.Fatalf("merge lost items: %d", a.Len())
	}
	a.Merge(nil)
}

func TestReportBuilderEmitOnce(t *testing.T) {
	b := NewBag(0)
	rb := NewReportBuilder(BagReporter{Bag: b}, SevError, SynUnclosedDelimiter, source.Span{Start: 4, End: 4}, "unclosed '('").
		WithNote(source.Span{Start: 0, End: 1}, "opened here").
		WithFix("insert ')'", FixEdit{Span: source.Span{Start: 4, End: 4}, NewText: ")"})
	rb.Emit()
	rb.Emit()
	if b.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", b.Len())
	}
	d := b.Items()[0]
	if len(d.Notes) != 1 || len(d.Fixes) != 1 || d.Fixes[0].Edits[0].NewText != ")" {
		t.Fatalf("notes/fixes not propagated: %+v", d)
	}
}

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LexUnknownChar, "LEX1001"},
		{SynMissingSeparator, "SYN2003"},
		{IOLoadFileError, "IO4001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
	if Code(2999).Title() != "Unknown error" {
		t.Errorf("unknown code title mismatch")
	}
	if !LexBadNumber.IsLexical() || SynUnexpectedToken.IsLexical() {
		t.Errorf("IsLexical mismatch")
	}
}
