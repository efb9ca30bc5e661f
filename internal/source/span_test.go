package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected Span
	}{
		{"disjoint", Span{File: 1, Start: 0, End: 3}, Span{File: 1, Start: 10, End: 12}, Span{File: 1, Start: 0, End: 12}},
		{"nested", Span{File: 1, Start: 0, End: 20}, Span{File: 1, Start: 5, End: 6}, Span{File: 1, Start: 0, End: 20}},
		{"reversed", Span{File: 1, Start: 10, End: 12}, Span{File: 1, Start: 0, End: 3}, Span{File: 1, Start: 0, End: 12}},
		{"other file ignored", Span{File: 1, Start: 4, End: 5}, Span{File: 2, Start: 0, End: 9}, Span{File: 1, Start: 4, End: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.expected {
				t.Errorf("Cover() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSpanHelpers(t *testing.T) {
	s := Span{File: 3, Start: 4, End: 9}
	if s.Len() != 5 || s.Empty() {
		t.Fatalf("unexpected Len/Empty for %v", s)
	}
	if at := s.At(); at.Start != 9 || at.End != 9 || !at.Empty() {
		t.Fatalf("At() = %v", at)
	}
	if !s.Contains(Span{File: 3, Start: 5, End: 9}) {
		t.Fatal("expected containment")
	}
	if s.Contains(Span{File: 3, Start: 5, End: 10}) {
		t.Fatal("span past the end must not be contained")
	}
	if s.String() != "3:4-9" {
		t.Fatalf("String() = %q", s.String())
	}
}
