package lexer

import (
	"strings"
	"testing"

	"kind/internal/diag"
	"kind/internal/token"
)

func TestTokenTooLong(t *testing.T) {
	bag := diag.NewBag(4)
	lx := New(createFile(strings.Repeat("a", maxTokenLength+1)+" b"), Options{Reporter: diag.BagReporter{Bag: bag}})

	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Fatalf("expected invalid token, got %v", tok.Kind)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexTokenTooLong {
		t.Fatalf("expected LexTokenTooLong, got %v", bag.Items())
	}
	if next := lx.Next(); next.Kind != token.LowerIdent || next.Text != "b" {
		t.Fatalf("lexing must continue after a long token, got %v %q", next.Kind, next.Text)
	}
}

func TestTokenAtLimitAllowed(t *testing.T) {
	bag := diag.NewBag(1)
	lx := New(createFile(strings.Repeat("B", maxTokenLength)), Options{Reporter: diag.BagReporter{Bag: bag}})

	if tok := lx.Next(); tok.Kind != token.UpperIdent {
		t.Fatalf("expected constructor identifier, got %v", tok.Kind)
	}
	if bag.HasErrors() {
		t.Fatalf("did not expect diagnostics, got %v", bag.Items())
	}
}
