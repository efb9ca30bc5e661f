package parser

import (
	"strings"
	"testing"

	"kind/internal/diag"
	"kind/internal/lexer"
	"kind/internal/source"
	"kind/internal/token"
)

func lexAll(t *testing.T, src string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.kind", []byte(src))
	bag := diag.NewBag(10)
	return lexer.New(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}}).All()
}

func TestIndexBrackets(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		pairs map[int]int // открывающая -> закрывающая, остальные открывающие без пары
		arrow []int
	}{
		{"flat", "( a ) [ b ]", map[int]int{0: 2, 3: 5}, nil},
		{"nested", "( ( a ) -> b )", map[int]int{0: 6, 1: 3}, []int{0}},
		{"stray closer ignored", "{ g ) y }", map[int]int{0: 4}, nil},
		{"mismatched closer leaves both open", "( [ a )", map[int]int{}, nil},
		{"unclosed", "( a", map[int]int{}, nil},
		{"arrow in inner level only", "( ( a -> b ) )", map[int]int{0: 6, 1: 5}, []int{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := lexAll(t, tt.src)
			br := indexBrackets(toks)
			for i, tok := range toks {
				want, paired := tt.pairs[i]
				if !paired {
					want = -1
				}
				switch tok.Kind {
				case token.LParen, token.LBracket, token.LBrace:
					if br.close[i] != want {
						t.Errorf("close[%d] = %d, want %d (%s)", i, br.close[i], want, tokensText(toks))
					}
				default:
					if br.close[i] != -1 {
						t.Errorf("non-opener %d has a pair %d", i, br.close[i])
					}
				}
			}
			arrows := map[int]bool{}
			for _, i := range tt.arrow {
				arrows[i] = true
			}
			for i := range toks {
				if br.arrow[i] != arrows[i] {
					t.Errorf("arrow[%d] = %v", i, br.arrow[i])
				}
			}
		})
	}
}

func tokensText(toks []token.Token) string {
	parts := make([]string, 0, len(toks))
	for _, tok := range toks {
		parts = append(parts, tok.Kind.String())
	}
	return strings.Join(parts, " ")
}

func nestedBinders(n int) string {
	return "f = " + strings.Repeat("(a : ", n) + "T" + strings.Repeat(") -> T", n) + "\n"
}

func nestedCaseArgs(n int) string {
	return "m = match x r {\n  Zero => " + strings.Repeat("g (", n) + "z" + strings.Repeat(")", n) + "\n  (Succ p) => p\n}\n"
}

func flatCaseArgs(n int) string {
	return "m = match x r {\n  Zero => F" + strings.Repeat(" A", n) + "\n  (Succ p) => p\n}\n"
}

func TestDeepLookaheadInputs(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"nested binders", nestedBinders(300)},
		{"nested case arguments", nestedCaseArgs(300)},
		{"long case call chain", flatCaseArgs(2000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arenas, file, bag := parseSource(t, tt.src)
			if bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
			}
			onlyDecl(t, arenas, file)
		})
	}
}

// TestAtomsEndShared: все позиции одной цепочки атомов получают общий конец.
func TestAtomsEndShared(t *testing.T) {
	toks := lexAll(t, "F A (b c) .. d =>")
	p := Parser{toks: toks, br: indexBrackets(toks)}
	end := p.atomsEnd(0)
	if toks[end].Kind != token.FatArrow {
		t.Fatalf("end = %d (%v), want =>", end, toks[end].Kind)
	}
	for _, i := range []int{1, 2, 6, 7} {
		if got := p.atomsEnd(i); got != end {
			t.Errorf("atomsEnd(%d) = %d, want %d", i, got, end)
		}
	}
	if got := p.atomsEnd(end); got != end {
		t.Errorf("atomsEnd at => = %d", got)
	}
}
