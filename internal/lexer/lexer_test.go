package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"kind/internal/diag"
	"kind/internal/lexer"
	"kind/internal/source"
	"kind/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
		Fixes:    fixes,
	})
}

func (r *testReporter) messages() []string {
	out := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return out
}

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.kind", []byte(input)))
	reporter := &testReporter{}
	return lexer.New(file, lexer.Options{Reporter: reporter}), reporter
}

// significant возвращает все токены без завершающего EOF
func significant(input string) ([]token.Token, *testReporter) {
	lx, rep := makeTestLexer(input)
	toks := lx.All()
	return toks[:len(toks)-1], rep
}

func expectKinds(t *testing.T, input string, expected ...token.Kind) []token.Token {
	t.Helper()
	toks, rep := significant(input)
	if len(toks) != len(expected) {
		t.Fatalf("input %q: expected %d tokens, got %d\ntokens: %s\nerrors: %v",
			input, len(expected), len(toks), tokensToString(toks), rep.messages())
	}
	for i, tok := range toks {
		if tok.Kind != expected[i] {
			t.Errorf("input %q token %d: expected %v, got %v (text %q)", input, i, expected[i], tok.Kind, tok.Text)
		}
	}
	return toks
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		input     string
		kind      token.Kind
		synthetic bool
	}{
		{"foo", token.LowerIdent, false},
		{"_x", token.LowerIdent, false},
		{"a$b1", token.LowerIdent, false},
		{"Foo", token.UpperIdent, false},
		{"U60", token.UpperIdent, false},
		{"rule", token.LowerIdent, false},
		{"val", token.LowerIdent, false},
		{"as", token.LowerIdent, false},
		{"match", token.KwMatch, false},
		{"specialize", token.KwSpecialize, false},
		{"Match", token.UpperIdent, false},
		{"%foo", token.LowerIdent, true},
		{"%Foo", token.UpperIdent, true},
		{"%match", token.LowerIdent, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := expectKinds(t, tt.input, tt.kind)
			if toks[0].Text != tt.input {
				t.Errorf("text = %q, want %q", toks[0].Text, tt.input)
			}
			if toks[0].Synthetic != tt.synthetic {
				t.Errorf("synthetic = %v, want %v", toks[0].Synthetic, tt.synthetic)
			}
		})
	}
}

func TestAccessSegments(t *testing.T) {
	toks := expectKinds(t, "a.b/c.d", token.LowerIdent, token.DotAccess, token.SlashAccess, token.DotAccess)
	want := []string{"a", "b", "c", "d"}
	for i, w := range want {
		if toks[i].Text != w {
			t.Errorf("segment %d: text %q, want %q", i, toks[i].Text, w)
		}
	}
	if toks[2].Span.Start != 3 || toks[2].Span.End != 5 {
		t.Errorf("slash access span = %v, want 3-5", toks[2].Span)
	}

	tests := []struct {
		input string
		kinds []token.Kind
	}{
		{"Nat.succ", []token.Kind{token.UpperIdent, token.DotAccess}},
		{"U60.+", []token.Kind{token.UpperIdent, token.DotAccess}},
		{"List/<=", []token.Kind{token.UpperIdent, token.SlashAccess}},
		{"a . b", []token.Kind{token.LowerIdent, token.Dot, token.LowerIdent}},
		{"a .b", []token.Kind{token.LowerIdent, token.Dot, token.LowerIdent}},
		{"a//c", []token.Kind{token.LowerIdent}},
		{"x..", []token.Kind{token.LowerIdent, token.DotDot}},
		{"x.0", []token.Kind{token.LowerIdent, token.Dot, token.F60Lit}},
		{"a.type", []token.Kind{token.LowerIdent, token.DotAccess}},
		{"(/ a b)", []token.Kind{token.LParen, token.Slash, token.LowerIdent, token.LowerIdent, token.RParen}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectKinds(t, tt.input, tt.kinds...)
		})
	}
}

func TestClassifyNumber(t *testing.T) {
	tests := []struct {
		text string
		kind token.Kind
		ok   bool
	}{
		{"42", token.F60Lit, true},
		{"0", token.F60Lit, true},
		{"3.14", token.F60Lit, true},
		{"1.5_0", token.F60Lit, true},
		{"42f60", token.F60Lit, true},
		{"42u60", token.U60Lit, true},
		{"0xff", token.U60Lit, true},
		{"0XAB", token.U60Lit, true},
		{"0b101", token.U60Lit, true},
		{"0o17", token.U60Lit, true},
		{"0x1Fu120", token.U120Lit, true},
		{"0O17u120", token.U120Lit, true},
		{"12u120", token.U120Lit, true},
		{"7n", token.NLit, true},
		{"0o17n", token.NLit, true},
		{"0x9n", token.NLit, true},
		{"12abc", token.Invalid, false},
		{"0x", token.Invalid, false},
		{"0b2", token.Invalid, false},
		{"0o8", token.Invalid, false},
		{"1.5u60", token.Invalid, false},
		{"1_000", token.Invalid, false},
		{"7N", token.Invalid, false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			kind, ok := lexer.ClassifyNumber(tt.text)
			if kind != tt.kind || ok != tt.ok {
				t.Fatalf("ClassifyNumber(%q) = %v, %v; want %v, %v", tt.text, kind, ok, tt.kind, tt.ok)
			}
		})
	}
}

func TestNumbersInStream(t *testing.T) {
	toks := expectKinds(t, "1.5.3", token.F60Lit, token.Dot, token.F60Lit)
	if toks[0].Text != "1.5" {
		t.Errorf("first literal = %q", toks[0].Text)
	}
	expectKinds(t, "1..2", token.F60Lit, token.DotDot, token.F60Lit)
	expectKinds(t, "0x1Fu120 7n 42u60", token.U120Lit, token.NLit, token.U60Lit)

	toks, rep := significant("12abc")
	if len(toks) != 1 || toks[0].Kind != token.Invalid || toks[0].Text != "12abc" {
		t.Fatalf("expected a single invalid token, got %s", tokensToString(toks))
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexBadNumber {
		t.Fatalf("expected LexBadNumber, got %v", rep.messages())
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
		code  diag.Code
	}{
		{`"hello"`, token.StringLit, diag.UnknownCode},
		{`"a\"b"`, token.StringLit, diag.UnknownCode},
		{`"a\\"`, token.StringLit, diag.UnknownCode},
		{`"λ"`, token.StringLit, diag.UnknownCode},
		{`"open`, token.Invalid, diag.LexUnterminatedString},
		{"\"a\nb\"", token.Invalid, diag.LexUnterminatedString},
		{"\"a\\\nb\"", token.Invalid, diag.LexUnterminatedString},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, rep := makeTestLexer(tt.input)
			tok := lx.Next()
			if tok.Kind != tt.kind {
				t.Fatalf("kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tt.code == diag.UnknownCode {
				if len(rep.diagnostics) != 0 {
					t.Fatalf("unexpected diagnostics: %v", rep.messages())
				}
				if tok.Text != tt.input {
					t.Fatalf("text = %q, want %q", tok.Text, tt.input)
				}
				return
			}
			if len(rep.diagnostics) == 0 || rep.diagnostics[0].Code != tt.code {
				t.Fatalf("expected %s, got %v", tt.code.ID(), rep.messages())
			}
		})
	}
}

func TestChars(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
		code  diag.Code
	}{
		{"'a'", token.CharLit, diag.UnknownCode},
		{"'é'", token.CharLit, diag.UnknownCode},
		{"''", token.Invalid, diag.LexEmptyChar},
		{"'ab'", token.Invalid, diag.LexUnterminatedChar},
		{`'\n'`, token.Invalid, diag.LexUnterminatedChar},
		{"'", token.Invalid, diag.LexUnterminatedChar},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, rep := makeTestLexer(tt.input)
			tok := lx.Next()
			if tok.Kind != tt.kind {
				t.Fatalf("kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tt.code == diag.UnknownCode {
				if len(rep.diagnostics) != 0 {
					t.Fatalf("unexpected diagnostics: %v", rep.messages())
				}
				return
			}
			if len(rep.diagnostics) == 0 || rep.diagnostics[0].Code != tt.code {
				t.Fatalf("expected %s, got %v", tt.code.ID(), rep.messages())
			}
		})
	}
}

func TestMalformedCharReportedOnce(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"'ab'", `[Invalid("'ab'")]`},
		{"'abc' x", `[Invalid("'abc'"), LowerIdent("x")]`},
		{`'\n'`, `[Invalid("'\\n'")]`},
		{"'ab", `[Invalid("'a"), LowerIdent("b")]`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks, rep := significant(tt.input)
			if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnterminatedChar {
				t.Fatalf("want one %s, got %v", diag.LexUnterminatedChar.ID(), rep.messages())
			}
			if got := tokensToString(toks); got != tt.want {
				t.Fatalf("tokens = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSymbolOperators(t *testing.T) {
	input := "$ + - * / % ^ & | && || ! ~ == != < > <= >= << >>"
	toks, rep := significant(input)
	if len(rep.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.messages())
	}
	fields := strings.Fields(input)
	if len(toks) != len(fields) {
		t.Fatalf("expected %d tokens, got %s", len(fields), tokensToString(toks))
	}
	for i, tok := range toks {
		if !tok.Kind.IsSymbolOp() || tok.Text != fields[i] {
			t.Errorf("token %d: %v %q, want symbol op %q", i, tok.Kind, tok.Text, fields[i])
		}
	}
}

func TestPunctuation(t *testing.T) {
	expectKinds(t, "{ } ( ) [ ] : :: = => -> , . .. # ? @",
		token.LBrace, token.RBrace, token.LParen, token.RParen, token.LBracket, token.RBracket,
		token.Colon, token.ColonColon, token.Assign, token.FatArrow, token.Arrow, token.Comma,
		token.Dot, token.DotDot, token.Hash, token.Question, token.At)
	// жадность: "+-" это два оператора, модификатор собирает парсер
	expectKinds(t, "+-(", token.Plus, token.Minus, token.LParen)
	expectKinds(t, "a->b", token.LowerIdent, token.Arrow, token.LowerIdent)
}

func TestAttributes(t *testing.T) {
	toks := expectKinds(t, "#inline", token.AttrID)
	if toks[0].Text != "#inline" {
		t.Errorf("attr text = %q", toks[0].Text)
	}
	expectKinds(t, "#[a]", token.Hash, token.LBracket, token.LowerIdent, token.RBracket)
	expectKinds(t, "#3", token.Hash, token.F60Lit)
	expectKinds(t, "#_x", token.Hash, token.LowerIdent)
}

func TestSeparators(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kinds []token.Kind
	}{
		{"newline after code", "a\nb", []token.Kind{token.LowerIdent, token.SepStrict, token.LowerIdent}},
		{"crlf", "a\r\nb", []token.Kind{token.LowerIdent, token.SepStrict, token.LowerIdent}},
		{"collapsed run", "a;;\n  ; b", []token.Kind{token.LowerIdent, token.SepStrict, token.LowerIdent}},
		{"leading blank lines", "\n\na", []token.Kind{token.Sep, token.LowerIdent}},
		{"trailing comment", "a // c\n\nb", []token.Kind{token.LowerIdent, token.SepStrict, token.LowerIdent}},
		{"trailing newline", "a\n", []token.Kind{token.LowerIdent, token.SepStrict}},
		{"comment only line", "// c\na", []token.Kind{token.Sep, token.LowerIdent}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectKinds(t, tt.input, tt.kinds...)
		})
	}

	toks := expectKinds(t, "a \r\n\r\n b", token.LowerIdent, token.SepStrict, token.LowerIdent)
	if toks[1].Text != "\r\n\r\n" {
		t.Errorf("separator text = %q", toks[1].Text)
	}
}

func TestTriviaAttachment(t *testing.T) {
	toks := expectKinds(t, "a // c\n\n//! doc\nb", token.LowerIdent, token.SepStrict, token.LowerIdent)
	if docs := toks[2].DocComments(); len(docs) != 1 || docs[0] != "//! doc" {
		t.Fatalf("doc comments of b = %v", docs)
	}
	sepLeading := toks[1].Leading
	if len(sepLeading) != 2 || sepLeading[1].Kind != token.TriviaLineComment || sepLeading[1].Text != "// c" {
		t.Fatalf("separator leading trivia = %+v", sepLeading)
	}

	toks = expectKinds(t, "\uFEFFa\u2060 b\u200B", token.LowerIdent, token.LowerIdent)
	if len(toks[0].Leading) != 1 || toks[0].Leading[0].Kind != token.TriviaSpace || toks[0].Leading[0].Span.Len() != 3 {
		t.Fatalf("BOM must be space trivia, got %+v", toks[0].Leading)
	}
	if toks[1].Span.Start != 8 {
		t.Fatalf("b starts at %d, want 8", toks[1].Span.Start)
	}
}

func TestUnicodeSpaceTrivia(t *testing.T) {
	tests := []struct {
		name  string
		space string
	}{
		{"no-break space", "\u00a0"},
		{"en quad", "\u2000"},
		{"hair space", "\u200a"},
		{"line separator", "\u2028"},
		{"paragraph separator", "\u2029"},
		{"narrow no-break space", "\u202f"},
		{"medium math space", "\u205f"},
		{"ideographic space", "\u3000"},
		{"ogham space mark", "\u1680"},
		{"mixed run", " \u00a0\t\u3000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "f = a" + tt.space + "b"
			toks, rep := significant(input)
			if len(rep.diagnostics) != 0 {
				t.Fatalf("unexpected diagnostics: %v", rep.messages())
			}
			if got := tokensToString(toks); got != `[LowerIdent("f"), Assign("="), LowerIdent("a"), LowerIdent("b")]` {
				t.Fatalf("tokens = %s", got)
			}
			lead := toks[3].Leading
			if len(lead) != 1 || lead[0].Kind != token.TriviaSpace || lead[0].Text != tt.space {
				t.Fatalf("leading trivia of b = %+v", lead)
			}
		})
	}

	// U+0085 не пробел для грамматики
	toks, rep := significant("a\u0085b")
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnknownChar {
		t.Fatalf("NEL: tokens %s, errors %v", tokensToString(toks), rep.messages())
	}
}

func TestHashBang(t *testing.T) {
	toks := expectKinds(t, "#!/usr/bin/env kind\nmain", token.Sep, token.LowerIdent)
	lead := toks[0].Leading
	if len(lead) != 1 || lead[0].Kind != token.TriviaHashBang || lead[0].Text != "#!/usr/bin/env kind" {
		t.Fatalf("hash-bang trivia = %+v", lead)
	}
	// не в начале файла это обычные токены
	expectKinds(t, "a #!", token.LowerIdent, token.Hash, token.Bang)
}

func TestUnknownCharacter(t *testing.T) {
	toks, rep := significant("a ` λ b")
	if len(toks) != 4 || toks[1].Kind != token.Invalid || toks[2].Kind != token.Invalid || toks[2].Text != "λ" {
		t.Fatalf("tokens = %s", tokensToString(toks))
	}
	if len(rep.diagnostics) != 2 {
		t.Fatalf("expected two diagnostics, got %v", rep.messages())
	}
	for _, d := range rep.diagnostics {
		if d.Code != diag.LexUnknownChar {
			t.Errorf("unexpected code %s", d.Code.ID())
		}
	}
}

func TestPeekAndEOF(t *testing.T) {
	lx, _ := makeTestLexer("x y")
	p := lx.Peek()
	if p2 := lx.Peek(); p2.Span != p.Span {
		t.Fatalf("Peek must be idempotent")
	}
	if n := lx.Next(); n.Kind != p.Kind || n.Span != p.Span {
		t.Fatalf("Next after Peek = %v, want %v", n, p)
	}
	lx.Next()
	for i := 0; i < 3; i++ {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("expected EOF, got %v", tok.Kind)
		}
	}

	lx, _ = makeTestLexer("")
	all := lx.All()
	if len(all) != 1 || all[0].Kind != token.EOF {
		t.Fatalf("empty input must yield only EOF, got %s", tokensToString(all))
	}
}

func TestDeclarationLine(t *testing.T) {
	expectKinds(t, "id (x: Nat) : Nat { x }",
		token.LowerIdent, token.LParen, token.LowerIdent, token.Colon, token.UpperIdent, token.RParen,
		token.Colon, token.UpperIdent, token.LBrace, token.LowerIdent, token.RBrace)
	expectKinds(t, "specialize f into #2 in x",
		token.KwSpecialize, token.LowerIdent, token.KwInto, token.Hash, token.F60Lit, token.KwIn, token.LowerIdent)
}
