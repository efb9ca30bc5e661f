package lexer

import (
	"regexp"

	"kind/internal/diag"
	"kind/internal/token"
)

const intPattern = `(?:[0-9]+|0[oO][0-7]+|0[xX][0-9a-fA-F]+|0[bB][01]+)`

// numberForms is the first-match-wins classification order. Because the
// float form comes first and its suffix is optional, a bare decimal numeral
// such as "42" is an F60 literal.
var numberForms = [...]struct {
	kind token.Kind
	re   *regexp.Regexp
}{
	{token.F60Lit, regexp.MustCompile(`^[0-9]+(?:\.[0-9_]+)?(?:f60)?$`)},
	{token.U60Lit, regexp.MustCompile(`^` + intPattern + `(?:u60)?$`)},
	{token.U120Lit, regexp.MustCompile(`^` + intPattern + `(?:u120)?$`)},
	{token.NLit, regexp.MustCompile(`^` + intPattern + `n?$`)},
}

// ClassifyNumber returns the literal kind for numeric text, or
// (token.Invalid, false) when no form matches. It depends on the text only.
func ClassifyNumber(text string) (token.Kind, bool) {
	for _, f := range numberForms {
		if f.re.MatchString(text) {
			return f.kind, true
		}
	}
	return token.Invalid, false
}

// scanNumber делает maximal munch по цифрам, буквам и '_' (плюс одна дробная
// часть для десятичных), затем классифицирует текст через ClassifyNumber.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	// дробная часть: только сразу после десятичных цифр и только ".digit"
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	}
	// радикс, hex-цифры и суффиксы
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	kind, ok := ClassifyNumber(text)
	if !ok {
		lx.errLex(diag.LexBadNumber, sp, "malformed numeric literal "+quoteText(text))
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}
