package lexer

import (
	"unicode/utf8"

	"kind/internal/diag"
	"kind/internal/token"
)

// Жадность: сначала 2-символьные, затем 1-символьные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	switch {
	case lx.try2('.', '.'):
		return emit(token.DotDot)
	case lx.try2(':', ':'):
		return emit(token.ColonColon)
	case lx.try2('=', '>'):
		return emit(token.FatArrow)
	case lx.try2('-', '>'):
		return emit(token.Arrow)
	}
	if k, ok := lx.bumpSymbolOp(); ok {
		return emit(k)
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '=':
		return emit(token.Assign)
	case ':':
		return emit(token.Colon)
	case ',':
		return emit(token.Comma)
	case '.':
		return emit(token.Dot)
	case '?':
		return emit(token.Question)
	case '@':
		return emit(token.At)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	}

	// неизвестный символ: съедаем руну целиком, чтобы не резать UTF-8
	lx.cursor.Reset(start)
	_, sz := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
	lx.cursor.Skip(uint32(sz)) // #nosec G115 -- rune size is at most 4
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unknown character "+quoteText(lx.text(sp)))
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// bumpSymbolOp съедает один символ-оператор из закрытого набора
// `$ + - * / % ^ & | && || ! ~ == != < > <= >= << >>`.
func (lx *Lexer) bumpSymbolOp() (token.Kind, bool) {
	switch {
	case lx.try2('&', '&'):
		return token.AndAnd, true
	case lx.try2('|', '|'):
		return token.OrOr, true
	case lx.try2('=', '='):
		return token.EqEq, true
	case lx.try2('!', '='):
		return token.BangEq, true
	case lx.try2('<', '='):
		return token.LtEq, true
	case lx.try2('>', '='):
		return token.GtEq, true
	case lx.try2('<', '<'):
		return token.Shl, true
	case lx.try2('>', '>'):
		return token.Shr, true
	}
	var k token.Kind
	switch lx.cursor.Peek() {
	case '$':
		k = token.Dollar
	case '+':
		k = token.Plus
	case '-':
		k = token.Minus
	case '*':
		k = token.Star
	case '/':
		k = token.Slash
	case '%':
		k = token.Percent
	case '^':
		k = token.Caret
	case '&':
		k = token.Amp
	case '|':
		k = token.Pipe
	case '!':
		k = token.Bang
	case '~':
		k = token.Tilde
	case '<':
		k = token.Lt
	case '>':
		k = token.Gt
	default:
		return token.Invalid, false
	}
	lx.cursor.Bump()
	return k, true
}
