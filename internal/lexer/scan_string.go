package lexer

import (
	"unicode/utf8"

	"kind/internal/diag"
	"kind/internal/token"
)

// scanString: "..." где '\' экранирует любой символ, кроме перевода строки.
// Литерал никогда не пересекает строку.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '"':
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		case b == '\\':
			nb := lx.cursor.PeekAt(1)
			if lx.cursor.Off+1 >= lx.cursor.Limit || nb == '\n' || nb == '\r' {
				lx.cursor.Bump()
				return lx.unterminatedString(start)
			}
			lx.cursor.Bump()
			lx.bumpRune()
		case b == '\n' || b == '\r':
			return lx.unterminatedString(start)
		default:
			lx.bumpRune()
		}
	}
	return lx.unterminatedString(start)
}

func (lx *Lexer) unterminatedString(start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// scanChar: 'c' — ровно одна кодовая точка, не кавычка и не обратный слеш.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '\''

	r, sz := lx.peekRune()
	switch {
	case sz == 0 || r == '\n' || r == '\r':
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	case r == '\'':
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexEmptyChar, sp, "empty character literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	case r == '\\' || r == utf8.RuneError && sz == 1:
		lx.bumpRune()
		lx.skipToQuote()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedChar, sp, "invalid character literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}

	lx.bumpRune()
	if lx.cursor.Eat('\'') {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.CharLit, Span: sp, Text: lx.text(sp)}
	}
	// 'ab' — один сломанный литерал, а не литерал плюс новая кавычка
	msg := "unterminated character literal"
	if lx.skipToQuote() {
		msg = "character literal must contain exactly one character"
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedChar, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// skipToQuote съедает остаток литерала до закрывающей `'` на той же строке.
// Если кавычки нет, курсор остаётся на месте.
func (lx *Lexer) skipToQuote() bool {
	m := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '\'':
			lx.cursor.Bump()
			return true
		case '\n', '\r':
			lx.cursor.Reset(m)
			return false
		}
		lx.bumpRune()
	}
	lx.cursor.Reset(m)
	return false
}
