package lexer

import (
	"kind/internal/token"
)

func (lx *Lexer) atSeparator() bool {
	switch lx.cursor.Peek() {
	case '\n', ';':
		return true
	case '\r':
		return lx.cursor.PeekAt(1) == '\n'
	}
	return false
}

// scanSeparator сворачивает серию `\n` / `\r\n` / `;` (с пробелами и
// комментариями между ними) в один токен. Серия, завершающая строку со
// значимым токеном, строгая (SepStrict); иначе — Sep.
// Span покрывает первый..последний символ разделителя; trivia после
// последнего перевода строки уходят в Leading следующего токена.
func (lx *Lexer) scanSeparator() token.Token {
	kind := token.Sep
	if lx.lineHasCode {
		kind = token.SepStrict
	}
	start := lx.cursor.Mark()
	end := lx.cursor.Off
	var pending []token.Trivia
	for !lx.cursor.EOF() {
		if lx.atSeparator() {
			if lx.cursor.Peek() == '\r' {
				lx.cursor.Bump()
			}
			lx.cursor.Bump()
			end = lx.cursor.Off
			lx.carry = append(lx.carry, pending...)
			pending = pending[:0]
			continue
		}
		if tr, ok := lx.scanTrivia(); ok {
			pending = append(pending, tr)
			continue
		}
		break
	}
	lx.carry = append(lx.carry, pending...)
	lx.started = true

	sp := lx.cursor.SpanFrom(start)
	sp.End = end
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}
