package lexer

import (
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"

	"kind/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
// - пробелы, табы, \v, \f, одиночный \r, юникодные пробелы (U+00A0, U+3000, U+2028, ...)
//   и U+FEFF, U+2060, U+200B коалесцируются в один TriviaSpace
// - //! ... до конца строки -> TriviaDocComment
// - //  ... до конца строки -> TriviaLineComment
// - #! ... в самом начале файла -> TriviaHashBang
// Переводы строк и ';' здесь не трогаем: это разделители.
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = append(lx.hold[:0], lx.carry...)
	lx.carry = nil
	for !lx.cursor.EOF() {
		if !lx.started && lx.cursor.HasPrefix("#!") {
			lx.hold = append(lx.hold, lx.scanToEOL(token.TriviaHashBang))
			continue
		}
		if tr, ok := lx.scanTrivia(); ok {
			lx.hold = append(lx.hold, tr)
			continue
		}
		break
	}
}

// scanTrivia читает один кусок горизонтальных пробелов или комментарий.
func (lx *Lexer) scanTrivia() (token.Trivia, bool) {
	if lx.spaceWidth() > 0 {
		start := lx.cursor.Mark()
		for {
			n := lx.spaceWidth()
			if n == 0 {
				break
			}
			lx.cursor.Skip(n)
		}
		sp := lx.cursor.SpanFrom(start)
		return token.Trivia{Kind: token.TriviaSpace, Span: sp, Text: lx.text(sp)}, true
	}
	if lx.cursor.HasPrefix("//!") {
		return lx.scanToEOL(token.TriviaDocComment), true
	}
	if lx.cursor.HasPrefix("//") {
		return lx.scanToEOL(token.TriviaLineComment), true
	}
	return token.Trivia{}, false
}

// scanToEOL читает до '\n' (или "\r\n") не включая его.
func (lx *Lexer) scanToEOL(kind token.TriviaKind) token.Trivia {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' || (b == '\r' && lx.cursor.PeekAt(1) == '\n') {
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)}
}

// spaceWidth возвращает длину в байтах незначимого пробельного символа под курсором, 0 если его нет.
func (lx *Lexer) spaceWidth() uint32 {
	switch b := lx.cursor.Peek(); {
	case b == ' ', b == '\t', b == '\v', b == '\f':
		return 1
	case b == '\r':
		if lx.cursor.PeekAt(1) != '\n' {
			return 1
		}
		return 0
	case b < utf8.RuneSelf:
		return 0
	}
	r, size := lx.peekRune()
	if !isSpaceRune(r) {
		return 0
	}
	n, err := safecast.Conv[uint32](size)
	if err != nil {
		return 0
	}
	return n
}

// isSpaceRune — не-ASCII пробелы: всё, что unicode.IsSpace, кроме U+0085,
// плюс невидимые U+FEFF, U+2060, U+200B.
func isSpaceRune(r rune) bool {
	switch r {
	case '\uFEFF', '\u2060', '\u200B':
		return true
	case '\u0085':
		return false
	}
	return unicode.IsSpace(r)
}
