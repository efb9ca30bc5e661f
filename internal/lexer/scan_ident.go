package lexer

import (
	"kind/internal/token"
)

// scanIdentOrKeyword сканирует [%]?[a-zA-Z_][a-zA-Z0-9_$]* и проверяет LookupKeyword.
// Регистр первой буквы решает LowerIdent / UpperIdent. Синтетические имена
// (`%foo`) никогда не бывают ключевыми словами. Token.Text — ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	synthetic := lx.cursor.Eat('%')

	first := lx.cursor.Bump()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)

	if !synthetic {
		if k, ok := token.LookupKeyword(text); ok {
			return token.Token{Kind: k, Span: sp, Text: text}
		}
	}

	kind := token.LowerIdent
	if isUpper(first) {
		kind = token.UpperIdent
	}
	return token.Token{Kind: kind, Span: sp, Text: text, Synthetic: synthetic}
}

// scanAccess читает `.seg` или `/seg`, где seg — идентификатор или символ-оператор.
// Text хранит только сегмент, без ведущего разделителя.
func (lx *Lexer) scanAccess() token.Token {
	start := lx.cursor.Mark()
	kind := token.DotAccess
	if lx.cursor.Bump() == '/' {
		kind = token.SlashAccess
	}

	segStart := lx.cursor.Off
	if isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	} else {
		lx.bumpSymbolOp()
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[segStart:sp.End])}
}

// scanHash: `#name` → AttrID, иначе одиночный '#'.
func (lx *Lexer) scanHash() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	if isAlpha(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.AttrID, Span: sp, Text: lx.text(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Hash, Span: sp, Text: "#"}
}
