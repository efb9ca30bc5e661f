package lexer

import (
	"kind/internal/diag"
	"kind/internal/source"
	"kind/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
	// carry — trivia, встреченные внутри серии разделителей; уходят в Leading следующего токена.
	carry []token.Trivia

	// prev описывает последний значимый токен: нужен для склейки access-сегментов.
	prevKind token.Kind
	prevEnd  uint32
	hasPrev  bool
	// lineHasCode: на текущей строке уже был значимый токен.
	lineHasCode bool
	// started: уже выдан хотя бы один значимый токен или разделитель (для #!).
	started bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий **значимый** токен с уже собранным Leading.
// Разделители (Sep / SepStrict) значимы. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		tok := token.Token{Kind: token.EOF, Span: lx.emptySpan(), Leading: lx.takeHold()}
		return tok
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case lx.atSeparator():
		tok = lx.scanSeparator()
		tok.Leading = lx.takeHold()
		lx.lineHasCode = false
		lx.hasPrev = false
		return tok

	case (ch == '.' || ch == '/') && lx.gluedToName():
		tok = lx.scanAccess()

	case ch == '%' && isIdentStartByte(lx.cursor.PeekAt(1)):
		tok = lx.scanIdentOrKeyword()

	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '"':
		tok = lx.scanString()

	case ch == '\'':
		tok = lx.scanChar()

	case ch == '#':
		tok = lx.scanHash()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	if tok.Kind != token.Invalid && tok.Span.Len() > maxTokenLength {
		lx.errLex(diag.LexTokenTooLong, tok.Span, "token is too long")
		tok.Kind = token.Invalid
	}

	tok.Leading = lx.takeHold()
	lx.lineHasCode = true
	lx.started = true
	lx.prevKind = tok.Kind
	lx.prevEnd = tok.Span.End
	lx.hasPrev = true
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// All drains the lexer. The returned slice always ends with exactly one EOF.
func (lx *Lexer) All() []token.Token {
	out := make([]token.Token, 0, len(lx.file.Content)/4+1)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) takeHold() []token.Trivia {
	if len(lx.hold) == 0 {
		lx.hold = nil
		return nil
	}
	h := lx.hold
	lx.hold = nil
	return h
}

// gluedToName: курсор стоит сразу (без пробелов) за идентификатором или access-сегментом.
func (lx *Lexer) gluedToName() bool {
	if !lx.hasPrev || lx.prevEnd != lx.cursor.Off {
		return false
	}
	switch lx.prevKind {
	case token.LowerIdent, token.UpperIdent, token.DotAccess, token.SlashAccess:
	default:
		return false
	}
	b1 := lx.cursor.PeekAt(1)
	if lx.cursor.Peek() == '/' && b1 == '/' {
		// "//" всегда комментарий
		return false
	}
	if isIdentStartByte(b1) {
		return true
	}
	m := lx.cursor.Mark()
	lx.cursor.Bump()
	_, ok := lx.bumpSymbolOp()
	lx.cursor.Reset(m)
	return ok
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

// File returns the source file being lexed.
func (lx *Lexer) File() *source.File {
	return lx.file
}
