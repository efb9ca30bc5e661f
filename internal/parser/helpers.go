package parser

import (
	"strconv"

	"kind/internal/diag"
	"kind/internal/source"
	"kind/internal/token"
)

// sepMode определяет, что парсер делает с разделителями строк.
type sepMode uint8

const (
	// modeSig: верхний уровень и блоки `{ }`, разделитель значим.
	modeSig sepMode = iota
	// modeSkip: внутри `( )`, `< >` и биндеров `[x : T]` разделители пропускаются.
	modeSkip
	// modeArray: внутри литерала массива разделитель отделяет элементы.
	modeArray
)

func (p *Parser) mode() sepMode {
	return p.modes[len(p.modes)-1]
}

func (p *Parser) pushMode(m sepMode) {
	p.modes = append(p.modes, m)
}

func (p *Parser) popMode() {
	if len(p.modes) > 1 {
		p.modes = p.modes[:len(p.modes)-1]
	}
}

// sig — индекс первого значимого для текущего режима токена, начиная с i.
func (p *Parser) sig(i int) int {
	if p.mode() == modeSkip {
		for i < len(p.toks)-1 && p.toks[i].Kind.IsSeparator() {
			i++
		}
	}
	if i >= len(p.toks) {
		return len(p.toks) - 1
	}
	return i
}

// peek возвращает текущий токен; в modeSkip разделители съедаются сразу.
func (p *Parser) peek() token.Token {
	p.pos = p.sig(p.pos)
	return p.toks[p.pos]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atSep() bool {
	return p.peek().Kind.IsSeparator()
}

// kindAt — вид токена по сырому индексу буфера (разделители не пропускаются).
func (p *Parser) kindAt(i int) token.Kind {
	if i >= len(p.toks) {
		return token.EOF
	}
	return p.toks[i].Kind
}

// advance — съедает текущий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind == token.EOF {
		return tok
	}
	p.pos++
	if !tok.Kind.IsSeparator() {
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// skipSeps съедает подряд идущие разделители независимо от режима.
func (p *Parser) skipSeps() {
	for p.toks[p.pos].Kind.IsSeparator() {
		p.pos++
	}
}

// skipSepBefore съедает один разделитель, только если за ним стоит один из kinds.
func (p *Parser) skipSepBefore(kinds ...token.Kind) bool {
	if !p.atSep() {
		return false
	}
	next := p.kindAt(p.pos + 1)
	for _, k := range kinds {
		if next == k {
			p.pos++
			return true
		}
	}
	return false
}

// spanFrom — от начала start до конца последнего съеденного значимого токена.
func (p *Parser) spanFrom(start source.Span) source.Span {
	if p.lastSpan.End < start.Start {
		return start
	}
	return start.Cover(p.lastSpan)
}

// expect — ожидаем конкретный токен; иначе ошибка и false.
func (p *Parser) expect(k token.Kind, code diag.Code, what string) (token.Token, bool) {
	tok := p.peek()
	if tok.Kind == k {
		return p.advance(), true
	}
	p.fail(code, p.diagSpan(), "expected "+what+", got "+describe(tok))
	return tok, false
}

// open съедает открывающую скобку и входит в режим m.
func (p *Parser) open(m sepMode) token.Token {
	tok := p.advance()
	p.pushMode(m)
	return tok
}

// closeWith закрывает скобку, открытую токеном opener.
// Конец файла или чужая закрывающая скобка дают SynUnclosedDelimiter.
func (p *Parser) closeWith(k token.Kind, opener token.Token) bool {
	tok := p.peek()
	if tok.Kind == k {
		p.advance()
		p.popMode()
		return true
	}
	want := strconv.Quote(closerText(k))
	switch tok.Kind {
	case token.EOF, token.RParen, token.RBracket, token.RBrace:
		p.failWith(diag.SynUnclosedDelimiter, p.diagSpan(),
			"unclosed "+strconv.Quote(opener.Text)+": expected "+want+", got "+describe(tok),
			func(b *diag.ReportBuilder) { b.WithNote(opener.Span, "opened here") })
	default:
		p.fail(diag.SynUnexpectedToken, p.diagSpan(), "expected "+want+", got "+describe(tok))
	}
	return false
}

func closerText(k token.Kind) string {
	switch k {
	case token.RParen:
		return ")"
	case token.RBracket:
		return "]"
	case token.RBrace:
		return "}"
	case token.Gt:
		return ">"
	}
	return k.String()
}

// diagSpan — span для диагностики: на EOF указываем сразу за последним токеном.
func (p *Parser) diagSpan() source.Span {
	tok := p.peek()
	if tok.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return tok.Span
}

// fail сообщает первую ошибку декларации; остальные подавляются.
// Ошибка на Invalid-токене уже выдана лексером.
func (p *Parser) fail(code diag.Code, sp source.Span, msg string) {
	p.failWith(code, sp, msg, nil)
}

func (p *Parser) failWith(code diag.Code, sp source.Span, msg string, decorate func(*diag.ReportBuilder)) {
	if p.failed {
		return
	}
	p.failed = true
	if p.peek().Kind == token.Invalid {
		return
	}
	p.report(code, diag.SevError, sp, msg, decorate)
}

func (p *Parser) warn(code diag.Code, sp source.Span, msg string) {
	p.report(code, diag.SevWarning, sp, msg, nil)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string, decorate func(*diag.ReportBuilder)) {
	if p.opts.Reporter == nil {
		return
	}
	if sev == diag.SevError {
		if p.opts.Enough() {
			return // достигли максимального количества ошибок
		}
		p.opts.CurrentErrors++
	}
	b := diag.NewReportBuilder(p.opts.Reporter, sev, code, sp, msg)
	if decorate != nil {
		decorate(b)
	}
	b.Emit()
}

// describe — короткое описание токена для сообщений.
func describe(tok token.Token) string {
	switch {
	case tok.Kind == token.EOF:
		return "end of file"
	case tok.Kind.IsSeparator():
		return "line break"
	case tok.Text != "":
		return strconv.Quote(tok.Text)
	}
	return tok.Kind.String()
}

// recover пропускает остаток сломанной декларации: до первого разделителя
// на нулевой глубине скобок (считая от начала декларации) не раньше места ошибки.
// Парные скобки перепрыгиваются целиком, закрывающая скобка без пары
// глубину не меняет. Если скобка так и не закрылась, границей считается
// первый разделитель после начала декларации, за которым с первой колонки
// начинается новая декларация.
func (p *Parser) recover(start int) {
	failPos := p.pos
	if failPos <= start {
		failPos = start + 1
	}
	p.modes = p.modes[:1]

	for i := start; i < len(p.toks); i++ {
		switch p.toks[i].Kind {
		case token.LParen, token.LBracket, token.LBrace:
			k := p.matchClose(i)
			if k < 0 {
				p.recoverAtLine(start)
				return
			}
			i = k
		case token.Sep, token.SepStrict:
			if i >= failPos {
				p.pos = i
				return
			}
		case token.EOF:
			p.pos = i
			return
		}
	}
	p.pos = len(p.toks) - 1
}

func (p *Parser) recoverAtLine(start int) {
	for i := start + 1; i < len(p.toks); i++ {
		if p.toks[i].Kind.IsSeparator() && p.declStartsLine(i+1) {
			p.pos = i
			return
		}
	}
	p.pos = len(p.toks) - 1
}

// declStartsLine — токен i стоит в первой колонке и может начинать декларацию.
func (p *Parser) declStartsLine(i int) bool {
	if i >= len(p.toks) {
		return false
	}
	tok := p.toks[i]
	switch tok.Kind {
	case token.EOF:
		return true
	case token.LowerIdent, token.UpperIdent, token.AttrID, token.Hash,
		token.KwRecord, token.KwType, token.KwUse:
	default:
		return false
	}
	off := tok.Span.Start
	return off == 0 || p.src[off-1] == '\n'
}
