package parser

import (
	"kind/internal/ast"
	"kind/internal/diag"
	"kind/internal/token"
)

// parseMatch: `match S b [= v] (with name | with (name : T))* { case* } [: motive]`.
func (p *Parser) parseMatch() (ast.ExprID, bool) {
	kw := p.advance()
	var data ast.ExprMatchData
	var ok bool

	if data.Scrutinee, ok = p.parseName(); !ok {
		return ast.NoExprID, false
	}
	if data.Binder, ok = p.parseName(); !ok {
		return ast.NoExprID, false
	}
	if p.eat(token.Assign) {
		if data.Value, ok = p.parseExpr(); !ok {
			return ast.NoExprID, false
		}
	}
	for p.at(token.KwWith) {
		with, ok := p.parseWith()
		if !ok {
			return ast.NoExprID, false
		}
		data.With = append(data.With, with)
	}

	if data.Cases, ok = p.parseCases(); !ok {
		return ast.NoExprID, false
	}
	if p.eat(token.Colon) {
		if data.Motive, ok = p.parseExpr(); !ok {
			return ast.NoExprID, false
		}
	}
	return p.arenas.Exprs.NewMatch(p.spanFrom(kw.Span), data), true
}

// parseWith: `with name` или `with (name : T)`.
func (p *Parser) parseWith() (ast.WithClause, bool) {
	kw := p.advance()
	var with ast.WithClause
	if !p.at(token.LParen) {
		name, ok := p.parseName()
		if !ok {
			return with, false
		}
		with.Name = name
		with.Span = p.spanFrom(kw.Span)
		return with, true
	}

	opener := p.open(modeSkip)
	name, ok := p.parseName()
	if !ok {
		return with, false
	}
	if _, ok = p.expect(token.Colon, diag.SynUnexpectedToken, "':' in with clause"); !ok {
		return with, false
	}
	typ, ok := p.parseExpr()
	if !ok || !p.closeWith(token.RParen, opener) {
		return with, false
	}
	with.Name, with.Type = name, typ
	with.Span = p.spanFrom(kw.Span)
	return with, true
}

// parseCases разбирает блок веток. Ветки разделяются переводом строки
// или идут подряд, если следующая начинается сразу за значением предыдущей.
func (p *Parser) parseCases() ([]ast.MatchCase, bool) {
	opener, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "'{' to open match cases")
	if !ok {
		return nil, false
	}
	p.pushMode(modeSig)

	saved := p.caseDepth
	p.caseDepth = len(p.modes)
	defer func() { p.caseDepth = saved }()

	p.skipSeps()
	var cases []ast.MatchCase
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		start := p.peek().Span
		pat, ok := p.parseMatchPattern()
		if !ok {
			return nil, false
		}
		if _, ok = p.expect(token.FatArrow, diag.SynUnexpectedToken, "'=>' after case pattern"); !ok {
			return nil, false
		}
		value, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		cases = append(cases, ast.MatchCase{Span: p.spanFrom(start), Pattern: pat, Value: value})

		switch {
		case p.atSep():
			p.skipSeps()
		case p.at(token.RBrace), p.startsCase(p.pos):
		default:
			p.fail(diag.SynUnexpectedToken, p.diagSpan(), "expected line break or '}' after match case, got "+describe(p.peek()))
			return nil, false
		}
	}

	if !p.closeWith(token.RBrace, opener) {
		return nil, false
	}
	if len(cases) == 0 {
		p.warn(diag.SynEmptyBlock, p.spanFrom(opener.Span), "match has no cases")
	}
	return cases, true
}

// parseDo: `do Name { stmts }`.
func (p *Parser) parseDo() (ast.ExprID, bool) {
	kw := p.advance()
	scrutinee, ok := p.parseName()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.LBrace) {
		p.expect(token.LBrace, diag.SynUnexpectedToken, "'{' to open do block")
		return ast.NoExprID, false
	}
	stmts, ok := p.parseBlock()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewDo(p.spanFrom(kw.Span), ast.ExprDoData{Scrutinee: scrutinee, Stmts: stmts}), true
}

// parseAsk: `ask name = value`.
func (p *Parser) parseAsk() (ast.ExprID, bool) {
	kw := p.advance()
	name, ok := p.parseName()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok = p.expect(token.Assign, diag.SynUnexpectedToken, "'=' after ask binder"); !ok {
		return ast.NoExprID, false
	}
	value, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewAsk(p.spanFrom(kw.Span), ast.ExprAskData{Name: name, Value: value}), true
}

// parseOpen: `open Ctor value [sep next]`.
func (p *Parser) parseOpen() (ast.ExprID, bool) {
	kw := p.advance()
	ctor, ok := p.parseUpperName()
	if !ok {
		return ast.NoExprID, false
	}
	value, ok := p.parseName()
	if !ok {
		return ast.NoExprID, false
	}
	next, ok := p.parseNext()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewOpen(p.spanFrom(kw.Span), ast.ExprOpenData{Ctor: ctor, Value: value, Next: next}), true
}

// parseReturn: `return value`.
func (p *Parser) parseReturn() (ast.ExprID, bool) {
	kw := p.advance()
	value, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewReturn(p.spanFrom(kw.Span), ast.ExprReturnData{Value: value}), true
}

// parseLet: `let pattern = value [sep next]`.
func (p *Parser) parseLet() (ast.ExprID, bool) {
	kw := p.advance()
	pat, ok := p.parseMatchPattern()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok = p.expect(token.Assign, diag.SynUnexpectedToken, "'=' after let pattern"); !ok {
		return ast.NoExprID, false
	}
	value, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	next, ok := p.parseNext()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewLet(p.spanFrom(kw.Span), ast.ExprLetData{Pattern: pat, Value: value, Next: next}), true
}

// parseNext — продолжение `let`/`open` через один перевод строки.
// Только внутри блока `{ }`: на верхнем уровне перевод строки завершает
// декларацию, а в массиве отделяет элементы. Закрывающая скобка или начало
// следующей ветки match продолжением не считаются.
func (p *Parser) parseNext() (ast.ExprID, bool) {
	if !p.atSep() || len(p.modes) < 2 || p.mode() != modeSig {
		return ast.NoExprID, true
	}
	j := p.skipSepsFrom(p.pos)
	switch p.toks[j].Kind {
	case token.RBrace, token.RParen, token.RBracket, token.EOF:
		return ast.NoExprID, true
	}
	if p.caseDepth == len(p.modes) && p.startsCase(j) {
		return ast.NoExprID, true
	}
	p.pos = j
	return p.parseExpr()
}

// parseSpecialize: `specialize name into #N in value`.
func (p *Parser) parseSpecialize() (ast.ExprID, bool) {
	kw := p.advance()
	var data ast.ExprSpecializeData
	var ok bool
	if data.Name, ok = p.parseName(); !ok {
		return ast.NoExprID, false
	}
	if _, ok = p.expect(token.KwInto, diag.SynUnexpectedToken, "'into'"); !ok {
		return ast.NoExprID, false
	}
	if _, ok = p.expect(token.Hash, diag.SynUnexpectedToken, "'#' before specialization arity"); !ok {
		return ast.NoExprID, false
	}
	num := p.peek()
	if !num.Kind.IsNumber() || !isDecimal(num.Text) {
		p.fail(diag.SynExpectNumber, p.diagSpan(), "expected decimal arity, got "+describe(num))
		return ast.NoExprID, false
	}
	p.advance()
	data.Arity = p.arenas.Strings.Intern(num.Text)
	if _, ok = p.expect(token.KwIn, diag.SynUnexpectedToken, "'in'"); !ok {
		return ast.NoExprID, false
	}
	if data.Value, ok = p.parseExpr(); !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewSpecialize(p.spanFrom(kw.Span), data), true
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
