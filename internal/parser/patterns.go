package parser

import (
	"kind/internal/ast"
	"kind/internal/diag"
	"kind/internal/token"
)

// parseRulePattern — паттерн слева от `=` в rule:
// идентификатор, конструктор, литерал или `( Ctor pattern* )`.
func (p *Parser) parseRulePattern() (ast.PatID, bool) {
	tok := p.peek()
	switch {
	case tok.Kind == token.LowerIdent:
		name, _ := p.parseName()
		return p.arenas.Pats.NewIdent(name.Span, name), true

	case tok.Kind == token.UpperIdent:
		name, _ := p.parseName()
		return p.arenas.Pats.NewCtor(name.Span, false, ast.PatCtorData{Name: name}), true

	case tok.IsLiteral():
		lit := p.parseLitData()
		return p.arenas.Pats.NewLit(tok.Span, lit), true

	case tok.Kind == token.LParen:
		opener := p.open(modeSkip)
		name, ok := p.parseUpperName()
		if !ok {
			return ast.NoPatID, false
		}
		data := ast.PatCtorData{Name: name}
		for !p.at(token.RParen) && !p.at(token.EOF) && !p.atCloser() {
			arg, ok := p.parseRulePattern()
			if !ok {
				return ast.NoPatID, false
			}
			data.Args = append(data.Args, arg)
		}
		if !p.closeWith(token.RParen, opener) {
			return ast.NoPatID, false
		}
		return p.arenas.Pats.NewCtor(p.spanFrom(opener.Span), false, data), true
	}

	p.fail(diag.SynExpectPattern, p.diagSpan(), "expected pattern, got "+describe(tok))
	return ast.NoPatID, false
}

// parseMatchPattern — паттерн ветки match и let:
// `..`, `(alias @ field)`, `( Name mpat* )` или `Name atom*`.
func (p *Parser) parseMatchPattern() (ast.PatID, bool) {
	tok := p.peek()
	switch {
	case tok.Kind == token.DotDot:
		p.advance()
		return p.arenas.Pats.NewRest(tok.Span), true

	case tok.Kind == token.LParen:
		if p.isRename(p.pos) {
			return p.parseRename()
		}
		opener := p.open(modeSkip)
		name, ok := p.parseName()
		if !ok {
			return ast.NoPatID, false
		}
		data := ast.PatCtorData{Name: name}
		for p.atMatchAtom() {
			arg, ok := p.parseMatchAtom()
			if !ok {
				return ast.NoPatID, false
			}
			data.Args = append(data.Args, arg)
		}
		if !p.closeWith(token.RParen, opener) {
			return ast.NoPatID, false
		}
		return p.arenas.Pats.NewCtor(p.spanFrom(opener.Span), true, data), true

	case tok.IsName():
		name, _ := p.parseName()
		if !name.Upper && !p.atMatchAtom() {
			return p.arenas.Pats.NewIdent(name.Span, name), true
		}
		data := ast.PatCtorData{Name: name}
		for p.atMatchAtom() {
			arg, ok := p.parseMatchAtom()
			if !ok {
				return ast.NoPatID, false
			}
			data.Args = append(data.Args, arg)
		}
		return p.arenas.Pats.NewCtor(p.spanFrom(name.Span), true, data), true
	}

	p.fail(diag.SynExpectPattern, p.diagSpan(), "expected pattern, got "+describe(tok))
	return ast.NoPatID, false
}

func (p *Parser) atMatchAtom() bool {
	switch p.peek().Kind {
	case token.DotDot, token.LParen, token.LowerIdent, token.UpperIdent:
		return true
	}
	return false
}

// parseMatchAtom — вложенный паттерн: голое имя без аргументов,
// `..` или скобочная форма.
func (p *Parser) parseMatchAtom() (ast.PatID, bool) {
	tok := p.peek()
	if !tok.IsName() {
		return p.parseMatchPattern()
	}
	name, _ := p.parseName()
	if name.Upper {
		return p.arenas.Pats.NewCtor(name.Span, true, ast.PatCtorData{Name: name}), true
	}
	return p.arenas.Pats.NewIdent(name.Span, name), true
}

// isRename: `(` name `@` начиная с индекса i.
func (p *Parser) isRename(i int) bool {
	i = p.skipSepsFrom(i + 1)
	if !p.toks[i].IsName() {
		return false
	}
	i++
	for p.toks[i].IsAccess() {
		i++
	}
	return p.kindAt(p.skipSepsFrom(i)) == token.At
}

// parseRename: `(alias @ field)`.
func (p *Parser) parseRename() (ast.PatID, bool) {
	opener := p.open(modeSkip)
	alias, ok := p.parseName()
	if !ok {
		return ast.NoPatID, false
	}
	p.advance() // @
	field, ok := p.parseName()
	if !ok {
		return ast.NoPatID, false
	}
	if !p.closeWith(token.RParen, opener) {
		return ast.NoPatID, false
	}
	return p.arenas.Pats.NewRename(p.spanFrom(opener.Span), alias, field), true
}

// skipSepsFrom пропускает разделители с сырого индекса i.
func (p *Parser) skipSepsFrom(i int) int {
	for i < len(p.toks)-1 && p.toks[i].Kind.IsSeparator() {
		i++
	}
	return i
}

// atCloser — текущий токен закрывает какую-либо скобку.
func (p *Parser) atCloser() bool {
	switch p.peek().Kind {
	case token.RParen, token.RBracket, token.RBrace:
		return true
	}
	return false
}
