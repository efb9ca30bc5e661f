package parser

import (
	"strings"

	"kind/internal/ast"
	"kind/internal/diag"
	"kind/internal/source"
	"kind/internal/token"
)

// looksLikeRule — классификатор rule/val. От токена после имени идём на
// нулевой глубине скобок: `=` раньше `:`, `{`, разделителя или EOF — это rule.
// Содержимое `( )` и `[ ]` перепрыгивается целиком по индексу пар.
func (p *Parser) looksLikeRule() bool {
	for i := p.pos + 1; i < len(p.toks); i++ {
		switch k := p.toks[i].Kind; {
		case k == token.LParen, k == token.LBracket:
			c := p.matchClose(i)
			if c < 0 {
				return false
			}
			i = c
		case k == token.Assign:
			return true
		case k == token.Colon, k == token.LBrace, k == token.RBrace,
			k == token.EOF, k.IsSeparator():
			return false
		}
	}
	return false
}

// parseName читает идентификатор вместе с приклеенными access-сегментами.
func (p *Parser) parseName() (ast.Name, bool) {
	tok := p.peek()
	if !tok.IsName() {
		p.fail(diag.SynExpectIdentifier, p.diagSpan(), "expected identifier, got "+describe(tok))
		return ast.Name{}, false
	}
	p.advance()

	strs := p.arenas.Strings
	name := ast.Name{
		Span:      tok.Span,
		Synthetic: tok.Synthetic,
		Upper:     tok.Kind == token.UpperIdent,
		Base:      strs.Intern(strings.TrimPrefix(tok.Text, "%")),
	}
	// сегменты всегда приклеены к имени, разделителей между ними не бывает
	for p.toks[p.pos].IsAccess() {
		seg := p.toks[p.pos]
		p.advance()
		kind := ast.AccessDot
		if seg.Kind == token.SlashAccess {
			kind = ast.AccessSlash
		}
		name.Access = append(name.Access, ast.AccessSeg{Kind: kind, Text: strs.Intern(seg.Text), Span: seg.Span})
		name.Span = name.Span.Cover(seg.Span)
	}
	return name, true
}

// parseUpperName требует конструкторный идентификатор.
func (p *Parser) parseUpperName() (ast.Name, bool) {
	tok := p.peek()
	if tok.Kind != token.UpperIdent {
		p.fail(diag.SynExpectConstructor, p.diagSpan(), "expected constructor name, got "+describe(tok))
		return ast.Name{}, false
	}
	return p.parseName()
}

// parseAttributeDecl: `#name`, `#name = Value`, `#name[a, b]`, `#[a, b]`.
func (p *Parser) parseAttributeDecl() (ast.DeclID, bool) {
	attr, ok := p.parseAttr()
	if !ok {
		return ast.NoDeclID, false
	}
	return p.arenas.Decls.NewAttribute(attr.Span, attr), true
}

func (p *Parser) parseAttr() (ast.Attr, bool) {
	tok := p.advance()
	attr := ast.Attr{Span: tok.Span}

	if tok.Kind == token.AttrID {
		attr.Name = p.arenas.Strings.Intern(strings.TrimPrefix(tok.Text, "#"))
		switch {
		case p.at(token.Assign):
			p.advance()
			value, ok := p.parseName()
			if !ok {
				return attr, false
			}
			attr.Form = ast.AttrAssign
			attr.Value = value
			attr.Span = p.spanFrom(tok.Span)
			return attr, true
		case !p.at(token.LBracket):
			return attr, true
		}
	}

	args, ok := p.parseAttrArgs()
	if !ok {
		return attr, false
	}
	attr.Form = ast.AttrApply
	attr.Args = args
	attr.Span = p.spanFrom(tok.Span)
	return attr, true
}

// parseAttrArgs: `[ name, name, ... ]`, висячая запятая допустима.
func (p *Parser) parseAttrArgs() ([]ast.Name, bool) {
	opener := p.open(modeSkip)
	var args []ast.Name
	for !p.at(token.RBracket) {
		name, ok := p.parseName()
		if !ok {
			return nil, false
		}
		args = append(args, name)
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.closeWith(token.RBracket, opener) {
		return nil, false
	}
	return args, true
}

// parseRecordDecl: `record Name params [~ indices] { (name : T SepStrict)* }`.
func (p *Parser) parseRecordDecl() (ast.DeclID, bool) {
	kw := p.advance()
	rec, ok := p.parseRecordHeader()
	if !ok {
		return ast.NoDeclID, false
	}

	opener, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "'{' to open the record body")
	if !ok {
		return ast.NoDeclID, false
	}
	p.pushMode(modeSig)
	p.skipSeps()
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		field, ok := p.parseFieldSig()
		if !ok || !p.expectStrictSep() {
			return ast.NoDeclID, false
		}
		rec.Fields = append(rec.Fields, field)
	}
	if !p.closeWith(token.RBrace, opener) {
		return ast.NoDeclID, false
	}
	return p.arenas.Decls.NewRecord(ast.DeclRecord, p.spanFrom(kw.Span), rec), true
}

func (p *Parser) parseRecordHeader() (ast.RecordDecl, bool) {
	var rec ast.RecordDecl
	name, ok := p.parseName()
	if !ok {
		return rec, false
	}
	rec.Name = name
	if rec.Params, ok = p.parseParams(); !ok {
		return rec, false
	}
	if p.eat(token.Tilde) {
		rec.HasIndices = true
		if rec.Indices, ok = p.parseParams(); !ok {
			return rec, false
		}
	}
	return rec, true
}

func (p *Parser) parseFieldSig() (ast.FieldSig, bool) {
	name, ok := p.parseName()
	if !ok {
		return ast.FieldSig{}, false
	}
	if _, ok = p.expect(token.Colon, diag.SynUnexpectedToken, "':' after field name"); !ok {
		return ast.FieldSig{}, false
	}
	typ, ok := p.parseExpr()
	if !ok {
		return ast.FieldSig{}, false
	}
	return ast.FieldSig{Span: p.spanFrom(name.Span), Name: name, Type: typ}, true
}

// expectStrictSep — после сигнатуры члена обязателен перевод строки.
func (p *Parser) expectStrictSep() bool {
	if p.at(token.SepStrict) {
		p.skipSeps()
		return true
	}
	at := source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	p.failWith(diag.SynMissingSeparator, p.diagSpan(),
		"expected line break after member signature, got "+describe(p.peek()),
		func(b *diag.ReportBuilder) {
			b.WithFix("insert line break", diag.FixEdit{Span: at, NewText: "\n"})
		})
	return false
}

// parseTypeDecl: `type Name params [~ indices] { member* }`.
func (p *Parser) parseTypeDecl() (ast.DeclID, bool) {
	kw := p.advance()
	rec, ok := p.parseRecordHeader()
	if !ok {
		return ast.NoDeclID, false
	}

	opener, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "'{' to open the type body")
	if !ok {
		return ast.NoDeclID, false
	}
	p.pushMode(modeSig)
	p.skipSeps()
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		member, ok := p.parseMemberSig()
		if !ok || !p.expectStrictSep() {
			return ast.NoDeclID, false
		}
		rec.Members = append(rec.Members, member)
	}
	if !p.closeWith(token.RBrace, opener) {
		return ast.NoDeclID, false
	}
	return p.arenas.Decls.NewRecord(ast.DeclType, p.spanFrom(kw.Span), rec), true
}

// parseMemberSig: `#attr* name params [: T]`; атрибут может стоять на своей строке.
func (p *Parser) parseMemberSig() (ast.MemberSig, bool) {
	var m ast.MemberSig
	start := p.peek().Span
	for p.at(token.AttrID) || (p.at(token.Hash) && p.kindAt(p.pos+1) == token.LBracket) {
		attr, ok := p.parseAttr()
		if !ok {
			return m, false
		}
		m.Attrs = append(m.Attrs, attr)
		p.skipSeps()
	}

	name, ok := p.parseName()
	if !ok {
		return m, false
	}
	m.Name = name
	if m.Params, ok = p.parseParams(); !ok {
		return m, false
	}
	if p.eat(token.Colon) {
		if m.Type, ok = p.parseExpr(); !ok {
			return m, false
		}
	}
	m.Span = p.spanFrom(start)
	return m, true
}

// parseUseDecl: `use Path as Alias`; `as` — контекстное слово.
func (p *Parser) parseUseDecl() (ast.DeclID, bool) {
	kw := p.advance()
	path, ok := p.parseName()
	if !ok {
		return ast.NoDeclID, false
	}
	tok := p.peek()
	if tok.Kind != token.LowerIdent || tok.Text != "as" {
		p.fail(diag.SynUnexpectedToken, p.diagSpan(), "expected 'as' after use path, got "+describe(tok))
		return ast.NoDeclID, false
	}
	p.advance()
	alias, ok := p.parseName()
	if !ok {
		return ast.NoDeclID, false
	}
	return p.arenas.Decls.NewUse(p.spanFrom(kw.Span), path, alias), true
}

// parseRuleDecl: `name pattern* = expr`.
func (p *Parser) parseRuleDecl() (ast.DeclID, bool) {
	name, ok := p.parseName()
	if !ok {
		return ast.NoDeclID, false
	}
	rule := ast.RuleDecl{Name: name}
	for !p.at(token.Assign) {
		pat, ok := p.parseRulePattern()
		if !ok {
			return ast.NoDeclID, false
		}
		rule.Patterns = append(rule.Patterns, pat)
	}
	p.advance()
	if rule.Value, ok = p.parseExpr(); !ok {
		return ast.NoDeclID, false
	}
	return p.arenas.Decls.NewRule(p.spanFrom(name.Span), rule), true
}

// parseValDecl: `name [sep] (param [sep])* [: T] [sep] [{ stmts }]`.
func (p *Parser) parseValDecl() (ast.DeclID, bool) {
	name, ok := p.parseName()
	if !ok {
		return ast.NoDeclID, false
	}
	val := ast.ValDecl{Name: name}
	continues := []token.Kind{token.LParen, token.Lt, token.Plus, token.Minus, token.Colon, token.LBrace}

	p.skipSepBefore(continues...)
	for p.atParamStart() {
		param, ok := p.parseParam()
		if !ok {
			return ast.NoDeclID, false
		}
		val.Params = append(val.Params, param)
		p.skipSepBefore(continues...)
	}

	if p.eat(token.Colon) {
		val.Typed = true
		if val.Type, ok = p.parseExpr(); !ok {
			return ast.NoDeclID, false
		}
		p.skipSepBefore(token.LBrace)
	}

	if p.at(token.LBrace) {
		val.HasBody = true
		if val.Body, ok = p.parseBlock(); !ok {
			return ast.NoDeclID, false
		}
	}
	return p.arenas.Decls.NewVal(p.spanFrom(name.Span), val), true
}

// parseBlock: `{ expr (sep expr)* [sep] }`; пустой блок допустим.
func (p *Parser) parseBlock() ([]ast.ExprID, bool) {
	opener := p.open(modeSig)
	p.skipSeps()
	stmts := make([]ast.ExprID, 0, 2)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		stmt, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		stmts = append(stmts, stmt)
		if !p.atSep() {
			break
		}
		p.skipSeps()
	}
	if !p.closeWith(token.RBrace, opener) {
		return nil, false
	}
	return stmts, true
}
