package parser

import (
	"kind/internal/ast"
	"kind/internal/diag"
	"kind/internal/source"
	"kind/internal/token"
)

// Приоритеты, от самого сильного к слабому:
//
//	call        primary primary*
//	annotation  call :: T :: T      (T без собственной аннотации)
//	arrow       param -> expr       (правоассоциативно)
//	lambda      name => expr | (name [: T]) => expr
//	sigma       [name : T] -> expr
//	keyword     match do ask open return let specialize
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseExprWith(true)
}

func (p *Parser) parseExprWith(allowAnn bool) (ast.ExprID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.KwMatch:
		return p.parseMatch()
	case token.KwDo:
		return p.parseDo()
	case token.KwAsk:
		return p.parseAsk()
	case token.KwOpen:
		return p.parseOpen()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwLet:
		return p.parseLet()
	case token.KwSpecialize:
		return p.parseSpecialize()
	case token.LBracket:
		if p.isSigma(p.pos) {
			return p.parseSigma(allowAnn)
		}
	case token.Tilde:
		return p.parseLamType(allowAnn)
	case token.LParen:
		if p.isNamedBinder(p.pos, token.Arrow) {
			return p.parseLamType(allowAnn)
		}
		if p.isExplicitLam(p.pos) {
			return p.parseExplicitLam(allowAnn)
		}
	case token.LowerIdent, token.UpperIdent:
		if p.kindAt(p.sig(p.afterName(p.pos))) == token.FatArrow {
			return p.parseBareLam(allowAnn)
		}
	}

	start := tok.Span
	call, ok := p.parseCall()
	if !ok {
		return ast.NoExprID, false
	}
	return p.parseExprTail(start, call, allowAnn)
}

// parseExprTail: хвост после вызова — `-> R` или цепочка `:: T`.
func (p *Parser) parseExprTail(start source.Span, call ast.ExprID, allowAnn bool) (ast.ExprID, bool) {
	switch {
	case p.at(token.Arrow):
		p.advance()
		ret, ok := p.parseExprWith(allowAnn)
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewLamType(p.spanFrom(start), ast.ExprLamTypeData{Param: call, Ret: ret}), true

	case allowAnn && p.at(token.ColonColon):
		ann := ast.ExprAnnData{Value: call}
		for p.eat(token.ColonColon) {
			typ, ok := p.parseExprWith(false)
			if !ok {
				return ast.NoExprID, false
			}
			ann.Types = append(ann.Types, typ)
		}
		return p.arenas.Exprs.NewAnn(p.spanFrom(start), ann), true
	}
	return call, true
}

// parseLamType: `[~] (name : T) -> R` или `[~] call -> R`.
func (p *Parser) parseLamType(allowAnn bool) (ast.ExprID, bool) {
	start := p.peek().Span
	data := ast.ExprLamTypeData{Erased: p.eat(token.Tilde)}

	if p.at(token.LParen) && p.isNamedBinder(p.pos, token.Arrow) {
		opener := p.open(modeSkip)
		name, ok := p.parseName()
		if !ok {
			return ast.NoExprID, false
		}
		p.advance() // :
		typ, ok := p.parseExpr()
		if !ok || !p.closeWith(token.RParen, opener) {
			return ast.NoExprID, false
		}
		data.Named, data.Name, data.Param = true, name, typ
	} else {
		param, ok := p.parseCall()
		if !ok {
			return ast.NoExprID, false
		}
		data.Param = param
	}

	if _, ok := p.expect(token.Arrow, diag.SynUnexpectedToken, "'->'"); !ok {
		return ast.NoExprID, false
	}
	ret, ok := p.parseExprWith(allowAnn)
	if !ok {
		return ast.NoExprID, false
	}
	data.Ret = ret
	return p.arenas.Exprs.NewLamType(p.spanFrom(start), data), true
}

// parseBareLam: `name => body`.
func (p *Parser) parseBareLam(allowAnn bool) (ast.ExprID, bool) {
	name, ok := p.parseName()
	if !ok {
		return ast.NoExprID, false
	}
	p.advance() // =>
	body, ok := p.parseExprWith(allowAnn)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewLam(p.spanFrom(name.Span), ast.ExprLamData{Name: name, Body: body}), true
}

// parseExplicitLam: `(name [: T]) => body`.
func (p *Parser) parseExplicitLam(allowAnn bool) (ast.ExprID, bool) {
	opener := p.open(modeSkip)
	name, ok := p.parseName()
	if !ok {
		return ast.NoExprID, false
	}
	data := ast.ExprLamData{Name: name, Explicit: true}
	if p.eat(token.Colon) {
		if data.Type, ok = p.parseExpr(); !ok {
			return ast.NoExprID, false
		}
	}
	if !p.closeWith(token.RParen, opener) {
		return ast.NoExprID, false
	}
	p.advance() // =>
	if data.Body, ok = p.parseExprWith(allowAnn); !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewLam(p.spanFrom(opener.Span), data), true
}

// parseSigma: `[name : T] -> R`.
func (p *Parser) parseSigma(allowAnn bool) (ast.ExprID, bool) {
	opener := p.open(modeSkip)
	name, ok := p.parseName()
	if !ok {
		return ast.NoExprID, false
	}
	p.advance() // :
	typ, ok := p.parseExpr()
	if !ok || !p.closeWith(token.RBracket, opener) {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.Arrow, diag.SynUnexpectedToken, "'->' after sigma binder"); !ok {
		return ast.NoExprID, false
	}
	ret, ok := p.parseExprWith(allowAnn)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewSigma(p.spanFrom(opener.Span), ast.ExprSigmaData{Name: name, Type: typ, Ret: ret}), true
}

// parseCall: callee и аргументы-примитивы до первого, который не разбирается.
// В ветке match аргумент, с которого начинается следующая ветка, не берём.
func (p *Parser) parseCall() (ast.ExprID, bool) {
	start := p.peek().Span
	callee, ok := p.parsePrimary()
	if !ok {
		return ast.NoExprID, false
	}

	var args []ast.ExprID
	for p.atPrimaryStart() {
		if p.caseDepth == len(p.modes) && p.startsCase(p.pos) {
			break
		}
		arg, ok := p.parsePrimary()
		if !ok {
			return ast.NoExprID, false
		}
		args = append(args, arg)
	}
	if len(args) == 0 {
		return callee, true
	}
	return p.arenas.Exprs.NewCall(p.spanFrom(start), ast.ExprCallData{Callee: callee, Args: args}), true
}

func (p *Parser) atPrimaryStart() bool {
	tok := p.peek()
	switch tok.Kind {
	case token.LowerIdent, token.UpperIdent, token.LParen, token.LBracket, token.Question, token.KwIf:
		return true
	}
	return tok.IsLiteral()
}

// parsePrimary: литерал, имя, `( expr )`, `( op primary* )`, `[ ... ]`, `? [name]`, `if`.
func (p *Parser) parsePrimary() (ast.ExprID, bool) {
	tok := p.peek()
	switch {
	case tok.IsLiteral():
		lit := p.parseLitData()
		return p.arenas.Exprs.NewLit(tok.Span, lit), true
	case tok.IsName():
		name, _ := p.parseName()
		return p.arenas.Exprs.NewIdent(name.Span, name), true
	case tok.Kind == token.LParen:
		return p.parseParen()
	case tok.Kind == token.LBracket:
		return p.parseArray()
	case tok.Kind == token.Question:
		return p.parseHelp()
	case tok.Kind == token.KwIf:
		return p.parseIf()
	}
	p.fail(diag.SynExpectExpression, p.diagSpan(), "expected expression, got "+describe(tok))
	return ast.NoExprID, false
}

func (p *Parser) parseLitData() ast.ExprLitData {
	tok := p.advance()
	var kind ast.LitKind
	switch tok.Kind {
	case token.CharLit:
		kind = ast.LitChar
	case token.StringLit:
		kind = ast.LitString
	case token.U60Lit:
		kind = ast.LitU60
	case token.U120Lit:
		kind = ast.LitU120
	case token.NLit:
		kind = ast.LitN
	default:
		kind = ast.LitF60
	}
	return ast.ExprLitData{Kind: kind, Raw: p.arenas.Strings.Intern(tok.Text)}
}

// parseParen: группа `( expr )` или операторная форма `( op arg* )`.
// `(~ T -> U)` — это группа со стёртым типом функции, а не оператор `~`.
func (p *Parser) parseParen() (ast.ExprID, bool) {
	idx := p.pos
	opener := p.open(modeSkip)
	tok := p.peek()

	if tok.Kind.IsSymbolOp() && (tok.Kind != token.Tilde || !p.arrowWithin(idx)) {
		p.advance()
		data := ast.ExprOpData{Op: p.arenas.Strings.Intern(tok.Text)}
		for p.atOpArgStart() {
			arg, ok := p.parseOpArg()
			if !ok {
				return ast.NoExprID, false
			}
			data.Args = append(data.Args, arg)
		}
		if !p.closeWith(token.RParen, opener) {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewOp(p.spanFrom(opener.Span), data), true
	}

	inner, ok := p.parseExpr()
	if !ok || !p.closeWith(token.RParen, opener) {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewGroup(p.spanFrom(opener.Span), ast.ExprGroupData{Inner: inner}), true
}

func (p *Parser) atOpArgStart() bool {
	if p.atPrimaryStart() {
		return true
	}
	switch p.peek().Kind {
	case token.KwMatch, token.KwDo, token.KwAsk, token.KwOpen, token.KwReturn,
		token.KwLet, token.KwSpecialize, token.Tilde:
		return true
	}
	return false
}

// parseOpArg — один аргумент операторной формы. Соседние примитивы не
// склеиваются в вызов: `(+ a b)` — два аргумента. К примитиву можно
// приписать `:: T` или `-> R`; лямбда, биндер и ключевые формы забирают
// всё до закрывающей скобки.
func (p *Parser) parseOpArg() (ast.ExprID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.KwMatch, token.KwDo, token.KwAsk, token.KwOpen, token.KwReturn,
		token.KwLet, token.KwSpecialize, token.Tilde:
		return p.parseExpr()
	case token.LBracket:
		if p.isSigma(p.pos) {
			return p.parseSigma(true)
		}
	case token.LParen:
		if p.isNamedBinder(p.pos, token.Arrow) {
			return p.parseLamType(true)
		}
		if p.isExplicitLam(p.pos) {
			return p.parseExplicitLam(true)
		}
	case token.LowerIdent, token.UpperIdent:
		if p.kindAt(p.sig(p.afterName(p.pos))) == token.FatArrow {
			return p.parseBareLam(true)
		}
	}

	arg, ok := p.parsePrimary()
	if !ok {
		return ast.NoExprID, false
	}
	return p.parseExprTail(tok.Span, arg, true)
}

// parseArray: `[ e (, | sep) e ... ]`, висячий разделитель допустим.
func (p *Parser) parseArray() (ast.ExprID, bool) {
	opener := p.open(modeArray)
	p.skipSeps()
	var data ast.ExprArrayData
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		elem, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		data.Elems = append(data.Elems, elem)
		comma := p.eat(token.Comma)
		if !comma && !p.atSep() {
			break
		}
		p.skipSeps()
	}
	if !p.closeWith(token.RBracket, opener) {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewArray(p.spanFrom(opener.Span), data), true
}

// parseHelp: `?` и необязательное имя.
func (p *Parser) parseHelp() (ast.ExprID, bool) {
	q := p.advance()
	var data ast.ExprHelpData
	if p.peek().IsName() {
		data.HasName = true
		data.Name, _ = p.parseName()
	}
	return p.arenas.Exprs.NewHelp(p.spanFrom(q.Span), data), true
}

// parseIf: `if cond { then } else { else }`.
func (p *Parser) parseIf() (ast.ExprID, bool) {
	kw := p.advance()
	var data ast.ExprIfData
	var ok bool
	if data.Cond, ok = p.parseExpr(); !ok {
		return ast.NoExprID, false
	}
	if data.Then, ok = p.parseBraced("'{' after if condition"); !ok {
		return ast.NoExprID, false
	}
	if _, ok = p.expect(token.KwElse, diag.SynUnexpectedToken, "'else'"); !ok {
		return ast.NoExprID, false
	}
	if data.Else, ok = p.parseBraced("'{' after else"); !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewIf(p.spanFrom(kw.Span), data), true
}

// parseBraced: `{ expr }` с необязательными переводами строк вокруг.
func (p *Parser) parseBraced(what string) (ast.ExprID, bool) {
	if !p.at(token.LBrace) {
		p.expect(token.LBrace, diag.SynUnexpectedToken, what)
		return ast.NoExprID, false
	}
	opener := p.open(modeSig)
	p.skipSeps()
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	p.skipSeps()
	if !p.closeWith(token.RBrace, opener) {
		return ast.NoExprID, false
	}
	return expr, true
}
