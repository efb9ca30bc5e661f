package parser

import (
	"kind/internal/ast"
	"kind/internal/diag"
	"kind/internal/token"
)

// atParamStart: `(`, `<` или модификатор перед ними.
func (p *Parser) atParamStart() bool {
	i := p.sig(p.pos)
	for n := 0; n < 2 && (p.kindAt(i) == token.Plus || p.kindAt(i) == token.Minus); n++ {
		i++
	}
	k := p.kindAt(i)
	return k == token.LParen || k == token.Lt
}

func (p *Parser) parseParams() ([]ast.Param, bool) {
	var params []ast.Param
	for p.atParamStart() {
		param, ok := p.parseParam()
		if !ok {
			return nil, false
		}
		params = append(params, param)
	}
	return params, true
}

// parseParam: `[+|-|+-|-+] (name [: T])` или `[mod] <name [: T]>`.
func (p *Parser) parseParam() (ast.Param, bool) {
	start := p.peek().Span
	param := ast.Param{Modifier: p.parseModifier()}

	opener := p.peek()
	closer := token.RParen
	switch opener.Kind {
	case token.LParen:
	case token.Lt:
		param.Implicit = true
		closer = token.Gt
	default:
		p.fail(diag.SynExpectParameter, p.diagSpan(), "expected '(' or '<' to start a parameter, got "+describe(opener))
		return param, false
	}
	p.open(modeSkip)

	name, ok := p.parseName()
	if !ok {
		return param, false
	}
	param.Name = name
	if p.eat(token.Colon) {
		if param.Type, ok = p.parseExpr(); !ok {
			return param, false
		}
	}
	if !p.closeWith(closer, opener) {
		return param, false
	}
	param.Span = p.spanFrom(start)
	return param, true
}

// parseModifier: `+-` и `-+` пишутся слитно, это два токена подряд без пробела.
func (p *Parser) parseModifier() ast.ParamModifier {
	first := p.peek()
	if first.Kind != token.Plus && first.Kind != token.Minus {
		return ast.ModNone
	}
	p.advance()
	next := p.toks[p.pos]
	glued := next.Span.Start == first.Span.End
	switch {
	case first.Kind == token.Plus && next.Kind == token.Minus && glued:
		p.advance()
		return ast.ModPlusMinus
	case first.Kind == token.Minus && next.Kind == token.Plus && glued:
		p.advance()
		return ast.ModMinusPlus
	case first.Kind == token.Plus:
		return ast.ModPlus
	}
	return ast.ModMinus
}
