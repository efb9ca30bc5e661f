package parser

import "kind/internal/token"

// Просмотр вперёд по буферу без сдвига курсора. Все функции принимают
// сырой индекс и никогда не сообщают об ошибках.

// afterName — индекс сразу за именем (и его access-сегментами) на позиции i.
func (p *Parser) afterName(i int) int {
	i++
	for i < len(p.toks) && p.toks[i].IsAccess() {
		i++
	}
	return i
}

// brackets — парные скобки всего буфера, строится один раз на файл,
// чтобы просмотр вперёд не пересканировал вложенные скобки.
type brackets struct {
	close []int  // индекс парной закрывающей скобки, -1 если пары нет
	arrow []bool // внутри скобки на её собственном уровне есть `->`
}

// indexBrackets проходит буфер со стеком открывающих скобок. Закрывающая
// скобка снимает вершину только если она ей парная, чужая игнорируется.
func indexBrackets(toks []token.Token) brackets {
	b := brackets{
		close: make([]int, len(toks)),
		arrow: make([]bool, len(toks)),
	}
	stack := make([]int, 0, 16)
	for i, tok := range toks {
		b.close[i] = -1
		switch tok.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			stack = append(stack, i)
		case token.RParen, token.RBracket, token.RBrace:
			n := len(stack)
			if n > 0 && closerOf(toks[stack[n-1]].Kind) == tok.Kind {
				b.close[stack[n-1]] = i
				stack = stack[:n-1]
			}
		case token.Arrow:
			if n := len(stack); n > 0 {
				b.arrow[stack[n-1]] = true
			}
		}
	}
	return b
}

func closerOf(open token.Kind) token.Kind {
	switch open {
	case token.LParen:
		return token.RParen
	case token.LBracket:
		return token.RBracket
	case token.LBrace:
		return token.RBrace
	}
	return token.Invalid
}

// matchClose — индекс парной закрывающей скобки для открывающей на i, или -1.
func (p *Parser) matchClose(i int) int {
	if i < 0 || i >= len(p.br.close) {
		return -1
	}
	return p.br.close[i]
}

// isNamedBinder: `(` name `:` ... `)` и сразу за скобкой follow.
func (p *Parser) isNamedBinder(i int, follow token.Kind) bool {
	j := p.skipSepsFrom(i + 1)
	if !p.toks[j].IsName() {
		return false
	}
	if p.kindAt(p.skipSepsFrom(p.afterName(j))) != token.Colon {
		return false
	}
	k := p.matchClose(i)
	return k >= 0 && p.kindAt(p.sig(k+1)) == follow
}

// isExplicitLam: `(` name [`:` ...] `)` `=>`.
func (p *Parser) isExplicitLam(i int) bool {
	j := p.skipSepsFrom(i + 1)
	if !p.toks[j].IsName() {
		return false
	}
	switch p.kindAt(p.skipSepsFrom(p.afterName(j))) {
	case token.RParen, token.Colon:
	default:
		return false
	}
	k := p.matchClose(i)
	return k >= 0 && p.kindAt(p.sig(k+1)) == token.FatArrow
}

// isSigma: `[` name `:`.
func (p *Parser) isSigma(i int) bool {
	j := p.skipSepsFrom(i + 1)
	if !p.toks[j].IsName() {
		return false
	}
	return p.kindAt(p.skipSepsFrom(p.afterName(j))) == token.Colon
}

// arrowWithin — внутри скобки, открытой на i, есть `->` на её собственном уровне.
func (p *Parser) arrowWithin(i int) bool {
	return p.matchClose(i) >= 0 && p.br.arrow[i]
}

// startsCase — с позиции i начинается новая ветка match, записанная без
// разделителя сразу за значением предыдущей: `(...) =>`, `name =>`
// или `Ctor atom* =>`.
func (p *Parser) startsCase(i int) bool {
	tok := p.toks[i]
	switch {
	case tok.Kind == token.LParen:
		k := p.matchClose(i)
		return k >= 0 && p.kindAt(k+1) == token.FatArrow
	case tok.Kind == token.DotDot:
		return p.kindAt(i+1) == token.FatArrow
	case !tok.IsName():
		return false
	}

	j := p.afterName(i)
	if p.kindAt(j) == token.FatArrow {
		return true
	}
	if tok.Kind != token.UpperIdent {
		return false
	}
	return p.kindAt(p.atomsEnd(j)) == token.FatArrow
}

// nextAtom — индекс за атомом паттерна ветки на позиции j, или -1.
func (p *Parser) nextAtom(j int) int {
	switch p.kindAt(j) {
	case token.LowerIdent, token.UpperIdent:
		return p.afterName(j)
	case token.DotDot:
		return j + 1
	case token.LParen:
		if k := p.matchClose(j); k >= 0 {
			return k + 1
		}
	}
	return -1
}

// atomsEnd — индекс первого токена после цепочки атомов, начатой на j.
// У всех позиций одной цепочки общий конец, поэтому он запоминается:
// startsCase зовётся перед каждым аргументом вызова.
func (p *Parser) atomsEnd(j int) int {
	if p.atomEnd == nil {
		p.atomEnd = make([]int, len(p.toks)+1)
	}
	p.chain = p.chain[:0]
	end := j
	for {
		if end < len(p.atomEnd) && p.atomEnd[end] != 0 {
			end = p.atomEnd[end] - 1
			break
		}
		next := p.nextAtom(end)
		if next < 0 {
			break
		}
		p.chain = append(p.chain, end)
		end = next
	}
	for _, i := range p.chain {
		p.atomEnd[i] = end + 1
	}
	return end
}
