package parser

import (
	"context"

	"kind/internal/ast"
	"kind/internal/diag"
	"kind/internal/lexer"
	"kind/internal/source"
	"kind/internal/token"
	"kind/internal/trace"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser — состояние парсера на один файл.
// Буфер токенов неизменяем, двигается только курсор pos.
type Parser struct {
	toks   []token.Token
	pos    int
	src    []byte
	arenas *ast.Builder
	file   ast.FileID
	fs     *source.FileSet
	opts   Options

	// modes — стек режимов обработки разделителей, вершина последняя.
	modes []sepMode
	// caseDepth — глубина стека режимов блока веток match, -1 вне веток.
	caseDepth int
	// failed — для текущей декларации ошибка уже выдана.
	failed   bool
	lastSpan source.Span

	// br — парные скобки буфера для просмотра вперёд.
	br brackets
	// atomEnd — запомненные концы цепочек атомов (значение+1, 0 — не считали).
	atomEnd []int
	chain   []int

	origin trace.Origin // куда цепляются decl-спаны
}

// ParseFile — входная точка для разбора одного файла.
// Лексер полностью вычитывается в буфер до начала разбора.
func ParseFile(
	ctx context.Context,
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	toks := lx.All()
	eof := toks[len(toks)-1]
	fileSpan := source.Span{File: eof.Span.File, Start: 0, End: eof.Span.End}

	p := Parser{
		toks:      toks,
		br:        indexBrackets(toks),
		src:       lx.File().Content,
		arenas:    arenas,
		file:      arenas.NewFile(fileSpan),
		fs:        fs,
		opts:      opts,
		modes:     []sepMode{modeSig},
		caseDepth: -1,
		lastSpan:  source.Span{File: fileSpan.File},
		origin:    trace.OriginOf(ctx),
	}

	p.arenas.Files.Get(p.file).HashBang = hashBang(toks[0])
	p.parseDecls()

	return Result{
		File: p.file,
		Bag:  bagOf(opts.Reporter),
	}
}

func bagOf(r diag.Reporter) *diag.Bag {
	switch br := r.(type) {
	case diag.BagReporter:
		return br.Bag
	case *diag.BagReporter:
		return br.Bag
	}
	return nil
}

// hashBang достаёт строку `#!...` из trivia первого токена.
func hashBang(first token.Token) string {
	for _, tr := range first.Leading {
		if tr.Kind == token.TriviaHashBang {
			return tr.Text
		}
	}
	return ""
}

// parseDecls — основной цикл верхнего уровня.
// Неудачная декларация отбрасывается целиком, разбор продолжается со следующей.
func (p *Parser) parseDecls() {
	for {
		p.skipSeps()
		if p.at(token.EOF) {
			return
		}

		start := p.pos
		p.failed = false
		p.modes = p.modes[:1]
		p.caseDepth = -1

		span := p.beginDecl()
		id, ok := p.parseDecl()
		if ok && !p.atDeclEnd() {
			tok := p.peek()
			p.fail(diag.SynUnexpectedToken, tok.Span, "expected line break after declaration, got "+describe(tok))
			ok = false
		}

		if ok {
			p.arenas.PushDecl(p.file, id)
			span.End(p.arenas.Decls.Get(id).Kind.String())
			continue
		}
		span.End("dropped")
		p.recover(start)
	}
}

func (p *Parser) beginDecl() *trace.Span {
	if !p.origin.Emits(trace.ScopeDecl) {
		return nil
	}
	return p.origin.Begin(trace.ScopeDecl, "decl:"+p.peek().Text)
}

// parseDecl выбирает распознаватель по первому токену.
func (p *Parser) parseDecl() (ast.DeclID, bool) {
	tok := p.peek()
	switch {
	case tok.Kind == token.AttrID,
		tok.Kind == token.Hash && p.kindAt(p.pos+1) == token.LBracket:
		return p.parseAttributeDecl()
	case tok.Kind == token.KwRecord:
		return p.parseRecordDecl()
	case tok.Kind == token.KwType:
		return p.parseTypeDecl()
	case tok.Kind == token.KwUse:
		return p.parseUseDecl()
	case tok.IsName():
		if p.looksLikeRule() {
			return p.parseRuleDecl()
		}
		return p.parseValDecl()
	default:
		p.fail(diag.SynAmbiguousDeclaration, tok.Span,
			"expected a declaration (attribute, record, type, use, rule or val), got "+describe(tok))
		return ast.NoDeclID, false
	}
}

// atDeclEnd — после декларации обязателен перевод строки (или конец файла).
func (p *Parser) atDeclEnd() bool {
	k := p.peek().Kind
	return k == token.EOF || k.IsSeparator()
}
