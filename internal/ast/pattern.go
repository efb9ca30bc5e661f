package ast

import "kind/internal/source"

type PatKind uint8

const (
	// PatIdent binds a lower-case name.
	PatIdent PatKind = iota
	// PatCtor is a rule-equation constructor pattern: `Zero` or `(Succ p)`.
	PatCtor
	// PatLit is a literal in a rule equation.
	PatLit
	// PatCtorMatch is a match-branch pattern `Name atom*` or `(Name mpat*)`.
	PatCtorMatch
	// PatRename is `(alias @ field)`.
	PatRename
	// PatRest is `..`.
	PatRest
)

func (k PatKind) String() string {
	switch k {
	case PatIdent:
		return "IdentifierPattern"
	case PatCtor:
		return "ConstructorPattern"
	case PatLit:
		return "LiteralPattern"
	case PatCtorMatch:
		return "ConstructorMatchPattern"
	case PatRename:
		return "RenamePattern"
	case PatRest:
		return "RestPattern"
	}
	return "Pattern(?)"
}

type Pat struct {
	Kind    PatKind
	Span    source.Span
	Payload PayloadID
}

// PatCtorData is shared by PatCtor and PatCtorMatch.
type PatCtorData struct {
	Name Name
	Args []PatID
}

type PatRenameData struct {
	Alias Name
	Field Name
}

type Pats struct {
	Arena   *Arena[Pat]
	Idents  *Arena[Name]
	Ctors   *Arena[PatCtorData]
	Lits    *Arena[ExprLitData]
	Renames *Arena[PatRenameData]
}

func NewPats(capHint uint) *Pats {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Pats{
		Arena:   NewArena[Pat](capHint),
		Idents:  NewArena[Name](capHint),
		Ctors:   NewArena[PatCtorData](capHint),
		Lits:    NewArena[ExprLitData](capHint),
		Renames: NewArena[PatRenameData](capHint),
	}
}

func (p *Pats) new(kind PatKind, span source.Span, payload uint32) PatID {
	return PatID(p.Arena.Allocate(Pat{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (p *Pats) Get(id PatID) *Pat {
	return p.Arena.Get(uint32(id))
}

func (p *Pats) NewIdent(span source.Span, name Name) PatID {
	return p.new(PatIdent, span, p.Idents.Allocate(name))
}

func (p *Pats) Ident(id PatID) (*Name, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatIdent {
		return nil, false
	}
	return p.Idents.Get(uint32(pat.Payload)), true
}

// NewCtor allocates a PatCtor (match=false) or PatCtorMatch (match=true).
func (p *Pats) NewCtor(span source.Span, match bool, data PatCtorData) PatID {
	kind := PatCtor
	if match {
		kind = PatCtorMatch
	}
	return p.new(kind, span, p.Ctors.Allocate(data))
}

// Ctor returns the payload of either constructor pattern kind.
func (p *Pats) Ctor(id PatID) (*PatCtorData, bool) {
	pat := p.Get(id)
	if pat == nil || (pat.Kind != PatCtor && pat.Kind != PatCtorMatch) {
		return nil, false
	}
	return p.Ctors.Get(uint32(pat.Payload)), true
}

func (p *Pats) NewLit(span source.Span, lit ExprLitData) PatID {
	return p.new(PatLit, span, p.Lits.Allocate(lit))
}

func (p *Pats) Lit(id PatID) (*ExprLitData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatLit {
		return nil, false
	}
	return p.Lits.Get(uint32(pat.Payload)), true
}

func (p *Pats) NewRename(span source.Span, alias, field Name) PatID {
	return p.new(PatRename, span, p.Renames.Allocate(PatRenameData{Alias: alias, Field: field}))
}

func (p *Pats) Rename(id PatID) (*PatRenameData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatRename {
		return nil, false
	}
	return p.Renames.Get(uint32(pat.Payload)), true
}

func (p *Pats) NewRest(span source.Span) PatID {
	return p.new(PatRest, span, 0)
}
