package ast

import "kind/internal/source"

type DeclKind uint8

const (
	DeclAttribute DeclKind = iota
	DeclRecord
	DeclType
	DeclUse
	DeclRule
	DeclVal
)

func (k DeclKind) String() string {
	switch k {
	case DeclAttribute:
		return "Attribute"
	case DeclRecord:
		return "RecordDeclaration"
	case DeclType:
		return "TypeDeclaration"
	case DeclUse:
		return "UseDeclaration"
	case DeclRule:
		return "RuleDeclaration"
	case DeclVal:
		return "ValDeclaration"
	}
	return "Decl(?)"
}

type Decl struct {
	Kind    DeclKind
	Span    source.Span
	Payload PayloadID
}

// FieldSig is a record member `name : T`.
type FieldSig struct {
	Span source.Span
	Name Name
	Type ExprID
}

// MemberSig is a type member `#attr* name params [: T]`. Type is NoExprID when omitted.
type MemberSig struct {
	Span   source.Span
	Attrs  []Attr
	Name   Name
	Params []Param
	Type   ExprID
}

// RecordDecl covers both `record` and `type` declarations; Fields is used by
// records and Members by types. HasIndices is set when `~` is present, even
// with an empty index list.
type RecordDecl struct {
	Name       Name
	Params     []Param
	HasIndices bool
	Indices    []Param
	Fields     []FieldSig
	Members    []MemberSig
}

type UseDecl struct {
	Path  Name
	Alias Name
}

type RuleDecl struct {
	Name     Name
	Patterns []PatID
	Value    ExprID
}

// ValDecl is the typed (Typed, Type set) or untyped form. Body is nil when
// no `{ ... }` block was written.
type ValDecl struct {
	Name    Name
	Params  []Param
	Typed   bool
	Type    ExprID
	HasBody bool
	Body    []ExprID
}

type Decls struct {
	Arena   *Arena[Decl]
	Attrs   *Arena[Attr]
	Records *Arena[RecordDecl]
	Uses    *Arena[UseDecl]
	Rules   *Arena[RuleDecl]
	Vals    *Arena[ValDecl]
}

func NewDecls(capHint uint) *Decls {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Decls{
		Arena:   NewArena[Decl](capHint),
		Attrs:   NewArena[Attr](capHint),
		Records: NewArena[RecordDecl](capHint),
		Uses:    NewArena[UseDecl](capHint),
		Rules:   NewArena[RuleDecl](capHint),
		Vals:    NewArena[ValDecl](capHint),
	}
}

func (d *Decls) new(kind DeclKind, span source.Span, payload uint32) DeclID {
	return DeclID(d.Arena.Allocate(Decl{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (d *Decls) Get(id DeclID) *Decl {
	return d.Arena.Get(uint32(id))
}

func (d *Decls) payload(id DeclID, kinds ...DeclKind) (PayloadID, bool) {
	decl := d.Get(id)
	if decl == nil {
		return NoPayloadID, false
	}
	for _, k := range kinds {
		if decl.Kind == k {
			return decl.Payload, true
		}
	}
	return NoPayloadID, false
}

func (d *Decls) NewAttribute(span source.Span, attr Attr) DeclID {
	return d.new(DeclAttribute, span, d.Attrs.Allocate(attr))
}

func (d *Decls) Attribute(id DeclID) (*Attr, bool) {
	p, ok := d.payload(id, DeclAttribute)
	if !ok {
		return nil, false
	}
	return d.Attrs.Get(uint32(p)), true
}

// NewRecord allocates a record (kind DeclRecord) or type (kind DeclType) declaration.
func (d *Decls) NewRecord(kind DeclKind, span source.Span, rec RecordDecl) DeclID {
	return d.new(kind, span, d.Records.Allocate(rec))
}

// Record returns the payload of a record or type declaration.
func (d *Decls) Record(id DeclID) (*RecordDecl, bool) {
	p, ok := d.payload(id, DeclRecord, DeclType)
	if !ok {
		return nil, false
	}
	return d.Records.Get(uint32(p)), true
}

func (d *Decls) NewUse(span source.Span, path, alias Name) DeclID {
	return d.new(DeclUse, span, d.Uses.Allocate(UseDecl{Path: path, Alias: alias}))
}

func (d *Decls) Use(id DeclID) (*UseDecl, bool) {
	p, ok := d.payload(id, DeclUse)
	if !ok {
		return nil, false
	}
	return d.Uses.Get(uint32(p)), true
}

func (d *Decls) NewRule(span source.Span, rule RuleDecl) DeclID {
	return d.new(DeclRule, span, d.Rules.Allocate(rule))
}

func (d *Decls) Rule(id DeclID) (*RuleDecl, bool) {
	p, ok := d.payload(id, DeclRule)
	if !ok {
		return nil, false
	}
	return d.Rules.Get(uint32(p)), true
}

func (d *Decls) NewVal(span source.Span, val ValDecl) DeclID {
	return d.new(DeclVal, span, d.Vals.Allocate(val))
}

func (d *Decls) Val(id DeclID) (*ValDecl, bool) {
	p, ok := d.payload(id, DeclVal)
	if !ok {
		return nil, false
	}
	return d.Vals.Get(uint32(p)), true
}
