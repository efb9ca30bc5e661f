package ast

import "kind/internal/source"

type AttrForm uint8

const (
	// AttrBare is `#name`.
	AttrBare AttrForm = iota
	// AttrAssign is `#name = Value`.
	AttrAssign
	// AttrApply is `#name[a, b]` or the anonymous `#[a, b]`.
	AttrApply
)

func (f AttrForm) String() string {
	switch f {
	case AttrAssign:
		return "assign"
	case AttrApply:
		return "apply"
	default:
		return "bare"
	}
}

// Attr описывает атрибут. Name хранится без '#'; у `#[...]` имя пустое.
type Attr struct {
	Span  source.Span
	Name  source.StringID
	Form  AttrForm
	Value Name
	Args  []Name
}
