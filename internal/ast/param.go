package ast

import "kind/internal/source"

// ParamModifier is the variance/erasure marker in front of a parameter.
type ParamModifier uint8

const (
	ModNone ParamModifier = iota
	ModPlus
	ModMinus
	ModPlusMinus
	ModMinusPlus
)

func (m ParamModifier) String() string {
	switch m {
	case ModPlus:
		return "+"
	case ModMinus:
		return "-"
	case ModPlusMinus:
		return "+-"
	case ModMinusPlus:
		return "-+"
	default:
		return ""
	}
}

// Param is `[mod] (name [: T])` or `[mod] <name [: T]>`.
// Type is NoExprID when omitted.
type Param struct {
	Span     source.Span
	Modifier ParamModifier
	Implicit bool
	Name     Name
	Type     ExprID
}
