package ast

import (
	"kind/internal/source"
)

type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprLit
	ExprCall
	ExprGroup
	ExprAnn
	ExprLamType
	ExprLam
	ExprSigma
	ExprMatch
	ExprDo
	ExprAsk
	ExprOpen
	ExprReturn
	ExprLet
	ExprSpecialize
	ExprOp
	ExprArray
	ExprHelp
	ExprIf
)

var exprKindNames = [...]string{
	ExprIdent:      "Ident",
	ExprLit:        "Lit",
	ExprCall:       "Call",
	ExprGroup:      "Group",
	ExprAnn:        "AnnExpr",
	ExprLamType:    "LamType",
	ExprLam:        "LamExpr",
	ExprSigma:      "SigmaType",
	ExprMatch:      "MatchExpr",
	ExprDo:         "DoExpr",
	ExprAsk:        "AskExpr",
	ExprOpen:       "OpenExpr",
	ExprReturn:     "ReturnExpr",
	ExprLet:        "LetExpr",
	ExprSpecialize: "SpecializeExpr",
	ExprOp:         "Op",
	ExprArray:      "Array",
	ExprHelp:       "Help",
	ExprIf:         "IfExpr",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "Expr(?)"
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type LitKind uint8

const (
	LitChar LitKind = iota
	LitString
	LitF60
	LitU60
	LitU120
	LitN
)

func (k LitKind) String() string {
	switch k {
	case LitChar:
		return "char"
	case LitString:
		return "string"
	case LitF60:
		return "f60"
	case LitU60:
		return "u60"
	case LitU120:
		return "u120"
	case LitN:
		return "n"
	}
	return "lit(?)"
}

// ExprLitData keeps the literal exactly as written (quotes and suffix included).
type ExprLitData struct {
	Kind LitKind
	Raw  source.StringID
}

type ExprCallData struct {
	Callee ExprID
	Args   []ExprID
}

type ExprGroupData struct {
	Inner ExprID
}

// ExprAnnData is `value :: T1 :: T2 ...`.
type ExprAnnData struct {
	Value ExprID
	Types []ExprID
}

// ExprLamTypeData is `[~] param -> Ret`. A named parameter `(x : T)` sets
// Named, Name and Param=T; a positional parameter stores its expression in Param.
type ExprLamTypeData struct {
	Erased bool
	Named  bool
	Name   Name
	Param  ExprID
	Ret    ExprID
}

// ExprLamData is `x => body` or `(x [: T]) => body`. Type is NoExprID when absent.
type ExprLamData struct {
	Name     Name
	Explicit bool
	Type     ExprID
	Body     ExprID
}

// ExprSigmaData is `[name : T] -> Ret`.
type ExprSigmaData struct {
	Name Name
	Type ExprID
	Ret  ExprID
}

// WithClause is `with name` (Type == NoExprID) or `with (name : T)`.
type WithClause struct {
	Span source.Span
	Name Name
	Type ExprID
}

type MatchCase struct {
	Span    source.Span
	Pattern PatID
	Value   ExprID
}

type ExprMatchData struct {
	Scrutinee Name
	Binder    Name
	Value     ExprID
	With      []WithClause
	Cases     []MatchCase
	Motive    ExprID
}

type ExprDoData struct {
	Scrutinee Name
	Stmts     []ExprID
}

type ExprAskData struct {
	Name  Name
	Value ExprID
}

type ExprOpenData struct {
	Ctor  Name
	Value Name
	Next  ExprID
}

type ExprReturnData struct {
	Value ExprID
}

type ExprLetData struct {
	Pattern PatID
	Value   ExprID
	Next    ExprID
}

// ExprSpecializeData is `specialize name into #N in value`; Arity is the text of N.
type ExprSpecializeData struct {
	Name  Name
	Arity source.StringID
	Value ExprID
}

// ExprOpData is `(op arg*)` with Op one of the symbol operators.
type ExprOpData struct {
	Op   source.StringID
	Args []ExprID
}

type ExprArrayData struct {
	Elems []ExprID
}

// ExprHelpData is `?` optionally followed by a name.
type ExprHelpData struct {
	HasName bool
	Name    Name
}

type ExprIfData struct {
	Cond ExprID
	Then ExprID
	Else ExprID
}
