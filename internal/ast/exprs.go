package ast

import "kind/internal/source"

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena       *Arena[Expr]
	Idents      *Arena[Name]
	Lits        *Arena[ExprLitData]
	Calls       *Arena[ExprCallData]
	Groups      *Arena[ExprGroupData]
	Anns        *Arena[ExprAnnData]
	LamTypes    *Arena[ExprLamTypeData]
	Lams        *Arena[ExprLamData]
	Sigmas      *Arena[ExprSigmaData]
	Matches     *Arena[ExprMatchData]
	Dos         *Arena[ExprDoData]
	Asks        *Arena[ExprAskData]
	Opens       *Arena[ExprOpenData]
	Returns     *Arena[ExprReturnData]
	Lets        *Arena[ExprLetData]
	Specializes *Arena[ExprSpecializeData]
	Ops         *Arena[ExprOpData]
	Arrays      *Arena[ExprArrayData]
	Helps       *Arena[ExprHelpData]
	Ifs         *Arena[ExprIfData]
}

// NewExprs creates per-kind arenas; capHint 0 means 1<<8.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:       NewArena[Expr](capHint),
		Idents:      NewArena[Name](capHint),
		Lits:        NewArena[ExprLitData](capHint),
		Calls:       NewArena[ExprCallData](capHint),
		Groups:      NewArena[ExprGroupData](capHint),
		Anns:        NewArena[ExprAnnData](capHint),
		LamTypes:    NewArena[ExprLamTypeData](capHint),
		Lams:        NewArena[ExprLamData](capHint),
		Sigmas:      NewArena[ExprSigmaData](capHint),
		Matches:     NewArena[ExprMatchData](capHint),
		Dos:         NewArena[ExprDoData](capHint),
		Asks:        NewArena[ExprAskData](capHint),
		Opens:       NewArena[ExprOpenData](capHint),
		Returns:     NewArena[ExprReturnData](capHint),
		Lets:        NewArena[ExprLetData](capHint),
		Specializes: NewArena[ExprSpecializeData](capHint),
		Ops:         NewArena[ExprOpData](capHint),
		Arrays:      NewArena[ExprArrayData](capHint),
		Helps:       NewArena[ExprHelpData](capHint),
		Ifs:         NewArena[ExprIfData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) payload(id ExprID, kind ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return 0, false
	}
	return uint32(expr.Payload), true
}

// Конструкторы New* кладут payload в арену своего вида; accessors
// возвращают (nil, false), если id другого вида.

func (e *Exprs) NewIdent(span source.Span, data Name) ExprID {
	return e.new(ExprIdent, span, e.Idents.Allocate(data))
}

func (e *Exprs) Ident(id ExprID) (*Name, bool) {
	p, ok := e.payload(id, ExprIdent)
	if !ok {
		return nil, false
	}
	return e.Idents.Get(p), true
}

func (e *Exprs) NewLit(span source.Span, data ExprLitData) ExprID {
	return e.new(ExprLit, span, e.Lits.Allocate(data))
}

func (e *Exprs) Lit(id ExprID) (*ExprLitData, bool) {
	p, ok := e.payload(id, ExprLit)
	if !ok {
		return nil, false
	}
	return e.Lits.Get(p), true
}

func (e *Exprs) NewCall(span source.Span, data ExprCallData) ExprID {
	return e.new(ExprCall, span, e.Calls.Allocate(data))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	p, ok := e.payload(id, ExprCall)
	if !ok {
		return nil, false
	}
	return e.Calls.Get(p), true
}

func (e *Exprs) NewGroup(span source.Span, data ExprGroupData) ExprID {
	return e.new(ExprGroup, span, e.Groups.Allocate(data))
}

func (e *Exprs) Group(id ExprID) (*ExprGroupData, bool) {
	p, ok := e.payload(id, ExprGroup)
	if !ok {
		return nil, false
	}
	return e.Groups.Get(p), true
}

func (e *Exprs) NewAnn(span source.Span, data ExprAnnData) ExprID {
	return e.new(ExprAnn, span, e.Anns.Allocate(data))
}

func (e *Exprs) Ann(id ExprID) (*ExprAnnData, bool) {
	p, ok := e.payload(id, ExprAnn)
	if !ok {
		return nil, false
	}
	return e.Anns.Get(p), true
}

func (e *Exprs) NewLamType(span source.Span, data ExprLamTypeData) ExprID {
	return e.new(ExprLamType, span, e.LamTypes.Allocate(data))
}

func (e *Exprs) LamType(id ExprID) (*ExprLamTypeData, bool) {
	p, ok := e.payload(id, ExprLamType)
	if !ok {
		return nil, false
	}
	return e.LamTypes.Get(p), true
}

func (e *Exprs) NewLam(span source.Span, data ExprLamData) ExprID {
	return e.new(ExprLam, span, e.Lams.Allocate(data))
}

func (e *Exprs) Lam(id ExprID) (*ExprLamData, bool) {
	p, ok := e.payload(id, ExprLam)
	if !ok {
		return nil, false
	}
	return e.Lams.Get(p), true
}

func (e *Exprs) NewSigma(span source.Span, data ExprSigmaData) ExprID {
	return e.new(ExprSigma, span, e.Sigmas.Allocate(data))
}

func (e *Exprs) Sigma(id ExprID) (*ExprSigmaData, bool) {
	p, ok := e.payload(id, ExprSigma)
	if !ok {
		return nil, false
	}
	return e.Sigmas.Get(p), true
}

func (e *Exprs) NewMatch(span source.Span, data ExprMatchData) ExprID {
	return e.new(ExprMatch, span, e.Matches.Allocate(data))
}

func (e *Exprs) Match(id ExprID) (*ExprMatchData, bool) {
	p, ok := e.payload(id, ExprMatch)
	if !ok {
		return nil, false
	}
	return e.Matches.Get(p), true
}

func (e *Exprs) NewDo(span source.Span, data ExprDoData) ExprID {
	return e.new(ExprDo, span, e.Dos.Allocate(data))
}

func (e *Exprs) Do(id ExprID) (*ExprDoData, bool) {
	p, ok := e.payload(id, ExprDo)
	if !ok {
		return nil, false
	}
	return e.Dos.Get(p), true
}

func (e *Exprs) NewAsk(span source.Span, data ExprAskData) ExprID {
	return e.new(ExprAsk, span, e.Asks.Allocate(data))
}

func (e *Exprs) Ask(id ExprID) (*ExprAskData, bool) {
	p, ok := e.payload(id, ExprAsk)
	if !ok {
		return nil, false
	}
	return e.Asks.Get(p), true
}

func (e *Exprs) NewOpen(span source.Span, data ExprOpenData) ExprID {
	return e.new(ExprOpen, span, e.Opens.Allocate(data))
}

func (e *Exprs) Open(id ExprID) (*ExprOpenData, bool) {
	p, ok := e.payload(id, ExprOpen)
	if !ok {
		return nil, false
	}
	return e.Opens.Get(p), true
}

func (e *Exprs) NewReturn(span source.Span, data ExprReturnData) ExprID {
	return e.new(ExprReturn, span, e.Returns.Allocate(data))
}

func (e *Exprs) Return(id ExprID) (*ExprReturnData, bool) {
	p, ok := e.payload(id, ExprReturn)
	if !ok {
		return nil, false
	}
	return e.Returns.Get(p), true
}

func (e *Exprs) NewLet(span source.Span, data ExprLetData) ExprID {
	return e.new(ExprLet, span, e.Lets.Allocate(data))
}

func (e *Exprs) Let(id ExprID) (*ExprLetData, bool) {
	p, ok := e.payload(id, ExprLet)
	if !ok {
		return nil, false
	}
	return e.Lets.Get(p), true
}

func (e *Exprs) NewSpecialize(span source.Span, data ExprSpecializeData) ExprID {
	return e.new(ExprSpecialize, span, e.Specializes.Allocate(data))
}

func (e *Exprs) Specialize(id ExprID) (*ExprSpecializeData, bool) {
	p, ok := e.payload(id, ExprSpecialize)
	if !ok {
		return nil, false
	}
	return e.Specializes.Get(p), true
}

func (e *Exprs) NewOp(span source.Span, data ExprOpData) ExprID {
	return e.new(ExprOp, span, e.Ops.Allocate(data))
}

func (e *Exprs) Op(id ExprID) (*ExprOpData, bool) {
	p, ok := e.payload(id, ExprOp)
	if !ok {
		return nil, false
	}
	return e.Ops.Get(p), true
}

func (e *Exprs) NewArray(span source.Span, data ExprArrayData) ExprID {
	return e.new(ExprArray, span, e.Arrays.Allocate(data))
}

func (e *Exprs) Array(id ExprID) (*ExprArrayData, bool) {
	p, ok := e.payload(id, ExprArray)
	if !ok {
		return nil, false
	}
	return e.Arrays.Get(p), true
}

func (e *Exprs) NewHelp(span source.Span, data ExprHelpData) ExprID {
	return e.new(ExprHelp, span, e.Helps.Allocate(data))
}

func (e *Exprs) Help(id ExprID) (*ExprHelpData, bool) {
	p, ok := e.payload(id, ExprHelp)
	if !ok {
		return nil, false
	}
	return e.Helps.Get(p), true
}

func (e *Exprs) NewIf(span source.Span, data ExprIfData) ExprID {
	return e.new(ExprIf, span, e.Ifs.Allocate(data))
}

func (e *Exprs) If(id ExprID) (*ExprIfData, bool) {
	p, ok := e.payload(id, ExprIf)
	if !ok {
		return nil, false
	}
	return e.Ifs.Get(p), true
}
