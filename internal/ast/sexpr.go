package ast

import (
	"strings"
)

// SExpr renders a declaration as a compact, deterministic S-expression.
// Two structurally identical trees always render to the same string.
func (b *Builder) SExpr(id DeclID) string {
	var sb strings.Builder
	b.writeDecl(&sb, id)
	return sb.String()
}

// SExprFile renders every declaration of a file, one per line.
func (b *Builder) SExprFile(id FileID) string {
	f := b.Files.Get(id)
	if f == nil {
		return ""
	}
	parts := make([]string, 0, len(f.Decls))
	for _, d := range f.Decls {
		parts = append(parts, b.SExpr(d))
	}
	return strings.Join(parts, "\n")
}

// ExprSExpr renders a single expression.
func (b *Builder) ExprSExpr(id ExprID) string {
	var sb strings.Builder
	b.writeExpr(&sb, id)
	return sb.String()
}

// PatSExpr renders a single pattern.
func (b *Builder) PatSExpr(id PatID) string {
	var sb strings.Builder
	b.writePat(&sb, id)
	return sb.String()
}

func (b *Builder) name(n Name) string {
	return n.Format(b.Strings)
}

func (b *Builder) writeAttr(sb *strings.Builder, a *Attr) {
	sb.WriteString("#")
	sb.WriteString(b.Str(a.Name))
	switch a.Form {
	case AttrAssign:
		sb.WriteString(" = ")
		sb.WriteString(b.name(a.Value))
	case AttrApply:
		sb.WriteString("[")
		for i, arg := range a.Args {
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(b.name(arg))
		}
		sb.WriteString("]")
	}
}

func (b *Builder) writeParams(sb *strings.Builder, params []Param) {
	sb.WriteString("[")
	for i, p := range params {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(p.Modifier.String())
		open, closer := "(", ")"
		if p.Implicit {
			open, closer = "<", ">"
		}
		sb.WriteString(open)
		sb.WriteString(b.name(p.Name))
		if p.Type.IsValid() {
			sb.WriteString(" : ")
			b.writeExpr(sb, p.Type)
		}
		sb.WriteString(closer)
	}
	sb.WriteString("]")
}

func (b *Builder) writeDecl(sb *strings.Builder, id DeclID) {
	decl := b.Decls.Get(id)
	if decl == nil {
		sb.WriteString("<nil>")
		return
	}
	switch decl.Kind {
	case DeclAttribute:
		a, _ := b.Decls.Attribute(id)
		sb.WriteString("(attr ")
		b.writeAttr(sb, a)
		sb.WriteString(")")

	case DeclRecord, DeclType:
		r, _ := b.Decls.Record(id)
		if decl.Kind == DeclRecord {
			sb.WriteString("(record ")
		} else {
			sb.WriteString("(type ")
		}
		sb.WriteString(b.name(r.Name))
		sb.WriteString(" ")
		b.writeParams(sb, r.Params)
		if r.HasIndices {
			sb.WriteString(" ~ ")
			b.writeParams(sb, r.Indices)
		}
		sb.WriteString(" {")
		for i, f := range r.Fields {
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString("(" + b.name(f.Name) + " : ")
			b.writeExpr(sb, f.Type)
			sb.WriteString(")")
		}
		for i, m := range r.Members {
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString("(")
			for _, a := range m.Attrs {
				b.writeAttr(sb, &a)
				sb.WriteString(" ")
			}
			sb.WriteString(b.name(m.Name) + " ")
			b.writeParams(sb, m.Params)
			if m.Type.IsValid() {
				sb.WriteString(" : ")
				b.writeExpr(sb, m.Type)
			}
			sb.WriteString(")")
		}
		sb.WriteString("})")

	case DeclUse:
		u, _ := b.Decls.Use(id)
		sb.WriteString("(use " + b.name(u.Path) + " as " + b.name(u.Alias) + ")")

	case DeclRule:
		r, _ := b.Decls.Rule(id)
		sb.WriteString("(rule " + b.name(r.Name) + " [")
		for i, p := range r.Patterns {
			if i > 0 {
				sb.WriteString(" ")
			}
			b.writePat(sb, p)
		}
		sb.WriteString("] = ")
		b.writeExpr(sb, r.Value)
		sb.WriteString(")")

	case DeclVal:
		v, _ := b.Decls.Val(id)
		sb.WriteString("(val " + b.name(v.Name) + " ")
		b.writeParams(sb, v.Params)
		if v.Typed {
			sb.WriteString(" : ")
			b.writeExpr(sb, v.Type)
		}
		if v.HasBody {
			sb.WriteString(" ")
			b.writeBlock(sb, v.Body)
		}
		sb.WriteString(")")
	}
}

func (b *Builder) writeBlock(sb *strings.Builder, stmts []ExprID) {
	sb.WriteString("{")
	for i, s := range stmts {
		if i > 0 {
			sb.WriteString("; ")
		}
		b.writeExpr(sb, s)
	}
	sb.WriteString("}")
}

func (b *Builder) writeList(sb *strings.Builder, head string, items []ExprID) {
	sb.WriteString("(" + head)
	for _, it := range items {
		sb.WriteString(" ")
		b.writeExpr(sb, it)
	}
	sb.WriteString(")")
}

func (b *Builder) writeExpr(sb *strings.Builder, id ExprID) {
	expr := b.Exprs.Get(id)
	if expr == nil {
		sb.WriteString("<nil>")
		return
	}
	switch expr.Kind {
	case ExprIdent:
		n, _ := b.Exprs.Ident(id)
		sb.WriteString(b.name(*n))
	case ExprLit:
		l, _ := b.Exprs.Lit(id)
		sb.WriteString(b.Str(l.Raw))
	case ExprCall:
		c, _ := b.Exprs.Call(id)
		b.writeList(sb, "call", append([]ExprID{c.Callee}, c.Args...))
	case ExprGroup:
		g, _ := b.Exprs.Group(id)
		b.writeList(sb, "group", []ExprID{g.Inner})
	case ExprAnn:
		a, _ := b.Exprs.Ann(id)
		b.writeList(sb, "ann", append([]ExprID{a.Value}, a.Types...))
	case ExprLamType:
		l, _ := b.Exprs.LamType(id)
		sb.WriteString("(-> ")
		if l.Erased {
			sb.WriteString("~")
		}
		if l.Named {
			sb.WriteString("(" + b.name(l.Name) + " : ")
			b.writeExpr(sb, l.Param)
			sb.WriteString(")")
		} else {
			b.writeExpr(sb, l.Param)
		}
		sb.WriteString(" ")
		b.writeExpr(sb, l.Ret)
		sb.WriteString(")")
	case ExprLam:
		l, _ := b.Exprs.Lam(id)
		sb.WriteString("(=> ")
		if l.Explicit {
			sb.WriteString("(" + b.name(l.Name))
			if l.Type.IsValid() {
				sb.WriteString(" : ")
				b.writeExpr(sb, l.Type)
			}
			sb.WriteString(")")
		} else {
			sb.WriteString(b.name(l.Name))
		}
		sb.WriteString(" ")
		b.writeExpr(sb, l.Body)
		sb.WriteString(")")
	case ExprSigma:
		s, _ := b.Exprs.Sigma(id)
		sb.WriteString("(sigma [" + b.name(s.Name) + " : ")
		b.writeExpr(sb, s.Type)
		sb.WriteString("] ")
		b.writeExpr(sb, s.Ret)
		sb.WriteString(")")
	case ExprMatch:
		m, _ := b.Exprs.Match(id)
		sb.WriteString("(match " + b.name(m.Scrutinee) + " " + b.name(m.Binder))
		if m.Value.IsValid() {
			sb.WriteString(" = ")
			b.writeExpr(sb, m.Value)
		}
		for _, w := range m.With {
			sb.WriteString(" (with ")
			if w.Type.IsValid() {
				sb.WriteString("(" + b.name(w.Name) + " : ")
				b.writeExpr(sb, w.Type)
				sb.WriteString(")")
			} else {
				sb.WriteString(b.name(w.Name))
			}
			sb.WriteString(")")
		}
		sb.WriteString(" {")
		for i, c := range m.Cases {
			if i > 0 {
				sb.WriteString(" | ")
			}
			b.writePat(sb, c.Pattern)
			sb.WriteString(" => ")
			b.writeExpr(sb, c.Value)
		}
		sb.WriteString("}")
		if m.Motive.IsValid() {
			sb.WriteString(" : ")
			b.writeExpr(sb, m.Motive)
		}
		sb.WriteString(")")
	case ExprDo:
		d, _ := b.Exprs.Do(id)
		sb.WriteString("(do " + b.name(d.Scrutinee) + " ")
		b.writeBlock(sb, d.Stmts)
		sb.WriteString(")")
	case ExprAsk:
		a, _ := b.Exprs.Ask(id)
		sb.WriteString("(ask " + b.name(a.Name) + " = ")
		b.writeExpr(sb, a.Value)
		sb.WriteString(")")
	case ExprOpen:
		o, _ := b.Exprs.Open(id)
		sb.WriteString("(open " + b.name(o.Ctor) + " " + b.name(o.Value))
		if o.Next.IsValid() {
			sb.WriteString(" ")
			b.writeExpr(sb, o.Next)
		}
		sb.WriteString(")")
	case ExprReturn:
		r, _ := b.Exprs.Return(id)
		b.writeList(sb, "return", []ExprID{r.Value})
	case ExprLet:
		l, _ := b.Exprs.Let(id)
		sb.WriteString("(let ")
		b.writePat(sb, l.Pattern)
		sb.WriteString(" = ")
		b.writeExpr(sb, l.Value)
		if l.Next.IsValid() {
			sb.WriteString(" ")
			b.writeExpr(sb, l.Next)
		}
		sb.WriteString(")")
	case ExprSpecialize:
		s, _ := b.Exprs.Specialize(id)
		sb.WriteString("(specialize " + b.name(s.Name) + " into #" + b.Str(s.Arity) + " in ")
		b.writeExpr(sb, s.Value)
		sb.WriteString(")")
	case ExprOp:
		o, _ := b.Exprs.Op(id)
		b.writeList(sb, "op "+b.Str(o.Op), o.Args)
	case ExprArray:
		a, _ := b.Exprs.Array(id)
		b.writeList(sb, "array", a.Elems)
	case ExprHelp:
		h, _ := b.Exprs.Help(id)
		sb.WriteString("?")
		if h.HasName {
			sb.WriteString(b.name(h.Name))
		}
	case ExprIf:
		i, _ := b.Exprs.If(id)
		sb.WriteString("(if ")
		b.writeExpr(sb, i.Cond)
		sb.WriteString(" {")
		b.writeExpr(sb, i.Then)
		sb.WriteString("} {")
		b.writeExpr(sb, i.Else)
		sb.WriteString("})")
	}
}

func (b *Builder) writePat(sb *strings.Builder, id PatID) {
	pat := b.Pats.Get(id)
	if pat == nil {
		sb.WriteString("<nil>")
		return
	}
	switch pat.Kind {
	case PatIdent:
		n, _ := b.Pats.Ident(id)
		sb.WriteString(b.name(*n))
	case PatCtor, PatCtorMatch:
		c, _ := b.Pats.Ctor(id)
		if len(c.Args) == 0 {
			sb.WriteString(b.name(c.Name))
			return
		}
		sb.WriteString("(" + b.name(c.Name))
		for _, a := range c.Args {
			sb.WriteString(" ")
			b.writePat(sb, a)
		}
		sb.WriteString(")")
	case PatLit:
		l, _ := b.Pats.Lit(id)
		sb.WriteString(b.Str(l.Raw))
	case PatRename:
		r, _ := b.Pats.Rename(id)
		sb.WriteString("(" + b.name(r.Alias) + " @ " + b.name(r.Field) + ")")
	case PatRest:
		sb.WriteString("..")
	}
}
