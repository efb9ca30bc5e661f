package diagfmt

import (
	"kind/internal/ast"
	"kind/internal/source"
)

// Node — узел синтаксического дерева в переносимом виде. Из него строятся
// текстовое дерево, JSON и msgpack. Field — роль узла у родителя
// ("name", "type", "value", ...), Text — имя, литерал или оператор.
type Node struct {
	Field    string   `json:"field,omitempty" msgpack:"field,omitempty"`
	Kind     string   `json:"kind" msgpack:"kind"`
	Text     string   `json:"text,omitempty" msgpack:"text,omitempty"`
	Start    uint32   `json:"start" msgpack:"start"`
	End      uint32   `json:"end" msgpack:"end"`
	Flags    []string `json:"flags,omitempty" msgpack:"flags,omitempty"`
	Children []*Node  `json:"children,omitempty" msgpack:"children,omitempty"`
}

// FileNode — корень дерева одного файла.
type FileNode struct {
	Path     string  `json:"path" msgpack:"path"`
	HashBang string  `json:"hashbang,omitempty" msgpack:"hashbang,omitempty"`
	Start    uint32  `json:"start" msgpack:"start"`
	End      uint32  `json:"end" msgpack:"end"`
	Decls    []*Node `json:"decls" msgpack:"decls"`
}

type nodeBuilder struct {
	b *ast.Builder
}

func (nb nodeBuilder) node(field, kind, text string, sp source.Span) *Node {
	return &Node{Field: field, Kind: kind, Text: text, Start: sp.Start, End: sp.End}
}

func (n *Node) add(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

func (n *Node) flag(on bool, name string) *Node {
	if on {
		n.Flags = append(n.Flags, name)
	}
	return n
}

// BuildFileNode переводит разобранный файл в переносимое дерево.
func BuildFileNode(b *ast.Builder, id ast.FileID, fs *source.FileSet) *FileNode {
	file := b.Files.Get(id)
	if file == nil {
		return nil
	}
	out := &FileNode{HashBang: file.HashBang, Start: file.Span.Start, End: file.Span.End}
	if fs != nil {
		if f := fs.Get(file.Span.File); f != nil {
			out.Path = f.FormatPath("relative", fs.BaseDir())
		}
	}
	nb := nodeBuilder{b: b}
	out.Decls = make([]*Node, 0, len(file.Decls))
	for _, d := range file.Decls {
		out.Decls = append(out.Decls, nb.decl(d))
	}
	return out
}

func (nb nodeBuilder) name(field string, n ast.Name) *Node {
	if n.IsZero() {
		return nil
	}
	kind := "Identifier"
	if n.Upper {
		kind = "ConstructorIdentifier"
	}
	return nb.node(field, kind, n.Format(nb.b.Strings), n.Span).flag(n.Synthetic, "synthetic")
}

func (nb nodeBuilder) attr(field string, a *ast.Attr) *Node {
	text := "#" + nb.b.Str(a.Name)
	n := nb.node(field, "Attribute", text, a.Span).flag(true, a.Form.String())
	n.add(nb.name("value", a.Value))
	for _, arg := range a.Args {
		n.add(nb.name("arg", arg))
	}
	return n
}

func (nb nodeBuilder) params(field string, params []ast.Param) []*Node {
	out := make([]*Node, 0, len(params))
	for _, p := range params {
		n := nb.node(field, "Parameter", p.Name.Format(nb.b.Strings), p.Span)
		n.flag(p.Implicit, "implicit")
		if m := p.Modifier.String(); m != "" {
			n.flag(true, "modifier "+m)
		}
		n.add(nb.name("name", p.Name), nb.expr("type", p.Type))
		out = append(out, n)
	}
	return out
}

func (nb nodeBuilder) decl(id ast.DeclID) *Node {
	d := nb.b.Decls.Get(id)
	switch d.Kind {
	case ast.DeclAttribute:
		a, _ := nb.b.Decls.Attribute(id)
		return nb.attr("", a)

	case ast.DeclRecord, ast.DeclType:
		r, _ := nb.b.Decls.Record(id)
		n := nb.node("", d.Kind.String(), r.Name.Format(nb.b.Strings), d.Span)
		n.add(nb.name("name", r.Name))
		n.add(nb.params("param", r.Params)...)
		n.flag(r.HasIndices, "indexed")
		n.add(nb.params("index", r.Indices)...)
		for _, f := range r.Fields {
			n.add(nb.node("field", "FieldSignature", f.Name.Format(nb.b.Strings), f.Span).
				add(nb.name("name", f.Name), nb.expr("type", f.Type)))
		}
		for _, m := range r.Members {
			mn := nb.node("member", "MemberSignature", m.Name.Format(nb.b.Strings), m.Span)
			for i := range m.Attrs {
				mn.add(nb.attr("attr", &m.Attrs[i]))
			}
			mn.add(nb.name("name", m.Name))
			mn.add(nb.params("param", m.Params)...)
			mn.add(nb.expr("type", m.Type))
			n.add(mn)
		}
		return n

	case ast.DeclUse:
		u, _ := nb.b.Decls.Use(id)
		return nb.node("", d.Kind.String(), u.Path.Format(nb.b.Strings), d.Span).
			add(nb.name("path", u.Path), nb.name("alias", u.Alias))

	case ast.DeclRule:
		r, _ := nb.b.Decls.Rule(id)
		n := nb.node("", d.Kind.String(), r.Name.Format(nb.b.Strings), d.Span)
		n.add(nb.name("name", r.Name))
		for _, p := range r.Patterns {
			n.add(nb.pat("pattern", p))
		}
		return n.add(nb.expr("value", r.Value))

	case ast.DeclVal:
		v, _ := nb.b.Decls.Val(id)
		n := nb.node("", d.Kind.String(), v.Name.Format(nb.b.Strings), d.Span)
		n.add(nb.name("name", v.Name))
		n.add(nb.params("param", v.Params)...)
		n.add(nb.expr("type", v.Type))
		if v.HasBody {
			body := nb.node("body", "Block", "", d.Span)
			for _, s := range v.Body {
				body.add(nb.expr("stmt", s))
			}
			n.add(body)
		}
		return n
	}
	return nb.node("", "Decl(?)", "", d.Span)
}

func (nb nodeBuilder) exprs(field string, ids []ast.ExprID) []*Node {
	out := make([]*Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, nb.expr(field, id))
	}
	return out
}

func (nb nodeBuilder) expr(field string, id ast.ExprID) *Node {
	if !id.IsValid() {
		return nil
	}
	e := nb.b.Exprs.Get(id)
	n := nb.node(field, e.Kind.String(), "", e.Span)
	ex := nb.b.Exprs

	switch e.Kind {
	case ast.ExprIdent:
		name, _ := ex.Ident(id)
		n.Text = name.Format(nb.b.Strings)
		n.flag(name.Upper, "constructor").flag(name.Synthetic, "synthetic")
	case ast.ExprLit:
		lit, _ := ex.Lit(id)
		n.Text = nb.b.Str(lit.Raw)
		n.flag(true, lit.Kind.String())
	case ast.ExprCall:
		c, _ := ex.Call(id)
		n.add(nb.expr("callee", c.Callee))
		n.add(nb.exprs("arg", c.Args)...)
	case ast.ExprGroup:
		g, _ := ex.Group(id)
		n.add(nb.expr("inner", g.Inner))
	case ast.ExprAnn:
		a, _ := ex.Ann(id)
		n.add(nb.expr("value", a.Value))
		n.add(nb.exprs("type", a.Types)...)
	case ast.ExprLamType:
		l, _ := ex.LamType(id)
		n.flag(l.Erased, "erased").flag(l.Named, "named")
		n.add(nb.name("name", l.Name), nb.expr("param", l.Param), nb.expr("return", l.Ret))
	case ast.ExprLam:
		l, _ := ex.Lam(id)
		n.flag(l.Explicit, "explicit")
		n.add(nb.name("name", l.Name), nb.expr("type", l.Type), nb.expr("body", l.Body))
	case ast.ExprSigma:
		s, _ := ex.Sigma(id)
		n.add(nb.name("name", s.Name), nb.expr("type", s.Type), nb.expr("return", s.Ret))
	case ast.ExprMatch:
		m, _ := ex.Match(id)
		n.add(nb.name("scrutinee", m.Scrutinee), nb.name("binder", m.Binder), nb.expr("value", m.Value))
		for _, w := range m.With {
			n.add(nb.node("with", "WithClause", w.Name.Format(nb.b.Strings), w.Span).
				add(nb.name("name", w.Name), nb.expr("type", w.Type)))
		}
		for _, c := range m.Cases {
			n.add(nb.node("case", "MatchCase", "", c.Span).
				add(nb.pat("pattern", c.Pattern), nb.expr("value", c.Value)))
		}
		n.add(nb.expr("motive", m.Motive))
	case ast.ExprDo:
		d, _ := ex.Do(id)
		n.Text = d.Scrutinee.Format(nb.b.Strings)
		n.add(nb.name("monad", d.Scrutinee))
		n.add(nb.exprs("stmt", d.Stmts)...)
	case ast.ExprAsk:
		a, _ := ex.Ask(id)
		n.add(nb.name("name", a.Name), nb.expr("value", a.Value))
	case ast.ExprOpen:
		o, _ := ex.Open(id)
		n.add(nb.name("ctor", o.Ctor), nb.name("value", o.Value), nb.expr("next", o.Next))
	case ast.ExprReturn:
		r, _ := ex.Return(id)
		n.add(nb.expr("value", r.Value))
	case ast.ExprLet:
		l, _ := ex.Let(id)
		n.add(nb.pat("pattern", l.Pattern), nb.expr("value", l.Value), nb.expr("next", l.Next))
	case ast.ExprSpecialize:
		s, _ := ex.Specialize(id)
		n.Text = "#" + nb.b.Str(s.Arity)
		n.add(nb.name("name", s.Name), nb.expr("value", s.Value))
	case ast.ExprOp:
		o, _ := ex.Op(id)
		n.Text = nb.b.Str(o.Op)
		n.add(nb.exprs("arg", o.Args)...)
	case ast.ExprArray:
		a, _ := ex.Array(id)
		n.add(nb.exprs("elem", a.Elems)...)
	case ast.ExprHelp:
		h, _ := ex.Help(id)
		if h.HasName {
			n.Text = h.Name.Format(nb.b.Strings)
		}
	case ast.ExprIf:
		i, _ := ex.If(id)
		n.add(nb.expr("cond", i.Cond), nb.expr("then", i.Then), nb.expr("else", i.Else))
	}
	return n
}

func (nb nodeBuilder) pat(field string, id ast.PatID) *Node {
	if !id.IsValid() {
		return nil
	}
	p := nb.b.Pats.Get(id)
	n := nb.node(field, p.Kind.String(), "", p.Span)
	switch p.Kind {
	case ast.PatIdent:
		name, _ := nb.b.Pats.Ident(id)
		n.Text = name.Format(nb.b.Strings)
	case ast.PatCtor, ast.PatCtorMatch:
		c, _ := nb.b.Pats.Ctor(id)
		n.Text = c.Name.Format(nb.b.Strings)
		for _, a := range c.Args {
			n.add(nb.pat("arg", a))
		}
	case ast.PatLit:
		lit, _ := nb.b.Pats.Lit(id)
		n.Text = nb.b.Str(lit.Raw)
		n.flag(true, lit.Kind.String())
	case ast.PatRename:
		r, _ := nb.b.Pats.Rename(id)
		n.add(nb.name("alias", r.Alias), nb.name("field", r.Field))
	case ast.PatRest:
		n.Text = ".."
	}
	return n
}
