package ast

import (
	"kind/internal/source"
)

type Hints struct{ Files, Decls, Exprs, Pats uint }

// Builder owns every arena of one or more parsed files plus the identifier interner.
type Builder struct {
	Files   *Files
	Decls   *Decls
	Exprs   *Exprs
	Pats    *Pats
	Strings *source.Interner
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	return &Builder{
		Files:   NewFiles(hints.Files),
		Decls:   NewDecls(hints.Decls),
		Exprs:   NewExprs(hints.Exprs),
		Pats:    NewPats(hints.Pats),
		Strings: source.NewInterner(),
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) PushDecl(file FileID, decl DeclID) {
	f := b.Files.Get(file)
	f.Decls = append(f.Decls, decl)
}

// Str returns the interned text for id ("" for NoStringID).
func (b *Builder) Str(id source.StringID) string {
	s, _ := b.Strings.Lookup(id)
	return s
}
