package ast

import (
	"strings"

	"kind/internal/source"
)

type AccessKind uint8

const (
	// AccessDot is `.segment`.
	AccessDot AccessKind = iota
	// AccessSlash is `/segment`.
	AccessSlash
)

func (k AccessKind) Prefix() string {
	if k == AccessSlash {
		return "/"
	}
	return "."
}

type AccessSeg struct {
	Kind AccessKind
	Text source.StringID
	Span source.Span
}

// Name is an identifier or constructor identifier with its access path.
// The path is flat: `a.b/c.d` is Base=a, Access=[.b /c .d].
type Name struct {
	Span      source.Span
	Synthetic bool
	// Upper is true for constructor identifiers (first letter upper-case).
	Upper  bool
	Base   source.StringID
	Access []AccessSeg
}

// IsZero reports whether the name is absent.
func (n Name) IsZero() bool {
	return n.Base == source.NoStringID && len(n.Access) == 0
}

// Format renders the name back to source form.
func (n Name) Format(strs *source.Interner) string {
	var sb strings.Builder
	if n.Synthetic {
		sb.WriteByte('%')
	}
	sb.WriteString(strs.MustLookup(n.Base))
	for _, seg := range n.Access {
		sb.WriteString(seg.Kind.Prefix())
		sb.WriteString(strs.MustLookup(seg.Text))
	}
	return sb.String()
}
