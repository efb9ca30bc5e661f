// Package testkit holds checks shared by the parser and driver tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"kind/internal/ast"
	"kind/internal/diagfmt"
	"kind/internal/source"
)

// CheckSpanInvariants runs span invariants on a parsed file:
// 1) file span starts at 0, points at sf and stays within its content
// 2) every declaration span is non-empty, inside the file span, and the
// declarations keep source order without overlapping
// 3) every node below a declaration lies inside the declaration span
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	// 1) file span sanity
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.Start != 0 || f.Span.End > lenContent {
		return fmt.Errorf("file span %v outside content [0, %d)", f.Span, lenContent)
	}

	// 2) declarations
	var prevEnd uint32
	for i, id := range f.Decls {
		d := b.Decls.Get(id)
		if d == nil {
			return fmt.Errorf("nil declaration for id=%d", id)
		}
		sp := d.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty declaration span: %v", sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("declaration span file mismatch: got=%d want=%d", sp.File, sf.ID)
		}
		if sp.Start < f.Span.Start || sp.End > f.Span.End {
			return fmt.Errorf("declaration span %v is outside file span %v", sp, f.Span)
		}
		if i > 0 && sp.Start < prevEnd {
			return fmt.Errorf("declaration %d at %v overlaps or precedes the previous one (end %d)", i, sp, prevEnd)
		}
		prevEnd = sp.End
	}

	// 3) nested nodes
	tree := diagfmt.BuildFileNode(b, fileID, nil)
	for _, decl := range tree.Decls {
		if err := checkWithin(decl, decl.Start, decl.End); err != nil {
			return fmt.Errorf("declaration %s %q: %w", decl.Kind, decl.Text, err)
		}
	}
	return nil
}

func checkWithin(n *diagfmt.Node, start, end uint32) error {
	if n.Start > n.End {
		return fmt.Errorf("%s %q has inverted span %d..%d", n.Kind, n.Text, n.Start, n.End)
	}
	if n.Start < start || n.End > end {
		return fmt.Errorf("%s %q span %d..%d escapes %d..%d", n.Kind, n.Text, n.Start, n.End, start, end)
	}
	for _, c := range n.Children {
		if err := checkWithin(c, start, end); err != nil {
			return err
		}
	}
	return nil
}
