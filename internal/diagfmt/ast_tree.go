package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"kind/internal/ast"
	"kind/internal/source"
)

// FormatASTTree печатает дерево файла с псевдографикой:
//
//	src/nat.kind (0..42)
//	└── RuleDeclaration add (0..20)
//	    ├── name: Identifier add (0..3)
//	    └── value: Call (6..20)
func FormatASTTree(w io.Writer, b *ast.Builder, id ast.FileID, fs *source.FileSet) error {
	root := BuildFileNode(b, id, fs)
	if root == nil {
		_, err := fmt.Fprintf(w, "File[%d]: <nil>\n", id)
		return err
	}
	var sb strings.Builder
	header := root.Path
	if header == "" {
		header = "File"
	}
	fmt.Fprintf(&sb, "%s (%d..%d)\n", header, root.Start, root.End)
	if root.HashBang != "" {
		fmt.Fprintf(&sb, "│   hashbang %q\n", root.HashBang)
	}
	for i, d := range root.Decls {
		writeTreeNode(&sb, d, "", i == len(root.Decls)-1)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeTreeNode(sb *strings.Builder, n *Node, prefix string, last bool) {
	branch, indent := "├── ", "│   "
	if last {
		branch, indent = "└── ", "    "
	}
	sb.WriteString(prefix)
	sb.WriteString(branch)
	sb.WriteString(n.label())
	sb.WriteByte('\n')
	for i, c := range n.Children {
		writeTreeNode(sb, c, prefix+indent, i == len(n.Children)-1)
	}
}

func (n *Node) label() string {
	var sb strings.Builder
	if n.Field != "" {
		sb.WriteString(n.Field)
		sb.WriteString(": ")
	}
	sb.WriteString(n.Kind)
	if n.Text != "" {
		sb.WriteByte(' ')
		sb.WriteString(n.Text)
	}
	if len(n.Flags) > 0 {
		sb.WriteString(" [")
		sb.WriteString(strings.Join(n.Flags, ", "))
		sb.WriteByte(']')
	}
	fmt.Fprintf(&sb, " (%d..%d)", n.Start, n.End)
	return sb.String()
}

// FormatASTSExpr печатает декларации файла S-выражениями, по одной на строку.
func FormatASTSExpr(w io.Writer, b *ast.Builder, id ast.FileID) error {
	out := b.SExprFile(id)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}
