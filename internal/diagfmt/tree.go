package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/source"
	"pdfsyntax/internal/syntax"
)

// TreeOpts configures FormatTree.
type TreeOpts struct {
	// ShowTrivia добавляет под каждым токеном его trivia
	ShowTrivia bool
	// FullSpans печатает полные span (с trivia) вместо обрезанных
	FullSpans bool
}

type treeNode struct {
	label    string
	children []*treeNode
}

// FormatTree dumps the red tree as an indented outline, one element per line:
//
//	Document [0..42)
//	└─ IndirectObject [0..42)
//	   ├─ IntegerLiteralToken "1" [0..1)
//	   ...
func FormatTree(w io.Writer, tree *syntax.Tree, opts TreeOpts) error {
	root := tree.Root()
	if root == nil {
		_, err := fmt.Fprintln(w, "<empty>")
		return err
	}
	var b strings.Builder
	writeTreeNode(&b, buildTreeNode(root, opts), "", "", "")
	_, err := io.WriteString(w, b.String())
	return err
}

func buildTreeNode(c syntax.Child, opts TreeOpts) *treeNode {
	sp := c.Span()
	if opts.FullSpans {
		sp = c.FullSpan()
	}
	switch c := c.(type) {
	case *syntax.Token:
		label := c.Kind().String()
		switch {
		case c.IsMissing():
			label += " <missing>"
		default:
			label += fmt.Sprintf(" %q", clipText(c.Text()))
		}
		label += " " + spanLabel(sp) + codesLabel(c.Green().Diagnostics())
		n := &treeNode{label: label}
		if opts.ShowTrivia {
			appendTrivia(n, "leading", c.LeadingTrivia())
			appendTrivia(n, "trailing", c.TrailingTrivia())
		}
		return n
	case *syntax.Node:
		n := &treeNode{label: c.Kind().String() + " " + spanLabel(sp) + codesLabel(c.Green().Diagnostics())}
		for child := range c.Children() {
			n.children = append(n.children, buildTreeNode(child, opts))
		}
		return n
	}
	return &treeNode{label: "<nil>"}
}

func appendTrivia(n *treeNode, side string, list syntax.TriviaList) {
	for t := range list.All() {
		n.children = append(n.children, &treeNode{
			label: fmt.Sprintf("%s %s %q %s", side, t.Kind(), clipText(t.Text()), spanLabel(t.Span())),
		})
	}
}

func spanLabel(sp source.Span) string {
	return fmt.Sprintf("[%d..%d)", sp.Start, sp.End)
}

func codesLabel(ds []diag.Info) string {
	if len(ds) == 0 {
		return ""
	}
	ids := make([]string, len(ds))
	for i, d := range ds {
		ids[i] = d.ID()
	}
	return " !" + strings.Join(ids, ",")
}

func writeTreeNode(b *strings.Builder, n *treeNode, prefix, branch, childPrefix string) {
	b.WriteString(prefix)
	b.WriteString(branch)
	b.WriteString(n.label)
	b.WriteByte('\n')
	for i, c := range n.children {
		if i == len(n.children)-1 {
			writeTreeNode(b, c, prefix+childPrefix, "└─ ", "   ")
		} else {
			writeTreeNode(b, c, prefix+childPrefix, "├─ ", "│  ")
		}
	}
}
