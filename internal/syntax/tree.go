package syntax

import (
	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/green"
	"pdfsyntax/internal/source"
)

// Tree binds a green root to the file it was parsed from. It keeps the path
// and the line index, not the file content.
type Tree struct {
	root    green.Node
	path    string
	lineIdx []uint32
	file    source.FileID
}

// NewTree wraps root. file may be nil for trees built in memory.
func NewTree(root green.Node, file *source.File) *Tree {
	t := &Tree{root: root}
	if file != nil {
		t.path = file.Path
		t.lineIdx = file.LineIdx
		t.file = file.ID
	}
	return t
}

// Root returns the red root; nil for an empty tree.
func (t *Tree) Root() *Node {
	if t.root == nil {
		return nil
	}
	return &Node{tree: t, green: t.root, index: -1}
}

func (t *Tree) Green() green.Node     { return t.root }
func (t *Tree) FilePath() string      { return t.path }
func (t *Tree) FileID() source.FileID { return t.file }

func (t *Tree) LineCol(off uint32) source.LineCol {
	return source.ToLineCol(t.lineIdx, off)
}

// Text reproduces the parsed input byte for byte.
func (t *Tree) Text() string { return green.Text(t.root) }

// Diagnostics collects every diagnostic in the tree in source order, each
// located at the span of the element that carries it.
func (t *Tree) Diagnostics() []diag.Diagnostic {
	r := t.Root()
	if r == nil {
		return nil
	}
	return r.Diagnostics()
}

// HasErrors reports whether any diagnostic in the tree is an error.
func (t *Tree) HasErrors() bool {
	for _, d := range t.Diagnostics() {
		if d.Severity() >= diag.SevError {
			return true
		}
	}
	return false
}

func (t *Tree) span(start, end uint32) source.Span {
	return source.Span{File: t.file, Start: start, End: end}
}

func (t *Tree) location(sp source.Span) diag.Location {
	return diag.SourceLocation{Tree: t, Span: sp}
}
