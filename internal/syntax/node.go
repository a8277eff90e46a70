package syntax

import (
	"iter"

	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/green"
	"pdfsyntax/internal/source"
	"pdfsyntax/internal/token"
)

// Child is either a *Node or a *Token.
type Child interface {
	Kind() token.Kind
	// Span excludes leading trivia of the first token and trailing trivia of
	// the last one.
	Span() source.Span
	FullSpan() source.Span
	Parent() *Node
	Index() int
	Diagnostics() []diag.Diagnostic
	isChild()
}

// Node is a production or a list placed at an absolute offset.
type Node struct {
	tree   *Tree
	parent *Node
	green  green.Node
	pos    uint32
	index  int
}

func (*Node) isChild() {}

func (n *Node) Kind() token.Kind  { return n.green.Kind() }
func (n *Node) Green() green.Node { return n.green }
func (n *Node) Tree() *Tree       { return n.tree }
func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) Index() int        { return n.index }
func (n *Node) Position() uint32  { return n.pos }
func (n *Node) IsList() bool      { return n.green.IsList() }
func (n *Node) SlotCount() int    { return n.green.SlotCount() }
func (n *Node) Text() string      { return green.Text(n.green) }
func (n *Node) IsMissing() bool   { return n.green.Flags().Has(green.FlagContainsMissing) }
func (n *Node) ContainsDiagnostics() bool {
	return n.green.Flags().Has(green.FlagContainsDiagnostics)
}

func (n *Node) FullSpan() source.Span {
	return n.tree.span(n.pos, n.pos+n.green.FullWidth())
}

func (n *Node) Span() source.Span {
	return trimmedSpan(n.tree, n.green, n.pos)
}

// Slot returns child i as a *Node or *Token, or nil when the slot is empty.
func (n *Node) Slot(i int) Child {
	g := n.green.Slot(i)
	if g == nil {
		return nil
	}
	return wrap(n, g, n.pos+n.green.SlotOffset(i), i)
}

// Children yields the children in source order; list slots are flattened
// so their elements appear in place of the list.
func (n *Node) Children() iter.Seq[Child] {
	return func(yield func(Child) bool) {
		for i := 0; i < n.green.SlotCount(); i++ {
			c := n.Slot(i)
			if c == nil {
				continue
			}
			if list, ok := c.(*Node); ok && list.IsList() {
				for j := 0; j < list.SlotCount(); j++ {
					if !yield(list.Slot(j)) {
						return
					}
				}
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// Elements yields the elements of the list in slot i. A slot holding a
// single element (lists of one are not wrapped) yields just that element.
func (n *Node) Elements(i int) iter.Seq[Child] {
	return func(yield func(Child) bool) {
		c := n.Slot(i)
		if c == nil {
			return
		}
		list, ok := c.(*Node)
		if !ok || !list.IsList() {
			yield(c)
			return
		}
		for j := 0; j < list.SlotCount(); j++ {
			if !yield(list.Slot(j)) {
				return
			}
		}
	}
}

// Tokens yields every token under n in source order.
func (n *Node) Tokens() iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		n.walkTokens(yield)
	}
}

func (n *Node) walkTokens(yield func(*Token) bool) bool {
	for i := 0; i < n.green.SlotCount(); i++ {
		switch c := n.Slot(i).(type) {
		case *Token:
			if !yield(c) {
				return false
			}
		case *Node:
			if !c.walkTokens(yield) {
				return false
			}
		}
	}
	return true
}

// FindToken returns the token whose full span contains the absolute offset
// off, or nil when off is outside this node.
func (n *Node) FindToken(off uint32) *Token {
	if off < n.pos || off >= n.pos+n.green.FullWidth() {
		return nil
	}
	cur := n
	for {
		i := cur.green.FindSlotIndexContainingOffset(off - cur.pos)
		if i < 0 {
			return nil
		}
		switch c := cur.Slot(i).(type) {
		case *Token:
			return c
		case *Node:
			cur = c
		default:
			return nil
		}
	}
}

// Equal reports whether both nodes denote the same green node at the same
// place in the same tree.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	return n.tree == o.tree &&
		n.green == o.green &&
		n.index == o.index &&
		n.pos == o.pos &&
		n.parent.Equal(o.parent)
}

// Diagnostics collects diagnostics of n and its descendants in source order.
func (n *Node) Diagnostics() []diag.Diagnostic {
	var out []diag.Diagnostic
	n.collect(&out)
	return out
}

func (n *Node) collect(out *[]diag.Diagnostic) {
	if !n.green.Flags().Has(green.FlagContainsDiagnostics) {
		return
	}
	for _, info := range n.green.Diagnostics() {
		*out = append(*out, diag.New(info, n.tree.location(n.Span())))
	}
	for i := 0; i < n.green.SlotCount(); i++ {
		switch c := n.Slot(i).(type) {
		case *Token:
			*out = append(*out, c.Diagnostics()...)
		case *Node:
			c.collect(out)
		}
	}
}

func wrap(parent *Node, g green.Node, pos uint32, index int) Child {
	if tok, ok := g.(*green.Token); ok {
		return &Token{tree: parent.tree, parent: parent, green: tok, pos: pos, index: index}
	}
	return &Node{tree: parent.tree, parent: parent, green: g, pos: pos, index: index}
}

func trimmedSpan(t *Tree, g green.Node, pos uint32) source.Span {
	start := pos
	end := pos + g.FullWidth()
	if first := firstToken(g); first != nil {
		start += first.LeadingWidth()
	}
	if last := lastToken(g); last != nil {
		end -= last.TrailingWidth()
	}
	if end < start {
		end = start
	}
	return t.span(start, end)
}

// firstToken returns the first token with a non-zero full width.
func firstToken(g green.Node) *green.Token {
	if tok, ok := g.(*green.Token); ok {
		if tok.FullWidth() == 0 {
			return nil
		}
		return tok
	}
	for i := 0; i < g.SlotCount(); i++ {
		if c := g.Slot(i); c != nil && c.FullWidth() > 0 {
			return firstToken(c)
		}
	}
	return nil
}

func lastToken(g green.Node) *green.Token {
	if tok, ok := g.(*green.Token); ok {
		if tok.FullWidth() == 0 {
			return nil
		}
		return tok
	}
	for i := g.SlotCount() - 1; i >= 0; i-- {
		if c := g.Slot(i); c != nil && c.FullWidth() > 0 {
			return lastToken(c)
		}
	}
	return nil
}
