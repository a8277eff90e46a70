package syntax

import (
	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/green"
	"pdfsyntax/internal/source"
	"pdfsyntax/internal/token"
)

// Token is a green token placed at an absolute offset. pos is the start of
// its leading trivia.
type Token struct {
	tree   *Tree
	parent *Node
	green  *green.Token
	pos    uint32
	index  int
}

func (*Token) isChild() {}

func (t *Token) Kind() token.Kind    { return t.green.Kind() }
func (t *Token) Text() string        { return t.green.Text() }
func (t *Token) Value() token.Value  { return t.green.Value() }
func (t *Token) Green() *green.Token { return t.green }
func (t *Token) Parent() *Node       { return t.parent }
func (t *Token) Index() int          { return t.index }
func (t *Token) IsMissing() bool     { return t.green.IsMissing() }
func (t *Token) Tree() *Tree         { return t.tree }
func (t *Token) FullText() string    { return green.Text(t.green) }

func (t *Token) FullSpan() source.Span {
	return t.tree.span(t.pos, t.pos+t.green.FullWidth())
}

func (t *Token) Span() source.Span {
	start := t.pos + t.green.LeadingWidth()
	return t.tree.span(start, start+t.green.Width())
}

func (t *Token) LeadingTrivia() TriviaList {
	return TriviaList{token: t, green: t.green.Leading(), pos: t.pos}
}

func (t *Token) TrailingTrivia() TriviaList {
	return TriviaList{token: t, green: t.green.Trailing(), pos: t.pos + t.green.LeadingWidth() + t.green.Width()}
}

func (t *Token) Equal(o *Token) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.tree == o.tree &&
		t.green == o.green &&
		t.index == o.index &&
		t.pos == o.pos &&
		t.parent.Equal(o.parent)
}

func (t *Token) Diagnostics() []diag.Diagnostic {
	infos := t.green.Diagnostics()
	if len(infos) == 0 {
		return nil
	}
	loc := t.tree.location(t.Span())
	out := make([]diag.Diagnostic, len(infos))
	for i, info := range infos {
		out[i] = diag.New(info, loc)
	}
	return out
}
