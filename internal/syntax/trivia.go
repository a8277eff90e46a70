package syntax

import (
	"iter"

	"pdfsyntax/internal/green"
	"pdfsyntax/internal/source"
	"pdfsyntax/internal/token"
)

// TriviaList is the leading or trailing trivia of a token, in physical order.
type TriviaList struct {
	token *Token
	green green.Node // nil, *green.Trivia or a list of them
	pos   uint32
}

func (l TriviaList) Count() int {
	switch {
	case l.green == nil:
		return 0
	case l.green.IsList():
		return l.green.SlotCount()
	default:
		return 1
	}
}

// At returns trivia i; it panics when i is out of range.
func (l TriviaList) At(i int) Trivia {
	if l.green == nil || (!l.green.IsList() && i != 0) {
		panic(&green.InvariantError{Op: "TriviaList.At", Kind: token.List, Detail: "index out of range"})
	}
	if !l.green.IsList() {
		return Trivia{token: l.token, green: l.green.(*green.Trivia), pos: l.pos, index: 0}
	}
	return Trivia{
		token: l.token,
		green: l.green.Slot(i).(*green.Trivia),
		pos:   l.pos + l.green.SlotOffset(i),
		index: i,
	}
}

func (l TriviaList) All() iter.Seq[Trivia] {
	return func(yield func(Trivia) bool) {
		for i := 0; i < l.Count(); i++ {
			if !yield(l.At(i)) {
				return
			}
		}
	}
}

// FullWidth is the combined width of the trivia.
func (l TriviaList) FullWidth() uint32 {
	if l.green == nil {
		return 0
	}
	return l.green.FullWidth()
}

func (l TriviaList) Text() string { return green.Text(l.green) }

// Trivia is one piece of trivia placed at an absolute offset.
type Trivia struct {
	token *Token
	green *green.Trivia
	pos   uint32
	index int
}

func (t Trivia) Kind() token.Kind { return t.green.Kind() }
func (t Trivia) Text() string     { return t.green.Text() }
func (t Trivia) Token() *Token    { return t.token }
func (t Trivia) Index() int       { return t.index }

func (t Trivia) Span() source.Span {
	return t.token.tree.span(t.pos, t.pos+t.green.FullWidth())
}
