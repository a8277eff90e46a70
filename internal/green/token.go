package green

import (
	"io"

	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/token"
)

// Token is a lexical token with its surrounding trivia. Leading and trailing
// are nil, a single *Trivia or a list of trivia.
type Token struct {
	base
	text     string
	value    token.Value
	leading  Node
	trailing Node
}

// NewToken builds a token. leading/trailing must be nil, *Trivia or a list
// of *Trivia.
func NewToken(kind token.Kind, text string, value token.Value, leading, trailing Node, diags []diag.Info) *Token {
	if !kind.IsToken() {
		invariant("NewToken", kind, "not a token kind")
	}
	checkTriviaNode("NewToken", kind, leading)
	checkTriviaNode("NewToken", kind, trailing)
	t := &Token{
		text:     text,
		value:    value,
		leading:  leading,
		trailing: trailing,
	}
	t.kind = kind
	t.flags = childFlags([]Node{leading, trailing})
	t.width = sumWidths("NewToken", kind, []Node{leading, trailing}) + widthOf(text)
	t.hash = tokenHash(kind, text, leading, trailing)
	t.withDiagnostics(diags)
	return t
}

// MissingToken is a zero-width token inserted by error recovery.
func MissingToken(kind token.Kind, diags []diag.Info) *Token {
	t := NewToken(kind, "", token.Value{}, nil, nil, nil)
	t.flags |= FlagMissing | FlagContainsMissing
	t.hash = finish(mix(t.hash, 0x6d697373))
	t.withDiagnostics(diags)
	return t
}

func tokenHash(kind token.Kind, text string, leading, trailing Node) uint64 {
	h := mix(hashOffset, uint64(kind))
	h = hashString(h, text)
	h = mix(h, hashChild(leading))
	h = mix(h, hashChild(trailing))
	return finish(h)
}

func checkTriviaNode(op string, kind token.Kind, n Node) {
	if n == nil || n.IsTrivia() {
		return
	}
	if n.IsList() {
		for i := 0; i < n.SlotCount(); i++ {
			if c := n.Slot(i); c == nil || !c.IsTrivia() {
				invariant(op, kind, "trivia list holds a non-trivia child at %d", i)
			}
		}
		return
	}
	invariant(op, kind, "trivia slot holds %s", n.Kind())
}

// Text is the token text without trivia.
func (t *Token) Text() string       { return t.text }
func (t *Token) Value() token.Value { return t.value }

// Width excludes trivia.
func (t *Token) Width() uint32 { return widthOf(t.text) }

func (t *Token) Leading() Node  { return t.leading }
func (t *Token) Trailing() Node { return t.trailing }

func (t *Token) LeadingWidth() uint32 {
	if t.leading == nil {
		return 0
	}
	return t.leading.FullWidth()
}

func (t *Token) TrailingWidth() uint32 {
	if t.trailing == nil {
		return 0
	}
	return t.trailing.FullWidth()
}

func (*Token) SlotCount() int { return 0 }

func (t *Token) Slot(i int) Node {
	slotOutOfRange("Slot", t, i)
	return nil
}

func (t *Token) SlotOffset(i int) uint32 {
	slotOutOfRange("SlotOffset", t, i)
	return 0
}

func (*Token) FindSlotIndexContainingOffset(uint32) int { return -1 }

func (*Token) IsList() bool   { return false }
func (*Token) IsToken() bool  { return true }
func (*Token) IsTrivia() bool { return false }

func (t *Token) SetDiagnostics(ds []diag.Info) Node {
	cp := *t
	cp.withDiagnostics(ds)
	return &cp
}

// WithTrivia returns a copy with replaced trivia; diagnostics are kept.
func (t *Token) WithTrivia(leading, trailing Node) *Token {
	return NewToken(t.kind, t.text, t.value, leading, trailing, t.diags).withFlagsFrom(t)
}

func (t *Token) withFlagsFrom(src *Token) *Token {
	if src.IsMissing() {
		t.flags |= FlagMissing | FlagContainsMissing
	}
	return t
}

func (t *Token) WriteTo(w io.Writer) (int64, error) {
	var total int64
	if t.leading != nil {
		n, err := t.leading.WriteTo(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err := io.WriteString(w, t.text)
	total += int64(n)
	if err != nil {
		return total, err
	}
	if t.trailing != nil {
		k, err := t.trailing.WriteTo(w)
		total += k
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
