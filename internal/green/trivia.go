package green

import (
	"io"

	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/token"
)

// Trivia is whitespace, one end-of-line or one comment.
type Trivia struct {
	base
	text string
}

// NewTrivia builds a trivia node. kind must be a trivia kind.
func NewTrivia(kind token.Kind, text string) *Trivia {
	if !kind.IsTrivia() {
		invariant("NewTrivia", kind, "not a trivia kind")
	}
	return &Trivia{
		base: base{
			kind:  kind,
			width: widthOf(text),
			hash:  finish(hashString(mix(hashOffset, uint64(kind)), text)),
		},
		text: text,
	}
}

// Общие экземпляры; не изменяются.
var (
	singleSpace = NewTrivia(token.WhitespaceTrivia, " ")
	lineFeed    = NewTrivia(token.EndOfLineTrivia, "\n")
	crlf        = NewTrivia(token.EndOfLineTrivia, "\r\n")
	carriage    = NewTrivia(token.EndOfLineTrivia, "\r")
)

// SharedTrivia returns the process-wide instance for common trivia text, or nil.
func SharedTrivia(kind token.Kind, text string) *Trivia {
	switch {
	case kind == token.WhitespaceTrivia && text == " ":
		return singleSpace
	case kind == token.EndOfLineTrivia && text == "\n":
		return lineFeed
	case kind == token.EndOfLineTrivia && text == "\r\n":
		return crlf
	case kind == token.EndOfLineTrivia && text == "\r":
		return carriage
	}
	return nil
}

// IsShared reports whether t is one of the process-wide singletons.
func IsShared(t *Trivia) bool {
	return t == singleSpace || t == lineFeed || t == crlf || t == carriage
}

func (t *Trivia) Text() string { return t.text }

func (*Trivia) SlotCount() int { return 0 }

func (t *Trivia) Slot(i int) Node {
	slotOutOfRange("Slot", t, i)
	return nil
}

func (t *Trivia) SlotOffset(i int) uint32 {
	slotOutOfRange("SlotOffset", t, i)
	return 0
}

func (*Trivia) FindSlotIndexContainingOffset(uint32) int { return -1 }

func (*Trivia) IsList() bool   { return false }
func (*Trivia) IsToken() bool  { return false }
func (*Trivia) IsTrivia() bool { return true }

func (t *Trivia) SetDiagnostics(ds []diag.Info) Node {
	cp := *t
	cp.withDiagnostics(ds)
	return &cp
}

func (t *Trivia) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, t.text)
	return int64(n), err
}
