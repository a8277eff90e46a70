package green

import (
	"io"

	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/token"
)

var arity = map[token.Kind]int{
	token.LiteralExpression:      1,
	token.SignedNumberExpression: 2,
	token.ArrayExpression:        3,
	token.DictionaryExpression:   3,
	token.DictionaryEntry:        2,
	token.ProcedureExpression:    3,
	token.IndirectReference:      3,
	token.IndirectObject:         5,
	token.StreamObject:           4,
	token.XRefSection:            2,
	token.TrailerSection:         2,
	token.StartXRefSection:       2,
	token.UnexpectedExpression:   1,
	token.Document:               2,
}

// Arity returns the slot count of a production kind, or -1.
func Arity(kind token.Kind) int {
	if n, ok := arity[kind]; ok {
		return n
	}
	return -1
}

type production struct {
	base
	slots []Node
}

// NewNode builds a production. Nil slots are allowed for empty lists and
// absent optional children; a wrong slot count panics.
func NewNode(kind token.Kind, slots ...Node) Node {
	n, ok := arity[kind]
	if !ok {
		invariant("NewNode", kind, "not a production kind")
	}
	if len(slots) != n {
		invariant("NewNode", kind, "want %d slots, got %d", n, len(slots))
	}
	p := &production{slots: append([]Node(nil), slots...)}
	p.kind = kind
	p.flags = childFlags(slots)
	p.width = sumWidths("NewNode", kind, slots)
	p.hash = structuralHash(kind, slots)
	return p
}

// NewNodeWithDiagnostics is NewNode followed by SetDiagnostics without the
// intermediate copy.
func NewNodeWithDiagnostics(kind token.Kind, ds []diag.Info, slots ...Node) Node {
	n := NewNode(kind, slots...).(*production)
	n.withDiagnostics(ds)
	return n
}

func (p *production) SlotCount() int { return len(p.slots) }

func (p *production) Slot(i int) Node {
	if i < 0 || i >= len(p.slots) {
		slotOutOfRange("Slot", p, i)
	}
	return p.slots[i]
}

func (p *production) SlotOffset(i int) uint32 {
	if i < 0 || i >= len(p.slots) {
		slotOutOfRange("SlotOffset", p, i)
	}
	return linearOffset(p, i)
}

func (p *production) FindSlotIndexContainingOffset(off uint32) int { return linearFind(p, off) }

func (*production) IsList() bool   { return false }
func (*production) IsToken() bool  { return false }
func (*production) IsTrivia() bool { return false }

func (p *production) SetDiagnostics(ds []diag.Info) Node {
	cp := *p
	cp.withDiagnostics(ds)
	return &cp
}

func (p *production) WriteTo(w io.Writer) (int64, error) { return writeChildren(w, p) }
