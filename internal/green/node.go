package green

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"

	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/token"
)

// Node is a green syntax node. The set of implementations is closed.
type Node interface {
	Kind() token.Kind
	// FullWidth is the byte length including all trivia.
	FullWidth() uint32
	SlotCount() int
	// Slot returns child i; it may be nil for an absent optional child.
	Slot(i int) Node
	// SlotOffset is the offset of child i relative to the node start.
	SlotOffset(i int) uint32
	// FindSlotIndexContainingOffset returns the index of the child whose
	// full span contains off, or -1 when the node has no slots.
	FindSlotIndexContainingOffset(off uint32) int
	IsList() bool
	IsToken() bool
	IsTrivia() bool
	IsMissing() bool
	Diagnostics() []diag.Info
	// SetDiagnostics returns a copy with ds as its own diagnostics; an empty
	// ds strips them.
	SetDiagnostics(ds []diag.Info) Node
	Flags() Flags
	// Hash is the structural hash; it is never 0.
	Hash() uint64
	WriteTo(w io.Writer) (int64, error)

	sealed()
}

type base struct {
	kind  token.Kind
	flags Flags
	width uint32
	hash  uint64
	diags []diag.Info
}

func (b *base) Kind() token.Kind         { return b.kind }
func (b *base) FullWidth() uint32        { return b.width }
func (b *base) Flags() Flags             { return b.flags }
func (b *base) Hash() uint64             { return b.hash }
func (b *base) Diagnostics() []diag.Info { return b.diags }
func (b *base) IsMissing() bool          { return b.flags.Has(FlagMissing) }
func (*base) sealed()                    {}

// withDiagnostics updates the own-diagnostics part of b in place. Callers
// operate on a fresh copy.
func (b *base) withDiagnostics(ds []diag.Info) {
	if len(ds) == 0 {
		b.diags = nil
		b.flags &^= FlagHasDiagnostics
		if !b.flags.Has(flagChildDiagnostics) {
			b.flags &^= FlagContainsDiagnostics
		}
		return
	}
	b.diags = append([]diag.Info(nil), ds...)
	b.flags |= FlagHasDiagnostics | FlagContainsDiagnostics
}

// cacheable reports whether a node may live in a Cache.
func cacheable(n Node) bool {
	return n != nil && !n.Flags().Has(FlagContainsDiagnostics|FlagMissing) && n.SlotCount() <= 3
}

func widthOf(s string) uint32 {
	w, err := safecast.Conv[uint32](len(s))
	if err != nil {
		panic(fmt.Errorf("green: text length overflow: %w", err))
	}
	return w
}

func sumWidths(op string, kind token.Kind, children []Node) uint32 {
	var total uint64
	for _, c := range children {
		if c != nil {
			total += uint64(c.FullWidth())
		}
	}
	w, err := safecast.Conv[uint32](total)
	if err != nil {
		invariant(op, kind, "width overflow: %v", err)
	}
	return w
}

// Text returns the full text of n including trivia.
func Text(n Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(int(n.FullWidth()))
	_, _ = n.WriteTo(&sb)
	return sb.String()
}

func writeChildren(w io.Writer, n Node) (int64, error) {
	var total int64
	for i := 0; i < n.SlotCount(); i++ {
		c := n.Slot(i)
		if c == nil {
			continue
		}
		k, err := c.WriteTo(w)
		total += k
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// linearFind scans slot widths; used by the small node shapes.
func linearFind(n Node, off uint32) int {
	cnt := n.SlotCount()
	if cnt == 0 {
		return -1
	}
	var pos uint32
	last := -1
	for i := 0; i < cnt; i++ {
		c := n.Slot(i)
		if c == nil {
			continue
		}
		w := c.FullWidth()
		if w == 0 {
			continue
		}
		last = i
		if off < pos+w {
			return i
		}
		pos += w
	}
	if last < 0 {
		return 0
	}
	return last
}

func linearOffset(n Node, i int) uint32 {
	var pos uint32
	for k := 0; k < i; k++ {
		if c := n.Slot(k); c != nil {
			pos += c.FullWidth()
		}
	}
	return pos
}
