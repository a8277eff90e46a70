package green

import (
	"io"
	"sort"

	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/token"
)

// lotsThreshold is the arity above which lists precompute child offsets.
const lotsThreshold = 10

// List builds a list node. Nil children are dropped. Zero children yield nil
// and a single child is returned unwrapped.
func List(children ...Node) Node {
	kids := compact(children)
	switch len(kids) {
	case 0:
		return nil
	case 1:
		return kids[0]
	case 2:
		l := &list2{a: kids[0], b: kids[1]}
		l.init(kids)
		return l
	case 3:
		l := &list3{a: kids[0], b: kids[1], c: kids[2]}
		l.init(kids)
		return l
	}
	if len(kids) <= lotsThreshold {
		l := &listMany{children: kids}
		l.init(kids)
		return l
	}
	l := &listLots{listMany: listMany{children: kids}}
	l.init(kids)
	l.offsets = make([]uint32, len(kids))
	var pos uint32
	for i, c := range kids {
		l.offsets[i] = pos
		pos += c.FullWidth()
	}
	return l
}

// ListOf returns the children of n viewed as a list: the slots of a list
// node, n itself for any other node, nothing for nil.
func ListOf(n Node) []Node {
	if n == nil {
		return nil
	}
	if !n.IsList() {
		return []Node{n}
	}
	out := make([]Node, n.SlotCount())
	for i := range out {
		out[i] = n.Slot(i)
	}
	return out
}

func compact(children []Node) []Node {
	for _, c := range children {
		if c == nil {
			out := make([]Node, 0, len(children))
			for _, c := range children {
				if c != nil {
					out = append(out, c)
				}
			}
			return out
		}
	}
	return children
}

type listBase struct {
	base
}

func (l *listBase) init(kids []Node) {
	l.kind = token.List
	l.flags = childFlags(kids)
	l.width = sumWidths("List", token.List, kids)
	l.hash = structuralHash(token.List, kids)
}

func (*listBase) IsList() bool   { return true }
func (*listBase) IsToken() bool  { return false }
func (*listBase) IsTrivia() bool { return false }

type list2 struct {
	listBase
	a, b Node
}

func (*list2) SlotCount() int { return 2 }

func (l *list2) Slot(i int) Node {
	switch i {
	case 0:
		return l.a
	case 1:
		return l.b
	}
	slotOutOfRange("Slot", l, i)
	return nil
}

func (l *list2) SlotOffset(i int) uint32 {
	switch i {
	case 0:
		return 0
	case 1:
		return l.a.FullWidth()
	}
	slotOutOfRange("SlotOffset", l, i)
	return 0
}

func (l *list2) FindSlotIndexContainingOffset(off uint32) int { return linearFind(l, off) }

func (l *list2) SetDiagnostics(ds []diag.Info) Node {
	cp := *l
	cp.withDiagnostics(ds)
	return &cp
}

func (l *list2) WriteTo(w io.Writer) (int64, error) { return writeChildren(w, l) }

type list3 struct {
	listBase
	a, b, c Node
}

func (*list3) SlotCount() int { return 3 }

func (l *list3) Slot(i int) Node {
	switch i {
	case 0:
		return l.a
	case 1:
		return l.b
	case 2:
		return l.c
	}
	slotOutOfRange("Slot", l, i)
	return nil
}

func (l *list3) SlotOffset(i int) uint32 {
	switch i {
	case 0:
		return 0
	case 1:
		return l.a.FullWidth()
	case 2:
		return l.a.FullWidth() + l.b.FullWidth()
	}
	slotOutOfRange("SlotOffset", l, i)
	return 0
}

func (l *list3) FindSlotIndexContainingOffset(off uint32) int { return linearFind(l, off) }

func (l *list3) SetDiagnostics(ds []diag.Info) Node {
	cp := *l
	cp.withDiagnostics(ds)
	return &cp
}

func (l *list3) WriteTo(w io.Writer) (int64, error) { return writeChildren(w, l) }

type listMany struct {
	listBase
	children []Node
}

func (l *listMany) SlotCount() int { return len(l.children) }

func (l *listMany) Slot(i int) Node {
	if i < 0 || i >= len(l.children) {
		slotOutOfRange("Slot", l, i)
	}
	return l.children[i]
}

func (l *listMany) SlotOffset(i int) uint32 {
	if i < 0 || i >= len(l.children) {
		slotOutOfRange("SlotOffset", l, i)
	}
	return linearOffset(l, i)
}

func (l *listMany) FindSlotIndexContainingOffset(off uint32) int { return linearFind(l, off) }

func (l *listMany) SetDiagnostics(ds []diag.Info) Node {
	cp := *l
	cp.withDiagnostics(ds)
	return &cp
}

func (l *listMany) WriteTo(w io.Writer) (int64, error) { return writeChildren(w, l) }

// listLots keeps cumulative offsets so lookups are logarithmic.
type listLots struct {
	listMany
	offsets []uint32
}

func (l *listLots) SlotOffset(i int) uint32 {
	if i < 0 || i >= len(l.children) {
		slotOutOfRange("SlotOffset", l, i)
	}
	return l.offsets[i]
}

func (l *listLots) FindSlotIndexContainingOffset(off uint32) int {
	// последний i с offsets[i] <= off, пропуская дочерние узлы нулевой ширины
	i := sort.Search(len(l.offsets), func(k int) bool { return l.offsets[k] > off }) - 1
	if i < 0 {
		i = 0
	}
	for i > 0 && l.children[i].FullWidth() == 0 {
		i--
	}
	return i
}

func (l *listLots) SetDiagnostics(ds []diag.Info) Node {
	cp := *l
	cp.withDiagnostics(ds)
	return &cp
}

func (l *listLots) WriteTo(w io.Writer) (int64, error) { return writeChildren(w, l) }
