package diag

import (
	"sort"
)

type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag creates a bag holding at most max diagnostics; max <= 0 means unbounded.
func NewBag(max int) *Bag {
	capHint := max
	if capHint <= 0 || capHint > 64 {
		capHint = 64
	}
	return &Bag{
		items: make([]Diagnostic, 0, capHint),
		max:   max,
	}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если диагностика не добавлена (достигнут лимит).
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	if d.Location == nil {
		d.Location = NoLocation{}
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() int {
	return b.max
}

// HasErrors возвращает true, если есть хотя бы одна диагностика с Severity >= Error
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity() >= SevError {
			return true
		}
	}
	return false
}

func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity() >= SevWarning {
			return true
		}
	}
	return false
}

// Count returns how many diagnostics have exactly severity s.
func (b *Bag) Count(s Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity() == s {
			n++
		}
	}
	return n
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice диагностик.
// ВАЖНО: не модифицируйте возвращаемый срез!
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge объединяет диагностики из другого Bag, расширяя лимит при необходимости.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	newTotal := len(b.items) + len(other.items)
	if b.max > 0 && newTotal > b.max {
		b.max = newTotal
	}
	b.items = append(b.items, other.items...)
}

// Filter keeps only diagnostics for which keep returns true.
func (b *Bag) Filter(keep func(Diagnostic) bool) {
	out := b.items[:0]
	for _, d := range b.items {
		if keep(d) {
			out = append(out, d)
		}
	}
	b.items = out
}

// Sort сортирует диагностики по: file, start, end, severity (desc), code (asc).
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		pi, _ := di.Position()
		pj, _ := dj.Position()
		if pi.Path != pj.Path {
			return pi.Path < pj.Path
		}
		if pi.Span.Start != pj.Span.Start {
			return pi.Span.Start < pj.Span.Start
		}
		if pi.Span.End != pj.Span.End {
			return pi.Span.End < pj.Span.End
		}
		if di.Severity() != dj.Severity() {
			return di.Severity() > dj.Severity()
		}
		return di.Code() < dj.Code()
	})
}

// Dedup removes structurally equal diagnostics (same info and location),
// keeping the first occurrence.
func (b *Bag) Dedup() {
	seen := make(map[uint64][]int, len(b.items))
	out := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		key := dedupKey(d)
		dup := false
		for _, k := range seen[key] {
			if out[k].Equal(d) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seen[key] = append(seen[key], len(out))
		out = append(out, d)
	}
	b.items = out
}

func dedupKey(d Diagnostic) uint64 {
	h := d.Info.Hash()
	if p, ok := d.Position(); ok {
		h ^= uint64(p.Span.Start)<<32 | uint64(p.Span.End)
	}
	return h
}
