package green

import (
	"fmt"
)

// CheckWidth verifies that every node's full width equals the sum of its
// parts. It returns the first violation.
func CheckWidth(n Node) error {
	if n == nil {
		return nil
	}
	switch x := n.(type) {
	case *Trivia:
		if x.width != widthOf(x.text) {
			return widthError(n, widthOf(x.text))
		}
		return nil
	case *Token:
		want := x.LeadingWidth() + x.Width() + x.TrailingWidth()
		if x.width != want {
			return widthError(n, want)
		}
		if err := CheckWidth(x.leading); err != nil {
			return err
		}
		return CheckWidth(x.trailing)
	}
	var sum uint32
	for i := 0; i < n.SlotCount(); i++ {
		c := n.Slot(i)
		if c == nil {
			continue
		}
		if got := n.SlotOffset(i); got != sum {
			return &InvariantError{Op: "CheckWidth", Kind: n.Kind(), Detail: fmt.Sprintf("slot %d offset %d, want %d", i, got, sum)}
		}
		if err := CheckWidth(c); err != nil {
			return err
		}
		sum += c.FullWidth()
	}
	if n.FullWidth() != sum {
		return widthError(n, sum)
	}
	return nil
}

func widthError(n Node, want uint32) error {
	return &InvariantError{Op: "CheckWidth", Kind: n.Kind(), Detail: fmt.Sprintf("full width %d, want %d", n.FullWidth(), want)}
}

// Walk visits n and its descendants in source order. Trivia attached to
// tokens is not visited. fn returning false skips the subtree.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for i := 0; i < n.SlotCount(); i++ {
		Walk(n.Slot(i), fn)
	}
}
