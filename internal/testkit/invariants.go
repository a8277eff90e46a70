package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"pdfsyntax/internal/green"
	"pdfsyntax/internal/syntax"
)

// CheckTree runs the structural invariants on a parsed file:
// 1) every green node's width is the sum of its children
// 2) the tree text is the input, byte for byte
// 3) child full spans tile their parent's full span without gaps
// 4) every span lies inside its full span
func CheckTree(tree *syntax.Tree, content []byte) error {
	if tree == nil {
		return fmt.Errorf("nil tree")
	}
	if err := green.CheckWidth(tree.Green()); err != nil {
		return err
	}
	if got := tree.Text(); got != string(content) {
		return fmt.Errorf("round-trip mismatch: got %d bytes, want %d", len(got), len(content))
	}
	root := tree.Root()
	if root == nil {
		if len(content) != 0 {
			return fmt.Errorf("nil root for %d bytes of input", len(content))
		}
		return nil
	}
	total, err := safecast.Conv[uint32](len(content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if fs := root.FullSpan(); fs.Start != 0 || fs.End != total {
		return fmt.Errorf("root full span %v does not cover input of %d bytes", fs, total)
	}
	return checkSpans(root)
}

func checkSpans(n *syntax.Node) error {
	full := n.FullSpan()
	if sp := n.Span(); sp.Start < full.Start || sp.End > full.End {
		return fmt.Errorf("%v: span %v outside full span %v", n.Kind(), sp, full)
	}
	next := full.Start
	for i := 0; i < n.SlotCount(); i++ {
		c := n.Slot(i)
		if c == nil {
			continue
		}
		cf := c.FullSpan()
		if cf.Start != next {
			return fmt.Errorf("%v slot %d: full span %v starts at %d, want %d", n.Kind(), i, cf, cf.Start, next)
		}
		next = cf.End
		switch c := c.(type) {
		case *syntax.Node:
			if err := checkSpans(c); err != nil {
				return err
			}
		case *syntax.Token:
			if sp := c.Span(); sp.Start < cf.Start || sp.End > cf.End {
				return fmt.Errorf("token %v: span %v outside full span %v", c.Kind(), sp, cf)
			}
		}
	}
	if n.SlotCount() > 0 && next != full.End {
		return fmt.Errorf("%v: children end at %d, node ends at %d", n.Kind(), next, full.End)
	}
	return nil
}

// CheckTokens verifies that the full texts of toks concatenate to content.
func CheckTokens(toks []*green.Token, content []byte) error {
	off := 0
	for i, tok := range toks {
		text := green.Text(tok)
		end := off + len(text)
		if end > len(content) || string(content[off:end]) != text {
			return fmt.Errorf("token %d (%v) at offset %d does not match the input", i, tok.Kind(), off)
		}
		off = end
	}
	if off != len(content) {
		return fmt.Errorf("tokens cover %d of %d bytes", off, len(content))
	}
	return nil
}

// CheckCacheIdentity looks every interior node of root up in cache and
// verifies that a hit is the node with the same kind and the very same
// children.
func CheckCacheIdentity(cache *green.Cache, root green.Node) error {
	var err error
	green.Walk(root, func(n green.Node) bool {
		if err != nil || n.IsToken() || n.IsTrivia() {
			return false
		}
		kids := make([]green.Node, n.SlotCount())
		for i := range kids {
			kids[i] = n.Slot(i)
		}
		hit, _ := cache.TryGetNode(n.Kind(), kids...)
		if hit == nil {
			return true
		}
		if hit.Kind() != n.Kind() || hit.SlotCount() != len(kids) {
			err = fmt.Errorf("cache returned %v/%d for %v/%d", hit.Kind(), hit.SlotCount(), n.Kind(), len(kids))
			return false
		}
		for i, k := range kids {
			if hit.Slot(i) != k {
				err = fmt.Errorf("cache hit for %v differs in slot %d", n.Kind(), i)
				return false
			}
		}
		return true
	})
	return err
}
