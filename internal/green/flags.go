package green

// Flags summarise properties of a node and its subtree.
type Flags uint8

const (
	// FlagMissing marks a zero-width token inserted by error recovery.
	FlagMissing Flags = 1 << iota
	// FlagHasDiagnostics is set when the node itself carries diagnostics.
	FlagHasDiagnostics
	// FlagContainsDiagnostics is set when the node or any descendant does.
	FlagContainsDiagnostics
	// FlagContainsMissing is set when the node or any descendant is missing.
	FlagContainsMissing

	// flagChildDiagnostics remembers whether descendants carry diagnostics so
	// SetDiagnostics can recompute FlagContainsDiagnostics without a walk.
	flagChildDiagnostics
)

// inherited are the flags a parent picks up from its children.
const inherited = FlagContainsDiagnostics | FlagContainsMissing

func (f Flags) Has(x Flags) bool { return f&x != 0 }

func childFlags(children []Node) Flags {
	var f Flags
	for _, c := range children {
		if c == nil {
			continue
		}
		f |= c.Flags() & inherited
	}
	if f.Has(FlagContainsDiagnostics) {
		f |= flagChildDiagnostics
	}
	return f
}
