package green

import (
	"fmt"

	"pdfsyntax/internal/token"
)

// InvariantError reports a structural bug in the caller, never bad input.
type InvariantError struct {
	Op     string
	Kind   token.Kind
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("green: %s on %s: %s", e.Op, e.Kind, e.Detail)
}

func invariant(op string, kind token.Kind, format string, args ...any) {
	panic(&InvariantError{Op: op, Kind: kind, Detail: fmt.Sprintf(format, args...)})
}

func slotOutOfRange(op string, n Node, i int) {
	invariant(op, n.Kind(), "slot %d out of range [0,%d)", i, n.SlotCount())
}
