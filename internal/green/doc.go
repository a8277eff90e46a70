// Package green holds the immutable, position-independent syntax nodes.
//
// A green node knows its kind, its full width (including trivia) and its
// children; it never knows its absolute position or its parent. That makes
// identical subtrees shareable: the Factory interns tokens and, through a
// session-owned Cache, reuses small structural nodes.
//
// Node kinds:
//
//   - *Trivia   – whitespace, end-of-line or comment text
//   - *Token    – token text, decoded value, leading and trailing trivia
//   - lists     – List(children...) tiered by arity
//   - productions – fixed-arity nodes built with NewNode
//
// Lexical and syntactic diagnostics are stored on the node that caused them.
// SetDiagnostics returns a shallow copy; the original is never mutated.
//
// Structural misuse (bad slot index, wrong arity) panics with *InvariantError.
package green
