// Package syntax is the position-aware view over a green tree.
//
// Red values (Node, Token, Trivia) are created on demand while walking and
// are never stored inside the green tree. Each one records its parent, its
// absolute offset and its slot index, so spans and diagnostics locations can
// be computed without the green nodes knowing where they are.
package syntax
