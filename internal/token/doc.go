// Package token defines the kinds shared by every green node of a PDF syntax
// tree (tokens, trivia, lists and structural productions) together with the
// keyword table and the decoded token value.
// Invariants:
//   - Token text is always the exact source slice; decoded data lives in Value.
//   - Keywords are case-sensitive and resolved by LookupKeyword only.
//   - '+' and '-' are punctuation; the grammar attaches signs to numbers.
//   - Trivia never appears in the token stream, only attached to tokens.
package token
