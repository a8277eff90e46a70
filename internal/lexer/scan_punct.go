package lexer

import (
	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/token"
)

// scanSimpleToken handles delimiters and signs. Anything else, including a
// stray ')' or a single '>', becomes a one-byte BadToken.
func (lx *Lexer) scanSimpleToken() {
	b := lx.cursor.Bump()
	switch b {
	case '<':
		if lx.cursor.Eat('<') {
			lx.buf.kind = token.LessThanLessThanToken
			return
		}
	case '>':
		if lx.cursor.Eat('>') {
			lx.buf.kind = token.GreaterThanGreaterThanToken
			return
		}
	case '[':
		lx.buf.kind = token.OpenBracketToken
		return
	case ']':
		lx.buf.kind = token.CloseBracketToken
		return
	case '{':
		lx.buf.kind = token.OpenBraceToken
		return
	case '}':
		lx.buf.kind = token.CloseBraceToken
		return
	case '+':
		lx.buf.kind = token.PlusToken
		return
	case '-':
		lx.buf.kind = token.MinusToken
		return
	}
	lx.buf.kind = token.BadToken
	lx.info(diag.LexUnexpectedCharacter, displayByte(b))
}
