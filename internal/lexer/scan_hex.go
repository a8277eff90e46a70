package lexer

import (
	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/token"
)

// scanHexString decodes <...>; white space is ignored and a trailing odd
// digit is zero-extended.
func (lx *Lexer) scanHexString() {
	lx.cursor.Bump() // '<'
	out := lx.buf.scratch[:0]
	var hi byte
	half := false
	reported := false
	for {
		if lx.cursor.EOF() {
			lx.info(diag.LexUnterminatedHexStringLiteral)
			break
		}
		b := lx.cursor.Bump()
		if b == '>' {
			break
		}
		if isWhitespace(b) || isEOL(b) {
			continue
		}
		v, ok := hexVal(b)
		if !ok {
			if !reported {
				lx.info(diag.LexInvalidHexStringLiteral, displayByte(b))
				reported = true
			}
			continue
		}
		if half {
			out = append(out, hi<<4|v)
			half = false
		} else {
			hi = v
			half = true
		}
	}
	if half {
		out = append(out, hi<<4)
	}
	lx.buf.scratch = out
	lx.buf.kind = token.HexStringLiteralToken
	lx.buf.value = token.BytesValue(out)
}
