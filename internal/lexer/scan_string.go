package lexer

import (
	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/token"
)

// scanString scans a balanced-parenthesis literal and decodes its escapes.
// End of input inside the literal still yields a StringLiteralToken.
func (lx *Lexer) scanString() {
	lx.cursor.Bump() // '('
	out := lx.buf.scratch[:0]
	depth := 1
	for depth > 0 {
		if lx.cursor.EOF() {
			lx.info(diag.LexUnbalancedStringLiteral)
			break
		}
		b := lx.cursor.Bump()
		switch b {
		case '(':
			depth++
			out = append(out, b)
		case ')':
			depth--
			if depth > 0 {
				out = append(out, b)
			}
		case '\r':
			// голые CR и CRLF нормализуются в LF
			lx.cursor.Eat('\n')
			out = append(out, '\n')
		case '\\':
			out = lx.scanEscape(out)
		default:
			out = append(out, b)
		}
	}
	lx.buf.scratch = out
	lx.buf.kind = token.StringLiteralToken
	lx.buf.value = token.BytesValue(out)
}

// scanEscape decodes the sequence after a backslash.
func (lx *Lexer) scanEscape(out []byte) []byte {
	if lx.cursor.EOF() {
		lx.info(diag.LexInvalidStringLiteral)
		return out
	}
	b := lx.cursor.Bump()
	switch b {
	case 'n':
		return append(out, '\n')
	case 'r':
		return append(out, '\r')
	case 't':
		return append(out, '\t')
	case 'b':
		return append(out, '\b')
	case 'f':
		return append(out, '\f')
	case '(', ')', '\\':
		return append(out, b)
	case '\r':
		// перенос строки внутри литерала: обратный слеш и EOL отбрасываются
		lx.cursor.Eat('\n')
		return out
	case '\n':
		return out
	}
	if isOctal(b) {
		v := int(b - '0')
		for i := 1; i < 3; i++ {
			d := lx.cursor.Peek()
			if lx.cursor.EOF() || !isOctal(d) {
				break
			}
			next := v*8 + int(d-'0')
			if next > 0xFF {
				break
			}
			v = next
			lx.cursor.Bump()
		}
		return append(out, byte(v))
	}
	// неизвестная escape-последовательность: обратный слеш игнорируется
	return append(out, b)
}
