package lexer

import (
	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/token"
)

// MaxNameLength is the decoded name length above which WRN_NameTooLong is
// raised. The name is never truncated.
const MaxNameLength = 127

// scanName decodes /Name with #xx escapes. A malformed '#' is kept literally.
func (lx *Lexer) scanName() {
	lx.cursor.Bump() // '/'
	out := lx.buf.scratch[:0]
	badEscape := false
	for !lx.cursor.EOF() && isRegular(lx.cursor.Peek()) {
		b := lx.cursor.Bump()
		if b == '#' {
			h1, ok1 := lx.cursor.PeekAt(0)
			h2, ok2 := lx.cursor.PeekAt(1)
			v1, hex1 := hexVal(h1)
			v2, hex2 := hexVal(h2)
			if ok1 && ok2 && hex1 && hex2 {
				lx.cursor.Bump()
				lx.cursor.Bump()
				out = append(out, v1<<4|v2)
				continue
			}
			badEscape = true
		}
		out = append(out, b)
	}
	lx.buf.scratch = out
	lx.buf.kind = token.NameLiteralToken
	lx.buf.value = token.BytesValue(out)
	if badEscape {
		lx.info(diag.LexInvalidNameEscape, string(lx.cursor.TextFrom(lx.buf.start)))
	}
	if len(out) > MaxNameLength {
		lx.info(diag.WarnNameTooLong, len(out))
	}
}
